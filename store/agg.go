package store

import (
	"go.mongodb.org/mongo-driver/bson"

	"github.com/dumpwatch/dumpwatch-api/schema"
)

func aggStageGeoProximity(maxDistance int, location schema.Location) bson.M {
	return bson.M{
		"$geoNear": bson.M{
			"near": bson.M{
				"type":        "Point",
				"coordinates": bson.A{location.Longitude, location.Latitude},
			},
			"distanceField": "dist",
			"maxDistance":   maxDistance,
			"spherical":     true,
			"includeLocs":   "location",
		},
	}
}

func matchHasLocation() bson.M {
	return bson.M{
		"location": bson.M{
			"$exists": true,
			"$ne":     nil,
		},
	}
}

func aggStageHasLocation() bson.M {
	return bson.M{
		"$match": matchHasLocation(),
	}
}

func aggStageNewestFirst() bson.M {
	return bson.M{
		"$sort": bson.D{{Key: "ts", Value: -1}},
	}
}
