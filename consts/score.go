package consts

const (
	// PointsPerCleanedSite is credited to a user for every dump site they clean
	PointsPerCleanedSite = 10

	// DefaultNearbyDistance is the radius in meters used when a map viewport
	// asks for nearby reports without a distance
	DefaultNearbyDistance = 5000
	MaxNearbyDistance     = 50000
)
