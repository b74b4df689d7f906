package main

import (
	"context"
	"flag"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	log "github.com/sirupsen/logrus"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"

	"github.com/dumpwatch/dumpwatch-api/share/geojson"
	"github.com/dumpwatch/dumpwatch-api/store"
)

func init() {
	viper.AutomaticEnv()
	viper.SetEnvPrefix("dumpwatch")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	log.SetFormatter(&prefixed.TextFormatter{
		ForceFormatting: true,
		FullTimestamp:   true,
	})
}

func main() {
	var file, reportedBy string
	flag.StringVar(&file, "f", "dump-sites.geojson", "path of the feature collection")
	flag.StringVar(&reportedBy, "by", "", "[optional] account id credited as the reporter")
	flag.Parse()

	logger := log.WithField("prefix", "import")

	ctx := context.Background()
	opts := options.Client().ApplyURI(viper.GetString("mongo.conn"))
	client, err := mongo.NewClient(opts)
	if err != nil {
		panic(err)
	}
	if err := client.Connect(ctx); err != nil {
		panic(err)
	}
	defer client.Disconnect(ctx)

	f, err := os.Open(file)
	if err != nil {
		panic(err)
	}
	defer f.Close()

	collection, err := geojson.Decode(f)
	if err != nil {
		panic(err)
	}

	reports, errs := collection.Reports(reportedBy, time.Now())
	for _, err := range errs {
		logger.WithError(err).Warn("skip feature")
	}

	s := store.NewMongoStore(client, viper.GetString("mongo.database"))
	imported := 0
	for _, r := range reports {
		if _, err := s.AddReport(r); err != nil {
			logger.WithError(err).WithField("description", r.Description).Error("add report")
			continue
		}
		imported++
	}

	logger.WithField("collection", collection.Name).Infof("imported %d of %d features", imported, len(collection.Features))
}
