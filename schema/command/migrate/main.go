package main

import (
	"fmt"
	"strings"

	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/postgres"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/dumpwatch/dumpwatch-api/schema"
)

func init() {
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file.")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("dumpwatch")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
}

func main() {
	db, err := gorm.Open("postgres", viper.GetString("orm.conn"))
	if err != nil {
		panic(err)
	}
	defer db.Close()

	if err := db.Exec(`CREATE SCHEMA IF NOT EXISTS dumpwatch`).Error; err != nil {
		panic(err)
	}

	if err := db.Exec("SET search_path TO dumpwatch").Error; err != nil {
		panic(err)
	}

	if err := db.AutoMigrate(
		&schema.Account{},
	).Error; err != nil {
		panic(err)
	}

	fmt.Println("migrated postgres schema")

	indexer := schema.NewMongoDBIndexer(viper.GetString("mongo.conn"), viper.GetString("mongo.database"))
	defer indexer.Close()
	indexer.IndexAll()

	fmt.Println("created mongo indexes")
}
