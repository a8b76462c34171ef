package main

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/spf13/viper"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/bitmark-inc/community-aid/listing"
	"github.com/bitmark-inc/community-aid/schema"
	"github.com/bitmark-inc/community-aid/store"
)

func init() {
	viper.AutomaticEnv()
	viper.SetEnvPrefix("aid")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.SetDefault("mongo.database", "community-aid")
}

func main() {
	var seed bool
	flag.BoolVar(&seed, "seed", false, "insert the sample listings into empty collections")
	flag.Parse()

	indexer := schema.NewMongoDBIndexer(viper.GetString("mongo.conn"), viper.GetString("mongo.database"))
	indexer.IndexAll()
	if err := indexer.Close(); err != nil {
		panic(err)
	}

	if !seed {
		return
	}

	if err := seedListings(); err != nil {
		panic(err)
	}
}

func seedListings() error {
	ctx := context.Background()
	opts := options.Client().ApplyURI(viper.GetString("mongo.conn"))
	opts.SetMaxPoolSize(1)
	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return err
	}

	s := store.NewMongoStore(client, viper.GetString("mongo.database"))
	defer s.Close()

	donations, err := s.ListDonations(ctx)
	if err != nil {
		return err
	}
	if len(donations) == 0 {
		fmt.Println("seed donation collection")
		// oldest first so that the newest sample is listed first
		for i := len(listing.SampleDonations) - 1; i >= 0; i-- {
			if _, err := s.CreateDonation(ctx, listing.SampleDonations[i]); err != nil {
				return err
			}
		}
	}

	requests, err := s.ListRequests(ctx)
	if err != nil {
		return err
	}
	if len(requests) == 0 {
		fmt.Println("seed request collection")
		for i := len(listing.SampleRequests) - 1; i >= 0; i-- {
			if _, err := s.CreateRequest(ctx, listing.SampleRequests[i]); err != nil {
				return err
			}
		}
	}

	return nil
}
