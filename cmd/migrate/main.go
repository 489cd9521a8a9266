package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	mongoMigration "slotly/internal/migrations/mongo"
	"slotly/pkg/config"
)

const JobName = "mongo-migration"

func main() {
	seed := flag.Bool("seed", false, "insert starter users and facilities after migrating")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
	defer cancel()

	cfg := config.Load(JobName)
	cfg.SetMongo()
	defer cfg.GracefulShutdown()

	cfg.Log.Info("Starting Mongo migration job")
	if err := mongoMigration.RunMigration(ctx, cfg.Client.Mongo, cfg.MongoDatabaseName); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	if *seed {
		if err := mongoMigration.RunSeed(ctx, cfg.Client.Mongo, cfg.MongoDatabaseName); err != nil {
			log.Fatalf("Seeding failed: %v", err)
		}
	}

	fmt.Println("Migration completed successfully.")
}
