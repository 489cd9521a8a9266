package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"slotly/pkg/model"
)

var seedUsers = []model.User{
	{Name: "Admin User", Email: "admin@slotly.local", Role: model.RoleAdmin},
	{Name: "John Doe", Email: "john.doe@slotly.local", Role: model.RoleStudent},
	{Name: "Jane Smith", Email: "jane.smith@slotly.local", Role: model.RoleStaff},
}

var seedFacilities = []model.Facility{
	{Name: "Main Hall", Location: "Building A", Capacity: 500},
	{Name: "Conference Room 1", Location: "Building B", Capacity: 20},
	{Name: "Tennis Court", Location: "Sports Complex", Capacity: 4},
}

// RunSeed inserts the starter users and facilities. Each record is keyed by
// its natural identifier (email or name), so re-running the job is safe.
func RunSeed(ctx context.Context, client *mongo.Client, dbName string) error {
	db := client.Database(dbName)
	fmt.Printf("🌱 Seeding database: %s\n", dbName)

	users := db.Collection("Users")
	for _, u := range seedUsers {
		count, err := users.CountDocuments(ctx, bson.M{"email": u.Email})
		if err != nil {
			return fmt.Errorf("failed to check user %s: %w", u.Email, err)
		}
		if count > 0 {
			continue
		}
		u.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
		if _, err := users.InsertOne(ctx, u); err != nil {
			return fmt.Errorf("failed to seed user %s: %w", u.Email, err)
		}
		fmt.Printf("👤 Seeded user: %s (%s)\n", u.Name, u.Role)
	}

	facilities := db.Collection("Facilities")
	for _, f := range seedFacilities {
		count, err := facilities.CountDocuments(ctx, bson.M{"name": f.Name})
		if err != nil {
			return fmt.Errorf("failed to check facility %s: %w", f.Name, err)
		}
		if count > 0 {
			continue
		}
		f.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
		if _, err := facilities.InsertOne(ctx, f); err != nil {
			return fmt.Errorf("failed to seed facility %s: %w", f.Name, err)
		}
		fmt.Printf("🏟️ Seeded facility: %s (capacity %d)\n", f.Name, f.Capacity)
	}

	fmt.Println("✅ Seeding completed.")
	return nil
}
