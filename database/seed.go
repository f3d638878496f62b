package database

import (
	"context"
	"log"
	"os"
	"time"

	"go-milk-delivery/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"
)

// EnsureIndexes creates the unique indexes the controllers rely on.
func EnsureIndexes(ctx context.Context) error {
	userCollection := OpenCollection(Client, "user")
	inventoryCollection := OpenCollection(Client, "inventory")

	_, err := userCollection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{"email", 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return err
	}
	_, err = inventoryCollection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{"date", 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

type seedProduct struct {
	name          string
	brand         string
	crateKey      string
	price         float64
	pricePerCrate float64
	packSize      string
}

var seedProducts = []seedProduct{
	{"Amul Taaza", "Amul", "amul_taaza", 54, 648, "12 x 500ml"},
	{"Amul Gold", "Amul", "amul_gold", 66, 792, "12 x 500ml"},
	{"Amul Buffalo", "Amul", "amul_buffalo", 70, 840, "12 x 500ml"},
	{"Gokul Cow", "Gokul", "gokul_cow", 56, 672, "12 x 500ml"},
	{"Gokul Buffalo", "Gokul", "gokul_buffalo", 72, 864, "12 x 500ml"},
	{"Gokul Full Cream", "Gokul", "gokul_full_cream", 74, 888, "12 x 500ml"},
	{"Mahananda", "Mahananda", "mahananda", 52, 624, "12 x 500ml"},
}

// SeedProducts upserts the seven crate products the web storefront sells,
// keyed by crate_key so reruns never duplicate.
func SeedProducts(ctx context.Context) error {
	productCollection := OpenCollection(Client, "product")
	upsert := true
	opts := options.UpdateOptions{
		Upsert: &upsert,
	}

	for _, p := range seedProducts {
		id := primitive.NewObjectID()
		unit := "crate"
		category := "milk"
		_, err := productCollection.UpdateOne(
			ctx,
			bson.M{"crate_key": p.crateKey},
			bson.D{
				{"$set", bson.D{
					{"name", p.name},
					{"brand", p.brand},
					{"price", p.price},
					{"price_per_crate", p.pricePerCrate},
					{"pack_size", p.packSize},
					{"unit", unit},
					{"category", category},
					{"available", true},
					{"is_active", true},
					{"updated_at", time.Now()},
				}},
				{"$setOnInsert", bson.D{
					{"_id", id},
					{"product_id", id.Hex()},
					{"crate_key", p.crateKey},
					{"stock_quantity", 0},
					{"min_stock_level", 10},
					{"created_at", time.Now()},
				}},
			},
			&opts,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

// SeedAdmin creates the back-office account from ADMIN_EMAIL and
// ADMIN_PASSWORD. Skipped silently when either is unset or the account
// already exists.
func SeedAdmin(ctx context.Context) error {
	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		return nil
	}

	userCollection := OpenCollection(Client, "user")
	count, err := userCollection.CountDocuments(ctx, bson.M{"email": email})
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), 10)
	if err != nil {
		return err
	}

	name := "Administrator"
	phone := "0000000000"
	role := models.RoleAdmin
	hashed := string(hash)

	admin := models.User{
		ID:         primitive.NewObjectID(),
		Name:       &name,
		Password:   &hashed,
		Email:      &email,
		Phone:      &phone,
		Role:       &role,
		Created_at: time.Now(),
		Updated_at: time.Now(),
	}
	admin.User_id = admin.ID.Hex()

	if _, err := userCollection.InsertOne(ctx, admin); err != nil {
		return err
	}
	log.Printf("seeded admin account %s", email)
	return nil
}
