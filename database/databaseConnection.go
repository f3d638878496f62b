package database

import (
	"context"
	"log"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func DBinstance() *mongo.Client {
	mongoUri := os.Getenv("MONGO_URI")
	if mongoUri == "" {
		mongoUri = "mongodb://localhost:27017"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoUri))
	if err != nil {
		log.Fatal(err)
	}
	return client
}

var Client *mongo.Client = DBinstance()

// Ping verifies the connection established by DBinstance. Callers that
// cannot serve without the database should treat an error as fatal.
func Ping(ctx context.Context) error {
	return Client.Ping(ctx, nil)
}

func OpenCollection(client *mongo.Client, collectionName string) *mongo.Collection {
	databaseName := os.Getenv("MONGO_DB")
	if databaseName == "" {
		databaseName = "milkdelivery"
	}
	return client.Database(databaseName).Collection(collectionName)
}
