//go:build ignore

package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func main() {
	uri := os.Getenv("DATABASE_URL")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}
	dbName := os.Getenv("DATABASE_NAME")
	if dbName == "" {
		dbName = "budgie"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer client.Disconnect(context.Background())

	if err := client.Ping(ctx, nil); err != nil {
		fmt.Fprintf(os.Stderr, "Ping failed: %v\n", err)
		os.Exit(1)
	}

	names, err := client.Database(dbName).ListCollectionNames(ctx, bson.D{})
	if err != nil {
		fmt.Fprintf(os.Stderr, "ListCollectionNames failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Successfully connected to database: %s (%d collections)\n", dbName, len(names))
	for _, name := range names {
		fmt.Printf("  - %s\n", name)
	}
}
