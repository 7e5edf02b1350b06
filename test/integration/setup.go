package integration

import (
	"context"
	"testing"

	"budgie-shop/internal/config"
	"budgie-shop/internal/database"

	"github.com/rs/zerolog"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const testCollection = "product"

// TestDB represents a test database instance.
type TestDB struct {
	Container *mongodb.MongoDBContainer
	DB        *mongo.Database
	URI       string
}

// SetupTestDB starts a MongoDB test container and connects to it.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	ctx := context.Background()

	mongoContainer, err := mongodb.Run(ctx, "mongo:7")
	if err != nil {
		t.Fatalf("failed to start mongodb container: %v", err)
	}

	uri, err := mongoContainer.ConnectionString(ctx)
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	db, err := database.Connect(ctx, TestDatabaseConfig(uri), zerolog.Nop())
	if err != nil {
		t.Fatalf("failed to connect to database: %v", err)
	}

	t.Cleanup(func() {
		if err := db.Client().Disconnect(ctx); err != nil {
			t.Logf("failed to disconnect: %v", err)
		}
		if err := mongoContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	return &TestDB{
		Container: mongoContainer,
		DB:        db,
		URI:       uri,
	}
}

// TestDatabaseConfig returns the database configuration used against the container.
func TestDatabaseConfig(uri string) config.DatabaseConfig {
	return config.DatabaseConfig{
		URL:               uri,
		Name:              "budgie_test",
		ProductCollection: testCollection,
		ConnectTimeout:    10,
		MaxPoolSize:       10,
		MinPoolSize:       0,
	}
}

// InsertProducts stores raw product documents in the test collection.
func InsertProducts(t *testing.T, db *mongo.Database, docs ...bson.M) {
	t.Helper()

	ctx := context.Background()

	for _, doc := range docs {
		if _, err := db.Collection(testCollection).InsertOne(ctx, doc); err != nil {
			t.Fatalf("failed to insert product %v: %v", doc["title"], err)
		}
	}
}

// CountProducts returns the number of documents in the test collection.
func CountProducts(t *testing.T, db *mongo.Database) int64 {
	t.Helper()

	n, err := db.Collection(testCollection).CountDocuments(context.Background(), bson.D{})
	if err != nil {
		t.Fatalf("failed to count products: %v", err)
	}
	return n
}

// CleanupDB drops the test collection.
func CleanupDB(t *testing.T, db *mongo.Database) {
	t.Helper()

	if err := db.Collection(testCollection).Drop(context.Background()); err != nil {
		t.Logf("failed to drop collection %s: %v", testCollection, err)
	}
}
