package repository

import (
	"context"

	"budgie-shop/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProductRepository defines the interface for product document access.
type ProductRepository interface {
	// FindAll retrieves every product document in the collection.
	FindAll(ctx context.Context) ([]bson.M, error)

	// Insert stores a product and returns the identifier assigned to it.
	// created_at and updated_at are set at insert time.
	Insert(ctx context.Context, product model.Product) (primitive.ObjectID, error)

	// FindByID retrieves a single product document.
	// Returns nil without error when no document has the identifier.
	FindByID(ctx context.Context, id primitive.ObjectID) (bson.M, error)
}

// Diagnostics exposes database details for the diagnostic endpoint.
type Diagnostics interface {
	// Name returns the database name.
	Name() string

	// ListCollectionNames lists the collections in the database.
	ListCollectionNames(ctx context.Context) ([]string, error)
}
