package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"budgie-shop/internal/model"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// productDocument is the stored shape of a product.
type productDocument struct {
	model.Product `bson:",inline"`
	CreatedAt     time.Time `bson:"created_at"`
	UpdatedAt     time.Time `bson:"updated_at"`
}

// productRepository implements the ProductRepository interface using MongoDB.
type productRepository struct {
	collection *mongo.Collection
	logger     zerolog.Logger
	now        func() time.Time
}

// NewProductRepository creates a new MongoDB-backed product repository.
func NewProductRepository(db *mongo.Database, collection string, logger zerolog.Logger) ProductRepository {
	return &productRepository{
		collection: db.Collection(collection),
		logger:     logger.With().Str("repository", "product").Str("collection", collection).Logger(),
		now:        time.Now,
	}
}

// FindAll retrieves every product document in the collection.
func (r *productRepository) FindAll(ctx context.Context) ([]bson.M, error) {
	cursor, err := r.collection.Find(ctx, bson.D{})
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query products")
		return nil, fmt.Errorf("failed to query products: %w", err)
	}

	docs := []bson.M{}
	if err := cursor.All(ctx, &docs); err != nil {
		r.logger.Error().Err(err).Msg("failed to decode product documents")
		return nil, fmt.Errorf("failed to decode products: %w", err)
	}

	return docs, nil
}

// Insert stores a product and returns its new identifier.
func (r *productRepository) Insert(ctx context.Context, product model.Product) (primitive.ObjectID, error) {
	now := r.now().UTC()
	doc := productDocument{
		Product:   product,
		CreatedAt: now,
		UpdatedAt: now,
	}

	result, err := r.collection.InsertOne(ctx, doc)
	if err != nil {
		r.logger.Error().Err(err).Str("title", product.Title).Msg("failed to insert product")
		return primitive.NilObjectID, fmt.Errorf("failed to insert product: %w", err)
	}

	id, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, fmt.Errorf("unexpected inserted id type %T", result.InsertedID)
	}

	r.logger.Debug().Str("product_id", id.Hex()).Str("title", product.Title).Msg("product inserted")

	return id, nil
}

// FindByID retrieves a single product document by its identifier.
func (r *productRepository) FindByID(ctx context.Context, id primitive.ObjectID) (bson.M, error) {
	var doc bson.M
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			r.logger.Debug().Str("product_id", id.Hex()).Msg("product not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("product_id", id.Hex()).Msg("failed to query product")
		return nil, fmt.Errorf("failed to query product: %w", err)
	}

	return doc, nil
}

// databaseDiagnostics implements Diagnostics for a MongoDB database.
type databaseDiagnostics struct {
	db *mongo.Database
}

// NewDiagnostics creates a Diagnostics backed by the given database.
func NewDiagnostics(db *mongo.Database) Diagnostics {
	return &databaseDiagnostics{db: db}
}

// Name returns the database name.
func (d *databaseDiagnostics) Name() string {
	return d.db.Name()
}

// ListCollectionNames lists the collections in the database.
func (d *databaseDiagnostics) ListCollectionNames(ctx context.Context) ([]string, error) {
	names, err := d.db.ListCollectionNames(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("failed to list collections: %w", err)
	}
	return names, nil
}
