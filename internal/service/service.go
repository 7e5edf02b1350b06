package service

import (
	"context"

	"budgie-shop/internal/model"
)

// ProductService defines operations for the product catalogue.
type ProductService interface {
	// List returns every product as a serialized document, seeding the
	// collection with the default catalogue when it is empty.
	List(ctx context.Context) ([]map[string]any, error)

	// Create validates and stores a product and returns it serialized.
	Create(ctx context.Context, input model.ProductInput) (map[string]any, error)
}

// DiagnosticsService reports backend and database availability.
type DiagnosticsService interface {
	// Report never fails; problems are described in the report itself.
	Report(ctx context.Context) DiagnosticsReport
}

// SeedRecorder observes the outcome of each seeding insert.
type SeedRecorder interface {
	RecordSeedInsert(success bool)
}
