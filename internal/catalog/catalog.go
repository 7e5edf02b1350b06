package catalog

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"budgie-shop/internal/model"

	"github.com/rs/zerolog"
)

// Loader defines the interface for loading catalogue source files.
type Loader interface {
	// Load reads a JSON array of products from the given location.
	Load(ctx context.Context, path string) ([]model.Product, error)
}

var defaultProducts = []model.Product{
	{
		Title:       "Premium Budgie Seed Mix",
		Description: "Balanced seed blend with canary, millet, and nutritional pellets.",
		Price:       9.99,
		Category:    "seed mix",
		InStock:     true,
	},
	{
		Title:       "Vitamin-Enriched Pellets",
		Description: "Complete daily pellets formulated for budgerigars.",
		Price:       12.49,
		Category:    "pellets",
		InStock:     true,
	},
	{
		Title:       "Millet Spray Treats",
		Description: "Natural golden millet sprays — perfect training reward.",
		Price:       5.49,
		Category:    "treats",
		InStock:     true,
	},
	{
		Title:       "Calcium Cuttlefish Bone",
		Description: "Essential calcium source for beak and bone health.",
		Price:       3.99,
		Category:    "supplement",
		InStock:     true,
	},
}

// Defaults returns a fresh copy of the built-in catalogue.
func Defaults() []model.Product {
	out := make([]model.Product, len(defaultProducts))
	copy(out, defaultProducts)
	return out
}

// Resolve returns the catalogue used for seeding. An empty path selects the
// built-in defaults, and so does any failure to load the configured source.
func Resolve(ctx context.Context, loader Loader, path string, logger zerolog.Logger) []model.Product {
	if path == "" || loader == nil {
		return Defaults()
	}

	products, err := loader.Load(ctx, path)
	if err != nil {
		logger.Warn().Err(err).Str("path", path).Msg("failed to load catalogue source, using built-in defaults")
		return Defaults()
	}
	if len(products) == 0 {
		logger.Warn().Str("path", path).Msg("catalogue source is empty, using built-in defaults")
		return Defaults()
	}

	logger.Info().
		Str("path", path).
		Int("products", len(products)).
		Msg("catalogue source loaded")

	return products
}

// decode reads a JSON product array, gunzipping first when gzipped is set.
// Every entry must pass product validation.
func decode(r io.Reader, gzipped bool) ([]model.Product, error) {
	if gzipped {
		gz, err := gzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("failed to create gzip reader: %w", err)
		}
		defer gz.Close()
		r = gz
	}

	var inputs []model.ProductInput
	if err := json.NewDecoder(r).Decode(&inputs); err != nil {
		return nil, fmt.Errorf("failed to decode catalogue: %w", err)
	}

	products := make([]model.Product, 0, len(inputs))
	for i, in := range inputs {
		p, err := in.ToProduct()
		if err != nil {
			return nil, fmt.Errorf("catalogue entry %d: %w", i, err)
		}
		products = append(products, p)
	}

	return products, nil
}

func isGzipped(path string) bool {
	return strings.HasSuffix(path, ".gz")
}
