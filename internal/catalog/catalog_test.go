package catalog

import (
	"context"
	"errors"
	"testing"

	"budgie-shop/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockLoader is a mock implementation of the Loader interface for testing.
type mockLoader struct {
	loadFunc func(ctx context.Context, path string) ([]model.Product, error)
}

func (m *mockLoader) Load(ctx context.Context, path string) ([]model.Product, error) {
	if m.loadFunc != nil {
		return m.loadFunc(ctx, path)
	}
	return nil, errors.New("not implemented")
}

func TestDefaults(t *testing.T) {
	products := Defaults()

	require.Len(t, products, 4)
	titles := make([]string, 0, len(products))
	for _, p := range products {
		titles = append(titles, p.Title)
		assert.True(t, p.InStock)
		assert.NoError(t, p.Validate())
	}
	assert.Equal(t, []string{
		"Premium Budgie Seed Mix",
		"Vitamin-Enriched Pellets",
		"Millet Spray Treats",
		"Calcium Cuttlefish Bone",
	}, titles)
	assert.Equal(t, 9.99, products[0].Price)
	assert.Equal(t, "Natural golden millet sprays \u2014 perfect training reward.", products[2].Description)
	assert.Equal(t, "supplement", products[3].Category)
}

func TestDefaults_ReturnsCopy(t *testing.T) {
	first := Defaults()
	first[0].Title = "changed"

	assert.Equal(t, "Premium Budgie Seed Mix", Defaults()[0].Title)
}

func TestResolve(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	custom := []model.Product{{Title: "Custom", Price: 1, Category: "treats", InStock: true}}

	tests := []struct {
		name     string
		path     string
		loader   Loader
		expected []model.Product
	}{
		{
			name:     "Empty path uses defaults",
			path:     "",
			loader:   &mockLoader{},
			expected: Defaults(),
		},
		{
			name:     "Nil loader uses defaults",
			path:     "catalog.json",
			loader:   nil,
			expected: Defaults(),
		},
		{
			name: "Loaded catalogue is used",
			path: "catalog.json",
			loader: &mockLoader{loadFunc: func(ctx context.Context, path string) ([]model.Product, error) {
				return custom, nil
			}},
			expected: custom,
		},
		{
			name: "Load error falls back to defaults",
			path: "catalog.json",
			loader: &mockLoader{loadFunc: func(ctx context.Context, path string) ([]model.Product, error) {
				return nil, errors.New("boom")
			}},
			expected: Defaults(),
		},
		{
			name: "Empty catalogue falls back to defaults",
			path: "catalog.json",
			loader: &mockLoader{loadFunc: func(ctx context.Context, path string) ([]model.Product, error) {
				return []model.Product{}, nil
			}},
			expected: Defaults(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Resolve(ctx, tt.loader, tt.path, logger))
		})
	}
}
