package integration

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"budgie-shop/internal/catalog"
	"budgie-shop/internal/repository"
	"budgie-shop/internal/service"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeeding_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	testDB := SetupTestDB(t)
	logger := zerolog.Nop()
	repo := repository.NewProductRepository(testDB.DB, testCollection, logger)

	ctx := context.Background()

	t.Run("Seeding inserts every default product once", func(t *testing.T) {
		CleanupDB(t, testDB.DB)

		svc := service.NewProductService(repo, nil, nil, logger)
		products, err := svc.List(ctx)
		require.NoError(t, err)
		assert.Len(t, products, len(catalog.Defaults()))

		docs, err := repo.FindAll(ctx)
		require.NoError(t, err)
		assert.Len(t, docs, len(catalog.Defaults()))
	})

	t.Run("Concurrent listings of an empty collection may each seed", func(t *testing.T) {
		CleanupDB(t, testDB.DB)

		svc := service.NewProductService(repo, nil, nil, logger)

		const callers = 4
		var wg sync.WaitGroup
		errs := make(chan error, callers)
		for i := 0; i < callers; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := svc.List(ctx)
				errs <- err
			}()
		}
		wg.Wait()
		close(errs)

		for err := range errs {
			require.NoError(t, err)
		}

		// Seeding is unguarded, so the total is a whole multiple of the catalogue.
		n := CountProducts(t, testDB.DB)
		size := int64(len(catalog.Defaults()))
		assert.GreaterOrEqual(t, n, size)
		assert.LessOrEqual(t, n, size*callers)
		assert.Zero(t, n%size)
	})

	t.Run("Seeding from a gzipped catalogue file", func(t *testing.T) {
		CleanupDB(t, testDB.DB)

		path := filepath.Join(t.TempDir(), "catalogue.json.gz")
		f, err := os.Create(path)
		require.NoError(t, err)
		gz := gzip.NewWriter(f)
		require.NoError(t, json.NewEncoder(gz).Encode([]map[string]any{
			{"title": "Ladder", "price": 4.5, "category": "toys"},
		}))
		require.NoError(t, gz.Close())
		require.NoError(t, f.Close())

		catalogue := catalog.Resolve(ctx, catalog.NewFileLoader(logger), path, logger)
		require.Len(t, catalogue, 1)

		svc := service.NewProductService(repo, catalogue, nil, logger)
		products, err := svc.List(ctx)
		require.NoError(t, err)
		require.Len(t, products, 1)
		assert.Equal(t, "Ladder", products[0]["title"])
		assert.Equal(t, true, products[0]["in_stock"])
	})
}
