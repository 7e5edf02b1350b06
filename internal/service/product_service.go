package service

import (
	"context"
	"fmt"

	"budgie-shop/internal/catalog"
	"budgie-shop/internal/document"
	"budgie-shop/internal/model"
	"budgie-shop/internal/repository"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SeedReport summarises one seeding pass over the default catalogue.
type SeedReport struct {
	Attempted int
	Inserted  int
	Failed    int
}

// productService implements ProductService.
type productService struct {
	productRepo repository.ProductRepository
	catalogue   []model.Product
	recorder    SeedRecorder
	logger      zerolog.Logger
}

// NewProductService creates a new product service.
//
// A nil productRepo means no database is configured: listing then serves the
// catalogue with throwaway identifiers and creation fails with
// model.ErrServiceUnavailable. A nil catalogue selects catalog.Defaults.
// recorder may be nil.
func NewProductService(
	productRepo repository.ProductRepository,
	catalogue []model.Product,
	recorder SeedRecorder,
	logger zerolog.Logger,
) ProductService {
	if catalogue == nil {
		catalogue = catalog.Defaults()
	}
	return &productService{
		productRepo: productRepo,
		catalogue:   catalogue,
		recorder:    recorder,
		logger:      logger.With().Str("service", "product").Logger(),
	}
}

// List returns every stored product, serialized.
func (s *productService) List(ctx context.Context) ([]map[string]any, error) {
	if s.productRepo == nil {
		s.logger.Debug().Msg("database unavailable, serving default catalogue")
		return s.ephemeralCatalogue(), nil
	}

	docs, err := s.productRepo.FindAll(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list products")
		return nil, fmt.Errorf("failed to get products: %w", err)
	}

	if len(docs) == 0 {
		// Unguarded: concurrent listings of an empty collection may each seed.
		report := s.seed(ctx)
		s.logger.Info().
			Int("attempted", report.Attempted).
			Int("inserted", report.Inserted).
			Int("failed", report.Failed).
			Msg("seeded empty product collection")

		docs, err = s.productRepo.FindAll(ctx)
		if err != nil {
			s.logger.Error().Err(err).Msg("failed to list products after seeding")
			return nil, fmt.Errorf("failed to get products: %w", err)
		}
	}

	s.logger.Debug().Int("count", len(docs)).Msg("retrieved products")

	return document.SerializeAll(docs), nil
}

// Create validates and stores a product, then returns the stored document.
func (s *productService) Create(ctx context.Context, input model.ProductInput) (map[string]any, error) {
	product, err := input.ToProduct()
	if err != nil {
		s.logger.Debug().Err(err).Msg("rejected product input")
		return nil, err
	}

	if s.productRepo == nil {
		s.logger.Warn().Str("title", product.Title).Msg("cannot create product without a database")
		return nil, model.ErrServiceUnavailable
	}

	id, err := s.productRepo.Insert(ctx, product)
	if err != nil {
		s.logger.Error().Err(err).Str("title", product.Title).Msg("failed to create product")
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	doc, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("product_id", id.Hex()).Msg("failed to read back product")
		return nil, fmt.Errorf("failed to read created product: %w", err)
	}
	if doc == nil {
		s.logger.Error().Str("product_id", id.Hex()).Msg("created product not found")
		return nil, fmt.Errorf("created product %s: %w", id.Hex(), model.ErrProductNotFound)
	}

	s.logger.Info().Str("product_id", id.Hex()).Str("title", product.Title).Msg("product created")

	return document.Serialize(doc), nil
}

// seed inserts every catalogue entry individually. A failed insert is
// logged and counted and does not stop the remaining inserts.
func (s *productService) seed(ctx context.Context) SeedReport {
	report := SeedReport{Attempted: len(s.catalogue)}

	for _, p := range s.catalogue {
		_, err := s.productRepo.Insert(ctx, p)
		if s.recorder != nil {
			s.recorder.RecordSeedInsert(err == nil)
		}
		if err != nil {
			report.Failed++
			s.logger.Warn().Err(err).Str("title", p.Title).Msg("failed to seed product")
			continue
		}
		report.Inserted++
	}

	return report
}

// ephemeralCatalogue renders the catalogue with fresh identifiers that are
// never persisted.
func (s *productService) ephemeralCatalogue() []map[string]any {
	docs := make([]bson.M, 0, len(s.catalogue))
	for _, p := range s.catalogue {
		docs = append(docs, bson.M{
			document.IDField: primitive.NewObjectID(),
			"title":          p.Title,
			"description":    p.Description,
			"price":          p.Price,
			"category":       p.Category,
			"in_stock":       p.InStock,
		})
	}
	return document.SerializeAll(docs)
}
