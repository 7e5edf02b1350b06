package router

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"budgie-shop/internal/handler"
	"budgie-shop/internal/metrics"
	"budgie-shop/internal/middleware"
	"budgie-shop/internal/model"
	"budgie-shop/internal/service"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// memoryRepository stores product documents in memory.
type memoryRepository struct {
	mu        sync.Mutex
	docs      []bson.M
	findErr   error
	findPanic bool
}

func (r *memoryRepository) FindAll(ctx context.Context) ([]bson.M, error) {
	if r.findPanic {
		panic("cursor closed")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.findErr != nil {
		return nil, r.findErr
	}
	out := make([]bson.M, len(r.docs))
	copy(out, r.docs)
	return out, nil
}

func (r *memoryRepository) Insert(ctx context.Context, p model.Product) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := primitive.NewObjectID()
	r.docs = append(r.docs, bson.M{
		"_id":         id,
		"title":       p.Title,
		"description": p.Description,
		"price":       p.Price,
		"category":    p.Category,
		"in_stock":    p.InStock,
	})
	return id, nil
}

func (r *memoryRepository) FindByID(ctx context.Context, id primitive.ObjectID) (bson.M, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, doc := range r.docs {
		if doc["_id"] == id {
			return doc, nil
		}
	}
	return nil, nil
}

func newTestRouter(t *testing.T, repo *memoryRepository) (http.Handler, *metrics.Metrics) {
	t.Helper()

	logger := zerolog.Nop()
	m := metrics.New()

	var productService service.ProductService
	if repo != nil {
		productService = service.NewProductService(repo, nil, m, logger)
	} else {
		productService = service.NewProductService(nil, nil, m, logger)
	}
	diagnosticsService := service.NewDiagnosticsService(nil, service.EnvPresence{}, logger)

	return New(
		handler.NewProductHandler(productService, logger),
		handler.NewHealthHandler(diagnosticsService, logger),
		m,
		logger,
	), m
}

func TestRouter_Routes(t *testing.T) {
	server, _ := newTestRouter(t, &memoryRepository{})

	tests := []struct {
		name           string
		method         string
		path           string
		expectedStatus int
	}{
		{name: "Root", method: http.MethodGet, path: "/", expectedStatus: http.StatusOK},
		{name: "Hello", method: http.MethodGet, path: "/api/hello", expectedStatus: http.StatusOK},
		{name: "Health", method: http.MethodGet, path: "/health", expectedStatus: http.StatusOK},
		{name: "Diagnostics", method: http.MethodGet, path: "/test", expectedStatus: http.StatusOK},
		{name: "Metrics", method: http.MethodGet, path: "/metrics", expectedStatus: http.StatusOK},
		{name: "List products", method: http.MethodGet, path: "/api/products", expectedStatus: http.StatusOK},
		{name: "Unknown path", method: http.MethodGet, path: "/api/unknown", expectedStatus: http.StatusNotFound},
		{name: "Unsupported method", method: http.MethodPut, path: "/api/products", expectedStatus: http.StatusMethodNotAllowed},
		{name: "Product by id is not routed", method: http.MethodGet, path: "/api/products/abc", expectedStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			w := httptest.NewRecorder()

			server.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))
		})
	}
}

func TestRouter_SeedsEmptyCollectionOnce(t *testing.T) {
	repo := &memoryRepository{}
	server, _ := newTestRouter(t, repo)

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
		w := httptest.NewRecorder()

		server.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var products []map[string]any
		require.NoError(t, json.NewDecoder(w.Body).Decode(&products))
		require.Len(t, products, 4)
		for _, p := range products {
			assert.NotEmpty(t, p["id"])
			assert.NotContains(t, p, "_id")
		}
	}

	assert.Len(t, repo.docs, 4)
}

func TestRouter_CreateThenList(t *testing.T) {
	repo := &memoryRepository{}
	server, _ := newTestRouter(t, repo)

	body := `{"title": "Cuttlebone", "price": 2.5, "category": "health"}`
	req := httptest.NewRequest(http.MethodPost, "/api/products", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	server.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)

	var created map[string]any
	require.NoError(t, json.NewDecoder(w.Body).Decode(&created))
	assert.NotEmpty(t, created["id"])
	assert.Equal(t, "Cuttlebone", created["title"])
	assert.Equal(t, "", created["description"])
	assert.Equal(t, true, created["in_stock"])

	// A populated collection is listed as-is without seeding.
	req = httptest.NewRequest(http.MethodGet, "/api/products", nil)
	w = httptest.NewRecorder()

	server.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var products []map[string]any
	require.NoError(t, json.NewDecoder(w.Body).Decode(&products))
	require.Len(t, products, 1)
	assert.Equal(t, created["id"], products[0]["id"])
}

func TestRouter_WithoutDatabase(t *testing.T) {
	server, _ := newTestRouter(t, nil)

	t.Run("List serves the default catalogue", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
		w := httptest.NewRecorder()

		server.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var products []map[string]any
		require.NoError(t, json.NewDecoder(w.Body).Decode(&products))
		assert.Len(t, products, 4)
	})

	t.Run("Create returns 503", func(t *testing.T) {
		body := `{"title": "Cuttlebone", "price": 2.5, "category": "health"}`
		req := httptest.NewRequest(http.MethodPost, "/api/products", strings.NewReader(body))
		req.Header.Set(middleware.RequestIDHeader, "req-42")
		w := httptest.NewRecorder()

		server.ServeHTTP(w, req)

		require.Equal(t, http.StatusServiceUnavailable, w.Code)

		var errResp model.ErrorResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&errResp))
		assert.Equal(t, model.ErrCodeServiceUnavailable, errResp.Error)
		assert.Equal(t, "Database not available", errResp.Message)
		assert.Equal(t, "req-42", errResp.CorrelationID)
	})

	t.Run("Invalid body is rejected before availability", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/products", strings.NewReader(`{"price": -1}`))
		w := httptest.NewRecorder()

		server.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("Diagnostics report no database", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		w := httptest.NewRecorder()

		server.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var report service.DiagnosticsReport
		require.NoError(t, json.NewDecoder(w.Body).Decode(&report))
		assert.Equal(t, "Not Connected", report.ConnectionStatus)
		assert.Equal(t, "❌ Not Set", report.DatabaseURL)
		assert.Empty(t, report.Collections)
	})
}

func TestRouter_ListFailure(t *testing.T) {
	server, _ := newTestRouter(t, &memoryRepository{findErr: errors.New("connection reset")})

	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	w := httptest.NewRecorder()

	server.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestRouter_CORSPreflight(t *testing.T) {
	server, _ := newTestRouter(t, &memoryRepository{})

	req := httptest.NewRequest(http.MethodOptions, "/api/products", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()

	server.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
}

func TestRouter_MetricsExposition(t *testing.T) {
	server, _ := newTestRouter(t, &memoryRepository{})

	server.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/products", nil))

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()

	server.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `http_requests_total{endpoint="GET /api/products",method="GET",status="2xx"} 1`)
	assert.Contains(t, body, `catalog_seed_inserts_total{result="success"} 4`)
}

func TestRouter_PanicIsCountedAsServerError(t *testing.T) {
	server, _ := newTestRouter(t, &memoryRepository{findPanic: true})

	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	w := httptest.NewRecorder()

	server.ServeHTTP(w, req)

	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))
	assert.Contains(t, w.Body.String(), "INTERNAL_ERROR")

	req = httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w = httptest.NewRecorder()

	server.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `http_requests_total{endpoint="GET /api/products",method="GET",status="5xx"} 1`)
}
