package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"budgie-shop/internal/model"
	"budgie-shop/internal/service"

	"github.com/rs/zerolog"
)

// ProductHandler handles product-related HTTP requests.
type ProductHandler struct {
	service service.ProductService
	logger  zerolog.Logger
}

// NewProductHandler creates a new product handler.
func NewProductHandler(service service.ProductService, logger zerolog.Logger) *ProductHandler {
	return &ProductHandler{
		service: service,
		logger:  logger.With().Str("handler", "product").Logger(),
	}
}

// List handles GET /api/products requests.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.List(r.Context())
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, model.ErrCodeInternalError, "failed to retrieve products", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, products)
}

// Create handles POST /api/products requests.
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input model.ProductInput

	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBodySize))
	if err := decoder.Decode(&input); err != nil {
		status, code, message := classifyDecodeError(err)
		writeError(w, r, status, code, message, h.logger)
		return
	}
	if err := decoder.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		writeError(w, r, http.StatusBadRequest, model.ErrCodeInvalidJSON, "unexpected data after JSON body", h.logger)
		return
	}

	product, err := h.service.Create(r.Context(), input)
	if err != nil {
		var validationErr *model.ValidationError
		switch {
		case errors.As(err, &validationErr):
			writeError(w, r, http.StatusUnprocessableEntity, model.ErrCodeValidation, validationErr.Error(), h.logger)
		case errors.Is(err, model.ErrServiceUnavailable):
			writeError(w, r, http.StatusServiceUnavailable, model.ErrCodeServiceUnavailable, model.ErrServiceUnavailable.Message, h.logger)
		default:
			writeError(w, r, http.StatusInternalServerError, model.ErrCodeInternalError, "failed to create product", h.logger)
		}
		return
	}

	writeJSON(w, http.StatusCreated, product)
}

// classifyDecodeError maps a JSON decoding failure to a response.
// Wrong value types are field errors; anything else is a malformed body.
func classifyDecodeError(err error) (int, string, string) {
	var typeErr *json.UnmarshalTypeError
	var maxBytesErr *http.MaxBytesError

	switch {
	case errors.As(err, &typeErr):
		field := typeErr.Field
		if field == "" {
			field = "request body"
		}
		return http.StatusUnprocessableEntity, model.ErrCodeValidation,
			"invalid " + field + ": expected " + typeErr.Type.String()
	case errors.As(err, &maxBytesErr):
		return http.StatusRequestEntityTooLarge, model.ErrCodeInvalidJSON, "request body too large"
	case errors.Is(err, io.EOF):
		return http.StatusUnprocessableEntity, model.ErrCodeValidation, "request body is required"
	default:
		return http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body"
	}
}
