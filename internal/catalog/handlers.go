package catalog

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/andriwidy/backend-troli/internal/common"
)

// Handler wires the product store to HTTP.
type Handler struct {
	Store    *Store
	Validate *validator.Validate
}

type createProductRequest struct {
	SKU   string          `json:"sku" validate:"required"`
	Title string          `json:"title" validate:"required"`
	Price decimal.Decimal `json:"price"`
}

// Create registers a new product.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	if h.Store == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "product store not configured", nil)
		return
	}
	var payload createProductRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid json body", nil)
		return
	}
	if err := h.validate(payload); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "validation failed", err.Error())
		return
	}
	product := Product{SKU: payload.SKU, Title: payload.Title, Price: payload.Price}
	if err := h.Store.Create(product); err != nil {
		common.WriteError(w, err)
		return
	}
	common.JSONData(w, http.StatusCreated, product)
}

// List returns the full catalog ordered by SKU.
func (h *Handler) List(w http.ResponseWriter, _ *http.Request) {
	if h.Store == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "product store not configured", nil)
		return
	}
	common.JSONData(w, http.StatusOK, h.Store.List())
}

// Detail returns a single product by SKU.
func (h *Handler) Detail(w http.ResponseWriter, r *http.Request) {
	if h.Store == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "product store not configured", nil)
		return
	}
	product, err := h.Store.Get(chi.URLParam(r, "sku"))
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.JSONData(w, http.StatusOK, product)
}

// Delete removes a product from the catalog.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if h.Store == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "product store not configured", nil)
		return
	}
	if err := h.Store.Delete(chi.URLParam(r, "sku")); err != nil {
		common.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) validate(v any) error {
	if h.Validate == nil {
		return nil
	}
	return h.Validate.Struct(v)
}
