package cart

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/andriwidy/backend-troli/internal/catalog"
	"github.com/andriwidy/backend-troli/internal/common"
	"github.com/andriwidy/backend-troli/internal/pricing"
)

// Handler wires the cart service to HTTP.
type Handler struct {
	Svc      *Service
	Products *catalog.Store
}

// Create opens a cart for an existing user.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "cart service not configured", nil)
		return
	}
	var payload struct {
		UserID string `json:"userId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid json body", nil)
		return
	}
	userID, err := uuid.Parse(strings.TrimSpace(payload.UserID))
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid user id", nil)
		return
	}
	c, err := h.Svc.Create(r.Context(), userID)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.JSONData(w, http.StatusCreated, map[string]any{
		"cartId": c.ID,
		"userId": c.UserID,
	})
}

// Get returns cart contents together with the computed pricing.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	cartID, ok := h.cartID(w, r)
	if !ok {
		return
	}
	h.render(w, r, cartID, http.StatusOK)
}

// Delete removes the cart entirely.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	cartID, ok := h.cartID(w, r)
	if !ok {
		return
	}
	if err := h.Svc.Delete(r.Context(), cartID); err != nil {
		common.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AddItem adds or increments a cart line item.
func (h *Handler) AddItem(w http.ResponseWriter, r *http.Request) {
	cartID, ok := h.cartID(w, r)
	if !ok {
		return
	}
	if h.Products == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "product store not configured", nil)
		return
	}
	// Qty is a pointer so an explicit zero is distinguishable from an
	// omitted field: only the latter defaults to 1.
	var payload struct {
		SKU string `json:"sku"`
		Qty *int   `json:"qty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid json body", nil)
		return
	}
	qty := 1
	if payload.Qty != nil {
		qty = *payload.Qty
	}
	product, err := h.Products.Get(strings.TrimSpace(payload.SKU))
	if err != nil {
		common.WriteError(w, err)
		return
	}
	if err := h.Svc.AddItem(r.Context(), cartID, LineItem{Product: product, Qty: qty}); err != nil {
		common.WriteError(w, err)
		return
	}
	h.render(w, r, cartID, http.StatusOK)
}

// RemoveItem decrements a line item; `qty` query parameter defaults to 1.
func (h *Handler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	cartID, ok := h.cartID(w, r)
	if !ok {
		return
	}
	qty := 1
	if raw := strings.TrimSpace(r.URL.Query().Get("qty")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid qty", nil)
			return
		}
		qty = parsed
	}
	if err := h.Svc.RemoveItem(r.Context(), cartID, chi.URLParam(r, "sku"), qty); err != nil {
		common.WriteError(w, err)
		return
	}
	h.render(w, r, cartID, http.StatusOK)
}

// ApplyDiscount enables a discount rule on the cart.
func (h *Handler) ApplyDiscount(w http.ResponseWriter, r *http.Request) {
	cartID, ok := h.cartID(w, r)
	if !ok {
		return
	}
	var payload struct {
		Code string `json:"code"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid json body", nil)
		return
	}
	id := pricing.Identifier(strings.TrimSpace(payload.Code))
	if err := h.Svc.AddDiscount(r.Context(), cartID, id); err != nil {
		common.WriteError(w, err)
		return
	}
	h.render(w, r, cartID, http.StatusOK)
}

// RemoveDiscount disables an active discount rule.
func (h *Handler) RemoveDiscount(w http.ResponseWriter, r *http.Request) {
	cartID, ok := h.cartID(w, r)
	if !ok {
		return
	}
	id := pricing.Identifier(chi.URLParam(r, "code"))
	if err := h.Svc.RemoveDiscount(r.Context(), cartID, id); err != nil {
		common.WriteError(w, err)
		return
	}
	h.render(w, r, cartID, http.StatusOK)
}

// EmptyCart clears items and discounts.
func (h *Handler) EmptyCart(w http.ResponseWriter, r *http.Request) {
	cartID, ok := h.cartID(w, r)
	if !ok {
		return
	}
	if err := h.Svc.Empty(r.Context(), cartID); err != nil {
		common.WriteError(w, err)
		return
	}
	h.render(w, r, cartID, http.StatusOK)
}

func (h *Handler) cartID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "cart service not configured", nil)
		return uuid.Nil, false
	}
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid cart id", nil)
		return uuid.Nil, false
	}
	return id, true
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, cartID uuid.UUID, status int) {
	c, err := h.Svc.Get(r.Context(), cartID)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	summary, err := h.Svc.Total(r.Context(), cartID)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	items := make([]map[string]any, 0, len(c.Items))
	for _, it := range c.Items {
		items = append(items, map[string]any{
			"sku":       it.Product.SKU,
			"title":     it.Product.Title,
			"unitPrice": it.Product.Price,
			"qty":       it.Qty,
		})
	}
	common.JSONData(w, status, map[string]any{
		"id":        c.ID,
		"userId":    c.UserID,
		"items":     items,
		"discounts": c.Discounts,
		"pricing": map[string]any{
			"subtotal": summary.Subtotal,
			"discount": summary.Discount,
			"total":    summary.Total,
		},
		"currency": h.Svc.Currency,
	})
}
