package catalog_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/andriwidy/backend-troli/internal/catalog"
)

func newProductRouter() (*chi.Mux, *catalog.Store) {
	store := catalog.NewStore()
	handler := &catalog.Handler{Store: store, Validate: validator.New()}

	r := chi.NewRouter()
	r.Route("/api/v1/products", func(p chi.Router) {
		p.Get("/", handler.List)
		p.Post("/", handler.Create)
		p.Get("/{sku}", handler.Detail)
		p.Delete("/{sku}", handler.Delete)
	})
	return r, store
}

func TestCreateProductEndpoint(t *testing.T) {
	r, store := newProductRouter()

	body := bytes.NewBufferString(`{"sku":"123456","title":"Product 1","price":"9.99"}`)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/products", body))
	require.Equal(t, http.StatusCreated, rec.Code)

	created, err := store.Get("123456")
	require.NoError(t, err)
	require.True(t, created.Price.Equal(decimal.RequireFromString("9.99")))
}

func TestCreateProductEndpointValidation(t *testing.T) {
	r, _ := newProductRouter()

	body := bytes.NewBufferString(`{"title":"no sku","price":"1.00"}`)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/products", body))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateProductEndpointConflict(t *testing.T) {
	r, store := newProductRouter()
	require.NoError(t, store.Create(catalog.Product{SKU: "123456", Title: "Product 1", Price: decimal.RequireFromString("9.99")}))

	body := bytes.NewBufferString(`{"sku":"123456","title":"Product 1","price":"9.99"}`)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/products", body))
	require.Equal(t, http.StatusConflict, rec.Code)
}

func TestListProductsEndpoint(t *testing.T) {
	r, store := newProductRouter()
	require.NoError(t, store.Create(catalog.Product{SKU: "234567", Title: "Product 2", Price: decimal.RequireFromString("30.00")}))
	require.NoError(t, store.Create(catalog.Product{SKU: "123456", Title: "Product 1", Price: decimal.RequireFromString("9.99")}))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/products", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data []catalog.Product `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 2)
	require.Equal(t, "123456", resp.Data[0].SKU)
}

func TestProductDetailEndpointMissing(t *testing.T) {
	r, _ := newProductRouter()

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/products/nope", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteProductEndpoint(t *testing.T) {
	r, store := newProductRouter()
	require.NoError(t, store.Create(catalog.Product{SKU: "123456", Title: "Product 1", Price: decimal.RequireFromString("9.99")}))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/v1/products/123456", nil))
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/v1/products/123456", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)
}
