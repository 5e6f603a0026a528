package http

import (
	"context"
	"net/http"
	"time"

	"github.com/int-arsh/akash-ecom/internal/catalog"
)

type CatalogHandler struct {
	products catalog.Repository
	timeout  time.Duration
}

func NewCatalogHandler(products catalog.Repository, timeout time.Duration) *CatalogHandler {
	return &CatalogHandler{
		products: products,
		timeout:  timeout,
	}
}

// GET /
func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	products, err := h.products.ListProducts(ctx)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "catalog_error", "failed to load products")
		return
	}

	respondJSON(w, http.StatusOK, products)
}
