package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/int-arsh/akash-ecom/internal/cart"
	"github.com/int-arsh/akash-ecom/internal/catalog"
	"github.com/int-arsh/akash-ecom/internal/domain"
)

type CartHandler struct {
	products catalog.Repository
	store    cart.Store
	timeout  time.Duration
}

func NewCartHandler(products catalog.Repository, store cart.Store, timeout time.Duration) *CartHandler {
	return &CartHandler{
		products: products,
		store:    store,
		timeout:  timeout,
	}
}

type AddItemRequestDTO struct {
	ProductID int64 `json:"product_id"`
}

type CartViewDTO struct {
	Items     []domain.CartLine `json:"items"`
	ItemCount int               `json:"item_count"`
	Total     float64           `json:"total"`
}

func cartView(c domain.Cart) CartViewDTO {
	return CartViewDTO{
		Items:     c.Lines(),
		ItemCount: c.ItemCount(),
		Total:     c.Total(),
	}
}

// GET /api/v1/cart
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	c, err := h.loadCart(ctx, cartIDFromRequest(r))
	if err != nil {
		respondError(w, http.StatusInternalServerError, "cart_error", "failed to load cart")
		return
	}

	respondJSON(w, http.StatusOK, cartView(c))
}

// POST /api/v1/cart/items
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req AddItemRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.ProductID <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id must be positive")
		return
	}

	product, err := h.products.GetProduct(ctx, req.ProductID)
	if errors.Is(err, catalog.ErrProductNotFound) {
		respondError(w, http.StatusNotFound, "not_found", "product not found")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "catalog_error", "failed to load product")
		return
	}

	cartID := ensureCartID(w, r)
	current, err := h.loadCart(ctx, cartID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "cart_error", "failed to load cart")
		return
	}

	next := current.Add(product)
	if err := h.store.Save(ctx, cartID, next); err != nil {
		respondError(w, http.StatusInternalServerError, "cart_error", "failed to save cart")
		return
	}

	respondJSON(w, http.StatusCreated, cartView(next))
}

// DELETE /api/v1/cart/items/{product_id}
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	productIDStr := chi.URLParam(r, "product_id")
	productID, err := strconv.ParseInt(productIDStr, 10, 64)
	if err != nil || productID <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id must be a positive integer")
		return
	}

	cartID := cartIDFromRequest(r)
	if cartID == "" {
		// no cart session yet, removing is a no-op
		respondJSON(w, http.StatusOK, cartView(domain.NewCart()))
		return
	}

	current, err := h.loadCart(ctx, cartID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "cart_error", "failed to load cart")
		return
	}

	next := current.Remove(productID)
	if err := h.store.Save(ctx, cartID, next); err != nil {
		respondError(w, http.StatusInternalServerError, "cart_error", "failed to save cart")
		return
	}

	respondJSON(w, http.StatusOK, cartView(next))
}

// loadCart treats an unknown cart ID as an empty cart, mirroring a shopping
// session that has not added anything yet or has expired.
func (h *CartHandler) loadCart(ctx context.Context, cartID string) (domain.Cart, error) {
	if cartID == "" {
		return domain.NewCart(), nil
	}
	c, err := h.store.Get(ctx, cartID)
	if errors.Is(err, cart.ErrCartNotFound) {
		return domain.NewCart(), nil
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}
