package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/int-arsh/akash-ecom/internal/cart"
	"github.com/int-arsh/akash-ecom/internal/checkout"
	"github.com/int-arsh/akash-ecom/internal/domain"
)

type CheckoutHandler struct {
	store    cart.Store
	checkout *checkout.Service
	timeout  time.Duration
}

func NewCheckoutHandler(store cart.Store, service *checkout.Service, timeout time.Duration) *CheckoutHandler {
	return &CheckoutHandler{
		store:    store,
		checkout: service,
		timeout:  timeout,
	}
}

type SubmitCheckoutRequestDTO struct {
	Email          string `json:"email"`
	IdempotencyKey string `json:"idempotency_key,omitempty"`
}

type RedirectResponseDTO struct {
	URL string `json:"url"`
}

type CheckoutViewDTO struct {
	View      string            `json:"view"`
	Items     []domain.CartLine `json:"items,omitempty"`
	ItemCount int               `json:"item_count,omitempty"`
	Total     float64           `json:"total,omitempty"`
}

// GET /checkout
//
// Returns the order summary for the checkout form, or the empty-cart view
// when there is no cart session to check out. Visiting the route directly
// without ever adding an item always yields the empty-cart view.
func (h *CheckoutHandler) View(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	c, err := h.loadCart(ctx, cartIDFromRequest(r))
	if err != nil {
		respondError(w, http.StatusInternalServerError, "cart_error", "failed to load cart")
		return
	}

	if c.Empty() {
		respondJSON(w, http.StatusOK, CheckoutViewDTO{View: "empty_cart"})
		return
	}

	respondJSON(w, http.StatusOK, CheckoutViewDTO{
		View:      "form",
		Items:     c.Lines(),
		ItemCount: c.ItemCount(),
		Total:     c.Total(),
	})
}

// POST /api/v1/checkout
//
// On success the response carries the collaborator's redirect URL and the
// client leaves the app for the hosted payment page. On failure the client
// stays on the form; the error payload feeds a dismissible banner.
func (h *CheckoutHandler) Submit(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req SubmitCheckoutRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	c, err := h.loadCart(ctx, cartIDFromRequest(r))
	if err != nil {
		respondError(w, http.StatusInternalServerError, "cart_error", "failed to load cart")
		return
	}

	url, err := h.checkout.Submit(ctx, c, req.Email, req.IdempotencyKey)
	switch {
	case err == nil:
		respondJSON(w, http.StatusOK, RedirectResponseDTO{URL: url})
	case errors.Is(err, checkout.ErrEmptyCart):
		respondError(w, http.StatusConflict, "empty_cart",
			"Your cart is empty. Please add items before checking out.")
	case errors.Is(err, checkout.ErrEmailRequired):
		respondError(w, http.StatusBadRequest, "invalid_email", "Email is required")
	case errors.Is(err, checkout.ErrInvalidEmail):
		respondError(w, http.StatusBadRequest, "invalid_email",
			"Please enter a valid email address")
	default:
		respondError(w, http.StatusBadGateway, "checkout_failed",
			"Failed to create checkout session. Please try again.")
	}
}

func (h *CheckoutHandler) loadCart(ctx context.Context, cartID string) (domain.Cart, error) {
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
