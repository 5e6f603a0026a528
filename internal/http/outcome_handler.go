package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/int-arsh/akash-ecom/internal/outcome"
)

type OutcomeHandler struct {
	reconciler *outcome.Reconciler
	timeout    time.Duration
}

func NewOutcomeHandler(reconciler *outcome.Reconciler, timeout time.Duration) *OutcomeHandler {
	return &OutcomeHandler{
		reconciler: reconciler,
		timeout:    timeout,
	}
}

type OutcomeViewDTO struct {
	Status     string `json:"status"`
	OrderID    string `json:"order_id,omitempty"`
	Email      string `json:"email,omitempty"`
	AmountPaid string `json:"amount_paid,omitempty"`
	Message    string `json:"message"`
}

// GET /payment-success?session_id=...
//
// Blocks on verification with the collaborator before rendering a confirmed
// state. Refreshing the page re-runs verification; the collaborator treats
// repeated verifies of one session as reads, so this is safe.
func (h *OutcomeHandler) PaymentSuccess(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	sessionID := r.URL.Query().Get("session_id")

	confirmation, err := h.reconciler.ConfirmSuccess(ctx, sessionID)
	if errors.Is(err, outcome.ErrNoSessionID) {
		respondJSON(w, http.StatusBadRequest, OutcomeViewDTO{
			Status:  "failed",
			Message: "No session ID found. Payment verification cannot be completed.",
		})
		return
	}
	if err != nil {
		respondJSON(w, http.StatusBadGateway, OutcomeViewDTO{
			Status:  "failed",
			Message: "Payment verification failed. Please contact support if your payment was charged.",
		})
		return
	}

	respondJSON(w, http.StatusOK, OutcomeViewDTO{
		Status:     "succeeded",
		OrderID:    confirmation.OrderID,
		Email:      confirmation.Email,
		AmountPaid: confirmation.AmountPaid(),
		Message:    "Your payment has been successfully processed.",
	})
}

// GET /payment-failed?orderId=...
//
// Always renders the failure view. Marking the order failed is a detached
// best-effort side effect; its outcome never reaches the user.
func (h *OutcomeHandler) PaymentFailed(w http.ResponseWriter, r *http.Request) {
	orderID := r.URL.Query().Get("orderId")
	h.reconciler.MarkFailed(orderID)

	respondJSON(w, http.StatusOK, OutcomeViewDTO{
		Status:  "failed",
		OrderID: orderID,
		Message: "We were unable to process your payment. Please check your payment method and try again.",
	})
}
