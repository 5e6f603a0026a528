package checkout

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/int-arsh/akash-ecom/internal/cart"
	"github.com/int-arsh/akash-ecom/internal/domain"
	"github.com/int-arsh/akash-ecom/internal/payment"
)

// SessionCreator is the one operation the coordinator needs from the payment
// collaborator.
type SessionCreator interface {
	CreateSession(ctx context.Context, req payment.CreateSessionRequest) (*domain.PaymentSession, error)
}

// ReplayStore remembers which idempotency keys already produced a redirect
// URL, so a double submission from one user gesture fires one session call.
type ReplayStore interface {
	GetCheckout(ctx context.Context, key string) (string, error)
	SaveCheckout(ctx context.Context, key, redirectURL string) error
}

// Service gates progression into payment: the cart must be non-empty and the
// email valid before the collaborator is contacted at all. On success the
// caller hands the user off to the returned URL; on failure the caller stays
// on the form and may resubmit.
type Service struct {
	payments SessionCreator
	replays  ReplayStore
}

func NewService(payments SessionCreator, replays ReplayStore) *Service {
	return &Service{
		payments: payments,
		replays:  replays,
	}
}

// Submit validates the checkout, snapshots the cart, and asks the
// collaborator for a payment session. idempotencyKey is optional; when set,
// a repeated key replays the previously issued redirect URL.
func (s *Service) Submit(ctx context.Context, c domain.Cart, email, idempotencyKey string) (string, error) {
	if c.Empty() {
		return "", ErrEmptyCart
	}
	if err := ValidateEmail(email); err != nil {
		return "", err
	}

	if idempotencyKey != "" {
		url, err := s.replays.GetCheckout(ctx, idempotencyKey)
		if err == nil {
			log.Printf("duplicate checkout detected idempotency_key=%s, replaying redirect", idempotencyKey)
			return url, nil
		}
		if !errors.Is(err, cart.ErrCheckoutNotFound) {
			log.Printf("checkout replay lookup error: %v", err) // degrade to a fresh session
		}
	}

	request := domain.NewCheckoutRequest(email, c)
	session, err := s.payments.CreateSession(ctx, toSessionRequest(request))
	if err != nil {
		return "", fmt.Errorf("create checkout session: %w", err)
	}
	if session.URL == "" {
		return "", ErrNoRedirectURL
	}

	if idempotencyKey != "" {
		if err := s.replays.SaveCheckout(ctx, idempotencyKey, session.URL); err != nil {
			log.Printf("checkout replay save error: %v", err) // best effort
		}
	}

	return session.URL, nil
}

func toSessionRequest(request domain.CheckoutRequest) payment.CreateSessionRequest {
	items := make([]payment.SessionItem, 0, len(request.Lines))
	for _, line := range request.Lines {
		items = append(items, payment.SessionItem{
			ProductID: line.ProductID,
			Name:      line.Name,
			Price:     line.Price,
			Quantity:  line.Quantity,
		})
	}
	return payment.CreateSessionRequest{
		Items:         items,
		CustomerEmail: request.Email,
	}
}
