package cart

import (
	"context"
	"errors"

	"github.com/int-arsh/akash-ecom/internal/domain"
)

// Store holds shopping carts keyed by a generated cart session ID for the
// short window between catalog browsing and checkout. Entries expire on
// their own; losing one (e.g. an expired cookie) just means an empty cart.
//
// The same store keeps the idempotency mapping from a checkout key to the
// redirect URL already issued for it, so an accidental double submission
// replays the first result instead of creating a second payment session.
type Store interface {
	Get(ctx context.Context, cartID string) (domain.Cart, error)
	Save(ctx context.Context, cartID string, c domain.Cart) error
	Delete(ctx context.Context, cartID string) error

	GetCheckout(ctx context.Context, key string) (string, error)
	SaveCheckout(ctx context.Context, key, redirectURL string) error
}

var (
	ErrCartNotFound     = errors.New("cart not found")
	ErrCheckoutNotFound = errors.New("checkout not found")
)
