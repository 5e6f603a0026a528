package outcome

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/int-arsh/akash-ecom/internal/domain"
)

var ErrNoSessionID = errors.New("no session id")

// Collaborator is the slice of the payment backend the reconciler uses after
// the user returns from the hosted payment page.
type Collaborator interface {
	VerifyPayment(ctx context.Context, sessionID string) (*domain.OrderConfirmation, error)
	UpdateOrderStatus(ctx context.Context, orderID string, status domain.OrderStatus) error
}

// Reconciler confirms the outcome of a checkout attempt. Both entry points
// are safe to re-run on a browser refresh: nothing client-side records that
// an outcome was already handled.
type Reconciler struct {
	payments    Collaborator
	sfg         singleflight.Group // collapses concurrent verifications of one session
	markTimeout time.Duration
}

func NewReconciler(payments Collaborator) *Reconciler {
	return &Reconciler{
		payments:    payments,
		markTimeout: 5 * time.Second,
	}
}

// ConfirmSuccess verifies a returned session with the collaborator. An empty
// session ID fails immediately without a network call. Verification errors
// are wrapped, not interpreted: the charge may still have gone through
// server-side, which is why the caller shows a cautious message.
func (r *Reconciler) ConfirmSuccess(ctx context.Context, sessionID string) (*domain.OrderConfirmation, error) {
	if sessionID == "" {
		return nil, ErrNoSessionID
	}

	v, err, _ := r.sfg.Do(sessionID, func() (interface{}, error) {
		return r.payments.VerifyPayment(ctx, sessionID)
	})
	if err != nil {
		return nil, fmt.Errorf("verify payment: %w", err)
	}

	return v.(*domain.OrderConfirmation), nil
}

// MarkFailed best-effort marks an order as failed when the user lands on the
// failure page. The call runs as a detached task with its own deadline so it
// never blocks rendering; its result is deliberately discarded and only
// logged. A missing order ID is a no-op.
func (r *Reconciler) MarkFailed(orderID string) {
	if orderID == "" {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), r.markTimeout)
		defer cancel()
		if err := r.markFailed(ctx, orderID); err != nil {
			log.Printf("mark order failed error order_id=%s: %v", orderID, err)
			return
		}
		log.Printf("order %s marked as failed", orderID)
	}()
}

func (r *Reconciler) markFailed(ctx context.Context, orderID string) error {
	return r.payments.UpdateOrderStatus(ctx, orderID, domain.OrderStatusFailed)
}
