package domain

import "fmt"

// OrderStatus is the status token accepted by the collaborator's
// update-order-status operation.
type OrderStatus string

const (
	OrderStatusPaid   OrderStatus = "paid"
	OrderStatusFailed OrderStatus = "failed"
)

func (s OrderStatus) String() string {
	return string(s)
}

// OrderConfirmation is the collaborator's verify-payment response. Amount is
// in minor currency units (cents).
type OrderConfirmation struct {
	OrderID string `json:"order_id"`
	Email   string `json:"email"`
	Amount  int64  `json:"amount"`
}

// AmountPaid renders the confirmed amount for display, e.g. 2599 -> "$25.99".
func (o OrderConfirmation) AmountPaid() string {
	return FormatAmount(o.Amount)
}

// FormatAmount converts minor currency units to a display string.
func FormatAmount(minor int64) string {
	return fmt.Sprintf("$%.2f", float64(minor)/100)
}
