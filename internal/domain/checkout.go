package domain

// CheckoutRequest is the immutable snapshot handed to the payment
// collaborator: validated customer email, the cart lines as they were at
// submission time, and the total amount. Built once, never modified.
type CheckoutRequest struct {
	Email       string     `json:"email"`
	Lines       []CartLine `json:"lines"`
	TotalAmount float64    `json:"total_amount"`
}

// NewCheckoutRequest snapshots the cart by value so later mutations to the
// live cart cannot affect an in-flight checkout.
func NewCheckoutRequest(email string, cart Cart) CheckoutRequest {
	return CheckoutRequest{
		Email:       email,
		Lines:       cart.Lines(),
		TotalAmount: cart.Total(),
	}
}

// PaymentSession is the collaborator's answer to a create-session call. It
// is opaque to this system beyond the hosted payment page URL; the session
// identifier is embedded in that URL by the collaborator.
type PaymentSession struct {
	URL string `json:"url"`
}
