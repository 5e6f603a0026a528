package checkout

import "errors"

var (
	ErrEmptyCart     = errors.New("cart is empty, nothing to check out")
	ErrEmailRequired = errors.New("email is required")
	ErrInvalidEmail  = errors.New("invalid email address")
	ErrNoRedirectURL = errors.New("checkout session has no redirect url")
)
