package checkout

import (
	"regexp"
	"strings"
)

// Matches local-part@domain.tld with no whitespace. Deliberately loose:
// real validation happens when the collaborator emails the receipt.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidateEmail checks the customer email before any network call is made.
// It distinguishes a missing email from a malformed one so the form can show
// a field-level message for each.
func ValidateEmail(email string) error {
	if strings.TrimSpace(email) == "" {
		return ErrEmailRequired
	}
	if !emailPattern.MatchString(email) {
		return ErrInvalidEmail
	}
	return nil
}
