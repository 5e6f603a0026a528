package http

import (
	"net/http"
	"time"

	"github.com/google/uuid"
)

const cartCookieName = "cart_id"

const cartCookieMaxAge = 30 * time.Minute

func cartIDFromRequest(r *http.Request) string {
	cookie, err := r.Cookie(cartCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// ensureCartID returns the cart session ID from the request cookie, minting
// a fresh one (and setting the cookie) on the first cart mutation. The
// cookie is short-lived on purpose: an expired cookie means an abandoned
// cart, which reads back as empty.
func ensureCartID(w http.ResponseWriter, r *http.Request) string {
	if id := cartIDFromRequest(r); id != "" {
		return id
	}

	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     cartCookieName,
		Value:    id,
		Path:     "/",
		MaxAge:   int(cartCookieMaxAge.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}
