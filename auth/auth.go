// Package auth validates admin sessions for the authoring endpoints.
package auth

import (
	"net/http"
	"strings"
)

// SessionCookie holds the bearer token when the admin UI keeps it in a cookie.
const SessionCookie = "journal_session"

// Session is the authenticated admin behind a request.
type Session struct {
	UserID string `json:"user_id"`
	Email  string `json:"email,omitempty"`
}

type Authenticator interface {
	// Authenticate returns the session behind r, or an errs.ApiErr with a 401 status.
	Authenticate(r *http.Request) (Session, error)
	Logout(w http.ResponseWriter, r *http.Request) error
}

// bearerToken reads the token from the Authorization header, falling back to the session cookie.
func bearerToken(r *http.Request) string {
	if header := r.Header.Get("Authorization"); header != "" {
		scheme, token, ok := strings.Cut(header, " ")
		if ok && strings.EqualFold(scheme, "Bearer") {
			return strings.TrimSpace(token)
		}
		return ""
	}
	if cookie, err := r.Cookie(SessionCookie); err == nil {
		return cookie.Value
	}
	return ""
}

func clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	})
}
