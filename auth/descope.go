package auth

import (
	"errors"
	"net/http"

	"github.com/descope/go-sdk/descope"
	"github.com/descope/go-sdk/descope/client"
	"github.com/rpupo63/ambitious-journal-backend/errs"
)

// descopeSessions is the part of the Descope auth API this package calls.
type descopeSessions interface {
	ValidateSessionWithRequest(request *http.Request) (bool, *descope.Token, error)
	Logout(request *http.Request, w http.ResponseWriter) error
}

// DescopeAuthenticator validates sessions issued by the Descope flows the admin UI embeds.
type DescopeAuthenticator struct {
	sessions descopeSessions
}

func NewDescopeAuthenticator(projectID string) (*DescopeAuthenticator, error) {
	if projectID == "" {
		return nil, errs.NewEnvironmentVariableError("DESCOPE_PROJECT_ID")
	}
	descopeClient, err := client.NewWithConfig(&client.Config{ProjectID: projectID})
	if err != nil {
		return nil, errs.NewConfigError("descope", err)
	}
	return &DescopeAuthenticator{sessions: descopeClient.Auth}, nil
}

func (a *DescopeAuthenticator) Authenticate(r *http.Request) (Session, error) {
	if bearerToken(r) == "" && !hasDescopeCookie(r) {
		return Session{}, errs.NewMissingTokenError()
	}
	ok, token, err := a.sessions.ValidateSessionWithRequest(r)
	if err != nil || !ok || token == nil {
		if err == nil {
			err = errors.New("descope rejected the session")
		}
		return Session{}, errs.NewInvalidTokenError(err)
	}
	session := Session{UserID: token.ID}
	if email, ok := token.Claims["email"].(string); ok {
		session.Email = email
	}
	return session, nil
}

func (a *DescopeAuthenticator) Logout(w http.ResponseWriter, r *http.Request) error {
	if err := a.sessions.Logout(r, w); err != nil {
		return errs.NewServiceUnreachableError("descope", err)
	}
	return nil
}

func hasDescopeCookie(r *http.Request) bool {
	_, err := r.Cookie(descope.SessionCookieName)
	return err == nil
}
