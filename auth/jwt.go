package auth

import (
	"errors"
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rpupo63/ambitious-journal-backend/errs"
)

// JWTAuthenticator accepts HS256 tokens signed with a shared secret. It backs
// local development and deployments without a Descope project.
type JWTAuthenticator struct {
	secret []byte
}

func NewJWTAuthenticator(secret string) (*JWTAuthenticator, error) {
	if len(secret) < 32 {
		return nil, errs.NewEnvironmentVariableError("ADMIN_JWT_SECRET")
	}
	return &JWTAuthenticator{secret: []byte(secret)}, nil
}

type adminClaims struct {
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

func (a *JWTAuthenticator) Authenticate(r *http.Request) (Session, error) {
	raw := bearerToken(r)
	if raw == "" {
		return Session{}, errs.NewMissingTokenError()
	}

	var claims adminClaims
	_, err := jwt.ParseWithClaims(raw, &claims, func(*jwt.Token) (any, error) {
		return a.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return Session{}, errs.NewExpiredTokenError()
	case err != nil:
		return Session{}, errs.NewInvalidTokenError(err)
	case claims.Subject == "":
		return Session{}, errs.NewInvalidTokenError(errors.New("token has no subject"))
	}
	return Session{UserID: claims.Subject, Email: claims.Email}, nil
}

// Logout drops the session cookie; the token itself stays valid until it expires.
func (a *JWTAuthenticator) Logout(w http.ResponseWriter, _ *http.Request) error {
	clearSessionCookie(w)
	return nil
}
