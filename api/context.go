package api

import (
	"context"

	"github.com/rpupo63/ambitious-journal-backend/auth"
)

type keyType string

const (
	userIDKey  keyType = "userID"
	sessionKey keyType = "session"
)

// ctxWithSession stores the authenticated admin and their user ID.
func ctxWithSession(ctx context.Context, session auth.Session) context.Context {
	ctx = context.WithValue(ctx, sessionKey, session)
	return ctxWithUserID(ctx, session.UserID)
}

func ctxWithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

func ctxGetUserID(ctx context.Context) string {
	userID, _ := ctx.Value(userIDKey).(string)
	return userID
}

func ctxGetSession(ctx context.Context) (auth.Session, bool) {
	session, ok := ctx.Value(sessionKey).(auth.Session)
	return session, ok
}
