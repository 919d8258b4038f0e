package utils

import (
	"context"
	"time"
)

type contextKey string

const ContextSessionIDKey contextKey = "sessionID"

// SessionData is what the middleware layer needs to know about a session.
type SessionData struct {
	SessionID        string
	SelectedDistrict string
	ExpiresAt        time.Time
}

func GetSessionIDFromContext(ctx context.Context) (string, bool) {
	id := ctx.Value(ContextSessionIDKey)
	idStr, ok := id.(string)
	return idStr, ok
}
