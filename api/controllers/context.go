package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/tradehub-io/tradehub-backend/api/middleware"
	pkgerrors "github.com/tradehub-io/tradehub-backend/pkg/errors"
)

// actorID pulls the authenticated user's id out of the request context. The
// auth middleware stores it as a string; a missing or malformed value means
// the middleware never ran.
func actorID(r *http.Request) (uuid.UUID, error) {
	raw := middleware.UserIDFromContext(r.Context())
	if raw == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid user id")
	}
	return id, nil
}
