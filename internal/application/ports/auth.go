package ports

import (
	"context"

	"asset-manager-api/internal/domain/user"
)

// LoginOptions carries optional per-request TTL overrides; nil falls
// back to the configured defaults.
type LoginOptions struct {
	Password   *string
	AccessTTL  *int64
	RefreshTTL *int64
}

type Auth interface {
	Login(ctx context.Context, pid user.UUID, opts LoginOptions) (*user.LoginTokens, error)
	// Authenticate resolves a raw Authorization header value into the
	// requesting user.
	Authenticate(ctx context.Context, headerValue string) (*user.User, error)
}
