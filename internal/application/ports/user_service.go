package ports

import (
	"context"

	"asset-manager-api/internal/domain/user"
)

// CreateUserOptions is what a client supplies when registering a user.
type CreateUserOptions struct {
	Role       user.Role
	RootFolder *string
	Password   *string
}

type UserService interface {
	RegisterUser(ctx context.Context, clientID uint64, opts CreateUserOptions) (*user.User, error)
	// FindClientUser looks up one of the client's own users. Users
	// belonging to another client are indistinguishable from missing.
	FindClientUser(ctx context.Context, clientID uint64, pid user.UUID) (*user.User, error)
	// DeleteUser enforces client ownership: a client may only delete
	// its own non-admin users.
	DeleteUser(ctx context.Context, clientID uint64, pid user.UUID) error
}
