package ports

import (
	"context"

	"asset-manager-api/internal/domain/client"
)

// ClientService issues and verifies the opaque tokens that identify
// integrating clients.
type ClientService interface {
	CreateClient(ctx context.Context, name string) (string, error)
	RegenerateToken(ctx context.Context, clientPID string) (string, error)
	VerifyToken(ctx context.Context, token string) (*client.Client, error)
}
