package ports

import (
	"context"

	"asset-manager-api/internal/domain/asset"
	"asset-manager-api/internal/domain/user"
)

// AccessResolver decides, for a (requester, asset) pair, whether the
// requester may read the asset, and lists folder children filtered by
// the same rules. requester may be nil for anonymous access.
type AccessResolver interface {
	Resolve(ctx context.Context, t asset.Type, path string, requester *user.User) (*asset.Resolved, error)
}

type AssetService interface {
	CreateAsset(ctx context.Context, owner *user.User, opts asset.CreateOptions) (string, error)
	DeleteAsset(ctx context.Context, requester *user.User, t asset.Type, path string) error
}
