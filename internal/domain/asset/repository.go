package asset

import (
	"context"

	"asset-manager-api/internal/domain/user"
)

type Repository interface {
	// FetchAssetByPath matches path against both the canonical and the
	// concealed path of records of the given type.
	FetchAssetByPath(ctx context.Context, path string, t Type) (*Asset, error)
	CreateAsset(ctx context.Context, req Asset) (*Asset, error)
	DeleteAsset(ctx context.Context, id uint64) error

	CreateSharing(ctx context.Context, req Sharing) error
	FetchSharing(ctx context.Context, assetID uint64, userID user.ID) (*Sharing, error)
}
