package asset

import (
	domain "asset-manager-api/internal/domain/asset"
	"asset-manager-api/internal/domain/user"
)

func fromDBModel(model *Asset) *domain.Asset {
	return &domain.Asset{
		ID:         model.ID,
		Path:       model.Path,
		CustomPath: model.CustomPath,
		UserID:     user.ID(model.UserID),
		Type:       domain.Type(model.Type),
		Public:     model.Public,
		CreatedAt:  model.CreatedAt,
	}
}

func fromDBSharing(model *Sharing) *domain.Sharing {
	return &domain.Sharing{
		AssetID:    model.AssetID,
		UserID:     user.ID(model.UserID),
		Permission: model.Permission,
	}
}
