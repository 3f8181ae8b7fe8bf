package bucket

import (
	domain "asset-manager-api/internal/domain/bucket"
)

func fromDBModel(model *Bucket) *domain.Bucket {
	return &domain.Bucket{
		ID:        model.ID,
		Name:      model.Name,
		ClientID:  model.ClientID,
		MaxSize:   model.MaxSize,
		CreatedAt: model.CreatedAt,
	}
}
