package client

import (
	domain "asset-manager-api/internal/domain/client"
)

func fromDBModel(model *Client) *domain.Client {
	return &domain.Client{
		ID:        model.ID,
		PID:       model.PID,
		Name:      model.Name,
		CreatedAt: model.CreatedAt,
	}
}
