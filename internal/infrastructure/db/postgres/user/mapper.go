package user

import (
	domain "asset-manager-api/internal/domain/user"
)

func fromDBModel(model *User) *domain.User {
	return &domain.User{
		ID:           domain.ID(model.ID),
		PID:          model.PID,
		Role:         domain.Role(model.Role),
		ClientID:     model.ClientID,
		RootFolder:   model.RootFolder,
		PasswordHash: model.PasswordHash,
		CreatedAt:    model.CreatedAt,
	}
}
