package user

import (
	"asset-manager-api/internal/domain/user"
)

func ToResponseUser(uDomain user.User) User {
	return User{
		PID:        uDomain.PID,
		Role:       string(uDomain.Role),
		RootFolder: uDomain.RootFolder,
		CreatedAt:  uDomain.CreatedAt,
	}
}
