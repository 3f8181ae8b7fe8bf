package user

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uint64
	PID          uuid.UUID
	Role         string
	ClientID     *uint64
	RootFolder   *string
	PasswordHash *string
	CreatedAt    time.Time
}
