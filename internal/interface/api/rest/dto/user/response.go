package user

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	PID        uuid.UUID `json:"id"`
	Role       string    `json:"role"`
	RootFolder *string   `json:"root_folder,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}
