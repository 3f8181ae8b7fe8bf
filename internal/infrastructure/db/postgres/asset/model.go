package asset

import "time"

type (
	Asset struct {
		ID         uint64
		Path       string
		CustomPath *string
		UserID     uint64
		Type       string
		Public     bool
		CreatedAt  time.Time
	}
	Sharing struct {
		AssetID    uint64
		UserID     uint64
		Permission string
	}
)
