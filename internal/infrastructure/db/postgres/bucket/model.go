package bucket

import "time"

type Bucket struct {
	ID        uint64
	Name      string
	ClientID  uint64
	MaxSize   *int64
	CreatedAt time.Time
}
