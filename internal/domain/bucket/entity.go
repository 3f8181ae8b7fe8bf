package bucket

import "time"

// Bucket is a named partition under which a client's users and assets
// are grouped, mainly for quota accounting over the partition's
// physical folder.
type Bucket struct {
	ID        uint64
	Name      string
	ClientID  uint64
	MaxSize   *int64 // bytes; nil means unbounded
	CreatedAt time.Time
}
