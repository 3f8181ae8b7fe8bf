package bucket

import "time"

type Bucket struct {
	Name      string    `json:"name"`
	MaxSize   *int64    `json:"max_size,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type SizeResponse struct {
	Name string `json:"name"`
	Size int64  `json:"size_bytes"`
}
