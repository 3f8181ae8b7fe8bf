package client

import "time"

type Client struct {
	ID        uint64
	PID       string
	Name      string
	CreatedAt time.Time
}
