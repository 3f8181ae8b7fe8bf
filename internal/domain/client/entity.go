package client

import "time"

// Client is an integrating tenant. It is never authenticated by
// password: its identity is reconstructed from the opaque token that
// wraps its public identifier.
type Client struct {
	ID        uint64
	PID       string // UUID-shaped public identifier carried in tokens
	Name      string
	CreatedAt time.Time
}
