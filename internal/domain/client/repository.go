package client

import "context"

type Repository interface {
	CreateClient(ctx context.Context, pid, name string) (*Client, error)
	FetchClientByPID(ctx context.Context, pid string) (*Client, error)
	DeleteClient(ctx context.Context, id uint64) error
}
