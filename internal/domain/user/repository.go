package user

import "context"

type Repository interface {
	CreateUser(ctx context.Context, req User) (*User, error)
	FetchUserByID(ctx context.Context, id ID) (*User, error)
	FetchUserByPID(ctx context.Context, pid UUID) (*User, error)
	DeleteUser(ctx context.Context, id ID) error
}
