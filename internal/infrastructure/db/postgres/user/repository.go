package user

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	domain "asset-manager-api/internal/domain/user"
	"asset-manager-api/internal/infrastructure/db/postgres"
	"asset-manager-api/internal/infrastructure/sqlbuilder"
	"asset-manager-api/pkg/apperr"
)

type Repository struct {
	db postgres.DB
	q  queries
}

func NewRepository(db postgres.DB, backend sqlbuilder.Backend) (domain.Repository, error) {
	q, err := buildQueries(backend)
	if err != nil {
		return nil, err
	}
	return &Repository{db: db, q: q}, nil
}

func (r *Repository) CreateUser(ctx context.Context, req domain.User) (*domain.User, error) {
	u := new(User)

	err := r.db.QueryRow(
		ctx,
		r.q.insertUser,
		req.PID, string(req.Role), req.ClientID, req.RootFolder, req.PasswordHash,
	).Scan(
		&u.ID,
		&u.PID,
		&u.Role,
		&u.ClientID,
		&u.RootFolder,
		&u.PasswordHash,
		&u.CreatedAt,
	)
	if err != nil {
		if postgres.IsPgUniqueViolation(err) {
			return nil, apperr.Database("user already exists")
		}
		return nil, apperr.Wrap(apperr.KindDatabase, "unable to create user", err)
	}

	return fromDBModel(u), nil
}

func (r *Repository) FetchUserByID(ctx context.Context, id domain.ID) (*domain.User, error) {
	return r.fetch(ctx, r.q.selectUserByID, uint64(id))
}

func (r *Repository) FetchUserByPID(ctx context.Context, pid domain.UUID) (*domain.User, error) {
	return r.fetch(ctx, r.q.selectUserByPID, pid)
}

func (r *Repository) fetch(ctx context.Context, query string, arg any) (*domain.User, error) {
	u := new(User)

	err := r.db.QueryRow(ctx, query, arg).Scan(
		&u.ID,
		&u.PID,
		&u.Role,
		&u.ClientID,
		&u.RootFolder,
		&u.PasswordHash,
		&u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("user not found")
		}
		return nil, apperr.Wrap(apperr.KindDatabase, "unable to fetch user", err)
	}

	return fromDBModel(u), nil
}

func (r *Repository) DeleteUser(ctx context.Context, id domain.ID) error {
	if _, err := r.db.Exec(ctx, r.q.deleteUserByID, uint64(id)); err != nil {
		return apperr.Wrap(apperr.KindDatabase, "unable to delete user", err)
	}
	return nil
}
