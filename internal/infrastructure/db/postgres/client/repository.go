package client

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	domain "asset-manager-api/internal/domain/client"
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

func (r *Repository) CreateClient(ctx context.Context, pid, name string) (*domain.Client, error) {
	c := new(Client)

	err := r.db.QueryRow(ctx, r.q.insertClient, pid, name).Scan(
		&c.ID,
		&c.PID,
		&c.Name,
		&c.CreatedAt,
	)
	if err != nil {
		if postgres.IsPgUniqueViolation(err) {
			return nil, apperr.Database("client already exists")
		}
		return nil, apperr.Wrap(apperr.KindDatabase, "unable to create client", err)
	}

	return fromDBModel(c), nil
}

func (r *Repository) FetchClientByPID(ctx context.Context, pid string) (*domain.Client, error) {
	c := new(Client)

	err := r.db.QueryRow(ctx, r.q.selectClientByPID, pid).Scan(
		&c.ID,
		&c.PID,
		&c.Name,
		&c.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("client not found")
		}
		return nil, apperr.Wrap(apperr.KindDatabase, "unable to fetch client", err)
	}

	return fromDBModel(c), nil
}

func (r *Repository) DeleteClient(ctx context.Context, id uint64) error {
	if _, err := r.db.Exec(ctx, r.q.deleteClientByID, id); err != nil {
		return apperr.Wrap(apperr.KindDatabase, "unable to delete client", err)
	}
	return nil
}
