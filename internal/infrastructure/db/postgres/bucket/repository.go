package bucket

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	domain "asset-manager-api/internal/domain/bucket"
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

func (r *Repository) CreateBucket(ctx context.Context, req domain.Bucket) (*domain.Bucket, error) {
	b := new(Bucket)

	err := r.db.QueryRow(ctx, r.q.insertBucket, req.Name, req.ClientID, req.MaxSize).Scan(
		&b.ID,
		&b.Name,
		&b.ClientID,
		&b.MaxSize,
		&b.CreatedAt,
	)
	if err != nil {
		if postgres.IsPgUniqueViolation(err) {
			return nil, apperr.Database("bucket name already in use")
		}
		return nil, apperr.Wrap(apperr.KindDatabase, "unable to create bucket", err)
	}

	return fromDBModel(b), nil
}

func (r *Repository) FetchBucketByName(ctx context.Context, name string) (*domain.Bucket, error) {
	b := new(Bucket)

	err := r.db.QueryRow(ctx, r.q.selectBucketByName, name).Scan(
		&b.ID,
		&b.Name,
		&b.ClientID,
		&b.MaxSize,
		&b.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("bucket not found")
		}
		return nil, apperr.Wrap(apperr.KindDatabase, "unable to fetch bucket", err)
	}

	return fromDBModel(b), nil
}
