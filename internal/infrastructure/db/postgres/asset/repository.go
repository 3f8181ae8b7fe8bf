package asset

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	domain "asset-manager-api/internal/domain/asset"
	"asset-manager-api/internal/domain/user"
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

func (r *Repository) FetchAssetByPath(ctx context.Context, path string, t domain.Type) (*domain.Asset, error) {
	a := new(Asset)

	err := r.db.QueryRow(ctx, r.q.selectAssetByPath, path, path, string(t)).Scan(
		&a.ID,
		&a.Path,
		&a.CustomPath,
		&a.UserID,
		&a.Type,
		&a.Public,
		&a.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("asset not found")
		}
		return nil, apperr.Wrap(apperr.KindDatabase, "unable to fetch asset", err)
	}

	return fromDBModel(a), nil
}

func (r *Repository) CreateAsset(ctx context.Context, req domain.Asset) (*domain.Asset, error) {
	a := new(Asset)

	err := r.db.QueryRow(
		ctx,
		r.q.insertAsset,
		req.Path, req.CustomPath, uint64(req.UserID), string(req.Type), req.Public,
	).Scan(
		&a.ID,
		&a.Path,
		&a.CustomPath,
		&a.UserID,
		&a.Type,
		&a.Public,
		&a.CreatedAt,
	)
	if err != nil {
		if postgres.IsPgUniqueViolation(err) {
			return nil, apperr.Database("asset path already in use")
		}
		return nil, apperr.Wrap(apperr.KindDatabase, "unable to create asset", err)
	}

	return fromDBModel(a), nil
}

func (r *Repository) DeleteAsset(ctx context.Context, id uint64) error {
	if _, err := r.db.Exec(ctx, r.q.deleteAssetByID, id); err != nil {
		return apperr.Wrap(apperr.KindDatabase, "unable to delete asset", err)
	}
	return nil
}

func (r *Repository) CreateSharing(ctx context.Context, req domain.Sharing) error {
	_, err := r.db.Exec(ctx, r.q.insertSharing, req.AssetID, uint64(req.UserID), req.Permission)
	if err != nil {
		return apperr.Wrap(apperr.KindDatabase, "unable to create sharing", err)
	}
	return nil
}

func (r *Repository) FetchSharing(ctx context.Context, assetID uint64, userID user.ID) (*domain.Sharing, error) {
	s := new(Sharing)

	err := r.db.QueryRow(ctx, r.q.selectSharing, assetID, uint64(userID)).Scan(
		&s.AssetID,
		&s.UserID,
		&s.Permission,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("sharing not found")
		}
		return nil, apperr.Wrap(apperr.KindDatabase, "unable to fetch sharing", err)
	}

	return fromDBSharing(s), nil
}
