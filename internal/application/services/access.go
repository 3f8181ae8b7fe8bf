package services

import (
	"context"
	"os"
	"path"
	"strings"

	"go.uber.org/zap"

	"asset-manager-api/internal/application/ports"
	domain "asset-manager-api/internal/domain/asset"
	"asset-manager-api/internal/domain/user"
	"asset-manager-api/internal/infrastructure/secrets"
	"asset-manager-api/internal/infrastructure/storage"
	"asset-manager-api/pkg/apperr"
)

// AccessService is the single authority on asset reads. Every rule
// lives here: the reserved secrets name, custom path concealment,
// public/owner/sharing permission checks, and the per-child filtering
// of folder listings. Controllers only render what it returns.
type AccessService struct {
	assetRepository domain.Repository
	storage         *storage.Manager
	logger          *zap.Logger
}

func NewAccessService(
	assetRepository domain.Repository,
	storage *storage.Manager,
	logger *zap.Logger,
) ports.AccessResolver {
	return &AccessService{
		assetRepository: assetRepository,
		storage:         storage,
		logger:          logger,
	}
}

// Resolve decides whether the requester may read the asset at the
// given path. Denials for concealed or missing assets are reported as
// not found so probing cannot distinguish the two.
func (s *AccessService) Resolve(ctx context.Context, t domain.Type, reqPath string, requester *user.User) (*domain.Resolved, error) {
	reqPath = strings.TrimSuffix(reqPath, "/")

	if path.Base(reqPath) == secrets.Filename {
		return nil, apperr.PermissionDenied("access denied")
	}

	a, err := s.assetRepository.FetchAssetByPath(ctx, reqPath, t)
	if err != nil {
		return nil, err
	}

	// A concealed asset is only retrievable through its custom path.
	// Hitting the canonical path looks identical to a miss.
	if a.CustomPath != nil && *a.CustomPath != "" && reqPath == a.Path {
		return nil, apperr.NotFound("asset not found")
	}

	ok, err := s.canRead(ctx, a, requester)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.PermissionDenied("access denied")
	}

	phys := s.storage.PhysicalPath(a.Path)

	switch t {
	case domain.TypeFile:
		if !s.storage.FileExists(phys) {
			s.logger.Warn("asset record has no backing file", zap.String("path", a.Path))
			return nil, apperr.NotFound("asset not found")
		}
		return &domain.Resolved{Asset: a, PhysicalPath: phys}, nil
	case domain.TypeFolder:
		if !s.storage.DirExists(phys) {
			s.logger.Warn("asset record has no backing folder", zap.String("path", a.Path))
			return nil, apperr.NotFound("asset not found")
		}

		entries, err := s.listChildren(ctx, a, phys, requester)
		if err != nil {
			return nil, err
		}
		return &domain.Resolved{Asset: a, PhysicalPath: phys, Entries: entries}, nil
	default:
		return nil, apperr.Newf(apperr.KindParsing, "unknown asset type %q", t)
	}
}

// listChildren walks the physical folder and keeps only children the
// requester may read. Children without a record are skipped: they are
// scaffolding parents or leftovers, not served assets. Concealed
// children are listed under their custom path.
func (s *AccessService) listChildren(ctx context.Context, folder *domain.Asset, phys string, requester *user.User) ([]domain.Entry, error) {
	dirents, err := os.ReadDir(phys)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindIO, "unable to read folder", err)
	}

	entries := make([]domain.Entry, 0, len(dirents))
	for _, d := range dirents {
		name := d.Name()
		if name == secrets.Filename {
			continue
		}

		childType := domain.TypeFile
		if d.IsDir() {
			childType = domain.TypeFolder
		}

		child, err := s.assetRepository.FetchAssetByPath(ctx, folder.Path+"/"+name, childType)
		if err != nil {
			if apperr.IsKind(err, apperr.KindNotFound) {
				continue
			}
			return nil, err
		}

		ok, err := s.canRead(ctx, child, requester)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}

		entries = append(entries, domain.Entry{Path: child.URLPath(), Label: name, Type: childType})
	}

	return entries, nil
}

func (s *AccessService) canRead(ctx context.Context, a *domain.Asset, requester *user.User) (bool, error) {
	if a.Public {
		return true, nil
	}
	if requester == nil {
		return false, nil
	}
	if a.UserID == requester.ID {
		return true, nil
	}

	if _, err := s.assetRepository.FetchSharing(ctx, a.ID, requester.ID); err != nil {
		if apperr.IsKind(err, apperr.KindNotFound) {
			return false, nil
		}
		return false, err
	}

	return true, nil
}
