package services

import (
	"context"
	"net/http"
	"path"
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"asset-manager-api/internal/application/ports"
	domain "asset-manager-api/internal/domain/asset"
	"asset-manager-api/internal/domain/user"
	"asset-manager-api/internal/infrastructure/mq"
	"asset-manager-api/internal/infrastructure/secrets"
	"asset-manager-api/internal/infrastructure/storage"
	"asset-manager-api/pkg/apperr"
)

const maxBaseNameLen = 100

var fileSafeRe = regexp.MustCompile(`[^A-Za-z0-9\.\_\- ]+`)

type AssetService struct {
	assetRepository domain.Repository
	userRepository  user.Repository
	storage         *storage.Manager
	mq              ports.RabbitMQ
	mCounter        *prometheus.CounterVec
}

func NewAssetService(
	assetRepository domain.Repository,
	userRepository user.Repository,
	storage *storage.Manager,
	mq ports.RabbitMQ,
	mCounter *prometheus.CounterVec,
) ports.AssetService {
	return &AssetService{
		assetRepository: assetRepository,
		userRepository:  userRepository,
		storage:         storage,
		mq:              mq,
		mCounter:        mCounter,
	}
}

// CreateAsset creates the physical entry and its record and returns
// the path the asset is reachable under. The record is written after
// the filesystem effect: a crash in between leaves an orphan file,
// never a record pointing at nothing.
func (as *AssetService) CreateAsset(ctx context.Context, owner *user.User, opts domain.CreateOptions) (string, error) {
	if !owner.Role.CanCreateAsset() {
		return "", apperr.PermissionDenied("user cannot create assets")
	}

	// Uploaded names are untrusted: a trailing-slash destination takes
	// the sanitized upload name, an explicit one has its final segment
	// sanitized.
	reqPath := opts.Path
	if opts.Type == domain.TypeFile && opts.UploadName != "" {
		if strings.HasSuffix(reqPath, "/") {
			reqPath = path.Join(reqPath, SanitizeFileName(opts.UploadName))
		} else {
			reqPath = path.Join(path.Dir(reqPath), SanitizeFileName(path.Base(reqPath)))
		}
	}

	clean, err := normalizePath(reqPath)
	if err != nil {
		return "", err
	}

	var custom *string
	if opts.CustomPath != nil && *opts.CustomPath != "" {
		c, err := normalizePath(*opts.CustomPath)
		if err != nil {
			return "", err
		}
		custom = &c
	}

	logical := clean
	if owner.RootFolder != nil {
		logical = path.Join(*owner.RootFolder, clean)
	}

	if _, err = as.storage.Create(storage.CreateOptions{
		Path:          logical,
		Type:          opts.Type,
		CreateParents: opts.CreateParents,
		TmpFile:       opts.TmpFile,
	}); err != nil {
		return "", err
	}

	created, err := as.assetRepository.CreateAsset(ctx, domain.Asset{
		Path:       logical,
		CustomPath: custom,
		UserID:     owner.ID,
		Type:       opts.Type,
		Public:     opts.Public,
	})
	if err != nil {
		return "", err
	}

	for _, pid := range opts.SharedWith {
		grantee, err := as.userRepository.FetchUserByPID(ctx, pid)
		if err != nil {
			if apperr.IsKind(err, apperr.KindNotFound) {
				return "", apperr.NotFound("shared user not found")
			}
			return "", err
		}
		if err = as.assetRepository.CreateSharing(ctx, domain.Sharing{
			AssetID:    created.ID,
			UserID:     grantee.ID,
			Permission: domain.PermissionRead,
		}); err != nil {
			return "", err
		}
	}

	as.mq.GetInputChan() <- mq.Event{
		Id:       uuid.New(),
		TS:       time.Now(),
		Method:   http.MethodPost,
		ActorPID: owner.PID.String(),
		Resource: mq.Resource{Kind: "asset", Ref: created.URLPath()},
	}

	as.mCounter.WithLabelValues("asset_created_total").Inc()

	return created.URLPath(), nil
}

// DeleteAsset removes an asset the requester owns, record first so a
// failed filesystem removal can be retried without a dangling record.
func (as *AssetService) DeleteAsset(ctx context.Context, requester *user.User, t domain.Type, reqPath string) error {
	reqPath = strings.TrimSuffix(reqPath, "/")

	a, err := as.assetRepository.FetchAssetByPath(ctx, reqPath, t)
	if err != nil {
		return err
	}

	if a.UserID != requester.ID {
		return apperr.PermissionDenied("user does not own this asset")
	}

	if err = as.assetRepository.DeleteAsset(ctx, a.ID); err != nil {
		return err
	}
	if err = as.storage.Remove(a.Path, t); err != nil {
		return err
	}

	as.mq.GetInputChan() <- mq.Event{
		Id:       uuid.New(),
		TS:       time.Now(),
		Method:   http.MethodDelete,
		ActorPID: requester.PID.String(),
		Resource: mq.Resource{Kind: "asset", Ref: a.URLPath()},
	}

	as.mCounter.WithLabelValues("asset_deleted_total").Inc()

	return nil
}

// normalizePath cleans a client-supplied logical path: traversal
// segments are resolved away, slashes trimmed, the reserved secrets
// name rejected anywhere in the path.
func normalizePath(p string) (string, error) {
	clean := strings.Trim(path.Clean("/"+strings.ReplaceAll(p, "\\", "/")), "/")
	if clean == "" || clean == "." {
		return "", apperr.Parsing("invalid asset path")
	}

	for _, seg := range strings.Split(clean, "/") {
		if seg == secrets.Filename {
			return "", apperr.PermissionDenied("access denied")
		}
	}

	return clean, nil
}

// SanitizeFileName reduces an uploaded file name to a safe ASCII base
// name, preserving the extension.
func SanitizeFileName(original string) string {
	if original == "" {
		return "file"
	}

	s := strings.TrimSpace(original)
	s = strings.ReplaceAll(s, "\\", "/")
	s = path.Base(s)

	if s == "." || s == ".." || s == "" {
		return "file"
	}

	t := transform.Chain(norm.NFD, transform.RemoveFunc(isMn), norm.NFC)
	s, _, _ = transform.String(t, s)

	ext := strings.ToLower(path.Ext(s))
	base := strings.TrimSuffix(s, ext)

	base = fileSafeRe.ReplaceAllString(base, "-")
	base = strings.Trim(base, "- .")
	if len(base) > maxBaseNameLen {
		base = base[:maxBaseNameLen]
	}
	if base == "" {
		base = "file"
	}

	return base + ext
}

func isMn(r rune) bool {
	return unicode.Is(unicode.Mn, r)
}
