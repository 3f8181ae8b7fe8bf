package rest

import (
	"bytes"
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"asset-manager-api/internal/application/ports"
	domain "asset-manager-api/internal/domain/asset"
	userDomain "asset-manager-api/internal/domain/user"
	"asset-manager-api/internal/infrastructure/token"
	"asset-manager-api/pkg/apperr"
)

type FakeAssetService struct {
	CreateAssetFunc func(ctx context.Context, owner *userDomain.User, opts domain.CreateOptions) (string, error)
	DeleteAssetFunc func(ctx context.Context, requester *userDomain.User, t domain.Type, path string) error
}

func (f *FakeAssetService) CreateAsset(ctx context.Context, owner *userDomain.User, opts domain.CreateOptions) (string, error) {
	if f.CreateAssetFunc == nil {
		return "", errors.New("not used")
	}
	return f.CreateAssetFunc(ctx, owner, opts)
}

func (f *FakeAssetService) DeleteAsset(ctx context.Context, requester *userDomain.User, t domain.Type, path string) error {
	if f.DeleteAssetFunc == nil {
		return errors.New("not used")
	}
	return f.DeleteAssetFunc(ctx, requester, t, path)
}

type FakeResolver struct {
	ResolveFunc func(ctx context.Context, t domain.Type, path string, requester *userDomain.User) (*domain.Resolved, error)
}

func (f *FakeResolver) Resolve(ctx context.Context, t domain.Type, path string, requester *userDomain.User) (*domain.Resolved, error) {
	if f.ResolveFunc == nil {
		return nil, errors.New("not used")
	}
	return f.ResolveFunc(ctx, t, path, requester)
}

type FakeAuth struct {
	AuthenticateFunc func(ctx context.Context, headerValue string) (*userDomain.User, error)
}

func (f *FakeAuth) Login(context.Context, userDomain.UUID, ports.LoginOptions) (*userDomain.LoginTokens, error) {
	return nil, errors.New("not used")
}

func (f *FakeAuth) Authenticate(ctx context.Context, headerValue string) (*userDomain.User, error) {
	if f.AuthenticateFunc == nil {
		return nil, apperr.Authorization("invalid token")
	}
	return f.AuthenticateFunc(ctx, headerValue)
}

func setupAssetRouter(t *testing.T, svc ports.AssetService, resolver ports.AccessResolver, auth ports.Auth) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	NewAssetController(r, svc, resolver, auth, zap.NewNop(), t.TempDir())

	return r
}

func TestGetAssetFileServed(t *testing.T) {
	dir := t.TempDir()
	phys := filepath.Join(dir, "hello.txt")
	require.NoError(t, os.WriteFile(phys, []byte("hello world"), 0o644))

	resolver := &FakeResolver{
		ResolveFunc: func(_ context.Context, ty domain.Type, p string, requester *userDomain.User) (*domain.Resolved, error) {
			assert.Equal(t, domain.TypeFile, ty)
			assert.Equal(t, "docs/hello.txt", p)
			assert.Nil(t, requester)
			return &domain.Resolved{
				Asset:        &domain.Asset{Path: p, Type: ty, Public: true},
				PhysicalPath: phys,
			}, nil
		},
	}
	r := setupAssetRouter(t, &FakeAssetService{}, resolver, &FakeAuth{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, RouteAssets+"/file/docs/hello.txt", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "hello world", w.Body.String())
}

func TestGetAssetFolderListing(t *testing.T) {
	resolver := &FakeResolver{
		ResolveFunc: func(_ context.Context, ty domain.Type, p string, _ *userDomain.User) (*domain.Resolved, error) {
			return &domain.Resolved{
				Asset: &domain.Asset{Path: p, Type: ty, Public: true},
				Entries: []domain.Entry{
					{Path: "docs/a.txt", Label: "a.txt", Type: domain.TypeFile},
					{Path: "docs/sub", Label: "sub", Type: domain.TypeFolder},
				},
			}, nil
		},
	}
	r := setupAssetRouter(t, &FakeAssetService{}, resolver, &FakeAuth{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, RouteAssets+"/folder/docs", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, w.Body.String(), "<a href='"+RouteAssets+"/file/docs/a.txt'>a.txt</a>")
	assert.Contains(t, w.Body.String(), "<a href='"+RouteAssets+"/folder/docs/sub'>sub</a>")
}

func TestGetAssetEmptyFolder(t *testing.T) {
	resolver := &FakeResolver{
		ResolveFunc: func(_ context.Context, ty domain.Type, p string, _ *userDomain.User) (*domain.Resolved, error) {
			return &domain.Resolved{Asset: &domain.Asset{Path: p, Type: ty, Public: true}}, nil
		},
	}
	r := setupAssetRouter(t, &FakeAssetService{}, resolver, &FakeAuth{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, RouteAssets+"/folder/empty", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "<p>No content found.</p>", w.Body.String())
}

func TestGetAssetErrorStatuses(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"not found", apperr.NotFound("asset not found"), http.StatusNotFound},
		{"denied", apperr.PermissionDenied("access denied"), http.StatusForbidden},
		{"internal", apperr.Internal("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resolver := &FakeResolver{
				ResolveFunc: func(context.Context, domain.Type, string, *userDomain.User) (*domain.Resolved, error) {
					return nil, tt.err
				},
			}
			r := setupAssetRouter(t, &FakeAssetService{}, resolver, &FakeAuth{})

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, RouteAssets+"/file/x.txt", nil)
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestGetAssetBadType(t *testing.T) {
	r := setupAssetRouter(t, &FakeAssetService{}, &FakeResolver{}, &FakeAuth{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, RouteAssets+"/blob/x.txt", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateAssetRequiresAuth(t *testing.T) {
	r := setupAssetRouter(t, &FakeAssetService{}, &FakeResolver{}, &FakeAuth{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, RouteAssets+"/folder/new", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCreateAssetFileUpload(t *testing.T) {
	owner := &userDomain.User{ID: 1, Role: userDomain.RoleManager}
	auth := &FakeAuth{
		AuthenticateFunc: func(context.Context, string) (*userDomain.User, error) {
			return owner, nil
		},
	}
	svc := &FakeAssetService{
		CreateAssetFunc: func(_ context.Context, _ *userDomain.User, opts domain.CreateOptions) (string, error) {
			assert.Equal(t, "docs/", opts.Path)
			assert.Equal(t, domain.TypeFile, opts.Type)
			assert.Equal(t, "Weird Näme.TXT", opts.UploadName)
			require.NotEmpty(t, opts.TmpFile)

			raw, err := os.ReadFile(opts.TmpFile)
			require.NoError(t, err)
			assert.Equal(t, "payload", string(raw))

			return "docs/Weird-Name.txt", nil
		},
	}
	r := setupAssetRouter(t, svc, &FakeResolver{}, auth)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", "Weird Näme.TXT")
	require.NoError(t, err)
	_, err = part.Write([]byte("payload"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, RouteAssets+"/file/docs/", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer whatever")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"path":"docs/Weird-Name.txt"`)
}

func TestCreateAssetFolderAuthorized(t *testing.T) {
	owner := &userDomain.User{ID: 1, Role: userDomain.RoleManager}

	session := token.NewSessionService([]byte("test-secret"), "Bearer")
	tok, err := session.Create(1, 900, token.TypeAccess)
	require.NoError(t, err)

	auth := &FakeAuth{
		AuthenticateFunc: func(_ context.Context, headerValue string) (*userDomain.User, error) {
			if _, err := session.Decode(headerValue); err != nil {
				return nil, err
			}
			return owner, nil
		},
	}
	svc := &FakeAssetService{
		CreateAssetFunc: func(_ context.Context, got *userDomain.User, opts domain.CreateOptions) (string, error) {
			assert.Equal(t, owner, got)
			assert.Equal(t, "new", opts.Path)
			assert.Equal(t, domain.TypeFolder, opts.Type)
			return "new", nil
		},
	}
	r := setupAssetRouter(t, svc, &FakeResolver{}, auth)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, RouteAssets+"/folder/new", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"path":"new"`)
}
