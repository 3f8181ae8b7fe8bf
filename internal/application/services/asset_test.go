package services

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"asset-manager-api/internal/domain/asset"
	"asset-manager-api/internal/domain/user"
	"asset-manager-api/internal/infrastructure/mq"
	"asset-manager-api/internal/infrastructure/storage"
	"asset-manager-api/pkg/apperr"
)

type fakeMQ struct {
	in chan mq.Event
}

func newFakeMQ() *fakeMQ {
	return &fakeMQ{in: make(chan mq.Event, 16)}
}

func (f *fakeMQ) Connect(context.Context, string) error { return nil }
func (f *fakeMQ) Init() error                           { return nil }
func (f *fakeMQ) PublisherWorker(context.Context)       {}
func (f *fakeMQ) GetInputChan() chan mq.Event           { return f.in }
func (f *fakeMQ) GetConn() *amqp091.Connection          { return nil }

func newTestCounter() *prometheus.CounterVec {
	return prometheus.NewCounterVec(prometheus.CounterOpts{Name: "test_total"}, []string{"event"})
}

type assetFixture struct {
	assets  *fakeAssetRepo
	users   *fakeUserRepo
	storage *storage.Manager
	mq      *fakeMQ
	svc     *AssetService
}

func newAssetFixture(t *testing.T) *assetFixture {
	t.Helper()

	f := &assetFixture{
		assets:  newFakeAssetRepo(),
		users:   newFakeUserRepo(),
		storage: storage.New(t.TempDir(), zap.NewNop()),
		mq:      newFakeMQ(),
	}
	f.svc = NewAssetService(f.assets, f.users, f.storage, f.mq, newTestCounter()).(*AssetService)

	return f
}

func TestCreateAssetBasicRoleDenied(t *testing.T) {
	f := newAssetFixture(t)

	u := &user.User{ID: 1, Role: user.RoleBasic}
	_, err := f.svc.CreateAsset(context.Background(), u, asset.CreateOptions{
		Path: "a.txt",
		Type: asset.TypeFile,
	})

	require.Error(t, err)
	assert.Equal(t, apperr.KindPermissionDenied, apperr.KindOf(err))
}

func TestCreateAssetRootFolderPrefix(t *testing.T) {
	f := newAssetFixture(t)

	require.NoError(t, os.MkdirAll(f.storage.PhysicalPath("tenant1"), 0o755))

	root := "tenant1"
	u := &user.User{ID: 1, Role: user.RoleManager, RootFolder: &root}

	got, err := f.svc.CreateAsset(context.Background(), u, asset.CreateOptions{
		Path: "notes.txt",
		Type: asset.TypeFile,
	})
	require.NoError(t, err)
	assert.Equal(t, "tenant1/notes.txt", got)

	stored, err := f.assets.FetchAssetByPath(context.Background(), "tenant1/notes.txt", asset.TypeFile)
	require.NoError(t, err)
	assert.Equal(t, user.ID(1), stored.UserID)
	assert.True(t, f.storage.FileExists(f.storage.PhysicalPath("tenant1/notes.txt")))

	ev := <-f.mq.GetInputChan()
	assert.Equal(t, "asset", ev.Resource.Kind)
	assert.Equal(t, "tenant1/notes.txt", ev.Resource.Ref)
}

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		in       string
		want     string
		wantKind apperr.Kind
	}{
		{in: "docs/a.txt", want: "docs/a.txt"},
		{in: "/docs/a.txt/", want: "docs/a.txt"},
		{in: "../../etc/passwd", want: "etc/passwd"},
		{in: "docs/../a.txt", want: "a.txt"},
		{in: `win\style\path`, want: "win/style/path"},
		{in: "", wantKind: apperr.KindParsing},
		{in: "/", wantKind: apperr.KindParsing},
		{in: "..", wantKind: apperr.KindParsing},
	}

	for _, tt := range tests {
		got, err := normalizePath(tt.in)
		if tt.want != "" {
			require.NoError(t, err, tt.in)
			assert.Equal(t, tt.want, got, tt.in)
			continue
		}
		require.Error(t, err, tt.in)
		assert.Equal(t, tt.wantKind, apperr.KindOf(err), tt.in)
	}
}

func TestCreateAssetCustomPathReturned(t *testing.T) {
	f := newAssetFixture(t)

	custom := "nice/alias"
	u := &user.User{ID: 1, Role: user.RoleAdmin}

	got, err := f.svc.CreateAsset(context.Background(), u, asset.CreateOptions{
		Path:       "real.txt",
		Type:       asset.TypeFile,
		CustomPath: &custom,
	})
	require.NoError(t, err)
	assert.Equal(t, "nice/alias", got)
}

func TestCreateAssetSharing(t *testing.T) {
	f := newAssetFixture(t)

	g1, err := f.users.CreateUser(context.Background(), user.User{PID: uuid.New(), Role: user.RoleBasic})
	require.NoError(t, err)
	g2, err := f.users.CreateUser(context.Background(), user.User{PID: uuid.New(), Role: user.RoleBasic})
	require.NoError(t, err)

	u := &user.User{ID: 100, Role: user.RoleAdmin}
	_, err = f.svc.CreateAsset(context.Background(), u, asset.CreateOptions{
		Path:       "doc.txt",
		Type:       asset.TypeFile,
		SharedWith: []user.UUID{g1.PID, g2.PID},
	})
	require.NoError(t, err)

	a, err := f.assets.FetchAssetByPath(context.Background(), "doc.txt", asset.TypeFile)
	require.NoError(t, err)

	_, err = f.assets.FetchSharing(context.Background(), a.ID, g1.ID)
	assert.NoError(t, err)
	_, err = f.assets.FetchSharing(context.Background(), a.ID, g2.ID)
	assert.NoError(t, err)
	_, err = f.assets.FetchSharing(context.Background(), a.ID, 999)
	assert.Error(t, err)
}

func TestCreateAssetSharingUnknownUser(t *testing.T) {
	f := newAssetFixture(t)

	u := &user.User{ID: 1, Role: user.RoleAdmin}
	_, err := f.svc.CreateAsset(context.Background(), u, asset.CreateOptions{
		Path:       "doc.txt",
		Type:       asset.TypeFile,
		SharedWith: []user.UUID{uuid.New()},
	})

	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestDeleteAssetOwnership(t *testing.T) {
	f := newAssetFixture(t)

	f.assets.add(asset.Asset{Path: "owned.txt", UserID: 1, Type: asset.TypeFile})
	mustWriteFile(t, f.storage, "owned.txt")

	err := f.svc.DeleteAsset(context.Background(), &user.User{ID: 2}, asset.TypeFile, "owned.txt")
	require.Error(t, err)
	assert.Equal(t, apperr.KindPermissionDenied, apperr.KindOf(err))

	require.NoError(t, f.svc.DeleteAsset(context.Background(), &user.User{ID: 1}, asset.TypeFile, "owned.txt"))
	assert.False(t, f.storage.FileExists(f.storage.PhysicalPath("owned.txt")))
}

func TestCreateAssetUploadNameSanitized(t *testing.T) {
	f := newAssetFixture(t)

	require.NoError(t, os.MkdirAll(f.storage.PhysicalPath("docs"), 0o755))
	u := &user.User{ID: 1, Role: user.RoleAdmin}

	t.Run("folder destination takes the upload name", func(t *testing.T) {
		got, err := f.svc.CreateAsset(context.Background(), u, asset.CreateOptions{
			Path:       "docs/",
			Type:       asset.TypeFile,
			UploadName: "Résumé*.doc",
		})
		require.NoError(t, err)
		assert.Equal(t, "docs/Resume.doc", got)
		assert.True(t, f.storage.FileExists(f.storage.PhysicalPath("docs/Resume.doc")))
	})

	t.Run("explicit destination gets its name cleaned", func(t *testing.T) {
		got, err := f.svc.CreateAsset(context.Background(), u, asset.CreateOptions{
			Path:       "docs/weird*name?.txt",
			Type:       asset.TypeFile,
			UploadName: "ignored.bin",
		})
		require.NoError(t, err)
		assert.Equal(t, "docs/weird-name.txt", got)
	})

	t.Run("no upload leaves the path alone", func(t *testing.T) {
		got, err := f.svc.CreateAsset(context.Background(), u, asset.CreateOptions{
			Path: "docs/Résumé.txt",
			Type: asset.TypeFile,
		})
		require.NoError(t, err)
		assert.Equal(t, "docs/Résumé.txt", got)
	})
}

func TestSanitizeFileName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"report.pdf", "report.pdf"},
		{"", "file"},
		{"..", "file"},
		{"../../evil.sh", "evil.sh"},
		{"weird*chars?.txt", "weird-chars.txt"},
		{"Résumé.doc", "Resume.doc"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, SanitizeFileName(tt.in), tt.in)
	}
}
