package services

import (
	"context"
	"crypto/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/chacha20poly1305"

	domain "asset-manager-api/internal/domain/client"
	"asset-manager-api/internal/infrastructure/secrets"
	"asset-manager-api/internal/infrastructure/token"
	"asset-manager-api/pkg/apperr"
)

type fakeClientRepo struct {
	clients map[string]*domain.Client
}

func newFakeClientRepo() *fakeClientRepo {
	return &fakeClientRepo{clients: make(map[string]*domain.Client)}
}

func (f *fakeClientRepo) CreateClient(_ context.Context, pid, name string) (*domain.Client, error) {
	c := &domain.Client{ID: uint64(len(f.clients) + 1), PID: pid, Name: name, CreatedAt: time.Now()}
	f.clients[pid] = c
	return c, nil
}

func (f *fakeClientRepo) FetchClientByPID(_ context.Context, pid string) (*domain.Client, error) {
	if c, ok := f.clients[pid]; ok {
		return c, nil
	}
	return nil, apperr.NotFound("client not found")
}

func (f *fakeClientRepo) DeleteClient(_ context.Context, id uint64) error {
	for pid, c := range f.clients {
		if c.ID == id {
			delete(f.clients, pid)
			return nil
		}
	}
	return apperr.NotFound("client not found")
}

func newTestCipher(t *testing.T) *token.ClientCipher {
	t.Helper()

	sec := &secrets.Secrets{
		ClientKey:   make([]byte, chacha20poly1305.KeySize),
		ClientNonce: make([]byte, chacha20poly1305.NonceSizeX),
	}
	_, err := rand.Read(sec.ClientKey)
	require.NoError(t, err)
	_, err = rand.Read(sec.ClientNonce)
	require.NoError(t, err)

	c, err := token.NewClientCipher(sec)
	require.NoError(t, err)

	return c
}

func TestClientTokenLifecycle(t *testing.T) {
	repo := newFakeClientRepo()
	svc := NewClientService(repo, newTestCipher(t))

	tok, err := svc.CreateClient(context.Background(), "acme")
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	c, err := svc.VerifyToken(context.Background(), tok)
	require.NoError(t, err)
	assert.Equal(t, "acme", c.Name)

	again, err := svc.RegenerateToken(context.Background(), c.PID)
	require.NoError(t, err)
	assert.Equal(t, tok, again)
}

func TestVerifyTokenUnknownClient(t *testing.T) {
	repo := newFakeClientRepo()
	cipher := newTestCipher(t)
	svc := NewClientService(repo, cipher)

	// decrypts fine, matches no row
	tok, err := cipher.Encrypt("00000000-0000-0000-0000-000000000000")
	require.NoError(t, err)

	_, err = svc.VerifyToken(context.Background(), tok)
	require.Error(t, err)
	assert.Equal(t, apperr.KindAuthorization, apperr.KindOf(err))
}

func TestVerifyTokenGarbage(t *testing.T) {
	svc := NewClientService(newFakeClientRepo(), newTestCipher(t))

	_, err := svc.VerifyToken(context.Background(), "not-a-token")
	require.Error(t, err)
	assert.Equal(t, apperr.KindAuthorization, apperr.KindOf(err))
}

func TestRegenerateTokenUnknownClient(t *testing.T) {
	svc := NewClientService(newFakeClientRepo(), newTestCipher(t))

	_, err := svc.RegenerateToken(context.Background(), "missing-pid")
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}
