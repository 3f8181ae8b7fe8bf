package services

import (
	"context"

	"github.com/google/uuid"

	"asset-manager-api/internal/application/ports"
	domain "asset-manager-api/internal/domain/client"
	"asset-manager-api/internal/infrastructure/token"
	"asset-manager-api/pkg/apperr"
)

type ClientService struct {
	clientRepository domain.Repository
	cipher           *token.ClientCipher
}

func NewClientService(
	clientRepository domain.Repository,
	cipher *token.ClientCipher,
) ports.ClientService {
	return &ClientService{
		clientRepository: clientRepository,
		cipher:           cipher,
	}
}

// CreateClient registers a new client and returns the opaque token
// that identifies it. The token wraps a fresh public identifier; the
// identifier itself never leaves the server in the clear.
func (cs *ClientService) CreateClient(ctx context.Context, name string) (string, error) {
	pid := uuid.NewString()

	tok, err := cs.cipher.Encrypt(pid)
	if err != nil {
		return "", err
	}

	if _, err = cs.clientRepository.CreateClient(ctx, pid, name); err != nil {
		return "", err
	}

	return tok, nil
}

// RegenerateToken re-issues the token for an existing client. The
// cipher is deterministic, so the result equals the original token as
// long as the secrets file has not been rotated.
func (cs *ClientService) RegenerateToken(ctx context.Context, clientPID string) (string, error) {
	if _, err := cs.clientRepository.FetchClientByPID(ctx, clientPID); err != nil {
		return "", err
	}

	return cs.cipher.Encrypt(clientPID)
}

// VerifyToken opens a client token and loads the matching client. A
// token that decrypts cleanly but matches no row is treated the same
// as a forged one.
func (cs *ClientService) VerifyToken(ctx context.Context, tok string) (*domain.Client, error) {
	pid, err := cs.cipher.Decrypt(tok)
	if err != nil {
		return nil, err
	}

	c, err := cs.clientRepository.FetchClientByPID(ctx, pid)
	if err != nil {
		if apperr.IsKind(err, apperr.KindNotFound) {
			return nil, apperr.Authorization("no such client")
		}
		return nil, err
	}

	return c, nil
}
