package services

import (
	"context"
	"time"

	"golang.org/x/crypto/bcrypt"

	"asset-manager-api/internal/application/ports"
	domain "asset-manager-api/internal/domain/user"
	"asset-manager-api/internal/infrastructure/token"
	"asset-manager-api/pkg/apperr"
)

type AuthService struct {
	userRepository domain.Repository
	session        *token.SessionService
	accessTTL      int64
	refreshTTL     int64
}

func NewAuthService(
	userRepository domain.Repository,
	session *token.SessionService,
	accessTTL int64,
	refreshTTL int64,
) ports.Auth {
	return &AuthService{
		userRepository: userRepository,
		session:        session,
		accessTTL:      accessTTL,
		refreshTTL:     refreshTTL,
	}
}

// Login authenticates a user by public identifier and, when the
// account carries a password hash, the supplied password. A missing
// account and a wrong password are indistinguishable to the caller.
func (as *AuthService) Login(ctx context.Context, pid domain.UUID, opts ports.LoginOptions) (*domain.LoginTokens, error) {
	u, err := as.userRepository.FetchUserByPID(ctx, pid)
	if err != nil {
		if apperr.IsKind(err, apperr.KindNotFound) {
			return nil, apperr.Authorization("invalid credentials")
		}
		return nil, err
	}

	if u.PasswordHash != nil {
		if opts.Password == nil {
			return nil, apperr.Authorization("invalid credentials")
		}
		if err = bcrypt.CompareHashAndPassword([]byte(*u.PasswordHash), []byte(*opts.Password)); err != nil {
			return nil, apperr.Authorization("invalid credentials")
		}
	}

	accessTTL := as.accessTTL
	if opts.AccessTTL != nil {
		accessTTL = *opts.AccessTTL
	}
	refreshTTL := as.refreshTTL
	if opts.RefreshTTL != nil {
		refreshTTL = *opts.RefreshTTL
	}

	access, err := as.session.Create(uint64(u.ID), accessTTL, token.TypeAccess)
	if err != nil {
		return nil, err
	}
	refresh, err := as.session.Create(uint64(u.ID), refreshTTL, token.TypeRefresh)
	if err != nil {
		return nil, err
	}

	now := time.Now().Unix()

	return &domain.LoginTokens{
		Access:     access,
		AccessExp:  now + accessTTL,
		Refresh:    refresh,
		RefreshExp: now + refreshTTL,
	}, nil
}

// Authenticate resolves an Authorization header into the requesting
// user. Refresh tokens are not accepted here: they only buy new access
// tokens, never direct API access.
func (as *AuthService) Authenticate(ctx context.Context, headerValue string) (*domain.User, error) {
	claims, err := as.session.Decode(headerValue)
	if err != nil {
		return nil, err
	}
	if claims.Ty != token.TypeAccess {
		return nil, apperr.Authorization("invalid token")
	}

	u, err := as.userRepository.FetchUserByID(ctx, domain.ID(claims.Sub))
	if err != nil {
		if apperr.IsKind(err, apperr.KindNotFound) {
			return nil, apperr.Authorization("invalid token")
		}
		return nil, err
	}

	return u, nil
}
