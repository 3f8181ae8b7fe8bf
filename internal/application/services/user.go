package services

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/crypto/bcrypt"

	"asset-manager-api/internal/application/ports"
	"asset-manager-api/internal/domain/asset"
	domain "asset-manager-api/internal/domain/user"
	"asset-manager-api/internal/infrastructure/mq"
	"asset-manager-api/internal/infrastructure/storage"
	"asset-manager-api/pkg/apperr"
)

type UserService struct {
	userRepository domain.Repository
	storage        *storage.Manager
	mq             ports.RabbitMQ
	mCounter       *prometheus.CounterVec
}

func NewUserService(
	userRepository domain.Repository,
	storage *storage.Manager,
	mq ports.RabbitMQ,
	mCounter *prometheus.CounterVec,
) ports.UserService {
	return &UserService{
		userRepository: userRepository,
		storage:        storage,
		mq:             mq,
		mCounter:       mCounter,
	}
}

// RegisterUser creates a user owned by the calling client. The root
// folder, when given, is created eagerly so asset creation never races
// against a missing prefix.
func (us *UserService) RegisterUser(ctx context.Context, clientID uint64, opts ports.CreateUserOptions) (*domain.User, error) {
	u := domain.User{
		PID:        uuid.New(),
		Role:       opts.Role,
		ClientID:   &clientID,
		RootFolder: opts.RootFolder,
	}

	if opts.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*opts.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, apperr.Wrap(apperr.KindInternal, "unable to hash password", err)
		}
		h := string(hash)
		u.PasswordHash = &h
	}

	if opts.RootFolder != nil {
		if _, err := us.storage.Create(storage.CreateOptions{
			Path:          *opts.RootFolder,
			Type:          asset.TypeFolder,
			CreateParents: true,
		}); err != nil {
			return nil, err
		}
	}

	uRet, err := us.userRepository.CreateUser(ctx, u)
	if err != nil {
		return nil, err
	}

	us.mq.GetInputChan() <- mq.Event{
		Id:       uuid.New(),
		TS:       time.Now(),
		Method:   http.MethodPost,
		ActorPID: uRet.PID.String(),
		Resource: mq.Resource{Kind: "user", Ref: uRet.PID.String()},
	}

	us.mCounter.WithLabelValues("user_registered_total").Inc()

	return uRet, nil
}

func (us *UserService) FindClientUser(ctx context.Context, clientID uint64, pid domain.UUID) (*domain.User, error) {
	u, err := us.userRepository.FetchUserByPID(ctx, pid)
	if err != nil {
		return nil, err
	}

	if u.ClientID == nil || *u.ClientID != clientID {
		return nil, apperr.NotFound("user not found")
	}

	return u, nil
}

// DeleteUser removes a user on behalf of a client. Clients may only
// delete their own users, and never admins.
func (us *UserService) DeleteUser(ctx context.Context, clientID uint64, pid domain.UUID) error {
	u, err := us.userRepository.FetchUserByPID(ctx, pid)
	if err != nil {
		return err
	}

	if u.ClientID == nil || *u.ClientID != clientID {
		return apperr.PermissionDenied("client cannot delete this user")
	}
	if u.Role == domain.RoleAdmin {
		return apperr.PermissionDenied("client cannot delete admin")
	}

	if err = us.userRepository.DeleteUser(ctx, u.ID); err != nil {
		return err
	}

	us.mq.GetInputChan() <- mq.Event{
		Id:       uuid.New(),
		TS:       time.Now(),
		Method:   http.MethodDelete,
		ActorPID: pid.String(),
		Resource: mq.Resource{Kind: "user", Ref: pid.String()},
	}

	us.mCounter.WithLabelValues("user_deleted_total").Inc()

	return nil
}
