package user

import (
	"time"

	"github.com/google/uuid"

	"asset-manager-api/pkg/apperr"
)

type (
	ID   uint64
	UUID = uuid.UUID
	Role string
)

const (
	RoleAdmin   Role = "Admin"
	RoleManager Role = "Manager"
	RoleBasic   Role = "Basic"
)

func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin, RoleManager, RoleBasic:
		return Role(s), nil
	default:
		return "", apperr.Newf(apperr.KindParsing, "unknown role %q", s)
	}
}

// CanCreateAsset reports whether the role may mutate storage. Basic
// users are read-only consumers of assets shared with them.
func (r Role) CanCreateAsset() bool {
	return r == RoleAdmin || r == RoleManager
}

// User is an end-user, either a standalone admin or managed by a
// client. RootFolder, when set, scopes every asset path the user
// creates under that prefix.
type User struct {
	ID           ID
	PID          UUID // stable public identifier used in login requests
	Role         Role
	ClientID     *uint64
	RootFolder   *string
	PasswordHash *string
	CreatedAt    time.Time
}

type Users []*User

// LoginTokens is the access/refresh pair issued at login. Expiries are
// absolute unix seconds.
type LoginTokens struct {
	Access     string
	AccessExp  int64
	Refresh    string
	RefreshExp int64
}
