package validator

import (
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	domain "asset-manager-api/internal/domain/user"
	"asset-manager-api/internal/interface/api/rest/dto/auth"
	"asset-manager-api/internal/interface/api/rest/dto/bucket"
	"asset-manager-api/internal/interface/api/rest/dto/user"
)

const (
	minPasswordLen = 8
	maxPasswordLen = 72 // bcrypt safe
	maxPathLen     = 1024
)

func IsUUID(s string) (bool, uuid.UUID) {
	id, err := uuid.Parse(s)
	return err == nil, id
}

func ValidateLogin(r auth.LoginRequest) map[string]string {
	errs := make(map[string]string)

	if strings.TrimSpace(r.UserID) == "" {
		errs["user_id"] = "user_id is required"
	} else if ok, _ := IsUUID(r.UserID); !ok {
		errs["user_id"] = "user_id must be a valid UUID"
	}

	if r.Password != nil {
		if l := utf8.RuneCountInString(*r.Password); l < minPasswordLen || l > maxPasswordLen {
			errs["password"] = "password length must be 8-72 characters"
		}
	}

	if r.AccessTTL != nil && *r.AccessTTL <= 0 {
		errs["access_exp"] = "access_exp must be positive"
	}
	if r.RefreshTTL != nil && *r.RefreshTTL <= 0 {
		errs["refresh_exp"] = "refresh_exp must be positive"
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

func ValidateRegisterUser(r user.Request) map[string]string {
	errs := make(map[string]string)

	if _, err := domain.ParseRole(r.Role); err != nil {
		errs["role"] = "role must be one of Admin, Manager, Basic"
	}

	if r.RootFolder != nil {
		if f := strings.Trim(*r.RootFolder, "/ "); f == "" || len(f) > maxPathLen {
			errs["root_folder"] = "root_folder must be a non-empty path"
		}
	}

	if r.Password != nil {
		if l := utf8.RuneCountInString(*r.Password); l < minPasswordLen || l > maxPasswordLen {
			errs["password"] = "password length must be 8-72 characters"
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

func ValidateBucket(r bucket.Request) map[string]string {
	errs := make(map[string]string)

	if p := strings.Trim(r.Partition, "/ "); p == "" || len(p) > maxPathLen {
		errs["partition"] = "partition must be a non-empty path"
	}
	if r.PartitionSize != nil && *r.PartitionSize <= 0 {
		errs["partition_size"] = "partition_size must be positive"
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}
