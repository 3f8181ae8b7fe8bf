package asset

import (
	"time"

	"asset-manager-api/internal/domain/user"
	"asset-manager-api/pkg/apperr"
)

// Type is the kind of asset a record describes.
type Type string

const (
	TypeFile   Type = "file"
	TypeFolder Type = "folder"
)

func ParseType(s string) (Type, error) {
	switch Type(s) {
	case TypeFile, TypeFolder:
		return Type(s), nil
	default:
		return "", apperr.Newf(apperr.KindParsing, "unknown asset type %q", s)
	}
}

// Asset is a file or folder record. Path is the canonical logical
// path, unique across the whole asset namespace and already prefixed
// with the owner's root folder. CustomPath, when set, conceals the
// canonical path: the asset is only retrievable through CustomPath.
type Asset struct {
	ID         uint64
	Path       string
	CustomPath *string
	UserID     user.ID
	Type       Type
	Public     bool
	CreatedAt  time.Time
}

// URLPath is the path the asset should be linked by: the concealed
// path when one is set, the canonical path otherwise.
func (a *Asset) URLPath() string {
	if a.CustomPath != nil && *a.CustomPath != "" {
		return *a.CustomPath
	}
	return a.Path
}

// Sharing grants a user read access to a non-public asset. Rows for
// public assets are ignored: public already implies read for everyone.
type Sharing struct {
	AssetID    uint64
	UserID     user.ID
	Permission string
}

const PermissionRead = "read"

// Entry is one visible child in a folder listing.
type Entry struct {
	Path  string
	Label string
	Type  Type
}

// Resolved is a successful access decision: the matching record, its
// physical location, and, for folders, the permission-filtered child
// listing in lexicographic order.
type Resolved struct {
	Asset        *Asset
	PhysicalPath string
	Entries      []Entry
}

// CreateOptions carries everything needed to create an asset. Path is
// the destination before root-folder prefixing. TmpFile, for files, is
// an already-received upload to finalize into place; UploadName is the
// client-supplied name of that upload, used when Path names a folder
// destination.
type CreateOptions struct {
	Path          string
	Type          Type
	Public        bool
	CustomPath    *string
	CreateParents bool
	TmpFile       string
	UploadName    string
	SharedWith    []user.UUID
}
