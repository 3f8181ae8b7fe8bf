// Package storage performs the physical side of asset lifecycle:
// creating and removing the files and directories that back asset
// records, finalizing uploads, and partition size accounting. It
// mutates nothing until the caller has authorized the operation.
package storage

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"asset-manager-api/internal/domain/asset"
	"asset-manager-api/pkg/apperr"
)

type Manager struct {
	root   string
	logger *zap.Logger
}

func New(root string, logger *zap.Logger) *Manager {
	return &Manager{root: root, logger: logger}
}

// Root is the directory all physical asset paths are resolved under.
func (m *Manager) Root() string { return m.root }

// PhysicalPath maps a logical (root-folder prefixed) asset path to its
// on-disk location.
func (m *Manager) PhysicalPath(logical string) string {
	return filepath.Join(m.root, filepath.FromSlash(logical))
}

// CreateOptions describes one physical creation. Path is the logical
// destination, already prefixed with the owner's root folder. TmpFile,
// for files, is a received upload that is moved into place; the upload
// is only durable once the move succeeds.
type CreateOptions struct {
	Path          string
	Type          asset.Type
	CreateParents bool
	TmpFile       string
}

// Create performs the filesystem effect for a new asset and returns
// the physical path. For folders, missing parents are an IO error
// unless CreateParents is set.
func (m *Manager) Create(opts CreateOptions) (string, error) {
	phys := m.PhysicalPath(opts.Path)

	switch opts.Type {
	case asset.TypeFile:
		f, err := os.Create(phys)
		if err != nil {
			return "", apperr.Wrap(apperr.KindIO, "unable to create asset file", err)
		}
		if err = f.Close(); err != nil {
			return "", apperr.Wrap(apperr.KindIO, "unable to create asset file", err)
		}

		if opts.TmpFile != "" {
			if err = os.Rename(opts.TmpFile, phys); err != nil {
				return "", apperr.Wrap(apperr.KindIO, "unable to finalize upload", err)
			}
		}
	case asset.TypeFolder:
		mkdir := os.Mkdir
		if opts.CreateParents {
			mkdir = os.MkdirAll
		}
		if err := mkdir(phys, 0o755); err != nil {
			return "", apperr.Wrap(apperr.KindIO, "unable to create asset folder", err)
		}
	default:
		return "", apperr.Newf(apperr.KindParsing, "unknown asset type %q", opts.Type)
	}

	m.logger.Debug("physical asset created",
		zap.String("path", phys),
		zap.String("type", string(opts.Type)),
	)

	return phys, nil
}

// Remove deletes the physical entry behind an asset. Folder removal is
// recursive.
func (m *Manager) Remove(logical string, t asset.Type) error {
	phys := m.PhysicalPath(logical)

	var err error
	if t == asset.TypeFolder {
		err = os.RemoveAll(phys)
	} else {
		err = os.Remove(phys)
	}
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return apperr.Wrap(apperr.KindIO, "unable to remove asset", err)
	}

	return nil
}

// FileExists reports whether the physical path exists as a regular file.
func (m *Manager) FileExists(phys string) bool {
	info, err := os.Stat(phys)
	return err == nil && info.Mode().IsRegular()
}

// DirExists reports whether the physical path exists as a directory.
func (m *Manager) DirExists(phys string) bool {
	info, err := os.Stat(phys)
	return err == nil && info.IsDir()
}

// FolderSize sums the byte length of every regular file under phys,
// depth first with an explicit work stack so deep trees can not grow
// the call stack. Entries that disappear mid-scan are skipped.
func (m *Manager) FolderSize(phys string) (int64, error) {
	info, err := os.Stat(phys)
	if err != nil {
		return 0, apperr.Wrap(apperr.KindIO, "unable to stat folder", err)
	}
	if !info.IsDir() {
		return 0, apperr.Internal("provided path is not a folder path")
	}

	var size int64
	stack := []string{phys}

	for len(stack) > 0 {
		dir := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		entries, err := os.ReadDir(dir)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return 0, apperr.Wrap(apperr.KindIO, "unable to read folder", err)
		}

		for _, entry := range entries {
			p := filepath.Join(dir, entry.Name())
			if entry.IsDir() {
				stack = append(stack, p)
				continue
			}
			fi, err := entry.Info()
			if err != nil {
				continue
			}
			if fi.Mode().IsRegular() {
				size += fi.Size()
			}
		}
	}

	return size, nil
}
