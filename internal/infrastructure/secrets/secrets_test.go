package secrets

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"asset-manager-api/pkg/apperr"
)

func TestGenerateAndLoad(t *testing.T) {
	dir := t.TempDir()

	path, err := Generate(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, Filename), path)

	s, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, s.ClientKey, 32)
	assert.Len(t, s.ClientNonce, 24)
	assert.Len(t, s.JWTSecret, 64)
}

func TestGenerate_Overwrites(t *testing.T) {
	dir := t.TempDir()

	path, err := Generate(dir)
	require.NoError(t, err)
	first, err := Load(path)
	require.NoError(t, err)

	_, err = Generate(dir)
	require.NoError(t, err)
	second, err := Load(path)
	require.NoError(t, err)

	assert.NotEqual(t, first.ClientKey, second.ClientKey)
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), Filename))
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindConfiguration))
}

func TestLoad_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), Filename)
	require.NoError(t, os.WriteFile(path, []byte("not-hex\n"), 0o600))

	_, err := Load(path)
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindConfiguration))
}
