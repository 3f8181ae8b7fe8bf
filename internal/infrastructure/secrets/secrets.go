// Package secrets loads and generates the process-wide secret material:
// the client-token AEAD key and nonce, and the session-token signing
// secret. Secrets are read once at startup and passed by reference into
// component constructors; nothing mutates them afterwards.
package secrets

import (
	"crypto/rand"
	"encoding/hex"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/crypto/chacha20poly1305"

	"asset-manager-api/pkg/apperr"
)

// Filename is the reserved name of the secrets file. It is never a
// valid asset path; the access resolver rejects it outright so the
// file can not be served through the asset API.
const Filename = ".assetmanager_secrets"

const jwtSecretLen = 64

type Secrets struct {
	ClientKey   []byte // XChaCha20-Poly1305 key, 32 bytes
	ClientNonce []byte // fixed process-wide nonce, 24 bytes
	JWTSecret   []byte // HMAC-SHA-512 signing secret
}

// Generate writes fresh secret material to dir/Filename and returns
// the file path. An existing file is overwritten.
func Generate(dir string) (string, error) {
	key := make([]byte, chacha20poly1305.KeySize)
	nonce := make([]byte, chacha20poly1305.NonceSizeX)
	jwtSecret := make([]byte, jwtSecretLen)

	for _, buf := range [][]byte{key, nonce, jwtSecret} {
		if _, err := rand.Read(buf); err != nil {
			return "", apperr.Wrap(apperr.KindInternal, "unable to generate secret material", err)
		}
	}

	path := filepath.Join(dir, Filename)
	content := strings.Join([]string{
		hex.EncodeToString(key),
		hex.EncodeToString(nonce),
		hex.EncodeToString(jwtSecret),
	}, "\n") + "\n"

	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		return "", apperr.Wrap(apperr.KindIO, "unable to write secrets file", err)
	}

	return path, nil
}

// Load reads secret material previously written by Generate.
func Load(path string) (*Secrets, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindConfiguration, "unable to read secrets file "+path, err)
	}

	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	if len(lines) != 3 {
		return nil, apperr.Configuration("malformed secrets file " + path)
	}

	s := new(Secrets)
	for i, dst := range []*[]byte{&s.ClientKey, &s.ClientNonce, &s.JWTSecret} {
		b, err := hex.DecodeString(strings.TrimSpace(lines[i]))
		if err != nil {
			return nil, apperr.Wrap(apperr.KindConfiguration, "malformed secrets file "+path, err)
		}
		*dst = b
	}

	if len(s.ClientKey) != chacha20poly1305.KeySize || len(s.ClientNonce) != chacha20poly1305.NonceSizeX {
		return nil, apperr.Configuration("secrets file " + path + " has wrong key sizes")
	}

	return s, nil
}

// InstallDir is the directory holding the running executable; the
// secrets file lives next to the binary by default.
func InstallDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", apperr.Wrap(apperr.KindIO, "unable to get install dir", err)
	}
	return filepath.Dir(exe), nil
}
