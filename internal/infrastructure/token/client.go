package token

import (
	"crypto/cipher"
	"encoding/hex"
	"unicode/utf8"

	"golang.org/x/crypto/chacha20poly1305"

	"asset-manager-api/internal/infrastructure/secrets"
	"asset-manager-api/pkg/apperr"
)

// ClientCipher wraps client identifiers into opaque hex tokens using
// XChaCha20-Poly1305 under the process-wide key and fixed nonce. With a
// fixed nonce encryption is deterministic: regenerating a token for the
// same client yields identical ciphertext. That is acceptable here
// because the plaintext is an immutable UUID that never repeats across
// clients.
type ClientCipher struct {
	aead  cipher.AEAD
	nonce []byte
}

func NewClientCipher(sec *secrets.Secrets) (*ClientCipher, error) {
	aead, err := chacha20poly1305.NewX(sec.ClientKey)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindConfiguration, "unable to init client cipher", err)
	}
	if len(sec.ClientNonce) != chacha20poly1305.NonceSizeX {
		return nil, apperr.Configuration("client nonce has wrong size")
	}

	return &ClientCipher{aead: aead, nonce: sec.ClientNonce}, nil
}

// Encrypt seals a client identifier into a hex token.
func (c *ClientCipher) Encrypt(clientID string) (string, error) {
	sealed := c.aead.Seal(nil, c.nonce, []byte(clientID), nil)
	return hex.EncodeToString(sealed), nil
}

// Decrypt opens a hex token back into the client identifier. Any
// decode, integrity or encoding failure is an authorization error.
func (c *ClientCipher) Decrypt(tok string) (string, error) {
	raw, err := hex.DecodeString(tok)
	if err != nil {
		return "", apperr.Wrap(apperr.KindAuthorization, "invalid client token", err)
	}

	plain, err := c.aead.Open(nil, c.nonce, raw, nil)
	if err != nil {
		return "", apperr.Authorization("invalid client token")
	}
	if !utf8.Valid(plain) {
		return "", apperr.Authorization("invalid client token")
	}

	return string(plain), nil
}
