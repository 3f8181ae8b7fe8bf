package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"asset-manager-api/pkg/apperr"
)

func TestSession_CreateAndDecode(t *testing.T) {
	s := NewSessionService([]byte("super-secret"), "Bearer")

	tok, err := s.Create(42, 3600, TypeAccess)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	claims, err := s.Decode("Bearer " + tok)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), claims.Sub)
	assert.Equal(t, TypeAccess, claims.Ty)
	require.NotNil(t, claims.ExpiresAt)
}

func TestSession_Decode_Table(t *testing.T) {
	makeToken := func(secret, bearer string, ttl int64, ty TokenType) string {
		tok, err := NewSessionService([]byte(secret), bearer).Create(7, ttl, ty)
		require.NoError(t, err)
		return tok
	}

	tests := []struct {
		name   string
		secret string
		bearer string
		header string
		ok     bool
	}{
		{
			name:   "valid refresh token",
			secret: "k1",
			bearer: "Bearer",
			header: "Bearer " + makeToken("k1", "Bearer", 300, TypeRefresh),
			ok:     true,
		},
		{
			name:   "custom bearer scheme",
			secret: "k1",
			bearer: "AMToken",
			header: "AMToken " + makeToken("k1", "AMToken", 300, TypeAccess),
			ok:     true,
		},
		{
			name:   "wrong signing secret",
			secret: "k2",
			bearer: "Bearer",
			header: "Bearer " + makeToken("k1", "Bearer", 300, TypeAccess),
		},
		{
			name:   "already expired",
			secret: "k1",
			bearer: "Bearer",
			header: "Bearer " + makeToken("k1", "Bearer", -1, TypeAccess),
		},
		{
			name:   "wrong prefix",
			secret: "k1",
			bearer: "AMToken",
			header: "Bearer " + makeToken("k1", "AMToken", 300, TypeAccess),
		},
		{
			name:   "missing prefix",
			secret: "k1",
			bearer: "Bearer",
			header: makeToken("k1", "Bearer", 300, TypeAccess),
		},
		{
			name:   "malformed token",
			secret: "k1",
			bearer: "Bearer",
			header: "Bearer not-a-jwt",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			s := NewSessionService([]byte(tt.secret), tt.bearer)

			claims, err := s.Decode(tt.header)
			if tt.ok {
				require.NoError(t, err)
				assert.Equal(t, uint64(7), claims.Sub)
				return
			}
			require.Error(t, err)
			assert.True(t, apperr.IsKind(err, apperr.KindAuthorization))
			assert.Nil(t, claims)
		})
	}
}
