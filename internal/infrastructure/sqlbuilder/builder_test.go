package sqlbuilder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"asset-manager-api/pkg/apperr"
)

func TestParseBackend(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    Backend
		wantErr bool
	}{
		{name: "postgres", in: "PostgreSQL", want: Postgres},
		{name: "mysql", in: "MySQL", want: MySQL},
		{name: "sqlite", in: "SQLite", want: SQLite},
		{name: "unknown", in: "Oracle", wantErr: true},
		{name: "wrong case", in: "postgresql", wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			b, err := ParseBackend(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, apperr.IsKind(err, apperr.KindConfiguration))
				assert.Contains(t, err.Error(), "unable to parse backend name")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, b)
		})
	}
}

func TestFilters_Postgres(t *testing.T) {
	q, err := NewFilters("id", 1).ToQuery(Postgres)
	require.NoError(t, err)
	assert.Equal(t, "id = $1", q)

	q, err = NewFilters("id", 1).Add("AND age").Add("OR name").ToQuery(Postgres)
	require.NoError(t, err)
	assert.Equal(t, "id = $1 AND age = $2 OR name = $3", q)
}

func TestFilters_Offset(t *testing.T) {
	q, err := NewFilters("id", 4).Add("AND age").ToQuery(Postgres)
	require.NoError(t, err)
	assert.Equal(t, "id = $4 AND age = $5", q)
}

func TestFilters_MySQL(t *testing.T) {
	q, err := NewFilters("id", 1).ToQuery(MySQL)
	require.NoError(t, err)
	assert.Equal(t, "id = ?", q)

	q, err = NewFilters("id", 1).Add("AND age").Add("OR name").ToQuery(MySQL)
	require.NoError(t, err)
	assert.Equal(t, "id = ? AND age = ? OR name = ?", q)
}

func TestFilters_SQLite(t *testing.T) {
	q, err := NewFilters("id", 1).Add("AND age").ToQuery(SQLite)
	require.NoError(t, err)
	assert.Equal(t, "id = ?1 AND age = ?2", q)
}

func TestFilters_GroupPrefix(t *testing.T) {
	q, err := NewFilters("asset_path OR custom_path", 1).
		Add("AND asset_type").
		ToQuery(Postgres)
	require.NoError(t, err)
	assert.Equal(t, "(asset_path = $1 OR custom_path = $2) AND asset_type = $3", q)
}

func TestFilters_GroupSuffix(t *testing.T) {
	q, err := NewFilters("asset_type", 1).
		Add("AND (asset_path OR custom_path)").
		ToQuery(Postgres)
	require.NoError(t, err)
	assert.Equal(t, "asset_type = $1 AND (asset_path = $2 OR custom_path = $3)", q)
}

func TestFilters_Malformed(t *testing.T) {
	_, err := NewFilters("id OR", 1).ToQuery(Postgres)
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindParsing))

	_, err = NewFilters("id AND OR name", 1).ToQuery(Postgres)
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindParsing))
}

func TestValues(t *testing.T) {
	assert.Equal(t, "VALUES($1)", Values{Count: 1, Offset: 1}.ToQuery(Postgres))
	assert.Equal(t, "VALUES($1, $2, $3)", Values{Count: 3, Offset: 1}.ToQuery(Postgres))
	assert.Equal(t, "VALUES($4, $5)", Values{Count: 2, Offset: 4}.ToQuery(Postgres))
	assert.Equal(t, "VALUES(?, ?, ?)", Values{Count: 3, Offset: 1}.ToQuery(MySQL))
	assert.Equal(t, "VALUES(?1, ?2, ?3)", Values{Count: 3, Offset: 1}.ToQuery(SQLite))
}

func TestSetters(t *testing.T) {
	s := NewSetters("name", 1).Add("public")
	assert.Equal(t, "name = $1, public = $2", s.ToQuery(Postgres))
	assert.Equal(t, "name = ?, public = ?", s.ToQuery(MySQL))

	s = NewSetters("custom_path", 3)
	assert.Equal(t, "custom_path = ?3", s.ToQuery(SQLite))
}
