package database

import (
	"io/fs"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLatestVersion(t *testing.T) {
	fsys := fstest.MapFS{
		"000001_create_canonical_jobs.up.sql":   {Data: []byte("")},
		"000001_create_canonical_jobs.down.sql": {Data: []byte("")},
		"000003_create_move_estimates.up.sql":   {Data: []byte("")},
		"000002_create_sources.up.sql":          {Data: []byte("")},
		"README.md":                             {Data: []byte("")},
	}

	entries, err := fs.ReadDir(fsys, ".")
	require.NoError(t, err)

	version, err := latestVersion(entries)
	require.NoError(t, err)
	assert.Equal(t, 3, version)

	_, err = latestVersion(nil)
	assert.Error(t, err)
}

func TestJSONBScan(t *testing.T) {
	var v JSONB[map[string]any]
	require.NoError(t, v.Scan([]byte(`{"a":1}`)))
	assert.Equal(t, map[string]any{"a": 1.0}, v.Data)

	require.NoError(t, v.Scan(nil))
	assert.Nil(t, v.Data)

	assert.Error(t, v.Scan(42))
}

func TestConfigDSN(t *testing.T) {
	cfg := Config{Host: "localhost", Port: 5432, User: "fern", Password: "secret", Name: "fern", SSLMode: "disable"}
	assert.Equal(t, "host=localhost port=5432 user=fern password=secret dbname=fern sslmode=disable", cfg.DSN())
}
