package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "wordcodec.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	cfg, err = Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_Overrides(t *testing.T) {
	path := writeConfig(t, `
[denylist]
path = "/var/lib/pool/banned.db"

[log]
level = "debug"
file = "/var/log/pool/wordcodec.log"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/var/lib/pool/banned.db", cfg.Denylist.Path)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "/var/log/pool/wordcodec.log", cfg.Log.File)
	assert.Equal(t, 100, cfg.Log.MaxSizeMB, "unset keys keep defaults")
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"syntax", "[denylist\npath = 1"},
		{"unknown key", "[denylist]\nfile = \"x.db\"\n"},
		{"bad level", "[log]\nlevel = \"loud\"\n"},
		{"empty path", "[denylist]\npath = \"\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}
}
