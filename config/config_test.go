package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg := LoadConfig(filepath.Join(t.TempDir(), "missing.yml"))
	assert.Equal(t, "cafeteca", cfg.System.Appid)
	assert.Equal(t, "Europe/Bucharest", cfg.System.Location)
	assert.Equal(t, 1898, cfg.Web.Port)
	assert.Equal(t, "postgres", cfg.Database.Type)
}

func TestLoadConfigFromFile(t *testing.T) {
	cfile := filepath.Join(t.TempDir(), "cafeteca.yml")
	content := `
system:
  workdir: /tmp/cafeteca-test
web:
  port: 9090
database:
  name: cafeteca_test
`
	require.NoError(t, os.WriteFile(cfile, []byte(content), 0o644))

	cfg := LoadConfig(cfile)
	assert.Equal(t, "/tmp/cafeteca-test", cfg.System.Workdir)
	assert.Equal(t, 9090, cfg.Web.Port)
	assert.Equal(t, "cafeteca_test", cfg.Database.Name)
	// untouched keys keep their defaults
	assert.Equal(t, "0.0.0.0", cfg.Web.Host)
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("CAFETECA_WEB_PORT", "7070")
	t.Setenv("CAFETECA_DB_HOST", "db.internal")
	t.Setenv("CAFETECA_SYSTEM_DEBUG", "false")

	cfg := LoadConfig("")
	assert.Equal(t, 7070, cfg.Web.Port)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.False(t, cfg.System.Debug)
}

func TestInitDirs(t *testing.T) {
	cfg := LoadConfig("")
	cfg.System.Workdir = t.TempDir()
	cfg.InitDirs()

	for _, sub := range []string{"storage", "data", "logs"} {
		info, err := os.Stat(filepath.Join(cfg.System.Workdir, sub))
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	}
}
