package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg := LoadConfig("")
	assert.Equal(t, "postgres", cfg.Database.Type)
	assert.Equal(t, 1816, cfg.Web.Port)
	assert.Equal(t, "fluke", cfg.System.Appid)
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfile := filepath.Join(dir, "fluke.yml")
	data := `
web:
  host: 127.0.0.1
  port: 8080
database:
  type: postgres
  name: fluke_test
`
	err := os.WriteFile(cfile, []byte(data), 0o644)
	assert.NoError(t, err)

	cfg := LoadConfig(cfile)
	assert.Equal(t, "127.0.0.1", cfg.Web.Host)
	assert.Equal(t, 8080, cfg.Web.Port)
	assert.Equal(t, "fluke_test", cfg.Database.Name)
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("FLUKE_WEB_PORT", "9090")
	t.Setenv("FLUKE_SYSTEM_DEMO_DATA", "true")

	cfg := LoadConfig("")
	assert.Equal(t, 9090, cfg.Web.Port)
	assert.True(t, cfg.System.DemoData)
}
