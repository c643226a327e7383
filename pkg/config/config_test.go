package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/bastiangx/kodic/pkg/dictionary"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, dictionary.DefaultEndpoint, cfg.Dict.Endpoint)
	assert.Equal(t, "UTF-8", cfg.Dict.Charset)
	assert.Equal(t, 100000000, cfg.Dict.PageRow)
	assert.Equal(t, "starts", cfg.CLI.DefaultMode)
	assert.Equal(t, dictionary.DefaultParams(), cfg.Dict.Params())
}

func TestInitConfigCreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	cfg, err := InitConfig(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.FileExists(t, path)

	reloaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, cfg.Dict, reloaded.Dict)
	assert.Equal(t, cfg.Server, reloaded.Server)
	assert.Equal(t, cfg.CLI.DefaultMode, reloaded.CLI.DefaultMode)
	assert.Empty(t, reloaded.CLI.Banned)
}

func TestLoadConfigKeepsDefaultsForMissingKeys(t *testing.T) {
	path := writeConfig(t, `
[dict]
charset = "euc-kr"

[cli]
default_mode = "ends"
banned = ["북한어", "방언"]
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "euc-kr", cfg.Dict.Charset)
	assert.Equal(t, dictionary.DefaultEndpoint, cfg.Dict.Endpoint)
	assert.Equal(t, "ends", cfg.CLI.DefaultMode)
	assert.Equal(t, []string{"북한어", "방언"}, cfg.CLI.Banned)
	assert.Equal(t, 64, cfg.Server.MaxLimit)
}

func TestLoadConfigPartialRecovery(t *testing.T) {
	path := writeConfig(t, `
[dict]
endpoint = "http://localhost:9999/search"
page_row = "lots"

[server]
max_limit = 10
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:9999/search", cfg.Dict.Endpoint)
	assert.Equal(t, dictionary.DefaultPageRow, cfg.Dict.PageRow)
	assert.Equal(t, 10, cfg.Server.MaxLimit)
}

func TestLoadConfigSanitizesValues(t *testing.T) {
	path := writeConfig(t, `
[dict]
page_row = -1

[cli]
default_mode = "sideways"
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, dictionary.DefaultPageRow, cfg.Dict.PageRow)
	assert.Equal(t, "starts", cfg.CLI.DefaultMode)
}

func TestLoadConfigGarbageFallsBackToDefaults(t *testing.T) {
	path := writeConfig(t, "[dict\nendpoint = ")
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfigWithPriorityCustomPath(t *testing.T) {
	path := writeConfig(t, "[server]\nmin_prefix = 2\n")
	cfg, used, err := LoadConfigWithPriority(path)
	require.NoError(t, err)
	assert.Equal(t, path, used)
	assert.Equal(t, 2, cfg.Server.MinPrefix)
}
