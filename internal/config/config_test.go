package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(body), 0644))
}

func TestLoad_WithValidConfigFile(t *testing.T) {
	t.Cleanup(viper.Reset)

	dir := t.TempDir()
	writeConfig(t, dir, `{
		"logLevel": "debug",
		"map": { "target": "overview", "viewport": { "width": 1024 } }
	}`)

	err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "debug", viper.GetString("logLevel"))
	assert.Equal(t, "overview", viper.GetString("map.target"))
	assert.Equal(t, 1024, viper.GetInt("map.viewport.width"))
	assert.Equal(t, 600, viper.GetInt("map.viewport.height"))
}

func TestLoad_DefaultValues(t *testing.T) {
	t.Cleanup(viper.Reset)

	dir := t.TempDir()
	writeConfig(t, dir, `{}`)

	err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "info", viper.GetString("logLevel"))
	assert.Equal(t, "", viper.GetString("logsDir"))
	assert.Equal(t, false, viper.GetBool("graylog.enabled"))
	assert.Equal(t, "localhost:12201", viper.GetString("graylog.address"))
	assert.Equal(t, "map", viper.GetString("map.target"))
	assert.Equal(t, DefaultTileURL, viper.GetString("map.tileUrl"))
	assert.Equal(t, DefaultIconSrc, viper.GetString("map.icon.src"))
}

func TestLoad_MissingFile(t *testing.T) {
	t.Cleanup(viper.Reset)

	err := Load("/nonexistent/path")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")
}

func TestGetString(t *testing.T) {
	t.Cleanup(viper.Reset)
	viper.Set("testKey", "testValue")
	assert.Equal(t, "testValue", GetString("testKey"))
}

func TestGetInt(t *testing.T) {
	t.Cleanup(viper.Reset)
	viper.Set("testInt", 42)
	assert.Equal(t, 42, GetInt("testInt"))
}

func TestGetBool(t *testing.T) {
	t.Cleanup(viper.Reset)
	viper.Set("testBool", true)
	assert.Equal(t, true, GetBool("testBool"))
}

func TestGetFloat64(t *testing.T) {
	t.Cleanup(viper.Reset)
	viper.Set("testFloat", 0.25)
	assert.Equal(t, 0.25, GetFloat64("testFloat"))
}

func TestGetMapConfig_RuntimeOverride(t *testing.T) {
	t.Cleanup(viper.Reset)

	dir := t.TempDir()
	writeConfig(t, dir, `{}`)
	require.NoError(t, Load(dir))
	viper.Set("map.viewport.width", 320)
	viper.Set("map.icon.opacity", 0.5)
	viper.Set("graylog.enabled", true)

	mc := GetMapConfig()
	assert.Equal(t, 320, mc.Viewport.Width)
	assert.Equal(t, 0.5, mc.Icon.Opacity)
	assert.True(t, GetLoggingConfig().GraylogEnabled)
}

func TestGetMapConfig_Defaults(t *testing.T) {
	t.Cleanup(viper.Reset)

	dir := t.TempDir()
	writeConfig(t, dir, `{}`)
	require.NoError(t, Load(dir))

	cfg := GetMapConfig()
	assert.Equal(t, "map", cfg.Target)
	assert.Equal(t, DefaultTileURL, cfg.TileURL)
	assert.Equal(t, 800, cfg.Viewport.Width)
	assert.Equal(t, 600, cfg.Viewport.Height)
	assert.Equal(t, DefaultIconSrc, cfg.Icon.Src)
	assert.Equal(t, 0.5, cfg.Icon.AnchorX)
	assert.Equal(t, 1.0, cfg.Icon.AnchorY)
	assert.Equal(t, 1.0, cfg.Icon.Opacity)
	assert.Equal(t, 32.0, cfg.Icon.Width)
	assert.Equal(t, 48.0, cfg.Icon.Height)
}

func TestGetMapConfig_Override(t *testing.T) {
	t.Cleanup(viper.Reset)

	dir := t.TempDir()
	writeConfig(t, dir, `{
		"map": {
			"tileUrl": "https://tiles.example.org/{z}/{x}/{y}.png",
			"viewport": { "width": 320, "height": 240 },
			"icon": { "src": "pin.png", "anchorY": 0.5, "width": 16, "height": 16 }
		}
	}`)
	require.NoError(t, Load(dir))

	cfg := GetMapConfig()
	assert.Equal(t, "https://tiles.example.org/{z}/{x}/{y}.png", cfg.TileURL)
	assert.Equal(t, 320, cfg.Viewport.Width)
	assert.Equal(t, 240, cfg.Viewport.Height)
	assert.Equal(t, "pin.png", cfg.Icon.Src)
	assert.Equal(t, 0.5, cfg.Icon.AnchorX)
	assert.Equal(t, 0.5, cfg.Icon.AnchorY)
	assert.Equal(t, 16.0, cfg.Icon.Width)
}

func TestGetLoggingConfig_Override(t *testing.T) {
	t.Cleanup(viper.Reset)

	dir := t.TempDir()
	writeConfig(t, dir, `{
		"logLevel": "warn",
		"logsDir": "/var/log/markermap",
		"graylog": { "enabled": true, "address": "graylog:12201" }
	}`)
	require.NoError(t, Load(dir))

	lc := GetLoggingConfig()
	assert.Equal(t, "warn", lc.Level)
	assert.Equal(t, "/var/log/markermap", lc.LogsDir)
	assert.Equal(t, true, lc.GraylogEnabled)
	assert.Equal(t, "graylog:12201", lc.GraylogAddress)
}
