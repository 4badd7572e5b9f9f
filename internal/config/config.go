package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// FileName is the name of the JSON config file looked up in the config directory.
const FileName = "markermap.cfg.json"

// Built-in defaults for the base tile layer and the marker icon.
const (
	DefaultTileURL = "https://tile.openstreetmap.org/{z}/{x}/{y}.png"
	DefaultIconSrc = "https://openlayers.org/en/v3.19.1/examples/data/icon.png"
)

// IconConfig holds the marker icon style
type IconConfig struct {
	Src     string  `json:"src" mapstructure:"src"`
	AnchorX float64 `json:"anchorX" mapstructure:"anchorX"`
	AnchorY float64 `json:"anchorY" mapstructure:"anchorY"`
	Opacity float64 `json:"opacity" mapstructure:"opacity"`
	Width   float64 `json:"width" mapstructure:"width"`
	Height  float64 `json:"height" mapstructure:"height"`
}

// ViewportConfig holds the size of the map surface in pixels
type ViewportConfig struct {
	Width  int `json:"width" mapstructure:"width"`
	Height int `json:"height" mapstructure:"height"`
}

// MapConfig holds map engine settings
type MapConfig struct {
	Target   string         `json:"target" mapstructure:"target"`
	TileURL  string         `json:"tileUrl" mapstructure:"tileUrl"`
	Viewport ViewportConfig `json:"viewport" mapstructure:"viewport"`
	Icon     IconConfig     `json:"icon" mapstructure:"icon"`
}

// LoggingConfig holds log level and log sinks
type LoggingConfig struct {
	Level          string
	LogsDir        string
	GraylogEnabled bool
	GraylogAddress string
}

// Load reads configuration from JSON file and sets default values.
// configDir is the directory containing the config file.
func Load(configDir string) error {
	// Set default values
	viper.SetDefault("logLevel", "info")
	viper.SetDefault("logsDir", "")

	viper.SetDefault("graylog.enabled", false)
	viper.SetDefault("graylog.address", "localhost:12201")

	viper.SetDefault("map.target", "map")
	viper.SetDefault("map.tileUrl", DefaultTileURL)
	viper.SetDefault("map.viewport.width", 800)
	viper.SetDefault("map.viewport.height", 600)

	viper.SetDefault("map.icon.src", DefaultIconSrc)
	viper.SetDefault("map.icon.anchorX", 0.5)
	viper.SetDefault("map.icon.anchorY", 1.0)
	viper.SetDefault("map.icon.opacity", 1.0)
	viper.SetDefault("map.icon.width", 32)
	viper.SetDefault("map.icon.height", 48)

	viper.SetConfigName(FileName)
	viper.AddConfigPath(configDir)
	viper.SetConfigType("json")

	err := viper.ReadInConfig()
	if err != nil {
		return fmt.Errorf("error reading config file: %v", err)
	}

	return nil
}

// GetString returns a string config value.
func GetString(key string) string {
	return viper.GetString(key)
}

// GetInt returns an int config value.
func GetInt(key string) int {
	return viper.GetInt(key)
}

// GetBool returns a bool config value.
func GetBool(key string) bool {
	return viper.GetBool(key)
}

// GetFloat64 returns a float config value.
func GetFloat64(key string) float64 {
	return viper.GetFloat64(key)
}

// GetMapConfig returns the map engine settings.
func GetMapConfig() MapConfig {
	return MapConfig{
		Target:  GetString("map.target"),
		TileURL: GetString("map.tileUrl"),
		Viewport: ViewportConfig{
			Width:  GetInt("map.viewport.width"),
			Height: GetInt("map.viewport.height"),
		},
		Icon: IconConfig{
			Src:     GetString("map.icon.src"),
			AnchorX: GetFloat64("map.icon.anchorX"),
			AnchorY: GetFloat64("map.icon.anchorY"),
			Opacity: GetFloat64("map.icon.opacity"),
			Width:   GetFloat64("map.icon.width"),
			Height:  GetFloat64("map.icon.height"),
		},
	}
}

// GetLoggingConfig returns the logging settings.
func GetLoggingConfig() LoggingConfig {
	return LoggingConfig{
		Level:          GetString("logLevel"),
		LogsDir:        GetString("logsDir"),
		GraylogEnabled: GetBool("graylog.enabled"),
		GraylogAddress: GetString("graylog.address"),
	}
}
