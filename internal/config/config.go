package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

// Load reads configuration from an optional JSON file and sets
// default values for every tunable. configDir is the directory
// containing the config file; a missing file is not an error, the
// defaults simply apply.
func Load(configDir string) error {
	viper.Reset()

	viper.SetDefault("logLevel", "info")
	viper.SetDefault("logFile", "")
	viper.SetDefault("fps", 30)

	viper.SetDefault("globe.aspectRatio", 2.0)
	viper.SetDefault("globe.minScale", 5.0)
	viper.SetDefault("globe.maxScale", 200.0)
	viper.SetDefault("globe.zoomStep", 4.0)

	viper.SetDefault("input.dragSensitivity", 0.25)
	viper.SetDefault("input.friction", 0.95)
	viper.SetDefault("input.velocityEpsilon", 0.001)
	viper.SetDefault("input.easeFactor", 0.05)
	viper.SetDefault("input.dragThreshold", 1.0)

	viper.SetDefault("tilt.deadzone", 2.0)
	viper.SetDefault("tilt.sensitivity", 0.05)

	viper.SetDefault("particles.spawnChance", 0.2)
	viper.SetDefault("particles.fade", 0.02)
	viper.SetDefault("particles.speed", 1.5)

	viper.SetDefault("heatmap.bandwidth", 6.0)
	viper.SetDefault("heatmap.thresholds", 8)
	viper.SetDefault("heatmap.everyNth", 1)

	viper.SetDefault("overlays.night", true)
	viper.SetDefault("overlays.constellations", true)
	viper.SetDefault("overlays.heatmap", false)

	viper.SetDefault("feedback.enabled", true)

	viper.SetConfigName("firstglobe.cfg.json")
	viper.AddConfigPath(configDir)
	viper.SetConfigType("json")

	err := viper.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("error reading config file: %w", err)
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

// GetFloat returns a float config value.
func GetFloat(key string) float64 {
	return viper.GetFloat64(key)
}

// GetBool returns a bool config value.
func GetBool(key string) bool {
	return viper.GetBool(key)
}
