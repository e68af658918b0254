// Package config handles import settings.
package config

import (
	"github.com/binzume/gltfscene/conversion"
	"github.com/binzume/gltfscene/importer"
	"github.com/binzume/gltfscene/scene"
	"go.uber.org/zap"
)

// Config holds all import settings.
type Config struct {
	Axis      string `yaml:"axis"`       // yup or zup
	FrameRate int    `yaml:"frame_rate"` // fps of created scenes
	// Scene is the index of the glTF scene to import. -1 uses the document default.
	Scene   int           `yaml:"scene"`
	Logging LoggingConfig `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Axis:      conversion.AxisYUp.String(),
		FrameRate: scene.DefaultFPS,
		Scene:     -1,
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// ImportOptions converts the settings to importer options.
func (c *Config) ImportOptions(log *zap.Logger) (*importer.Options, error) {
	axis, err := conversion.ParseAxis(c.Axis)
	if err != nil {
		return nil, err
	}
	return &importer.Options{
		Axis:      axis,
		FrameRate: c.FrameRate,
		Logger:    log,
	}, nil
}
