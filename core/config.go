package core

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Config is the TOML-backed engine configuration.
type Config struct {
	Window WindowConfig `toml:"window"`
	Camera CameraConfig `toml:"camera"`
}

// CameraConfig carries the lens parameters the camera is constructed with.
// Aspect ratio is derived from the framebuffer, not configured.
type CameraConfig struct {
	FOV  float32 `toml:"fov"`
	Near float32 `toml:"near"`
	Far  float32 `toml:"far"`
}

func DefaultConfig() Config {
	return Config{
		Window: DefaultWindowConfig(),
		Camera: CameraConfig{
			FOV:  45,
			Near: 0.1,
			Far:  100,
		},
	}
}

// LoadConfig reads a TOML config file, layering it over the defaults. A
// missing file is not an error: the defaults are returned as-is.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}
