package core

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/pelletier/go-toml/v2"
)

const (
	BackendVulkan = "vulkan"
	BackendDX12   = "dx12"
)

type SuperSamplingConfig struct {
	TargetWidth  uint32   `toml:"target_width"`
	TargetHeight uint32   `toml:"target_height"`
	Quality      string   `toml:"quality"`
	Flags        []string `toml:"flags"`
}

// Config is what the probe and the NGX systems need at init.
type Config struct {
	Backend             string              `toml:"backend"`
	ProjectID           string              `toml:"project_id"`
	EngineVersion       string              `toml:"engine_version"`
	ApplicationDataPath string              `toml:"application_data_path"`
	LogLevel            string              `toml:"log_level"`
	NGXLogging          string              `toml:"ngx_logging"`
	SuperSampling       SuperSamplingConfig `toml:"super_sampling"`
}

func DefaultConfig() *Config {
	return &Config{
		Backend:             BackendVulkan,
		EngineVersion:       "0.1.0",
		ApplicationDataPath: filepath.Join(os.TempDir(), "nvngx"),
		LogLevel:            "info",
		NGXLogging:          "off",
		SuperSampling: SuperSamplingConfig{
			TargetWidth:  3840,
			TargetHeight: 2160,
			Quality:      "balanced",
			Flags:        []string{"auto_exposure", "mv_low_res"},
		},
	}
}

// LoadConfig reads a TOML file on top of DefaultConfig.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		err = fmt.Errorf("failed to read config %s: %w", path, err)
		LogError(err.Error())
		return nil, err
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		err = fmt.Errorf("failed to parse config %s: %w", path, err)
		LogError(err.Error())
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch strings.ToLower(c.Backend) {
	case BackendVulkan, BackendDX12:
		c.Backend = strings.ToLower(c.Backend)
	default:
		err := fmt.Errorf("%w: %q", ErrUnknownBackend, c.Backend)
		LogError(err.Error())
		return err
	}
	if c.ProjectID != "" {
		if _, err := uuid.Parse(c.ProjectID); err != nil {
			err = fmt.Errorf("project_id %q is not a UUID: %w", c.ProjectID, err)
			LogError(err.Error())
			return err
		}
	}
	if c.ApplicationDataPath == "" {
		err := fmt.Errorf("application_data_path must be set")
		LogError(err.Error())
		return err
	}
	if c.SuperSampling.TargetWidth == 0 || c.SuperSampling.TargetHeight == 0 {
		err := fmt.Errorf("super_sampling target size must be non-zero, got %dx%d",
			c.SuperSampling.TargetWidth, c.SuperSampling.TargetHeight)
		LogError(err.Error())
		return err
	}
	return nil
}

// ProjectUUID returns the configured id, or uuid.Nil to let the system pick one.
func (c *Config) ProjectUUID() uuid.UUID {
	if c.ProjectID == "" {
		return uuid.Nil
	}
	id, err := uuid.Parse(c.ProjectID)
	if err != nil {
		return uuid.Nil
	}
	return id
}

func (c *Config) Marshal() ([]byte, error) {
	return toml.Marshal(c)
}
