package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"tasnim.dev/gamebox/internal/constants"
)

// Environment variables the deployment injects.
const (
	EnvInstanceID       = "INSTANCE_ID"
	EnvSecurityGroupID  = "SECURITY_GROUP_ID"
	EnvKeyParameterName = "KEY_PARAMETER_NAME"
	EnvAssetBucket      = "GAMEBOX_ASSET_BUCKET"
)

// Config holds optional defaults loaded from ~/.config/gamebox/config.yaml.
type Config struct {
	DefaultProfile   string   `yaml:"default_profile"`
	DefaultRegion    string   `yaml:"default_region"`
	InstanceID       string   `yaml:"instance_id"`
	SecurityGroupID  string   `yaml:"security_group_id"`
	KeyParameterName string   `yaml:"key_parameter_name"`
	ListenAddr       string   `yaml:"listen_addr"`
	AssetBucket      string   `yaml:"asset_bucket"`
	TrustedProxies   []string `yaml:"trusted_proxies"`
	RedactStack      bool     `yaml:"redact_stack"`
	LogLevel         string   `yaml:"log_level"`
}

// Target identifies the managed resources. It is resolved once at startup
// and never changes afterwards.
type Target struct {
	InstanceID       string
	SecurityGroupID  string
	KeyParameterName string
}

// Path returns the config file location.
func Path() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "gamebox", "config.yaml"), nil
}

// Load reads the config file and applies environment overrides. Returns a
// zero-value Config (plus environment) if the file doesn't exist.
func Load() (*Config, error) {
	cfg, err := loadFile()
	if err != nil {
		return nil, err
	}
	cfg.applyEnv(os.LookupEnv)
	return cfg, nil
}

func loadFile() (*Config, error) {
	path, err := Path()
	if err != nil {
		return &Config{}, nil
	}
	return LoadFile(path)
}

// LoadFile reads a specific config file. A missing file is not an error.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &cfg, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) {
	for env, field := range map[string]*string{
		EnvInstanceID:       &c.InstanceID,
		EnvSecurityGroupID:  &c.SecurityGroupID,
		EnvKeyParameterName: &c.KeyParameterName,
		EnvAssetBucket:      &c.AssetBucket,
	} {
		if v, ok := lookup(env); ok && v != "" {
			*field = v
		}
	}
}

// Merge applies CLI flag overrides. Flags take precedence over config defaults.
func (c *Config) Merge(profile, region string) (string, string) {
	p := c.DefaultProfile
	if profile != "" {
		p = profile
	}
	r := c.DefaultRegion
	if region != "" {
		r = region
	}
	return p, r
}

// Target validates and returns the managed resource identifiers.
func (c *Config) Target() (Target, error) {
	var missing []string
	if c.InstanceID == "" {
		missing = append(missing, "instance_id ("+EnvInstanceID+")")
	}
	if c.SecurityGroupID == "" {
		missing = append(missing, "security_group_id ("+EnvSecurityGroupID+")")
	}
	if c.KeyParameterName == "" {
		missing = append(missing, "key_parameter_name ("+EnvKeyParameterName+")")
	}
	if len(missing) > 0 {
		return Target{}, fmt.Errorf("missing configuration: %s", strings.Join(missing, ", "))
	}
	return Target{
		InstanceID:       c.InstanceID,
		SecurityGroupID:  c.SecurityGroupID,
		KeyParameterName: c.KeyParameterName,
	}, nil
}

// Listen returns the HTTP listen address.
func (c *Config) Listen() string {
	if c.ListenAddr == "" {
		return constants.DefaultListenAddr
	}
	return c.ListenAddr
}

// Level parses LogLevel, defaulting to info.
func (c *Config) Level() slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}
