// Package config loads CLI configuration from ~/.lattice-cli.yaml with
// environment-variable overrides. Flags beat env, env beats file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration wraps time.Duration so yaml files can say "10s" or "2h".
type Duration time.Duration

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Config holds the client-side settings. There is no other local state;
// everything interesting lives in the remote platform.
type Config struct {
	// ControlPlane is the control-plane base URL.
	ControlPlane string `yaml:"control_plane"`

	// Token authenticates API calls.
	Token string `yaml:"token"`

	// Role is the default execution role passed to job submissions.
	Role string `yaml:"role"`

	// ArtifactPrefix is the default object-storage key prefix for uploads.
	ArtifactPrefix string `yaml:"artifact_prefix"`

	// PollInterval is the initial wait between status polls.
	PollInterval Duration `yaml:"poll_interval"`

	// WaitTimeout bounds blocking waits on remote jobs.
	WaitTimeout Duration `yaml:"wait_timeout"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		ControlPlane: "https://api.lattice-ml.dev",
		PollInterval: Duration(5 * time.Second),
		WaitTimeout:  Duration(2 * time.Hour),
	}
}

// DefaultPath returns the per-user config file location.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".lattice-cli.yaml"), nil
}

// Load reads configuration from path, layering it over defaults and then
// applying LATTICE_* environment overrides. A missing file is not an error;
// defaults and env still apply.
func Load(path string) (Config, error) {
	cfg := Defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return cfg, fmt.Errorf("read config %q: %w", path, err)
		}
		if err == nil {
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("parse config %q: %w", path, err)
			}
		}
	}

	applyEnv(&cfg)

	if cfg.PollInterval <= 0 {
		cfg.PollInterval = Defaults().PollInterval
	}
	if cfg.WaitTimeout <= 0 {
		cfg.WaitTimeout = Defaults().WaitTimeout
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("LATTICE_CONTROL_PLANE"); v != "" {
		cfg.ControlPlane = v
	}
	if v := os.Getenv("LATTICE_TOKEN"); v != "" {
		cfg.Token = v
	}
	if v := os.Getenv("LATTICE_ROLE"); v != "" {
		cfg.Role = v
	}
	if v := os.Getenv("LATTICE_ARTIFACT_PREFIX"); v != "" {
		cfg.ArtifactPrefix = v
	}
	if v := os.Getenv("LATTICE_POLL_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.PollInterval = Duration(d)
		}
	}
	if v := os.Getenv("LATTICE_WAIT_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.WaitTimeout = Duration(d)
		}
	}
}

// Save writes cfg to path with owner-only permissions; the token is a
// credential.
func Save(cfg Config, path string) error {
	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("write config %q: %w", path, err)
	}
	return nil
}
