package config

import (
	"fmt"
	"os"
	"time"

	"prefixctl/internal/pkg/logging"

	"gopkg.in/yaml.v3"
)

// SSHConfig represents the remote-execution channel settings.
type SSHConfig struct {
	User    string `yaml:"user"`
	Port    int    `yaml:"port,omitempty"`
	KeyFile string `yaml:"key_file,omitempty"`
	// AskPassword prompts for a password at startup instead of (or in
	// addition to) key auth. The password itself never appears in config.
	AskPassword bool `yaml:"ask_password,omitempty"`
	// Command is the prefixctl binary name or path on the targets.
	Command string `yaml:"command,omitempty"`
}

// ReconfigConfig represents the state machine tuning knobs.
type ReconfigConfig struct {
	SettleSeconds       int  `yaml:"settle_seconds"`
	ProbeCount          int  `yaml:"probe_count"`
	ProbeTimeoutSeconds int  `yaml:"probe_timeout_seconds"`
	PrivilegedProbes    bool `yaml:"privileged_probes,omitempty"`
}

// FleetConfig represents roster and report settings.
type FleetConfig struct {
	TargetColumn string `yaml:"target_column,omitempty"`
	ReportPath   string `yaml:"report_path,omitempty"`
}

// Config represents the main configuration structure
type Config struct {
	Logging  logging.LogConfig `yaml:"logging"`
	Reconfig ReconfigConfig    `yaml:"reconfig"`
	SSH      SSHConfig         `yaml:"ssh"`
	Fleet    FleetConfig       `yaml:"fleet"`
}

// Default returns the configuration used when no config file is given.
func Default() *Config {
	return &Config{
		Logging: logging.LogConfig{Level: "info", Format: "text"},
		Reconfig: ReconfigConfig{
			SettleSeconds:       7,
			ProbeCount:          2,
			ProbeTimeoutSeconds: 3,
		},
		SSH: SSHConfig{Port: 22},
		Fleet: FleetConfig{
			TargetColumn: "target",
			ReportPath:   "prefixctl-report.csv",
		},
	}
}

// Load loads configuration from a YAML file, filling unset fields from the
// defaults.
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
	}

	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", configPath, err)
	}

	return config, nil
}

// SettleWindow returns the post-apply settle wait as a duration.
func (c *Config) SettleWindow() time.Duration {
	return time.Duration(c.Reconfig.SettleSeconds) * time.Second
}

// ProbeTimeout returns the per-probe timeout as a duration.
func (c *Config) ProbeTimeout() time.Duration {
	return time.Duration(c.Reconfig.ProbeTimeoutSeconds) * time.Second
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Reconfig.SettleSeconds < 0 {
		return fmt.Errorf("reconfig: settle_seconds must not be negative")
	}
	if c.Reconfig.ProbeCount < 1 {
		return fmt.Errorf("reconfig: probe_count must be at least 1")
	}
	if c.Reconfig.ProbeTimeoutSeconds < 1 {
		return fmt.Errorf("reconfig: probe_timeout_seconds must be at least 1")
	}
	if c.SSH.Port < 0 || c.SSH.Port > 65535 {
		return fmt.Errorf("ssh: port %d out of range", c.SSH.Port)
	}
	if c.Fleet.TargetColumn == "" {
		return fmt.Errorf("fleet: target_column must not be empty")
	}
	return nil
}
