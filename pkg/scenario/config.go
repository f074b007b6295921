package scenario

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"digital.vasic.evaluator/pkg/env"
)

// Environment variables read by ApplyEnv.
const (
	EnvTimeout     = "EVALUATOR_TIMEOUT"
	EnvStrict      = "EVALUATOR_STRICT"
	EnvParallelism = "EVALUATOR_PARALLELISM"
	EnvResultsDir  = "EVALUATOR_RESULTS_DIR"
	EnvVerbose     = "EVALUATOR_VERBOSE"
	EnvMonitorAddr = "EVALUATOR_MONITOR_ADDR"
	EnvMonitorHold = "EVALUATOR_MONITOR_HOLD"
)

// Config holds runtime configuration for a suite run.
type Config struct {
	// Timeout bounds the execution of a single scenario.
	Timeout time.Duration `yaml:"timeout" json:"timeout"`

	// Strict makes an unexpected pass (xpass) fail the suite.
	Strict bool `yaml:"strict" json:"strict"`

	// Parallelism is the number of scenarios run at once.
	// Values below 2 run sequentially.
	Parallelism int `yaml:"parallelism" json:"parallelism"`

	// ResultsDir is where reports are written. Empty disables
	// report files.
	ResultsDir string `yaml:"results_dir" json:"results_dir"`

	// LogsDir is where the JSON run log is written. Empty
	// disables the file log.
	LogsDir string `yaml:"logs_dir" json:"logs_dir"`

	// Verbose enables debug logging.
	Verbose bool `yaml:"verbose" json:"verbose"`

	// MonitorAddr, when set, serves live events over a
	// websocket at this address.
	MonitorAddr string `yaml:"monitor_addr" json:"monitor_addr"`

	// MonitorHold keeps the monitor serving the final dashboard
	// this long after the run ends, or until the run is
	// interrupted.
	MonitorHold time.Duration `yaml:"monitor_hold" json:"monitor_hold"`
}

// NewConfig creates a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Timeout:     5 * time.Second,
		Parallelism: 1,
	}
}

// LoadConfig reads a YAML config file on top of the defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := NewConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// ApplyEnv overrides fields from EVALUATOR_* variables.
func (c *Config) ApplyEnv(l env.Loader) error {
	if v, ok, err := env.Duration(l, EnvTimeout); err != nil {
		return err
	} else if ok {
		c.Timeout = v
	}
	if v, ok, err := env.Bool(l, EnvStrict); err != nil {
		return err
	} else if ok {
		c.Strict = v
	}
	if v, ok, err := env.Int(l, EnvParallelism); err != nil {
		return err
	} else if ok {
		c.Parallelism = v
	}
	if v, ok, err := env.Duration(l, EnvMonitorHold); err != nil {
		return err
	} else if ok {
		c.MonitorHold = v
	}
	if v, ok, err := env.Bool(l, EnvVerbose); err != nil {
		return err
	} else if ok {
		c.Verbose = v
	}
	c.ResultsDir = l.GetWithDefault(EnvResultsDir, c.ResultsDir)
	c.MonitorAddr = l.GetWithDefault(EnvMonitorAddr, c.MonitorAddr)
	return c.Validate()
}

// Validate rejects negative durations and parallelism.
func (c *Config) Validate() error {
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative: %s", c.Timeout)
	}
	if c.MonitorHold < 0 {
		return fmt.Errorf(
			"monitor hold must not be negative: %s", c.MonitorHold,
		)
	}
	if c.Parallelism < 0 {
		return fmt.Errorf(
			"parallelism must not be negative: %d", c.Parallelism,
		)
	}
	return nil
}
