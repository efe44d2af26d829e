// Package config resolves obreport settings from defaults, an optional YAML
// file, the environment (including a .env file) and finally CLI flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/alexanderramin/obreport/internal/domain"
	"github.com/alexanderramin/obreport/internal/ewh"
)

// DefaultFile is read from the working directory when no --config is given.
const DefaultFile = "obreport.yaml"

type Config struct {
	Thresholds   Thresholds   `yaml:"thresholds"`
	Compensation Compensation `yaml:"compensation"`
	Timezone     string       `yaml:"timezone"`
	Department   string       `yaml:"department"`
	DBPath       string       `yaml:"db_path"`
	OutputDir    string       `yaml:"output_dir"`
	Log          LogConfig    `yaml:"log"`
}

// Thresholds are gap thresholds in minutes.
type Thresholds struct {
	PickingMinutes    float64 `yaml:"picking_minutes"`
	PackingMinutes    float64 `yaml:"packing_minutes"`
	EfficiencyMinutes float64 `yaml:"efficiency_minutes"`
}

type Compensation struct {
	Mode   string  `yaml:"mode"`
	Factor float64 `yaml:"factor"`
}

type LogConfig struct {
	Env     string `yaml:"env"`
	Verbose bool   `yaml:"verbose"`
}

func DefaultConfig() Config {
	return Config{
		Thresholds: Thresholds{
			PickingMinutes:    5,
			PackingMinutes:    5,
			EfficiencyMinutes: 5,
		},
		Compensation: Compensation{Mode: string(domain.CompensationNone), Factor: 1.0},
		Timezone:     "Local",
		Department:   "OB",
		DBPath:       defaultDBPath(),
		OutputDir:    ".",
		Log:          LogConfig{Env: "development"},
	}
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".obreport", "obreport.db")
	}
	return filepath.Join(home, ".obreport", "obreport.db")
}

// Override is a command-line setting applied after the environment.
type Override func(*Config)

func WithPickingGap(minutes float64) Override {
	return func(c *Config) { c.Thresholds.PickingMinutes = minutes }
}

func WithPackingGap(minutes float64) Override {
	return func(c *Config) { c.Thresholds.PackingMinutes = minutes }
}

func WithEfficiencyGap(minutes float64) Override {
	return func(c *Config) { c.Thresholds.EfficiencyMinutes = minutes }
}

func WithCompensation(mode string) Override {
	return func(c *Config) { c.Compensation.Mode = mode }
}

func WithCompensationFactor(factor float64) Override {
	return func(c *Config) { c.Compensation.Factor = factor }
}

func WithTimezone(tz string) Override {
	return func(c *Config) { c.Timezone = tz }
}

func WithVerbose() Override {
	return func(c *Config) { c.Log.Verbose = true }
}

// Load builds the configuration. An explicit path must exist; with an empty
// path DefaultFile is used when present. A .env file in the working
// directory is loaded without overriding variables already set. Overrides
// run last and the result is validated after them.
func Load(path string, overrides ...Override) (Config, error) {
	cfg := DefaultConfig()

	file := path
	if file == "" {
		if _, err := os.Stat(DefaultFile); err == nil {
			file = DefaultFile
		}
	}
	if file != "" {
		if err := cfg.mergeFile(file); err != nil {
			return cfg, err
		}
	}

	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			return cfg, fmt.Errorf("loading .env: %w", err)
		}
	}
	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return cfg, err
	}
	for _, o := range overrides {
		o(&cfg)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	float := func(key string, dst *float64) error {
		v, ok := lookup(key)
		if !ok || v == "" {
			return nil
		}
		n, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		*dst = n
		return nil
	}

	var errs []error
	errs = append(errs,
		float("OBREPORT_PICKING_GAP_MIN", &c.Thresholds.PickingMinutes),
		float("OBREPORT_PACKING_GAP_MIN", &c.Thresholds.PackingMinutes),
		float("OBREPORT_EFFICIENCY_GAP_MIN", &c.Thresholds.EfficiencyMinutes),
		float("OBREPORT_COMPENSATION_FACTOR", &c.Compensation.Factor),
	)
	str("OBREPORT_COMPENSATION_MODE", &c.Compensation.Mode)
	str("OBREPORT_TZ", &c.Timezone)
	str("OBREPORT_DEPARTMENT", &c.Department)
	str("OBREPORT_DB", &c.DBPath)
	str("OBREPORT_OUTPUT_DIR", &c.OutputDir)
	str("OBREPORT_ENV", &c.Log.Env)
	if v, ok := lookup("OBREPORT_LOG_VERBOSE"); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("OBREPORT_LOG_VERBOSE: %w", err))
		} else {
			c.Log.Verbose = b
		}
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("reading environment: %w", err)
	}
	return nil
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var errs []error
	if c.Thresholds.PickingMinutes <= 0 {
		errs = append(errs, fmt.Errorf("thresholds.picking_minutes must be positive, got %g", c.Thresholds.PickingMinutes))
	}
	if c.Thresholds.PackingMinutes <= 0 {
		errs = append(errs, fmt.Errorf("thresholds.packing_minutes must be positive, got %g", c.Thresholds.PackingMinutes))
	}
	if c.Thresholds.EfficiencyMinutes <= 0 {
		errs = append(errs, fmt.Errorf("thresholds.efficiency_minutes must be positive, got %g", c.Thresholds.EfficiencyMinutes))
	}
	if !domain.ValidCompensationModes[c.Compensation.Mode] {
		errs = append(errs, fmt.Errorf("compensation.mode %q is not one of none, on_anomaly, always", c.Compensation.Mode))
	}
	if c.Compensation.Factor < 1 {
		errs = append(errs, fmt.Errorf("compensation.factor must be >= 1, got %g", c.Compensation.Factor))
	}
	if _, err := c.Location(); err != nil {
		errs = append(errs, err)
	}
	if c.DBPath == "" {
		errs = append(errs, errors.New("db_path is required"))
	}
	return errors.Join(errs...)
}

// Location resolves Timezone; "Local" and "" mean the system zone.
func (c Config) Location() (*time.Location, error) {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

func minutes(m float64) time.Duration {
	return time.Duration(m * float64(time.Minute))
}

// DailyOptions are the aggregation options of the full-day pass.
func (c Config) DailyOptions(logger *zap.Logger) ewh.Options {
	return ewh.Options{
		PickingThreshold: minutes(c.Thresholds.PickingMinutes),
		PackingThreshold: minutes(c.Thresholds.PackingMinutes),
		Compensation:     ewh.NoCompensation(),
		Logger:           logger,
	}
}

// EfficiencyOptions are the aggregation options of the morning pass.
func (c Config) EfficiencyOptions(logger *zap.Logger) ewh.Options {
	policy := ewh.CompensationPolicy{
		Mode:   domain.CompensationMode(c.Compensation.Mode),
		Factor: c.Compensation.Factor,
	}
	return ewh.EfficiencyOptions(minutes(c.Thresholds.EfficiencyMinutes), policy, c.DailyOptions(logger))
}
