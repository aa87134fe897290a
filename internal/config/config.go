package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/robfig/cron"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Data      DataConfig      `yaml:"data"`
	Pipeline  PipelineConfig  `yaml:"pipeline"`
	Server    ServerConfig    `yaml:"server"`
	Auth      AuthConfig      `yaml:"auth"`
	Database  DatabaseConfig  `yaml:"database"`
	Tailscale TailscaleConfig `yaml:"tailscale"`
	Reload    ReloadConfig    `yaml:"reload"`
	Export    ExportConfig    `yaml:"export"`
}

// DataConfig locates the input files. Relative names resolve against Dir.
type DataConfig struct {
	Dir        string `yaml:"dir"`
	SetLog     string `yaml:"set_log"`
	Catalog    string `yaml:"catalog"`
	Bodyweight string `yaml:"bodyweight"`
	Gyms       string `yaml:"gyms"`
	Routines   string `yaml:"routines"`
}

type PipelineConfig struct {
	DefaultBodyweightKg    float64 `yaml:"default_bodyweight_kg"`
	MinProgressionSessions int     `yaml:"min_progression_sessions"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type AuthConfig struct {
	APIKey string `yaml:"api_key"`
}

// DatabaseConfig points at an optional Postgres table holding the set log.
// When Enabled, it replaces data.set_log as the set source.
type DatabaseConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"sslmode"`
	Table    string `yaml:"table"`
}

type TailscaleConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Hostname string `yaml:"hostname"`
	StateDir string `yaml:"state_dir"`
}

// ReloadConfig schedules full pipeline re-runs. An empty schedule disables them.
type ReloadConfig struct {
	Schedule string `yaml:"schedule"`
}

type ExportConfig struct {
	Format string `yaml:"format"`
	Path   string `yaml:"path"`
}

// Export formats.
const (
	FormatParquet = "parquet"
	FormatCSV     = "csv"
	FormatSQLite  = "sqlite"
)

// DSN returns a PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	sslmode := d.SSLMode
	if sslmode == "" {
		sslmode = "disable"
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, sslmode)
}

// Path resolves a data file name against the data directory.
func (d DataConfig) Path(name string) string {
	if name == "" || filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(d.Dir, name)
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Data: DataConfig{
			Dir:        "data",
			SetLog:     "workout_data.csv",
			Catalog:    "exercise_database.json",
			Bodyweight: "bodyweight_data.csv",
			Gyms:       "gyms.csv",
			Routines:   "routines.csv",
		},
		Pipeline: PipelineConfig{
			DefaultBodyweightKg:    70.0,
			MinProgressionSessions: 12,
		},
		Server: ServerConfig{
			Host: "127.0.0.1",
			Port: 8080,
		},
		Database: DatabaseConfig{
			Port:  5432,
			Table: "hevy_sets",
		},
		Tailscale: TailscaleConfig{
			Hostname: "hevystats",
		},
		Export: ExportConfig{
			Format: FormatParquet,
			Path:   "enriched_sets.parquet",
		},
	}
}

// Load reads config from a YAML file on top of Default, then applies
// environment variable overrides. An empty path skips the file.
// Env vars use the prefix HEVYSTATS_ and underscore-separated paths:
//
//	HEVYSTATS_DATA_DIR, HEVYSTATS_DEFAULT_BODYWEIGHT_KG,
//	HEVYSTATS_SERVER_HOST, HEVYSTATS_SERVER_PORT, HEVYSTATS_AUTH_API_KEY,
//	HEVYSTATS_DB_ENABLED, HEVYSTATS_DB_HOST, HEVYSTATS_DB_PORT, HEVYSTATS_DB_NAME,
//	HEVYSTATS_DB_USER, HEVYSTATS_DB_PASSWORD, HEVYSTATS_DB_SSLMODE, HEVYSTATS_DB_TABLE,
//	HEVYSTATS_TS_ENABLED, HEVYSTATS_TS_HOSTNAME, HEVYSTATS_TS_STATE_DIR,
//	HEVYSTATS_RELOAD_SCHEDULE
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("HEVYSTATS_DATA_DIR"); v != "" {
		cfg.Data.Dir = v
	}
	if v := os.Getenv("HEVYSTATS_DEFAULT_BODYWEIGHT_KG"); v != "" {
		if kg, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Pipeline.DefaultBodyweightKg = kg
		}
	}
	if v := os.Getenv("HEVYSTATS_SERVER_HOST"); v != "" {
		cfg.Server.Host = v
	}
	if v := os.Getenv("HEVYSTATS_SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("HEVYSTATS_AUTH_API_KEY"); v != "" {
		cfg.Auth.APIKey = v
	}
	if v := os.Getenv("HEVYSTATS_DB_ENABLED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Database.Enabled = b
		}
	}
	if v := os.Getenv("HEVYSTATS_DB_HOST"); v != "" {
		cfg.Database.Host = v
	}
	if v := os.Getenv("HEVYSTATS_DB_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Database.Port = port
		}
	}
	if v := os.Getenv("HEVYSTATS_DB_NAME"); v != "" {
		cfg.Database.Name = v
	}
	if v := os.Getenv("HEVYSTATS_DB_USER"); v != "" {
		cfg.Database.User = v
	}
	if v := os.Getenv("HEVYSTATS_DB_PASSWORD"); v != "" {
		cfg.Database.Password = v
	}
	if v := os.Getenv("HEVYSTATS_DB_SSLMODE"); v != "" {
		cfg.Database.SSLMode = v
	}
	if v := os.Getenv("HEVYSTATS_DB_TABLE"); v != "" {
		cfg.Database.Table = v
	}
	if v := os.Getenv("HEVYSTATS_TS_ENABLED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Tailscale.Enabled = b
		}
	}
	if v := os.Getenv("HEVYSTATS_TS_HOSTNAME"); v != "" {
		cfg.Tailscale.Hostname = v
	}
	if v := os.Getenv("HEVYSTATS_TS_STATE_DIR"); v != "" {
		cfg.Tailscale.StateDir = v
	}
	if v := os.Getenv("HEVYSTATS_RELOAD_SCHEDULE"); v != "" {
		cfg.Reload.Schedule = v
	}
}

func (c *Config) validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535")
	}
	if c.Pipeline.DefaultBodyweightKg <= 0 {
		return fmt.Errorf("pipeline.default_bodyweight_kg must be positive")
	}
	if c.Pipeline.MinProgressionSessions < 1 {
		return fmt.Errorf("pipeline.min_progression_sessions must be at least 1")
	}
	if !c.Database.Enabled && c.Data.SetLog == "" {
		return fmt.Errorf("data.set_log is required unless database.enabled is set")
	}
	if c.Database.Enabled {
		if c.Database.Host == "" {
			return fmt.Errorf("database.host is required")
		}
		if c.Database.Port == 0 {
			return fmt.Errorf("database.port is required")
		}
		if c.Database.Name == "" {
			return fmt.Errorf("database.name is required")
		}
		if c.Database.User == "" {
			return fmt.Errorf("database.user is required")
		}
	}
	if c.Tailscale.Enabled && c.Tailscale.Hostname == "" {
		return fmt.Errorf("tailscale.hostname is required")
	}
	if c.Reload.Schedule != "" {
		if _, err := cron.Parse(c.Reload.Schedule); err != nil {
			return fmt.Errorf("reload.schedule: %w", err)
		}
	}
	switch c.Export.Format {
	case FormatParquet, FormatCSV, FormatSQLite:
	default:
		return fmt.Errorf("export.format must be one of parquet, csv, sqlite")
	}
	return nil
}
