package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/vancomm/minesweeper/internal/mines"
)

type Duration struct{ time.Duration }

// [Duration] implements [json.Marshaler]
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Duration) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch value := v.(type) {
	case float64:
		d.Duration = time.Duration(value)
		return nil
	case string:
		var err error
		d.Duration, err = time.ParseDuration(value)
		if err != nil {
			return err
		}
		return nil
	default:
		return errors.New("invalid duration")
	}
}

type LogConfig struct {
	File       string `json:"file"`
	MaxSizeMB  int    `json:"max_size_mb"`
	MaxBackups int    `json:"max_backups"`
	MaxAgeDays int    `json:"max_age_days"`
}

type Config struct {
	Mode            string           `json:"mode"`
	Addr            string           `json:"addr"`
	Game            mines.GameParams `json:"game"`
	TickInterval    Duration         `json:"tick_interval"`
	ShutdownTimeout Duration         `json:"shutdown_timeout"`
	Log             LogConfig        `json:"log"`
}

func Default() Config {
	return Config{
		Mode:            "production",
		Addr:            "localhost:8000",
		Game:            mines.DefaultParams(),
		TickInterval:    Duration{time.Second},
		ShutdownTimeout: Duration{15 * time.Second},
		Log: LogConfig{
			MaxSizeMB:  50,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
	}
}

// Load starts from [Default], overlays the JSON file at path when path is
// not empty, then applies environment overrides.
func Load(path string) (Config, error) {
	config := Default()
	if path != "" {
		if err := ReadConfig(path, &config); err != nil {
			return config, fmt.Errorf("unable to read config %s: %w", path, err)
		}
	}
	applyEnv(&config)
	if err := config.Game.Validate(); err != nil {
		return config, err
	}
	if config.TickInterval.Duration <= 0 {
		return config, fmt.Errorf("tick_interval must be positive, got %s", config.TickInterval)
	}
	return config, nil
}

func ReadConfig(path string, config *Config) error {
	if b, err := os.ReadFile(path); err != nil {
		return err
	} else {
		return json.Unmarshal(b, config)
	}
}

func applyEnv(c *Config) {
	if addr, ok := os.LookupEnv("MINES_ADDR"); ok {
		c.Addr = addr
	}
	if logFile, ok := os.LookupEnv("MINES_LOG_FILE"); ok {
		c.Log.File = logFile
	}
	if development, ok := os.LookupEnv("DEVELOPMENT"); ok {
		if development != "0" {
			c.Mode = "development"
		} else {
			c.Mode = "production"
		}
	}
}

func (c Config) Fields() logrus.Fields {
	return map[string]any{
		"mode":             c.Mode,
		"addr":             c.Addr,
		"rows":             c.Game.Rows,
		"cols":             c.Game.Cols,
		"mines":            c.Game.MineCount,
		"tick_interval":    c.TickInterval.Duration.String(),
		"shutdown_timeout": c.ShutdownTimeout.Duration.String(),
		"log_file":         c.Log.File,
	}
}

func (c Config) Production() bool {
	return c.Mode == "production"
}

func (c Config) Development() bool {
	return c.Mode != "production"
}
