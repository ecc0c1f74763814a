// Package config reads the three recognized options of the mining CLI
// (§6 EXTERNAL INTERFACES) and initializes the process-wide zap logger.
package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	colocate "github.com/Academic-Paper-Implementations/Efficient-Co-location-Pattern-Mining-in-Large-Spatial-Datasets-with-Rare-Features"
)

// Config holds the full application configuration: the three options the
// core recognizes plus the worker count, logging and report settings.
type Config struct {
	DatasetPath      string     `yaml:"dataset_path" mapstructure:"dataset_path"`
	NeighborDistance float64    `yaml:"neighbor_distance" mapstructure:"neighbor_distance"`
	MinPrev          float64    `yaml:"min_prev" mapstructure:"min_prev"`
	Workers          int        `yaml:"workers" mapstructure:"workers"`
	Log              LogConfig  `yaml:"log" mapstructure:"log"`
	Report           ReportCfg  `yaml:"report" mapstructure:"report"`
}

// LogConfig configures the global zap logger.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// ReportCfg configures the result formatter collaborator.
type ReportCfg struct {
	Format  string `yaml:"format" mapstructure:"format"`
	DotPath string `yaml:"dot_path" mapstructure:"dot_path"`
}

// Load reads configuration from the file at path, which is always parsed
// as YAML whatever its extension (so a flat "key: value" text file such as
// config.txt is accepted), and from environment overrides prefixed
// COLOMINER_. datasetPath, neighborDistance,
// and minPrev are the three recognized options of §6; everything else is
// ambient.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.SetEnvPrefix("COLOMINER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("workers", 0)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("report.format", "table")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the three core options per §7's ConfigInvalid kind.
func Validate(cfg *Config) error {
	if cfg.NeighborDistance <= 0 {
		return eris.Wrapf(colocate.ErrConfigInvalid, "config: neighborDistance must be > 0, got %v", cfg.NeighborDistance)
	}
	if cfg.MinPrev <= 0 || cfg.MinPrev > 1 {
		return eris.Wrapf(colocate.ErrConfigInvalid, "config: minPrev must be in (0,1], got %v", cfg.MinPrev)
	}
	if cfg.DatasetPath == "" {
		return eris.Wrap(colocate.ErrConfigInvalid, "config: datasetPath must not be empty")
	}
	return nil
}

// InitLogger initializes the global zap logger from cfg.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
