package config

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"statcalc/stats"
)

const EnvPrefix = "STATCALC"

type LogConfig struct {
	Level string `mapstructure:"level"`
}

// Config picks the numeric domain of a calculator and, optionally,
// overrides its sentinels.
type Config struct {
	Domain  string    `mapstructure:"domain"`
	Zero    *float64  `mapstructure:"zero"`
	MinSeed *float64  `mapstructure:"min_seed"`
	MaxSeed *float64  `mapstructure:"max_seed"`
	Log     LogConfig `mapstructure:"log"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("domain", stats.FloatDomain.Name)
	v.SetDefault("log.level", "info")
}

// sentinelKeys have no default, so AutomaticEnv alone never surfaces them
// to Unmarshal.
var sentinelKeys = []string{"zero", "min_seed", "max_seed"}

// New returns a viper instance that also reads STATCALC_* variables,
// e.g. STATCALC_LOG_LEVEL=debug or STATCALC_MAX_SEED=1e6.
func New() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, key := range sentinelKeys {
		// BindEnv only fails when called without a key
		_ = v.BindEnv(key)
	}
	setDefaults(v)
	return v
}

func Load(v *viper.Viper) (*Config, error) {
	setDefaults(v)
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.Wrap(err, "decode config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func LoadFile(path string) (*Config, error) {
	v := New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrapf(err, "read config %s", path)
	}
	return Load(v)
}

func (cfg *Config) level() (zapcore.Level, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Log.Level)); err != nil {
		return level, errors.Wrapf(err, "log level %q", cfg.Log.Level)
	}
	return level, nil
}

func (cfg *Config) Validate() error {
	var err error
	if _, domainErr := cfg.BuildDomain(); domainErr != nil {
		err = multierr.Append(err, domainErr)
	}
	if _, levelErr := cfg.level(); levelErr != nil {
		err = multierr.Append(err, levelErr)
	}
	return err
}

// BuildDomain resolves the named domain and applies the sentinel overrides.
func (cfg *Config) BuildDomain() (stats.Domain, error) {
	domain, err := stats.DomainByName(cfg.Domain)
	if err != nil {
		return stats.Domain{}, err
	}
	if cfg.Zero != nil {
		domain.Zero = *cfg.Zero
	}
	if cfg.MinSeed != nil {
		domain.MinSeed = *cfg.MinSeed
	}
	if cfg.MaxSeed != nil {
		domain.MaxSeed = *cfg.MaxSeed
	}
	if err := domain.Validate(); err != nil {
		return stats.Domain{}, err
	}
	return domain, nil
}

func (cfg *Config) Logger() (*zap.Logger, error) {
	level, err := cfg.level()
	if err != nil {
		return nil, err
	}
	zapConfig := zap.NewProductionConfig()
	zapConfig.Level = zap.NewAtomicLevelAt(level)
	return zapConfig.Build()
}

// NewCalculator builds an empty calculator for the configured domain,
// logging through the configured logger.
func (cfg *Config) NewCalculator() (*stats.Calculator, error) {
	domain, err := cfg.BuildDomain()
	if err != nil {
		return nil, err
	}
	logger, err := cfg.Logger()
	if err != nil {
		return nil, err
	}
	return stats.New(domain, stats.WithLogger(logger.Named("statcalc")))
}
