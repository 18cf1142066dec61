// Copyright 2021 Converter Systems LLC. All rights reserved.

package main

import (
	"io"
	"runtime"
	"strings"

	"github.com/awcullen/uacodec/ua"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Config holds the settings read from uacodec.yaml or uacodec.json and UACODEC_* variables.
type Config struct {
	Namespaces []string     `mapstructure:"namespaces"`
	Reversible bool         `mapstructure:"reversible"`
	Workers    int          `mapstructure:"workers"`
	Limits     LimitsConfig `mapstructure:"limits"`
	Logger     LoggerConfig `mapstructure:"logger"`
}

// LimitsConfig bounds the sizes the decoders accept. Zero means no limit.
type LimitsConfig struct {
	MaxStringLength     int `mapstructure:"max_string_length"`
	MaxByteStringLength int `mapstructure:"max_byte_string_length"`
	MaxArrayLength      int `mapstructure:"max_array_length"`
	MaxRecursionDepth   int `mapstructure:"max_recursion_depth"`
}

// LoggerConfig selects the level and format of the log.
type LoggerConfig struct {
	Level            string `mapstructure:"level"`
	Format           string `mapstructure:"format"`
	DisableTimestamp bool   `mapstructure:"disable_timestamp"`
}

func setDefaults(v *viper.Viper) {
	limits := ua.DefaultEncodingLimits()
	v.SetDefault("namespaces", []string{})
	v.SetDefault("reversible", true)
	v.SetDefault("workers", runtime.NumCPU())
	v.SetDefault("limits.max_string_length", limits.MaxStringLength)
	v.SetDefault("limits.max_byte_string_length", limits.MaxByteStringLength)
	v.SetDefault("limits.max_array_length", limits.MaxArrayLength)
	v.SetDefault("limits.max_recursion_depth", limits.MaxRecursionDepth)
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "text")
	v.SetDefault("logger.disable_timestamp", false)
}

// loadConfig reads the config file, or uacodec.{yaml,json} from the working directory
// if file is empty. A missing default file is not an error.
func loadConfig(file string) (Config, error) {
	var cfg Config
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("UACODEC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("uacodec")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/uacodec")
	}
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || file != "" {
			return cfg, errors.Wrap(err, "reading config")
		}
	}
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, errors.Wrap(err, "parsing config")
	}
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	return cfg, nil
}

// EncodingContext returns the context for the configured namespaces and limits.
func (cfg Config) EncodingContext() ua.EncodingContext {
	return ua.NewEncodingContext(
		ua.WithNamespaceURIs(cfg.Namespaces...),
		ua.WithLimits(ua.EncodingLimits{
			MaxStringLength:     cfg.Limits.MaxStringLength,
			MaxByteStringLength: cfg.Limits.MaxByteStringLength,
			MaxArrayLength:      cfg.Limits.MaxArrayLength,
			MaxRecursionDepth:   cfg.Limits.MaxRecursionDepth,
		}),
	)
}

func newLogger(cfg LoggerConfig, out io.Writer) *logrus.Logger {
	log := logrus.New()
	switch strings.ToLower(cfg.Format) {
	case "json":
		log.Formatter = &logrus.JSONFormatter{DisableTimestamp: cfg.DisableTimestamp}
	default:
		log.Formatter = &logrus.TextFormatter{DisableTimestamp: cfg.DisableTimestamp}
	}
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
		defer log.WithField("level", cfg.Level).Warnln("unknown log level, using info")
	}
	log.Level = level
	log.Out = out
	return log
}
