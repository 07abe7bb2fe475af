/*
 * This Source Code Form is subject to the terms of the Mozilla Public License, v. 2.0.
 * If a copy of the MPL was not distributed with this file, You can obtain one at
 * https://mozilla.org/MPL/2.0/.
 */

package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/sirupsen/logrus"
)

// Config holds CLI settings read from OPENWALLET_* environment variables.
type Config struct {
	LogLevel  string        `envconfig:"LOG_LEVEL" default:"warn"`
	LogFormat string        `envconfig:"LOG_FORMAT" default:"text"`
	Timeout   time.Duration `envconfig:"TIMEOUT" default:"0s"`
	MaxSize   string        `envconfig:"MAX_SIZE"`
}

// LoadConfig loads configuration from environment variables.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := envconfig.Process("openwallet", cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}
	if cfg.Timeout < 0 {
		return nil, fmt.Errorf("OPENWALLET_TIMEOUT must not be negative, got %s", cfg.Timeout)
	}
	return cfg, nil
}

// newLogger builds the CLI logger. Logs go to w so stdout stays reserved for wallet content.
func newLogger(cfg *Config, verbose bool, w io.Writer) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(w)

	switch strings.ToLower(cfg.LogFormat) {
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{})
	default:
		logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	}

	if verbose {
		logger.SetLevel(logrus.DebugLevel)
		return logger
	}

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logger.SetLevel(logrus.WarnLevel)
		logger.Warnf("Invalid log level %q, defaulting to warn", cfg.LogLevel)
		return logger
	}
	logger.SetLevel(level)
	return logger
}
