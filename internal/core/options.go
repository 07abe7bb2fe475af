/*
 * This Source Code Form is subject to the terms of the Mozilla Public License, v. 2.0.
 * If a copy of the MPL was not distributed with this file, You can obtain one at
 * https://mozilla.org/MPL/2.0/.
 */

// options.go: Configuration options for go-openwallet
package core

import (
	"errors"
	"io"
	"math"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/sirupsen/logrus"
)

// Stage is a step of the wallet open pipeline.
type Stage uint8

const (
	StageStart Stage = iota
	StageMagicChecked
	StageKeyDerived
	StageDecrypted
	StagePasswordVerified
	StageDone
)

// String returns the stage name
func (s Stage) String() string {
	switch s {
	case StageStart:
		return "start"
	case StageMagicChecked:
		return "magic checked"
	case StageKeyDerived:
		return "key derived"
	case StageDecrypted:
		return "decrypted"
	case StagePasswordVerified:
		return "password verified"
	case StageDone:
		return "done"
	default:
		return "unknown"
	}
}

type Config struct {
	MaxSize  int64
	Logger   logrus.FieldLogger
	Observer func(Stage)
}

// Option defines functional options for opening wallets (size limit, logger, stage observer)
type Option func(*Config)

const (
	MinMaxSize = int64(BlockSize) // Smallest useful ciphertext limit
	// DefaultMaxSize bounds how much ciphertext is buffered in memory.
	// Wallets hold short text, so this is generous.
	DefaultMaxSize = 64 * 1024 * 1024

	// MaxSizeEnv overrides the default limit, e.g. "16MiB" or "10 MB".
	MaxSizeEnv = "OPENWALLET_MAX_SIZE"
)

// defaultConfig returns the configuration before options are applied.
func defaultConfig() (*Config, error) {
	maxSize, err := maxSizeFromEnv()
	if err != nil {
		return nil, err
	}
	return &Config{
		MaxSize: maxSize,
		Logger:  discardLogger(),
	}, nil
}

func maxSizeFromEnv() (int64, error) {
	envLimit, exists := os.LookupEnv(MaxSizeEnv)
	if !exists || envLimit == "" {
		return DefaultMaxSize, nil
	}
	limit, err := humanize.ParseBytes(envLimit)
	if err != nil {
		return 0, errors.New(MaxSizeEnv + " is not a valid size: " + err.Error())
	}
	// G115: Prevent integer overflow conversion uint64 -> int64
	if limit > uint64(math.MaxInt64) {
		return 0, errors.New(MaxSizeEnv + " too large: exceeds int64 max value")
	}
	if int64(limit) < MinMaxSize {
		return 0, errors.New(MaxSizeEnv + " must be at least one cipher block")
	}
	return int64(limit), nil
}

func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// WithMaxSize sets the largest ciphertext that will be buffered.
func WithMaxSize(size int64) (Option, error) {
	if size < MinMaxSize {
		return nil, errors.New("invalid max size: must hold at least one cipher block")
	}
	return func(cfg *Config) {
		cfg.MaxSize = size
	}, nil
}

// WithLogger sets the logger used for debug-level stage logs.
// Passwords, keys and decrypted content are never logged.
func WithLogger(l logrus.FieldLogger) Option {
	return func(cfg *Config) {
		if l != nil {
			cfg.Logger = l
		}
	}
}

// WithStageObserver sets a callback invoked each time the pipeline reaches a stage.
// The callback runs on the caller's goroutine and must not block.
func WithStageObserver(cb func(Stage)) Option {
	return func(cfg *Config) {
		cfg.Observer = cb
	}
}
