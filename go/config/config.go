// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

// Package config defines the settings of a lumen node and loads them from
// YAML files.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/ethdb/memorydb"
	"github.com/lumen-chain/lumen/go/gas"
	"github.com/lumen-chain/lumen/go/logging"
	"github.com/lumen-chain/lumen/go/processor/floria"
	"github.com/lumen-chain/lumen/go/state"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

const (
	BackendMemory  = "memory"
	BackendLevelDB = "leveldb"
)

type Config struct {
	Runtime Runtime `yaml:"runtime"`
	Storage Storage `yaml:"storage"`
	Log     Log     `yaml:"log"`
	Metrics Metrics `yaml:"metrics"`
}

// Runtime configures transaction processing.
type Runtime struct {
	MaxCallDepth     int    `yaml:"max_call_depth"`
	MaxArgumentBytes int    `yaml:"max_argument_bytes"`
	GasPolicy        string `yaml:"gas_policy"`
	// GasLimit is applied to transactions not setting their own limit.
	// Zero means unlimited.
	GasLimit int64 `yaml:"gas_limit"`
}

// Storage selects the state database.
type Storage struct {
	Backend   string `yaml:"backend"`
	Path      string `yaml:"path"`
	CacheSize int    `yaml:"cache_size"`
}

type Log struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Metrics configures the prometheus endpoint. An empty address disables it.
type Metrics struct {
	Listen string `yaml:"listen"`
}

// Default returns the configuration used for settings missing in a file.
func Default() Config {
	return Config{
		Runtime: Runtime{
			MaxCallDepth:     floria.DefaultMaxCallDepth,
			MaxArgumentBytes: floria.DefaultMaxArgumentBytes,
			GasPolicy:        "free",
		},
		Storage: Storage{
			Backend: BackendMemory,
		},
		Log: Log{
			Level:  "info",
			Format: logging.FormatConsole,
		},
	}
}

// Load reads a configuration file. Settings missing in the file keep their
// default values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}
	res, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return res, nil
}

// Parse decodes a YAML document on top of the default configuration.
// Unknown keys are rejected.
func Parse(data []byte) (Config, error) {
	res := Default()
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&res); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := res.Validate(); err != nil {
		return Config{}, err
	}
	return res, nil
}

// Validate reports all invalid settings.
func (c *Config) Validate() error {
	var errs []error
	if c.Runtime.MaxCallDepth < 0 {
		errs = append(errs, fmt.Errorf("runtime.max_call_depth must not be negative, got %d", c.Runtime.MaxCallDepth))
	}
	if c.Runtime.MaxArgumentBytes < 0 {
		errs = append(errs, fmt.Errorf("runtime.max_argument_bytes must not be negative, got %d", c.Runtime.MaxArgumentBytes))
	}
	if c.Runtime.GasLimit < 0 {
		errs = append(errs, fmt.Errorf("runtime.gas_limit must not be negative, got %d", c.Runtime.GasLimit))
	}
	if _, err := gas.GetPolicy(c.Runtime.GasPolicy); err != nil {
		errs = append(errs, fmt.Errorf("runtime.gas_policy: %w", err))
	}
	switch strings.ToLower(c.Storage.Backend) {
	case BackendMemory:
	case BackendLevelDB:
		if c.Storage.Path == "" {
			errs = append(errs, errors.New("storage.path is required for the leveldb backend"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown storage.backend %q", c.Storage.Backend))
	}
	if _, err := logging.New(c.Log.Level, c.Log.Format); err != nil {
		errs = append(errs, fmt.Errorf("log: %w", err))
	}
	return errors.Join(errs...)
}

// ProcessorConfig derives the processor settings.
func (c *Config) ProcessorConfig(logger *zap.Logger) (floria.Config, error) {
	policy, err := gas.GetPolicy(c.Runtime.GasPolicy)
	if err != nil {
		return floria.Config{}, err
	}
	return floria.Config{
		MaxCallDepth:     c.Runtime.MaxCallDepth,
		MaxArgumentBytes: c.Runtime.MaxArgumentBytes,
		GasPolicy:        policy,
		Logger:           logger,
	}, nil
}

// OpenDatabase opens the configured state database.
func (c *Config) OpenDatabase() (*state.Database, error) {
	config := state.DatabaseConfig{CacheSize: c.Storage.CacheSize}
	switch strings.ToLower(c.Storage.Backend) {
	case BackendMemory:
		return state.NewDatabase(memorydb.New(), config)
	case BackendLevelDB:
		return state.OpenLevelDB(c.Storage.Path, config)
	}
	return nil, fmt.Errorf("unknown storage backend %q", c.Storage.Backend)
}

// NewLogger builds the configured logger.
func (c *Config) NewLogger() (*zap.Logger, error) {
	return logging.New(c.Log.Level, c.Log.Format)
}
