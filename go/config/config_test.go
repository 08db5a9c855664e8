// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lumen-chain/lumen/go/gas"
	"github.com/lumen-chain/lumen/go/lumen"
	"github.com/lumen-chain/lumen/go/state"
)

func TestDefault_IsValid(t *testing.T) {
	config := Default()
	if err := config.Validate(); err != nil {
		t.Errorf("default configuration is invalid: %v", err)
	}
}

func TestParse_EmptyDocumentYieldsDefaults(t *testing.T) {
	config, err := Parse(nil)
	if err != nil {
		t.Fatalf("failed to parse empty document: %v", err)
	}
	if want, got := Default(), config; want != got {
		t.Errorf("unexpected configuration, wanted %+v, got %+v", want, got)
	}
}

func TestParse_OverridesDefaults(t *testing.T) {
	config, err := Parse([]byte(`
runtime:
  max_call_depth: 8
  gas_policy: alpha
  gas_limit: 5000
storage:
  backend: leveldb
  path: /tmp/lumen
  cache_size: -1
log:
  level: debug
  format: json
metrics:
  listen: ":9100"
`))
	if err != nil {
		t.Fatalf("failed to parse: %v", err)
	}
	want := Config{
		Runtime: Runtime{
			MaxCallDepth:     8,
			MaxArgumentBytes: Default().Runtime.MaxArgumentBytes,
			GasPolicy:        "alpha",
			GasLimit:         5000,
		},
		Storage: Storage{Backend: BackendLevelDB, Path: "/tmp/lumen", CacheSize: -1},
		Log:     Log{Level: "debug", Format: "json"},
		Metrics: Metrics{Listen: ":9100"},
	}
	if want != config {
		t.Errorf("unexpected configuration, wanted %+v, got %+v", want, config)
	}
}

func TestParse_RejectsInvalidDocuments(t *testing.T) {
	tests := map[string]struct {
		document string
		issue    string
	}{
		"unknown_key": {
			document: "runtime:\n  max_depth: 3\n",
			issue:    "max_depth",
		},
		"negative_depth": {
			document: "runtime:\n  max_call_depth: -1\n",
			issue:    "max_call_depth",
		},
		"negative_argument_bytes": {
			document: "runtime:\n  max_argument_bytes: -1\n",
			issue:    "max_argument_bytes",
		},
		"negative_gas_limit": {
			document: "runtime:\n  gas_limit: -1\n",
			issue:    "gas_limit",
		},
		"unknown_policy": {
			document: "runtime:\n  gas_policy: beta\n",
			issue:    "gas_policy",
		},
		"unknown_backend": {
			document: "storage:\n  backend: pebble\n",
			issue:    "storage.backend",
		},
		"leveldb_without_path": {
			document: "storage:\n  backend: leveldb\n",
			issue:    "storage.path",
		},
		"unknown_log_level": {
			document: "log:\n  level: loud\n",
			issue:    "log",
		},
		"unknown_log_format": {
			document: "log:\n  format: xml\n",
			issue:    "log",
		},
		"malformed": {
			document: "runtime: [",
			issue:    "parse",
		},
	}
	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(test.document))
			if err == nil {
				t.Fatalf("expected an error")
			}
			if !strings.Contains(err.Error(), test.issue) {
				t.Errorf("error %q does not mention %q", err, test.issue)
			}
		})
	}
}

func TestLoad_ReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lumen.yaml")
	if err := os.WriteFile(path, []byte("runtime:\n  max_call_depth: 3\n"), 0o600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	config, err := Load(path)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if want, got := 3, config.Runtime.MaxCallDepth; want != got {
		t.Errorf("unexpected call depth, wanted %d, got %d", want, got)
	}
}

func TestLoad_MissingFileIsAnError(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Errorf("expected an error for a missing file")
	}
}

func TestConfig_ProcessorConfig(t *testing.T) {
	config := Default()
	config.Runtime.MaxCallDepth = 5
	config.Runtime.GasPolicy = "ALPHA"
	processor, err := config.ProcessorConfig(nil)
	if err != nil {
		t.Fatalf("failed to derive processor config: %v", err)
	}
	if want, got := 5, processor.MaxCallDepth; want != got {
		t.Errorf("unexpected call depth, wanted %d, got %d", want, got)
	}
	if _, ok := processor.GasPolicy.(gas.AlphaPolicy); !ok {
		t.Errorf("unexpected gas policy %T", processor.GasPolicy)
	}
}

func TestConfig_OpenDatabase(t *testing.T) {
	tests := map[string]Storage{
		"memory":  {Backend: BackendMemory},
		"leveldb": {Backend: BackendLevelDB, Path: t.TempDir()},
	}
	for name, storage := range tests {
		t.Run(name, func(t *testing.T) {
			config := Default()
			config.Storage = storage
			db, err := config.OpenDatabase()
			if err != nil {
				t.Fatalf("failed to open database: %v", err)
			}
			defer db.Close()

			context := state.New(db)
			context.SetNonce(lumen.Address{1}, 3)
			if err := context.Commit(); err != nil {
				t.Fatalf("failed to commit: %v", err)
			}
			if found, err := db.HasAccount(lumen.Address{1}); err != nil || !found {
				t.Errorf("committed account not found, err %v", err)
			}
		})
	}
}
