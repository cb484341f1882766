// Copyright (C) 2022 Sneller, Inc.
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

// Package config loads the settings that govern an engine.Controller's
// table: its size, how many workers it should assume exist, and
// whether the parallel Clear path should NUMA-bind its workers.
package config

import (
	"fmt"
	"os"
	"runtime"

	"sigs.k8s.io/yaml"
)

// Config mirrors the table's tunables, plus one informational field
// (ClusterSize) that deployment tooling can check against the binary
// it is talking to: the compiled cluster size is fixed, but a
// mismatched expectation in a config file is a useful thing to flag.
type Config struct {
	TableMB     int  `json:"table_mb"`
	Workers     int  `json:"workers"`
	NUMA        bool `json:"numa"`
	ClusterSize int  `json:"cluster_size,omitempty"`
}

// Default returns the configuration a Controller falls back to when
// none is supplied: a 16 MiB table, one worker per logical CPU, and
// NUMA binding enabled.
func Default() Config {
	return Config{
		TableMB: 16,
		Workers: runtime.GOMAXPROCS(0),
		NUMA:    true,
	}
}

// Load reads a YAML (or JSON, which is a YAML subset) document from
// path and decodes it into a Config. A zero or negative TableMB in the
// decoded document is replaced with Default's.
func Load(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: reading %s: %w", path, err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	if cfg.TableMB <= 0 {
		cfg.TableMB = Default().TableMB
	}
	if cfg.Workers <= 0 {
		cfg.Workers = Default().Workers
	}
	return cfg, nil
}
