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

package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"
	"sync/atomic"
	"time"

	"golang.org/x/exp/slices"

	"github.com/kestrelchess/tt/engine"
	"github.com/kestrelchess/tt/internal/config"
	"github.com/kestrelchess/tt/internal/keygen"
	"github.com/kestrelchess/tt/internal/tt"
)

// runBench drives concurrent Save/Probe traffic through a Controller
// and reports hashfull, hit rate, and wall-clock throughput, per the
// "bench [-keys N] [-workers N]" subcommand. Its table, worker count, and
// NUMA policy come either from -mb/-workers/-numa directly, or, if
// -config names a file, from config.Load.
func runBench(args []string) {
	cmd := flag.NewFlagSet("bench", flag.ExitOnError)
	mb := cmd.Int("mb", 16, "table size in megabytes")
	keys := cmd.Int("keys", 1_000_000, "total probe/save operations to perform")
	workers := cmd.Int("workers", runtime.GOMAXPROCS(0), "concurrent workers")
	numa := cmd.Bool("numa", true, "bind clearing goroutines to CPUs")
	seed := cmd.Uint64("seed", 1, "zobrist seed")
	cfgPath := cmd.String("config", "", "path to a YAML config file (overrides -mb/-workers/-numa)")
	if cmd.Parse(args) != nil {
		os.Exit(1)
	}

	cfg := config.Config{TableMB: *mb, Workers: *workers, NUMA: *numa}
	if *cfgPath != "" {
		loaded, err := config.Load(*cfgPath)
		if err != nil {
			logger.Printf("bench: %v", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	ctrl, err := engine.NewController(cfg)
	if err != nil {
		logger.Printf("bench: %v", err)
		os.Exit(1)
	}
	logger.Printf("bench: session %s, %d MiB table, %d workers, numa=%t, %d ops",
		ctrl.SessionID, cfg.TableMB, cfg.Workers, cfg.NUMA, *keys)

	pool := ctrl.Workers()
	perWorker := make([]int64, pool.Size())
	var done int64
	start := time.Now()
	pool.Start(func(id int) bool {
		n := atomic.AddInt64(&done, 1)
		if n > int64(*keys) {
			return false
		}
		atomic.AddInt64(&perWorker[id], 1)
		z := keygen.NewZobrist(*seed + uint64(id))
		key := z.ForPath([]int{id, int(n)})
		if n%5 == 0 {
			ctrl.Probe(key)
		} else {
			ctrl.Save(key, int16(n), int16(-n), n%11 == 0, tt.Bound(1+n%3), int(n%64), uint16(n))
		}
		return true
	})
	pool.Stop()
	elapsed := time.Since(start)

	stats := ctrl.Stats()
	total := stats.Hits() + stats.Misses()
	var hitRate float64
	if total > 0 {
		hitRate = float64(stats.Hits()) / float64(total)
	}
	fmt.Printf("ops=%d elapsed=%s throughput=%.0f ops/s hashfull=%d/1000 hit_rate=%.4f saves=%d\n",
		*keys, elapsed, float64(*keys)/elapsed.Seconds(), ctrl.Hashfull(), hitRate, stats.Saves())

	// report the busiest workers, for spotting scheduler imbalance.
	ids := make([]int, pool.Size())
	for i := range ids {
		ids[i] = i
	}
	slices.SortFunc(ids, func(a, b int) bool { return perWorker[a] > perWorker[b] })
	top := ids
	if len(top) > 3 {
		top = top[:3]
	}
	for _, id := range top {
		fmt.Printf("worker %d: %d ops\n", id, perWorker[id])
	}
}
