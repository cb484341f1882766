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

// Package engine owns the transposition table's lifecycle on behalf of
// a pool of search workers: it is the "controller" the tt package's
// documentation refers to, responsible for quiescing every worker
// before issuing Resize, Clear, or NewSearch.
package engine

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/kestrelchess/tt/internal/config"
	"github.com/kestrelchess/tt/internal/tt"
)

// Logger is satisfied by *log.Logger; the controller logs through this
// interface (rather than calling the log package directly) so callers
// can substitute a recording logger in tests.
type Logger interface {
	Printf(format string, args ...interface{})
}

type nopLogger struct{}

func (nopLogger) Printf(string, ...interface{}) {}

// ControllerStats tracks probe outcomes across the controller's
// lifetime. All fields are accessed atomically; Reset is not safe to
// call concurrently with a Probe or Save in flight.
type ControllerStats struct {
	hits, misses, saves int64
}

func (s *ControllerStats) hit()   { atomic.AddInt64(&s.hits, 1) }
func (s *ControllerStats) miss()  { atomic.AddInt64(&s.misses, 1) }
func (s *ControllerStats) save()  { atomic.AddInt64(&s.saves, 1) }
func (s *ControllerStats) Hits() int64   { return atomic.LoadInt64(&s.hits) }
func (s *ControllerStats) Misses() int64 { return atomic.LoadInt64(&s.misses) }
func (s *ControllerStats) Saves() int64  { return atomic.LoadInt64(&s.saves) }

// Reset zeros all stat fields. Not safe to call concurrently with
// Probe/Save.
func (s *ControllerStats) Reset() { *s = ControllerStats{} }

// Controller owns a *tt.Table and coordinates quiescent operations
// (Resize, Clear, NewSearch) against a live pool of search workers.
//
// Workers call Probe/Save directly; they never need to know about
// quiescence. Only the goroutine driving the search (or a UCI/CLI
// front end) calls Resize/Clear/NewSearch, via Quiesce.
type Controller struct {
	Logger Logger

	// SessionID correlates this controller's log lines across
	// multiple concurrent instances (e.g. multiple engine processes
	// sharing a log stream), the way a request id ties together one
	// request's log lines in a server.
	SessionID uuid.UUID

	mu      sync.RWMutex // held for read by Probe/Save, for write by Quiesce
	table   *tt.Table
	stats   ControllerStats
	workers *WorkerPool
}

// NewController builds a Controller with a *tt.Table sized per
// cfg.TableMB, NUMA-aware clearing gated by cfg.NUMA, and a
// *WorkerPool sized per cfg.Workers. A zero TableMB or Workers is
// replaced with config.Default()'s; a negative value of either is
// rejected as a misconfiguration.
func NewController(cfg config.Config) (*Controller, error) {
	if cfg.TableMB < 0 {
		return nil, fmt.Errorf("engine: invalid config: table_mb must be >= 0, got %d", cfg.TableMB)
	}
	if cfg.Workers < 0 {
		return nil, fmt.Errorf("engine: invalid config: workers must be >= 0, got %d", cfg.Workers)
	}
	if cfg.TableMB == 0 {
		cfg.TableMB = config.Default().TableMB
	}
	if cfg.Workers == 0 {
		cfg.Workers = config.Default().Workers
	}

	tbl := tt.New(cfg.TableMB)
	tbl.SetNUMA(cfg.NUMA)

	return &Controller{
		Logger:    nopLogger{},
		SessionID: uuid.New(),
		table:     tbl,
		workers:   NewWorkerPool(cfg.Workers),
	}, nil
}

// Workers returns the pool sized per the Config's Workers field at
// construction time. Callers that want to generate traffic (such as
// cmd/ttbench's bench subcommand) call Start on it directly; the
// Controller itself never starts it, since it doesn't know what work
// the caller wants done.
func (c *Controller) Workers() *WorkerPool { return c.workers }

// Probe is a concurrent-safe pass-through to the owned table, tracked
// in ControllerStats. It takes the quiescence lock for reading, so any
// number of workers may call it concurrently, but it blocks for the
// duration of an in-flight Quiesce.
func (c *Controller) Probe(key uint64) (bool, *tt.Entry) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	found, e := c.table.Probe(key)
	if found {
		c.stats.hit()
	} else {
		c.stats.miss()
	}
	return found, e
}

// Save is a concurrent-safe pass-through to the owned table.
func (c *Controller) Save(key uint64, value, eval int16, pv bool, bound tt.Bound, depth int, move uint16) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	c.table.Save(key, value, eval, pv, bound, depth, move)
	c.stats.save()
}

// Hashfull is a concurrent-safe pass-through to the owned table.
func (c *Controller) Hashfull() uint16 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.table.Hashfull()
}

// Stats returns the controller's accumulated probe/save counters.
func (c *Controller) Stats() *ControllerStats { return &c.stats }

// Quiesce blocks out every Probe/Save in flight, runs fn with
// exclusive access to the table, and then releases workers again.
// Resize, Clear, and NewSearch are all implemented in terms of this.
func (c *Controller) Quiesce(fn func(*tt.Table)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fn(c.table)
}

// Resize rebuilds the table at the given size. Quiescent.
func (c *Controller) Resize(megabytes int) {
	c.Logger.Printf("tt[%s]: resizing to %d MiB", c.SessionID, megabytes)
	c.Quiesce(func(tbl *tt.Table) { tbl.Resize(megabytes) })
}

// Clear zeros the table in place. Quiescent.
func (c *Controller) Clear() {
	c.Quiesce(func(tbl *tt.Table) { tbl.Clear() })
}

// NewSearch advances the table's generation. Quiescent.
func (c *Controller) NewSearch() {
	c.Quiesce(func(tbl *tt.Table) { tbl.NewSearch() })
}
