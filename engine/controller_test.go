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

package engine

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/kestrelchess/tt/internal/config"
	"github.com/kestrelchess/tt/internal/tt"
)

func TestNewFallsBackToDefaultConfig(t *testing.T) {
	c, err := NewController(config.Config{})
	if err != nil {
		t.Fatalf("NewController: %v", err)
	}
	if c.Hashfull() != 0 {
		t.Fatalf("fresh controller should report empty table, got %d", c.Hashfull())
	}
	if c.Workers().Size() != config.Default().Workers {
		t.Fatalf("Workers().Size() = %d, want %d", c.Workers().Size(), config.Default().Workers)
	}
}

func TestNewControllerRejectsNegativeConfig(t *testing.T) {
	if _, err := NewController(config.Config{TableMB: -1}); err == nil {
		t.Fatal("expected an error for a negative table_mb")
	}
	if _, err := NewController(config.Config{Workers: -1}); err == nil {
		t.Fatal("expected an error for a negative workers")
	}
}

func TestProbeSaveUpdatesStats(t *testing.T) {
	c, err := NewController(config.Config{TableMB: 1})
	if err != nil {
		t.Fatalf("NewController: %v", err)
	}
	const key = uint64(0xAABBCCDDEEFF0011)

	if found, _ := c.Probe(key); found {
		t.Fatal("expected a miss on an empty table")
	}
	c.Save(key, 1, 1, false, tt.BoundExact, 5, 0)
	if found, _ := c.Probe(key); !found {
		t.Fatal("expected a hit after save")
	}

	if c.Stats().Misses() != 1 || c.Stats().Hits() != 1 || c.Stats().Saves() != 1 {
		t.Fatalf("unexpected stats: %+v", *c.Stats())
	}
}

func TestClearResetsTableNotStats(t *testing.T) {
	c, err := NewController(config.Config{TableMB: 1})
	if err != nil {
		t.Fatalf("NewController: %v", err)
	}
	c.Save(0x1, 1, 1, false, tt.BoundExact, 5, 0)
	c.Clear()
	if found, _ := c.Probe(0x1); found {
		t.Fatal("expected a miss after Clear")
	}
	if c.Stats().Saves() != 1 {
		t.Fatal("Clear should not reset accumulated stats")
	}
}

// TestQuiesceExcludesConcurrentProbeSave checks that while Quiesce's fn
// is running, no concurrent Probe/Save can observe the table mid-Resize:
// a key saved before Resize(2) must be gone afterward. The workers keep
// saving their own keys (1..4, cluster 0, signature 0) after Resize
// returns, so key is chosen with a different cluster and signature.
func TestQuiesceExcludesConcurrentProbeSave(t *testing.T) {
	c, err := NewController(config.Config{TableMB: 1})
	if err != nil {
		t.Fatalf("NewController: %v", err)
	}
	const key = uint64(0x2222_0000_0000_2222)
	c.Save(key, 9, 9, false, tt.BoundExact, 9, 0)

	var wg sync.WaitGroup
	var stop int32
	wg.Add(4)
	for i := 0; i < 4; i++ {
		go func(seed uint64) {
			defer wg.Done()
			for atomic.LoadInt32(&stop) == 0 {
				c.Save(seed, 1, 1, false, tt.BoundExact, 1, 0)
				c.Probe(seed)
			}
		}(uint64(i) + 1)
	}

	c.Resize(2)
	atomic.StoreInt32(&stop, 1)
	wg.Wait()

	if found, _ := c.Probe(key); found {
		t.Fatal("old key should not survive a Resize")
	}
}

func TestNewSearchAdvancesGenerationWithoutLosingEntries(t *testing.T) {
	c, err := NewController(config.Config{TableMB: 1})
	if err != nil {
		t.Fatalf("NewController: %v", err)
	}
	const key = uint64(0x3333)
	c.Save(key, 4, 4, false, tt.BoundUpper, 4, 0)
	c.NewSearch()
	found, e := c.Probe(key)
	if !found || e.Value() != 4 {
		t.Fatal("NewSearch should not evict live entries")
	}
}
