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

package tt

import (
	"runtime"
	"sync"
	"unsafe"
)

const bytesPerMB = 1 << 20

// Resize frees any existing backing memory and allocates a fresh
// table sized for mbSize megabytes, then clears it. Requires
// quiescence: no goroutine may be inside Probe or Save.
func (t *Table) Resize(mbSize int) {
	if t.clusters != nil {
		t.clusters.free()
		t.clusters = nil
	}
	clusterCount := (mbSize * bytesPerMB) / int(unsafe.Sizeof(Cluster{}))
	if clusterCount < 1 {
		clusterCount = 1
	}
	t.clusters = newClusterArray(clusterCount)
	t.Clear()
}

// Clear zeros every byte of every cluster, using up to
// runtime.GOMAXPROCS(0) goroutines that each own a contiguous,
// roughly equal byte range (the last range absorbs the remainder).
// Requires quiescence, same as Resize.
func (t *Table) Clear() {
	t.clearWith(runtime.GOMAXPROCS(0))
}

// clearWith is Clear parameterized by worker count, split out so
// tests and the engine controller can exercise specific fan-out
// without relying on GOMAXPROCS.
func (t *Table) clearWith(workers int) {
	n := t.clusters.len()
	if workers < 1 {
		workers = 1
	}
	if workers > n {
		workers = n
	}
	if workers <= 1 {
		zero(t.clusters.byteRange(0, n))
		return
	}

	chunk := n / workers
	var wg sync.WaitGroup
	lo := 0
	for i := 0; i < workers; i++ {
		hi := lo + chunk
		if i == workers-1 {
			hi = n // last range absorbs the remainder
		}
		wg.Add(1)
		go func(task, lo, hi int) {
			defer wg.Done()
			if t.numa {
				numaBind(task, workers)
			}
			zero(t.clusters.byteRange(lo, hi))
		}(i, lo, hi)
		lo = hi
	}
	wg.Wait()
}

func zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
