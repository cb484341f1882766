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

import "math/bits"

// Table is a fixed-capacity transposition table. The zero value is not
// usable; construct one with New. A *Table is safe for concurrent use
// by Probe and Save from any number of goroutines without additional
// locking; Resize, Clear, and NewSearch require the caller to have
// quiesced every such goroutine first (see engine.Controller).
type Table struct {
	clusters *clusterArray
	gen      uint8 // advanced only by NewSearch, under quiescence
	numa     bool  // gates first-touch CPU binding in clearWith; see SetNUMA
}

// New builds a table sized for mbSize megabytes, with NUMA-aware
// clearing enabled. Allocation failure panics with an *AllocError:
// there is no degraded mode.
func New(mbSize int) *Table {
	t := &Table{numa: true}
	t.Resize(mbSize)
	return t
}

// SetNUMA toggles whether clearWith binds each clearing goroutine to a
// CPU before it touches its share of the table (see numaBind). Callers
// that know they're not running on a multi-socket host, or that want
// deterministic single-threaded placement, can turn it off.
func (t *Table) SetNUMA(enabled bool) { t.numa = enabled }

// clusterIndex maps a 64-bit key to a cluster index using fastrange:
// the high 64 bits of the full 128-bit product of the key and the
// cluster count. This is uniform for any cluster count, including
// non-powers-of-two, and needs no division or masking shortcut.
func clusterIndex(key uint64, clusterCount int) uint64 {
	hi, _ := bits.Mul64(key, uint64(clusterCount))
	return hi
}

// signature is the in-cluster 16-bit key used to disambiguate entries
// that map to the same cluster.
func signature(key uint64) uint16 { return uint16(key >> 48) }

// Probe looks up key. On a hit, it refreshes the matching entry's
// generation bits (preserving bound/pv) and returns (true, &entry).
// On a miss, it returns (false, &firstEntryOfCluster); the caller may
// pass that reference to Save, which re-scans the cluster itself and
// chooses the real victim.
func (t *Table) Probe(key uint64) (bool, *Entry) {
	cl := t.clusters.at(clusterIndex(key, t.clusters.len()))
	sig := signature(key)
	for i := range cl.entries {
		e := &cl.entries[i]
		if e.key16 == sig && !e.IsEmpty() {
			e.refresh(t.gen)
			return true, e
		}
	}
	return false, &cl.entries[0]
}

// FirstEntry exposes the head of key's cluster, for callers that want
// to inspect neighboring entries without performing a full probe.
func (t *Table) FirstEntry(key uint64) *Entry {
	cl := t.clusters.at(clusterIndex(key, t.clusters.len()))
	return &cl.entries[0]
}

// Save records a search result for key, replacing an existing entry
// for the same position, an empty slot, or (if neither exists) the
// least valuable entry in the cluster per rscore. depth must satisfy
// 0 <= depth-DepthOffset <= 255.
func (t *Table) Save(key uint64, value, eval int16, pv bool, bound Bound, depth int, move uint16) {
	cl := t.clusters.at(clusterIndex(key, t.clusters.len()))
	sig := signature(key)

	var replace *Entry
	found := false

	// phase 1: a slot already holding this position.
	for i := range cl.entries {
		e := &cl.entries[i]
		if e.key16 == sig && !e.IsEmpty() {
			replace = e
			found = true
			break
		}
	}

	// phase 2: an empty slot, first in scan order.
	if !found {
		for i := range cl.entries {
			e := &cl.entries[i]
			if e.IsEmpty() {
				replace = e
				found = true
				break
			}
		}
	}

	// phase 3: least valuable slot. replace is seeded with the first
	// entry so the scan always has a legal starting candidate even
	// though neither earlier phase matched (ClusterSize >= 1 always).
	if !found {
		replace = &cl.entries[0]
		best := rscore(replace, t.gen)
		for i := 1; i < len(cl.entries); i++ {
			e := &cl.entries[i]
			if s := rscore(e, t.gen); s < best {
				best = s
				replace = e
			}
		}
	}

	// preserve a previously recorded move when re-storing the same
	// position without a new candidate move.
	if move != 0 || replace.key16 != sig {
		replace.move16 = move
	}
	replace.key16 = sig
	replace.value16 = value
	replace.eval16 = eval
	replace.depth8 = depthToStored(depth)
	replace.genBound8 = packGenBound(t.gen, pv, bound)
}

// Hashfull samples the first 1000 clusters (or all of them, if the
// table is smaller) and returns the number of sampled entries occupied
// by the current generation with a usable bound, divided by
// ClusterSize. With 1000 clusters sampled this is the occupancy in
// permille; a smaller table's result is not rescaled to permille. This
// is an approximation, not a census.
func (t *Table) Hashfull() uint16 {
	n := t.clusters.len()
	if n > 1000 {
		n = 1000
	}
	if n == 0 {
		return 0
	}
	occupied := 0
	for i := 0; i < n; i++ {
		cl := t.clusters.at(uint64(i))
		for j := range cl.entries {
			e := &cl.entries[j]
			if entryGeneration(e.genBound8) == t.gen && entryBound(e.genBound8) != BoundNone {
				occupied++
			}
		}
	}
	return uint16(occupied / ClusterSize)
}

// NewSearch advances the generation counter by one unit (wrapping mod
// 256 within the 5-bit field). Entries from older searches become
// progressively less valuable under rscore without being zeroed.
// Requires quiescence: see package doc.
func (t *Table) NewSearch() {
	t.gen += 0x08
}

// Generation returns the table's current generation tag.
func (t *Table) Generation() uint8 { return t.gen }

// ClusterCount returns the number of clusters backing the table.
func (t *Table) ClusterCount() int { return t.clusters.len() }
