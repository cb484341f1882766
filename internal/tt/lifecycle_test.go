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

import "testing"

func TestResizeThenClearIsAllEmpty(t *testing.T) {
	tbl := New(1)
	tbl.Save(0xABCDEF0123456789, 1, 1, true, BoundExact, 3, 7)
	tbl.Resize(2)
	for i := 0; i < tbl.ClusterCount(); i++ {
		cl := tbl.clusters.at(uint64(i))
		for j := range cl.entries {
			if !cl.entries[j].IsEmpty() {
				t.Fatalf("cluster %d entry %d not empty after resize", i, j)
			}
		}
	}
	if tbl.Hashfull() != 0 {
		t.Fatalf("hashfull after resize = %d, want 0", tbl.Hashfull())
	}
}

func TestClearWithMultipleWorkers(t *testing.T) {
	tbl := newTestTable(997) // deliberately not evenly divisible by worker counts
	tbl.SetNUMA(true)        // route each task through numaBind (which binds nothing at 8 tasks)
	for i := 0; i < tbl.ClusterCount(); i++ {
		cl := tbl.clusters.at(uint64(i))
		for j := range cl.entries {
			cl.entries[j] = Entry{key16: 1, genBound8: 0xFF, depth8: 0xFF, move16: 0xFFFF, value16: -1, eval16: -1}
		}
	}
	tbl.clearWith(8)
	for i := 0; i < tbl.ClusterCount(); i++ {
		cl := tbl.clusters.at(uint64(i))
		for j := range cl.entries {
			if !cl.entries[j].IsEmpty() {
				t.Fatalf("cluster %d entry %d not empty after clearWith", i, j)
			}
		}
	}
}

func TestSetNUMADisablesBinding(t *testing.T) {
	tbl := newTestTable(997)
	tbl.SetNUMA(false)
	for i := 0; i < tbl.ClusterCount(); i++ {
		cl := tbl.clusters.at(uint64(i))
		for j := range cl.entries {
			cl.entries[j] = Entry{key16: 1, genBound8: 0xFF, depth8: 0xFF, move16: 0xFFFF, value16: -1, eval16: -1}
		}
	}
	tbl.clearWith(8)
	for i := 0; i < tbl.ClusterCount(); i++ {
		cl := tbl.clusters.at(uint64(i))
		for j := range cl.entries {
			if !cl.entries[j].IsEmpty() {
				t.Fatalf("cluster %d entry %d not empty after clearWith with NUMA disabled", i, j)
			}
		}
	}
}

func TestNewSearchPreservesEntries(t *testing.T) {
	tbl := New(1)
	const key = uint64(0x0102030405060708)
	tbl.Save(key, 7, 8, true, BoundLower, 4, 0xBEEF)
	tbl.NewSearch()

	found, e := tbl.Probe(key)
	if !found {
		t.Fatal("entry should survive NewSearch")
	}
	if e.Value() != 7 || e.Eval() != 8 || e.Depth() != 4 || e.Move() != 0xBEEF || e.Bound() != BoundLower {
		t.Fatalf("NewSearch corrupted entry contents: %+v", e)
	}
}

func TestResizeRoundsClusterCount(t *testing.T) {
	tbl := New(1)
	wantBytes := 1 << 20
	gotClusters := tbl.ClusterCount()
	if gotClusters != wantBytes/32 {
		t.Fatalf("cluster count = %d, want %d", gotClusters, wantBytes/32)
	}
}
