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

import "unsafe"

// ClusterSize is the number of entries grouped per cache line.
const ClusterSize = 3

// entrySize is the normative on-wire size of an Entry: 10 bytes.
const entrySize = 10

// clusterPad rounds sizeof(Cluster) up to a power-of-two-friendly 32
// bytes for the default ClusterSize, without ever being interpreted
// as an entry.
const clusterPad = 32 - (ClusterSize * entrySize % 32)

// Cluster groups ClusterSize entries that share a cache line.
type Cluster struct {
	entries [ClusterSize]Entry
	_       [clusterPad]byte
}

func init() {
	if unsafe.Sizeof(Entry{}) != entrySize {
		panic("tt: Entry layout drifted from the normative 10-byte width")
	}
}

// clusterArray owns a contiguous, aligned block of clusters, backed by
// raw mmap'd (or, on platforms without one, heap-allocated) memory. It
// exposes both a typed []Cluster view and a raw []byte view so Clear
// can shard zeroing across workers without going through the codec.
type clusterArray struct {
	mem      []byte    // raw backing bytes, as returned by the allocator
	clusters []Cluster // mem reinterpreted as clusters, same backing array
}

// newClusterArray allocates room for n clusters. Allocation failure is
// fatal: there is no degraded mode, so callers never see an error
// return here — see allocClusters for the termination path.
func newClusterArray(n int) *clusterArray {
	size := n * int(unsafe.Sizeof(Cluster{}))
	mem := allocClusters(size)
	return &clusterArray{
		mem:      mem,
		clusters: unsafe.Slice((*Cluster)(unsafe.Pointer(&mem[0])), n),
	}
}

// free releases the backing memory. The clusterArray must not be used
// afterward.
func (c *clusterArray) free() {
	if c.mem == nil {
		return
	}
	freeClusters(c.mem)
	c.mem = nil
	c.clusters = nil
}

// at returns the cluster at index i without bounds-masking; callers
// must have already reduced a key to a valid index via fastrange.
func (c *clusterArray) at(i uint64) *Cluster {
	return &c.clusters[i]
}

func (c *clusterArray) len() int { return len(c.clusters) }

// byteRange returns the raw byte span backing clusters [lo, hi), for
// use by the parallel first-touch Clear.
func (c *clusterArray) byteRange(lo, hi int) []byte {
	sz := int(unsafe.Sizeof(Cluster{}))
	return c.mem[lo*sz : hi*sz]
}
