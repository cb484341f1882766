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

// Package tt implements a fixed-capacity, bounded-memory transposition
// table: a concurrently accessed cache keyed by a 64-bit position hash
// that memoizes the result of a game-tree search node.
//
// Probe and Save are lock-free and non-atomic; see Table for the
// concurrency contract. Resize, Clear, and NewSearch require that no
// goroutine is concurrently inside Probe or Save — callers (typically
// the engine controller) are responsible for quiescing workers first.
package tt

import "fmt"

// Bound qualifies a stored score.
type Bound uint8

const (
	// BoundNone marks a slot that carries no usable bound.
	BoundNone Bound = iota
	// BoundUpper is a fail-low bound (the true score is <= value).
	BoundUpper
	// BoundLower is a fail-high bound (the true score is >= value).
	BoundLower
	// BoundExact is an exact score.
	BoundExact
)

func (b Bound) String() string {
	switch b {
	case BoundNone:
		return "none"
	case BoundUpper:
		return "upper"
	case BoundLower:
		return "lower"
	case BoundExact:
		return "exact"
	default:
		return fmt.Sprintf("Bound(%d)", uint8(b))
	}
}

// DepthOffset is the smallest depth the table ever stores. Quiescence
// search probes with small negative depths; offsetting by this constant
// lets depth8 remain an unsigned byte covering the whole usable range.
const DepthOffset = -7

// genMask locates the 5-bit generation field within genBound8;
// the low 3 bits hold the pv-flag (bit 2) and the bound kind (bits 1..0).
const (
	genMask   = 0xF8
	pvBit     = 0x04
	boundMask = 0x03
)

// packGenBound folds a generation, pv-flag, and bound into one byte:
// bits 7..3 generation, bit 2 pv-flag, bits 1..0 bound.
func packGenBound(gen uint8, pv bool, bound Bound) uint8 {
	g := (gen & genMask)
	if pv {
		g |= pvBit
	}
	return g | (uint8(bound) & boundMask)
}

// entryGeneration extracts the high 5 generation bits of genBound8.
func entryGeneration(g uint8) uint8 { return g & genMask }

// entryBound extracts the bound kind from genBound8.
func entryBound(g uint8) Bound { return Bound(g & boundMask) }

// entryIsPV extracts the pv-flag from genBound8.
func entryIsPV(g uint8) bool { return g&pvBit != 0 }

// depthToStored converts an engine depth to the unsigned, offset form
// stored in depth8. The caller must ensure 0 <= d-DepthOffset <= 255.
func depthToStored(d int) uint8 { return uint8(d - DepthOffset) }

// storedToDepth is the inverse of depthToStored.
func storedToDepth(x uint8) int16 { return int16(x) + int16(DepthOffset) }

// Entry is one cached node result. Its on-wire size is normative: 10
// bytes, so that ClusterSize entries plus padding fit one cache line.
// Field order matches the declared widths exactly (two-byte fields
// first, then the two one-byte fields), so Go's struct layout already
// pins the representation without any padding — verified by the
// init size check in cluster.go.
type Entry struct {
	key16     uint16
	move16    uint16
	value16   int16
	eval16    int16
	genBound8 uint8
	depth8    uint8
}

// IsEmpty reports whether e carries no recorded position:
// an entry with key16 == 0 and genBound8 == 0 is empty. A legitimate
// entry whose key has a zero signature is not empty, since Save always
// writes a non-zero genBound8 for it, unless it was saved at
// generation 0 with no pv-flag and BoundNone.
func (e *Entry) IsEmpty() bool { return e.key16 == 0 && e.genBound8 == 0 }

// Key16 returns the stored 16-bit position signature.
func (e *Entry) Key16() uint16 { return e.key16 }

// Move returns the stored packed move, or 0 if none.
func (e *Entry) Move() uint16 { return e.move16 }

// Value returns the stored search score.
func (e *Entry) Value() int16 { return e.value16 }

// Eval returns the stored static evaluation.
func (e *Entry) Eval() int16 { return e.eval16 }

// Depth returns the stored search depth, undoing DepthOffset.
func (e *Entry) Depth() int16 { return storedToDepth(e.depth8) }

// Bound returns the stored bound kind.
func (e *Entry) Bound() Bound { return entryBound(e.genBound8) }

// PV returns the stored principal-variation flag.
func (e *Entry) PV() bool { return entryIsPV(e.genBound8) }

// Generation returns the stored generation tag.
func (e *Entry) Generation() uint8 { return entryGeneration(e.genBound8) }

// refresh rewrites only the generation bits of genBound8, preserving
// the pv-flag and bound. Used by Probe on a hit. Deliberately a plain,
// non-atomic byte store: a torn write at worst restores a stale
// generation, which only makes the entry a slightly better eviction
// candidate next round.
func (e *Entry) refresh(currentGen uint8) {
	e.genBound8 = (currentGen & genMask) | (e.genBound8 & (pvBit | boundMask))
}

// rscore is the replacement score used to pick an eviction victim: a
// higher value is more valuable to keep. The constant 263 = 256+7:
// 256 cancels generation-counter wraparound and 7 masks out the low
// three pv/bound bits so they never perturb the subtraction.
func rscore(e *Entry, currentGen uint8) int {
	age := (263 + int(currentGen) - int(e.genBound8)) & genMask
	return int(e.depth8) - age
}
