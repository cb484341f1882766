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

// Package keygen produces deterministic, position-key-shaped 64-bit
// values for benchmarking and testing the transposition table, the
// way a real chess engine's incremental Zobrist hash would, without
// pulling in an actual move generator.
package keygen

import (
	"encoding/binary"

	"github.com/dchest/siphash"
)

// Zobrist is a deterministic 64-bit key stream. The same seed always
// produces the same sequence from Next, and the same seed and path
// always produce the same key from ForPath.
type Zobrist struct {
	k0, k1 uint64
	ctr    uint64
}

// NewZobrist derives a Zobrist generator from seed. The seed is
// expanded into a siphash key pair by hashing it against itself, to
// turn a single 64-bit seed into the two 64-bit words siphash.Hash128
// requires.
func NewZobrist(seed uint64) *Zobrist {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], seed)
	k0, k1 := siphash.Hash128(seed, ^seed, buf[:])
	return &Zobrist{k0: k0, k1: k1}
}

// Next returns the next key in the stream. Successive calls never
// repeat within any practical benchmark run: the counter is mixed
// into the hashed input, not just the seed.
func (z *Zobrist) Next() uint64 {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], z.ctr)
	z.ctr++
	hi, lo := siphash.Hash128(z.k0, z.k1, buf[:])
	return hi ^ lo
}

// ForPath derives a position key from a sequence of move indices,
// standing in for a real engine's incremental Zobrist hash: applying
// the same move sequence twice yields the same key, and distinct
// sequences diverge as soon as they diverge.
func (z *Zobrist) ForPath(path []int) uint64 {
	buf := make([]byte, 8*len(path))
	for i, p := range path {
		binary.LittleEndian.PutUint64(buf[i*8:], uint64(p))
	}
	hi, lo := siphash.Hash128(z.k0, z.k1, buf)
	return hi ^ lo
}
