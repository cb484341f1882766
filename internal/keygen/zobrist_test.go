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

package keygen

import "testing"

func TestNextIsDeterministicPerSeed(t *testing.T) {
	a := NewZobrist(42).Next()
	b := NewZobrist(42).Next()
	if a != b {
		t.Fatalf("same seed produced different first keys: %#x vs %#x", a, b)
	}
}

func TestNextDoesNotRepeatWithinAStream(t *testing.T) {
	z := NewZobrist(1)
	seen := make(map[uint64]bool)
	for i := 0; i < 10000; i++ {
		k := z.Next()
		if seen[k] {
			t.Fatalf("key repeated after %d draws", i)
		}
		seen[k] = true
	}
}

func TestDifferentSeedsDiverge(t *testing.T) {
	a := NewZobrist(1).Next()
	b := NewZobrist(2).Next()
	if a == b {
		t.Fatal("distinct seeds produced the same first key")
	}
}

func TestForPathIsDeterministic(t *testing.T) {
	path := []int{4, 12, 27, 3}
	a := NewZobrist(7).ForPath(path)
	b := NewZobrist(7).ForPath(path)
	if a != b {
		t.Fatalf("same seed and path produced different keys: %#x vs %#x", a, b)
	}
}

func TestForPathDivergesOnPrefix(t *testing.T) {
	z := NewZobrist(7)
	a := z.ForPath([]int{1, 2, 3})
	b := z.ForPath([]int{1, 2, 4})
	if a == b {
		t.Fatal("paths diverging in their last move produced the same key")
	}
}

func TestForPathEmptyEqualsFixedKey(t *testing.T) {
	a := NewZobrist(99).ForPath(nil)
	b := NewZobrist(99).ForPath([]int{})
	if a != b {
		t.Fatalf("nil and empty path should hash identically: %#x vs %#x", a, b)
	}
}
