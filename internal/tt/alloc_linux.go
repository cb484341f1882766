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

//go:build linux

package tt

import "syscall"

// linux implementation of the cluster-array backing allocation.
//
// We reserve the table with an anonymous private mapping and hint
// MADV_HUGEPAGE so the kernel can back it with transparent huge pages
// once enough of it is touched by Clear's first-touch pass.

func allocClusters(size int) []byte {
	buf, err := syscall.Mmap(0, 0, size, syscall.PROT_READ|syscall.PROT_WRITE, syscall.MAP_PRIVATE|syscall.MAP_ANONYMOUS)
	if err != nil {
		fatalf("mmap", err)
	}
	const madvHugepage = 14
	_ = syscall.Madvise(buf, madvHugepage) // best-effort; huge pages are a perf hint, not a correctness requirement
	return buf
}

func freeClusters(buf []byte) {
	if err := syscall.Munmap(buf); err != nil {
		fatalf("munmap", err)
	}
}
