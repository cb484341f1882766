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

//go:build darwin

package tt

import "syscall"

// darwin implementation of the cluster-array backing allocation.
// Darwin has no transparent-huge-page facility to hint at; a plain
// anonymous mapping is the best available.

func allocClusters(size int) []byte {
	buf, err := syscall.Mmap(0, 0, size, syscall.PROT_READ|syscall.PROT_WRITE, syscall.MAP_PRIVATE|syscall.MAP_ANON)
	if err != nil {
		fatalf("mmap", err)
	}
	return buf
}

func freeClusters(buf []byte) {
	if err := syscall.Munmap(buf); err != nil {
		fatalf("munmap", err)
	}
}
