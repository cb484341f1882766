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

import (
	"runtime"

	"golang.org/x/sys/unix"
)

// numaBind locks the calling goroutine to its own OS thread and pins
// that thread to a single processor derived from task/of, so that the
// first touch in clearWith's zeroing loop faults pages in on the NUMA
// node local to the processor that will later probe/save them. Only
// worth doing once there are enough tasks to plausibly span more than
// one NUMA node.
//
// This binds a CPU, not a NUMA node directly: Linux's first-touch page
// allocator places a faulted page on the node local to the faulting
// CPU, so pinning the CPU is sufficient and avoids a direct dependency
// on a NUMA library.
func numaBind(task, of int) {
	if of <= 8 {
		return
	}
	runtime.LockOSThread()
	cpu := task % runtime.NumCPU()
	var set unix.CPUSet
	set.Zero()
	set.Set(cpu)
	// best-effort: a failure here just means this task's pages land
	// wherever the scheduler happens to run it, not a correctness bug.
	_ = unix.SchedSetaffinity(0, &set)
}
