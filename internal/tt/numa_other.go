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

//go:build !linux

package tt

// numaBind is a no-op outside Linux: there is no portable
// thread-to-NUMA-node binding syscall wired up here, so these
// platforms fall back to unbound parallel zeroing. They still get
// some benefit from the OS's default local-allocation first-touch
// policy, just without deliberate spread across nodes.
func numaBind(task, of int) {}
