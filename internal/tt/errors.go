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

import "fmt"

// AllocError is the table's one failure mode: the backing OS
// allocation for the cluster array could not be satisfied. There is
// no degraded mode; the only correct response is for the process to
// terminate, which is why this package panics rather than returning
// an error that could be silently ignored. A top-level caller (the
// engine controller's main, or cmd/ttbench) is expected to let this
// panic reach main and exit nonzero.
type AllocError struct {
	Op  string
	Err error
}

func (e *AllocError) Error() string { return fmt.Sprintf("tt: %s: %s", e.Op, e.Err) }
func (e *AllocError) Unwrap() error { return e.Err }

// fatalf reports the table's one failure mode and terminates the
// calling goroutine's control flow via panic; see AllocError.
func fatalf(op string, err error) {
	panic(&AllocError{Op: op, Err: err})
}
