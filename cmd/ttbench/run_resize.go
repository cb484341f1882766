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

package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/kestrelchess/tt/internal/tt"
)

func runResize(args []string) {
	cmd := flag.NewFlagSet("resize", flag.ExitOnError)
	mb := cmd.Int("mb", 16, "table size in megabytes")
	if cmd.Parse(args) != nil {
		os.Exit(1)
	}

	tbl := tt.New(*mb)
	fmt.Printf("resized to %d MiB: %d clusters, %d bytes\n",
		*mb, tbl.ClusterCount(), tbl.ClusterCount()*32)
}
