// Command s4dctl is a thin CLI over the s4d library: encode/decode
// single-axis segments, construct and print SingleIds and RangeIds, insert
// into an in-memory set, and run a small insert benchmark.
package main

import (
	"os"

	"github.com/arx-os/s4d/cmd/s4dctl/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
