package cmd

import (
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/arx-os/s4d/internal/metrics"
	"github.com/arx-os/s4d/internal/segment"
	"github.com/arx-os/s4d/internal/setmap"
	"github.com/arx-os/s4d/internal/spatialid"
)

var benchCmd = &cobra.Command{
	Use:   "bench <n>",
	Short: "Insert n pseudo-random SingleIds at z=16 and report elapsed time and final cardinality",
	Args:  cobra.ExactArgs(1),
	RunE:  runBench,
}

func init() {
	rootCmd.AddCommand(benchCmd)
}

func runBench(cmd *cobra.Command, args []string) error {
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("bad n %q: %w", args[0], err)
	}

	runID := uuid.New()
	m := metrics.New()
	s := setmap.NewSet()

	const z = 16
	max := segment.XYMax(z)
	start := time.Now()
	state := uint64(88172645463325252) // xorshift64 seed, fixed for reproducible runs
	for i := 0; i < n; i++ {
		state ^= state << 13
		state ^= state >> 7
		state ^= state << 17
		x := state % (max + 1)
		y := (state >> 21) % (max + 1)
		f := int64(state%7) - 3

		id, err := spatialid.NewSingleId(z, int32(f), uint32(x), uint32(y))
		if err != nil {
			continue
		}
		if err := s.Insert(id); err != nil {
			return err
		}
		m.InsertTotal.Inc()
	}
	elapsed := time.Since(start)
	m.SetCardinality.Set(float64(s.Len()))

	fmt.Fprintf(cmd.OutOrStdout(), "run %s: inserted %d ids in %s, final cardinality=%d\n", runID, n, elapsed, s.Len())
	return nil
}
