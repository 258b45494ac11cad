package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/arx-os/s4d/internal/spatialid"
)

var singleCmd = &cobra.Command{
	Use:   "single <z> <f> <x> <y>",
	Short: "Construct a SingleId and print its text and binary forms",
	Args:  cobra.ExactArgs(4),
	RunE:  runSingle,
}

var rangeCmd = &cobra.Command{
	Use:   "range <z> <f0:f1> <x0:x1> <y0:y1>",
	Short: "Construct a RangeId and print its text form and the number of FlexIds it decomposes into",
	Args:  cobra.ExactArgs(4),
	RunE:  runRange,
}

func init() {
	rootCmd.AddCommand(singleCmd, rangeCmd)
}

func runSingle(cmd *cobra.Command, args []string) error {
	z, err := strconv.ParseUint(args[0], 10, 8)
	if err != nil {
		return fmt.Errorf("bad zoom %q: %w", args[0], err)
	}
	f, err := strconv.ParseInt(args[1], 10, 32)
	if err != nil {
		return fmt.Errorf("bad f %q: %w", args[1], err)
	}
	x, err := strconv.ParseUint(args[2], 10, 32)
	if err != nil {
		return fmt.Errorf("bad x %q: %w", args[2], err)
	}
	y, err := strconv.ParseUint(args[3], 10, 32)
	if err != nil {
		return fmt.Errorf("bad y %q: %w", args[3], err)
	}
	id, err := spatialid.NewSingleId(uint8(z), int32(f), uint32(x), uint32(y))
	if err != nil {
		return err
	}
	flex, err := id.FlexId()
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s\n%s\n", id, flexBytes(flex))
	return nil
}

func runRange(cmd *cobra.Command, args []string) error {
	z, err := strconv.ParseUint(args[0], 10, 8)
	if err != nil {
		return fmt.Errorf("bad zoom %q: %w", args[0], err)
	}
	f0, f1, err := parseIntPair(args[1])
	if err != nil {
		return fmt.Errorf("bad f range %q: %w", args[1], err)
	}
	x0, x1, err := parseUintPair(args[2])
	if err != nil {
		return fmt.Errorf("bad x range %q: %w", args[2], err)
	}
	y0, y1, err := parseUintPair(args[3])
	if err != nil {
		return fmt.Errorf("bad y range %q: %w", args[3], err)
	}
	id, err := spatialid.NewRangeId(uint8(z), [2]int64{f0, f1}, [2]uint64{x0, x1}, [2]uint64{y0, y1})
	if err != nil {
		return err
	}
	flexIds, err := id.FlexIds()
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s\ndecomposes into %d FlexIds\n", id, len(flexIds))
	return nil
}
