package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/arx-os/s4d/internal/setmap"
	"github.com/arx-os/s4d/internal/spatialid"
)

var setCmd = &cobra.Command{
	Use:   "set",
	Short: "Insert SingleIds into an in-memory set for this invocation",
}

var setInsertCmd = &cobra.Command{
	Use:   "insert <z> <f> <x> <y>",
	Short: "Insert a SingleId into a fresh set and print its resulting cardinality",
	Args:  cobra.ExactArgs(4),
	RunE:  runSetInsert,
}

func init() {
	setCmd.AddCommand(setInsertCmd)
	rootCmd.AddCommand(setCmd)
}

func parseSingleArgs(args []string) (spatialid.SingleId, error) {
	z, err := strconv.ParseUint(args[0], 10, 8)
	if err != nil {
		return spatialid.SingleId{}, err
	}
	f, err := strconv.ParseInt(args[1], 10, 32)
	if err != nil {
		return spatialid.SingleId{}, err
	}
	x, err := strconv.ParseUint(args[2], 10, 32)
	if err != nil {
		return spatialid.SingleId{}, err
	}
	y, err := strconv.ParseUint(args[3], 10, 32)
	if err != nil {
		return spatialid.SingleId{}, err
	}
	return spatialid.NewSingleId(uint8(z), int32(f), uint32(x), uint32(y))
}

func runSetInsert(cmd *cobra.Command, args []string) error {
	id, err := parseSingleArgs(args)
	if err != nil {
		return err
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	bk, err := openBackend(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if closer, ok := bk.(interface{ Close() error }); ok {
			closer.Close()
		}
	}()

	s := setmap.NewSet()
	if err := s.Insert(id); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "inserted %s into a fresh in-memory set (configured backend: %s), cardinality=%d\n", id, cfg.Backend.Kind, s.Len())
	return nil
}
