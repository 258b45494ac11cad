package cmd

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arx-os/s4d/internal/flexid"
	"github.com/arx-os/s4d/internal/segment"
)

var encodeCmd = &cobra.Command{
	Use:   "encode <axis> <z> <value>",
	Short: "Encode a single axis value into its Segment hex form",
	Long:  "axis is one of f, x, y. For f, value is a signed altitude index; for x/y, an unsigned tile index.",
	Args:  cobra.ExactArgs(3),
	RunE:  runEncode,
}

var decodeCmd = &cobra.Command{
	Use:   "decode <axis> <hex>",
	Short: "Decode a Segment hex form back into (zoom, value)",
	Args:  cobra.ExactArgs(2),
	RunE:  runDecode,
}

func init() {
	rootCmd.AddCommand(encodeCmd, decodeCmd)
}

func runEncode(cmd *cobra.Command, args []string) error {
	axis := strings.ToLower(args[0])
	z, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("bad zoom %q: %w", args[1], err)
	}
	var seg segment.Segment
	switch axis {
	case "f":
		f, err := strconv.ParseInt(args[2], 10, 64)
		if err != nil {
			return fmt.Errorf("bad f value %q: %w", args[2], err)
		}
		seg, err = segment.EncodeF(z, f)
		if err != nil {
			return err
		}
	case "x", "y":
		v, err := strconv.ParseUint(args[2], 10, 64)
		if err != nil {
			return fmt.Errorf("bad %s value %q: %w", axis, args[2], err)
		}
		seg, err = segment.EncodeXY(z, v)
		if err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown axis %q, want f, x, or y", axis)
	}
	fmt.Fprintln(cmd.OutOrStdout(), hex.EncodeToString(seg.Bytes()))
	return nil
}

func runDecode(cmd *cobra.Command, args []string) error {
	axis := strings.ToLower(args[0])
	raw, err := hex.DecodeString(args[1])
	if err != nil {
		return fmt.Errorf("bad hex %q: %w", args[1], err)
	}
	seg, err := segment.FromBytes(raw)
	if err != nil {
		return err
	}
	switch axis {
	case "f":
		z, f := segment.DecodeF(seg)
		fmt.Fprintf(cmd.OutOrStdout(), "z=%d f=%d\n", z, f)
	case "x", "y":
		z, v := segment.DecodeXY(seg)
		fmt.Fprintf(cmd.OutOrStdout(), "z=%d %s=%d\n", z, axis, v)
	default:
		return fmt.Errorf("unknown axis %q, want f, x, or y", axis)
	}
	return nil
}

// flexBytes is a tiny helper the `single` command uses to print a FlexId's
// binary form alongside its text form.
func flexBytes(f flexid.FlexId) string {
	return hex.EncodeToString(f.Bytes())
}
