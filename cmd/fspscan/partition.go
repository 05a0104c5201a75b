package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arloliu/fspscan/partition"
	"github.com/arloliu/fspscan/types"
)

func newPartitionCmd(g *globalFlags) *cobra.Command {
	var (
		req  partition.Request
		mode string
	)

	cmd := &cobra.Command{
		Use:   "partition",
		Short: "Partition a spectrum across FSPs and print the assignments",
		Long: strings.TrimSpace(`
Partition a contiguous band of fine channels across FSPs, one coarse frequency
slice per FSP. The assignments are checked before they are printed as JSON,
ordered by slice.`),
		RunE: func(cmd *cobra.Command, _ []string) error {
			log, err := g.logger(cmd, "", "")
			if err != nil {
				return err
			}

			req.Mode = types.FunctionMode(strings.ToUpper(mode))
			if req.Mode == "PST" {
				req.Mode = types.FunctionModePst
			}
			if req.ChannelWidth == 0 {
				req.ChannelWidth = req.Mode.ChannelWidth()
			}

			result, err := partition.Partition(req)
			if err != nil {
				return err
			}
			if err := partition.Verify(req, result); err != nil {
				return fmt.Errorf("partition check failed: %w", err)
			}

			ordered := partition.Ordered(result)
			log.Debug("spectrum partitioned",
				"band", req.Band,
				"fsps", len(ordered),
				"start_freq", req.StartFreq,
				"end_freq", req.EndFreq(),
			)

			return writeJSON(cmd.OutOrStdout(), ordered)
		},
	}

	f := cmd.Flags()
	f.StringVar(&req.Band, "band", "", "receiver band (1, 2, 3, 4, 5a, 5b)")
	f.IntSliceVar(&req.FspIDs, "fsp-ids", nil, "FSP ids, one per coarse slice")
	f.Int64Var(&req.StartFreq, "start-freq", 0, "centre frequency of the first fine channel (Hz)")
	f.IntVar(&req.ChannelCount, "channel-count", 0, "number of fine channels (multiple of 20)")
	f.Int64Var(&req.ChannelWidth, "channel-width", 0, "fine channel width (Hz, default: the mode's width)")
	f.IntVar(&req.K, "k", types.PlaceholderK, "dish frequency offset scale constant")
	f.Int64Var(&req.WidebandShift, "wideband-shift", 0, "wideband frequency shift (Hz)")
	f.StringVar(&mode, "mode", string(types.FunctionModeCorr), "function mode (CORR, PST-BF)")

	for _, name := range []string{"band", "fsp-ids", "channel-count"} {
		_ = cmd.MarkFlagRequired(name)
	}

	return cmd
}
