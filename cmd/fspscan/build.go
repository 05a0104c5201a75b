package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"

	"github.com/arloliu/fspscan"
	"github.com/arloliu/fspscan/internal/metrics"
	"github.com/arloliu/fspscan/types"
)

func newBuildCmd(g *globalFlags) *cobra.Command {
	var (
		cfgPath      string
		scanPath     string
		mode         string
		printMetrics bool
	)

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build the FSP configuration records of a scan",
		Long: strings.TrimSpace(`
Build the per-FSP configuration records of a scan's CORR or PST-BF function
configuration. The subarray and the dish registry come from the YAML config;
the scan is a JSON document with a "processing_regions" array. The records are
printed as JSON.`),
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := fspscan.LoadConfig(cfgPath)
			if err != nil {
				return err
			}
			log, err := g.logger(cmd, cfg.Log.Level, cfg.Log.Format)
			if err != nil {
				return err
			}

			fc, err := readScan(cmd.InOrStdin(), scanPath, mode)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Registry.OperationTimeout)
			defer cancel()
			reg, closeRegistry, err := openRegistry(ctx, cfg.Registry, log)
			if err != nil {
				return err
			}
			defer closeRegistry()

			promReg := prometheus.NewRegistry()
			cfgr, err := fspscan.NewConfigurator(cfg, reg,
				fspscan.WithLogger(log),
				fspscan.WithMetrics(metrics.NewPrometheus(promReg, metrics.DefaultNamespace)),
			)
			if err != nil {
				return err
			}

			elements, err := cfgr.Build(fc)
			if err != nil {
				return err
			}
			if err := writeJSON(cmd.OutOrStdout(), elements); err != nil {
				return err
			}

			if printMetrics {
				return writeMetrics(cmd, promReg)
			}

			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&cfgPath, "config", envOr("FSPSCAN_CONFIG", ""), "subarray config file (YAML)")
	f.StringVar(&scanPath, "scan", "", "scan function configuration (JSON, - for stdin)")
	f.StringVar(&mode, "mode", "corr", "function mode (corr, pst)")
	f.BoolVar(&printMetrics, "print-metrics", false, "write the build metrics to stderr in Prometheus text format")
	_ = cmd.MarkFlagRequired("scan")

	return cmd
}

// readScan decodes a scan function configuration for the given mode.
func readScan(stdin io.Reader, path, mode string) (types.FunctionConfiguration, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read scan: %w", err)
	}

	switch strings.ToLower(mode) {
	case "corr":
		var fc types.CorrConfiguration
		if err := decodeStrict(data, &fc); err != nil {
			return nil, err
		}

		return fc, nil
	case "pst", "pst-bf":
		var fc types.PstConfiguration
		if err := decodeStrict(data, &fc); err != nil {
			return nil, err
		}

		return fc, nil
	default:
		return nil, fmt.Errorf("%w: unknown mode %q (want corr or pst)", types.ErrInvalidArgument, mode)
	}
}

func decodeStrict(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("failed to decode scan: %w", err)
	}

	return nil
}

func writeMetrics(cmd *cobra.Command, reg *prometheus.Registry) error {
	families, err := reg.Gather()
	if err != nil {
		return fmt.Errorf("failed to gather metrics: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(cmd.ErrOrStderr(), mf); err != nil {
			return err
		}
	}

	return nil
}
