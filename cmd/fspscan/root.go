package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/arloliu/fspscan/internal/logging"
	"github.com/arloliu/fspscan/types"
)

var exampleUsage = strings.TrimSpace(`
  fspscan partition --band 1 --fsp-ids 1,2 --start-freq 350000000 --channel-count 14000
  fspscan build --config subarray.yaml --scan scan.json --mode corr
  fspscan registry push --file dishes.yaml --nats-url nats://localhost:4222
`)

// globalFlags are shared by every subcommand.
type globalFlags struct {
	logLevel  string
	logFormat string
}

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}

	return "dev"
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	g := &globalFlags{}

	root := &cobra.Command{
		Use:           "fspscan",
		Short:         "Partition spectra and build FSP scan configurations",
		Example:       exampleUsage,
		Version:       fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	root.PersistentFlags().StringVar(&g.logLevel, "log-level", envOr("FSPSCAN_LOG_LEVEL", "info"), "log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&g.logFormat, "log-format", envOr("FSPSCAN_LOG_FORMAT", logging.FormatConsole), "log format (console, json, text)")

	root.AddCommand(
		newPartitionCmd(g),
		newBuildCmd(g),
		newRegistryCmd(g),
	)

	return root
}

// logger creates the command logger. A flag set on the command line wins over
// the configuration file values.
func (g *globalFlags) logger(cmd *cobra.Command, level, format string) (types.Logger, error) {
	changed := map[string]bool{}
	cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

	if changed["log-level"] || level == "" {
		level = g.logLevel
	}
	if changed["log-format"] || format == "" {
		format = g.logFormat
	}

	return logging.New(level, format, cmd.ErrOrStderr())
}

func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}

	return fallback
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(v)
}
