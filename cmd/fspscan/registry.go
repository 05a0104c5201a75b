package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/spf13/cobra"

	"github.com/arloliu/fspscan"
	"github.com/arloliu/fspscan/registry"
	"github.com/arloliu/fspscan/types"
)

var errNoRegistry = errors.New("no dish registry configured: set registry.file or registry.natsUrl")

// openRegistry opens the configured registry. The returned func releases it.
func openRegistry(ctx context.Context, cfg fspscan.RegistryConfig, log types.Logger) (types.DishRegistry, func(), error) {
	switch {
	case cfg.File != "":
		reg, err := registry.OpenFile(cfg.File, registry.WithLogger(log))
		if err != nil {
			return nil, nil, err
		}

		return reg, func() {}, nil

	case cfg.NatsURL != "":
		nc, kv, err := openKV(ctx, cfg, log)
		if err != nil {
			return nil, nil, err
		}

		return kv, nc.Close, nil

	default:
		return nil, nil, errNoRegistry
	}
}

func openKV(ctx context.Context, cfg fspscan.RegistryConfig, log types.Logger) (*nats.Conn, *registry.KV, error) {
	nc, err := nats.Connect(cfg.NatsURL, nats.Timeout(cfg.OperationTimeout), nats.Name("fspscan"))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	js, err := jetstream.New(nc)
	if err != nil {
		nc.Close()
		return nil, nil, fmt.Errorf("failed to create JetStream context: %w", err)
	}

	kv, err := registry.OpenKV(ctx, js, cfg.Bucket,
		registry.WithLogger(log),
		registry.WithKeyPrefix(cfg.KeyPrefix),
	)
	if err != nil {
		nc.Close()
		return nil, nil, err
	}

	return nc, kv, nil
}

func newRegistryCmd(g *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "registry",
		Short: "Inspect and publish the dish registry",
	}
	cmd.AddCommand(newRegistryPushCmd(g), newRegistryShowCmd(g))

	return cmd
}

// registryFlags selects a KV bucket.
type registryFlags struct {
	cfg fspscan.RegistryConfig
}

func (r *registryFlags) register(cmd *cobra.Command) {
	defaults := fspscan.DefaultConfig().Registry
	r.cfg = defaults

	f := cmd.Flags()
	f.StringVar(&r.cfg.NatsURL, "nats-url", envOr("FSPSCAN_NATS_URL", nats.DefaultURL), "NATS server URL")
	f.StringVar(&r.cfg.Bucket, "bucket", defaults.Bucket, "KV bucket name")
	f.StringVar(&r.cfg.KeyPrefix, "key-prefix", defaults.KeyPrefix, "dish key prefix")
	f.DurationVar(&r.cfg.OperationTimeout, "timeout", defaults.OperationTimeout, "NATS operation timeout")
}

func newRegistryPushCmd(g *globalFlags) *cobra.Command {
	var (
		flags registryFlags
		file  string
	)

	cmd := &cobra.Command{
		Use:   "push",
		Short: "Write the entries of a registry file into a KV bucket",
		RunE: func(cmd *cobra.Command, _ []string) error {
			log, err := g.logger(cmd, "", "")
			if err != nil {
				return err
			}
			entries, err := registry.LoadFile(file)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), flags.cfg.OperationTimeout)
			defer cancel()
			nc, kv, err := openKV(ctx, flags.cfg, log)
			if err != nil {
				return err
			}
			defer nc.Close()

			if err := kv.PutAll(ctx, entries); err != nil {
				return err
			}
			log.Info("dish registry pushed",
				"bucket", flags.cfg.Bucket,
				"dishes", len(entries),
				"fingerprint", fmt.Sprintf("%016x", registry.Fingerprint(entries)),
			)

			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&file, "file", "", "registry file (YAML)")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func newRegistryShowCmd(g *globalFlags) *cobra.Command {
	var (
		flags registryFlags
		file  string
	)

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the registry entries of a file or KV bucket as YAML",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if file != "" {
				entries, err := registry.LoadFile(file)
				if err != nil {
					return err
				}
				registry.SortEntries(entries)

				return writeRegistry(cmd.OutOrStdout(), entries)
			}

			log, err := g.logger(cmd, "", "")
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), flags.cfg.OperationTimeout)
			defer cancel()
			nc, kv, err := openKV(ctx, flags.cfg, log)
			if err != nil {
				return err
			}
			defer nc.Close()

			return writeRegistry(cmd.OutOrStdout(), kv.Entries())
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&file, "file", "", "registry file (YAML); the KV bucket is read when empty")

	return cmd
}

func writeRegistry(w io.Writer, entries []registry.Entry) error {
	data, err := registry.Marshal(entries)
	if err != nil {
		return err
	}
	_, err = w.Write(data)

	return err
}
