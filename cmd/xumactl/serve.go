package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	xconfig "github.com/mox-nexus/x.uma/config"
	"github.com/mox-nexus/x.uma/internal/config"
	"github.com/mox-nexus/x.uma/pkg/logger"
	"github.com/mox-nexus/x.uma/registry"
	"github.com/mox-nexus/x.uma/xumatest"
)

// newServeCommand runs an indefinite process that keeps a
// registry.Manager current against a config file, reloading it whenever
// the file's modification time advances. It is a demonstration of the
// hot-swap path (registry.Manager), not a network service — xuma performs
// no I/O of its own, so "serve" here means "keep watching a file",
// mirroring the teacher's SIGHUP-triggered reload loop in spirit without
// the transport layer that loop was originally wired to.
func newServeCommand(v *viper.Viper) *cobra.Command {
	var pollInterval time.Duration

	cmd := &cobra.Command{
		Use:   "serve <file>",
		Short: "Watch a matcher config file and hot-reload on change",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log := rootLogger(v)
			path := args[0]
			requestID := logger.GenerateRequestID()

			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("read %s: %w", path, err)
			}
			doc, err := xconfig.Decode(data)
			if err != nil {
				return fmt.Errorf("decode %s: %w", path, err)
			}
			cfg, err := xconfig.Parse(doc)
			if err != nil {
				return fmt.Errorf("parse %s: %w", path, err)
			}

			reg := xumatest.Register(registry.NewBuilder[map[string]string]()).Build()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			manager, err := registry.NewManager[map[string]string, string](ctx, reg, cfg, registry.IdentityActionDecoder)
			if err != nil {
				return fmt.Errorf("initial load of %s: %w", path, err)
			}
			log.Info("xumactl: serving", "request_id", requestID, "path", path)

			watcher := config.NewWatcher[map[string]string, string](path, pollInterval, manager, log)
			if err := watcher.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			log.Info("xumactl: shutting down", "request_id", requestID)
			return nil
		},
	}

	cmd.Flags().DurationVar(&pollInterval, "poll-interval", 2*time.Second, "how often to check the config file for changes")
	return cmd
}
