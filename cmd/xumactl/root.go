package main

import (
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mox-nexus/x.uma/internal/obs"
	"github.com/mox-nexus/x.uma/pkg/logger"
)

// newRootCommand builds the xumactl root command: validate, eval, and
// serve subcommands sharing persistent flags bound to viper, exactly the
// teacher's cmd/server viper-config-from-flags convention.
func newRootCommand() *cobra.Command {
	v := viper.New()

	root := &cobra.Command{
		Use:   "xumactl",
		Short: "Inspect and exercise xuma matcher configurations",
		Long:  "xumactl validates, evaluates, and hot-reloads xDS Unified Matcher API configuration documents (YAML, JSON, or TOML).",
	}

	root.PersistentFlags().String("log-level", "info", "log level: debug, info, warn, error")
	root.PersistentFlags().String("log-format", "text", "log format: text or json")
	_ = v.BindPFlag("log.level", root.PersistentFlags().Lookup("log-level"))
	_ = v.BindPFlag("log.format", root.PersistentFlags().Lookup("log-format"))

	root.AddCommand(
		newValidateCommand(v),
		newEvalCommand(v),
		newServeCommand(v),
	)
	return root
}

func rootLogger(v *viper.Viper) *slog.Logger {
	return obs.New(logger.Config{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
		Output: "stderr",
	})
}
