package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mox-nexus/x.uma/config"
)

// newValidateCommand parses a config document and reports whether its
// shape is well-formed, without resolving any type URL against a
// registry (that only happens at Load time, in eval/serve).
func newValidateCommand(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file>",
		Short: "Validate a matcher config document's shape",
		Long:  "Decodes a YAML, JSON, or TOML document and parses it into a MatcherConfig, reporting any structural error.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log := rootLogger(v)
			path := args[0]

			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("read %s: %w", path, err)
			}

			doc, err := config.Decode(data)
			if err != nil {
				log.Error("xumactl: decode failed", "path", path, "error", err.Error())
				return err
			}

			cfg, err := config.Parse(doc)
			if err != nil {
				log.Error("xumactl: parse failed", "path", path, "error", err.Error())
				return err
			}

			fmt.Printf("valid: %d top-level field matcher(s), on_no_match=%t\n", len(cfg.Matchers), cfg.OnNoMatch != nil)
			return nil
		},
	}
}
