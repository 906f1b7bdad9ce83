package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mox-nexus/x.uma/config"
	"github.com/mox-nexus/x.uma/registry"
	"github.com/mox-nexus/x.uma/xumatest"
)

// newEvalCommand loads a matcher config against the built-in
// xumatest.DictInput domain and evaluates it against a context built from
// repeated --set key=value flags, so the CLI is runnable without writing a
// bespoke Go domain adapter first.
func newEvalCommand(v *viper.Viper) *cobra.Command {
	var sets []string

	cmd := &cobra.Command{
		Use:   "eval <file>",
		Short: "Evaluate a matcher config against a dict-shaped context",
		Long:  "Loads a matcher config (using the xuma.test.v1.StringInput input type) and evaluates it against a context built from --set key=value flags.",
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
				return fmt.Errorf("decode %s: %w", path, err)
			}
			cfg, err := config.Parse(doc)
			if err != nil {
				return fmt.Errorf("parse %s: %w", path, err)
			}

			builder := xumatest.Register(registry.NewBuilder[map[string]string]())
			reg := builder.Build()

			loadCtx := cmd.Context()
			if loadCtx == nil {
				loadCtx = context.Background()
			}
			matcher, err := registry.Load[map[string]string, string](loadCtx, reg, cfg, registry.IdentityActionDecoder)
			if err != nil {
				log.Error("xumactl: load failed", "path", path, "error", err.Error())
				return err
			}

			ctx := make(map[string]string, len(sets))
			for _, kv := range sets {
				k, val, ok := strings.Cut(kv, "=")
				if !ok {
					return fmt.Errorf("invalid --set value %q, expected key=value", kv)
				}
				ctx[k] = val
			}

			action, ok := matcher.Evaluate(ctx)
			if !ok {
				fmt.Println("no match")
				return nil
			}
			fmt.Printf("action: %s\n", action)
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&sets, "set", nil, "key=value pair to add to the evaluation context (repeatable)")
	return cmd
}
