package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/systmms/secretsource/internal/config"
	"github.com/systmms/secretsource/pkg/contexts"
)

// NewContextsCommand creates the contexts command, which prints the
// resolved lookup contexts without touching the store.
func NewContextsCommand(cfg *config.Config) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "contexts",
		Short: "Print the resolved lookup contexts in precedence order",
		Long: `Compute and print the ordered list of store lookup contexts for the
configured application name and active profiles. The first context has the
highest precedence. No store access is performed.

Examples:
  # Show the contexts that would be fetched
  secretsource contexts

  # Machine-readable output
  secretsource contexts --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.Load(); err != nil {
				return err
			}

			list := contexts.Resolve(cfg.Environment(), cfg.ContextsConfig())

			if jsonOutput {
				encoder := json.NewEncoder(cmd.OutOrStdout())
				encoder.SetIndent("", "  ")
				return encoder.Encode(list)
			}

			for _, name := range list {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as a JSON array")

	return cmd
}
