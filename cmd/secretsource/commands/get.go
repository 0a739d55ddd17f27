package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/systmms/secretsource/internal/config"
	dserrors "github.com/systmms/secretsource/internal/errors"
)

// NewGetCommand creates the get command, which prints a single merged
// value.
func NewGetCommand(cfg *config.Config) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "get <key>",
		Short: "Get a single merged configuration value",
		Long: `Fetch the resolved contexts and print the value of one key from the
merged view. The value comes from the most specific context that defines
the key. By default only the raw value is printed, making it suitable for
scripting.

Examples:
  # Get a single value
  secretsource get db.password

  # Use in scripts
  export DB_PASSWORD=$(secretsource get db.password)`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]

			if err := cfg.Load(); err != nil {
				return err
			}

			loc, err := buildLocator(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			composite, err := loc.Locate(cmd.Context(), cfg.Environment())
			if err != nil {
				return err
			}

			value, ok := composite.Get(key)
			if !ok {
				return dserrors.UserError{
					Message:    fmt.Sprintf("Key '%s' not found in any fetched context", key),
					Suggestion: "Run 'secretsource contexts' to inspect which contexts are consulted",
				}
			}

			if jsonOutput {
				encoder := json.NewEncoder(cmd.OutOrStdout())
				encoder.SetIndent("", "  ")
				return encoder.Encode(map[string]interface{}{
					"key":      key,
					"value":    value,
					"source":   composite.Name(),
					"contexts": composite.Contexts(),
				})
			}

			fmt.Fprint(cmd.OutOrStdout(), value)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output in JSON format with metadata")

	return cmd
}
