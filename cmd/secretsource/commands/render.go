package commands

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/systmms/secretsource/internal/config"
	dserrors "github.com/systmms/secretsource/internal/errors"
)

// NewRenderCommand creates the render command, which fetches the composite
// view and prints it in env, export or json form.
func NewRenderCommand(cfg *config.Config) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Fetch all contexts and render the merged configuration",
		Long: `Fetch every resolved context from the configured store, merge the
layers with most-specific-wins precedence, and print the result.

Formats:
  env     KEY=VALUE lines (default)
  export  shell export statements
  json    a single JSON object

Examples:
  # Render to dotenv form
  secretsource render > .env

  # Source directly into a shell
  eval "$(secretsource render --format export)"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "env" && format != "export" && format != "json" {
				return dserrors.ConfigError{
					Field:      "format",
					Value:      format,
					Message:    "unknown output format",
					Suggestion: "Use one of: env, export, json",
				}
			}

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

			out := cmd.OutOrStdout()
			switch format {
			case "json":
				merged := make(map[string]string)
				for _, key := range composite.Keys() {
					value, _ := composite.Get(key)
					merged[key] = value
				}
				encoder := json.NewEncoder(out)
				encoder.SetIndent("", "  ")
				return encoder.Encode(merged)
			case "export":
				for _, key := range composite.Keys() {
					value, _ := composite.Get(key)
					fmt.Fprintf(out, "export %s='%s'\n", envKey(key), strings.ReplaceAll(value, "'", `'\''`))
				}
			default:
				for _, key := range composite.Keys() {
					value, _ := composite.Get(key)
					fmt.Fprintf(out, "%s=%s\n", envKey(key), value)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "env", "Output format: env, export, json")

	return cmd
}

// envKey converts a dotted property key to environment variable form.
func envKey(key string) string {
	return strings.ToUpper(strings.NewReplacer(".", "_", "-", "_").Replace(key))
}
