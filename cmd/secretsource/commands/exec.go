package commands

import (
	"time"

	"github.com/spf13/cobra"
	"github.com/systmms/secretsource/internal/config"
	dserrors "github.com/systmms/secretsource/internal/errors"
	"github.com/systmms/secretsource/internal/execenv"
)

// NewExecCommand creates the exec command, which runs a child process with
// the merged configuration injected as environment variables.
func NewExecCommand(cfg *config.Config) *cobra.Command {
	var (
		allowOverride bool
		printVars     bool
		workingDir    string
		timeout       time.Duration
	)

	cmd := &cobra.Command{
		Use:   "exec -- <command> [args...]",
		Short: "Run a command with the merged configuration as environment variables",
		Long: `Fetch every resolved context, merge the layers, and run the given
command with the merged values injected as environment variables. Dotted
keys are converted to environment variable form (db.password becomes
DB_PASSWORD). The child's exit code is propagated.

Examples:
  # Start a service with its secrets injected
  secretsource exec -- npm start

  # Let variables already set in the shell win
  secretsource exec --allow-override -- ./run.sh`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.ArgsLenAtDash() < 0 || len(args) == 0 {
				return dserrors.UserError{
					Message:    "No command specified",
					Suggestion: "Provide a command after -- (e.g., secretsource exec -- npm start)",
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

			injected := make(map[string]string)
			for _, key := range composite.Keys() {
				value, _ := composite.Get(key)
				injected[envKey(key)] = value
			}

			executor := execenv.New(cfg.Logger)
			return executor.Exec(cmd.Context(), execenv.Options{
				Command:       args,
				Environment:   injected,
				AllowOverride: allowOverride,
				PrintVars:     printVars,
				WorkingDir:    workingDir,
				Timeout:       timeout,
			})
		},
	}

	cmd.Flags().BoolVar(&allowOverride, "allow-override", false, "Let pre-existing environment variables win over fetched values")
	cmd.Flags().BoolVar(&printVars, "print-vars", false, "Print injected variable names with masked values")
	cmd.Flags().StringVar(&workingDir, "workdir", "", "Working directory for the command")
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "Kill the command after this duration (0 for no timeout)")

	return cmd
}
