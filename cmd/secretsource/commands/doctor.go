package commands

import (
	"context"
	"time"

	"github.com/spf13/cobra"
	"github.com/systmms/secretsource/internal/config"
	dserrors "github.com/systmms/secretsource/internal/errors"
	"github.com/systmms/secretsource/internal/logging"
	"github.com/systmms/secretsource/pkg/contexts"
)

// NewDoctorCommand creates the doctor command, which checks configuration
// and store connectivity.
func NewDoctorCommand(cfg *config.Config) *cobra.Command {
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check store connectivity and configuration",
		Long: `Verify that the configuration file is valid, show the contexts that
would be fetched, and validate credentials against the configured store.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := cfg.Logger
			if logger == nil {
				logger = logging.New(false, true)
			}

			logger.Info("Checking secretsource configuration...")
			if err := cfg.Load(); err != nil {
				logger.Error("Configuration error: %v", err)
				return err
			}
			logger.Info("Configuration loaded successfully")

			list := contexts.Resolve(cfg.Environment(), cfg.ContextsConfig())
			if len(list) == 0 {
				logger.Warn("No contexts resolved: set naming.name, naming.secretNames, or the application.name property")
			} else {
				logger.Info("Resolved %d context(s), highest precedence first:", len(list))
				for _, name := range list {
					logger.Info("  %s", name)
				}
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			store, err := buildStore(ctx, cfg)
			if err != nil {
				logger.Error("Store setup failed: %v", err)
				return err
			}

			if err := store.Validate(ctx); err != nil {
				logger.Error("Store validation failed: %v", err)
				return dserrors.StoreError(cfg.Definition.Store.Type, "validation", err)
			}

			logger.Info("Store '%s' is reachable and credentials are valid", store.Name())
			return nil
		},
	}

	cmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "Store validation timeout")

	return cmd
}
