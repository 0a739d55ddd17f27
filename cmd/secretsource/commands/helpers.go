package commands

import (
	"context"

	"github.com/systmms/secretsource/internal/config"
	"github.com/systmms/secretsource/internal/metrics"
	"github.com/systmms/secretsource/internal/stores"
	"github.com/systmms/secretsource/pkg/locator"
	"github.com/systmms/secretsource/pkg/secretstore"
)

// buildStore loads the config (if not already loaded) and creates the
// configured secret store.
func buildStore(ctx context.Context, cfg *config.Config) (secretstore.SecretStore, error) {
	if cfg.Definition == nil {
		if err := cfg.Load(); err != nil {
			return nil, err
		}
	}

	registry := stores.NewRegistry()
	return registry.CreateStore(ctx, cfg.Definition.Store.Type, cfg.Definition.Store.Config)
}

// buildLocator wires the store, naming config, logger and metrics into a
// ready-to-use locator.
func buildLocator(ctx context.Context, cfg *config.Config) (*locator.Locator, error) {
	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	metrics.Init()

	opts := []locator.Option{locator.WithRecorder(metrics.NewFetchMetrics())}
	if cfg.Logger != nil {
		opts = append(opts, locator.WithLogger(cfg.Logger))
	}
	return locator.New(store, cfg.ContextsConfig(), opts...), nil
}
