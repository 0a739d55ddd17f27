// Package locator assembles a layered property source by fetching every
// resolved context from a secret store, in precedence order.
package locator

import (
	"context"
	"fmt"
	"time"

	"github.com/systmms/secretsource/pkg/contexts"
	"github.com/systmms/secretsource/pkg/environment"
	"github.com/systmms/secretsource/pkg/propertysource"
	"github.com/systmms/secretsource/pkg/secretstore"
)

// Logger is the subset of logging used by the locator.
type Logger interface {
	Warn(format string, args ...interface{})
	Error(format string, args ...interface{})
	Debug(format string, args ...interface{})
}

// Recorder receives fetch outcome observations. The outcome is one of
// "success", "not_found", "access_denied" or "transient".
type Recorder interface {
	RecordFetch(store, outcome string, seconds float64)
}

// FetchError is the fatal error surfaced under fail-fast policy. It names
// the context whose fetch failed and wraps the store error.
type FetchError struct {
	Context string
	Err     error
}

func (e FetchError) Error() string {
	return fmt.Sprintf("failed to fetch secrets for context %s: %v", e.Context, e.Err)
}

func (e FetchError) Unwrap() error {
	return e.Err
}

// Locator builds composite property sources from one secret store.
//
// Each Locate call is independent: it computes its own context list and
// returns a fresh composite, so a Locator is safe to share between
// goroutines.
type Locator struct {
	store    secretstore.SecretStore
	cfg      contexts.Config
	logger   Logger
	recorder Recorder
}

// Option configures a Locator.
type Option func(*Locator)

// WithLogger sets the logger used for fetch diagnostics.
func WithLogger(logger Logger) Option {
	return func(l *Locator) {
		l.logger = logger
	}
}

// WithRecorder sets the metrics recorder for fetch observations.
func WithRecorder(recorder Recorder) Option {
	return func(l *Locator) {
		l.recorder = recorder
	}
}

// New creates a Locator for the given store and naming configuration.
func New(store secretstore.SecretStore, cfg contexts.Config, opts ...Option) *Locator {
	l := &Locator{
		store:    store,
		cfg:      cfg,
		logger:   nopLogger{},
		recorder: nopRecorder{},
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Locate resolves the context list for env and fetches each context from
// the store, sequentially and in order. Successful fetches become layers of
// the returned composite, added in iteration order so the first context
// wins on key collisions.
//
// Fetches are strictly sequential: under fail-fast a later context must not
// be fetched before an earlier failure has been evaluated.
//
// On a fetch failure of any kind: with FailFast the call aborts and returns
// a FetchError naming the failed context; without it the failure is logged
// as a warning and that context contributes no layer.
func (l *Locator) Locate(ctx context.Context, env environment.Environment) (*propertysource.Composite, error) {
	names := contexts.Resolve(env, l.cfg)
	composite := propertysource.NewComposite(l.store.Name(), names)

	for _, name := range names {
		start := time.Now()
		values, err := l.store.FetchAll(ctx, name)
		l.recorder.RecordFetch(l.store.Name(), outcome(err), time.Since(start).Seconds())

		if err != nil {
			if l.cfg.FailFast {
				l.logger.Error("Fail fast is set and there was an error reading secrets from %s: %v", name, err)
				return nil, FetchError{Context: name, Err: err}
			}
			l.logger.Warn("Unable to load secrets from %s: %v", name, err)
			continue
		}

		l.logger.Debug("Loaded %d entries from %s", len(values), name)
		composite.Add(propertysource.NewLayer(name, values))
	}

	return composite, nil
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "success"
	case secretstore.IsNotFound(err):
		return "not_found"
	case secretstore.IsAccessDenied(err):
		return "access_denied"
	default:
		return "transient"
	}
}

type nopLogger struct{}

func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
func (nopLogger) Debug(string, ...interface{}) {}

type nopRecorder struct{}

func (nopRecorder) RecordFetch(string, string, float64) {}
