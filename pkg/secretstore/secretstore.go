// Package secretstore defines the contract between the property source
// locator and remote secret stores.
//
// A store exposes one core capability: fetch every key/value pair stored
// under a context name. Implementations map their backend's failure modes
// onto the three error kinds defined here so the locator's fail-fast policy
// can treat all stores uniformly:
//
//   - NotFoundError: the context has no data in the store
//   - AccessDeniedError: the caller is not allowed to read the context
//   - TransientError: network or store-side failure
//
// Implementations must be safe for concurrent use, support context
// cancellation, and never log secret values.
package secretstore

import (
	"context"
	"errors"
	"fmt"
)

// SecretStore is the fetch collaborator used to build layered property
// sources.
type SecretStore interface {
	// Name returns the store's stable identifier, used to name the
	// composite source and in diagnostics. Example: "aws-secrets-manager".
	Name() string

	// FetchAll returns every key/value pair stored under the given context
	// name. The error, when non-nil, is one of the package error kinds.
	FetchAll(ctx context.Context, name string) (map[string]string, error)

	// Validate checks connectivity and credentials without fetching
	// application data.
	Validate(ctx context.Context) error
}

// NotFoundError indicates the context has no data in the store.
type NotFoundError struct {
	Store   string
	Context string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("no secrets found for %s in %s", e.Context, e.Store)
}

// AccessDeniedError indicates the store refused access to the context.
type AccessDeniedError struct {
	Store   string
	Context string
	Message string
}

func (e AccessDeniedError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("access denied for %s in %s: %s", e.Context, e.Store, e.Message)
	}
	return fmt.Sprintf("access denied for %s in %s", e.Context, e.Store)
}

// TransientError indicates a network or store-side failure that is not a
// statement about the context's existence or permissions.
type TransientError struct {
	Store   string
	Context string
	Err     error
}

func (e TransientError) Error() string {
	return fmt.Sprintf("transient error fetching %s from %s: %v", e.Context, e.Store, e.Err)
}

func (e TransientError) Unwrap() error {
	return e.Err
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var nf NotFoundError
	return errors.As(err, &nf)
}

// IsAccessDenied reports whether err is an AccessDeniedError.
func IsAccessDenied(err error) bool {
	var ad AccessDeniedError
	return errors.As(err, &ad)
}

// IsTransient reports whether err is a TransientError.
func IsTransient(err error) bool {
	var tr TransientError
	return errors.As(err, &tr)
}
