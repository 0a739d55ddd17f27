// Package contexts computes the ordered list of secret store lookup keys
// ("contexts") for an application and its active deployment profiles.
//
// A context is a key of the form <prefix>/<base>[<separator><profile>].
// Resolution produces the list in precedence order: index 0 is the highest
// priority context, so an application+profile specific secret overrides an
// application-generic one, which overrides the profile-qualified default,
// which overrides the bare default.
package contexts

import (
	"slices"

	"github.com/systmms/secretsource/pkg/environment"
)

// Default naming conventions.
const (
	DefaultPrefix           = "secret"
	DefaultContextName      = "application"
	DefaultProfileSeparator = "_"
)

// Config holds the naming conventions used to derive contexts.
// It is immutable once constructed; Resolve never modifies it.
type Config struct {
	// SecretNames, when non-empty, is used verbatim as the context list.
	// Explicit configuration always overrides derived naming.
	SecretNames []string

	// ApplicationName overrides the application.name environment property.
	ApplicationName string

	// Prefix is the leading segment of every derived context.
	Prefix string

	// DefaultContext is the base name shared by all applications.
	DefaultContext string

	// ProfileSeparator joins a base context with a profile name.
	ProfileSeparator string

	// FailFast aborts composite construction on the first fetch failure
	// instead of skipping the failed context.
	FailFast bool
}

// NewConfig returns a Config with the conventional defaults and FailFast
// enabled.
func NewConfig() Config {
	return Config{
		Prefix:           DefaultPrefix,
		DefaultContext:   DefaultContextName,
		ProfileSeparator: DefaultProfileSeparator,
		FailFast:         true,
	}
}

// Resolve computes the ordered context list for env under cfg. It is a pure
// function: no I/O, identical inputs yield identical output.
//
// When cfg.SecretNames is non-empty it is returned unchanged. When env does
// not enumerate profiles, derivation is impossible and the result is empty;
// that is not an error. Otherwise the default and application base contexts
// are expanded with one profile-qualified variant per active profile and
// the accumulated list is reversed so the most specific context comes
// first.
//
// An absent application name is not guarded against: the base context is
// built by plain concatenation and a degenerate key like "secret/" is kept
// verbatim.
func Resolve(env environment.Environment, cfg Config) []string {
	if len(cfg.SecretNames) > 0 {
		return append([]string(nil), cfg.SecretNames...)
	}

	configurable, ok := environment.AsConfigurable(env)
	if !ok {
		return nil
	}

	appName := cfg.ApplicationName
	if appName == "" {
		appName, _ = env.Property(environment.ApplicationNameProperty)
	}

	profiles := configurable.ActiveProfiles()

	list := make([]string, 0, 2+2*len(profiles))

	defaultContext := cfg.Prefix + "/" + cfg.DefaultContext
	list = append(list, defaultContext)
	list = appendProfiles(list, defaultContext, profiles, cfg.ProfileSeparator)

	baseContext := cfg.Prefix + "/" + appName
	list = append(list, baseContext)
	list = appendProfiles(list, baseContext, profiles, cfg.ProfileSeparator)

	slices.Reverse(list)
	return list
}

func appendProfiles(list []string, base string, profiles []string, separator string) []string {
	for _, profile := range profiles {
		list = append(list, base+separator+profile)
	}
	return list
}
