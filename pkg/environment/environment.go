// Package environment abstracts the runtime environment that context
// resolution reads application identity and deployment profiles from.
//
// Two capability levels exist. Every environment supports property lookup.
// Environments that also know the active deployment profiles implement
// ConfigurableEnvironment; context derivation requires that extra
// capability and degrades to an empty context list without it.
package environment

// ApplicationNameProperty is the well-known property key consulted when no
// explicit application name is configured.
const ApplicationNameProperty = "application.name"

// Environment supports simple property lookup.
type Environment interface {
	// Property returns the value for key and whether it is present.
	Property(key string) (string, bool)
}

// ConfigurableEnvironment additionally enumerates the active deployment
// profiles, in declaration order.
type ConfigurableEnvironment interface {
	Environment

	// ActiveProfiles returns the active profiles in declaration order.
	// The returned slice may be empty.
	ActiveProfiles() []string
}

// AsConfigurable reports whether env supports profile enumeration and, if
// so, returns it as a ConfigurableEnvironment.
func AsConfigurable(env Environment) (ConfigurableEnvironment, bool) {
	configurable, ok := env.(ConfigurableEnvironment)
	return configurable, ok
}
