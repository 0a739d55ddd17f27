package environment

// StaticEnvironment is a fixed set of properties and profiles, optionally
// layered over a parent environment for property lookup fallback. It is
// used when profiles and properties come from a configuration file, and in
// tests.
type StaticEnvironment struct {
	properties map[string]string
	profiles   []string
	parent     Environment
}

// NewStatic creates an environment with the given properties and profiles.
func NewStatic(properties map[string]string, profiles []string) *StaticEnvironment {
	props := make(map[string]string, len(properties))
	for k, v := range properties {
		props[k] = v
	}
	return &StaticEnvironment{
		properties: props,
		profiles:   append([]string(nil), profiles...),
	}
}

// WithParent sets a fallback environment consulted for properties not
// defined statically. It returns the receiver for chaining.
func (e *StaticEnvironment) WithParent(parent Environment) *StaticEnvironment {
	e.parent = parent
	return e
}

// Property returns the static value for key, falling back to the parent
// environment when one is set.
func (e *StaticEnvironment) Property(key string) (string, bool) {
	if v, ok := e.properties[key]; ok {
		return v, true
	}
	if e.parent != nil {
		return e.parent.Property(key)
	}
	return "", false
}

// ActiveProfiles returns the configured profiles in declaration order.
func (e *StaticEnvironment) ActiveProfiles() []string {
	return append([]string(nil), e.profiles...)
}
