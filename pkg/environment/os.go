package environment

import (
	"os"
	"strings"
)

// ProfilesVar is the process environment variable holding the active
// profiles as a comma-separated list.
const ProfilesVar = "SECRETSOURCE_PROFILES"

// OSEnvironment reads properties and profiles from the process environment.
//
// Property keys are translated to environment variable names by uppercasing
// and replacing dots with underscores, so "application.name" resolves from
// APPLICATION_NAME.
type OSEnvironment struct{}

// NewOS creates an environment backed by the process environment.
func NewOS() *OSEnvironment {
	return &OSEnvironment{}
}

// Property looks up key in the process environment.
func (e *OSEnvironment) Property(key string) (string, bool) {
	return os.LookupEnv(propertyToEnvVar(key))
}

// ActiveProfiles parses the SECRETSOURCE_PROFILES variable. Empty entries
// are dropped; order is preserved.
func (e *OSEnvironment) ActiveProfiles() []string {
	raw, ok := os.LookupEnv(ProfilesVar)
	if !ok {
		return nil
	}

	var profiles []string
	for _, p := range strings.Split(raw, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			profiles = append(profiles, p)
		}
	}
	return profiles
}

func propertyToEnvVar(key string) string {
	return strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}
