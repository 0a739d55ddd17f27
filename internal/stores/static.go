package stores

import (
	"context"

	"github.com/systmms/secretsource/pkg/secretstore"
)

// StaticStore serves contexts from in-memory data. It backs offline tests
// and dry runs of the resolution pipeline without any remote store.
type StaticStore struct {
	name    string
	secrets map[string]map[string]string
}

// NewStaticStore creates a store serving the given context data.
func NewStaticStore(secrets map[string]map[string]string) *StaticStore {
	copied := make(map[string]map[string]string, len(secrets))
	for ctxName, values := range secrets {
		inner := make(map[string]string, len(values))
		for k, v := range values {
			inner[k] = v
		}
		copied[ctxName] = inner
	}
	return &StaticStore{name: "static", secrets: copied}
}

// newStaticStoreFromConfig builds a StaticStore from the YAML-decoded
// "secrets" map of a store config block.
func newStaticStoreFromConfig(storeConfig map[string]interface{}) (*StaticStore, error) {
	secrets := make(map[string]map[string]string)

	raw, _ := storeConfig["secrets"].(map[string]interface{})
	for ctxName, entry := range raw {
		values, ok := entry.(map[string]interface{})
		if !ok {
			continue
		}
		inner := make(map[string]string, len(values))
		for k, v := range values {
			if str, ok := v.(string); ok {
				inner[k] = str
			}
		}
		secrets[ctxName] = inner
	}

	return NewStaticStore(secrets), nil
}

// Name returns the store name used to label the composite source.
func (s *StaticStore) Name() string {
	return s.name
}

// FetchAll returns the configured values for the context, or NotFoundError.
func (s *StaticStore) FetchAll(_ context.Context, name string) (map[string]string, error) {
	values, ok := s.secrets[name]
	if !ok {
		return nil, secretstore.NotFoundError{Store: s.name, Context: name}
	}

	copied := make(map[string]string, len(values))
	for k, v := range values {
		copied[k] = v
	}
	return copied, nil
}

// Validate always succeeds.
func (s *StaticStore) Validate(context.Context) error {
	return nil
}
