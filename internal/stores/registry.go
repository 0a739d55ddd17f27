package stores

import (
	"context"
	"fmt"
	"sort"

	"github.com/systmms/secretsource/pkg/secretstore"
)

// Registry manages secret store creation by type name.
type Registry struct {
	factories map[string]StoreFactory
}

// StoreFactory creates a store instance from its configuration block.
type StoreFactory func(ctx context.Context, storeConfig map[string]interface{}) (secretstore.SecretStore, error)

// NewRegistry creates a registry with the built-in store types.
func NewRegistry() *Registry {
	registry := &Registry{
		factories: make(map[string]StoreFactory),
	}

	registry.RegisterFactory("static", func(_ context.Context, conf map[string]interface{}) (secretstore.SecretStore, error) {
		return newStaticStoreFromConfig(conf)
	})
	registry.RegisterFactory("aws.secretsmanager", func(_ context.Context, conf map[string]interface{}) (secretstore.SecretStore, error) {
		return NewAWSSecretsManagerStore(conf)
	})
	registry.RegisterFactory("aws.parameterstore", func(_ context.Context, conf map[string]interface{}) (secretstore.SecretStore, error) {
		return NewAWSParameterStore(conf)
	})
	registry.RegisterFactory("gcp.secretmanager", func(ctx context.Context, conf map[string]interface{}) (secretstore.SecretStore, error) {
		return NewGCPSecretManagerStore(ctx, conf)
	})
	registry.RegisterFactory("azure.keyvault", func(_ context.Context, conf map[string]interface{}) (secretstore.SecretStore, error) {
		return NewAzureKeyVaultStore(conf)
	})

	return registry
}

// RegisterFactory registers a store factory for a given type.
func (r *Registry) RegisterFactory(storeType string, factory StoreFactory) {
	r.factories[storeType] = factory
}

// CreateStore creates a store instance for the given type.
func (r *Registry) CreateStore(ctx context.Context, storeType string, storeConfig map[string]interface{}) (secretstore.SecretStore, error) {
	factory, exists := r.factories[storeType]
	if !exists {
		return nil, fmt.Errorf("unknown store type: %s (supported: %v)", storeType, r.SupportedTypes())
	}
	return factory(ctx, storeConfig)
}

// SupportedTypes returns the registered store types, sorted.
func (r *Registry) SupportedTypes() []string {
	types := make([]string, 0, len(r.factories))
	for storeType := range r.factories {
		types = append(types, storeType)
	}
	sort.Strings(types)
	return types
}

// IsSupported checks if a store type is registered.
func (r *Registry) IsSupported(storeType string) bool {
	_, exists := r.factories[storeType]
	return exists
}
