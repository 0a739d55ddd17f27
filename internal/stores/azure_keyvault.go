package stores

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/Azure/azure-sdk-for-go/sdk/security/keyvault/azsecrets"

	dserrors "github.com/systmms/secretsource/internal/errors"
	"github.com/systmms/secretsource/pkg/secretstore"
)

// AzureKeyVaultClientAPI defines the interface for Azure Key Vault
// operations. This allows for mocking in tests.
type AzureKeyVaultClientAPI interface {
	GetSecret(ctx context.Context, name string, version string, options *azsecrets.GetSecretOptions) (azsecrets.GetSecretResponse, error)
}

// AzureKeyVaultStore fetches context bundles from Azure Key Vault. Key
// Vault secret names only allow alphanumerics and dashes, so the context
// name is sanitized before lookup; the secret value is a JSON object of
// key/value pairs.
type AzureKeyVaultStore struct {
	name     string
	client   AzureKeyVaultClientAPI
	vaultURL string
}

// KeyVaultOption is a functional option for configuring the store.
type KeyVaultOption func(*AzureKeyVaultStore)

// WithKeyVaultClient sets a custom Key Vault client (for testing).
func WithKeyVaultClient(client AzureKeyVaultClientAPI) KeyVaultOption {
	return func(s *AzureKeyVaultStore) {
		s.client = client
	}
}

// NewAzureKeyVaultStore creates a new Azure Key Vault store.
func NewAzureKeyVaultStore(storeConfig map[string]interface{}, opts ...KeyVaultOption) (*AzureKeyVaultStore, error) {
	s := &AzureKeyVaultStore{
		name: "azure-key-vault",
	}

	if vaultURL, ok := storeConfig["vault_url"].(string); ok {
		s.vaultURL = vaultURL
	}

	if s.vaultURL == "" {
		return nil, dserrors.ConfigError{
			Field:      "vault_url",
			Message:    "vault_url is required for Azure Key Vault",
			Suggestion: "Provide the Key Vault URL (e.g., https://my-vault.vault.azure.net/)",
		}
	}
	if _, err := url.Parse(s.vaultURL); err != nil {
		return nil, dserrors.ConfigError{
			Field:      "vault_url",
			Message:    "Invalid vault_url format",
			Suggestion: "Use format: https://vault-name.vault.azure.net/",
		}
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.client == nil {
		cred, err := azureCredential(storeConfig)
		if err != nil {
			return nil, fmt.Errorf("failed to create Azure credential: %w", err)
		}
		client, err := azsecrets.NewClient(s.vaultURL, cred, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create Azure Key Vault client: %w", err)
		}
		s.client = client
	}

	return s, nil
}

func azureCredential(storeConfig map[string]interface{}) (azcore.TokenCredential, error) {
	tenantID, _ := storeConfig["tenant_id"].(string)
	clientID, _ := storeConfig["client_id"].(string)
	clientSecret, _ := storeConfig["client_secret"].(string)

	if clientSecret != "" {
		return azidentity.NewClientSecretCredential(tenantID, clientID, clientSecret, nil)
	}
	return azidentity.NewDefaultAzureCredential(nil)
}

// Name returns the store name used to label the composite source.
func (s *AzureKeyVaultStore) Name() string {
	return s.name
}

// FetchAll retrieves the secret the context maps to and flattens its JSON
// value into key/value pairs.
func (s *AzureKeyVaultStore) FetchAll(ctx context.Context, name string) (map[string]string, error) {
	resp, err := s.client.GetSecret(ctx, keyVaultSecretName(name), "", nil)
	if err != nil {
		return nil, s.classifyError(name, err)
	}

	if resp.Value == nil {
		return nil, secretstore.NotFoundError{Store: s.name, Context: name}
	}

	values, err := flattenJSON([]byte(*resp.Value))
	if err != nil {
		return nil, secretstore.TransientError{Store: s.name, Context: name, Err: err}
	}
	return values, nil
}

// Validate checks connectivity by probing a well-known secret name. A
// NotFound answer still proves the vault is reachable and readable.
func (s *AzureKeyVaultStore) Validate(ctx context.Context) error {
	_, err := s.FetchAll(ctx, "secretsource-probe")
	if err == nil || secretstore.IsNotFound(err) {
		return nil
	}
	return err
}

func (s *AzureKeyVaultStore) classifyError(name string, err error) error {
	var respErr *azcore.ResponseError
	if errors.As(err, &respErr) {
		switch respErr.StatusCode {
		case 404:
			return secretstore.NotFoundError{Store: s.name, Context: name}
		case 401, 403:
			return secretstore.AccessDeniedError{
				Store:   s.name,
				Context: name,
				Message: fmt.Sprintf("status %d (%s)", respErr.StatusCode, respErr.ErrorCode),
			}
		}
	}
	return secretstore.TransientError{Store: s.name, Context: name, Err: err}
}

// keyVaultSecretName sanitizes a context name into a legal Key Vault secret
// name: alphanumerics and dashes only.
func keyVaultSecretName(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-':
			b.WriteRune(r)
		default:
			b.WriteRune('-')
		}
	}
	return b.String()
}
