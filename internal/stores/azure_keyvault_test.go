package stores

import (
	"context"
	"fmt"
	"testing"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/security/keyvault/azsecrets"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dserrors "github.com/systmms/secretsource/internal/errors"
	"github.com/systmms/secretsource/pkg/secretstore"
)

type mockKeyVaultClient struct {
	getSecret func(ctx context.Context, name string, version string, options *azsecrets.GetSecretOptions) (azsecrets.GetSecretResponse, error)
}

func (m *mockKeyVaultClient) GetSecret(ctx context.Context, name string, version string, options *azsecrets.GetSecretOptions) (azsecrets.GetSecretResponse, error) {
	return m.getSecret(ctx, name, version, options)
}

func keyVaultConfig() map[string]interface{} {
	return map[string]interface{}{"vault_url": "https://test.vault.azure.net/"}
}

func TestAzureKeyVaultFetchAll(t *testing.T) {
	t.Parallel()

	mock := &mockKeyVaultClient{
		getSecret: func(_ context.Context, name, _ string, _ *azsecrets.GetSecretOptions) (azsecrets.GetSecretResponse, error) {
			assert.Equal(t, "secret-orders", name, "path separators are sanitized to dashes")
			return azsecrets.GetSecretResponse{
				Secret: azsecrets.Secret{Value: stringPtr(`{"db": {"host": "localhost"}}`)},
			}, nil
		},
	}

	store, err := NewAzureKeyVaultStore(keyVaultConfig(), WithKeyVaultClient(mock))
	require.NoError(t, err)
	assert.Equal(t, "azure-key-vault", store.Name())

	values, err := store.FetchAll(context.Background(), "secret/orders")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"db.host": "localhost"}, values)
}

func TestAzureKeyVaultRequiresVaultURL(t *testing.T) {
	t.Parallel()

	_, err := NewAzureKeyVaultStore(nil)
	require.Error(t, err)

	var cfgErr dserrors.ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "vault_url", cfgErr.Field)
}

func TestAzureKeyVaultErrorClassification(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		err   error
		check func(t *testing.T, err error)
	}{
		{
			name: "404_is_not_found",
			err:  &azcore.ResponseError{StatusCode: 404, ErrorCode: "SecretNotFound"},
			check: func(t *testing.T, err error) {
				assert.True(t, secretstore.IsNotFound(err))
			},
		},
		{
			name: "403_is_access_denied",
			err:  &azcore.ResponseError{StatusCode: 403, ErrorCode: "Forbidden"},
			check: func(t *testing.T, err error) {
				assert.True(t, secretstore.IsAccessDenied(err))
			},
		},
		{
			name: "401_is_access_denied",
			err:  &azcore.ResponseError{StatusCode: 401, ErrorCode: "Unauthorized"},
			check: func(t *testing.T, err error) {
				assert.True(t, secretstore.IsAccessDenied(err))
			},
		},
		{
			name: "other_errors_are_transient",
			err:  fmt.Errorf("connection reset"),
			check: func(t *testing.T, err error) {
				assert.True(t, secretstore.IsTransient(err))
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			mock := &mockKeyVaultClient{
				getSecret: func(_ context.Context, _, _ string, _ *azsecrets.GetSecretOptions) (azsecrets.GetSecretResponse, error) {
					return azsecrets.GetSecretResponse{}, tt.err
				},
			}

			store, err := NewAzureKeyVaultStore(keyVaultConfig(), WithKeyVaultClient(mock))
			require.NoError(t, err)

			_, err = store.FetchAll(context.Background(), "secret/orders")
			require.Error(t, err)
			tt.check(t, err)
		})
	}
}

func TestAzureKeyVaultValidate(t *testing.T) {
	t.Parallel()

	t.Run("not_found_probe_is_healthy", func(t *testing.T) {
		t.Parallel()

		mock := &mockKeyVaultClient{
			getSecret: func(_ context.Context, _, _ string, _ *azsecrets.GetSecretOptions) (azsecrets.GetSecretResponse, error) {
				return azsecrets.GetSecretResponse{}, &azcore.ResponseError{StatusCode: 404}
			},
		}

		store, err := NewAzureKeyVaultStore(keyVaultConfig(), WithKeyVaultClient(mock))
		require.NoError(t, err)
		assert.NoError(t, store.Validate(context.Background()))
	})

	t.Run("auth_failure_surfaces", func(t *testing.T) {
		t.Parallel()

		mock := &mockKeyVaultClient{
			getSecret: func(_ context.Context, _, _ string, _ *azsecrets.GetSecretOptions) (azsecrets.GetSecretResponse, error) {
				return azsecrets.GetSecretResponse{}, &azcore.ResponseError{StatusCode: 403}
			},
		}

		store, err := NewAzureKeyVaultStore(keyVaultConfig(), WithKeyVaultClient(mock))
		require.NoError(t, err)
		assert.True(t, secretstore.IsAccessDenied(store.Validate(context.Background())))
	})
}

func TestKeyVaultSecretName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{in: "secret/orders", want: "secret-orders"},
		{in: "secret/orders_dev", want: "secret-orders-dev"},
		{in: "plain-name", want: "plain-name"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, keyVaultSecretName(tt.in))
	}
}
