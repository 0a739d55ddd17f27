package stores

import (
	"context"
	"fmt"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/ssm"
	ssmtypes "github.com/aws/aws-sdk-go-v2/service/ssm/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/systmms/secretsource/pkg/secretstore"
)

type mockSSMClient struct {
	getParametersByPath func(ctx context.Context, params *ssm.GetParametersByPathInput, optFns ...func(*ssm.Options)) (*ssm.GetParametersByPathOutput, error)
}

func (m *mockSSMClient) GetParametersByPath(ctx context.Context, params *ssm.GetParametersByPathInput, optFns ...func(*ssm.Options)) (*ssm.GetParametersByPathOutput, error) {
	return m.getParametersByPath(ctx, params, optFns...)
}

func parameter(name, value string) ssmtypes.Parameter {
	return ssmtypes.Parameter{Name: &name, Value: &value}
}

func TestAWSParameterStoreFetchAll(t *testing.T) {
	t.Parallel()

	mock := &mockSSMClient{
		getParametersByPath: func(_ context.Context, params *ssm.GetParametersByPathInput, _ ...func(*ssm.Options)) (*ssm.GetParametersByPathOutput, error) {
			assert.Equal(t, "/secret/orders", *params.Path)
			assert.True(t, *params.Recursive)
			assert.True(t, *params.WithDecryption)
			return &ssm.GetParametersByPathOutput{
				Parameters: []ssmtypes.Parameter{
					parameter("/secret/orders/db/host", "localhost"),
					parameter("/secret/orders/api-key", "abc"),
				},
			}, nil
		},
	}

	store, err := NewAWSParameterStore(nil, WithSSMClient(mock))
	require.NoError(t, err)
	assert.Equal(t, "aws-parameter-store", store.Name())

	values, err := store.FetchAll(context.Background(), "secret/orders")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"db.host": "localhost",
		"api-key": "abc",
	}, values)
}

func TestAWSParameterStoreFetchAllPagination(t *testing.T) {
	t.Parallel()

	token := "page-2"
	calls := 0
	mock := &mockSSMClient{
		getParametersByPath: func(_ context.Context, params *ssm.GetParametersByPathInput, _ ...func(*ssm.Options)) (*ssm.GetParametersByPathOutput, error) {
			calls++
			if params.NextToken == nil {
				return &ssm.GetParametersByPathOutput{
					Parameters: []ssmtypes.Parameter{parameter("/secret/orders/a", "1")},
					NextToken:  &token,
				}, nil
			}
			assert.Equal(t, token, *params.NextToken)
			return &ssm.GetParametersByPathOutput{
				Parameters: []ssmtypes.Parameter{parameter("/secret/orders/b", "2")},
			}, nil
		},
	}

	store, err := NewAWSParameterStore(nil, WithSSMClient(mock))
	require.NoError(t, err)

	values, err := store.FetchAll(context.Background(), "secret/orders")
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	assert.Equal(t, map[string]string{"a": "1", "b": "2"}, values)
}

func TestAWSParameterStoreFetchAllEmptyPathIsNotFound(t *testing.T) {
	t.Parallel()

	mock := &mockSSMClient{
		getParametersByPath: func(_ context.Context, _ *ssm.GetParametersByPathInput, _ ...func(*ssm.Options)) (*ssm.GetParametersByPathOutput, error) {
			return &ssm.GetParametersByPathOutput{}, nil
		},
	}

	store, err := NewAWSParameterStore(nil, WithSSMClient(mock))
	require.NoError(t, err)

	_, err = store.FetchAll(context.Background(), "secret/orders")
	assert.True(t, secretstore.IsNotFound(err))
}

func TestAWSParameterStoreErrorClassification(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		err   error
		check func(t *testing.T, err error)
	}{
		{
			name: "access_denied",
			err:  fmt.Errorf("AccessDeniedException: not authorized to perform ssm:GetParametersByPath"),
			check: func(t *testing.T, err error) {
				assert.True(t, secretstore.IsAccessDenied(err))
			},
		},
		{
			name: "network_error_is_transient",
			err:  fmt.Errorf("dial tcp: connection refused"),
			check: func(t *testing.T, err error) {
				assert.True(t, secretstore.IsTransient(err))
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			mock := &mockSSMClient{
				getParametersByPath: func(_ context.Context, _ *ssm.GetParametersByPathInput, _ ...func(*ssm.Options)) (*ssm.GetParametersByPathOutput, error) {
					return nil, tt.err
				},
			}

			store, err := NewAWSParameterStore(nil, WithSSMClient(mock))
			require.NoError(t, err)

			_, err = store.FetchAll(context.Background(), "secret/orders")
			require.Error(t, err)
			tt.check(t, err)
		})
	}
}

func TestParameterKey(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path string
		name string
		want string
	}{
		{path: "/secret/orders", name: "/secret/orders/db/host", want: "db.host"},
		{path: "/secret/orders", name: "/secret/orders/key", want: "key"},
		{path: "/secret/orders", name: "/secret/orders/a/b/c", want: "a.b.c"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, parameterKey(tt.path, tt.name))
	}
}
