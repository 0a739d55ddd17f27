package stores

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager/types"
	"github.com/systmms/secretsource/pkg/secretstore"
)

// SecretsManagerClientAPI defines the interface for AWS Secrets Manager
// operations. This allows for mocking in tests.
type SecretsManagerClientAPI interface {
	GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
	ListSecrets(ctx context.Context, params *secretsmanager.ListSecretsInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.ListSecretsOutput, error)
}

// AWSSecretsManagerStore fetches context bundles from AWS Secrets Manager.
// Each context is a secret whose string value is a JSON object of
// key/value pairs.
type AWSSecretsManagerStore struct {
	name     string
	client   SecretsManagerClientAPI
	region   string
	endpoint string // Optional custom endpoint for LocalStack or testing
}

// SecretsManagerOption is a functional option for configuring the store.
type SecretsManagerOption func(*AWSSecretsManagerStore)

// WithSecretsManagerClient sets a custom Secrets Manager client (for testing).
func WithSecretsManagerClient(client SecretsManagerClientAPI) SecretsManagerOption {
	return func(s *AWSSecretsManagerStore) {
		s.client = client
	}
}

// NewAWSSecretsManagerStore creates a new AWS Secrets Manager store.
func NewAWSSecretsManagerStore(storeConfig map[string]interface{}, opts ...SecretsManagerOption) (*AWSSecretsManagerStore, error) {
	region := "us-east-1"
	if r, ok := storeConfig["region"].(string); ok && r != "" {
		region = r
	}

	var endpoint string
	if e, ok := storeConfig["endpoint"].(string); ok && e != "" {
		endpoint = e
	}

	// Optional static credentials for LocalStack/testing
	var accessKeyID, secretAccessKey string
	if ak, ok := storeConfig["access_key_id"].(string); ok && ak != "" {
		accessKeyID = ak
	}
	if sk, ok := storeConfig["secret_access_key"].(string); ok && sk != "" {
		secretAccessKey = sk
	}

	s := &AWSSecretsManagerStore{
		name:     "aws-secrets-manager",
		region:   region,
		endpoint: endpoint,
	}

	for _, opt := range opts {
		opt(s)
	}

	// If no client was provided via options, create a real one.
	if s.client == nil {
		var configOpts []func(*awsconfig.LoadOptions) error
		configOpts = append(configOpts, awsconfig.WithRegion(region))

		if accessKeyID != "" && secretAccessKey != "" {
			configOpts = append(configOpts, awsconfig.WithCredentialsProvider(
				credentials.NewStaticCredentialsProvider(accessKeyID, secretAccessKey, ""),
			))
		}

		cfg, err := awsconfig.LoadDefaultConfig(context.Background(), configOpts...)
		if err != nil {
			return nil, fmt.Errorf("failed to load AWS config: %w", err)
		}

		var clientOpts []func(*secretsmanager.Options)
		if endpoint != "" {
			clientOpts = append(clientOpts, func(o *secretsmanager.Options) {
				o.BaseEndpoint = &endpoint
			})
		}
		s.client = secretsmanager.NewFromConfig(cfg, clientOpts...)
	}

	return s, nil
}

// Name returns the store name used to label the composite source.
func (s *AWSSecretsManagerStore) Name() string {
	return s.name
}

// FetchAll retrieves the secret stored under the context name and flattens
// its JSON value into key/value pairs.
func (s *AWSSecretsManagerStore) FetchAll(ctx context.Context, name string) (map[string]string, error) {
	input := &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(name),
	}

	result, err := s.client.GetSecretValue(ctx, input)
	if err != nil {
		return nil, s.classifyError(name, err)
	}

	var payload []byte
	switch {
	case result.SecretString != nil:
		payload = []byte(*result.SecretString)
	case result.SecretBinary != nil:
		payload = result.SecretBinary
	default:
		return nil, secretstore.NotFoundError{Store: s.name, Context: name}
	}

	values, err := flattenJSON(payload)
	if err != nil {
		return nil, secretstore.TransientError{Store: s.name, Context: name, Err: err}
	}
	return values, nil
}

// Validate checks that credentials allow listing secrets.
func (s *AWSSecretsManagerStore) Validate(ctx context.Context) error {
	input := &secretsmanager.ListSecretsInput{
		MaxResults: aws.Int32(1),
	}

	if _, err := s.client.ListSecrets(ctx, input); err != nil {
		return secretstore.AccessDeniedError{
			Store:   s.name,
			Message: fmt.Sprintf("AWS authentication failed: %v", err),
		}
	}
	return nil
}

// classifyError maps AWS SDK errors onto the secretstore error taxonomy.
func (s *AWSSecretsManagerStore) classifyError(name string, err error) error {
	var notFound *types.ResourceNotFoundException
	if errors.As(err, &notFound) {
		return secretstore.NotFoundError{Store: s.name, Context: name}
	}

	if isAWSAccessError(err) {
		return secretstore.AccessDeniedError{
			Store:   s.name,
			Context: name,
			Message: err.Error(),
		}
	}

	return secretstore.TransientError{Store: s.name, Context: name, Err: err}
}

func isAWSAccessError(err error) bool {
	errStr := err.Error()
	return strings.Contains(errStr, "AccessDenied") ||
		strings.Contains(errStr, "UnauthorizedOperation") ||
		strings.Contains(errStr, "InvalidUserID") ||
		strings.Contains(errStr, "Forbidden") ||
		strings.Contains(errStr, "UnrecognizedClientException")
}
