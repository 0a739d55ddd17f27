package stores

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/systmms/secretsource/pkg/secretstore"
)

// SSMClientAPI defines the interface for AWS SSM Parameter Store
// operations. This allows for mocking in tests.
type SSMClientAPI interface {
	GetParametersByPath(ctx context.Context, params *ssm.GetParametersByPathInput, optFns ...func(*ssm.Options)) (*ssm.GetParametersByPathOutput, error)
}

// AWSParameterStore fetches context bundles from AWS Systems Manager
// Parameter Store. A context maps to the path "/<context>" and every
// parameter below it becomes one entry, with path segments joined by dots.
type AWSParameterStore struct {
	name           string
	client         SSMClientAPI
	region         string
	withDecryption bool
}

// ParameterStoreOption is a functional option for configuring the store.
type ParameterStoreOption func(*AWSParameterStore)

// WithSSMClient sets a custom SSM client (for testing).
func WithSSMClient(client SSMClientAPI) ParameterStoreOption {
	return func(s *AWSParameterStore) {
		s.client = client
	}
}

// NewAWSParameterStore creates a new AWS SSM Parameter Store store.
func NewAWSParameterStore(storeConfig map[string]interface{}, opts ...ParameterStoreOption) (*AWSParameterStore, error) {
	s := &AWSParameterStore{
		name:           "aws-parameter-store",
		withDecryption: true, // Default to decrypting SecureString parameters
	}

	if region, ok := storeConfig["region"].(string); ok {
		s.region = region
	}
	if decrypt, ok := storeConfig["with_decryption"].(bool); ok {
		s.withDecryption = decrypt
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.client == nil {
		var configOpts []func(*awsconfig.LoadOptions) error
		if s.region != "" {
			configOpts = append(configOpts, awsconfig.WithRegion(s.region))
		}

		cfg, err := awsconfig.LoadDefaultConfig(context.Background(), configOpts...)
		if err != nil {
			return nil, fmt.Errorf("failed to load AWS config: %w", err)
		}
		s.client = ssm.NewFromConfig(cfg)
	}

	return s, nil
}

// Name returns the store name used to label the composite source.
func (s *AWSParameterStore) Name() string {
	return s.name
}

// FetchAll retrieves every parameter below "/<name>", following pagination.
// A context with no parameters at all reports NotFoundError.
func (s *AWSParameterStore) FetchAll(ctx context.Context, name string) (map[string]string, error) {
	path := "/" + strings.TrimPrefix(name, "/")
	values := make(map[string]string)

	input := &ssm.GetParametersByPathInput{
		Path:           aws.String(path),
		Recursive:      aws.Bool(true),
		WithDecryption: aws.Bool(s.withDecryption),
	}

	for {
		result, err := s.client.GetParametersByPath(ctx, input)
		if err != nil {
			return nil, s.classifyError(name, err)
		}

		for _, param := range result.Parameters {
			if param.Name == nil || param.Value == nil {
				continue
			}
			values[parameterKey(path, *param.Name)] = *param.Value
		}

		if result.NextToken == nil {
			break
		}
		input.NextToken = result.NextToken
	}

	if len(values) == 0 {
		return nil, secretstore.NotFoundError{Store: s.name, Context: name}
	}
	return values, nil
}

// Validate checks that credentials allow reading parameters.
func (s *AWSParameterStore) Validate(ctx context.Context) error {
	input := &ssm.GetParametersByPathInput{
		Path:       aws.String("/"),
		MaxResults: aws.Int32(1),
	}

	if _, err := s.client.GetParametersByPath(ctx, input); err != nil {
		return secretstore.AccessDeniedError{
			Store:   s.name,
			Message: fmt.Sprintf("AWS authentication failed: %v", err),
		}
	}
	return nil
}

func (s *AWSParameterStore) classifyError(name string, err error) error {
	if isAWSAccessError(err) {
		return secretstore.AccessDeniedError{
			Store:   s.name,
			Context: name,
			Message: err.Error(),
		}
	}
	return secretstore.TransientError{Store: s.name, Context: name, Err: err}
}

// parameterKey relativizes a full parameter name to its context path and
// joins the remaining segments with dots: "/secret/orders/db/host" under
// "/secret/orders" becomes "db.host".
func parameterKey(path, name string) string {
	key := strings.TrimPrefix(name, path)
	key = strings.TrimPrefix(key, "/")
	return strings.ReplaceAll(key, "/", ".")
}
