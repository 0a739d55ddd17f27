package stores

import (
	"context"
	"fmt"
	"os"
	"strings"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	"cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	dserrors "github.com/systmms/secretsource/internal/errors"
	"github.com/systmms/secretsource/pkg/secretstore"
)

// GCPSecretManagerStore fetches context bundles from Google Cloud Secret
// Manager. Secret Manager IDs cannot contain slashes, so the context name
// is sanitized with a configurable replacement character before lookup;
// the secret payload is a JSON object of key/value pairs.
type GCPSecretManagerStore struct {
	name        string
	client      *secretmanager.Client
	projectID   string
	replacement string
}

// NewGCPSecretManagerStore creates a new GCP Secret Manager store.
func NewGCPSecretManagerStore(ctx context.Context, storeConfig map[string]interface{}) (*GCPSecretManagerStore, error) {
	s := &GCPSecretManagerStore{
		name:        "gcp-secret-manager",
		replacement: "-",
	}

	if projectID, ok := storeConfig["project_id"].(string); ok {
		s.projectID = projectID
	}
	if replacement, ok := storeConfig["replacement"].(string); ok && replacement != "" {
		s.replacement = replacement
	}

	if s.projectID == "" {
		if projectID := gcpProjectFromEnv(); projectID != "" {
			s.projectID = projectID
		} else {
			return nil, dserrors.ConfigError{
				Field:      "project_id",
				Message:    "project_id is required for GCP Secret Manager",
				Suggestion: "Set project_id in the store config or the GOOGLE_CLOUD_PROJECT environment variable",
			}
		}
	}

	var clientOptions []option.ClientOption
	if keyPath, ok := storeConfig["service_account_key_path"].(string); ok && keyPath != "" {
		clientOptions = append(clientOptions, option.WithCredentialsFile(keyPath))
	}

	client, err := secretmanager.NewClient(ctx, clientOptions...)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCP Secret Manager client: %w", err)
	}
	s.client = client

	return s, nil
}

func gcpProjectFromEnv() string {
	for _, key := range []string{"GOOGLE_CLOUD_PROJECT", "GCLOUD_PROJECT", "GCP_PROJECT"} {
		if projectID := os.Getenv(key); projectID != "" {
			return projectID
		}
	}
	return ""
}

// Name returns the store name used to label the composite source.
func (s *GCPSecretManagerStore) Name() string {
	return s.name
}

// FetchAll accesses the latest version of the secret the context maps to
// and flattens its JSON payload into key/value pairs.
func (s *GCPSecretManagerStore) FetchAll(ctx context.Context, name string) (map[string]string, error) {
	resource := fmt.Sprintf("projects/%s/secrets/%s/versions/latest", s.projectID, s.secretID(name))

	resp, err := s.client.AccessSecretVersion(ctx, &secretmanagerpb.AccessSecretVersionRequest{
		Name: resource,
	})
	if err != nil {
		return nil, s.classifyError(name, err)
	}

	values, err := flattenJSON(resp.GetPayload().GetData())
	if err != nil {
		return nil, secretstore.TransientError{Store: s.name, Context: name, Err: err}
	}
	return values, nil
}

// Validate checks that credentials allow listing secrets in the project.
func (s *GCPSecretManagerStore) Validate(ctx context.Context) error {
	it := s.client.ListSecrets(ctx, &secretmanagerpb.ListSecretsRequest{
		Parent:   "projects/" + s.projectID,
		PageSize: 1,
	})

	if _, err := it.Next(); err != nil && err != iterator.Done {
		return secretstore.AccessDeniedError{
			Store:   s.name,
			Message: fmt.Sprintf("GCP authentication failed: %v", err),
		}
	}
	return nil
}

// Close releases the underlying gRPC connection.
func (s *GCPSecretManagerStore) Close() error {
	return s.client.Close()
}

// secretID sanitizes a context name into a legal Secret Manager ID by
// replacing path separators.
func (s *GCPSecretManagerStore) secretID(name string) string {
	return strings.ReplaceAll(name, "/", s.replacement)
}

func (s *GCPSecretManagerStore) classifyError(name string, err error) error {
	switch status.Code(err) {
	case codes.NotFound:
		return secretstore.NotFoundError{Store: s.name, Context: name}
	case codes.PermissionDenied, codes.Unauthenticated:
		return secretstore.AccessDeniedError{
			Store:   s.name,
			Context: name,
			Message: status.Convert(err).Message(),
		}
	default:
		return secretstore.TransientError{Store: s.name, Context: name, Err: err}
	}
}
