// Package errors provides user-facing error types with actionable
// suggestions.
package errors

import (
	"fmt"
	"strings"
)

// UserError represents an error that should be shown to the user with
// helpful context.
type UserError struct {
	Message    string
	Suggestion string
	Details    string
	Err        error
}

func (e UserError) Error() string {
	var parts []string

	if e.Message != "" {
		parts = append(parts, e.Message)
	} else if e.Err != nil {
		parts = append(parts, e.Err.Error())
	}

	if e.Details != "" {
		parts = append(parts, "\n  Details: "+e.Details)
	}

	if e.Suggestion != "" {
		parts = append(parts, "\n  💡 Try: "+e.Suggestion)
	}

	return strings.Join(parts, "")
}

func (e UserError) Unwrap() error {
	return e.Err
}

// ConfigError represents a configuration error with helpful context.
type ConfigError struct {
	Field      string
	Value      interface{}
	Message    string
	Suggestion string
}

func (e ConfigError) Error() string {
	msg := "Configuration error"
	if e.Field != "" {
		msg += fmt.Sprintf(" in field '%s'", e.Field)
	}
	if e.Value != nil {
		msg += fmt.Sprintf(" (value: %v)", e.Value)
	}
	msg += ": " + e.Message

	if e.Suggestion != "" {
		msg += "\n  💡 " + e.Suggestion
	}

	return msg
}

// StoreError enhances store-specific errors with a suggestion appropriate
// to the store type.
func StoreError(storeType, operation string, err error) error {
	return UserError{
		Message:    fmt.Sprintf("%s store error during %s", storeType, operation),
		Suggestion: storeSuggestion(storeType, err),
		Err:        err,
	}
}

func storeSuggestion(storeType string, err error) string {
	errStr := err.Error()

	switch storeType {
	case "aws.secretsmanager":
		if strings.Contains(errStr, "credentials") || strings.Contains(errStr, "authorization") {
			return "Configure AWS credentials: 'aws configure' or set AWS_PROFILE"
		}
		if strings.Contains(errStr, "access denied") || strings.Contains(errStr, "AccessDenied") {
			return "Check IAM permissions for secretsmanager:GetSecretValue"
		}
		if strings.Contains(errStr, "no secrets found") {
			return "Verify the secret name and region. List secrets with: 'aws secretsmanager list-secrets'"
		}

	case "aws.parameterstore":
		if strings.Contains(errStr, "access denied") || strings.Contains(errStr, "AccessDenied") {
			return "Check IAM permissions for ssm:GetParametersByPath"
		}
		if strings.Contains(errStr, "no secrets found") {
			return "Verify the parameter path. List parameters with: 'aws ssm describe-parameters'"
		}

	case "gcp.secretmanager":
		if strings.Contains(errStr, "access denied") || strings.Contains(errStr, "PermissionDenied") {
			return "Grant the secretmanager.versions.access role to the active credentials"
		}
		if strings.Contains(errStr, "no secrets found") {
			return "Verify the secret exists: 'gcloud secrets list'"
		}

	case "azure.keyvault":
		if strings.Contains(errStr, "access denied") {
			return "Check the Key Vault access policy or RBAC role for the active identity"
		}
		if strings.Contains(errStr, "no secrets found") {
			return "Verify the secret exists: 'az keyvault secret list --vault-name <vault>'"
		}
	}

	if strings.Contains(errStr, "timeout") {
		return "The operation timed out. Check your network connection and try again"
	}
	if strings.Contains(errStr, "connection refused") || strings.Contains(errStr, "no such host") {
		return "Unable to connect. Check your network and store configuration"
	}

	return ""
}
