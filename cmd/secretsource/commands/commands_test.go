package commands

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/systmms/secretsource/internal/config"
	"github.com/systmms/secretsource/internal/logging"
)

const staticConfig = `
store:
  type: static
  secrets:
    secret/orders_dev:
      db.password: dev-secret
    secret/orders:
      db.password: base-secret
      db.host: localhost
    secret/application_dev: {}
    secret/application:
      region: eu-west-1
naming:
  name: orders
profiles:
  - dev
`

func testConfig(t *testing.T, content string) *config.Config {
	t.Helper()
	path := filepath.Join(t.TempDir(), "secretsource.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return &config.Config{
		Path:   path,
		Logger: logging.NewWithWriter(io.Discard, false, true),
	}
}

func runCommand(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestContextsCommand(t *testing.T) {
	cfg := testConfig(t, staticConfig)

	out, err := runCommand(t, NewContextsCommand(cfg))
	require.NoError(t, err)
	assert.Equal(t, "secret/orders_dev\nsecret/orders\nsecret/application_dev\nsecret/application\n", out)
}

func TestContextsCommandJSON(t *testing.T) {
	cfg := testConfig(t, staticConfig)

	out, err := runCommand(t, NewContextsCommand(cfg), "--json")
	require.NoError(t, err)

	var list []string
	require.NoError(t, json.Unmarshal([]byte(out), &list))
	assert.Equal(t, []string{
		"secret/orders_dev",
		"secret/orders",
		"secret/application_dev",
		"secret/application",
	}, list)
}

func TestGetCommandMostSpecificWins(t *testing.T) {
	cfg := testConfig(t, staticConfig)

	out, err := runCommand(t, NewGetCommand(cfg), "db.password")
	require.NoError(t, err)
	assert.Equal(t, "dev-secret", out, "the profile-specific context shadows the base one")
}

func TestGetCommandFallsThroughToDefaultContext(t *testing.T) {
	cfg := testConfig(t, staticConfig)

	out, err := runCommand(t, NewGetCommand(cfg), "region")
	require.NoError(t, err)
	assert.Equal(t, "eu-west-1", out)
}

func TestGetCommandMissingKey(t *testing.T) {
	cfg := testConfig(t, staticConfig)

	_, err := runCommand(t, NewGetCommand(cfg), "no.such.key")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no.such.key")
}

func TestGetCommandJSON(t *testing.T) {
	cfg := testConfig(t, staticConfig)

	out, err := runCommand(t, NewGetCommand(cfg), "db.password", "--json")
	require.NoError(t, err)

	var result struct {
		Key      string   `json:"key"`
		Value    string   `json:"value"`
		Source   string   `json:"source"`
		Contexts []string `json:"contexts"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, "db.password", result.Key)
	assert.Equal(t, "dev-secret", result.Value)
	assert.Equal(t, "static", result.Source)

	// Every derived context must be fetchable: fail-fast is on by default,
	// so a gap in the store would abort the whole call.
	assert.Equal(t, []string{
		"secret/orders_dev",
		"secret/orders",
		"secret/application_dev",
		"secret/application",
	}, result.Contexts)
}

func TestRenderCommandEnvFormat(t *testing.T) {
	cfg := testConfig(t, staticConfig)

	out, err := runCommand(t, NewRenderCommand(cfg))
	require.NoError(t, err)
	assert.Equal(t, "DB_HOST=localhost\nDB_PASSWORD=dev-secret\nREGION=eu-west-1\n", out)
}

func TestRenderCommandExportFormat(t *testing.T) {
	cfg := testConfig(t, staticConfig)

	out, err := runCommand(t, NewRenderCommand(cfg), "--format", "export")
	require.NoError(t, err)
	assert.Contains(t, out, "export DB_PASSWORD='dev-secret'\n")
}

func TestRenderCommandJSONFormat(t *testing.T) {
	cfg := testConfig(t, staticConfig)

	out, err := runCommand(t, NewRenderCommand(cfg), "--format", "json")
	require.NoError(t, err)

	var merged map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &merged))
	assert.Equal(t, map[string]string{
		"db.host":     "localhost",
		"db.password": "dev-secret",
		"region":      "eu-west-1",
	}, merged)
}

func TestRenderCommandRejectsUnknownFormat(t *testing.T) {
	cfg := testConfig(t, staticConfig)

	_, err := runCommand(t, NewRenderCommand(cfg), "--format", "toml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown output format")
}

func TestRenderCommandFailFastOnMissingExplicitName(t *testing.T) {
	cfg := testConfig(t, `
store:
  type: static
  secrets: {}
naming:
  secretNames:
    - secret/declared-but-absent
`)

	_, err := runCommand(t, NewRenderCommand(cfg))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "secret/declared-but-absent")
}

func TestDoctorCommandWithoutLogger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "secretsource.yaml")
	require.NoError(t, os.WriteFile(path, []byte(staticConfig), 0o600))

	// Constructed outside the root-command wiring no logger is set; the
	// command must fall back to its own instead of panicking.
	cfg := &config.Config{Path: path}

	_, err := runCommand(t, NewDoctorCommand(cfg))
	assert.NoError(t, err)
}

func TestEnvKey(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "DB_PASSWORD", envKey("db.password"))
	assert.Equal(t, "API_KEY", envKey("api-key"))
	assert.Equal(t, "PLAIN", envKey("plain"))
}
