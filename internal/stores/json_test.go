package stores

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlattenJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		payload string
		want    map[string]string
	}{
		{
			name:    "flat_strings",
			payload: `{"username": "admin", "password": "secret123"}`,
			want:    map[string]string{"username": "admin", "password": "secret123"},
		},
		{
			name:    "nested_objects_become_dotted_keys",
			payload: `{"db": {"host": "localhost", "creds": {"user": "app"}}}`,
			want:    map[string]string{"db.host": "localhost", "db.creds.user": "app"},
		},
		{
			name:    "numbers_keep_their_notation",
			payload: `{"port": 5432, "ratio": 0.25}`,
			want:    map[string]string{"port": "5432", "ratio": "0.25"},
		},
		{
			name:    "booleans_and_null",
			payload: `{"enabled": true, "disabled": false, "optional": null}`,
			want:    map[string]string{"enabled": "true", "disabled": "false", "optional": ""},
		},
		{
			name:    "arrays_kept_as_json",
			payload: `{"hosts": ["h1", "h2"]}`,
			want:    map[string]string{"hosts": `["h1","h2"]`},
		},
		{
			name:    "empty_object",
			payload: `{}`,
			want:    map[string]string{},
		},
		{
			name:    "unicode_values",
			payload: `{"message": "héllo 世界"}`,
			want:    map[string]string{"message": "héllo 世界"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := flattenJSON([]byte(tt.payload))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFlattenJSONRejectsNonObjects(t *testing.T) {
	t.Parallel()

	for _, payload := range []string{`"just a string"`, `[1,2,3]`, `not json`, ``} {
		_, err := flattenJSON([]byte(payload))
		assert.Error(t, err, "payload %q", payload)
	}
}
