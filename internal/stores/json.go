package stores

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// flattenJSON parses a secret payload as a JSON object and flattens it into
// string key/value pairs. Nested objects become dotted keys
// ({"db":{"host":"x"}} -> "db.host"), scalars are stringified, and arrays
// are kept as compact JSON.
func flattenJSON(raw []byte) (map[string]string, error) {
	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.UseNumber()

	var doc map[string]interface{}
	if err := decoder.Decode(&doc); err != nil {
		return nil, fmt.Errorf("secret value is not a JSON object: %w", err)
	}

	values := make(map[string]string)
	if err := flattenInto(values, "", doc); err != nil {
		return nil, err
	}
	return values, nil
}

func flattenInto(values map[string]string, prefix string, doc map[string]interface{}) error {
	for key, val := range doc {
		name := key
		if prefix != "" {
			name = prefix + "." + key
		}

		switch v := val.(type) {
		case string:
			values[name] = v
		case json.Number:
			values[name] = v.String()
		case bool:
			values[name] = strconv.FormatBool(v)
		case nil:
			values[name] = ""
		case map[string]interface{}:
			if err := flattenInto(values, name, v); err != nil {
				return err
			}
		default:
			// Arrays and anything else are kept as compact JSON.
			encoded, err := json.Marshal(v)
			if err != nil {
				return fmt.Errorf("failed to encode value for %s: %w", name, err)
			}
			values[name] = string(encoded)
		}
	}
	return nil
}
