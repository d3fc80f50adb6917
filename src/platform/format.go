package platform

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Output keys, in the order they are written.
const (
	KeyOS         = "os"
	KeyBuildOS    = "build-os"
	KeyContainer  = "container"
	KeyTestMatrix = "test-matrix"
	KeyCacheSet   = "cache-set"
)

// Field is one key=value output line with a JSON-encoded value.
type Field struct {
	Key   string
	Value string
}

// Fields returns the record as JSON-encoded output fields. An absent
// container encodes as null.
func (r Record) Fields() ([]Field, error) {
	var container any
	if r.Container != "" {
		container = r.Container
	}

	values := []struct {
		key string
		v   any
	}{
		{KeyOS, r.OS},
		{KeyBuildOS, r.BuildOS},
		{KeyContainer, container},
		{KeyTestMatrix, r.TestMatrix},
		{KeyCacheSet, r.CacheSet},
	}

	fields := make([]Field, 0, len(values))
	for _, kv := range values {
		enc, err := encodeJSON(kv.v)
		if err != nil {
			return nil, fmt.Errorf("failed to encode %s: %w", kv.key, err)
		}
		fields = append(fields, Field{Key: kv.key, Value: enc})
	}
	return fields, nil
}

// Format renders the record as shell-consumable key=value lines, suitable for
// stdout and for appending to $GITHUB_OUTPUT.
func (r Record) Format() (string, error) {
	fields, err := r.Fields()
	if err != nil {
		return "", err
	}

	var b strings.Builder
	for _, f := range fields {
		b.WriteString(f.Key)
		b.WriteByte('=')
		b.WriteString(f.Value)
		b.WriteByte('\n')
	}
	return b.String(), nil
}

// encodeJSON is compact JSON without HTML escaping.
func encodeJSON(v any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}
