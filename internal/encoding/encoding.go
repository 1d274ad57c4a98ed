// Package encoding converts JSON-serializable values to and from URL-safe
// share tokens. A token is the base64url encoding (no padding) of the value's
// JSON text, so it can sit in a query parameter without further escaping.
package encoding

import (
	"encoding/base64"
	"encoding/json"
	"strings"
)

// EncodeJSONParam serializes v to JSON and returns its URL-safe token.
func EncodeJSONParam(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(data), nil
}

// DecodeJSONParam reverses EncodeJSONParam. On any failure at any stage
// (malformed base64, invalid JSON) it returns nil; callers must treat
// absence as "no data", not as a fatal error.
//
// Tokens produced by other encoders are tolerated: padded input and the
// standard +/ alphabet are normalized before decoding.
func DecodeJSONParam[T any](param string) *T {
	if param == "" {
		return nil
	}

	normalized := strings.NewReplacer("+", "-", "/", "_").Replace(param)
	normalized = strings.TrimRight(normalized, "=")

	data, err := base64.RawURLEncoding.DecodeString(normalized)
	if err != nil {
		return nil
	}

	var out T
	if err := json.Unmarshal(data, &out); err != nil {
		return nil
	}
	return &out
}
