package indexer

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/mitgajera/Blockchain-indexer/app/models"
)

// TransactionEvent is one item of a webhook delivery. Data is the untrusted,
// schema-free payload: a flat JSON object mapping field names to values.
type TransactionEvent struct {
	Type      models.TransactionType `json:"type"`
	Signature string                 `json:"signature"`
	Slot      int64                  `json:"slot"`
	Timestamp int64                  `json:"timestamp"`
	Data      json.RawMessage        `json:"data"`
}

// WebhookPayload is one webhook delivery addressed to a single user.
type WebhookPayload struct {
	Transactions []TransactionEvent `json:"transactions"`
}

// decodeOrderedObject decodes a flat JSON object into parallel key/value
// slices preserving the document's key order. Insert column ordering must be
// deterministic for a given input, and Go maps would destroy it.
func decodeOrderedObject(raw json.RawMessage) ([]string, []any, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, nil, nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, nil, fmt.Errorf("payload is not valid JSON: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, nil, fmt.Errorf("payload must be a JSON object")
	}

	var keys []string
	var values []any
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, nil, fmt.Errorf("payload is not valid JSON: %w", err)
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, nil, fmt.Errorf("payload key is not a string")
		}

		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil, nil, fmt.Errorf("payload value for %q is not valid JSON: %w", key, err)
		}

		keys = append(keys, key)
		values = append(values, bindableValue(value))
	}

	if _, err := dec.Token(); err != nil {
		return nil, nil, fmt.Errorf("payload is not valid JSON: %w", err)
	}
	return keys, values, nil
}

// bindableValue converts a raw JSON value into something a SQL driver can
// bind. Scalars become Go scalars; objects and arrays are bound as their
// JSON text.
func bindableValue(raw json.RawMessage) any {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil
	}
	switch trimmed[0] {
	case '{', '[':
		return string(trimmed)
	}

	var v any
	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.UseNumber()
	if err := dec.Decode(&v); err != nil {
		return string(trimmed)
	}
	if num, ok := v.(json.Number); ok {
		if i, err := num.Int64(); err == nil {
			return i
		}
		if f, err := num.Float64(); err == nil {
			return f
		}
		return num.String()
	}
	return v
}
