package store

import (
	"encoding/json"

	"abrechnung/internal/core"
)

// encodeBills serializes the collection for the slot. Dates serialize to
// their tagged form (see core.Date), so the blob round-trips them as real
// date values.
func encodeBills(bills []core.Bill) (string, error) {
	if bills == nil {
		bills = []core.Bill{}
	}
	raw, err := json.Marshal(bills)
	if err != nil {
		return "", &SerializationError{Op: "encode", Err: err}
	}
	return string(raw), nil
}

// decodeBills parses slot content. The empty string means a never-written
// slot and decodes to an empty collection.
func decodeBills(value string) ([]core.Bill, error) {
	if value == "" {
		return []core.Bill{}, nil
	}
	var bills []core.Bill
	if err := json.Unmarshal([]byte(value), &bills); err != nil {
		return nil, &SerializationError{Op: "decode", Err: err}
	}
	if bills == nil {
		bills = []core.Bill{}
	}
	return bills, nil
}
