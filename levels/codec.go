package levels

import (
	"encoding/json"
	"fmt"
)

// Encode marshals a level to its persisted form: a JSON array of rows.
func Encode(l Level) ([]byte, error) {
	data, err := json.Marshal(l)
	if err != nil {
		return nil, fmt.Errorf("levels: encode: %w", err)
	}
	return data, nil
}

// Decode parses a persisted level. Shape and ball checks are left to
// Validate so editors can round-trip work in progress.
func Decode(data []byte) (Level, error) {
	var lvl Level
	if err := json.Unmarshal(data, &lvl); err != nil {
		return nil, fmt.Errorf("levels: decode: %w", err)
	}
	return lvl, nil
}

// EncodeSet marshals a list of levels as one JSON array, indented for
// hand editing.
func EncodeSet(set []Level) ([]byte, error) {
	if set == nil {
		set = []Level{}
	}
	data, err := json.MarshalIndent(set, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("levels: encode set: %w", err)
	}
	return data, nil
}

// DecodeSet parses a JSON array of levels and validates each one.
func DecodeSet(data []byte) ([]Level, error) {
	var set []Level
	if err := json.Unmarshal(data, &set); err != nil {
		return nil, fmt.Errorf("levels: decode set: %w", err)
	}
	for i, lvl := range set {
		if err := lvl.Validate(); err != nil {
			return nil, fmt.Errorf("levels: level %d: %w", i, err)
		}
	}
	return set, nil
}
