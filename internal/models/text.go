package models

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Text is a display value the backend may send as a string, a number or null.
// Positions in particular arrive as integers from the database and as strings
// from the lookup service.
type Text string

// UnmarshalJSON keeps the literal text of strings and numbers
func (t *Text) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*t = ""
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = Text(s)
	default:
		*t = Text(data)
	}
	return nil
}

// String returns the raw text
func (t Text) String() string {
	return string(t)
}

// Or returns the text, or fallback when it is blank
func (t Text) Or(fallback string) string {
	if strings.TrimSpace(string(t)) == "" {
		return fallback
	}
	return string(t)
}
