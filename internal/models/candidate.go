package models

import (
	"encoding/json"
	"fmt"
)

// Candidate is an AI-resolved race proposal awaiting user confirmation. It
// remembers the exact document the server produced so that confirming sends
// back the same payload, including fields this client does not model.
type Candidate struct {
	OfficialName string             `json:"nombre_oficial"`
	Sport        string             `json:"deporte"`
	Date         string             `json:"fecha"`
	Location     string             `json:"lugar"`
	Distances    []string           `json:"distancias"`
	OfficialURL  *string            `json:"url_oficial"`
	Status       RegistrationStatus `json:"estado_inscripcion"`

	raw json.RawMessage
}

type candidateFields Candidate

// UnmarshalJSON decodes the known fields and keeps the raw document
func (c *Candidate) UnmarshalJSON(data []byte) error {
	var fields candidateFields
	if err := json.Unmarshal(data, &fields); err != nil {
		return fmt.Errorf("decode candidate: %w", err)
	}
	*c = Candidate(fields)
	c.raw = append(json.RawMessage(nil), data...)
	return nil
}

// MarshalJSON re-emits the server document when there is one
func (c Candidate) MarshalJSON() ([]byte, error) {
	if len(c.raw) > 0 {
		return c.raw, nil
	}
	return json.Marshal(candidateFields(c))
}

// URL returns the official URL or an empty string
func (c *Candidate) URL() string {
	if c.OfficialURL == nil {
		return ""
	}
	return *c.OfficialURL
}
