package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// RaceID is the opaque identifier the backend assigns to a race. It is kept
// in its textual form whether the server sends it as a number or a string.
type RaceID string

// UnmarshalJSON accepts both numeric and string identifiers
func (id *RaceID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = RaceID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("race id must be a number or string: %w", err)
	}
	*id = RaceID(n.String())
	return nil
}

// String returns the identifier text
func (id RaceID) String() string {
	return string(id)
}

// RegistrationStatus is the open enum of registration labels stored with a race
type RegistrationStatus string

// Known registration statuses; the server may send others
const (
	StatusUnset     RegistrationStatus = ""
	StatusPending   RegistrationStatus = "pendiente"
	StatusConfirmed RegistrationStatus = "confirmada"
	StatusClosed    RegistrationStatus = "cerrada"
)

// IsUnset reports whether no status was stored
func (s RegistrationStatus) IsUnset() bool {
	return strings.TrimSpace(string(s)) == ""
}

// Race is one entry in the user's tracked-races collection
type Race struct {
	ID              RaceID             `json:"id"`
	Name            string             `json:"nombre"`
	Sport           string             `json:"deporte"`
	Date            Date               `json:"fecha"`
	Location        string             `json:"localizacion"`
	DistanceSummary string             `json:"distancia_resumen"`
	OfficialURL     string             `json:"url_oficial,omitempty"`
	Status          RegistrationStatus `json:"estado_inscripcion"`
	Results         []Result           `json:"resultados,omitempty"`
}

// Result returns the attached personal result, if any
func (r *Race) Result() (Result, bool) {
	if len(r.Results) == 0 {
		return Result{}, false
	}
	return r.Results[0], true
}

// IsPast reports whether the race date is strictly before today
func (r *Race) IsPast(today Date) bool {
	return r.Date.Before(today)
}
