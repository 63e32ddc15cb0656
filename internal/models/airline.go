package models

import (
	"encoding/json"
	"fmt"
)

// Airline represents a carrier that operates flights.
type Airline struct {
	// ID is the airline's identifier, unique among airlines only.
	ID int

	// CompanyName is the carrier's display name.
	CompanyName string `validate:"required"`
}

func (a *Airline) RecordID() int { return a.ID }
func (a *Airline) SetID(id int)  { a.ID = id }
func (a *Airline) Kind() Kind    { return KindAirline }
func (a *Airline) isRecord()     {}

// Field returns the named wire field of the airline.
func (a *Airline) Field(name string) (any, bool) {
	switch name {
	case "id":
		return a.ID, true
	case "type":
		return KindAirline, true
	case "company_name":
		return a.CompanyName, true
	}
	return nil, false
}

// airlineJSON is the wire shape of an airline. Required fields are pointers
// so decoding can tell a missing field from a zero value.
type airlineJSON struct {
	ID          *int    `json:"id"`
	Type        Kind    `json:"type"`
	CompanyName *string `json:"company_name"`
}

func (a *Airline) MarshalJSON() ([]byte, error) {
	return json.Marshal(airlineJSON{
		ID:          &a.ID,
		Type:        KindAirline,
		CompanyName: &a.CompanyName,
	})
}

func (a *Airline) UnmarshalJSON(data []byte) error {
	var w airlineJSON
	if err := json.Unmarshal(data, &w); err != nil {
		return fmt.Errorf("decode airline record: %w", err)
	}
	switch {
	case w.ID == nil:
		return fmt.Errorf("airline record missing %q: %w", "id", ErrMalformedRecord)
	case w.CompanyName == nil:
		return fmt.Errorf("airline record missing %q: %w", "company_name", ErrMalformedRecord)
	}
	a.ID = *w.ID
	a.CompanyName = *w.CompanyName
	return nil
}
