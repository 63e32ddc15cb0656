package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// DateLayout is the wire form of flight departure times: ISO-8601 at second
// precision with no timezone.
const DateLayout = "2006-01-02T15:04:05"

// dateInputLayouts are the accepted spellings for typed-in departure times,
// tried in order. The wire layout always comes first.
var dateInputLayouts = []string{
	DateLayout,
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// ParseDate parses a departure time in the wire layout or one of the
// space-separated forms operators tend to type.
func ParseDate(s string) (time.Time, error) {
	for _, layout := range dateInputLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q, want %s", s, DateLayout)
}

// Flight represents a booking: one client flying with one airline on a date.
type Flight struct {
	// ID is the flight's identifier, unique among flights only.
	ID int

	// ClientID references the client who booked the flight. Neither this
	// package nor the store enforces the reference.
	ClientID int `validate:"required"`

	// AirlineID references the operating airline.
	AirlineID int `validate:"required"`

	// Date is the scheduled departure at second precision, no timezone.
	Date time.Time `validate:"required"`

	// StartCity and EndCity are the route endpoints.
	StartCity string `validate:"required"`
	EndCity   string `validate:"required"`
}

func (f *Flight) RecordID() int { return f.ID }
func (f *Flight) SetID(id int)  { f.ID = id }
func (f *Flight) Kind() Kind    { return KindFlight }
func (f *Flight) isRecord()     {}

// Field returns the named wire field of the flight.
func (f *Flight) Field(name string) (any, bool) {
	switch name {
	case "id":
		return f.ID, true
	case "type":
		return KindFlight, true
	case "client_id":
		return f.ClientID, true
	case "airline_id":
		return f.AirlineID, true
	case "date":
		return f.Date, true
	case "start_city":
		return f.StartCity, true
	case "end_city":
		return f.EndCity, true
	}
	return nil, false
}

// flightJSON is the wire shape of a flight. Every field is required, so all
// are pointers for missing-field detection.
type flightJSON struct {
	ID        *int    `json:"id"`
	Type      Kind    `json:"type"`
	ClientID  *int    `json:"client_id"`
	AirlineID *int    `json:"airline_id"`
	Date      *string `json:"date"`
	StartCity *string `json:"start_city"`
	EndCity   *string `json:"end_city"`
}

func (f *Flight) MarshalJSON() ([]byte, error) {
	date := f.Date.Format(DateLayout)
	return json.Marshal(flightJSON{
		ID:        &f.ID,
		Type:      KindFlight,
		ClientID:  &f.ClientID,
		AirlineID: &f.AirlineID,
		Date:      &date,
		StartCity: &f.StartCity,
		EndCity:   &f.EndCity,
	})
}

func (f *Flight) UnmarshalJSON(data []byte) error {
	var w flightJSON
	if err := json.Unmarshal(data, &w); err != nil {
		return fmt.Errorf("decode flight record: %w", err)
	}
	missing := ""
	switch {
	case w.ID == nil:
		missing = "id"
	case w.ClientID == nil:
		missing = "client_id"
	case w.AirlineID == nil:
		missing = "airline_id"
	case w.Date == nil:
		missing = "date"
	case w.StartCity == nil:
		missing = "start_city"
	case w.EndCity == nil:
		missing = "end_city"
	}
	if missing != "" {
		return fmt.Errorf("flight record missing %q: %w", missing, ErrMalformedRecord)
	}
	date, err := time.Parse(DateLayout, *w.Date)
	if err != nil {
		return fmt.Errorf("flight record date %q: %w", *w.Date, ErrMalformedRecord)
	}
	f.ID = *w.ID
	f.ClientID = *w.ClientID
	f.AirlineID = *w.AirlineID
	f.Date = date
	f.StartCity = *w.StartCity
	f.EndCity = *w.EndCity
	return nil
}
