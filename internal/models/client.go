package models

import (
	"encoding/json"
	"fmt"
)

// Client represents a customer of the agency.
//
// Only Name (and, at the service layer, Country) is required. Every other
// field may be left blank and round-trips as an empty string.
type Client struct {
	// ID is the client's identifier, unique among clients only.
	ID int

	// Name is the client's full display name.
	Name string `validate:"required"`

	// AddressLine1 through AddressLine3 are free-form street address lines.
	AddressLine1 string
	AddressLine2 string
	AddressLine3 string

	// City, State and ZipCode locate the postal address.
	City    string
	State   string
	ZipCode string

	// Country is where the client resides.
	Country string `validate:"required"`

	// PhoneNumber is the client's contact number, in any format.
	PhoneNumber string
}

func (c *Client) RecordID() int { return c.ID }
func (c *Client) SetID(id int)  { c.ID = id }
func (c *Client) Kind() Kind    { return KindClient }
func (c *Client) isRecord()     {}

// Field returns the named wire field of the client.
func (c *Client) Field(name string) (any, bool) {
	switch name {
	case "id":
		return c.ID, true
	case "type":
		return KindClient, true
	case "name":
		return c.Name, true
	case "address_line_1":
		return c.AddressLine1, true
	case "address_line_2":
		return c.AddressLine2, true
	case "address_line_3":
		return c.AddressLine3, true
	case "city":
		return c.City, true
	case "state":
		return c.State, true
	case "zip_code":
		return c.ZipCode, true
	case "country":
		return c.Country, true
	case "phone_number":
		return c.PhoneNumber, true
	}
	return nil, false
}

// clientJSON is the wire shape of a client. Required fields are pointers so
// decoding can tell a missing field from a zero value.
type clientJSON struct {
	ID           *int    `json:"id"`
	Type         Kind    `json:"type"`
	Name         *string `json:"name"`
	AddressLine1 string  `json:"address_line_1"`
	AddressLine2 string  `json:"address_line_2"`
	AddressLine3 string  `json:"address_line_3"`
	City         string  `json:"city"`
	State        string  `json:"state"`
	ZipCode      string  `json:"zip_code"`
	Country      string  `json:"country"`
	PhoneNumber  string  `json:"phone_number"`
}

func (c *Client) MarshalJSON() ([]byte, error) {
	return json.Marshal(clientJSON{
		ID:           &c.ID,
		Type:         KindClient,
		Name:         &c.Name,
		AddressLine1: c.AddressLine1,
		AddressLine2: c.AddressLine2,
		AddressLine3: c.AddressLine3,
		City:         c.City,
		State:        c.State,
		ZipCode:      c.ZipCode,
		Country:      c.Country,
		PhoneNumber:  c.PhoneNumber,
	})
}

func (c *Client) UnmarshalJSON(data []byte) error {
	var w clientJSON
	if err := json.Unmarshal(data, &w); err != nil {
		return fmt.Errorf("decode client record: %w", err)
	}
	switch {
	case w.ID == nil:
		return fmt.Errorf("client record missing %q: %w", "id", ErrMalformedRecord)
	case w.Name == nil:
		return fmt.Errorf("client record missing %q: %w", "name", ErrMalformedRecord)
	}
	c.ID = *w.ID
	c.Name = *w.Name
	c.AddressLine1 = w.AddressLine1
	c.AddressLine2 = w.AddressLine2
	c.AddressLine3 = w.AddressLine3
	c.City = w.City
	c.State = w.State
	c.ZipCode = w.ZipCode
	c.Country = w.Country
	c.PhoneNumber = w.PhoneNumber
	return nil
}
