package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
)

// Kind discriminates the record kinds stored in a data file.
type Kind string

// The three record kinds. The zero Kind is accepted by list and search
// operations and means "any kind".
const (
	KindClient  Kind = "client"
	KindAirline Kind = "airline"
	KindFlight  Kind = "flight"
)

// ErrMalformedRecord marks a serialized record missing a required field or
// carrying an unparseable date. Loaders skip such entries.
var ErrMalformedRecord = errors.New("malformed record")

// Record is the interface shared by *Client, *Airline and *Flight. It is
// sealed: the store relies on every record being one of the three kinds.
type Record interface {
	// RecordID returns the record's identifier, unique within its kind.
	RecordID() int

	// SetID assigns the record's identifier. The store calls this when a
	// record is added without one.
	SetID(id int)

	// Kind reports which record kind this is.
	Kind() Kind

	// Field returns the value of a wire-named field ("name", "client_id",
	// ...) for equality search, reporting whether the kind has that field.
	Field(name string) (any, bool)

	isRecord()
}

var (
	_ Record = (*Client)(nil)
	_ Record = (*Airline)(nil)
	_ Record = (*Flight)(nil)
)

// ParseKind converts user or wire input into a Kind.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindClient, KindAirline, KindFlight:
		return Kind(s), nil
	}
	return "", fmt.Errorf("unknown record kind %q", s)
}

// Decode deserializes one record of the given kind from its JSON wire form.
// Errors from missing required fields wrap ErrMalformedRecord.
func Decode(kind Kind, data []byte) (Record, error) {
	switch kind {
	case KindClient:
		var c Client
		if err := json.Unmarshal(data, &c); err != nil {
			return nil, err
		}
		return &c, nil
	case KindAirline:
		var a Airline
		if err := json.Unmarshal(data, &a); err != nil {
			return nil, err
		}
		return &a, nil
	case KindFlight:
		var f Flight
		if err := json.Unmarshal(data, &f); err != nil {
			return nil, err
		}
		return &f, nil
	}
	return nil, fmt.Errorf("unknown record kind %q", kind)
}

// ParseFieldValue converts textual input for the named field of a kind into
// the typed value Field returns, so string input can drive equality search.
func ParseFieldValue(kind Kind, field, raw string) (any, error) {
	var probe Record
	switch kind {
	case KindClient:
		probe = &Client{}
	case KindAirline:
		probe = &Airline{}
	case KindFlight:
		probe = &Flight{}
	default:
		return nil, fmt.Errorf("unknown record kind %q", kind)
	}
	if _, ok := probe.Field(field); !ok {
		return nil, fmt.Errorf("%s records have no field %q", kind, field)
	}

	switch field {
	case "id", "client_id", "airline_id":
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("field %q wants an integer, got %q", field, raw)
		}
		return n, nil
	case "type":
		return ParseKind(raw)
	case "date":
		return ParseDate(raw)
	default:
		return raw, nil
	}
}
