// Package models defines the three record kinds travelrec manages and
// their JSON wire format.
//
// # Record Kinds
//
//   - Client: a customer of the agency, identified by name and address.
//   - Airline: a carrier, identified by company name.
//   - Flight: a booking linking one client to one airline on a date.
//
// Flights reference clients and airlines by integer ID. The references are
// not enforced here or by the store; the service layer blocks deleting a
// client or airline that flights still point at.
//
// # Identity
//
// Every record has a small integer ID unique within its kind only: client 3,
// airline 3 and flight 3 may all coexist. A record is therefore addressed by
// the (id, kind) pair everywhere.
//
// # Wire Format
//
// Records serialize to flat JSON objects tagged with a "type" field:
//
//	{"id": 1, "type": "flight", "client_id": 1, "airline_id": 2,
//	 "date": "2025-03-15T19:04:00", "start_city": "London", "end_city": "Oslo"}
//
// Decoding is strict about each kind's required fields and reports
// ErrMalformedRecord when one is missing, so a loader can drop the single
// bad entry instead of failing the whole file.
package models
