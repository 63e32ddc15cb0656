// Package filter implements the substring row filter used by record
// listings: a query matches a record when it appears, case-insensitively,
// in any of the cells a listing would show for it.
package filter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tripstack/travelrec/internal/models"
)

// ResolveName returns the display name for a referenced id, or an explicit
// marker when the reference dangles.
func ResolveName(names map[int]string, id int) string {
	if name, ok := names[id]; ok {
		return name
	}
	return fmt.Sprintf("Unknown (ID: %d)", id)
}

// Match reports whether a record's listing row contains the query as a
// case-insensitive substring. The id cell matches on its decimal text, so
// "1" matches ids 1, 10 and 21. Flight rows carry resolved client and
// airline names: a dangling reference matches its "Unknown (ID: n)" text.
// An empty query matches everything.
func Match(rec models.Record, query string, clientNames, airlineNames map[int]string) bool {
	q := strings.ToLower(query)
	if q == "" {
		return true
	}
	for _, cell := range rowCells(rec, clientNames, airlineNames) {
		if strings.Contains(strings.ToLower(cell), q) {
			return true
		}
	}
	return false
}

// Apply returns the records matching the query, preserving order.
func Apply(records []models.Record, query string, clientNames, airlineNames map[int]string) []models.Record {
	out := make([]models.Record, 0, len(records))
	for _, rec := range records {
		if Match(rec, query, clientNames, airlineNames) {
			out = append(out, rec)
		}
	}
	return out
}

// rowCells returns the searchable cells of a record's listing row. Flight
// dates are deliberately absent, matching what the row filter has always
// covered.
func rowCells(rec models.Record, clientNames, airlineNames map[int]string) []string {
	switch r := rec.(type) {
	case *models.Client:
		return []string{strconv.Itoa(r.ID), r.Name}
	case *models.Airline:
		return []string{strconv.Itoa(r.ID), r.CompanyName}
	case *models.Flight:
		return []string{
			strconv.Itoa(r.ID),
			ResolveName(clientNames, r.ClientID),
			ResolveName(airlineNames, r.AirlineID),
			r.StartCity,
			r.EndCity,
		}
	}
	return nil
}
