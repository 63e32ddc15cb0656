package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/tripstack/travelrec/internal/filter"
	"github.com/tripstack/travelrec/internal/models"
)

// displayTime is how departure times appear in listings.
const displayTime = "2006-01-02 15:04"

// parseID converts a positional record id argument.
func parseID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("bad record id %q, want a positive integer", arg)
	}
	return id, nil
}

// parseWhere converts repeated field=value pairs into typed search values
// for the kind.
func parseWhere(kind models.Kind, pairs []string) (map[string]any, error) {
	fields := make(map[string]any, len(pairs))
	for _, pair := range pairs {
		name, raw, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("bad --where %q, want field=value", pair)
		}
		value, err := models.ParseFieldValue(kind, name, raw)
		if err != nil {
			return nil, err
		}
		fields[name] = value
	}
	return fields, nil
}

// listKind resolves the shared --where/--filter listing flags for one kind.
func listKind(ctx context.Context, kind models.Kind, query string, where []string) ([]models.Record, error) {
	if len(where) == 0 {
		return records.Filter(ctx, kind, query), nil
	}
	fields, err := parseWhere(kind, where)
	if err != nil {
		return nil, err
	}
	hits := records.Search(ctx, kind, fields)
	if query == "" {
		return hits, nil
	}
	return filter.Apply(hits, query, records.ClientNames(ctx), records.AirlineNames(ctx)), nil
}

// confirmDelete prompts on stdin unless --yes was given.
func confirmDelete(what string) bool {
	if assumeYes {
		return true
	}
	fmt.Printf("Delete %s? [y/N]: ", what)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}

// renderClients writes a client listing table.
func renderClients(w io.Writer, recs []models.Record) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tCOUNTRY\tPHONE")
	for _, rec := range recs {
		if c, ok := rec.(*models.Client); ok {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", c.ID, c.Name, c.Country, c.PhoneNumber)
		}
	}
	tw.Flush()
}

// renderAirlines writes an airline listing table.
func renderAirlines(w io.Writer, recs []models.Record) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tCOMPANY")
	for _, rec := range recs {
		if a, ok := rec.(*models.Airline); ok {
			fmt.Fprintf(tw, "%d\t%s\n", a.ID, a.CompanyName)
		}
	}
	tw.Flush()
}

// renderFlights writes a flight listing table with resolved client and
// airline names.
func renderFlights(w io.Writer, recs []models.Record, clientNames, airlineNames map[int]string) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tCLIENT\tAIRLINE\tFROM\tTO\tDEPARTURE")
	for _, rec := range recs {
		if f, ok := rec.(*models.Flight); ok {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n",
				f.ID,
				filter.ResolveName(clientNames, f.ClientID),
				filter.ResolveName(airlineNames, f.AirlineID),
				f.StartCity,
				f.EndCity,
				f.Date.Format(displayTime),
			)
		}
	}
	tw.Flush()
}

// renderDetail writes every field of one record, one per line. The name
// indexes are only consulted for flights; other kinds may pass nil.
func renderDetail(w io.Writer, rec models.Record, clientNames, airlineNames map[int]string) {
	switch r := rec.(type) {
	case *models.Client:
		fmt.Fprintf(w, "ID:             %d\n", r.ID)
		fmt.Fprintf(w, "Name:           %s\n", r.Name)
		fmt.Fprintf(w, "Address Line 1: %s\n", r.AddressLine1)
		fmt.Fprintf(w, "Address Line 2: %s\n", r.AddressLine2)
		fmt.Fprintf(w, "Address Line 3: %s\n", r.AddressLine3)
		fmt.Fprintf(w, "City:           %s\n", r.City)
		fmt.Fprintf(w, "State:          %s\n", r.State)
		fmt.Fprintf(w, "Zip Code:       %s\n", r.ZipCode)
		fmt.Fprintf(w, "Country:        %s\n", r.Country)
		fmt.Fprintf(w, "Phone Number:   %s\n", r.PhoneNumber)
	case *models.Airline:
		fmt.Fprintf(w, "ID:      %d\n", r.ID)
		fmt.Fprintf(w, "Company: %s\n", r.CompanyName)
	case *models.Flight:
		fmt.Fprintf(w, "ID:        %d\n", r.ID)
		fmt.Fprintf(w, "Client:    %s (ID %d)\n", filter.ResolveName(clientNames, r.ClientID), r.ClientID)
		fmt.Fprintf(w, "Airline:   %s (ID %d)\n", filter.ResolveName(airlineNames, r.AirlineID), r.AirlineID)
		fmt.Fprintf(w, "From:      %s\n", r.StartCity)
		fmt.Fprintf(w, "To:        %s\n", r.EndCity)
		fmt.Fprintf(w, "Departure: %s\n", r.Date.Format(displayTime))
	}
}
