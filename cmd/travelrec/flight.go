package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tripstack/travelrec/internal/models"
)

var flightCmd = &cobra.Command{
	Use:   "flight",
	Short: "Manage flight records",
}

var (
	flightClientID  int
	flightAirlineID int
	flightDate      string
	flightFrom      string
	flightTo        string
	flightFilter    string
	flightWhere     []string
)

var flightAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a flight record",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		f := &models.Flight{
			ClientID:  flightClientID,
			AirlineID: flightAirlineID,
			StartCity: flightFrom,
			EndCity:   flightTo,
		}
		if flightDate != "" {
			date, err := models.ParseDate(flightDate)
			if err != nil {
				return err
			}
			f.Date = date
		}
		id, err := records.Add(cmd.Context(), f)
		if err != nil {
			return err
		}
		fmt.Printf("Added flight %d\n", id)
		return nil
	},
}

var flightListCmd = &cobra.Command{
	Use:   "list",
	Short: "List flight records",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		recs, err := listKind(ctx, models.KindFlight, flightFilter, flightWhere)
		if err != nil {
			return err
		}
		renderFlights(os.Stdout, recs, records.ClientNames(ctx), records.AirlineNames(ctx))
		return nil
	},
}

var flightShowCmd = &cobra.Command{
	Use:   "show ID",
	Short: "Show one flight record",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		rec, err := records.Get(ctx, id, models.KindFlight)
		if err != nil {
			return err
		}
		renderDetail(os.Stdout, rec, records.ClientNames(ctx), records.AirlineNames(ctx))
		return nil
	},
}

var flightUpdateCmd = &cobra.Command{
	Use:   "update ID",
	Short: "Update fields of a flight record",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		rec, err := records.Get(cmd.Context(), id, models.KindFlight)
		if err != nil {
			return err
		}
		f := *rec.(*models.Flight)
		flags := cmd.Flags()
		if flags.Changed("client") {
			f.ClientID = flightClientID
		}
		if flags.Changed("airline") {
			f.AirlineID = flightAirlineID
		}
		if flags.Changed("date") {
			date, err := models.ParseDate(flightDate)
			if err != nil {
				return err
			}
			f.Date = date
		}
		if flags.Changed("from") {
			f.StartCity = flightFrom
		}
		if flags.Changed("to") {
			f.EndCity = flightTo
		}
		if err := records.Update(cmd.Context(), &f); err != nil {
			return err
		}
		fmt.Printf("Updated flight %d\n", id)
		return nil
	},
}

var flightDeleteCmd = &cobra.Command{
	Use:   "delete ID",
	Short: "Delete a flight record",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		if !confirmDelete(fmt.Sprintf("flight %d", id)) {
			fmt.Println("Aborted.")
			return nil
		}
		if err := records.Delete(cmd.Context(), id, models.KindFlight); err != nil {
			return err
		}
		fmt.Printf("Deleted flight %d\n", id)
		return nil
	},
}

func init() {
	for _, cmd := range []*cobra.Command{flightAddCmd, flightUpdateCmd} {
		cmd.Flags().IntVar(&flightClientID, "client", 0, "id of the client taking the flight")
		cmd.Flags().IntVar(&flightAirlineID, "airline", 0, "id of the operating airline")
		cmd.Flags().StringVar(&flightDate, "date", "", "departure time, e.g. \"2025-03-15 19:04\"")
		cmd.Flags().StringVar(&flightFrom, "from", "", "departure city")
		cmd.Flags().StringVar(&flightTo, "to", "", "destination city")
	}
	flightListCmd.Flags().StringVar(&flightFilter, "filter", "", "keep rows whose text contains this value")
	flightListCmd.Flags().StringArrayVar(&flightWhere, "where", nil, "field=value equality match, repeatable")

	flightCmd.AddCommand(flightAddCmd)
	flightCmd.AddCommand(flightListCmd)
	flightCmd.AddCommand(flightShowCmd)
	flightCmd.AddCommand(flightUpdateCmd)
	flightCmd.AddCommand(flightDeleteCmd)
}
