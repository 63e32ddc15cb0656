package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tripstack/travelrec/internal/models"
)

var airlineCmd = &cobra.Command{
	Use:   "airline",
	Short: "Manage airline records",
}

var (
	airlineCompany string
	airlineFilter  string
	airlineWhere   []string
)

var airlineAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add an airline record",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a := &models.Airline{CompanyName: airlineCompany}
		id, err := records.Add(cmd.Context(), a)
		if err != nil {
			return err
		}
		fmt.Printf("Added airline %d\n", id)
		return nil
	},
}

var airlineListCmd = &cobra.Command{
	Use:   "list",
	Short: "List airline records",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		recs, err := listKind(cmd.Context(), models.KindAirline, airlineFilter, airlineWhere)
		if err != nil {
			return err
		}
		renderAirlines(os.Stdout, recs)
		return nil
	},
}

var airlineShowCmd = &cobra.Command{
	Use:   "show ID",
	Short: "Show one airline record",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		rec, err := records.Get(cmd.Context(), id, models.KindAirline)
		if err != nil {
			return err
		}
		renderDetail(os.Stdout, rec, nil, nil)
		return nil
	},
}

var airlineUpdateCmd = &cobra.Command{
	Use:   "update ID",
	Short: "Update fields of an airline record",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		rec, err := records.Get(cmd.Context(), id, models.KindAirline)
		if err != nil {
			return err
		}
		a := *rec.(*models.Airline)
		if cmd.Flags().Changed("company") {
			a.CompanyName = airlineCompany
		}
		if err := records.Update(cmd.Context(), &a); err != nil {
			return err
		}
		fmt.Printf("Updated airline %d\n", id)
		return nil
	},
}

var airlineDeleteCmd = &cobra.Command{
	Use:   "delete ID",
	Short: "Delete an airline record",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		if !confirmDelete(fmt.Sprintf("airline %d", id)) {
			fmt.Println("Aborted.")
			return nil
		}
		if err := records.Delete(cmd.Context(), id, models.KindAirline); err != nil {
			return err
		}
		fmt.Printf("Deleted airline %d\n", id)
		return nil
	},
}

func init() {
	for _, cmd := range []*cobra.Command{airlineAddCmd, airlineUpdateCmd} {
		cmd.Flags().StringVar(&airlineCompany, "company", "", "company name")
	}
	airlineListCmd.Flags().StringVar(&airlineFilter, "filter", "", "keep rows whose text contains this value")
	airlineListCmd.Flags().StringArrayVar(&airlineWhere, "where", nil, "field=value equality match, repeatable")

	airlineCmd.AddCommand(airlineAddCmd)
	airlineCmd.AddCommand(airlineListCmd)
	airlineCmd.AddCommand(airlineShowCmd)
	airlineCmd.AddCommand(airlineUpdateCmd)
	airlineCmd.AddCommand(airlineDeleteCmd)
}
