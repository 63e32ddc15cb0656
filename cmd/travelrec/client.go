package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tripstack/travelrec/internal/models"
)

var clientCmd = &cobra.Command{
	Use:   "client",
	Short: "Manage client records",
}

var (
	clientName    string
	clientAddr1   string
	clientAddr2   string
	clientAddr3   string
	clientCity    string
	clientState   string
	clientZip     string
	clientCountry string
	clientPhone   string
	clientFilter  string
	clientWhere   []string
)

var clientAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a client record",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c := &models.Client{
			Name:         clientName,
			AddressLine1: clientAddr1,
			AddressLine2: clientAddr2,
			AddressLine3: clientAddr3,
			City:         clientCity,
			State:        clientState,
			ZipCode:      clientZip,
			Country:      clientCountry,
			PhoneNumber:  clientPhone,
		}
		id, err := records.Add(cmd.Context(), c)
		if err != nil {
			return err
		}
		fmt.Printf("Added client %d\n", id)
		return nil
	},
}

var clientListCmd = &cobra.Command{
	Use:   "list",
	Short: "List client records",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		recs, err := listKind(cmd.Context(), models.KindClient, clientFilter, clientWhere)
		if err != nil {
			return err
		}
		renderClients(os.Stdout, recs)
		return nil
	},
}

var clientShowCmd = &cobra.Command{
	Use:   "show ID",
	Short: "Show one client record",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		rec, err := records.Get(cmd.Context(), id, models.KindClient)
		if err != nil {
			return err
		}
		renderDetail(os.Stdout, rec, nil, nil)
		return nil
	},
}

var clientUpdateCmd = &cobra.Command{
	Use:   "update ID",
	Short: "Update fields of a client record",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		rec, err := records.Get(cmd.Context(), id, models.KindClient)
		if err != nil {
			return err
		}
		// Work on a copy so a rejected update leaves the loaded record alone.
		c := *rec.(*models.Client)
		flags := cmd.Flags()
		if flags.Changed("name") {
			c.Name = clientName
		}
		if flags.Changed("address1") {
			c.AddressLine1 = clientAddr1
		}
		if flags.Changed("address2") {
			c.AddressLine2 = clientAddr2
		}
		if flags.Changed("address3") {
			c.AddressLine3 = clientAddr3
		}
		if flags.Changed("city") {
			c.City = clientCity
		}
		if flags.Changed("state") {
			c.State = clientState
		}
		if flags.Changed("zip") {
			c.ZipCode = clientZip
		}
		if flags.Changed("country") {
			c.Country = clientCountry
		}
		if flags.Changed("phone") {
			c.PhoneNumber = clientPhone
		}
		if err := records.Update(cmd.Context(), &c); err != nil {
			return err
		}
		fmt.Printf("Updated client %d\n", id)
		return nil
	},
}

var clientDeleteCmd = &cobra.Command{
	Use:   "delete ID",
	Short: "Delete a client record",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		if !confirmDelete(fmt.Sprintf("client %d", id)) {
			fmt.Println("Aborted.")
			return nil
		}
		if err := records.Delete(cmd.Context(), id, models.KindClient); err != nil {
			return err
		}
		fmt.Printf("Deleted client %d\n", id)
		return nil
	},
}

func init() {
	for _, cmd := range []*cobra.Command{clientAddCmd, clientUpdateCmd} {
		cmd.Flags().StringVar(&clientName, "name", "", "client name")
		cmd.Flags().StringVar(&clientAddr1, "address1", "", "address line 1")
		cmd.Flags().StringVar(&clientAddr2, "address2", "", "address line 2")
		cmd.Flags().StringVar(&clientAddr3, "address3", "", "address line 3")
		cmd.Flags().StringVar(&clientCity, "city", "", "city")
		cmd.Flags().StringVar(&clientState, "state", "", "state or province")
		cmd.Flags().StringVar(&clientZip, "zip", "", "zip or postal code")
		cmd.Flags().StringVar(&clientCountry, "country", "", "country")
		cmd.Flags().StringVar(&clientPhone, "phone", "", "phone number")
	}
	clientListCmd.Flags().StringVar(&clientFilter, "filter", "", "keep rows whose text contains this value")
	clientListCmd.Flags().StringArrayVar(&clientWhere, "where", nil, "field=value equality match, repeatable")

	clientCmd.AddCommand(clientAddCmd)
	clientCmd.AddCommand(clientListCmd)
	clientCmd.AddCommand(clientShowCmd)
	clientCmd.AddCommand(clientUpdateCmd)
	clientCmd.AddCommand(clientDeleteCmd)
}
