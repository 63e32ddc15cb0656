package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/tripstack/travelrec/internal/config"
	"github.com/tripstack/travelrec/internal/service"
	"github.com/tripstack/travelrec/internal/storage/jsonfile"
	"github.com/tripstack/travelrec/pkg/logging"
)

var (
	// Global flags
	configPath string
	dataFile   string
	verbose    bool
	assumeYes  bool

	// records is wired in PersistentPreRunE and shared by every subcommand.
	records *service.RecordService
)

var rootCmd = &cobra.Command{
	Use:   "travelrec",
	Short: "Travel agency record keeper",
	Long: `travelrec manages a travel agency's client, airline and flight records,
stored in a single JSON file.

Record types:
  client   people booking travel
  airline  carriers operating flights
  flight   bookings referencing one client and one airline

Each record type keeps its own id sequence, so client 1 and airline 1 are
different records. The data file is created on first use.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logging.Setup()

		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}

		level := logging.ParseLevel(cfg.Log.Level)
		if env := os.Getenv("LOG_LEVEL"); env != "" {
			level = logging.ParseLevel(env)
		}
		if verbose {
			level = slog.LevelDebug
		}
		logging.SetupWithLevel(level)

		path := cfg.Data.File
		if env := os.Getenv("TRAVELREC_DATA"); env != "" {
			path = env
		}
		if dataFile != "" {
			path = dataFile
		}

		store := jsonfile.New(path)
		if err := store.Load(cmd.Context()); err != nil {
			return fmt.Errorf("failed to load records: %w", err)
		}
		records = service.NewRecordService(store)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultPath, "Config file")
	rootCmd.PersistentFlags().StringVar(&dataFile, "data", "", "Data file (overrides config and TRAVELREC_DATA)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVarP(&assumeYes, "yes", "y", false, "Skip confirmation prompts")
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.AddCommand(clientCmd)
	rootCmd.AddCommand(airlineCmd)
	rootCmd.AddCommand(flightCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
