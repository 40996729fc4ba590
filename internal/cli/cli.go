package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"smart-stadium/internal/config"
	"smart-stadium/internal/logging"
	"smart-stadium/internal/server"
)

const appVersion = "dev"

var (
	flagEnvFile     string
	flagDevicesFile string
	flagColorsFile  string
)

// NewRootCmd creates the root command. Running it without a subcommand
// serves.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "stadium",
		Short: "Celebration lighting engine for live sports",
		Long: `Watches live scoreboards and turns scoring plays into light shows on the
configured WiZ and Govee devices. Running with no subcommand starts the
monitor and HTTP API.`,
		RunE: runServe,
	}
	root.SilenceUsage = true

	root.PersistentFlags().StringVar(&flagEnvFile, "env-file", "", "Load environment from this file before reading config")
	root.PersistentFlags().StringVar(&flagDevicesFile, "devices-file", "", "Override the device configuration file")
	root.PersistentFlags().StringVar(&flagColorsFile, "colors-file", "", "Override the team colors file")

	root.AddCommand(newServeCmd(), newLightsCmd(), newConfigCmd())

	return root
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the scoreboard monitor and HTTP API",
		RunE:  runServe,
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	logger := logging.NewLogger(logging.Config{
		Level:   os.Getenv("LOG_LEVEL"),
		Format:  os.Getenv("LOG_FORMAT"),
		Service: "smart-stadium",
		Version: appVersion,
	})

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv, err := server.New(cfg, logger)
	if err != nil {
		return err
	}
	srv.Run(ctx, stop)
	return nil
}

// loadConfig reads .env (best effort), then the environment, then applies
// the file override flags. A --env-file that cannot be read is an error; a
// missing default .env is not.
func loadConfig() (config.Config, error) {
	if flagEnvFile != "" {
		if err := godotenv.Load(flagEnvFile); err != nil {
			return config.Config{}, fmt.Errorf("env file: %w", err)
		}
	} else {
		_ = godotenv.Load()
	}

	cfg := config.Load()
	if flagDevicesFile != "" {
		cfg.Lights.DevicesFile = flagDevicesFile
	}
	if flagColorsFile != "" {
		cfg.Lights.TeamColorsFile = flagColorsFile
	}
	return cfg, nil
}

// Execute runs the CLI.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
