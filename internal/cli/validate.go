package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"smart-stadium/internal/domain/contests"
	"smart-stadium/internal/effects"
	"smart-stadium/internal/lights"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect configuration",
	}

	validate := &cobra.Command{
		Use:   "validate",
		Short: "Load and cross-check configuration without serving",
		RunE:  runConfigValidate,
	}

	cmd.AddCommand(validate)
	return cmd
}

func runConfigValidate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	devices, err := lights.LoadDevices(cfg.Lights.DevicesFile)
	if err != nil {
		return err
	}
	palette, err := effects.LoadPalette(cfg.Lights.TeamColorsFile)
	if err != nil {
		return err
	}
	if _, err := lights.NewCommander(devices, lights.GoveeConfig{
		BaseURL: cfg.Lights.GoveeBaseURL,
		APIKey:  cfg.Lights.GoveeAPIKey,
	}); err != nil {
		return err
	}

	covered := make(map[contests.Sport]bool, len(palette.Sports()))
	for _, s := range palette.Sports() {
		covered[s] = true
	}
	for _, raw := range cfg.Sports {
		sport, ok := contests.ParseSport(raw)
		if !ok {
			continue
		}
		if !covered[sport] {
			return fmt.Errorf("no team colors configured for %s", sport)
		}
	}

	enabled := 0
	for _, d := range devices {
		if d.Enabled {
			enabled++
		}
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "configuration ok")
	fmt.Fprintf(out, "  provider: %s\n", cfg.Provider)
	fmt.Fprintf(out, "  sports:   %s\n", strings.Join(cfg.Sports, ", "))
	fmt.Fprintf(out, "  devices:  %d configured, %d enabled (%s)\n", len(devices), enabled, cfg.Lights.DevicesFile)
	fmt.Fprintf(out, "  teams:    %d palette entries (%s)\n", palette.Len(), cfg.Lights.TeamColorsFile)
	fmt.Fprintf(out, "  history:  %s (%dd retention)\n", cfg.History.BasePath, cfg.History.RetentionDays)
	return nil
}
