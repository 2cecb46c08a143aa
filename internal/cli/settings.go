package cli

import (
	"github.com/spf13/cobra"

	"options-journal/internal/config"
)

// addSettingsCommands adds the settings inspection command.
func addSettingsCommands(rootCmd *cobra.Command, app *App) {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show effective configuration",
		Long:  "Show the effective journal, volatility, and checklist configuration after defaults and environment overrides.",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			if output.IsJSON() {
				// Credentials are excluded from JSON output on purpose.
				redacted := *app.Config
				redacted.Credentials = config.Credentials{}
				return output.JSON(redacted)
			}

			j := app.Config.Journal
			output.Bold("Journal")
			output.Printf("  Initial Capital:     %s\n", FormatCurrency(j.InitialCapital))
			output.Printf("  Default Target:      %.1f%%\n", j.DefaultTargetPercent)
			output.Printf("  Default Stop:        %.1f%%\n", j.DefaultStopPercent)
			output.Printf("  Max Trades/Day:      %d\n", j.MaxTradesPerDay)
			output.Printf("  Max Risk/Trade:      %.1f%% of balance\n", j.MaxRiskPercent)
			output.Println()

			v := app.Config.Volatility
			output.Bold("Volatility")
			output.Printf("  Advisory Threshold:  %.1f\n", v.Threshold)
			if v.SourceURL != "" {
				output.Printf("  Source URL:          %s\n", v.SourceURL)
			} else {
				output.Printf("  Source URL:          %s\n", output.ColoredString(ColorDim, "not configured"))
			}
			output.Println()

			output.Bold("Checklist")
			items := app.Engine.ChecklistItems()
			for _, item := range items {
				state := output.Green("enabled")
				if !item.Enabled {
					state = output.ColoredString(ColorDim, "disabled")
				}
				output.Printf("  %-22s %-30s %s\n", item.ID, item.Label, state)
			}
			output.Println()

			output.Bold("Collaborators")
			if app.Coach != nil {
				output.Printf("  AI Coach:            %s\n", output.Green("configured"))
			} else {
				output.Printf("  AI Coach:            %s\n", output.ColoredString(ColorDim, "not configured"))
			}
			if app.VIX != nil && v.SourceURL != "" {
				output.Printf("  Volatility Index:    %s\n", output.Green("configured"))
			} else {
				output.Printf("  Volatility Index:    %s\n", output.ColoredString(ColorDim, "not configured"))
			}

			return nil
		},
	}

	rootCmd.AddCommand(cmd)
}
