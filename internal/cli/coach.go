package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"options-journal/internal/errors"
)

// addCoachCommands adds the AI coaching command.
func addCoachCommands(rootCmd *cobra.Command, app *App) {
	cmd := &cobra.Command{
		Use:   "coach <trade-id>",
		Short: "Get an AI coaching narrative for a closed trade",
		Long: `Ask the AI coach to review a closed trade: entry and exit quality,
discipline checklist adherence, and emotional state. Requires an OpenAI
API key in the credentials file or OPENAI_API_KEY.`,
		Example: `  optjournal coach 01J3Z...`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			if app.Coach == nil {
				output.Warning("AI coach is not configured. Set OPENAI_API_KEY or add a key to credentials.toml.")
				return nil
			}
			if app.Store == nil {
				output.Error("Store not initialized.")
				return errors.ErrDatabaseError
			}

			ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
			defer cancel()

			trade, err := app.Store.GetTrade(ctx, args[0])
			if err != nil {
				output.Error("Failed to fetch trade: %v", err)
				return err
			}
			if trade.IsOpen() {
				output.Warning("Trade %s is still open. Coaching works best on closed trades.", trade.ID)
			}

			output.Info("Asking the coach about %s %s...", trade.Ticker, trade.Direction)
			narrative, err := app.Coach.Narrative(ctx, *trade)
			if err != nil {
				app.Logger.Warn().Err(err).Str("trade_id", trade.ID).Msg("coach narrative failed")
				output.Warning("Coach unavailable: %v", err)
				return nil
			}

			if output.IsJSON() {
				return output.JSON(map[string]string{
					"trade_id":  trade.ID,
					"narrative": narrative,
				})
			}

			output.Println()
			output.Bold("Coach's Review: %s", trade.Ticker)
			output.Println()
			output.Printf("%s\n", narrative)
			return nil
		},
	}

	rootCmd.AddCommand(cmd)
}
