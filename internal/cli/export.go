package cli

import (
	"context"
	"os"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/spf13/cobra"

	"options-journal/internal/errors"
	"options-journal/internal/journal"
	"options-journal/internal/models"
	"options-journal/internal/store"
)

// tradeExportRow flattens a trade for CSV export.
type tradeExportRow struct {
	ID              string  `csv:"id"`
	Ticker          string  `csv:"ticker"`
	Direction       string  `csv:"direction"`
	Kind            string  `csv:"kind"`
	StrikePrice     string  `csv:"strike_price"`
	Expiration      string  `csv:"expiration"`
	EntryDate       string  `csv:"entry_date"`
	EntryPrice      float64 `csv:"entry_price"`
	Quantity        int     `csv:"quantity"`
	Fees            float64 `csv:"fees"`
	TargetPrice     string  `csv:"target_price"`
	StopLossPrice   string  `csv:"stop_loss_price"`
	ExitDate        string  `csv:"exit_date"`
	ExitPrice       string  `csv:"exit_price"`
	PnL             string  `csv:"pnl"`
	Outcome         string  `csv:"outcome"`
	Status          string  `csv:"status"`
	EntryEmotion    string  `csv:"entry_emotion"`
	ExitEmotion     string  `csv:"exit_emotion"`
	DisciplineScore int     `csv:"discipline_score"`
	Setup           string  `csv:"setup"`
	Notes           string  `csv:"notes"`
}

func exportRow(t models.Trade) tradeExportRow {
	row := tradeExportRow{
		ID:              t.ID,
		Ticker:          t.Ticker,
		Direction:       string(t.Direction),
		Kind:            string(t.Kind),
		EntryDate:       t.EntryDate.Format(dateLayout),
		EntryPrice:      t.EntryPrice,
		Quantity:        t.Quantity,
		Fees:            t.Fees,
		Outcome:         string(journal.ClassifyOutcome(t)),
		Status:          string(t.Status),
		EntryEmotion:    string(t.EntryEmotion),
		DisciplineScore: t.DisciplineScore,
		Setup:           t.Setup,
		Notes:           t.Notes,
	}
	if t.StrikePrice != nil {
		row.StrikePrice = FormatPrice(*t.StrikePrice)
	}
	if t.Expiration != nil {
		row.Expiration = t.Expiration.Format(dateLayout)
	}
	if t.TargetPrice != nil {
		row.TargetPrice = FormatPrice(*t.TargetPrice)
	}
	if t.StopLossPrice != nil {
		row.StopLossPrice = FormatPrice(*t.StopLossPrice)
	}
	if t.ExitDate != nil {
		row.ExitDate = t.ExitDate.Format(dateLayout)
	}
	if t.ExitPrice != nil {
		row.ExitPrice = FormatPrice(*t.ExitPrice)
	}
	if t.PnL != nil {
		row.PnL = FormatPrice(*t.PnL)
	}
	if t.ExitEmotion != nil {
		row.ExitEmotion = string(*t.ExitEmotion)
	}
	return row
}

// addExportCommands adds the CSV export command.
func addExportCommands(rootCmd *cobra.Command, app *App) {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export trades to CSV",
		Example: `  optjournal export --output trades.csv
  optjournal export --ticker SPY --status CLOSED --output spy.csv`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			if app.Store == nil {
				output.Error("Store not initialized.")
				return errors.ErrDatabaseError
			}

			outPath, _ := cmd.Flags().GetString("output")
			ticker, _ := cmd.Flags().GetString("ticker")
			status, _ := cmd.Flags().GetString("status")
			setup, _ := cmd.Flags().GetString("setup")

			filter := store.TradeFilter{
				Ticker: ticker,
				Setup:  setup,
				Limit:  10000,
			}
			if status != "" {
				filter.Status = models.TradeStatus(status)
			}

			trades, err := app.Store.GetTrades(ctx, filter)
			if err != nil {
				output.Error("Failed to fetch trades: %v", err)
				return err
			}
			if len(trades) == 0 {
				output.Info("No trades to export.")
				return nil
			}

			rows := make([]tradeExportRow, 0, len(trades))
			for _, t := range trades {
				rows = append(rows, exportRow(t))
			}

			f, err := os.Create(outPath)
			if err != nil {
				output.Error("Failed to create %s: %v", outPath, err)
				return err
			}
			defer f.Close()

			if err := gocsv.MarshalFile(&rows, f); err != nil {
				output.Error("Failed to write CSV: %v", err)
				return err
			}

			output.Success("Exported %d trades to %s", len(rows), outPath)
			return nil
		},
	}

	cmd.Flags().StringP("output", "o", "trades.csv", "Output file path")
	cmd.Flags().String("ticker", "", "Filter by ticker")
	cmd.Flags().String("status", "", "Filter by status (OPEN, CLOSED)")
	cmd.Flags().String("setup", "", "Filter by setup tag")
	rootCmd.AddCommand(cmd)
}
