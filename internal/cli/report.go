package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"options-journal/internal/errors"
	"options-journal/internal/journal"
	"options-journal/internal/models"
	"options-journal/internal/store"
)

// addReportCommands adds performance reporting commands.
func addReportCommands(rootCmd *cobra.Command, app *App) {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Generate performance reports",
		Long:  "Generate daily, weekly, or monthly performance and discipline reports.",
		Example: `  optjournal report --period daily
  optjournal report --period weekly
  optjournal report --period monthly`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			if app.Store == nil {
				output.Error("Store not initialized.")
				return errors.ErrDatabaseError
			}

			period, _ := cmd.Flags().GetString("period")

			var periodLabel string
			var startDate time.Time
			now := time.Now()

			switch period {
			case "weekly":
				periodLabel = "Weekly"
				startDate = now.AddDate(0, 0, -7)
			case "monthly":
				periodLabel = "Monthly"
				startDate = now.AddDate(0, -1, 0)
			default:
				periodLabel = "Daily"
				startDate = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
			}

			output.Bold("%s Performance Report", periodLabel)
			output.Printf("  %s to %s\n\n", FormatDate(startDate), FormatDate(now))

			trades, err := app.Store.GetTrades(ctx, store.TradeFilter{
				StartDate: startDate,
				EndDate:   now,
				Limit:     1000,
			})
			if err != nil {
				output.Error("Failed to fetch trades: %v", err)
				return err
			}

			if len(trades) == 0 {
				output.Info("No trades found for this period.")
				return nil
			}

			var grossProfit, grossLoss float64
			var wins, losses, closed int
			var scoreSum int
			outcomeCounts := make(map[models.Outcome]int)
			setupStats := make(map[string]struct {
				trades int
				pnl    float64
				wins   int
			})

			for _, t := range trades {
				scoreSum += t.DisciplineScore
				if t.PnL == nil {
					continue
				}
				closed++
				pnl := *t.PnL
				if pnl > 0 {
					wins++
					grossProfit += pnl
				} else {
					losses++
					grossLoss += pnl
				}

				outcomeCounts[journal.ClassifyOutcome(t)]++

				setup := t.Setup
				if setup == "" {
					setup = "untagged"
				}
				ss := setupStats[setup]
				ss.trades++
				ss.pnl += pnl
				if pnl > 0 {
					ss.wins++
				}
				setupStats[setup] = ss
			}

			netPnL := grossProfit + grossLoss
			winRate := 0.0
			if closed > 0 {
				winRate = float64(wins) / float64(closed) * 100
			}
			avgWin := 0.0
			if wins > 0 {
				avgWin = grossProfit / float64(wins)
			}
			avgLoss := 0.0
			if losses > 0 {
				avgLoss = grossLoss / float64(losses)
			}
			profitFactor := 0.0
			if grossLoss != 0 {
				profitFactor = grossProfit / (-grossLoss)
			}
			expectancy := 0.0
			if closed > 0 {
				expectancy = netPnL / float64(closed)
			}
			avgScore := 0.0
			if len(trades) > 0 {
				avgScore = float64(scoreSum) / float64(len(trades))
			}

			output.Bold("Summary")
			output.Printf("  Total Trades:     %d (%d closed)\n", len(trades), closed)
			output.Printf("  Wins/Losses:      %d/%d (%.0f%% win rate)\n", wins, losses, winRate)
			output.Printf("  Gross Profit:     %s\n", output.Green(FormatCurrency(grossProfit)))
			output.Printf("  Gross Loss:       %s\n", output.Red(FormatCurrency(grossLoss)))
			output.Printf("  Net P&L:          %s\n", output.FormatPnL(netPnL))
			output.Println()

			output.Bold("Performance Metrics")
			output.Printf("  Profit Factor:    %.2f\n", profitFactor)
			output.Printf("  Avg Win:          %s\n", FormatCurrency(avgWin))
			output.Printf("  Avg Loss:         %s\n", FormatCurrency(avgLoss))
			output.Printf("  Expectancy:       %s\n", FormatCurrency(expectancy))
			output.Println()

			output.Bold("Discipline")
			output.Printf("  Avg Score:        %.0f/100\n", avgScore)
			output.Printf("  Stops Violated:   %d\n", outcomeCounts[models.OutcomeStopViolated])
			output.Printf("  Targets Hit:      %d\n", outcomeCounts[models.OutcomeTargetHit])
			output.Printf("  Neutral:          %d\n", outcomeCounts[models.OutcomeNeutral])
			output.Println()

			if len(setupStats) > 0 {
				output.Bold("By Setup")
				for setup, stats := range setupStats {
					wr := 0.0
					if stats.trades > 0 {
						wr = float64(stats.wins) / float64(stats.trades) * 100
					}
					output.Printf("  %-14s %d trades  %s  %.0f%% win\n",
						setup, stats.trades, output.FormatPnL(stats.pnl), wr)
				}
			}

			return nil
		},
	}

	cmd.Flags().String("period", "daily", "Report period (daily, weekly, monthly)")
	rootCmd.AddCommand(cmd)
}
