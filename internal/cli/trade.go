package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"options-journal/internal/errors"
	"options-journal/internal/journal"
	"options-journal/internal/logging"
	"options-journal/internal/models"
	"options-journal/internal/store"
)

const dateLayout = "2006-01-02"
const dateTimeLayout = "2006-01-02 15:04"

// addTradeCommands adds trade lifecycle commands.
func addTradeCommands(rootCmd *cobra.Command, app *App) {
	cmd := &cobra.Command{
		Use:   "trade",
		Short: "Trade lifecycle management",
		Long:  "Create, close, reopen, edit, and delete journal trades.",
	}

	cmd.AddCommand(newTradeAddCmd(app))
	cmd.AddCommand(newTradeCloseCmd(app))
	cmd.AddCommand(newTradeReopenCmd(app))
	cmd.AddCommand(newTradeEditCmd(app))
	cmd.AddCommand(newTradeDeleteCmd(app))
	cmd.AddCommand(newTradeShowCmd(app))
	cmd.AddCommand(newTradeListCmd(app))

	rootCmd.AddCommand(cmd)
}

func parseFlagTime(cmd *cobra.Command, name string) (*time.Time, error) {
	if !cmd.Flags().Changed(name) {
		return nil, nil
	}
	raw, _ := cmd.Flags().GetString(name)
	for _, layout := range []string{dateTimeLayout, dateLayout, time.RFC3339} {
		if t, err := time.ParseInLocation(layout, raw, time.Local); err == nil {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("invalid date %q (expected %q or %q)", raw, dateLayout, dateTimeLayout)
}

func parseEmotion(raw string) (models.Emotion, error) {
	e := models.Emotion(strings.ToUpper(strings.TrimSpace(raw)))
	switch e {
	case models.EmotionConfident, models.EmotionFearful, models.EmotionGreedy,
		models.EmotionAnxious, models.EmotionNeutral, models.EmotionDisciplined:
		return e, nil
	}
	return "", fmt.Errorf("unknown emotion %q", raw)
}

func newTradeAddCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <ticker>",
		Short: "Log a new trade through the discipline gate",
		Long: `Log a new trade. Before the trade is committed it passes through the
gating sequence: a volatility-regime check, a risk-limit check, and the
discipline checklist. Any cancel along the way discards the trade entirely.`,
		Example: `  optjournal trade add SPY --direction long --kind call --strike 450 --expiry 2026-09-19 --entry 2.50 --qty 5
  optjournal trade add TSLA --direction short --kind put --strike 200 --expiry 2026-10-16 --entry 3.10 --qty 2 --sl 3.70 --target 1.90`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			prompter := NewPrompter(cmd, output)
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			if app.Store == nil {
				output.Error("Store not initialized.")
				return errors.ErrDatabaseError
			}

			trade, err := tradeFromFlags(cmd, args[0])
			if err != nil {
				output.Error("%v", err)
				return err
			}

			trades, err := app.Store.GetTrades(ctx, store.TradeFilter{})
			if err != nil {
				output.Error("Failed to load trades: %v", err)
				return err
			}

			// Volatility reading is advisory; a failed fetch means no check.
			var vix *float64
			if reading, verr := app.VIX.Current(ctx); verr == nil {
				vix = &reading.Value
				output.Dim("Volatility index: %.2f (as of %s)", reading.Value, FormatDateTime(reading.Timestamp))
			} else {
				app.Logger.Debug().Err(verr).Msg("volatility index unavailable")
			}

			creation, err := app.Engine.BeginCreation(*trade, trades, vix)
			if err != nil {
				output.Error("%v", err)
				return err
			}

			yes, _ := cmd.Flags().GetBool("yes")

			for {
				adv := creation.Advance()
				if adv == nil {
					break
				}
				output.Warning("⚠ %s", adv.Message)
				output.Printf("  Current: %.2f   Limit: %.2f\n", adv.Current, adv.Limit)
				if !yes && !prompter.YesNo("Proceed anyway?", false) {
					creation.Cancel()
					output.Warning("Trade creation cancelled. Nothing was saved.")
					return nil
				}
				if err := creation.Acknowledge(); err != nil {
					return err
				}
				logging.LogAdvisory(app.Logger, string(adv.Kind), adv.Current, adv.Limit)
			}

			pending := creation.Trade()
			risk := creation.Risk()
			output.Bold("Pending Trade")
			output.Printf("  %s %s %s x %d @ %s\n", pending.Ticker, pending.Direction, pending.Kind, pending.Quantity, FormatPrice(pending.EntryPrice))
			if pending.TargetPrice != nil && pending.StopLossPrice != nil {
				output.Printf("  Target: %s   Stop: %s\n", FormatPrice(*pending.TargetPrice), FormatPrice(*pending.StopLossPrice))
			}
			output.Printf("  Capital at risk: %s (%.1f%% of balance, max %s)\n",
				FormatCurrency(risk.RiskAmount), risk.PercentOfBalance, FormatCurrency(risk.MaxAllowed))
			output.Println()

			output.Bold("Discipline Checklist")
			checks := make(map[string]bool)
			for _, item := range journal.InteractiveItems(app.Engine.ChecklistItems()) {
				if yes {
					checks[item.ID] = true
					continue
				}
				checks[item.ID] = prompter.YesNo("  "+item.Label+"?", false)
			}

			reason, _ := cmd.Flags().GetString("reason")
			if !yes && !prompter.YesNo("Commit this trade?", false) {
				creation.Cancel()
				output.Warning("Trade creation cancelled. Nothing was saved.")
				return nil
			}

			committed, err := creation.Submit(checks, reason)
			if err != nil {
				return err
			}
			if committed.DisciplineScore < 100 && committed.ViolationReason == "" && !yes {
				committed.ViolationReason = prompter.Line("Violation reason (optional):")
			}

			if err := app.Store.SaveTrade(ctx, &committed); err != nil {
				output.Error("Failed to save trade: %v", err)
				return err
			}

			logging.LogGateOutcome(app.Logger, committed.ID, committed.DisciplineScore, true)
			logging.LogTransition(app.Logger, committed.ID, committed.Ticker, "create")

			if output.IsJSON() {
				return output.JSON(committed)
			}
			output.Success("✓ Trade logged: %s", committed.ID)
			output.Printf("  Discipline score: %d/100\n", committed.DisciplineScore)
			return nil
		},
	}

	cmd.Flags().String("direction", "long", "Trade direction (long, short)")
	cmd.Flags().String("kind", "call", "Instrument kind (call, put, shares)")
	cmd.Flags().Float64("strike", 0, "Strike price (options)")
	cmd.Flags().String("expiry", "", "Expiration date (options), e.g. 2026-09-19")
	cmd.Flags().Float64("entry", 0, "Entry price per share")
	cmd.Flags().String("date", "", "Entry date-time (default: now)")
	cmd.Flags().Int("qty", 1, "Contract count")
	cmd.Flags().Float64("fees", 0, "Total fees/commission")
	cmd.Flags().Float64("target", 0, "Target price (default: derived from entry)")
	cmd.Flags().Float64("sl", 0, "Stop-loss price (default: derived from entry)")
	cmd.Flags().String("emotion", "neutral", "Entry emotion (confident, fearful, greedy, anxious, neutral, disciplined)")
	cmd.Flags().String("setup", "", "Setup/pattern tag")
	cmd.Flags().String("notes", "", "Free-text notes")
	cmd.Flags().String("reason", "", "Violation reason when the checklist is not fully satisfied")
	cmd.Flags().Bool("yes", false, "Acknowledge all advisories and checklist items")

	return cmd
}

func tradeFromFlags(cmd *cobra.Command, ticker string) (*models.Trade, error) {
	direction, _ := cmd.Flags().GetString("direction")
	kind, _ := cmd.Flags().GetString("kind")
	entry, _ := cmd.Flags().GetFloat64("entry")
	qty, _ := cmd.Flags().GetInt("qty")
	fees, _ := cmd.Flags().GetFloat64("fees")
	setup, _ := cmd.Flags().GetString("setup")
	notes, _ := cmd.Flags().GetString("notes")

	emotionRaw, _ := cmd.Flags().GetString("emotion")
	emotion, err := parseEmotion(emotionRaw)
	if err != nil {
		return nil, err
	}

	t := &models.Trade{
		Ticker:       ticker,
		Direction:    models.Direction(strings.ToUpper(direction)),
		Kind:         models.OptionKind(strings.ToUpper(kind)),
		EntryPrice:   entry,
		Quantity:     qty,
		Fees:         fees,
		EntryEmotion: emotion,
		Setup:        setup,
		Notes:        notes,
	}

	if cmd.Flags().Changed("strike") {
		strike, _ := cmd.Flags().GetFloat64("strike")
		t.StrikePrice = &strike
	}
	expiry, err := parseFlagTime(cmd, "expiry")
	if err != nil {
		return nil, err
	}
	t.Expiration = expiry

	entryDate, err := parseFlagTime(cmd, "date")
	if err != nil {
		return nil, err
	}
	if entryDate != nil {
		t.EntryDate = *entryDate
	}

	if cmd.Flags().Changed("target") {
		target, _ := cmd.Flags().GetFloat64("target")
		t.TargetPrice = &target
	}
	if cmd.Flags().Changed("sl") {
		sl, _ := cmd.Flags().GetFloat64("sl")
		t.StopLossPrice = &sl
	}

	return t, nil
}

func newTradeCloseCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "close <trade-id>",
		Short: "Close an open trade",
		Long: `Close an open trade at the given exit price. The exit date defaults to
now and the realized P&L is recomputed from the trade's entry facts.`,
		Example: `  optjournal trade close 01J8ZQ3F --price 3.15
  optjournal trade close 01J8ZQ3F --price 3.15 --date "2026-08-29 15:45" --emotion disciplined
  optjournal trade close 01J8ZQ3F --estimate`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			prompter := NewPrompter(cmd, output)
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			if app.Store == nil {
				output.Error("Store not initialized.")
				return errors.ErrDatabaseError
			}

			trade, err := app.Store.GetTrade(ctx, args[0])
			if err != nil {
				output.Error("%v", err)
				return err
			}

			price, _ := cmd.Flags().GetFloat64("price")
			useEstimate, _ := cmd.Flags().GetBool("estimate")
			if !cmd.Flags().Changed("price") && useEstimate {
				price, err = estimateExitPrice(ctx, app, output, prompter, *trade)
				if err != nil {
					return err
				}
			}

			exitDate, err := parseFlagTime(cmd, "date")
			if err != nil {
				output.Error("%v", err)
				return err
			}

			var exitEmotion *models.Emotion
			if cmd.Flags().Changed("emotion") {
				raw, _ := cmd.Flags().GetString("emotion")
				e, perr := parseEmotion(raw)
				if perr != nil {
					output.Error("%v", perr)
					return perr
				}
				exitEmotion = &e
			}

			trades, err := app.Store.GetTrades(ctx, store.TradeFilter{})
			if err != nil {
				output.Error("Failed to load trades: %v", err)
				return err
			}

			closed, advisories, err := app.Engine.Close(*trade, price, exitDate, exitEmotion, trades)
			if err != nil {
				output.Error("%v", err)
				return err
			}
			for _, adv := range advisories {
				output.Warning("⚠ %s (current: %.1f, limit: %.1f)", adv.Message, adv.Current, adv.Limit)
			}

			if err := app.Store.UpdateTrade(ctx, &closed); err != nil {
				output.Error("Failed to update trade: %v", err)
				return err
			}
			logging.LogTransition(app.Logger, closed.ID, closed.Ticker, "close")

			if output.IsJSON() {
				return output.JSON(closed)
			}
			output.Success("✓ Trade closed")
			output.Printf("  P&L:     %s\n", output.FormatPnL(*closed.PnL))
			output.Printf("  Outcome: %s\n", formatOutcome(output, journal.ClassifyOutcome(closed)))
			return nil
		},
	}

	cmd.Flags().Float64("price", 0, "Exit price per share")
	cmd.Flags().String("date", "", "Exit date-time (default: now)")
	cmd.Flags().String("emotion", "", "Exit emotion (default: neutral)")
	cmd.Flags().Bool("estimate", false, "Pre-fill the exit price from the market-data estimate")

	return cmd
}

// estimateExitPrice consults the price estimator and asks the user to accept
// the suggested value. Estimator failures simply leave the price unset.
func estimateExitPrice(ctx context.Context, app *App, output *Output, prompter *Prompter, trade models.Trade) (float64, error) {
	if app.Prices == nil {
		return 0, fmt.Errorf("no price estimator configured; pass --price")
	}
	est, err := app.Prices.EstimateExit(ctx, trade)
	if err != nil {
		app.Logger.Warn().Err(err).Msg("price estimate unavailable")
		return 0, fmt.Errorf("price estimate unavailable; pass --price")
	}
	if est.Text != "" {
		output.Dim("%s", est.Text)
	}
	for _, src := range est.Sources {
		output.Dim("  source: %s (%s)", src.Title, src.URI)
	}
	if est.Price == nil {
		return 0, fmt.Errorf("no price in estimate; pass --price")
	}
	output.Printf("Estimated exit price: %s\n", FormatPrice(*est.Price))
	if !prompter.YesNo("Use this price?", true) {
		return 0, fmt.Errorf("estimate declined; pass --price")
	}
	return *est.Price, nil
}

func newTradeReopenCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "reopen <trade-id>",
		Short: "Reopen a closed trade",
		Long:  "Reopen a closed trade, clearing its exit price, exit date, P&L, and exit emotion.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			if app.Store == nil {
				output.Error("Store not initialized.")
				return errors.ErrDatabaseError
			}

			trade, err := app.Store.GetTrade(ctx, args[0])
			if err != nil {
				output.Error("%v", err)
				return err
			}

			reopened, err := app.Engine.Reopen(*trade)
			if err != nil {
				output.Error("%v", err)
				return err
			}

			if err := app.Store.UpdateTrade(ctx, &reopened); err != nil {
				output.Error("Failed to update trade: %v", err)
				return err
			}
			logging.LogTransition(app.Logger, reopened.ID, reopened.Ticker, "reopen")

			if output.IsJSON() {
				return output.JSON(reopened)
			}
			output.Success("✓ Trade reopened")
			return nil
		},
	}
}

func newTradeEditCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit <trade-id>",
		Short: "Edit a trade",
		Long: `Edit trade fields. When a closed trade's entry price, exit price,
quantity, direction, or fees change, the realized P&L is recomputed.
Target/stop defaults are only re-derived with --recalc-defaults.`,
		Example: `  optjournal trade edit 01J8ZQ3F --entry 2.60 --recalc-defaults
  optjournal trade edit 01J8ZQ3F --qty 10 --fees 2.60
  optjournal trade edit 01J8ZQ3F --notes "chased the entry"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			if app.Store == nil {
				output.Error("Store not initialized.")
				return errors.ErrDatabaseError
			}

			trade, err := app.Store.GetTrade(ctx, args[0])
			if err != nil {
				output.Error("%v", err)
				return err
			}

			req, err := editRequestFromFlags(cmd)
			if err != nil {
				output.Error("%v", err)
				return err
			}

			trades, err := app.Store.GetTrades(ctx, store.TradeFilter{})
			if err != nil {
				output.Error("Failed to load trades: %v", err)
				return err
			}

			edited, advisories, err := app.Engine.ApplyEdit(*trade, *req, trades)
			if err != nil {
				output.Error("%v", err)
				return err
			}
			for _, adv := range advisories {
				output.Warning("⚠ %s (current: %.1f, limit: %.1f)", adv.Message, adv.Current, adv.Limit)
			}

			if err := app.Store.UpdateTrade(ctx, &edited); err != nil {
				output.Error("Failed to update trade: %v", err)
				return err
			}
			logging.LogTransition(app.Logger, edited.ID, edited.Ticker, "edit")

			if output.IsJSON() {
				return output.JSON(edited)
			}
			output.Success("✓ Trade updated")
			if edited.PnL != nil {
				output.Printf("  P&L: %s\n", output.FormatPnL(*edited.PnL))
			}
			return nil
		},
	}

	cmd.Flags().String("ticker", "", "Ticker symbol")
	cmd.Flags().String("direction", "", "Trade direction (long, short)")
	cmd.Flags().Float64("entry", 0, "Entry price per share")
	cmd.Flags().String("entry-date", "", "Entry date-time")
	cmd.Flags().Int("qty", 0, "Contract count")
	cmd.Flags().Float64("fees", 0, "Total fees/commission")
	cmd.Flags().Float64("exit-price", 0, "Exit price (closed trades only)")
	cmd.Flags().String("exit-date", "", "Exit date-time (closed trades only)")
	cmd.Flags().Float64("target", 0, "Target price")
	cmd.Flags().Float64("sl", 0, "Stop-loss price")
	cmd.Flags().String("emotion", "", "Entry emotion")
	cmd.Flags().String("exit-emotion", "", "Exit emotion (closed trades only)")
	cmd.Flags().String("notes", "", "Free-text notes")
	cmd.Flags().String("setup", "", "Setup/pattern tag")
	cmd.Flags().Bool("recalc-defaults", false, "Re-derive target/stop from entry price and direction")

	return cmd
}

func editRequestFromFlags(cmd *cobra.Command) (*journal.EditRequest, error) {
	req := &journal.EditRequest{}

	if cmd.Flags().Changed("ticker") {
		v, _ := cmd.Flags().GetString("ticker")
		req.Ticker = &v
	}
	if cmd.Flags().Changed("direction") {
		raw, _ := cmd.Flags().GetString("direction")
		d := models.Direction(strings.ToUpper(raw))
		req.Direction = &d
	}
	if cmd.Flags().Changed("entry") {
		v, _ := cmd.Flags().GetFloat64("entry")
		req.EntryPrice = &v
	}
	entryDate, err := parseFlagTime(cmd, "entry-date")
	if err != nil {
		return nil, err
	}
	req.EntryDate = entryDate
	if cmd.Flags().Changed("qty") {
		v, _ := cmd.Flags().GetInt("qty")
		req.Quantity = &v
	}
	if cmd.Flags().Changed("fees") {
		v, _ := cmd.Flags().GetFloat64("fees")
		req.Fees = &v
	}
	if cmd.Flags().Changed("exit-price") {
		v, _ := cmd.Flags().GetFloat64("exit-price")
		req.ExitPrice = &v
	}
	exitDate, err := parseFlagTime(cmd, "exit-date")
	if err != nil {
		return nil, err
	}
	req.ExitDate = exitDate
	if cmd.Flags().Changed("target") {
		v, _ := cmd.Flags().GetFloat64("target")
		req.TargetPrice = &v
	}
	if cmd.Flags().Changed("sl") {
		v, _ := cmd.Flags().GetFloat64("sl")
		req.StopLossPrice = &v
	}
	if cmd.Flags().Changed("emotion") {
		raw, _ := cmd.Flags().GetString("emotion")
		e, perr := parseEmotion(raw)
		if perr != nil {
			return nil, perr
		}
		req.EntryEmotion = &e
	}
	if cmd.Flags().Changed("exit-emotion") {
		raw, _ := cmd.Flags().GetString("exit-emotion")
		e, perr := parseEmotion(raw)
		if perr != nil {
			return nil, perr
		}
		req.ExitEmotion = &e
	}
	if cmd.Flags().Changed("notes") {
		v, _ := cmd.Flags().GetString("notes")
		req.Notes = &v
	}
	if cmd.Flags().Changed("setup") {
		v, _ := cmd.Flags().GetString("setup")
		req.Setup = &v
	}
	req.RecalcDefaults, _ = cmd.Flags().GetBool("recalc-defaults")

	return req, nil
}

func newTradeDeleteCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <trade-id>",
		Short: "Delete a trade",
		Long:  "Permanently delete a trade. Irreversible, so --force is required.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			if app.Store == nil {
				output.Error("Store not initialized.")
				return errors.ErrDatabaseError
			}

			force, _ := cmd.Flags().GetBool("force")
			if !force {
				output.Warning("Deleting a trade is irreversible. Use --force to confirm.")
				return nil
			}

			if err := app.Store.DeleteTrade(ctx, args[0]); err != nil {
				output.Error("%v", err)
				return err
			}
			logging.LogTransition(app.Logger, args[0], "", "delete")

			output.Success("✓ Trade deleted")
			return nil
		},
	}

	cmd.Flags().Bool("force", false, "Confirm deletion")
	return cmd
}

func newTradeShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <trade-id>",
		Short: "Show a trade in full",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			if app.Store == nil {
				output.Error("Store not initialized.")
				return errors.ErrDatabaseError
			}

			trade, err := app.Store.GetTrade(ctx, args[0])
			if err != nil {
				output.Error("%v", err)
				return err
			}

			if output.IsJSON() {
				return output.JSON(trade)
			}

			printTradeDetail(output, app, *trade)
			return nil
		},
	}
}

func printTradeDetail(output *Output, app *App, t models.Trade) {
	output.Bold("%s  %s %s", t.Ticker, t.Direction, t.Kind)
	output.Printf("  ID:        %s\n", t.ID)
	output.Printf("  Status:    %s\n", t.Status)
	if t.StrikePrice != nil {
		output.Printf("  Strike:    %s\n", FormatPrice(*t.StrikePrice))
	}
	if t.Expiration != nil {
		output.Printf("  Expiry:    %s\n", FormatDate(*t.Expiration))
	}
	output.Printf("  Entry:     %s x %d @ %s\n", FormatDateTime(t.EntryDate), t.Quantity, FormatPrice(t.EntryPrice))
	if t.Fees > 0 {
		output.Printf("  Fees:      %s\n", FormatCurrency(t.Fees))
	}
	if t.TargetPrice != nil {
		output.Printf("  Target:    %s\n", FormatPrice(*t.TargetPrice))
	}
	if t.StopLossPrice != nil {
		output.Printf("  Stop:      %s\n", FormatPrice(*t.StopLossPrice))
	}
	if t.ExitDate != nil && t.ExitPrice != nil {
		output.Printf("  Exit:      %s @ %s\n", FormatDateTime(*t.ExitDate), FormatPrice(*t.ExitPrice))
	}
	if t.PnL != nil {
		output.Printf("  P&L:       %s\n", output.FormatPnL(*t.PnL))
		output.Printf("  Outcome:   %s\n", formatOutcome(output, journal.ClassifyOutcome(t)))
	}
	output.Printf("  Emotion:   %s", t.EntryEmotion)
	if t.ExitEmotion != nil {
		output.Printf(" → %s", *t.ExitEmotion)
	}
	output.Println()
	if t.Setup != "" {
		output.Printf("  Setup:     %s\n", t.Setup)
	}
	if t.Notes != "" {
		output.Printf("  Notes:     %s\n", t.Notes)
	}

	output.Println()
	output.Bold("Discipline: %d/100", t.DisciplineScore)
	for _, item := range app.Engine.ChecklistItems() {
		if !item.Enabled {
			continue
		}
		mark := output.Red("✗")
		if t.Checklist[item.ID] {
			mark = output.Green("✓")
		}
		output.Printf("  %s %s\n", mark, item.Label)
	}
	if t.ViolationReason != "" {
		output.Printf("  Reason: %s\n", t.ViolationReason)
	}
}

func formatOutcome(output *Output, outcome models.Outcome) string {
	switch outcome {
	case models.OutcomeStopViolated:
		return output.Red("STOP VIOLATED")
	case models.OutcomeTargetHit:
		return output.Green("TARGET HIT")
	case models.OutcomeNeutral:
		return "NEUTRAL"
	default:
		return "—"
	}
}

func newTradeListCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List trades",
		Example: `  optjournal trade list
  optjournal trade list --status open
  optjournal trade list --ticker SPY --limit 20
  optjournal trade list --setup breakout`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			if app.Store == nil {
				output.Error("Store not initialized.")
				return errors.ErrDatabaseError
			}

			filter := store.TradeFilter{}
			if ticker, _ := cmd.Flags().GetString("ticker"); ticker != "" {
				filter.Ticker = strings.ToUpper(ticker)
			}
			if status, _ := cmd.Flags().GetString("status"); status != "" {
				filter.Status = models.TradeStatus(strings.ToUpper(status))
			}
			filter.Setup, _ = cmd.Flags().GetString("setup")
			filter.Limit, _ = cmd.Flags().GetInt("limit")

			trades, err := app.Store.GetTrades(ctx, filter)
			if err != nil {
				output.Error("Failed to fetch trades: %v", err)
				return err
			}

			if output.IsJSON() {
				return output.JSON(trades)
			}

			if len(trades) == 0 {
				output.Info("No trades found.")
				return nil
			}

			table := NewTable(output, "ID", "Date", "Ticker", "Kind", "Dir", "Qty", "Entry", "Exit", "P&L", "Outcome", "Score")
			for _, t := range trades {
				exit := "—"
				if t.ExitPrice != nil {
					exit = FormatPrice(*t.ExitPrice)
				}
				pnl := "—"
				if t.PnL != nil {
					pnl = output.FormatPnL(*t.PnL)
				}
				table.AddRow(
					TruncateString(t.ID, 10),
					FormatDate(t.EntryDate),
					t.Ticker,
					string(t.Kind),
					string(t.Direction),
					fmt.Sprintf("%d", t.Quantity),
					FormatPrice(t.EntryPrice),
					exit,
					pnl,
					formatOutcome(output, journal.ClassifyOutcome(t)),
					fmt.Sprintf("%d", t.DisciplineScore),
				)
			}
			table.Render()
			return nil
		},
	}

	cmd.Flags().String("ticker", "", "Filter by ticker")
	cmd.Flags().String("status", "", "Filter by status (open, closed)")
	cmd.Flags().String("setup", "", "Filter by setup tag")
	cmd.Flags().Int("limit", 50, "Maximum trades to list")

	return cmd
}
