package store

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"options-journal/internal/models"
)

// Property: for any valid trade, saving it and reading it back produces an
// equivalent trade, including the nullable price fields and the checklist.
func TestProperty_TradeRoundTripConsistency(t *testing.T) {
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "property.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	defer store.Close()

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	parameters.Rng.Seed(time.Now().UnixNano())

	properties := gopter.NewProperties(parameters)

	tickers := []string{"SPY", "QQQ", "IWM", "AAPL", "TSLA", "NVDA", "AMD", "META"}
	directions := []models.Direction{models.Long, models.Short}
	emotions := []models.Emotion{
		models.EmotionConfident, models.EmotionFearful, models.EmotionGreedy,
		models.EmotionAnxious, models.EmotionNeutral, models.EmotionDisciplined,
	}

	var seq int

	properties.Property("save then get produces an equivalent trade", prop.ForAll(
		func(tickerIdx, dirIdx, emotionIdx int, entry float64, qty int, closed bool, hasStop bool) bool {
			ctx := context.Background()
			seq++

			now := time.Now().UTC().Truncate(time.Second)
			trade := models.Trade{
				ID:           fmt.Sprintf("prop-%d", seq),
				Ticker:       tickers[tickerIdx%len(tickers)],
				Direction:    directions[dirIdx%len(directions)],
				Kind:         models.KindShares,
				EntryDate:    now,
				EntryPrice:   entry,
				Quantity:     qty,
				Fees:         0.65,
				EntryEmotion: emotions[emotionIdx%len(emotions)],
				Status:       models.StatusOpen,
				Checklist:    map[string]bool{models.CheckInStrategyPlan: closed},
				CreatedAt:    now,
				UpdatedAt:    now,
			}
			if hasStop {
				stop := entry * 0.9
				trade.StopLossPrice = &stop
			}
			if closed {
				exit := entry * 1.1
				exitDate := now.Add(time.Hour)
				pnl := (exit - entry) * float64(qty) * 100
				emotion := emotions[(emotionIdx+1)%len(emotions)]
				trade.Status = models.StatusClosed
				trade.ExitPrice = &exit
				trade.ExitDate = &exitDate
				trade.PnL = &pnl
				trade.ExitEmotion = &emotion
			}

			if err := store.SaveTrade(ctx, &trade); err != nil {
				t.Logf("Failed to save trade: %v", err)
				return false
			}
			got, err := store.GetTrade(ctx, trade.ID)
			if err != nil {
				t.Logf("Failed to get trade: %v", err)
				return false
			}

			if got.Ticker != trade.Ticker || got.Direction != trade.Direction ||
				got.EntryPrice != trade.EntryPrice || got.Quantity != trade.Quantity ||
				got.Status != trade.Status || got.EntryEmotion != trade.EntryEmotion {
				t.Logf("Scalar mismatch: original=%+v retrieved=%+v", trade, *got)
				return false
			}
			if !optionalFloatEqual(trade.StopLossPrice, got.StopLossPrice) ||
				!optionalFloatEqual(trade.ExitPrice, got.ExitPrice) ||
				!optionalFloatEqual(trade.PnL, got.PnL) {
				t.Logf("Nullable float mismatch: original=%+v retrieved=%+v", trade, *got)
				return false
			}
			if len(got.Checklist) != len(trade.Checklist) ||
				got.Checklist[models.CheckInStrategyPlan] != trade.Checklist[models.CheckInStrategyPlan] {
				t.Logf("Checklist mismatch: original=%v retrieved=%v", trade.Checklist, got.Checklist)
				return false
			}
			if closed {
				if got.ExitDate == nil || !got.ExitDate.Equal(*trade.ExitDate) {
					t.Logf("ExitDate mismatch: original=%v retrieved=%v", trade.ExitDate, got.ExitDate)
					return false
				}
				if got.ExitEmotion == nil || *got.ExitEmotion != *trade.ExitEmotion {
					return false
				}
			} else if got.ExitDate != nil || got.ExitPrice != nil || got.PnL != nil || got.ExitEmotion != nil {
				t.Logf("Open trade grew exit fields: retrieved=%+v", *got)
				return false
			}

			return true
		},
		gen.IntRange(0, 7),
		gen.IntRange(0, 1),
		gen.IntRange(0, 5),
		gen.Float64Range(0.01, 500.0),
		gen.IntRange(1, 100),
		gen.Bool(),
		gen.Bool(),
	))

	properties.TestingRun(t)
}

func optionalFloatEqual(a, b *float64) bool {
	if (a == nil) != (b == nil) {
		return false
	}
	if a == nil {
		return true
	}
	return *a == *b
}
