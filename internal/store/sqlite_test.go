package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"options-journal/internal/errors"
	"options-journal/internal/models"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "journal.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func fptr(v float64) *float64 { return &v }

func sampleTrade(id string) models.Trade {
	now := time.Now().UTC().Truncate(time.Second)
	exitDate := now.Add(2 * time.Hour)
	exitEmotion := models.EmotionDisciplined
	return models.Trade{
		ID:            id,
		Ticker:        "SPY",
		Direction:     models.Long,
		Kind:          models.KindCall,
		StrikePrice:   fptr(450),
		Expiration:    &exitDate,
		EntryDate:     now,
		EntryPrice:    2.50,
		Quantity:      2,
		Fees:          1.30,
		ExitDate:      &exitDate,
		ExitPrice:     fptr(3.10),
		TargetPrice:   fptr(3.00),
		StopLossPrice: fptr(2.25),
		PnL:           fptr(118.70),
		EntryEmotion:  models.EmotionConfident,
		ExitEmotion:   &exitEmotion,
		Checklist: map[string]bool{
			models.CheckInStrategyPlan: true,
			models.CheckRiskDefined:    false,
		},
		DisciplineScore: 83,
		ViolationReason: "risk was not fully defined",
		Status:          models.StatusClosed,
		Notes:           "earnings play",
		Setup:           "breakout",
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

func TestSaveAndGetTrade(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	want := sampleTrade("t1")
	require.NoError(t, store.SaveTrade(ctx, &want))

	got, err := store.GetTrade(ctx, "t1")
	require.NoError(t, err)

	assert.Equal(t, want.ID, got.ID)
	assert.Equal(t, want.Ticker, got.Ticker)
	assert.Equal(t, want.Direction, got.Direction)
	assert.Equal(t, want.Kind, got.Kind)
	assert.Equal(t, *want.StrikePrice, *got.StrikePrice)
	assert.Equal(t, want.EntryPrice, got.EntryPrice)
	assert.Equal(t, want.Quantity, got.Quantity)
	assert.Equal(t, want.Fees, got.Fees)
	assert.Equal(t, *want.ExitPrice, *got.ExitPrice)
	assert.Equal(t, *want.TargetPrice, *got.TargetPrice)
	assert.Equal(t, *want.StopLossPrice, *got.StopLossPrice)
	assert.Equal(t, *want.PnL, *got.PnL)
	assert.Equal(t, want.EntryEmotion, got.EntryEmotion)
	assert.Equal(t, *want.ExitEmotion, *got.ExitEmotion)
	assert.Equal(t, want.Checklist, got.Checklist)
	assert.Equal(t, want.DisciplineScore, got.DisciplineScore)
	assert.Equal(t, want.ViolationReason, got.ViolationReason)
	assert.Equal(t, want.Status, got.Status)
	assert.Equal(t, want.Notes, got.Notes)
	assert.Equal(t, want.Setup, got.Setup)
	assert.True(t, want.EntryDate.Equal(got.EntryDate))
	assert.True(t, want.ExitDate.Equal(*got.ExitDate))
}

func TestGetTradeNilFieldsSurvive(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	open := models.Trade{
		ID:           "open1",
		Ticker:       "QQQ",
		Direction:    models.Short,
		Kind:         models.KindShares,
		EntryDate:    time.Now().UTC().Truncate(time.Second),
		EntryPrice:   380.00,
		Quantity:     10,
		EntryEmotion: models.EmotionNeutral,
		Status:       models.StatusOpen,
		CreatedAt:    time.Now().UTC().Truncate(time.Second),
		UpdatedAt:    time.Now().UTC().Truncate(time.Second),
	}
	require.NoError(t, store.SaveTrade(ctx, &open))

	got, err := store.GetTrade(ctx, "open1")
	require.NoError(t, err)
	assert.Nil(t, got.StrikePrice)
	assert.Nil(t, got.Expiration)
	assert.Nil(t, got.ExitDate)
	assert.Nil(t, got.ExitPrice)
	assert.Nil(t, got.TargetPrice)
	assert.Nil(t, got.StopLossPrice)
	assert.Nil(t, got.PnL)
	assert.Nil(t, got.ExitEmotion)
}

func TestGetTradeCorruptChecklist(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	trade := sampleTrade("t1")
	require.NoError(t, store.SaveTrade(ctx, &trade))

	_, err := store.db.ExecContext(ctx, "UPDATE trades SET checklist = 'not json' WHERE id = ?", "t1")
	require.NoError(t, err)

	_, err = store.GetTrade(ctx, "t1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "checklist")
}

func TestGetTradeNotFound(t *testing.T) {
	store := newTestStore(t)

	_, err := store.GetTrade(context.Background(), "missing")
	assert.ErrorIs(t, err, errors.ErrTradeNotFound)
}

func TestUpdateTrade(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	trade := sampleTrade("t1")
	require.NoError(t, store.SaveTrade(ctx, &trade))

	trade.Notes = "revised thesis"
	trade.ExitPrice = fptr(3.50)
	trade.PnL = fptr(198.70)
	require.NoError(t, store.UpdateTrade(ctx, &trade))

	got, err := store.GetTrade(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, "revised thesis", got.Notes)
	assert.Equal(t, 3.50, *got.ExitPrice)
	assert.Equal(t, 198.70, *got.PnL)
}

func TestUpdateTradeNotFound(t *testing.T) {
	store := newTestStore(t)

	trade := sampleTrade("missing")
	err := store.UpdateTrade(context.Background(), &trade)
	assert.ErrorIs(t, err, errors.ErrTradeNotFound)
}

func TestDeleteTrade(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	trade := sampleTrade("t1")
	require.NoError(t, store.SaveTrade(ctx, &trade))
	require.NoError(t, store.DeleteTrade(ctx, "t1"))

	_, err := store.GetTrade(ctx, "t1")
	assert.ErrorIs(t, err, errors.ErrTradeNotFound)

	assert.ErrorIs(t, store.DeleteTrade(ctx, "t1"), errors.ErrTradeNotFound)
}

func TestGetTradesFilters(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	seed := []struct {
		id     string
		ticker string
		status models.TradeStatus
		setup  string
		day    int
	}{
		{"a", "SPY", models.StatusClosed, "breakout", 1},
		{"b", "SPY", models.StatusOpen, "reversal", 2},
		{"c", "QQQ", models.StatusOpen, "breakout", 3},
		{"d", "IWM", models.StatusClosed, "breakout", 4},
	}
	for _, s := range seed {
		tr := sampleTrade(s.id)
		tr.Ticker = s.ticker
		tr.Status = s.status
		tr.Setup = s.setup
		tr.EntryDate = base.AddDate(0, 0, s.day)
		require.NoError(t, store.SaveTrade(ctx, &tr))
	}

	byTicker, err := store.GetTrades(ctx, TradeFilter{Ticker: "SPY"})
	require.NoError(t, err)
	assert.Len(t, byTicker, 2)

	byStatus, err := store.GetTrades(ctx, TradeFilter{Status: models.StatusOpen})
	require.NoError(t, err)
	assert.Len(t, byStatus, 2)

	bySetup, err := store.GetTrades(ctx, TradeFilter{Setup: "breakout"})
	require.NoError(t, err)
	assert.Len(t, bySetup, 3)

	byRange, err := store.GetTrades(ctx, TradeFilter{
		StartDate: base.AddDate(0, 0, 2),
		EndDate:   base.AddDate(0, 0, 3),
	})
	require.NoError(t, err)
	assert.Len(t, byRange, 2)

	limited, err := store.GetTrades(ctx, TradeFilter{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, limited, 2)

	all, err := store.GetTrades(ctx, TradeFilter{})
	require.NoError(t, err)
	require.Len(t, all, 4)
	// Newest entry first.
	assert.Equal(t, "d", all[0].ID)
	assert.Equal(t, "a", all[3].ID)
}
