package journal

import (
	"testing"
	"time"

	"options-journal/internal/config"
	"options-journal/internal/errors"
	"options-journal/internal/models"
)

func testEngine() *Engine {
	return NewEngine(&config.Config{
		Journal: config.JournalConfig{
			InitialCapital:       10000,
			DefaultTargetPercent: 20,
			DefaultStopPercent:   10,
			MaxTradesPerDay:      3,
			MaxRiskPercent:       4,
		},
		Volatility: config.VolatilityConfig{Threshold: 25},
	})
}

func openTrade() models.Trade {
	return models.Trade{
		ID:         "t1",
		Ticker:     "SPY",
		Direction:  models.Long,
		Kind:       models.KindShares,
		EntryDate:  time.Now().Add(-24 * time.Hour),
		EntryPrice: 2.50,
		Quantity:   2,
		Fees:       1.30,
		Status:     models.StatusOpen,
	}
}

func TestCloseDefaultsAndPnL(t *testing.T) {
	e := testEngine()

	closed, advisories, err := e.Close(openTrade(), 3.10, nil, nil, nil)
	if err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if closed.Status != models.StatusClosed {
		t.Errorf("Status = %v, want CLOSED", closed.Status)
	}
	if closed.ExitDate == nil || time.Since(*closed.ExitDate) > time.Minute {
		t.Error("exit date should default to now")
	}
	if closed.ExitEmotion == nil || *closed.ExitEmotion != models.EmotionNeutral {
		t.Errorf("exit emotion should default to NEUTRAL, got %v", closed.ExitEmotion)
	}
	if closed.PnL == nil || *closed.PnL != 118.70 {
		t.Errorf("PnL = %v, want 118.70", closed.PnL)
	}
	if len(advisories) != 0 {
		t.Errorf("unexpected advisories: %v", advisories)
	}
}

func TestCloseRejections(t *testing.T) {
	e := testEngine()

	closedAlready := openTrade()
	closedAlready.Status = models.StatusClosed
	if _, _, err := e.Close(closedAlready, 3.00, nil, nil, nil); !errors.Is(err, errors.ErrTradeClosed) {
		t.Errorf("closing a closed trade: got %v, want ErrTradeClosed", err)
	}

	if _, _, err := e.Close(openTrade(), 0, nil, nil, nil); err == nil {
		t.Error("expected error for zero exit price")
	}

	tr := openTrade()
	before := tr.EntryDate.Add(-time.Hour)
	if _, _, err := e.Close(tr, 3.00, &before, nil, nil); err == nil {
		t.Error("expected error for exit before entry")
	}
}

func TestCloseExplicitFields(t *testing.T) {
	e := testEngine()
	tr := openTrade()
	when := tr.EntryDate.Add(2 * time.Hour)
	emotion := models.EmotionDisciplined

	closed, _, err := e.Close(tr, 3.00, &when, &emotion, nil)
	if err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if !closed.ExitDate.Equal(when) {
		t.Errorf("ExitDate = %v, want %v", closed.ExitDate, when)
	}
	if *closed.ExitEmotion != models.EmotionDisciplined {
		t.Errorf("ExitEmotion = %v, want DISCIPLINED", *closed.ExitEmotion)
	}
}

func TestCloseRaisesDailyLimitAdvisory(t *testing.T) {
	e := testEngine()
	today := time.Now()

	// Three same-day round trips already on the books.
	var history []models.Trade
	for _, id := range []string{"a", "b", "c"} {
		tr := openTrade()
		tr.ID = id
		tr.EntryDate = today
		tr.ExitDate = &today
		history = append(history, tr)
	}

	tr := openTrade()
	tr.EntryDate = today
	_, advisories, err := e.Close(tr, 3.00, nil, nil, history)
	if err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if len(advisories) != 1 || advisories[0].Kind != AdvisoryDailyLimit {
		t.Fatalf("expected a daily-limit advisory, got %v", advisories)
	}
}

func TestReopenClearsExitCluster(t *testing.T) {
	e := testEngine()

	closed, _, err := e.Close(openTrade(), 3.10, nil, nil, nil)
	if err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	reopened, err := e.Reopen(closed)
	if err != nil {
		t.Fatalf("Reopen failed: %v", err)
	}
	if reopened.Status != models.StatusOpen {
		t.Errorf("Status = %v, want OPEN", reopened.Status)
	}
	if reopened.ExitPrice != nil || reopened.ExitDate != nil || reopened.PnL != nil || reopened.ExitEmotion != nil {
		t.Error("reopen must clear exit price, exit date, P&L, and exit emotion")
	}

	if _, err := e.Reopen(reopened); !errors.Is(err, errors.ErrTradeOpen) {
		t.Errorf("reopening an open trade: got %v, want ErrTradeOpen", err)
	}
}

func TestCloseReopenCloseIsIdempotent(t *testing.T) {
	e := testEngine()

	first, _, err := e.Close(openTrade(), 3.10, nil, nil, nil)
	if err != nil {
		t.Fatalf("first close failed: %v", err)
	}
	reopened, err := e.Reopen(first)
	if err != nil {
		t.Fatalf("Reopen failed: %v", err)
	}
	second, _, err := e.Close(reopened, 3.10, nil, nil, nil)
	if err != nil {
		t.Fatalf("second close failed: %v", err)
	}
	if *second.PnL != *first.PnL {
		t.Errorf("second close PnL = %v, first = %v", *second.PnL, *first.PnL)
	}
	if *second.ExitPrice != *first.ExitPrice {
		t.Errorf("second close ExitPrice = %v, first = %v", *second.ExitPrice, *first.ExitPrice)
	}
}

func TestApplyEditRejectsExitFieldsOnOpenTrade(t *testing.T) {
	e := testEngine()

	_, _, err := e.ApplyEdit(openTrade(), EditRequest{ExitPrice: fptr(3.00)}, nil)
	if err == nil {
		t.Fatal("expected error editing exit price of an open trade")
	}
	var verr *errors.ValidationError
	if !errors.As(err, &verr) {
		t.Errorf("got %T, want *ValidationError", err)
	}
}

func TestApplyEditRecomputesPnL(t *testing.T) {
	e := testEngine()

	closed, _, err := e.Close(openTrade(), 3.10, nil, nil, nil)
	if err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	edited, _, err := e.ApplyEdit(closed, EditRequest{Quantity: intPtr(5)}, nil)
	if err != nil {
		t.Fatalf("ApplyEdit failed: %v", err)
	}
	// (3.10-2.50)*5*100 - 1.30
	if edited.PnL == nil || *edited.PnL != 298.70 {
		t.Errorf("PnL = %v, want 298.70", edited.PnL)
	}
}

func TestApplyEditDoesNotTouchRiskPlanWithoutRecalc(t *testing.T) {
	e := testEngine()
	tr := openTrade()
	tr.TargetPrice = fptr(9.99)
	tr.StopLossPrice = fptr(1.11)

	edited, _, err := e.ApplyEdit(tr, EditRequest{EntryPrice: fptr(4.00)}, nil)
	if err != nil {
		t.Fatalf("ApplyEdit failed: %v", err)
	}
	if *edited.TargetPrice != 9.99 || *edited.StopLossPrice != 1.11 {
		t.Error("target/stop must survive an entry-price edit without RecalcDefaults")
	}

	recalced, _, err := e.ApplyEdit(tr, EditRequest{EntryPrice: fptr(4.00), RecalcDefaults: true}, nil)
	if err != nil {
		t.Fatalf("ApplyEdit failed: %v", err)
	}
	if *recalced.TargetPrice != 4.80 || *recalced.StopLossPrice != 3.60 {
		t.Errorf("got target=%v stop=%v, want 4.80/3.60",
			*recalced.TargetPrice, *recalced.StopLossPrice)
	}
}

func TestApplyEditDateChangeCountsBothHalves(t *testing.T) {
	e := testEngine()
	day := time.Date(2026, 3, 10, 10, 0, 0, 0, time.Local)
	dayExit := day.Add(time.Hour)

	// 2.5 slots already consumed on the target day by other trades.
	history := []models.Trade{
		{ID: "a", EntryDate: day, ExitDate: tptr(day)},
		{ID: "b", EntryDate: day, ExitDate: tptr(day)},
		{ID: "c", EntryDate: day},
	}

	tr := openTrade()
	tr.Status = models.StatusClosed
	oldExit := tr.EntryDate.Add(time.Hour)
	tr.ExitDate = &oldExit
	tr.ExitPrice = fptr(3.00)
	tr.PnL = fptr(98.70)

	// Moving both halves onto the day projects 2.5 + 1.0, over the limit of 3.
	edited, advisories, err := e.ApplyEdit(tr, EditRequest{EntryDate: &day, ExitDate: &dayExit}, history)
	if err != nil {
		t.Fatalf("ApplyEdit failed: %v", err)
	}
	if len(advisories) != 1 {
		t.Fatalf("got %d advisories, want exactly 1: %v", len(advisories), advisories)
	}
	if advisories[0].Kind != AdvisoryDailyLimit {
		t.Errorf("advisory kind = %v, want DAILY_LIMIT", advisories[0].Kind)
	}
	if advisories[0].Current != 3.5 {
		t.Errorf("projected activity = %v, want 3.5", advisories[0].Current)
	}
	if !edited.EntryDate.Equal(day) || !edited.ExitDate.Equal(dayExit) {
		t.Error("dates were not applied")
	}
}

func TestApplyEditValidation(t *testing.T) {
	e := testEngine()

	if _, _, err := e.ApplyEdit(openTrade(), EditRequest{EntryPrice: fptr(-1)}, nil); err == nil {
		t.Error("expected error for negative entry price")
	}
	if _, _, err := e.ApplyEdit(openTrade(), EditRequest{Quantity: intPtr(0)}, nil); err == nil {
		t.Error("expected error for zero quantity")
	}
	empty := ""
	if _, _, err := e.ApplyEdit(openTrade(), EditRequest{Ticker: &empty}, nil); err == nil {
		t.Error("expected error for empty ticker")
	}
}

func intPtr(v int) *int { return &v }
