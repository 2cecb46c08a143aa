package journal

import (
	"strings"
	"sync"
	"time"

	"options-journal/internal/config"
	"options-journal/internal/errors"
	"options-journal/internal/models"
)

// AdvisoryKind identifies a policy advisory raised during gating or close.
type AdvisoryKind string

const (
	AdvisoryVolatility AdvisoryKind = "VOLATILITY"
	AdvisoryDailyLimit AdvisoryKind = "DAILY_LIMIT"
	AdvisoryRiskLimit  AdvisoryKind = "RISK_LIMIT"
)

// Advisory is a non-fatal policy violation surfaced with quantitative
// detail. The caller offers an explicit proceed-or-revise choice; advisories
// never block a transition on their own.
type Advisory struct {
	Kind    AdvisoryKind
	Message string
	Current float64
	Limit   float64
}

// Engine orchestrates the trade state machine. It holds only settings and a
// clock; trade collections are passed into each call and updated by
// replacement, never mutated in place.
type Engine struct {
	journal      config.JournalConfig
	checklist    []models.ChecklistItem
	vixThreshold float64
	now          func() time.Time

	mu       sync.Mutex
	inFlight bool // at most one trade may be in gating at a time
}

// NewEngine creates a lifecycle engine from the loaded configuration.
func NewEngine(cfg *config.Config) *Engine {
	items := cfg.Checklist
	if len(items) == 0 {
		items = DefaultChecklist()
	} else {
		items = withLimitItems(items)
	}
	return &Engine{
		journal:      cfg.Journal,
		checklist:    items,
		vixThreshold: cfg.Volatility.Threshold,
		now:          time.Now,
	}
}

// ChecklistItems returns the effective checklist definition.
func (e *Engine) ChecklistItems() []models.ChecklistItem {
	return e.checklist
}

// validateNew checks a proposed trade before any state exists, normalizing
// the ticker. All failures are ValidationErrors naming the offending field.
func (e *Engine) validateNew(t *models.Trade) error {
	t.Ticker = strings.ToUpper(strings.TrimSpace(t.Ticker))
	if t.Ticker == "" {
		return errors.NewValidationError("ticker", t.Ticker, "must not be empty")
	}
	if !t.Direction.Valid() {
		return errors.NewValidationError("direction", t.Direction, "must be LONG or SHORT")
	}
	if !t.Kind.Valid() {
		return errors.NewValidationError("kind", t.Kind, "must be CALL, PUT, or SHARES")
	}
	if t.Kind.IsOption() {
		if t.StrikePrice == nil || *t.StrikePrice <= 0 {
			return errors.NewValidationError("strikePrice", t.StrikePrice, "required for option trades and must be positive")
		}
		if t.Expiration == nil {
			return errors.NewValidationError("expiration", nil, "required for option trades")
		}
	}
	if !finitePositive(t.EntryPrice) {
		return errors.NewValidationError("entryPrice", t.EntryPrice, "must be a finite positive number")
	}
	if t.Quantity <= 0 {
		return errors.NewValidationError("quantity", t.Quantity, "must be a positive integer")
	}
	if !finiteNonNegative(t.Fees) {
		return errors.NewValidationError("fees", t.Fees, "must be a finite non-negative number")
	}
	if t.EntryDate.IsZero() {
		t.EntryDate = e.now()
	}
	if t.EntryDate.After(e.now()) {
		return errors.NewValidationError("entryDate", t.EntryDate, "must not be in the future")
	}
	return nil
}

// fillDefaults populates the target and stop-loss prices from the configured
// default percentages when the user did not supply explicit values. This is
// default-fill only: deliberate user input is never overwritten.
func (e *Engine) fillDefaults(t *models.Trade) error {
	if t.TargetPrice != nil && t.StopLossPrice != nil {
		return nil
	}
	target, stop, err := DefaultTargetStop(
		t.EntryPrice, t.Direction,
		e.journal.DefaultTargetPercent/100, e.journal.DefaultStopPercent/100,
	)
	if err != nil {
		return err
	}
	if t.TargetPrice == nil {
		t.TargetPrice = &target
	}
	if t.StopLossPrice == nil {
		t.StopLossPrice = &stop
	}
	return nil
}

// dailyLimitAdvisory projects the activity count for the given day including
// extra pending units and returns an advisory when it would exceed the
// configured maximum.
func (e *Engine) dailyLimitAdvisory(trades []models.Trade, day time.Time, excludeID string, pendingUnits float64) *Advisory {
	if e.journal.MaxTradesPerDay <= 0 {
		return nil
	}
	projected := CountDailyActivity(trades, day, excludeID) + pendingUnits
	limit := float64(e.journal.MaxTradesPerDay)
	if projected <= limit {
		return nil
	}
	return &Advisory{
		Kind:    AdvisoryDailyLimit,
		Message: "daily trade limit would be exceeded",
		Current: projected,
		Limit:   limit,
	}
}

// Close transitions an open trade to Closed: validates the exit price,
// defaults the exit date to now and the exit emotion to neutral, and
// recomputes the realized P&L. A daily-limit advisory may accompany the
// result; it never fails the transition.
func (e *Engine) Close(t models.Trade, exitPrice float64, exitDate *time.Time, exitEmotion *models.Emotion, trades []models.Trade) (models.Trade, []Advisory, error) {
	if t.Status != models.StatusOpen {
		return t, nil, errors.ErrTradeClosed
	}
	if !finitePositive(exitPrice) {
		return t, nil, errors.NewValidationError("exitPrice", exitPrice, "must be a finite positive number")
	}

	when := e.now()
	if exitDate != nil {
		when = *exitDate
	}
	if when.Before(t.EntryDate) {
		return t, nil, errors.NewValidationError("exitDate", when, "must not be before the entry date")
	}

	pnl, err := RealizedPnL(t.EntryPrice, exitPrice, t.Quantity, t.Direction, t.Fees)
	if err != nil {
		return t, nil, err
	}

	emotion := models.EmotionNeutral
	if exitEmotion != nil {
		emotion = *exitEmotion
	}

	t.Status = models.StatusClosed
	t.ExitPrice = &exitPrice
	t.ExitDate = &when
	t.PnL = &pnl
	t.ExitEmotion = &emotion
	t.UpdatedAt = e.now()

	var advisories []Advisory
	extra := EntryActivityUnit
	if sameLocalDay(t.EntryDate, when) {
		extra += EntryActivityUnit
	}
	if a := e.dailyLimitAdvisory(trades, when, t.ID, extra); a != nil {
		advisories = append(advisories, *a)
	}

	return t, advisories, nil
}

// Reopen transitions a closed trade back to Open, unconditionally clearing
// the exit cluster so no stale exit price, date, P&L, or emotion survives.
func (e *Engine) Reopen(t models.Trade) (models.Trade, error) {
	if t.Status != models.StatusClosed {
		return t, errors.ErrTradeOpen
	}
	t.Status = models.StatusOpen
	t.ExitPrice = nil
	t.ExitDate = nil
	t.PnL = nil
	t.ExitEmotion = nil
	t.UpdatedAt = e.now()
	return t, nil
}

// EditRequest describes a partial mutation of a trade. Nil fields are left
// untouched. RecalcDefaults re-derives target/stop from the (possibly new)
// entry price and direction; without it an edit never overwrites the risk
// plan implicitly.
type EditRequest struct {
	Ticker         *string
	Direction      *models.Direction
	Quantity       *int
	EntryPrice     *float64
	EntryDate      *time.Time
	Fees           *float64
	ExitPrice      *float64
	ExitDate       *time.Time
	TargetPrice    *float64
	StopLossPrice  *float64
	EntryEmotion   *models.Emotion
	ExitEmotion    *models.Emotion
	Notes          *string
	Setup          *string
	RecalcDefaults bool
}

// touchesPnL reports whether the edit changes any input of the P&L formula.
func (r EditRequest) touchesPnL() bool {
	return r.EntryPrice != nil || r.Direction != nil || r.Quantity != nil ||
		r.ExitPrice != nil || r.Fees != nil
}

// ApplyEdit mutates a copy of the trade per the request, re-validates it,
// and keeps derived fields consistent: P&L is recomputed whenever a closed
// trade's inputs change, and target/stop are re-derived on request when the
// entry price or direction moved. Date changes may raise a daily-limit
// advisory for the affected day.
func (e *Engine) ApplyEdit(t models.Trade, req EditRequest, trades []models.Trade) (models.Trade, []Advisory, error) {
	if req.Ticker != nil {
		t.Ticker = *req.Ticker
	}
	if req.Direction != nil {
		t.Direction = *req.Direction
	}
	if req.Quantity != nil {
		t.Quantity = *req.Quantity
	}
	if req.EntryPrice != nil {
		t.EntryPrice = *req.EntryPrice
	}
	if req.EntryDate != nil {
		t.EntryDate = *req.EntryDate
	}
	if req.Fees != nil {
		t.Fees = *req.Fees
	}
	if req.TargetPrice != nil {
		t.TargetPrice = req.TargetPrice
	}
	if req.StopLossPrice != nil {
		t.StopLossPrice = req.StopLossPrice
	}
	if req.EntryEmotion != nil {
		t.EntryEmotion = *req.EntryEmotion
	}
	if req.Notes != nil {
		t.Notes = *req.Notes
	}
	if req.Setup != nil {
		t.Setup = *req.Setup
	}

	if err := e.validateNew(&t); err != nil {
		return t, nil, err
	}

	if t.Status == models.StatusClosed {
		if req.ExitPrice != nil {
			if !finitePositive(*req.ExitPrice) {
				return t, nil, errors.NewValidationError("exitPrice", *req.ExitPrice, "must be a finite positive number")
			}
			t.ExitPrice = req.ExitPrice
		}
		if req.ExitDate != nil {
			t.ExitDate = req.ExitDate
		}
		if t.ExitDate != nil && t.ExitDate.Before(t.EntryDate) {
			return t, nil, errors.NewValidationError("exitDate", *t.ExitDate, "must not be before the entry date")
		}
		if req.ExitEmotion != nil {
			t.ExitEmotion = req.ExitEmotion
		}
	} else if req.ExitPrice != nil || req.ExitDate != nil || req.ExitEmotion != nil {
		return t, nil, errors.NewValidationError("status", t.Status, "exit fields can only be edited on a closed trade")
	}

	if req.RecalcDefaults && (req.EntryPrice != nil || req.Direction != nil) {
		target, stop, err := DefaultTargetStop(
			t.EntryPrice, t.Direction,
			e.journal.DefaultTargetPercent/100, e.journal.DefaultStopPercent/100,
		)
		if err != nil {
			return t, nil, err
		}
		t.TargetPrice = &target
		t.StopLossPrice = &stop
	}

	if t.Status == models.StatusClosed && req.touchesPnL() {
		pnl, err := RealizedPnL(t.EntryPrice, *t.ExitPrice, t.Quantity, t.Direction, t.Fees)
		if err != nil {
			return t, nil, err
		}
		t.PnL = &pnl
	}

	// The projection excludes the trade's stored copy, so the pending units
	// must account for both of its edited dates landing on the checked day.
	var advisories []Advisory
	if req.EntryDate != nil {
		if a := e.dailyLimitAdvisory(trades, t.EntryDate, t.ID, tradeDayUnits(t, t.EntryDate)); a != nil {
			advisories = append(advisories, *a)
		}
	}
	if req.ExitDate != nil && t.ExitDate != nil &&
		!(req.EntryDate != nil && sameLocalDay(t.EntryDate, *t.ExitDate)) {
		if a := e.dailyLimitAdvisory(trades, *t.ExitDate, t.ID, tradeDayUnits(t, *t.ExitDate)); a != nil {
			advisories = append(advisories, *a)
		}
	}

	t.UpdatedAt = e.now()
	return t, advisories, nil
}
