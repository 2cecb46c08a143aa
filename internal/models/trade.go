package models

import "time"

// Trade is the central journal entity. Exit fields and PnL are pointers so
// that an open trade carries no stale values: OPEN means they are all nil,
// CLOSED means ExitPrice and ExitDate are set.
type Trade struct {
	ID            string
	Ticker        string
	Direction     Direction
	Kind          OptionKind
	StrikePrice   *float64
	Expiration    *time.Time
	EntryDate     time.Time
	EntryPrice    float64
	Quantity      int
	Fees          float64
	ExitDate      *time.Time
	ExitPrice     *float64
	TargetPrice   *float64
	StopLossPrice *float64
	PnL           *float64
	EntryEmotion  Emotion
	ExitEmotion   *Emotion

	// Discipline record from the pre-trade checklist gate.
	Checklist       map[string]bool
	DisciplineScore int
	ViolationReason string

	Status    TradeStatus
	Notes     string
	Setup     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsOpen reports whether the trade is currently open.
func (t *Trade) IsOpen() bool {
	return t.Status == StatusOpen
}

// IsClosed reports whether the trade has been closed out.
func (t *Trade) IsClosed() bool {
	return t.Status == StatusClosed
}

// ChecklistItem defines one named boolean check in the discipline checklist.
type ChecklistItem struct {
	ID      string `mapstructure:"id"`
	Label   string `mapstructure:"label"`
	Enabled bool   `mapstructure:"enabled"`
}

// Checklist item IDs that are always present. The first two are pre-populated
// from the daily-limit and risk-limit checks rather than asked interactively.
const (
	CheckMaxTradesRespected = "maxTradesRespected"
	CheckMaxRiskRespected   = "maxRiskRespected"
	CheckInStrategyPlan     = "inStrategyPlan"
	CheckRiskDefined        = "riskDefined"
	CheckIVConditionsMet    = "ivConditionsMet"
	CheckEmotionallyStable  = "emotionallyStable"
)
