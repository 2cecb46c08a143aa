package journal

import (
	"fmt"

	"options-journal/internal/errors"
	"options-journal/internal/models"
	"options-journal/pkg/id"
)

// GateState is a state of the pre-commit gating sequence.
type GateState string

const (
	GateIdle       GateState = "IDLE"
	GateVolatility GateState = "VOLATILITY_CHECK"
	GateRisk       GateState = "RISK_CHECK"
	GateChecklist  GateState = "CHECKLIST_GATE"
	GateCommitted  GateState = "COMMITTED"
	GateAborted    GateState = "ABORTED"
)

// Creation drives a single trade through the fixed gating order:
// volatility check, risk check, discipline checklist, commit. Each advisory
// must be explicitly acknowledged or the whole creation cancelled; a cancel
// at any step leaves no trade and no partial state behind.
type Creation struct {
	engine *Engine
	state  GateState
	trade  models.Trade
	risk   RiskAssessment

	advisories []Advisory
	acked      int // advisories[:acked] have been acknowledged
	checks     map[string]bool
}

// BeginCreation validates a proposed trade, fills target/stop defaults, runs
// the automatic checks, and returns the gating sequence positioned at Idle.
// Only one creation may be in gating at a time; a second Begin before the
// first commits or aborts fails with ErrGatingInProgress.
func (e *Engine) BeginCreation(t models.Trade, trades []models.Trade, vix *float64) (*Creation, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.inFlight {
		return nil, errors.ErrGatingInProgress
	}

	if err := e.validateNew(&t); err != nil {
		return nil, err
	}
	if err := e.fillDefaults(&t); err != nil {
		return nil, err
	}

	c := &Creation{
		engine: e,
		state:  GateIdle,
		trade:  t,
		checks: make(map[string]bool),
	}

	if vix != nil && e.vixThreshold > 0 && *vix > e.vixThreshold {
		c.advisories = append(c.advisories, Advisory{
			Kind:    AdvisoryVolatility,
			Message: "volatility index is above your comfort threshold",
			Current: *vix,
			Limit:   e.vixThreshold,
		})
	}

	dailyOK := true
	if a := e.dailyLimitAdvisory(trades, t.EntryDate, "", EntryActivityUnit); a != nil {
		c.advisories = append(c.advisories, *a)
		dailyOK = false
	}
	c.checks[models.CheckMaxTradesRespected] = dailyOK

	c.risk = EvaluateRisk(t, trades, e.journal.InitialCapital, e.journal.MaxRiskPercent)
	if !c.risk.Respected {
		c.advisories = append(c.advisories, Advisory{
			Kind: AdvisoryRiskLimit,
			Message: fmt.Sprintf("capital at risk is %.2f (%.1f%% of balance), above the %.2f allowed",
				c.risk.RiskAmount, c.risk.PercentOfBalance, c.risk.MaxAllowed),
			Current: c.risk.RiskAmount,
			Limit:   c.risk.MaxAllowed,
		})
	}
	c.checks[models.CheckMaxRiskRespected] = c.risk.Respected

	e.inFlight = true
	return c, nil
}

// State returns the current gate state.
func (c *Creation) State() GateState {
	return c.state
}

// Trade returns the pending trade as it will be committed, with defaults
// filled. It does not exist anywhere until Submit succeeds.
func (c *Creation) Trade() models.Trade {
	return c.trade
}

// Risk returns the automatic risk assessment for the pending trade.
func (c *Creation) Risk() RiskAssessment {
	return c.risk
}

// Advance moves through the automatic checks in order and returns the next
// advisory that requires acknowledgment, or nil once the checklist gate is
// reached. Calling Advance repeatedly without acknowledging returns the same
// advisory.
func (c *Creation) Advance() *Advisory {
	for {
		switch c.state {
		case GateIdle:
			c.state = GateVolatility
		case GateVolatility:
			if a := c.pending(AdvisoryVolatility); a != nil {
				return a
			}
			c.state = GateRisk
		case GateRisk:
			if a := c.pending(AdvisoryDailyLimit, AdvisoryRiskLimit); a != nil {
				return a
			}
			c.state = GateChecklist
			return nil
		default:
			return nil
		}
	}
}

// pending returns the first unacknowledged advisory of the given kinds.
func (c *Creation) pending(kinds ...AdvisoryKind) *Advisory {
	if c.acked >= len(c.advisories) {
		return nil
	}
	a := c.advisories[c.acked]
	for _, k := range kinds {
		if a.Kind == k {
			return &a
		}
	}
	return nil
}

// Acknowledge accepts the advisory currently blocking the sequence.
func (c *Creation) Acknowledge() error {
	if c.state != GateVolatility && c.state != GateRisk {
		return fmt.Errorf("no advisory pending in state %s", c.state)
	}
	if c.acked >= len(c.advisories) {
		return fmt.Errorf("no advisory pending in state %s", c.state)
	}
	c.acked++
	return nil
}

// Cancel aborts the creation. The pending trade is discarded entirely.
func (c *Creation) Cancel() {
	if c.state == GateCommitted || c.state == GateAborted {
		return
	}
	c.state = GateAborted
	c.engine.release()
}

// Submit completes the checklist gate with the interactive answers and
// commits the trade: the limit checks are merged in from the automatic
// results, the discipline score is derived, and the finalized trade is
// returned for the caller to persist. Submit is only valid at the checklist
// gate, after every advisory has been acknowledged.
func (c *Creation) Submit(checks map[string]bool, violationReason string) (models.Trade, error) {
	if c.state != GateChecklist {
		return models.Trade{}, fmt.Errorf("cannot submit checklist in state %s", c.state)
	}

	merged := make(map[string]bool, len(checks)+2)
	for k, v := range checks {
		merged[k] = v
	}
	// The limit results come from the automatic checks, not the user.
	merged[models.CheckMaxTradesRespected] = c.checks[models.CheckMaxTradesRespected]
	merged[models.CheckMaxRiskRespected] = c.checks[models.CheckMaxRiskRespected]

	now := c.engine.now()
	t := c.trade
	t.ID = id.New()
	t.Status = models.StatusOpen
	t.Checklist = merged
	t.DisciplineScore = Score(merged, c.engine.checklist)
	if t.DisciplineScore < 100 {
		t.ViolationReason = violationReason
	}
	if t.EntryEmotion == "" {
		t.EntryEmotion = models.EmotionNeutral
	}
	t.CreatedAt = now
	t.UpdatedAt = now

	c.state = GateCommitted
	c.engine.release()
	return t, nil
}

// release clears the single-outstanding gating slot.
func (e *Engine) release() {
	e.mu.Lock()
	e.inFlight = false
	e.mu.Unlock()
}
