package journal

import "options-journal/internal/models"

// Neutral classification band for the signed percent change of a closed
// trade, applied only when neither the stop nor the target was breached.
const (
	neutralBandLow  = -10.0
	neutralBandHigh = 20.0
)

// ClassifyOutcome maps a closed trade's exit against its risk plan.
// Precedence: stop-loss violation, then target hit, then the neutral band.
// A trade whose exit breaches the stop is always flagged as a violation,
// even when the percent change would also sit inside the neutral band.
// Open trades and trades without both prices are Unclassified.
func ClassifyOutcome(t models.Trade) models.Outcome {
	if t.Status != models.StatusClosed || t.ExitPrice == nil || t.EntryPrice <= 0 {
		return models.OutcomeUnclassified
	}
	exit := *t.ExitPrice

	if t.StopLossPrice != nil {
		stop := *t.StopLossPrice
		if (t.Direction == models.Long && exit <= stop) ||
			(t.Direction == models.Short && exit >= stop) {
			return models.OutcomeStopViolated
		}
	}

	if t.TargetPrice != nil {
		target := *t.TargetPrice
		if (t.Direction == models.Long && exit >= target) ||
			(t.Direction == models.Short && exit <= target) {
			return models.OutcomeTargetHit
		}
	}

	pctChange := (exit - t.EntryPrice) / t.EntryPrice * 100 * t.Direction.Sign()
	if pctChange >= neutralBandLow && pctChange <= neutralBandHigh {
		return models.OutcomeNeutral
	}

	return models.OutcomeUnclassified
}
