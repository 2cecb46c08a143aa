// Package journal implements the trade lifecycle and risk-discipline engine:
// derived-field calculation, outcome classification, daily activity counting,
// risk evaluation, the discipline checklist, and the open/close/reopen state
// machine. Everything here is pure; persistence and interaction live with the
// callers.
package journal

import (
	"math"

	"options-journal/internal/errors"
	"options-journal/internal/models"
)

// ContractMultiplier is the standard options contract size. Per-share P&L is
// scaled by this fixed factor; it is not configurable.
const ContractMultiplier = 100

// round2 rounds to 2 decimal places (price precision).
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func finitePositive(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v > 0
}

func finiteNonNegative(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0
}

// DefaultTargetStop derives the default target and stop-loss prices from the
// entry price and the configured default percentages (fractions, e.g. 0.10
// for 10%). For Long the target sits above entry and the stop below; Short
// is inverted. Results are rounded to 2 decimal places.
func DefaultTargetStop(entry float64, dir models.Direction, targetPct, stopPct float64) (target, stop float64, err error) {
	if !finitePositive(entry) {
		return 0, 0, errors.NewValidationError("entryPrice", entry, "must be a finite positive number")
	}
	if !dir.Valid() {
		return 0, 0, errors.NewValidationError("direction", dir, "must be LONG or SHORT")
	}
	if dir == models.Long {
		target = entry * (1 + targetPct)
		stop = entry * (1 - stopPct)
	} else {
		target = entry * (1 - targetPct)
		stop = entry * (1 + stopPct)
	}
	return round2(target), round2(stop), nil
}

// RealizedPnL computes the realized profit or loss of a round trip:
// (exit - entry) * quantity * ContractMultiplier * directionSign - fees.
func RealizedPnL(entry, exit float64, qty int, dir models.Direction, fees float64) (float64, error) {
	if !finitePositive(entry) {
		return 0, errors.NewValidationError("entryPrice", entry, "must be a finite positive number")
	}
	if !finitePositive(exit) {
		return 0, errors.NewValidationError("exitPrice", exit, "must be a finite positive number")
	}
	if qty <= 0 {
		return 0, errors.NewValidationError("quantity", qty, "must be a positive integer")
	}
	if !dir.Valid() {
		return 0, errors.NewValidationError("direction", dir, "must be LONG or SHORT")
	}
	if !finiteNonNegative(fees) {
		return 0, errors.NewValidationError("fees", fees, "must be a finite non-negative number")
	}
	pnl := (exit-entry)*float64(qty)*ContractMultiplier*dir.Sign() - fees
	return round2(pnl), nil
}
