package journal

import "options-journal/internal/models"

// RiskAssessment is the result of sizing a proposed trade's capital-at-risk
// against the percentage-of-balance ceiling.
type RiskAssessment struct {
	RiskAmount       float64
	MaxAllowed       float64
	PercentOfBalance float64
	CurrentBalance   float64
	Respected        bool
}

// CurrentBalance computes the running account balance: initial capital plus
// the realized P&L of every trade that has one.
func CurrentBalance(trades []models.Trade, initialCapital float64) float64 {
	balance := initialCapital
	for _, t := range trades {
		if t.PnL != nil {
			balance += *t.PnL
		}
	}
	return balance
}

// EvaluateRisk computes a proposed trade's capital-at-risk. Risk per unit is
// the distance between entry and stop; a trade with no stop set carries zero
// quantifiable risk for this check, which is a simplification, not a safety
// guarantee. Failing the check never blocks creation by itself: the gating
// sequence routes through an acknowledgment and records the outcome on the
// maxRiskRespected checklist item.
func EvaluateRisk(t models.Trade, trades []models.Trade, initialCapital, maxRiskPct float64) RiskAssessment {
	balance := CurrentBalance(trades, initialCapital)

	var riskPerUnit float64
	if t.StopLossPrice != nil {
		riskPerUnit = t.EntryPrice - *t.StopLossPrice
		if riskPerUnit < 0 {
			riskPerUnit = -riskPerUnit
		}
	}

	riskAmount := round2(riskPerUnit * float64(t.Quantity) * ContractMultiplier)
	maxAllowed := round2(balance * maxRiskPct / 100)

	var pctOfBalance float64
	if balance > 0 {
		pctOfBalance = riskAmount / balance * 100
	}

	return RiskAssessment{
		RiskAmount:       riskAmount,
		MaxAllowed:       maxAllowed,
		PercentOfBalance: pctOfBalance,
		CurrentBalance:   balance,
		Respected:        riskAmount <= maxAllowed,
	}
}
