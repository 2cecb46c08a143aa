package journal

import (
	"math"

	"options-journal/internal/models"
)

// DefaultChecklist returns the built-in discipline checklist. The daily-limit
// and risk-limit items are pre-populated from the automatic checks; the rest
// are asked interactively at the gate.
func DefaultChecklist() []models.ChecklistItem {
	return []models.ChecklistItem{
		{ID: models.CheckInStrategyPlan, Label: "Trade is in my strategy plan", Enabled: true},
		{ID: models.CheckRiskDefined, Label: "Risk is defined with a stop-loss", Enabled: true},
		{ID: models.CheckMaxTradesRespected, Label: "Daily trade limit respected", Enabled: true},
		{ID: models.CheckMaxRiskRespected, Label: "Per-trade risk limit respected", Enabled: true},
		{ID: models.CheckIVConditionsMet, Label: "IV conditions are favorable", Enabled: true},
		{ID: models.CheckEmotionallyStable, Label: "I am emotionally stable", Enabled: true},
	}
}

// withLimitItems ensures the automatic limit checks are present and enabled
// in a configured checklist. Without these two items the recorded
// daily-limit and risk results could never dent the score.
func withLimitItems(items []models.ChecklistItem) []models.ChecklistItem {
	present := make(map[string]bool, len(items))
	out := append([]models.ChecklistItem(nil), items...)
	for i, item := range out {
		if item.ID == models.CheckMaxTradesRespected || item.ID == models.CheckMaxRiskRespected {
			out[i].Enabled = true
			present[item.ID] = true
		}
	}
	if !present[models.CheckMaxTradesRespected] {
		out = append(out, models.ChecklistItem{ID: models.CheckMaxTradesRespected, Label: "Daily trade limit respected", Enabled: true})
	}
	if !present[models.CheckMaxRiskRespected] {
		out = append(out, models.ChecklistItem{ID: models.CheckMaxRiskRespected, Label: "Per-trade risk limit respected", Enabled: true})
	}
	return out
}

// InteractiveItems returns the enabled checklist items that must be asked at
// the gate, i.e. everything except the pre-populated limit checks.
func InteractiveItems(items []models.ChecklistItem) []models.ChecklistItem {
	var out []models.ChecklistItem
	for _, item := range items {
		if !item.Enabled {
			continue
		}
		if item.ID == models.CheckMaxTradesRespected || item.ID == models.CheckMaxRiskRespected {
			continue
		}
		out = append(out, item)
	}
	return out
}

// Score computes the discipline score: the percentage of enabled checklist
// items that are satisfied, rounded to an integer. An empty checklist scores
// zero.
func Score(checks map[string]bool, items []models.ChecklistItem) int {
	var enabled, satisfied int
	for _, item := range items {
		if !item.Enabled {
			continue
		}
		enabled++
		if checks[item.ID] {
			satisfied++
		}
	}
	if enabled == 0 {
		return 0
	}
	return int(math.Round(100 * float64(satisfied) / float64(enabled)))
}
