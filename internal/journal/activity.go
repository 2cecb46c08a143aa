package journal

import (
	"time"

	"options-journal/internal/models"
)

// EntryActivityUnit is the trade-slot weight charged for entering (and,
// separately, exiting) on a calendar day. A same-day round trip costs 1.0.
const EntryActivityUnit = 0.5

// sameLocalDay reports whether a and b fall on the same local calendar day.
func sameLocalDay(a, b time.Time) bool {
	ay, am, ad := a.Local().Date()
	by, bm, bd := b.Local().Date()
	return ay == by && am == bm && ad == bd
}

// tradeDayUnits is the trade-slot weight a single trade places on the given
// calendar day: 0.5 for an entry on that day, a further 0.5 for an exit.
func tradeDayUnits(t models.Trade, day time.Time) float64 {
	var units float64
	if sameLocalDay(t.EntryDate, day) {
		units += EntryActivityUnit
	}
	if t.ExitDate != nil && sameLocalDay(*t.ExitDate, day) {
		units += EntryActivityUnit
	}
	return units
}

// CountDailyActivity counts the trade-slots consumed on the given calendar
// day: each trade contributes 0.5 when its entry falls on that day and a
// further 0.5 when its exit does. Match is by local calendar day, not a 24h
// window. excludeID skips the trade under edit so a projected change is not
// double-counted against its own stored copy.
func CountDailyActivity(trades []models.Trade, day time.Time, excludeID string) float64 {
	var count float64
	for _, t := range trades {
		if excludeID != "" && t.ID == excludeID {
			continue
		}
		if sameLocalDay(t.EntryDate, day) {
			count += EntryActivityUnit
		}
		if t.ExitDate != nil && sameLocalDay(*t.ExitDate, day) {
			count += EntryActivityUnit
		}
	}
	return count
}
