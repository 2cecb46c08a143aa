// Package models provides domain models for the trade journal.
package models

// Direction represents which way a trade profits.
type Direction string

const (
	Long  Direction = "LONG"  // profits when price rises
	Short Direction = "SHORT" // profits when price falls
)

// Sign returns +1 for Long and -1 for Short.
func (d Direction) Sign() float64 {
	if d == Short {
		return -1
	}
	return 1
}

// Valid reports whether the direction is a known value.
func (d Direction) Valid() bool {
	return d == Long || d == Short
}

// OptionKind represents the kind of instrument traded.
type OptionKind string

const (
	KindCall   OptionKind = "CALL"
	KindPut    OptionKind = "PUT"
	KindShares OptionKind = "SHARES" // underlying shares, no strike/expiration
)

// Valid reports whether the kind is a known value.
func (k OptionKind) Valid() bool {
	return k == KindCall || k == KindPut || k == KindShares
}

// IsOption reports whether the kind requires strike and expiration.
func (k OptionKind) IsOption() bool {
	return k == KindCall || k == KindPut
}

// TradeStatus represents the lifecycle state of a trade.
type TradeStatus string

const (
	StatusOpen   TradeStatus = "OPEN"
	StatusClosed TradeStatus = "CLOSED"
)

// Emotion represents the trader's state of mind at entry or exit.
type Emotion string

const (
	EmotionConfident   Emotion = "CONFIDENT"
	EmotionFearful     Emotion = "FEARFUL"
	EmotionGreedy      Emotion = "GREEDY"
	EmotionAnxious     Emotion = "ANXIOUS"
	EmotionNeutral     Emotion = "NEUTRAL"
	EmotionDisciplined Emotion = "DISCIPLINED"
)

// Outcome classifies how a closed trade resolved against its risk plan.
type Outcome string

const (
	OutcomeStopViolated Outcome = "STOP_VIOLATED"
	OutcomeTargetHit    Outcome = "TARGET_HIT"
	OutcomeNeutral      Outcome = "NEUTRAL"
	OutcomeUnclassified Outcome = "UNCLASSIFIED"
)
