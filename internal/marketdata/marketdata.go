// Package marketdata defines the optional external collaborators: an exit
// price estimator, a volatility index provider, and an AI coaching narrative.
// Every failure here degrades to absent data; the trade lifecycle never
// blocks on, or fails because of, a collaborator.
package marketdata

import (
	"context"
	"time"

	"options-journal/internal/models"
)

// Source is a citation attached to a price estimate.
type Source struct {
	Title string `json:"title"`
	URI   string `json:"uri"`
}

// Estimate is the result shape of the market-data collaborator. Only Price
// is consumed by the journal, to pre-fill an exit price; Text and Sources
// are shown to the user as-is.
type Estimate struct {
	Text    string   `json:"text"`
	Price   *float64 `json:"price,omitempty"`
	Sources []Source `json:"sources,omitempty"`
}

// IndexValue is a volatility index reading.
type IndexValue struct {
	Value     float64   `json:"value"`
	Timestamp time.Time `json:"timestamp"`
}

// PriceEstimator supplies a current price estimate for a trade's contract.
type PriceEstimator interface {
	EstimateExit(ctx context.Context, trade models.Trade) (*Estimate, error)
}

// VIXProvider supplies the current volatility index value.
type VIXProvider interface {
	Current(ctx context.Context) (*IndexValue, error)
}

// Coach produces a post-trade coaching narrative for a closed trade.
type Coach interface {
	Narrative(ctx context.Context, trade models.Trade) (string, error)
}
