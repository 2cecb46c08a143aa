// Package store provides data persistence interfaces and implementations.
// The lifecycle engine never touches the store; it is the persistence
// collaborator composed in by the CLI layer.
package store

import (
	"context"
	"time"

	"options-journal/internal/models"
)

// DataStore defines the interface for trade persistence.
type DataStore interface {
	SaveTrade(ctx context.Context, trade *models.Trade) error
	GetTrade(ctx context.Context, id string) (*models.Trade, error)
	GetTrades(ctx context.Context, filter TradeFilter) ([]models.Trade, error)
	UpdateTrade(ctx context.Context, trade *models.Trade) error
	DeleteTrade(ctx context.Context, id string) error
	Close() error
}

// TradeFilter represents filters for querying trades.
type TradeFilter struct {
	Ticker    string
	Status    models.TradeStatus
	Setup     string
	StartDate time.Time
	EndDate   time.Time
	Limit     int
}
