// Package journal is the append-only persistence sink for the simulation:
// executed orders, injected events, market-state snapshots and per-team
// portfolio snapshots. The engine treats every write as fire-and-forget.
package journal

import (
	"time"

	"github.com/Jinish2170/Tradewars/market"
)

type OrderRecord struct {
	Time     time.Time
	TeamID   int
	Symbol   string
	Side     market.Side
	Quantity market.Shares
	Price    float64
	Status   string // "executed" or "failed: <reason>"
}

type EventRecord struct {
	ID          string // uuid
	Time        time.Time
	Type        string // "ipo" or "news"
	Description string
	Symbols     []string
	Impact      float64 // announced target percent, 0 for IPOs
}

type MarketStateRecord struct {
	Time       time.Time
	Prices     map[string]float64
	Quantities map[string]market.Shares
}

type PortfolioSnapshot struct {
	Time       time.Time
	TeamID     int
	Cash       market.Cash
	Holdings   map[string]market.Holding
	TotalValue market.Cash
}

type Journal interface {
	LogOrder(OrderRecord) error
	LogEvent(EventRecord) error
	SaveMarketState(MarketStateRecord) error
	SavePortfolioSnapshot(PortfolioSnapshot) error
	Close() error
}

// Nop discards everything; useful in tests and when persistence is disabled.
type Nop struct{}

func (Nop) LogOrder(OrderRecord) error                    { return nil }
func (Nop) LogEvent(EventRecord) error                    { return nil }
func (Nop) SaveMarketState(MarketStateRecord) error       { return nil }
func (Nop) SavePortfolioSnapshot(PortfolioSnapshot) error { return nil }
func (Nop) Close() error                                  { return nil }
