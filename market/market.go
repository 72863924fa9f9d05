// Package market holds the tradable universe and the per-team ledgers:
// instruments, portfolios, transactions and the error taxonomy shared by
// the pricing and engine packages.
package market

import "time"

type Cash = float64
type Shares = int64

// MinPrice is the hard floor for any instrument price.
const MinPrice = 0.01

// HistoryLimit bounds the per-instrument price history.
const HistoryLimit = 100

type Side string

const (
	Buy  Side = "buy"
	Sell Side = "sell"

	// Transfer legs recorded on peer-to-peer stock transfers.
	TransferIn  Side = "transfer_in"
	TransferOut Side = "transfer_out"
)

// Valid reports whether s is an order side a caller may submit.
// Transfer legs are internal and never accepted on the order path.
func (s Side) Valid() bool { return s == Buy || s == Sell }

// Instrument is a single tradable symbol. Price and Available are mutated
// by the engine under its lock; nothing outside the engine should hold a
// pointer to a live Instrument.
type Instrument struct {
	Symbol      string
	Name        string
	Sector      string
	Description string

	Price        float64 // current, >= MinPrice
	LastPrice    float64 // price before the most recent change
	InitialPrice float64

	Available       Shares // market float remaining
	InitialQuantity Shares
	Volume          Shares // cumulative traded quantity

	History []float64 // last HistoryLimit prices
}

// PushHistory appends p to the bounded price history.
func (in *Instrument) PushHistory(p float64) {
	in.History = append(in.History, p)
	if len(in.History) > HistoryLimit {
		in.History = in.History[len(in.History)-HistoryLimit:]
	}
}

// Change returns the percent move since LastPrice.
func (in *Instrument) Change() float64 {
	if in.LastPrice == 0 {
		return 0
	}
	return (in.Price - in.LastPrice) / in.LastPrice * 100
}

// Execution describes a filled order.
type Execution struct {
	TransactionID string
	Symbol        string
	Side          Side
	Quantity      Shares
	Price         float64 // execution price after impact and slippage
	Value         Cash
	Slippage      float64 // fractional, signed
	Impact        float64 // fractional, signed
	Time          time.Time
}

// Transaction is one immutable ledger entry.
type Transaction struct {
	ID           string
	Time         time.Time
	TeamID       int
	Side         Side
	Symbol       string
	Quantity     Shares
	Price        float64
	Value        Cash
	Counterparty int // peer team on transfer legs, -1 otherwise
}

// Snapshot is an immutable copy of market-wide state handed to callers.
type Snapshot struct {
	Time       time.Time
	Prices     map[string]float64
	Quantities map[string]Shares
	Volumes    map[string]Shares
	Changes    map[string]float64 // percent since last price
}
