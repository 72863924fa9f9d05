package engine

import (
	"fmt"

	"github.com/Jinish2170/Tradewars/internal/id"
	"github.com/Jinish2170/Tradewars/journal"
	"github.com/Jinish2170/Tradewars/market"
)

// SubmitOrder validates and executes a team's market order. Self-service
// orders require an open market (Active or Paused session); every failure is
// returned as a typed error with state left untouched.
func (e *Engine) SubmitOrder(teamID int, symbol string, quantity market.Shares, side market.Side) (market.Execution, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.marketOpenLocked() {
		return market.Execution{}, fmt.Errorf("submit order: %w", market.ErrMarketClosed)
	}
	return e.executeLocked(teamID, symbol, quantity, side)
}

// AdminPlaceOrder places an order on a team's behalf. The admin capability
// bypasses the market-open gate only; validation and execution are identical
// to SubmitOrder.
func (e *Engine) AdminPlaceOrder(teamID int, symbol string, quantity market.Shares, side market.Side, adminKey string) (market.Execution, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.auth == nil || !e.auth.IsAuthorized(adminKey) {
		e.log.Warn("unauthorized admin order attempt", "team", teamID, "symbol", symbol)
		return market.Execution{}, fmt.Errorf("admin order: %w", market.ErrUnauthorized)
	}
	return e.executeLocked(teamID, symbol, quantity, side)
}

// executeLocked runs the full order pipeline: validation, affordability,
// slippage + impact pricing, circuit breaker, then the atomic mutation.
// Nothing is modified until every check has passed.
func (e *Engine) executeLocked(teamID int, symbol string, quantity market.Shares, side market.Side) (market.Execution, error) {
	if !side.Valid() {
		return market.Execution{}, fmt.Errorf("side %q: %w", side, market.ErrInvalidOrder)
	}
	if quantity <= 0 {
		return market.Execution{}, fmt.Errorf("quantity %d: %w", quantity, market.ErrInvalidQuantity)
	}
	in, err := e.catalog.Get(symbol)
	if err != nil {
		return market.Execution{}, err
	}
	p, ok := e.portfolios[teamID]
	if !ok {
		return market.Execution{}, fmt.Errorf("team %d: %w", teamID, market.ErrUnknownTeam)
	}

	// Capacity checks against the pre-execution price.
	currentPrice := in.Price
	switch side {
	case market.Buy:
		if quantity > in.Available {
			return market.Execution{}, fmt.Errorf("%s: want %d, market has %d: %w",
				symbol, quantity, in.Available, market.ErrInsufficientMarketQuantity)
		}
		if p.Cash < currentPrice*float64(quantity) {
			return market.Execution{}, fmt.Errorf("team %d: %w", teamID, market.ErrInsufficientFunds)
		}
	case market.Sell:
		if p.Quantity(symbol) < quantity {
			return market.Execution{}, fmt.Errorf("team %d holds %d %s: %w",
				teamID, p.Quantity(symbol), symbol, market.ErrInsufficientHoldings)
		}
	}

	slippage := e.pricing.Slippage(in, quantity, side)
	impact := e.pricing.OrderImpact(in, quantity, side)
	execPrice := currentPrice * (1 + impact) * (1 + slippage)

	if !e.pricing.WithinCircuitBreaker(currentPrice, execPrice) {
		e.logFailedOrderLocked(teamID, symbol, quantity, side, execPrice, "price movement exceeded")
		return market.Execution{}, fmt.Errorf("move %.1f%%: %w",
			(execPrice/currentPrice-1)*100, market.ErrPriceMovementExceeded)
	}

	execValue := execPrice * float64(quantity)
	if side == market.Buy && p.Cash < execValue {
		// Slippage pushed the fill past the team's cash; reject whole.
		return market.Execution{}, fmt.Errorf("team %d at execution price: %w", teamID, market.ErrInsufficientFunds)
	}

	// All checks passed; mutate atomically.
	now := e.now()
	switch side {
	case market.Buy:
		p.ApplyBuy(symbol, quantity, execPrice)
		in.Available -= quantity
	case market.Sell:
		p.ApplySell(symbol, quantity, execPrice)
		in.Available += quantity
	}

	in.Volume += quantity
	in.LastPrice = currentPrice
	in.Price = execPrice
	in.PushHistory(execPrice)

	txn := market.Transaction{
		ID:           id.New(),
		Time:         now,
		TeamID:       teamID,
		Side:         side,
		Symbol:       symbol,
		Quantity:     quantity,
		Price:        execPrice,
		Value:        execValue,
		Counterparty: -1,
	}
	p.Transactions = append(p.Transactions, txn)
	p.Revalue(e.priceOfLocked)

	e.log.Info("order executed",
		"team", teamID, "side", side, "symbol", symbol,
		"quantity", quantity, "price", execPrice,
		"slippage", slippage, "impact", impact)

	if err := e.journal.LogOrder(journal.OrderRecord{
		Time: now, TeamID: teamID, Symbol: symbol, Side: side,
		Quantity: quantity, Price: execPrice, Status: "executed",
	}); err != nil {
		e.log.Error("log order", "error", err)
	}
	e.savePortfolioLocked(p)

	return market.Execution{
		TransactionID: txn.ID,
		Symbol:        symbol,
		Side:          side,
		Quantity:      quantity,
		Price:         execPrice,
		Value:         execValue,
		Slippage:      slippage,
		Impact:        impact,
		Time:          now,
	}, nil
}

func (e *Engine) logFailedOrderLocked(teamID int, symbol string, quantity market.Shares, side market.Side, price float64, reason string) {
	if err := e.journal.LogOrder(journal.OrderRecord{
		Time: e.now(), TeamID: teamID, Symbol: symbol, Side: side,
		Quantity: quantity, Price: price, Status: "failed: " + reason,
	}); err != nil {
		e.log.Error("log failed order", "error", err)
	}
}
