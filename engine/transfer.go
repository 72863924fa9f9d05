package engine

import (
	"fmt"

	"github.com/Jinish2170/Tradewars/internal/id"
	"github.com/Jinish2170/Tradewars/market"
)

// Transfer moves holdings directly between two teams outside price
// execution: no cash changes hands and the market price is untouched.
// Symmetric ledger entries are recorded on both sides.
func (e *Engine) Transfer(fromTeam, toTeam int, symbol string, quantity market.Shares) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if quantity <= 0 {
		return fmt.Errorf("transfer quantity %d: %w", quantity, market.ErrInvalidQuantity)
	}
	from, ok := e.portfolios[fromTeam]
	if !ok {
		return fmt.Errorf("team %d: %w", fromTeam, market.ErrUnknownTeam)
	}
	to, ok := e.portfolios[toTeam]
	if !ok {
		return fmt.Errorf("team %d: %w", toTeam, market.ErrUnknownTeam)
	}
	in, err := e.catalog.Get(symbol)
	if err != nil {
		return err
	}
	if from.Quantity(symbol) < quantity {
		return fmt.Errorf("team %d holds %d %s: %w",
			fromTeam, from.Quantity(symbol), symbol, market.ErrInsufficientHoldings)
	}

	now := e.now()
	price := in.Price

	// The sender's cost basis follows the shares out; the receiver books
	// them at the current market price.
	srcHolding := from.Holdings[symbol]
	srcHolding.Quantity -= quantity
	if srcHolding.Quantity == 0 {
		delete(from.Holdings, symbol)
	} else {
		srcHolding.TotalCost = srcHolding.AvgPrice * float64(srcHolding.Quantity)
		from.Holdings[symbol] = srcHolding
	}

	dstHolding := to.Holdings[symbol]
	dstHolding.TotalCost += price * float64(quantity)
	dstHolding.Quantity += quantity
	dstHolding.AvgPrice = dstHolding.TotalCost / float64(dstHolding.Quantity)
	to.Holdings[symbol] = dstHolding

	value := price * float64(quantity)
	from.Transactions = append(from.Transactions, market.Transaction{
		ID: id.New(), Time: now, TeamID: fromTeam, Side: market.TransferOut,
		Symbol: symbol, Quantity: quantity, Price: price, Value: value,
		Counterparty: toTeam,
	})
	to.Transactions = append(to.Transactions, market.Transaction{
		ID: id.New(), Time: now, TeamID: toTeam, Side: market.TransferIn,
		Symbol: symbol, Quantity: quantity, Price: price, Value: value,
		Counterparty: fromTeam,
	})

	from.Revalue(e.priceOfLocked)
	to.Revalue(e.priceOfLocked)

	e.log.Info("holdings transferred",
		"from", fromTeam, "to", toTeam, "symbol", symbol, "quantity", quantity)

	e.savePortfolioLocked(from)
	e.savePortfolioLocked(to)
	return nil
}
