package market

// Holding is one position inside a portfolio. AvgPrice is the weighted
// average cost of the open quantity; TotalCost = AvgPrice * Quantity.
type Holding struct {
	Quantity  Shares
	AvgPrice  float64
	TotalCost Cash
}

// Portfolio is one team's ledger. Mutated only by the engine under its lock.
type Portfolio struct {
	TeamID        int
	Cash          Cash
	Holdings      map[string]Holding
	Transactions  []Transaction
	HoldingsValue Cash
	TotalValue    Cash
}

func NewPortfolio(teamID int, startingCash Cash) *Portfolio {
	return &Portfolio{
		TeamID:     teamID,
		Cash:       startingCash,
		Holdings:   make(map[string]Holding),
		TotalValue: startingCash,
	}
}

// Revalue recomputes HoldingsValue and TotalValue against current prices.
// The invariant TotalValue == Cash + HoldingsValue holds after every call.
func (p *Portfolio) Revalue(price func(symbol string) float64) {
	var hv Cash
	for sym, h := range p.Holdings {
		hv += price(sym) * float64(h.Quantity)
	}
	p.HoldingsValue = hv
	p.TotalValue = p.Cash + hv
}

// ApplyBuy debits cash and folds quantity into the holding at a weighted
// average cost. The caller has already validated affordability.
func (p *Portfolio) ApplyBuy(symbol string, quantity Shares, price float64) {
	value := price * float64(quantity)
	h := p.Holdings[symbol]
	h.TotalCost += value
	h.Quantity += quantity
	h.AvgPrice = h.TotalCost / float64(h.Quantity)
	p.Holdings[symbol] = h
	p.Cash -= value
}

// ApplySell credits cash and reduces the holding, dropping the entry when the
// position closes. The caller has already validated the quantity.
func (p *Portfolio) ApplySell(symbol string, quantity Shares, price float64) {
	value := price * float64(quantity)
	h := p.Holdings[symbol]
	h.Quantity -= quantity
	if h.Quantity == 0 {
		delete(p.Holdings, symbol)
	} else {
		h.TotalCost = h.AvgPrice * float64(h.Quantity)
		p.Holdings[symbol] = h
	}
	p.Cash += value
}

// Quantity returns the held quantity of symbol, zero when not held.
func (p *Portfolio) Quantity(symbol string) Shares {
	return p.Holdings[symbol].Quantity
}

// Clone returns a deep copy safe to hand outside the engine lock.
func (p *Portfolio) Clone() Portfolio {
	out := *p
	out.Holdings = make(map[string]Holding, len(p.Holdings))
	for s, h := range p.Holdings {
		out.Holdings[s] = h
	}
	out.Transactions = append([]Transaction(nil), p.Transactions...)
	return out
}
