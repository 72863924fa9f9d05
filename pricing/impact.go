package pricing

import (
	"math"

	"github.com/Jinish2170/Tradewars/market"
)

// OrderImpact returns the fractional price move a market order of the given
// size would cause, signed by side and capped at MaxOrderImpact.
//
// Net demand scales order quantity against the market float, amplified by
// the order's share of market cap; trend, momentum and sector modifiers are
// weighted independently and scaled by the symbol's volatility; impacts past
// DampenThreshold are log-dampened so a single huge order cannot run the
// price away before the circuit breaker even sees it.
func (e *Engine) OrderImpact(in *market.Instrument, quantity market.Shares, side market.Side) float64 {
	if in.Available <= 0 || quantity <= 0 {
		return 0
	}

	orderValue := in.Price * float64(quantity)
	marketCap := in.Price * float64(in.Available)
	sizeImpact := 0.0
	if marketCap > 0 {
		sizeImpact = orderValue / marketCap
	}

	netDemand := float64(quantity) / float64(in.Available) * (1 + sizeImpact)
	if side == market.Sell {
		netDemand = -netDemand
	}

	mods := e.ModifiersFor(in)
	trendEffect := mods.Trend * 0.001
	momentumEffect := mods.Momentum * 0.002
	sectorEffect := mods.Sector * 0.003

	// Demand pressure reinforced by the prevailing trend.
	trendImpact := float64(e.trend) * 0.01 * (1 + abs(netDemand))

	total := (trendEffect+momentumEffect+sectorEffect)*mods.Volatility +
		netDemand*e.params.DemandCoefficient +
		trendImpact*e.params.EventCoefficient +
		uniform(e.rng, -0.001, 0.001)*mods.Volatility

	total = e.dampen(total)
	return clamp(total, -e.params.MaxOrderImpact, e.params.MaxOrderImpact)
}

// dampen compresses the part of x beyond DampenThreshold on a log scale.
func (e *Engine) dampen(x float64) float64 {
	th := e.params.DampenThreshold
	if abs(x) <= th {
		return x
	}
	excess := abs(x) - th
	damped := th + th*math.Log1p(excess/th)
	return math.Copysign(damped, x)
}

// Slippage returns the execution-price deviation caused by order size
// relative to recent traded volume plus recent volatility, signed by side
// and capped at MaxSlippage.
func (e *Engine) Slippage(in *market.Instrument, quantity market.Shares, side market.Side) float64 {
	orderRatio := 1.0
	if in.Volume > 0 {
		orderRatio = float64(quantity) / float64(in.Volume)
	}
	base := math.Min(orderRatio*0.01, e.params.MaxSlippage)

	recentVol := 0.0
	if in.Price > 0 {
		recentVol = abs(in.Price-in.LastPrice) / in.Price
	}

	total := math.Min(base+recentVol*0.5, e.params.MaxSlippage)
	if side == market.Sell {
		total = -total
	}
	return total
}

// WithinCircuitBreaker reports whether moving from current to execution
// price stays inside the configured maximum move.
func (e *Engine) WithinCircuitBreaker(current, execution float64) bool {
	if current <= 0 {
		return false
	}
	return abs(execution-current)/current <= e.params.MaxExecutionMove
}
