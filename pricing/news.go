package pricing

import "github.com/Jinish2170/Tradewars/market"

// NewsImpact is an active, time-bounded migration of one instrument's price
// toward an announced target percentage. StartPrice and TargetPrice are
// fixed at activation time, not at submission time.
type NewsImpact struct {
	Symbol        string
	StartPrice    float64
	TargetPrice   float64
	TargetPercent float64
}

// NewNewsImpact activates an impact against the instrument's current price.
// The target is floored at market.MinPrice: a crash event of -100% or worse
// drives the price to the floor, never to zero or below.
func NewNewsImpact(in *market.Instrument, targetPercent float64) NewsImpact {
	target := in.Price * (1 + targetPercent/100)
	if target < market.MinPrice {
		target = market.MinPrice
	}
	return NewsImpact{
		Symbol:        in.Symbol,
		StartPrice:    in.Price,
		TargetPrice:   target,
		TargetPercent: targetPercent,
	}
}

// Progress reports how far the instrument has moved toward the target,
// 0..1, for status logging.
func (n NewsImpact) Progress(current float64) float64 {
	span := n.TargetPrice - n.StartPrice
	if span == 0 {
		return 1
	}
	return (current - n.StartPrice) / span
}

// ConvergeStep moves in one step along the impact's linear path:
// (target - start) / totalSteps per tick, clamped so the price never
// overshoots the target in either direction. Returns true once the target
// is reached. Convergence replaces organic fluctuation for the instrument.
func (e *Engine) ConvergeStep(in *market.Instrument, impact NewsImpact, totalSteps int) (done bool) {
	if totalSteps <= 0 {
		totalSteps = 1
	}
	step := (impact.TargetPrice - impact.StartPrice) / float64(totalSteps)

	price := in.Price + step
	if step > 0 && price > impact.TargetPrice {
		price = impact.TargetPrice
	}
	if step < 0 && price < impact.TargetPrice {
		price = impact.TargetPrice
	}

	in.LastPrice = in.Price
	in.Price = price
	in.PushHistory(price)
	return price == impact.TargetPrice
}

// ForceToTarget snaps the price exactly onto the impact's target. Used only
// at session end so every announced percentage lands precisely regardless of
// interpolation rounding.
func (e *Engine) ForceToTarget(in *market.Instrument, impact NewsImpact) {
	in.LastPrice = in.Price
	in.Price = impact.TargetPrice
	in.PushHistory(impact.TargetPrice)
}
