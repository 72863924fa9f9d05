package pricing

import "github.com/Jinish2170/Tradewars/market"

// Fluctuate applies one organic price tick to in: a small uniform base
// change, a rare shock multiplier, a slowly drifting per-symbol bias and
// Gaussian noise, with the combined change clamped to MaxTickChange and the
// price floored at market.MinPrice. Returns the applied fractional change.
//
// Instruments under an active news impact must not be fluctuated; the
// session tick keeps the two mutually exclusive.
func (e *Engine) Fluctuate(in *market.Instrument) float64 {
	base := uniform(e.rng, -0.004, 0.004)

	// Rare market shock.
	if e.rng.Float64() < 0.03 {
		base *= shockMultipliers[e.rng.Intn(len(shockMultipliers))]
	}

	base += e.advanceDrift(in.Symbol)

	total := base + e.rng.NormFloat64()*0.002
	total = clamp(total, -e.params.MaxTickChange, e.params.MaxTickChange)

	price := in.Price * (1 + total)
	if price < market.MinPrice {
		price = market.MinPrice
	}

	in.LastPrice = in.Price
	in.Price = price
	in.PushHistory(price)
	return total
}

var shockMultipliers = []float64{-2.0, -1.5, 1.5, 2.0}

// advanceDrift returns the current slow bias for symbol, occasionally
// nudging it within its bounds.
func (e *Engine) advanceDrift(symbol string) float64 {
	d, ok := e.drift[symbol]
	if !ok {
		d = uniform(e.rng, -0.001, 0.001)
	}
	if e.rng.Float64() < 0.10 {
		d = clamp(d+uniform(e.rng, -0.0005, 0.0005), -0.002, 0.002)
	}
	e.drift[symbol] = d
	return d
}
