// Package pricing implements the synthetic price dynamics: a bounded random
// walk with trend, momentum, sector and volatility modifiers, order-driven
// impact with slippage, and linear news-impact convergence.
//
// The engine is pure computation over market.Instrument values; it owns no
// locks and no goroutines. All randomness flows through a single injected
// rand source so a fixed seed yields a reproducible price path.
package pricing

import (
	"math/rand"

	"github.com/Jinish2170/Tradewars/market"
)

// Trend direction of the overall market.
type Trend int

const (
	Bearish Trend = -1
	Neutral Trend = 0
	Bullish Trend = 1
)

func (t Trend) String() string {
	switch t {
	case Bullish:
		return "bullish"
	case Bearish:
		return "bearish"
	default:
		return "neutral"
	}
}

// Params are the tunable coefficients of the model. Zero values are never
// valid; build from DefaultParams and override.
type Params struct {
	DemandCoefficient float64 `json:"demand_coefficient" yaml:"demand_coefficient"`
	EventCoefficient  float64 `json:"event_coefficient" yaml:"event_coefficient"`

	// MaxTickChange clamps a single fluctuation tick, MaxOrderImpact a single
	// order's price impact, MaxSlippage the slippage component, and
	// MaxExecutionMove is the circuit-breaker bound on the whole execution.
	MaxTickChange    float64 `json:"max_tick_change" yaml:"max_tick_change"`
	MaxOrderImpact   float64 `json:"max_order_impact" yaml:"max_order_impact"`
	MaxSlippage      float64 `json:"max_slippage" yaml:"max_slippage"`
	MaxExecutionMove float64 `json:"max_execution_move" yaml:"max_execution_move"`

	// DampenThreshold is where log dampening of order impact kicks in.
	DampenThreshold float64 `json:"dampen_threshold" yaml:"dampen_threshold"`

	// TrendChangeProbability is the per-advance base chance of a reversal;
	// MaxTrendAge forces one.
	TrendChangeProbability float64 `json:"trend_change_probability" yaml:"trend_change_probability"`
	MaxTrendAge            int     `json:"max_trend_age" yaml:"max_trend_age"`
}

func DefaultParams() Params {
	return Params{
		DemandCoefficient:      0.1,
		EventCoefficient:       0.2,
		MaxTickChange:          0.10,
		MaxOrderImpact:         0.10,
		MaxSlippage:            0.05,
		MaxExecutionMove:       0.25,
		DampenThreshold:        0.05,
		TrendChangeProbability: 0.05,
		MaxTrendAge:            300,
	}
}

// Engine holds the mutable dynamics state for one simulation run.
type Engine struct {
	params Params
	rng    *rand.Rand

	trend         Trend
	trendStrength float64 // [1.0, 2.0]
	trendAge      int
	momentum      float64 // [-1, 1]
	volatility    float64 // global factor, [0.5, 2.0]
	sentiment     float64 // [-1, 1]; reported, not priced in

	sectorPerf map[string]float64 // [-0.2, 0.2], mean-reverting
	symbolVol  map[string]float64 // [0.5, 2.0], mean-reverting
	drift      map[string]float64 // slow per-symbol bias, [-0.002, 0.002]
}

// New builds an engine around rng. Passing rand.New(rand.NewSource(seed))
// makes the whole price path deterministic.
func New(params Params, rng *rand.Rand) *Engine {
	return &Engine{
		params:        params,
		rng:           rng,
		trend:         Neutral,
		trendStrength: 1.0,
		volatility:    1.0,
		sectorPerf:    make(map[string]float64),
		symbolVol:     make(map[string]float64),
		drift:         make(map[string]float64),
	}
}

func (e *Engine) Params() Params         { return e.params }
func (e *Engine) Trend() Trend           { return e.trend }
func (e *Engine) TrendStrength() float64 { return e.trendStrength }
func (e *Engine) Momentum() float64      { return e.momentum }
func (e *Engine) Sentiment() float64     { return e.sentiment }

// Reset drops all per-symbol state, for a fresh market initialization.
func (e *Engine) Reset() {
	e.trend = Neutral
	e.trendStrength = 1.0
	e.trendAge = 0
	e.momentum = 0
	e.volatility = 1.0
	e.sentiment = 0
	e.sectorPerf = make(map[string]float64)
	e.symbolVol = make(map[string]float64)
	e.drift = make(map[string]float64)
}

// AdvanceDynamics moves the market-wide state one step: trend aging and
// reversal, momentum, global volatility and sentiment drift, sector
// performance, and per-symbol volatility for every listed instrument.
func (e *Engine) AdvanceDynamics(instruments []*market.Instrument) (reversed bool) {
	reversed = e.advanceTrend()

	e.momentum = clamp(e.momentum+uniform(e.rng, -0.1, 0.1)*e.trendStrength, -1, 1)
	e.volatility = clamp(e.volatility+uniform(e.rng, -0.1, 0.1), 0.5, 2.0)
	e.sentiment = clamp(e.sentiment+uniform(e.rng, -0.1, 0.1), -1, 1)

	e.advanceSectors(instruments)
	e.advanceSymbolVolatility(instruments)
	return reversed
}

func (e *Engine) advanceTrend() bool {
	e.trendAge++
	ageFactor := float64(e.trendAge) / float64(e.params.MaxTrendAge)
	if ageFactor > 1 {
		ageFactor = 1
	}
	chance := e.params.TrendChangeProbability * (1 + ageFactor)

	if e.rng.Float64() >= chance && e.trendAge < e.params.MaxTrendAge {
		return false
	}

	// Reversal. A neutral market picks a direction at random; -0 would pin
	// the trend at zero forever.
	switch e.trend {
	case Neutral:
		if e.rng.Float64() < 0.5 {
			e.trend = Bullish
		} else {
			e.trend = Bearish
		}
	default:
		e.trend = -e.trend
	}
	e.trendAge = 0
	e.trendStrength = 1.0 + uniform(e.rng, 0.2, 0.8)
	return true
}

func (e *Engine) advanceSectors(instruments []*market.Instrument) {
	seen := map[string]struct{}{}
	for _, in := range instruments {
		seen[in.Sector] = struct{}{}
	}
	for sector := range seen {
		change := uniform(e.rng, -0.05, 0.05) * e.trendStrength
		bias := 0.02 * float64(e.trend) * e.trendStrength
		perf := (e.sectorPerf[sector] + change + bias) * 0.95 // mean reversion
		e.sectorPerf[sector] = clamp(perf, -0.2, 0.2)
	}
}

func (e *Engine) advanceSymbolVolatility(instruments []*market.Instrument) {
	for _, in := range instruments {
		vol, ok := e.symbolVol[in.Symbol]
		if !ok {
			vol = 1.0
		}
		sectorImpact := abs(e.sectorPerf[in.Sector])
		vol = (vol + uniform(e.rng, -0.1, 0.1) + sectorImpact*0.5) * 0.95
		e.symbolVol[in.Symbol] = clamp(vol, 0.5, 2.0)
	}
}

// Modifiers are the per-symbol inputs to the order-impact formula.
type Modifiers struct {
	Trend      float64 // signed direction x strength
	Momentum   float64
	Sector     float64
	Volatility float64
}

func (e *Engine) ModifiersFor(in *market.Instrument) Modifiers {
	vol, ok := e.symbolVol[in.Symbol]
	if !ok {
		vol = 1.0
	}
	return Modifiers{
		Trend:      float64(e.trend) * e.trendStrength,
		Momentum:   e.momentum,
		Sector:     e.sectorPerf[in.Sector],
		Volatility: vol,
	}
}

func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
