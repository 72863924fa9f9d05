// Package engine owns all mutable simulation state behind one facade: the
// instrument catalog, team portfolios, the pricing dynamics and the session
// state machine. A single coarse mutex serializes the tick driver, order
// submission and event injection; persistence is handed to the journal as a
// fire-and-forget side effect and is never awaited under the lock.
package engine

import (
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/Jinish2170/Tradewars/journal"
	"github.com/Jinish2170/Tradewars/market"
	"github.com/Jinish2170/Tradewars/pricing"
)

// Authorizer is the admin capability check consumed from the outside.
type Authorizer interface {
	IsAuthorized(key string) bool
}

// KeyAuthorizer accepts a single shared admin key.
type KeyAuthorizer string

func (k KeyAuthorizer) IsAuthorized(key string) bool {
	return k != "" && key == string(k)
}

// Options configure one Engine instance.
type Options struct {
	Teams          int
	StartingBudget market.Cash
	Instruments    []market.Definition

	SessionDuration  int // seconds per session
	MaxSessions      int
	ConvergenceSteps int // ticks a news impact takes to reach its target
	SnapshotInterval int // ticks between market-state persists

	Pricing pricing.Params

	Journal    journal.Journal
	Authorizer Authorizer
	Logger     *slog.Logger
	Now        func() time.Time
	Rand       *rand.Rand
}

func (o *Options) fillDefaults() {
	if o.Teams <= 0 {
		o.Teams = 11
	}
	if o.StartingBudget <= 0 {
		o.StartingBudget = 100000
	}
	if o.Instruments == nil {
		o.Instruments = market.DefaultUniverse()
	}
	if o.SessionDuration <= 0 {
		o.SessionDuration = 600
	}
	if o.MaxSessions <= 0 {
		o.MaxSessions = 6
	}
	if o.ConvergenceSteps <= 0 {
		o.ConvergenceSteps = 600
	}
	if o.SnapshotInterval <= 0 {
		o.SnapshotInterval = 60
	}
	if o.Pricing == (pricing.Params{}) {
		o.Pricing = pricing.DefaultParams()
	}
	if o.Journal == nil {
		o.Journal = journal.Nop{}
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	if o.Rand == nil {
		o.Rand = rand.New(rand.NewSource(o.Now().UnixNano()))
	}
}

// Engine is the market simulation core. Safe for concurrent use.
type Engine struct {
	mu sync.Mutex

	catalog    *market.Catalog
	portfolios map[int]*market.Portfolio
	pricing    *pricing.Engine

	session sessionState

	opts    Options
	journal journal.Journal
	auth    Authorizer
	log     *slog.Logger
	now     func() time.Time
}

// New builds an engine and initializes the market: catalog populated from
// the configured universe, one portfolio per team at the starting budget.
func New(opts Options) (*Engine, error) {
	opts.fillDefaults()

	e := &Engine{
		catalog:    market.NewCatalog(),
		portfolios: make(map[int]*market.Portfolio),
		pricing:    pricing.New(opts.Pricing, opts.Rand),
		opts:       opts,
		journal:    opts.Journal,
		auth:       opts.Authorizer,
		log:        opts.Logger,
		now:        opts.Now,
	}
	e.session = newSessionState(opts.SessionDuration, opts.MaxSessions)

	if err := e.initializeMarket(); err != nil {
		return nil, err
	}
	return e, nil
}

// initializeMarket clears and repopulates all market state. Idempotent.
func (e *Engine) initializeMarket() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.catalog.Initialize(e.opts.Instruments); err != nil {
		return err
	}
	e.pricing.Reset()

	e.portfolios = make(map[int]*market.Portfolio, e.opts.Teams)
	for i := 0; i < e.opts.Teams; i++ {
		e.portfolios[i] = market.NewPortfolio(i, e.opts.StartingBudget)
	}

	e.log.Info("market initialized",
		"instruments", e.catalog.Len(),
		"teams", e.opts.Teams,
		"budget", e.opts.StartingBudget)
	return nil
}

// MarketSnapshot returns an immutable copy of market-wide state.
func (e *Engine) MarketSnapshot() market.Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotLocked()
}

func (e *Engine) snapshotLocked() market.Snapshot {
	snap := market.Snapshot{
		Time:       e.now(),
		Prices:     make(map[string]float64, e.catalog.Len()),
		Quantities: make(map[string]market.Shares, e.catalog.Len()),
		Volumes:    make(map[string]market.Shares, e.catalog.Len()),
		Changes:    make(map[string]float64, e.catalog.Len()),
	}
	for _, sym := range e.catalog.Symbols() {
		in, err := e.catalog.Get(sym)
		if err != nil {
			continue
		}
		snap.Prices[sym] = in.Price
		snap.Quantities[sym] = in.Available
		snap.Volumes[sym] = in.Volume
		snap.Changes[sym] = in.Change()
	}
	return snap
}

// Portfolio returns a deep copy of a team's ledger.
func (e *Engine) Portfolio(teamID int) (market.Portfolio, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	p, ok := e.portfolios[teamID]
	if !ok {
		return market.Portfolio{}, market.ErrUnknownTeam
	}
	p.Revalue(e.priceOfLocked)
	return p.Clone(), nil
}

// Teams returns the configured team count.
func (e *Engine) Teams() int { return e.opts.Teams }

func (e *Engine) priceOfLocked(symbol string) float64 {
	in, err := e.catalog.Get(symbol)
	if err != nil {
		return 0
	}
	return in.Price
}

// saveMarketStateLocked hands the current state to the journal. The journal
// is asynchronous; this never blocks.
func (e *Engine) saveMarketStateLocked() {
	rec := journal.MarketStateRecord{
		Time:       e.now(),
		Prices:     make(map[string]float64, e.catalog.Len()),
		Quantities: make(map[string]market.Shares, e.catalog.Len()),
	}
	for _, sym := range e.catalog.Symbols() {
		if in, err := e.catalog.Get(sym); err == nil {
			rec.Prices[sym] = in.Price
			rec.Quantities[sym] = in.Available
		}
	}
	if err := e.journal.SaveMarketState(rec); err != nil {
		e.log.Error("save market state", "error", err)
	}
}

func (e *Engine) savePortfolioLocked(p *market.Portfolio) {
	p.Revalue(e.priceOfLocked)
	holdings := make(map[string]market.Holding, len(p.Holdings))
	for s, h := range p.Holdings {
		holdings[s] = h
	}
	err := e.journal.SavePortfolioSnapshot(journal.PortfolioSnapshot{
		Time:       e.now(),
		TeamID:     p.TeamID,
		Cash:       p.Cash,
		Holdings:   holdings,
		TotalValue: p.TotalValue,
	})
	if err != nil {
		e.log.Error("save portfolio snapshot", "team", p.TeamID, "error", err)
	}
}
