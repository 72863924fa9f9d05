package engine

import (
	"github.com/Jinish2170/Tradewars/market"
	"github.com/Jinish2170/Tradewars/pricing"
)

// State is the session lifecycle position: Idle -> Active <-> Paused -> Ended.
// Ended is terminal for one session; StartSession begins the next, up to the
// configured maximum.
type State int

const (
	Idle State = iota
	Active
	Paused
	Ended
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Active:
		return "active"
	case Paused:
		return "paused"
	case Ended:
		return "ended"
	}
	return "unknown"
}

// pendingImpact is a queued news event awaiting activation. Targets are
// computed at drain time, not here.
type pendingImpact struct {
	symbols       []string
	targetPercent float64
}

type sessionState struct {
	state           State
	currentSession  int
	maxSessions     int
	sessionDuration int
	timeRemaining   int
	tickCount       int

	pending []pendingImpact
	active  map[string]pricing.NewsImpact
}

func newSessionState(duration, maxSessions int) sessionState {
	return sessionState{
		state:           Idle,
		maxSessions:     maxSessions,
		sessionDuration: duration,
		timeRemaining:   duration,
		active:          make(map[string]pricing.NewsImpact),
	}
}

// Status is the externally visible session state.
type Status struct {
	State          State
	CurrentSession int
	MaxSessions    int
	TimeRemaining  int
	TickCount      int
	Paused         bool
}

// Remaining countdown checkpoints that get logged.
var checkpoints = map[int]bool{300: true, 180: true, 60: true, 30: true, 10: true}

// StartSession begins the next trading session. Valid only from Idle or
// Ended, and only while sessions remain. Impacts queued before the start are
// drained at the first tick after the session is observably active, never
// during activation itself.
func (e *Engine) StartSession() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	s := &e.session
	if s.state == Active || s.state == Paused {
		e.log.Warn("session already active")
		return false
	}
	if s.currentSession >= s.maxSessions {
		e.log.Warn("session limit reached", "max", s.maxSessions)
		return false
	}

	s.currentSession++
	s.tickCount = 0
	s.timeRemaining = s.sessionDuration
	s.state = Active

	e.log.Info("trading session started",
		"session", s.currentSession,
		"duration_seconds", s.sessionDuration,
		"pending_impacts", len(s.pending))
	return true
}

// Pause freezes the countdown and all price movement. Valid only from Active.
func (e *Engine) Pause() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.session.state != Active {
		e.log.Warn("no active session to pause")
		return false
	}
	e.session.state = Paused
	e.log.Info("session paused", "time_remaining", e.session.timeRemaining)
	return true
}

// Resume unfreezes a paused session without resetting the countdown or
// touching queued impacts.
func (e *Engine) Resume() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.session.state != Paused {
		e.log.Warn("session not paused")
		return false
	}
	e.session.state = Active
	e.log.Info("session resumed", "time_remaining", e.session.timeRemaining)
	return true
}

// EndSession ends the current session. Valid from Active or Paused. Every
// active news impact is snapped exactly onto its target price so announced
// percentages always land precisely, then final snapshots are persisted.
func (e *Engine) EndSession() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.session.state != Active && e.session.state != Paused {
		e.log.Warn("no active session to end")
		return false
	}
	e.endLocked()
	return true
}

func (e *Engine) endLocked() {
	s := &e.session

	for sym, impact := range s.active {
		in, err := e.catalog.Get(sym)
		if err != nil {
			e.log.Error("force target: instrument missing", "symbol", sym, "error", err)
			continue
		}
		before := in.Price
		e.pricing.ForceToTarget(in, impact)
		e.log.Info("news impact forced to target",
			"symbol", sym,
			"start", impact.StartPrice,
			"before", before,
			"target", impact.TargetPrice,
			"target_percent", impact.TargetPercent)
	}
	s.active = make(map[string]pricing.NewsImpact)

	s.state = Ended
	s.timeRemaining = s.sessionDuration

	for _, p := range e.portfolios {
		e.savePortfolioLocked(p)
	}
	e.saveMarketStateLocked()

	e.log.Info("trading session ended", "session", s.currentSession)
}

// Tick advances the simulation by one second. The caller is the single
// authoritative clock: a wall-clock ticker in production, the test itself
// otherwise. No-op unless the session is Active.
func (e *Engine) Tick() {
	e.mu.Lock()
	defer e.mu.Unlock()

	s := &e.session
	if s.state != Active {
		return
	}

	s.tickCount++
	s.timeRemaining--

	if checkpoints[s.timeRemaining] {
		e.log.Info("session time remaining",
			"minutes", s.timeRemaining/60,
			"seconds", s.timeRemaining%60)
	}

	e.drainPendingLocked()
	e.pricing.AdvanceDynamics(e.instrumentsLocked())

	// Convergence and organic fluctuation are mutually exclusive per
	// instrument per tick. A failure on one instrument is logged and
	// skipped; the rest still update.
	for _, sym := range e.catalog.Symbols() {
		in, err := e.catalog.Get(sym)
		if err != nil {
			e.log.Error("tick: instrument lookup failed", "symbol", sym, "error", err)
			continue
		}
		if impact, ok := s.active[sym]; ok {
			if done := e.pricing.ConvergeStep(in, impact, e.opts.ConvergenceSteps); done {
				delete(s.active, sym)
				e.log.Info("news impact reached target", "symbol", sym, "target", impact.TargetPrice)
			}
			continue
		}
		if change := e.pricing.Fluctuate(in); change > 0.03 || change < -0.03 {
			e.log.Info("significant price change", "symbol", sym, "change_percent", change*100)
		}
	}

	if s.tickCount%e.opts.SnapshotInterval == 0 {
		e.saveMarketStateLocked()
	}

	if s.timeRemaining <= 0 {
		e.log.Info("session time expired")
		e.endLocked()
	}
}

// drainPendingLocked activates queued news impacts. Target prices are
// computed from the price at drain time, so the announced percentage is
// relative to the moment the event takes effect, not its submission.
func (e *Engine) drainPendingLocked() {
	s := &e.session
	if len(s.pending) == 0 {
		return
	}

	queued := s.pending
	s.pending = nil

	for _, pi := range queued {
		for _, sym := range pi.symbols {
			in, err := e.catalog.Get(sym)
			if err != nil {
				e.log.Error("drain impact: unknown symbol", "symbol", sym, "error", err)
				continue
			}
			impact := pricing.NewNewsImpact(in, pi.targetPercent)
			s.active[sym] = impact
			e.log.Info("news impact activated",
				"symbol", sym,
				"start", impact.StartPrice,
				"target", impact.TargetPrice,
				"target_percent", impact.TargetPercent)
		}
	}
}

func (e *Engine) instrumentsLocked() []*market.Instrument {
	out := make([]*market.Instrument, 0, e.catalog.Len())
	for _, sym := range e.catalog.Symbols() {
		if in, err := e.catalog.Get(sym); err == nil {
			out = append(out, in)
		}
	}
	return out
}

// SessionStatus reports the current lifecycle position.
func (e *Engine) SessionStatus() Status {
	e.mu.Lock()
	defer e.mu.Unlock()

	s := e.session
	return Status{
		State:          s.state,
		CurrentSession: s.currentSession,
		MaxSessions:    s.maxSessions,
		TimeRemaining:  s.timeRemaining,
		TickCount:      s.tickCount,
		Paused:         s.state == Paused,
	}
}

// marketOpenLocked reports whether self-service trading is allowed. Pausing
// withholds tick-driven price movement only; orders arriving while paused
// still execute.
func (e *Engine) marketOpenLocked() bool {
	return e.session.state == Active || e.session.state == Paused
}

// PendingImpacts returns how many news impacts are queued awaiting a drain.
func (e *Engine) PendingImpacts() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.session.pending)
}

// ActiveImpacts returns a copy of the currently converging news impacts.
func (e *Engine) ActiveImpacts() map[string]pricing.NewsImpact {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make(map[string]pricing.NewsImpact, len(e.session.active))
	for sym, imp := range e.session.active {
		out[sym] = imp
	}
	return out
}
