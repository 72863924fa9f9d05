package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jinish2170/Tradewars/market"
)

func TestSessionLifecycleTransitions(t *testing.T) {
	t.Parallel()

	e, _ := newTestEngine(t, Options{})

	// Idle: only StartSession is legal.
	assert.False(t, e.Pause())
	assert.False(t, e.Resume())
	assert.False(t, e.EndSession())
	assert.Equal(t, Idle, e.SessionStatus().State)

	require.True(t, e.StartSession())
	assert.Equal(t, Active, e.SessionStatus().State)
	assert.Equal(t, 1, e.SessionStatus().CurrentSession)

	// Active: no nested start, no resume.
	assert.False(t, e.StartSession())
	assert.False(t, e.Resume())

	require.True(t, e.Pause())
	assert.Equal(t, Paused, e.SessionStatus().State)
	assert.True(t, e.SessionStatus().Paused)
	assert.False(t, e.Pause())
	assert.False(t, e.StartSession())

	require.True(t, e.Resume())
	assert.Equal(t, Active, e.SessionStatus().State)

	require.True(t, e.EndSession())
	assert.Equal(t, Ended, e.SessionStatus().State)
	assert.False(t, e.EndSession())
	assert.False(t, e.Pause())

	// Ended permits the next session.
	require.True(t, e.StartSession())
	assert.Equal(t, 2, e.SessionStatus().CurrentSession)
}

func TestSessionLimit(t *testing.T) {
	t.Parallel()

	e, _ := newTestEngine(t, Options{MaxSessions: 2})

	require.True(t, e.StartSession())
	require.True(t, e.EndSession())
	require.True(t, e.StartSession())
	require.True(t, e.EndSession())

	assert.False(t, e.StartSession())
	assert.Equal(t, 2, e.SessionStatus().CurrentSession)
}

func TestTickCountdownEndsSession(t *testing.T) {
	t.Parallel()

	e, j := newTestEngine(t, Options{Teams: 2, SessionDuration: 3})
	require.True(t, e.StartSession())

	e.Tick()
	e.Tick()
	assert.Equal(t, Active, e.SessionStatus().State)
	assert.Equal(t, 1, e.SessionStatus().TimeRemaining)

	e.Tick()
	assert.Equal(t, Ended, e.SessionStatus().State)

	// Session end persists every portfolio plus the market state.
	teams := make(map[int]bool)
	for _, s := range j.snapshots {
		teams[s.TeamID] = true
	}
	assert.Len(t, teams, 2)
	assert.NotEmpty(t, j.states)
}

func TestTickNoopOutsideActive(t *testing.T) {
	t.Parallel()

	e, _ := newTestEngine(t, Options{})

	before := e.MarketSnapshot().Prices
	e.Tick()
	assert.Equal(t, before, e.MarketSnapshot().Prices)
	assert.Equal(t, 0, e.SessionStatus().TickCount)
}

func TestPausedTicksMoveNothing(t *testing.T) {
	t.Parallel()

	e, _ := newTestEngine(t, Options{})
	require.True(t, e.StartSession())
	e.Tick()
	require.True(t, e.Pause())

	before := e.MarketSnapshot().Prices
	remaining := e.SessionStatus().TimeRemaining
	for i := 0; i < 5; i++ {
		e.Tick()
	}

	assert.Equal(t, before, e.MarketSnapshot().Prices)
	assert.Equal(t, remaining, e.SessionStatus().TimeRemaining)
}

func TestTickMovesPrices(t *testing.T) {
	t.Parallel()

	e, _ := newTestEngine(t, Options{})
	require.True(t, e.StartSession())

	before := e.MarketSnapshot().Prices
	for i := 0; i < 10; i++ {
		e.Tick()
	}
	after := e.MarketSnapshot().Prices

	moved := false
	for sym, p := range after {
		assert.GreaterOrEqual(t, p, market.MinPrice)
		if p != before[sym] {
			moved = true
		}
	}
	assert.True(t, moved)
}

func TestPeriodicMarketStateSnapshots(t *testing.T) {
	t.Parallel()

	e, j := newTestEngine(t, Options{SnapshotInterval: 5})
	require.True(t, e.StartSession())

	for i := 0; i < 10; i++ {
		e.Tick()
	}
	assert.Len(t, j.states, 2)
}

func TestNewsConvergesToExactTargetAtSessionEnd(t *testing.T) {
	t.Parallel()

	e, _ := newTestEngine(t, Options{})
	require.True(t, e.StartSession())

	e.InjectNews([]string{"NOVA"}, 20, "breakthrough chip")
	assert.Equal(t, 1, e.PendingImpacts())

	// Impact activates at the next tick boundary and converges from there.
	e.Tick()
	assert.Equal(t, 0, e.PendingImpacts())
	impacts := e.ActiveImpacts()
	require.Contains(t, impacts, "NOVA")
	assert.Equal(t, 100.0, impacts["NOVA"].StartPrice)
	assert.Equal(t, 120.0, impacts["NOVA"].TargetPrice)

	for i := 0; i < 20; i++ {
		e.Tick()
	}
	partial := e.MarketSnapshot().Prices["NOVA"]
	assert.Greater(t, partial, 100.0)
	assert.Less(t, partial, 120.0)

	// Ending early snaps the price exactly onto the announced target.
	require.True(t, e.EndSession())
	assert.Equal(t, 120.0, e.MarketSnapshot().Prices["NOVA"])
	assert.Empty(t, e.ActiveImpacts())
}

func TestNewsReachesTargetThroughConvergence(t *testing.T) {
	t.Parallel()

	e, _ := newTestEngine(t, Options{ConvergenceSteps: 10})
	require.True(t, e.StartSession())
	e.InjectNews([]string{"NOVA"}, -50, "recall")

	// Exactly ten steps of -$5; once done the symbol fluctuates again, so
	// stop ticking before organic movement takes over.
	for i := 0; i < 10; i++ {
		e.Tick()
	}
	assert.Equal(t, 50.0, e.MarketSnapshot().Prices["NOVA"])
	assert.Empty(t, e.ActiveImpacts())
}

func TestNewsQueuedBeforeStartUsesDrainTimePrice(t *testing.T) {
	t.Parallel()

	e, _ := newTestEngine(t, Options{})

	// Queued while idle; the market then moves before the session starts.
	e.InjectNews([]string{"NOVA"}, 20, "rumor")
	_, err := e.AdminPlaceOrder(0, "NOVA", 200, market.Buy, testAdminKey)
	require.NoError(t, err)
	moved := e.MarketSnapshot().Prices["NOVA"]
	require.NotEqual(t, 100.0, moved)

	require.True(t, e.StartSession())
	assert.Equal(t, 1, e.PendingImpacts())
	e.Tick()

	impacts := e.ActiveImpacts()
	require.Contains(t, impacts, "NOVA")
	assert.Equal(t, moved, impacts["NOVA"].StartPrice)
	assert.InDelta(t, moved*1.2, impacts["NOVA"].TargetPrice, 1e-9)
}

func TestCrashNewsStopsAtPriceFloor(t *testing.T) {
	t.Parallel()

	e, _ := newTestEngine(t, Options{})
	require.True(t, e.StartSession())

	e.InjectNews([]string{"NOVA"}, -100, "delisting")
	e.Tick()
	assert.GreaterOrEqual(t, e.MarketSnapshot().Prices["NOVA"], market.MinPrice)

	require.True(t, e.EndSession())
	assert.Equal(t, market.MinPrice, e.MarketSnapshot().Prices["NOVA"])
}

func TestNewsSurvivesPause(t *testing.T) {
	t.Parallel()

	e, _ := newTestEngine(t, Options{})
	require.True(t, e.StartSession())
	e.Tick()
	require.True(t, e.Pause())

	e.InjectNews([]string{"FIN"}, 10, "earnings beat")
	for i := 0; i < 3; i++ {
		e.Tick() // paused ticks must not drain the queue
	}
	assert.Equal(t, 1, e.PendingImpacts())

	require.True(t, e.Resume())
	e.Tick()
	assert.Equal(t, 0, e.PendingImpacts())
	assert.Contains(t, e.ActiveImpacts(), "FIN")
}
