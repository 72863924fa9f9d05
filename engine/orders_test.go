package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jinish2170/Tradewars/market"
)

func startedEngine(t *testing.T, opts Options) (*Engine, *recordingJournal) {
	t.Helper()

	e, j := newTestEngine(t, opts)
	require.True(t, e.StartSession())
	return e, j
}

func TestSubmitOrderBuy(t *testing.T) {
	t.Parallel()

	e, j := startedEngine(t, Options{})

	exec, err := e.SubmitOrder(0, "NOVA", 100, market.Buy)
	require.NoError(t, err)

	assert.NotEmpty(t, exec.TransactionID)
	assert.Equal(t, market.Shares(100), exec.Quantity)
	// Execution price stays within the combined impact and slippage caps.
	assert.Greater(t, exec.Price, 100*0.90*0.95)
	assert.Less(t, exec.Price, 100*1.10*1.05)
	assert.InDelta(t, exec.Price*100, exec.Value, 1e-9)

	p, err := e.Portfolio(0)
	require.NoError(t, err)
	assert.Equal(t, market.Shares(100), p.Holdings["NOVA"].Quantity)
	assert.InDelta(t, 100000-exec.Value, p.Cash, 1e-9)
	assert.InDelta(t, p.Cash+p.HoldingsValue, p.TotalValue, 1e-9)
	require.Len(t, p.Transactions, 1)
	assert.Equal(t, -1, p.Transactions[0].Counterparty)

	snap := e.MarketSnapshot()
	assert.Equal(t, market.Shares(900), snap.Quantities["NOVA"])
	assert.Equal(t, market.Shares(100), snap.Volumes["NOVA"])
	assert.Equal(t, exec.Price, snap.Prices["NOVA"])

	require.Len(t, j.orders, 1)
	assert.Equal(t, "executed", j.orders[0].Status)
}

func TestSubmitOrderRoundTripConservesShares(t *testing.T) {
	t.Parallel()

	e, _ := startedEngine(t, Options{})

	_, err := e.SubmitOrder(0, "NOVA", 100, market.Buy)
	require.NoError(t, err)
	_, err = e.SubmitOrder(0, "NOVA", 40, market.Sell)
	require.NoError(t, err)

	p, err := e.Portfolio(0)
	require.NoError(t, err)
	snap := e.MarketSnapshot()
	assert.Equal(t, market.Shares(1000), snap.Quantities["NOVA"]+p.Holdings["NOVA"].Quantity)
	assert.Equal(t, market.Shares(140), snap.Volumes["NOVA"])
}

func TestSubmitOrderRejectionsLeaveStateUntouched(t *testing.T) {
	t.Parallel()

	e, j := startedEngine(t, Options{})

	before := e.MarketSnapshot()
	cases := []struct {
		name     string
		teamID   int
		symbol   string
		quantity market.Shares
		side     market.Side
		want     error
	}{
		{"bad side", 0, "NOVA", 10, market.Side("short"), market.ErrInvalidOrder},
		{"zero quantity", 0, "NOVA", 0, market.Buy, market.ErrInvalidQuantity},
		{"negative quantity", 0, "NOVA", -5, market.Sell, market.ErrInvalidQuantity},
		{"unknown symbol", 0, "NOPE", 10, market.Buy, market.ErrUnknownSymbol},
		{"unknown team", 42, "NOVA", 10, market.Buy, market.ErrUnknownTeam},
		{"sell without holdings", 0, "NOVA", 10, market.Sell, market.ErrInsufficientHoldings},
		{"buy beyond float", 0, "NOVA", 2000, market.Buy, market.ErrInsufficientMarketQuantity},
		{"buy beyond budget", 0, "GREEN", 1300, market.Buy, market.ErrInsufficientFunds},
	}

	for _, tc := range cases {
		_, err := e.SubmitOrder(tc.teamID, tc.symbol, tc.quantity, tc.side)
		assert.ErrorIs(t, err, tc.want, tc.name)
	}

	after := e.MarketSnapshot()
	assert.Equal(t, before.Prices, after.Prices)
	assert.Equal(t, before.Quantities, after.Quantities)
	assert.Equal(t, before.Volumes, after.Volumes)

	p, err := e.Portfolio(0)
	require.NoError(t, err)
	assert.Equal(t, 100000.0, p.Cash)
	assert.Empty(t, p.Holdings)
	assert.Empty(t, p.Transactions)
	assert.Empty(t, j.orders)
}

func TestSubmitOrderMarketClosed(t *testing.T) {
	t.Parallel()

	e, _ := newTestEngine(t, Options{})
	_, err := e.SubmitOrder(0, "NOVA", 10, market.Buy)
	assert.ErrorIs(t, err, market.ErrMarketClosed)

	require.True(t, e.StartSession())
	require.True(t, e.EndSession())
	_, err = e.SubmitOrder(0, "NOVA", 10, market.Buy)
	assert.ErrorIs(t, err, market.ErrMarketClosed)
}

func TestSubmitOrderAllowedWhilePaused(t *testing.T) {
	t.Parallel()

	e, _ := startedEngine(t, Options{})
	require.True(t, e.Pause())

	_, err := e.SubmitOrder(0, "NOVA", 10, market.Buy)
	require.NoError(t, err)
}

func TestAdminPlaceOrder(t *testing.T) {
	t.Parallel()

	e, _ := newTestEngine(t, Options{})

	// Wrong key is rejected even when the market is open later.
	_, err := e.AdminPlaceOrder(0, "NOVA", 10, market.Buy, "wrong")
	assert.ErrorIs(t, err, market.ErrUnauthorized)

	// The right key trades regardless of session state.
	exec, err := e.AdminPlaceOrder(0, "NOVA", 10, market.Buy, testAdminKey)
	require.NoError(t, err)
	assert.Equal(t, market.Shares(10), exec.Quantity)
}

func TestOrdersAccumulateWeightedCost(t *testing.T) {
	t.Parallel()

	e, _ := startedEngine(t, Options{})

	first, err := e.SubmitOrder(0, "NOVA", 100, market.Buy)
	require.NoError(t, err)
	second, err := e.SubmitOrder(0, "NOVA", 100, market.Buy)
	require.NoError(t, err)

	p, err := e.Portfolio(0)
	require.NoError(t, err)
	h := p.Holdings["NOVA"]
	assert.Equal(t, market.Shares(200), h.Quantity)
	assert.InDelta(t, (first.Value+second.Value)/200, h.AvgPrice, 1e-9)
}

func TestTransfer(t *testing.T) {
	t.Parallel()

	e, _ := startedEngine(t, Options{})

	_, err := e.SubmitOrder(0, "NOVA", 100, market.Buy)
	require.NoError(t, err)
	price := e.MarketSnapshot().Prices["NOVA"]

	require.NoError(t, e.Transfer(0, 1, "NOVA", 40))

	from, err := e.Portfolio(0)
	require.NoError(t, err)
	to, err := e.Portfolio(1)
	require.NoError(t, err)

	assert.Equal(t, market.Shares(60), from.Holdings["NOVA"].Quantity)
	assert.Equal(t, market.Shares(40), to.Holdings["NOVA"].Quantity)
	assert.InDelta(t, price, to.Holdings["NOVA"].AvgPrice, 1e-9)

	// No cash moves and the market price is untouched.
	assert.Equal(t, 100000.0, to.Cash)
	assert.Equal(t, price, e.MarketSnapshot().Prices["NOVA"])

	require.Len(t, from.Transactions, 2)
	assert.Equal(t, market.TransferOut, from.Transactions[1].Side)
	assert.Equal(t, 1, from.Transactions[1].Counterparty)
	require.Len(t, to.Transactions, 1)
	assert.Equal(t, market.TransferIn, to.Transactions[0].Side)
	assert.Equal(t, 0, to.Transactions[0].Counterparty)
}

func TestTransferRejections(t *testing.T) {
	t.Parallel()

	e, _ := startedEngine(t, Options{})

	assert.ErrorIs(t, e.Transfer(0, 1, "NOVA", 0), market.ErrInvalidQuantity)
	assert.ErrorIs(t, e.Transfer(42, 1, "NOVA", 10), market.ErrUnknownTeam)
	assert.ErrorIs(t, e.Transfer(0, 42, "NOVA", 10), market.ErrUnknownTeam)
	assert.ErrorIs(t, e.Transfer(0, 1, "NOPE", 10), market.ErrUnknownSymbol)
	assert.ErrorIs(t, e.Transfer(0, 1, "NOVA", 10), market.ErrInsufficientHoldings)
}
