package engine

import (
	"github.com/google/uuid"

	"github.com/Jinish2170/Tradewars/journal"
	"github.com/Jinish2170/Tradewars/market"
)

// InjectIPO lists a new instrument at runtime and records the event. An
// active session is not required; the new symbol simply joins the next
// fluctuation pass.
func (e *Engine) InjectIPO(def market.Definition) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.catalog.Register(def); err != nil {
		return err
	}

	e.log.Info("ipo listed",
		"symbol", def.Symbol, "price", def.Price, "quantity", def.Quantity)

	if err := e.journal.LogEvent(journal.EventRecord{
		ID:          uuid.NewString(),
		Time:        e.now(),
		Type:        "ipo",
		Description: "IPO: " + def.Symbol,
		Symbols:     []string{def.Symbol},
	}); err != nil {
		e.log.Error("log ipo event", "error", err)
	}
	e.saveMarketStateLocked()
	return nil
}

// InjectNews queues a news impact for the given symbols. It never mutates
// prices directly: the impact activates at the next tick boundary when a
// session is active, or at the first tick after the next session starts.
// The event is recorded regardless of session state.
func (e *Engine) InjectNews(symbols []string, targetPercent float64, description string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for _, sym := range symbols {
		if !e.catalog.Has(sym) {
			e.log.Warn("news references unlisted symbol", "symbol", sym)
		}
	}

	e.session.pending = append(e.session.pending, pendingImpact{
		symbols:       append([]string(nil), symbols...),
		targetPercent: targetPercent,
	})

	if e.session.state == Active {
		e.log.Info("news impact queued for next tick",
			"symbols", symbols, "target_percent", targetPercent)
	} else {
		e.log.Info("news impact queued for session start",
			"symbols", symbols, "target_percent", targetPercent)
	}

	if err := e.journal.LogEvent(journal.EventRecord{
		ID:          uuid.NewString(),
		Time:        e.now(),
		Type:        "news",
		Description: description,
		Symbols:     append([]string(nil), symbols...),
		Impact:      targetPercent,
	}); err != nil {
		e.log.Error("log news event", "error", err)
	}
}
