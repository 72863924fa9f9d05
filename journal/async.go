package journal

import (
	"log/slog"
	"sync"
)

// Async wraps a Journal so writes never block the engine's hot path. Records
// are handed to a single worker goroutine over a buffered channel; when the
// buffer is full the record is dropped and counted. Persistence here is a
// best-effort side effect, never awaited before acknowledging an order.
type Async struct {
	inner Journal
	log   *slog.Logger

	queue   chan func(Journal) error
	done    chan struct{}
	once    sync.Once
	mu      sync.Mutex
	dropped int64
}

// NewAsync starts the worker. buffer <= 0 falls back to a sane default.
func NewAsync(inner Journal, buffer int, log *slog.Logger) *Async {
	if buffer <= 0 {
		buffer = 256
	}
	if log == nil {
		log = slog.Default()
	}
	a := &Async{
		inner: inner,
		log:   log,
		queue: make(chan func(Journal) error, buffer),
		done:  make(chan struct{}),
	}
	go a.run()
	return a
}

func (a *Async) run() {
	defer close(a.done)
	for op := range a.queue {
		if err := op(a.inner); err != nil {
			a.log.Error("journal write failed", "error", err)
		}
	}
}

func (a *Async) submit(op func(Journal) error) {
	select {
	case a.queue <- op:
	default:
		a.mu.Lock()
		a.dropped++
		n := a.dropped
		a.mu.Unlock()
		a.log.Warn("journal buffer full, record dropped", "dropped_total", n)
	}
}

// Dropped returns how many records were discarded due to backpressure.
func (a *Async) Dropped() int64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.dropped
}

func (a *Async) LogOrder(o OrderRecord) error {
	a.submit(func(j Journal) error { return j.LogOrder(o) })
	return nil
}

func (a *Async) LogEvent(e EventRecord) error {
	a.submit(func(j Journal) error { return j.LogEvent(e) })
	return nil
}

func (a *Async) SaveMarketState(s MarketStateRecord) error {
	a.submit(func(j Journal) error { return j.SaveMarketState(s) })
	return nil
}

func (a *Async) SavePortfolioSnapshot(p PortfolioSnapshot) error {
	a.submit(func(j Journal) error { return j.SavePortfolioSnapshot(p) })
	return nil
}

// Close drains queued records, then closes the wrapped journal.
func (a *Async) Close() error {
	a.once.Do(func() {
		close(a.queue)
	})
	<-a.done
	return a.inner.Close()
}
