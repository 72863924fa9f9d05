package journal

import (
	"encoding/csv"
	"os"
	"strconv"
	"strings"
	"time"
)

// CSV journals orders and events to two flat files. Market-state and
// portfolio snapshots carry nested maps and are not representable in flat
// CSV rows; they are dropped here, which the fire-and-forget contract allows.
type CSV struct {
	orders *csv.Writer
	events *csv.Writer
	of, ef *os.File
}

func NewCSV(ordersPath, eventsPath string) (*CSV, error) {
	of, err := os.Create(ordersPath)
	if err != nil {
		return nil, err
	}
	ef, err := os.Create(eventsPath)
	if err != nil {
		of.Close()
		return nil, err
	}

	ow := csv.NewWriter(of)
	ew := csv.NewWriter(ef)

	if err := ow.Write([]string{"time", "team_id", "symbol", "side", "quantity", "price", "status"}); err != nil {
		return nil, err
	}
	if err := ew.Write([]string{"id", "time", "type", "description", "symbols", "impact"}); err != nil {
		return nil, err
	}

	ow.Flush()
	if err := ow.Error(); err != nil {
		return nil, err
	}
	ew.Flush()
	if err := ew.Error(); err != nil {
		return nil, err
	}

	return &CSV{ow, ew, of, ef}, nil
}

func (j *CSV) LogOrder(o OrderRecord) error {
	err := j.orders.Write([]string{
		o.Time.Format(time.RFC3339),
		strconv.Itoa(o.TeamID),
		o.Symbol,
		string(o.Side),
		strconv.FormatInt(int64(o.Quantity), 10),
		f(o.Price),
		o.Status,
	})
	if err != nil {
		return err
	}
	j.orders.Flush()
	return j.orders.Error()
}

func (j *CSV) LogEvent(e EventRecord) error {
	err := j.events.Write([]string{
		e.ID,
		e.Time.Format(time.RFC3339),
		e.Type,
		e.Description,
		strings.Join(e.Symbols, " "),
		f(e.Impact),
	})
	if err != nil {
		return err
	}
	j.events.Flush()
	return j.events.Error()
}

func (j *CSV) SaveMarketState(MarketStateRecord) error       { return nil }
func (j *CSV) SavePortfolioSnapshot(PortfolioSnapshot) error { return nil }

func (j *CSV) Close() error {
	j.orders.Flush()
	if err := j.orders.Error(); err != nil {
		return err
	}
	j.events.Flush()
	if err := j.events.Error(); err != nil {
		return err
	}

	if err := j.of.Close(); err != nil {
		return err
	}
	return j.ef.Close()
}

func f(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}
