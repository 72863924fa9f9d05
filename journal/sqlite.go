package journal

import (
	"database/sql"
	"encoding/json"

	_ "github.com/mattn/go-sqlite3"
)

type SQLite struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLite{db: db}, nil
}

func (j *SQLite) LogOrder(o OrderRecord) error {
	_, err := j.db.Exec(`
		INSERT INTO orders (timestamp, team_id, symbol, side, quantity, price, status)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		o.Time, o.TeamID, o.Symbol, string(o.Side), o.Quantity, o.Price, o.Status,
	)
	return err
}

func (j *SQLite) LogEvent(e EventRecord) error {
	symbols, err := json.Marshal(e.Symbols)
	if err != nil {
		return err
	}
	_, err = j.db.Exec(`
		INSERT INTO events (id, timestamp, event_type, description, symbols, impact)
		VALUES (?, ?, ?, ?, ?, ?)`,
		e.ID, e.Time, e.Type, e.Description, string(symbols), e.Impact,
	)
	return err
}

func (j *SQLite) SaveMarketState(s MarketStateRecord) error {
	prices, err := json.Marshal(s.Prices)
	if err != nil {
		return err
	}
	quantities, err := json.Marshal(s.Quantities)
	if err != nil {
		return err
	}
	_, err = j.db.Exec(`
		INSERT INTO market_states (timestamp, prices, quantities)
		VALUES (?, ?, ?)`,
		s.Time, string(prices), string(quantities),
	)
	return err
}

func (j *SQLite) SavePortfolioSnapshot(p PortfolioSnapshot) error {
	holdings, err := json.Marshal(p.Holdings)
	if err != nil {
		return err
	}
	_, err = j.db.Exec(`
		INSERT INTO portfolio_snapshots (timestamp, team_id, cash_balance, holdings, total_value)
		VALUES (?, ?, ?, ?, ?)`,
		p.Time, p.TeamID, p.Cash, string(holdings), p.TotalValue,
	)
	return err
}

func (j *SQLite) Close() error {
	return j.db.Close()
}
