package journal

import (
	"encoding/json"
	"time"

	"github.com/Jinish2170/Tradewars/market"
)

// OrderHistory returns executed and failed orders, newest first. teamID < 0
// means all teams.
func (j *SQLite) OrderHistory(teamID int, limit int) ([]OrderRecord, error) {
	query := `
		SELECT timestamp, team_id, symbol, side, quantity, price, status
		FROM orders`
	args := []any{}
	if teamID >= 0 {
		query += ` WHERE team_id = ?`
		args = append(args, teamID)
	}
	query += ` ORDER BY timestamp DESC`
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := j.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []OrderRecord
	for rows.Next() {
		var rec OrderRecord
		var side string
		if err := rows.Scan(&rec.Time, &rec.TeamID, &rec.Symbol, &side, &rec.Quantity, &rec.Price, &rec.Status); err != nil {
			return nil, err
		}
		rec.Side = market.Side(side)
		out = append(out, rec)
	}
	return out, rows.Err()
}

// EventHistory returns injected events within [start, end), newest first.
// eventType "" means all types.
func (j *SQLite) EventHistory(eventType string, start, end time.Time) ([]EventRecord, error) {
	query := `
		SELECT id, timestamp, event_type, description, symbols, impact
		FROM events
		WHERE timestamp >= ? AND timestamp < ?`
	args := []any{start, end}
	if eventType != "" {
		query += ` AND event_type = ?`
		args = append(args, eventType)
	}
	query += ` ORDER BY timestamp DESC`

	rows, err := j.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []EventRecord
	for rows.Next() {
		var rec EventRecord
		var symbols string
		if err := rows.Scan(&rec.ID, &rec.Time, &rec.Type, &rec.Description, &symbols, &rec.Impact); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(symbols), &rec.Symbols); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// LatestPortfolioSnapshot returns the most recent snapshot for a team.
func (j *SQLite) LatestPortfolioSnapshot(teamID int) (PortfolioSnapshot, error) {
	row := j.db.QueryRow(`
		SELECT timestamp, team_id, cash_balance, holdings, total_value
		FROM portfolio_snapshots
		WHERE team_id = ?
		ORDER BY timestamp DESC, id DESC
		LIMIT 1`, teamID)

	var snap PortfolioSnapshot
	var holdings string
	if err := row.Scan(&snap.Time, &snap.TeamID, &snap.Cash, &holdings, &snap.TotalValue); err != nil {
		return PortfolioSnapshot{}, err
	}
	if err := json.Unmarshal([]byte(holdings), &snap.Holdings); err != nil {
		return PortfolioSnapshot{}, err
	}
	return snap, nil
}
