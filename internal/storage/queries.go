package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pable/go-rugby-metrics/internal/model"
)

// MatchExists returns true if a match with the given hash is already stored.
func (db *DB) MatchExists(hash string) (bool, error) {
	var count int
	err := db.conn.QueryRow("SELECT COUNT(1) FROM matches WHERE hash = ?", hash).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// SaveMatch stores a match and its normalized events in one transaction. The
// raw record of each event is kept as its payload so it can be normalized
// again on read. Saving the same hash again replaces the previous copy. An
// empty ImportID or ImportedAt is filled in and the stored summary returned.
func (db *DB) SaveMatch(summary model.MatchSummary, events []model.Event) (model.MatchSummary, error) {
	if summary.ImportID == "" {
		summary.ImportID = uuid.NewString()
	}
	if summary.ImportedAt == "" {
		summary.ImportedAt = time.Now().UTC().Format(time.RFC3339)
	}
	summary.EventCount = len(events)

	tx, err := db.conn.Begin()
	if err != nil {
		return summary, err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM events WHERE match_hash = ?", summary.Hash); err != nil {
		return summary, fmt.Errorf("clear events: %w", err)
	}
	_, err = tx.Exec(`
		INSERT OR REPLACE INTO matches(hash, match_id, team, opponent, match_date, competition,
			video_url, source, event_count, dropped_count, import_id, imported_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		summary.Hash, summary.MatchID, summary.Team, summary.Opponent, summary.MatchDate,
		summary.Competition, summary.VideoURL, summary.Source,
		summary.EventCount, summary.DroppedCount, summary.ImportID, summary.ImportedAt,
	)
	if err != nil {
		return summary, fmt.Errorf("insert match: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT OR REPLACE INTO events(match_hash, event_id, event_type, timestamp_sec, duration_sec, team, payload)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return summary, err
	}
	defer stmt.Close()

	for i := range events {
		ev := &events[i]
		payload, err := json.Marshal(ev.Fields)
		if err != nil {
			return summary, fmt.Errorf("encode event %s: %w", ev.ID, err)
		}
		var ts sql.NullFloat64
		if ev.HasTimestamp {
			ts = sql.NullFloat64{Float64: ev.TimestampSec, Valid: true}
		}
		if _, err := stmt.Exec(summary.Hash, ev.ID, ev.Type, ts, ev.DurationSec, ev.Team, string(payload)); err != nil {
			return summary, fmt.Errorf("insert event %s: %w", ev.ID, err)
		}
	}
	return summary, tx.Commit()
}

const matchColumns = `hash, match_id, team, opponent, match_date, competition, video_url,
	source, event_count, dropped_count, import_id, imported_at`

func scanMatch(sc interface{ Scan(...any) error }) (model.MatchSummary, error) {
	var s model.MatchSummary
	err := sc.Scan(&s.Hash, &s.MatchID, &s.Team, &s.Opponent, &s.MatchDate, &s.Competition,
		&s.VideoURL, &s.Source, &s.EventCount, &s.DroppedCount, &s.ImportID, &s.ImportedAt)
	return s, err
}

// ListMatches returns all stored matches, newest match date first.
func (db *DB) ListMatches() ([]model.MatchSummary, error) {
	rows, err := db.conn.Query(`SELECT ` + matchColumns + ` FROM matches ORDER BY match_date DESC, imported_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.MatchSummary
	for rows.Next() {
		s, err := scanMatch(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

// GetMatchByPrefix finds the first match whose hash starts with prefix, or
// whose backend match id equals it. It returns nil when nothing matches.
// LIKE wildcards in prefix are matched literally.
func (db *DB) GetMatchByPrefix(prefix string) (*model.MatchSummary, error) {
	if prefix == "" {
		return nil, nil
	}
	pattern := likeEscaper.Replace(prefix) + "%"
	row := db.conn.QueryRow(`SELECT `+matchColumns+` FROM matches
		WHERE hash LIKE ? ESCAPE '\' OR match_id = ?
		ORDER BY (hash LIKE ? ESCAPE '\') DESC, imported_at DESC LIMIT 1`, pattern, prefix, pattern)
	s, err := scanMatch(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// GetEventRecords returns the raw records of a match in stored time order.
// Events without a timestamp come first.
func (db *DB) GetEventRecords(hash string) ([]model.Record, error) {
	rows, err := db.conn.Query(`
		SELECT event_id, payload FROM events WHERE match_hash = ?
		ORDER BY COALESCE(timestamp_sec, 0), rowid`, hash)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Record
	for rows.Next() {
		var id, payload string
		if err := rows.Scan(&id, &payload); err != nil {
			return nil, err
		}
		var rec model.Record
		if err := json.Unmarshal([]byte(payload), &rec); err != nil {
			return nil, fmt.Errorf("decode event %s: %w", id, err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// DeleteMatch removes a match and its events. It reports whether a match was
// removed.
func (db *DB) DeleteMatch(hash string) (bool, error) {
	tx, err := db.conn.Begin()
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM events WHERE match_hash = ?", hash); err != nil {
		return false, fmt.Errorf("delete events: %w", err)
	}
	res, err := tx.Exec("DELETE FROM matches WHERE hash = ?", hash)
	if err != nil {
		return false, fmt.Errorf("delete match: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, tx.Commit()
}
