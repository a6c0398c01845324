// Package persistence keeps a SQLite journal of what happened during play:
// turn events, per-turn summaries, and a few metadata keys. It does not store
// enough to restore a game.
package persistence

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/talgya/hexfront/internal/turn"
)

// DB wraps a SQLite connection for the game journal.
type DB struct {
	conn *sqlx.DB
}

// TurnSummary is a snapshot of the player's situation at the start of a turn.
type TurnSummary struct {
	Turn     int    `db:"turn"`
	Civ      string `db:"civ"`
	Units    int    `db:"units"`
	Owned    int    `db:"owned"`
	Visible  int    `db:"visible"`
	Explored int    `db:"explored"`
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		turn INTEGER NOT NULL,
		description TEXT NOT NULL,
		category TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS turn_summaries (
		turn INTEGER PRIMARY KEY,
		civ TEXT NOT NULL,
		units INTEGER NOT NULL,
		owned INTEGER NOT NULL,
		visible INTEGER NOT NULL,
		explored INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS world_meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_events_turn ON events(turn);
	CREATE INDEX IF NOT EXISTS idx_events_category ON events(category);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// SaveEvents appends events to the journal.
func (db *DB) SaveEvents(events []turn.Event) error {
	if len(events) == 0 {
		return nil
	}

	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareNamed("INSERT INTO events (turn, description, category) VALUES (:turn, :description, :category)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, e := range events {
		if _, err := stmt.Exec(e); err != nil {
			return fmt.Errorf("insert event for turn %d: %w", e.Turn, err)
		}
	}

	return tx.Commit()
}

// RecentEvents returns the most recent N events, newest first.
func (db *DB) RecentEvents(limit int) ([]turn.Event, error) {
	var events []turn.Event
	err := db.conn.Select(&events,
		"SELECT turn, description, category FROM events ORDER BY id DESC LIMIT ?",
		limit,
	)
	return events, err
}

// EventsByCategory returns every event of one category in the order recorded.
func (db *DB) EventsByCategory(category string) ([]turn.Event, error) {
	var events []turn.Event
	err := db.conn.Select(&events,
		"SELECT turn, description, category FROM events WHERE category = ? ORDER BY id",
		category,
	)
	return events, err
}

// SaveSummary stores the summary for a turn, replacing any earlier one.
func (db *DB) SaveSummary(s TurnSummary) error {
	_, err := db.conn.NamedExec(`INSERT OR REPLACE INTO turn_summaries
		(turn, civ, units, owned, visible, explored)
		VALUES (:turn, :civ, :units, :owned, :visible, :explored)`, s)
	return err
}

// Summaries returns every stored turn summary in turn order.
func (db *DB) Summaries() ([]TurnSummary, error) {
	var out []TurnSummary
	err := db.conn.Select(&out, "SELECT turn, civ, units, owned, visible, explored FROM turn_summaries ORDER BY turn")
	return out, err
}

// SaveMeta stores a key-value pair in the journal metadata.
func (db *DB) SaveMeta(key, value string) error {
	_, err := db.conn.Exec(
		"INSERT OR REPLACE INTO world_meta (key, value) VALUES (?, ?)",
		key, value,
	)
	return err
}

// GetMeta retrieves a metadata value.
func (db *DB) GetMeta(key string) (string, error) {
	var value string
	err := db.conn.Get(&value, "SELECT value FROM world_meta WHERE key = ?", key)
	return value, err
}

// Summarize counts what the player holds and sees right now.
func Summarize(g *turn.Game) TurnSummary {
	s := TurnSummary{Turn: g.Turn}
	player := g.Player()
	if player == nil {
		return s
	}
	s.Civ = player.Name
	for t := range g.Grid.Tiles() {
		if t.Occupant != nil && t.Occupant.Civ == player.ID {
			s.Units++
		}
		if t.OwnedBy(player.ID) {
			s.Owned++
		}
		if t.Visible {
			s.Visible++
		}
		if t.Explored {
			s.Explored++
		}
	}
	return s
}

// Checkpoint drains the game's pending events into the journal and records
// the current turn's summary.
func (db *DB) Checkpoint(g *turn.Game) error {
	events := g.DrainEvents()
	if err := db.SaveEvents(events); err != nil {
		// Put them back so the next checkpoint can retry.
		g.Events = append(events, g.Events...)
		return fmt.Errorf("save events: %w", err)
	}
	summary := Summarize(g)
	if err := db.SaveSummary(summary); err != nil {
		return fmt.Errorf("save summary: %w", err)
	}
	if err := db.SaveMeta("last_turn", strconv.Itoa(g.Turn)); err != nil {
		return fmt.Errorf("save meta: %w", err)
	}

	slog.Debug("journal checkpoint", "turn", g.Turn, "events", len(events), "visible", summary.Visible)
	return nil
}
