// Package storage provides SQLite-based archiving of finished battles.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
//
// The archive is an audit log for the history command; battles cannot be
// restored from it.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/hex-tactics/internal/battle"
)

// Store manages the SQLite database connection for the battle archive.
type Store struct {
	db *sql.DB
}

// BattleRecord represents one archived battle.
type BattleRecord struct {
	ID         int64
	BattleID   string
	ScenarioID string
	Outcome    string // "victory", "defeat", "draw", "undecided"
	Turns      int
	Steps      int
	EventCount int
	CreatedAt  time.Time
}

// EventRecord represents one archived event.
type EventRecord struct {
	Seq         int
	Kind        string
	UnitID      string // Empty for battle-wide events
	HP          int
	Energy      int
	Description string
}

// ScenarioStats contains aggregated results for a scenario.
type ScenarioStats struct {
	ScenarioID string
	Battles    int
	Victories  int
	Defeats    int
	AvgTurns   float64
	LastPlayed time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS battles (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			battle_id TEXT NOT NULL UNIQUE,
			scenario_id TEXT NOT NULL,
			outcome TEXT NOT NULL,
			turns INTEGER NOT NULL DEFAULT 0,
			steps INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_battles_scenario_id ON battles(scenario_id);

		CREATE TABLE IF NOT EXISTS battle_events (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			battle_id TEXT NOT NULL REFERENCES battles(battle_id) ON DELETE CASCADE,
			seq INTEGER NOT NULL,
			kind TEXT NOT NULL,
			unit_id TEXT,
			hp INTEGER NOT NULL DEFAULT 0,
			energy INTEGER NOT NULL DEFAULT 0,
			description TEXT NOT NULL,
			UNIQUE (battle_id, seq)
		);
		CREATE INDEX IF NOT EXISTS idx_battle_events_battle_id ON battle_events(battle_id);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveBattle archives a battle and its events in one transaction.
// Returns the ID of the inserted battle record.
func (s *Store) SaveBattle(rec BattleRecord, events []EventRecord) (int64, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(
		`INSERT INTO battles (battle_id, scenario_id, outcome, turns, steps)
		 VALUES (?, ?, ?, ?, ?)`,
		rec.BattleID, rec.ScenarioID, rec.Outcome, rec.Turns, rec.Steps,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save battle: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	stmt, err := tx.Prepare(
		`INSERT INTO battle_events (battle_id, seq, kind, unit_id, hp, energy, description)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot prepare event insert: %w", err)
	}
	defer stmt.Close()

	for _, e := range events {
		var unitID sql.NullString
		if e.UnitID != "" {
			unitID = sql.NullString{String: e.UnitID, Valid: true}
		}
		if _, err := stmt.Exec(rec.BattleID, e.Seq, e.Kind, unitID, e.HP, e.Energy, e.Description); err != nil {
			return 0, fmt.Errorf("storage: cannot save event %d: %w", e.Seq, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("storage: cannot commit battle: %w", err)
	}
	return id, nil
}

// SaveBattleResult implements battle.ResultSaver.
// This adapter allows a battle to be archived without direct storage dependency.
func (s *Store) SaveBattleResult(data battle.ResultData) error {
	events := make([]EventRecord, len(data.Events))
	for i, e := range data.Events {
		events[i] = EventRecord{
			Seq:         i + 1,
			Kind:        e.Kind.String(),
			UnitID:      e.Unit.ID,
			HP:          e.Unit.HP,
			Energy:      e.Unit.Energy,
			Description: e.Description,
		}
	}
	_, err := s.SaveBattle(BattleRecord{
		BattleID:   data.BattleID,
		ScenarioID: data.ScenarioID,
		Outcome:    data.Outcome,
		Turns:      data.Turns,
		Steps:      data.Steps,
	}, events)
	return err
}

// Ensure Store implements ResultSaver
var _ battle.ResultSaver = (*Store)(nil)

const battleColumns = `b.id, b.battle_id, b.scenario_id, b.outcome, b.turns, b.steps,
	(SELECT COUNT(*) FROM battle_events e WHERE e.battle_id = b.battle_id), b.created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBattle(row rowScanner) (BattleRecord, error) {
	var rec BattleRecord
	var createdAt any
	if err := row.Scan(
		&rec.ID,
		&rec.BattleID,
		&rec.ScenarioID,
		&rec.Outcome,
		&rec.Turns,
		&rec.Steps,
		&rec.EventCount,
		&createdAt,
	); err != nil {
		return rec, err
	}
	rec.CreatedAt = parseTime(createdAt)
	return rec, nil
}

// parseTime handles both time.Time and string datetimes.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

// RecentBattles retrieves the most recent battles, optionally filtered
// by scenario.
func (s *Store) RecentBattles(scenarioID string, limit int) ([]BattleRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT `+battleColumns+`
		 FROM battles b
		 WHERE ? = '' OR b.scenario_id = ?
		 ORDER BY b.created_at DESC, b.id DESC
		 LIMIT ?`,
		scenarioID, scenarioID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query battles: %w", err)
	}
	defer rows.Close()

	var records []BattleRecord
	for rows.Next() {
		rec, err := scanBattle(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return records, nil
}

// BattleByID retrieves an archived battle. Returns nil if it does not exist.
func (s *Store) BattleByID(battleID string) (*BattleRecord, error) {
	rec, err := scanBattle(s.db.QueryRow(
		`SELECT `+battleColumns+` FROM battles b WHERE b.battle_id = ?`,
		battleID,
	))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query battle: %w", err)
	}
	return &rec, nil
}

// BattleEvents retrieves the event log of a battle in order.
func (s *Store) BattleEvents(battleID string) ([]EventRecord, error) {
	rows, err := s.db.Query(
		`SELECT seq, kind, unit_id, hp, energy, description
		 FROM battle_events
		 WHERE battle_id = ?
		 ORDER BY seq`,
		battleID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query events: %w", err)
	}
	defer rows.Close()

	var events []EventRecord
	for rows.Next() {
		var e EventRecord
		var unitID sql.NullString
		if err := rows.Scan(&e.Seq, &e.Kind, &unitID, &e.HP, &e.Energy, &e.Description); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		if unitID.Valid {
			e.UnitID = unitID.String
		}
		events = append(events, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return events, nil
}

// GetScenarioStats retrieves aggregated results for a scenario.
func (s *Store) GetScenarioStats(scenarioID string) (*ScenarioStats, error) {
	stats := &ScenarioStats{ScenarioID: scenarioID}
	var lastPlayed any

	err := s.db.QueryRow(
		`SELECT COUNT(*),
		        COALESCE(SUM(CASE WHEN outcome = 'victory' THEN 1 ELSE 0 END), 0),
		        COALESCE(SUM(CASE WHEN outcome = 'defeat' THEN 1 ELSE 0 END), 0),
		        COALESCE(AVG(turns), 0),
		        MAX(created_at)
		 FROM battles WHERE scenario_id = ?`,
		scenarioID,
	).Scan(&stats.Battles, &stats.Victories, &stats.Defeats, &stats.AvgTurns, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get scenario stats: %w", err)
	}
	stats.LastPlayed = parseTime(lastPlayed)

	return stats, nil
}

// ClearBattles deletes every archived battle of a scenario.
func (s *Store) ClearBattles(scenarioID string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(
		`DELETE FROM battle_events WHERE battle_id IN (SELECT battle_id FROM battles WHERE scenario_id = ?)`,
		scenarioID,
	); err != nil {
		return fmt.Errorf("storage: cannot clear events: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM battles WHERE scenario_id = ?", scenarioID); err != nil {
		return fmt.Errorf("storage: cannot clear battles: %w", err)
	}
	return tx.Commit()
}
