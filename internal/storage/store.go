package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrNotFound is returned when no row matches the requested id.
var ErrNotFound = errors.New("event not found")

// Store defines the interface for inkwell event persistence.
type Store interface {
	CreateEvent(ctx context.Context, event *Event) (int64, error)
	GetEvent(ctx context.Context, id int64) (*Event, error)
	ListEvents(ctx context.Context) ([]Event, error)
	UpdateEvent(ctx context.Context, id int64, event *Event) error
	DeleteEvent(ctx context.Context, id int64) error
	Stats(ctx context.Context) (*Stats, error)
	Close() error
}

// SQLiteStore implements Store backed by a SQLite database.
type SQLiteStore struct {
	db *sql.DB

	// Prepared statements
	insertEvent *sql.Stmt
	getEvent    *sql.Stmt
	updateEvent *sql.Stmt
	deleteEvent *sql.Stmt
}

// NewSQLiteStore creates a new SQLiteStore from an already-opened and
// migrated database.
func NewSQLiteStore(db *sql.DB) (*SQLiteStore, error) {
	s := &SQLiteStore{db: db}

	if err := s.prepareStatements(); err != nil {
		return nil, fmt.Errorf("prepare statements: %w", err)
	}

	return s, nil
}

func (s *SQLiteStore) prepareStatements() error {
	var err error

	s.insertEvent, err = s.db.Prepare(`
		INSERT INTO events (date, type, route_to, body, tags, summary, title)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}

	s.getEvent, err = s.db.Prepare(`
		SELECT id, date, type, route_to, body, tags, summary, title
		FROM events WHERE id = ?
	`)
	if err != nil {
		return err
	}

	s.updateEvent, err = s.db.Prepare(`
		UPDATE events
		SET date = ?, type = ?, route_to = ?, body = ?, tags = ?, summary = ?, title = ?
		WHERE id = ?
	`)
	if err != nil {
		return err
	}

	s.deleteEvent, err = s.db.Prepare(`DELETE FROM events WHERE id = ?`)
	if err != nil {
		return err
	}

	return nil
}

// encodeTags serializes the tag list as a JSON array, or NULL when absent.
func encodeTags(tags []string) (sql.NullString, error) {
	if tags == nil {
		return sql.NullString{}, nil
	}
	data, err := json.Marshal(tags)
	if err != nil {
		return sql.NullString{}, fmt.Errorf("encode tags: %w", err)
	}
	return sql.NullString{String: string(data), Valid: true}, nil
}

// decodeTags deserializes the tags column back into a slice; a NULL column
// yields nil.
func decodeTags(col sql.NullString) ([]string, error) {
	if !col.Valid {
		return nil, nil
	}
	var tags []string
	if err := json.Unmarshal([]byte(col.String), &tags); err != nil {
		return nil, fmt.Errorf("decode tags: %w", err)
	}
	return tags, nil
}

// CreateEvent inserts a new event and returns the assigned row id.
func (s *SQLiteStore) CreateEvent(ctx context.Context, event *Event) (int64, error) {
	tags, err := encodeTags(event.Tags)
	if err != nil {
		return 0, err
	}

	res, err := s.insertEvent.ExecContext(ctx,
		event.Date, event.Type, nullable(event.RouteTo), event.Body,
		tags, nullable(event.Summary), nullable(event.Title),
	)
	if err != nil {
		return 0, fmt.Errorf("insert event: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id: %w", err)
	}
	event.ID = id

	return id, nil
}

// GetEvent retrieves a single event by id.
func (s *SQLiteStore) GetEvent(ctx context.Context, id int64) (*Event, error) {
	row := s.getEvent.QueryRowContext(ctx, id)
	event, err := scanEvent(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return event, nil
}

// ListEvents returns every event ordered by date descending. The ordering
// is a string comparison on the date column, matching the index.
func (s *SQLiteStore) ListEvents(ctx context.Context) ([]Event, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, date, type, route_to, body, tags, summary, title
		FROM events ORDER BY date DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		event, err := scanEvent(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		events = append(events, *event)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Return empty slice rather than nil
	if events == nil {
		events = []Event{}
	}

	return events, nil
}

// scanEvent scans one row into an Event, handling NULL columns.
func scanEvent(scan func(dest ...any) error) (*Event, error) {
	var e Event
	var routeTo, tags, summary, title sql.NullString

	if err := scan(&e.ID, &e.Date, &e.Type, &routeTo, &e.Body, &tags, &summary, &title); err != nil {
		return nil, err
	}

	e.RouteTo = routeTo.String
	e.Summary = summary.String
	e.Title = title.String

	decoded, err := decodeTags(tags)
	if err != nil {
		return nil, err
	}
	e.Tags = decoded

	return &e, nil
}

// UpdateEvent overwrites every mutable column of the matching row.
// Returns ErrNotFound when no row changed.
func (s *SQLiteStore) UpdateEvent(ctx context.Context, id int64, event *Event) error {
	tags, err := encodeTags(event.Tags)
	if err != nil {
		return err
	}

	res, err := s.updateEvent.ExecContext(ctx,
		event.Date, event.Type, nullable(event.RouteTo), event.Body,
		tags, nullable(event.Summary), nullable(event.Title), id,
	)
	if err != nil {
		return fmt.Errorf("update event: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}

	return nil
}

// DeleteEvent removes an event by id. Returns ErrNotFound when no row
// was deleted.
func (s *SQLiteStore) DeleteEvent(ctx context.Context, id int64) error {
	res, err := s.deleteEvent.ExecContext(ctx, id)
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}

	return nil
}

// Stats returns aggregate statistics about the events table.
func (s *SQLiteStore) Stats(ctx context.Context) (*Stats, error) {
	stats := &Stats{}

	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM events").Scan(&stats.TotalEvents)
	if err != nil {
		return nil, fmt.Errorf("count events: %w", err)
	}

	// Oldest and newest (handle empty table)
	if stats.TotalEvents > 0 {
		err = s.db.QueryRowContext(ctx, "SELECT MIN(date), MAX(date) FROM events").
			Scan(&stats.OldestDate, &stats.NewestDate)
		if err != nil {
			return nil, fmt.Errorf("event date range: %w", err)
		}
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT type, COUNT(*) as cnt FROM events GROUP BY type ORDER BY cnt DESC LIMIT 10",
	)
	if err != nil {
		return nil, fmt.Errorf("top types: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var tc TypeCount
		if err := rows.Scan(&tc.Type, &tc.Count); err != nil {
			return nil, err
		}
		stats.TopTypes = append(stats.TopTypes, tc)
	}

	return stats, rows.Err()
}

// nullable maps an empty string to a NULL column value.
func nullable(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// Close releases all prepared statements. The underlying *sql.DB is NOT
// closed — that is the caller's responsibility.
func (s *SQLiteStore) Close() error {
	stmts := []*sql.Stmt{
		s.insertEvent, s.getEvent, s.updateEvent, s.deleteEvent,
	}
	for _, stmt := range stmts {
		if stmt != nil {
			stmt.Close()
		}
	}
	return nil
}
