package exchange

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dehaleesankr/folio/internal/conversation"
	"github.com/dehaleesankr/folio/internal/db"
)

// ErrNotFound is returned by GetByID for unknown ids.
var ErrNotFound = errors.New("exchange not found")

// timeLayout sorts lexically in the same order as time.
const timeLayout = "2006-01-02 15:04:05.000"

// Store provides CRUD operations for logged exchanges.
type Store struct {
	db  *db.DB
	now func() time.Time
}

// NewStore creates a Store backed by the given database.
func NewStore(database *db.DB) *Store {
	return &Store{db: database, now: time.Now}
}

// Record inserts a new exchange. If rec.ID is empty a UUID is generated and
// a zero CreatedAt becomes the current time.
func (s *Store) Record(ctx context.Context, rec Record) (string, error) {
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = s.now()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO exchanges (id, session_id, mode, prompt, reply, duration_ms, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.ID,
		rec.SessionID,
		string(rec.Mode),
		rec.Prompt,
		rec.Reply,
		rec.DurationMS,
		rec.CreatedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return "", fmt.Errorf("inserting exchange: %w", err)
	}
	return rec.ID, nil
}

// RecordExchange lets the store act as a conversation.Recorder.
func (s *Store) RecordExchange(ctx context.Context, e conversation.Exchange) error {
	_, err := s.Record(ctx, FromExchange(e))
	return err
}

// GetByID retrieves a single exchange.
func (s *Store) GetByID(ctx context.Context, id string) (*Record, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, session_id, mode, prompt, reply, duration_ms, created_at
		FROM exchanges WHERE id = ?`, id)

	rec, err := scanInto(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("reading exchange %s: %w", id, err)
	}
	return rec, nil
}

// QueryFilter controls which exchanges are returned by Query.
type QueryFilter struct {
	SessionID string
	Mode      conversation.ModeKind
	Since     *time.Time
	Until     *time.Time
	Limit     int
	Offset    int
}

// Query returns exchanges matching the filter, newest first.
func (s *Store) Query(ctx context.Context, filter QueryFilter) ([]Record, error) {
	var (
		clauses []string
		args    []any
	)

	if filter.SessionID != "" {
		clauses = append(clauses, "session_id = ?")
		args = append(args, filter.SessionID)
	}
	if filter.Mode != "" {
		clauses = append(clauses, "mode = ?")
		args = append(args, string(filter.Mode))
	}
	if filter.Since != nil {
		clauses = append(clauses, "created_at >= ?")
		args = append(args, filter.Since.UTC().Format(timeLayout))
	}
	if filter.Until != nil {
		clauses = append(clauses, "created_at <= ?")
		args = append(args, filter.Until.UTC().Format(timeLayout))
	}

	query := "SELECT id, session_id, mode, prompt, reply, duration_ms, created_at FROM exchanges"
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY created_at DESC, rowid DESC"

	switch {
	case filter.Limit > 0:
		query += fmt.Sprintf(" LIMIT %d", filter.Limit)
	case filter.Offset > 0:
		query += " LIMIT -1"
	}
	if filter.Offset > 0 {
		query += fmt.Sprintf(" OFFSET %d", filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying exchanges: %w", err)
	}
	defer rows.Close()

	records := []Record{}
	for rows.Next() {
		rec, err := scanInto(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *rec)
	}
	return records, rows.Err()
}

// DeleteBefore removes all exchanges older than the given time.
// Returns the number of deleted rows.
func (s *Store) DeleteBefore(ctx context.Context, before time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM exchanges WHERE created_at < ?",
		before.UTC().Format(timeLayout),
	)
	if err != nil {
		return 0, fmt.Errorf("deleting old exchanges: %w", err)
	}
	return res.RowsAffected()
}

// scanner is implemented by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanInto(sc scanner) (*Record, error) {
	var (
		rec  Record
		mode string
		ts   string
	)
	if err := sc.Scan(&rec.ID, &rec.SessionID, &mode, &rec.Prompt, &rec.Reply, &rec.DurationMS, &ts); err != nil {
		return nil, err
	}
	rec.Mode = conversation.ModeKind(mode)

	if t, err := time.Parse(timeLayout, ts); err == nil {
		rec.CreatedAt = t
	} else if t, err := time.Parse(time.DateTime, ts); err == nil {
		rec.CreatedAt = t
	}
	return &rec, nil
}
