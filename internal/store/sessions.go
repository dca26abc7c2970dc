package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"saleslens/internal/services"
	"saleslens/internal/session"
)

// NewSessionID generates an opaque short session token.
func NewSessionID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}

// CreateSession inserts a new recording session and returns it.
func (s *Store) CreateSession(ctx context.Context, customerName, notes string) (*session.Session, error) {
	sess := &session.Session{
		ID:           NewSessionID(),
		CustomerName: strings.TrimSpace(customerName),
		StartTimeMS:  time.Now().UTC().UnixMilli(),
		Status:       session.StatusRecording,
		Notes:        strings.TrimSpace(notes),
	}

	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO sessions (session_id, customer_name, start_time_ms, status, notes)
         VALUES (?, ?, ?, ?, ?)`,
		sess.ID,
		nullableString(sess.CustomerName),
		sess.StartTimeMS,
		sess.Status,
		nullableString(sess.Notes),
	)
	if err != nil {
		return nil, services.Wrap(services.ErrStorageIO, "store", "create session", "", err)
	}
	return sess, nil
}

// GetSession fetches one session by id.
func (s *Store) GetSession(ctx context.Context, sessionID string) (*session.Session, error) {
	row := s.db.QueryRowContext(
		ctx,
		`SELECT session_id, customer_name, start_time_ms, end_time_ms, status, notes
         FROM sessions WHERE session_id = ?`,
		sessionID,
	)
	sess, err := scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, services.Wrap(services.ErrUnknownSession, "store", "get session", sessionID, nil)
	}
	if err != nil {
		return nil, services.Wrap(services.ErrStorageIO, "store", "get session", "", err)
	}
	return sess, nil
}

// ListSessions returns all sessions ordered newest start first.
func (s *Store) ListSessions(ctx context.Context) ([]*session.Session, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT session_id, customer_name, start_time_ms, end_time_ms, status, notes
         FROM sessions ORDER BY start_time_ms DESC`,
	)
	if err != nil {
		return nil, services.Wrap(services.ErrStorageIO, "store", "list sessions", "", err)
	}
	defer rows.Close()

	var sessions []*session.Session
	for rows.Next() {
		sess, err := scanSession(rows)
		if err != nil {
			return nil, services.Wrap(services.ErrStorageIO, "store", "scan session", "", err)
		}
		sessions = append(sessions, sess)
	}
	if err := rows.Err(); err != nil {
		return nil, services.Wrap(services.ErrStorageIO, "store", "list sessions", "", err)
	}
	return sessions, nil
}

// StopSession marks a recording session completed and records its end time.
// It reports whether the guarded transition happened; calling it again on an
// already stopped session is a no-op returning false.
func (s *Store) StopSession(ctx context.Context, sessionID string, endTimeMS int64) (bool, error) {
	res, err := s.db.ExecContext(
		ctx,
		`UPDATE sessions SET end_time_ms = ?, status = ? WHERE session_id = ? AND status = ?`,
		endTimeMS,
		session.StatusCompleted,
		sessionID,
		session.StatusRecording,
	)
	if err != nil {
		return false, services.Wrap(services.ErrStorageIO, "store", "stop session", "", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, services.Wrap(services.ErrStorageIO, "store", "stop session", "rows affected", err)
	}
	if affected > 0 {
		return true, nil
	}

	exists, err := s.sessionExists(ctx, sessionID)
	if err != nil {
		return false, err
	}
	if !exists {
		return false, services.Wrap(services.ErrUnknownSession, "store", "stop session", sessionID, nil)
	}
	return false, nil
}

// SetStatus updates a session's lifecycle status unconditionally. Setting the
// same status twice is observably a no-op.
func (s *Store) SetStatus(ctx context.Context, sessionID string, status session.Status) error {
	res, err := s.db.ExecContext(
		ctx,
		`UPDATE sessions SET status = ? WHERE session_id = ?`,
		status,
		sessionID,
	)
	if err != nil {
		return services.Wrap(services.ErrStorageIO, "store", "set status", "", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return services.Wrap(services.ErrStorageIO, "store", "set status", "rows affected", err)
	}
	if affected == 0 {
		return services.Wrap(services.ErrUnknownSession, "store", "set status", sessionID, nil)
	}
	return nil
}

// TransitionStatus atomically moves a session from one status to another.
// It reports whether the row moved; false means the session was not in the
// expected source status. The guard is a single UPDATE so two concurrent
// callers cannot both win.
func (s *Store) TransitionStatus(ctx context.Context, sessionID string, from, to session.Status) (bool, error) {
	res, err := s.db.ExecContext(
		ctx,
		`UPDATE sessions SET status = ? WHERE session_id = ? AND status = ?`,
		to,
		sessionID,
		from,
	)
	if err != nil {
		return false, services.Wrap(services.ErrStorageIO, "store", "transition status", "", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, services.Wrap(services.ErrStorageIO, "store", "transition status", "rows affected", err)
	}
	return affected > 0, nil
}

func scanSession(scanner interface{ Scan(dest ...any) error }) (*session.Session, error) {
	var (
		id           string
		customerName sql.NullString
		startTimeMS  int64
		endTimeMS    sql.NullInt64
		statusStr    string
		notes        sql.NullString
	)
	if err := scanner.Scan(&id, &customerName, &startTimeMS, &endTimeMS, &statusStr, &notes); err != nil {
		return nil, err
	}
	status, ok := session.ParseStatus(statusStr)
	if !ok {
		status = session.StatusError
	}
	return &session.Session{
		ID:           id,
		CustomerName: customerName.String,
		StartTimeMS:  startTimeMS,
		EndTimeMS:    int64Ptr(endTimeMS),
		Status:       status,
		Notes:        notes.String,
	}, nil
}
