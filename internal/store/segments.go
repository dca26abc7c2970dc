package store

import (
	"context"
	"database/sql"
	"strings"

	"saleslens/internal/services"
	"saleslens/internal/session"
)

const segmentColumns = "id, session_id, timestamp_start_ms, timestamp_end_ms, speaker, text, confidence, raw_json"

// AppendSegment inserts one transcript segment. Segments are immutable once
// written; the assigned row id is set on the argument.
func (s *Store) AppendSegment(ctx context.Context, seg *session.TranscriptSegment) error {
	if seg == nil {
		return services.Wrap(services.ErrInvalidInput, "store", "append segment", "segment is nil", nil)
	}
	if strings.TrimSpace(seg.SessionID) == "" {
		return services.Wrap(services.ErrInvalidInput, "store", "append segment", "session reference required", nil)
	}
	if seg.StartMS < 0 || seg.EndMS <= 0 {
		return services.Wrap(services.ErrInvalidInput, "store", "append segment", "timestamps required", nil)
	}

	exists, err := s.sessionExists(ctx, seg.SessionID)
	if err != nil {
		return err
	}
	if !exists {
		return services.Wrap(services.ErrUnknownSession, "store", "append segment", seg.SessionID, nil)
	}

	if seg.Speaker == "" {
		seg.Speaker = session.SpeakerUnknown
	}
	res, err := s.db.ExecContext(
		ctx,
		`INSERT INTO transcript_segments
            (session_id, timestamp_start_ms, timestamp_end_ms, speaker, text, confidence, raw_json)
         VALUES (?, ?, ?, ?, ?, ?, ?)`,
		seg.SessionID,
		seg.StartMS,
		seg.EndMS,
		seg.Speaker,
		seg.Text,
		nullableFloat(seg.Confidence),
		nullableString(seg.RawJSON),
	)
	if err != nil {
		return services.Wrap(services.ErrStorageIO, "store", "append segment", "", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return services.Wrap(services.ErrStorageIO, "store", "append segment", "last insert id", err)
	}
	seg.ID = id
	return nil
}

// SegmentsForSession returns all transcript segments for a session ascending
// by their start timestamp.
func (s *Store) SegmentsForSession(ctx context.Context, sessionID string) ([]*session.TranscriptSegment, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT `+segmentColumns+` FROM transcript_segments
         WHERE session_id = ? ORDER BY timestamp_start_ms`,
		sessionID,
	)
	if err != nil {
		return nil, services.Wrap(services.ErrStorageIO, "store", "segments for session", "", err)
	}
	defer rows.Close()

	var segments []*session.TranscriptSegment
	for rows.Next() {
		seg, err := scanSegment(rows)
		if err != nil {
			return nil, services.Wrap(services.ErrStorageIO, "store", "scan segment", "", err)
		}
		segments = append(segments, seg)
	}
	if err := rows.Err(); err != nil {
		return nil, services.Wrap(services.ErrStorageIO, "store", "segments for session", "", err)
	}
	return segments, nil
}

func scanSegment(scanner interface{ Scan(dest ...any) error }) (*session.TranscriptSegment, error) {
	var (
		id         int64
		sessionID  string
		startMS    int64
		endMS      int64
		speakerStr string
		text       string
		confidence sql.NullFloat64
		rawJSON    sql.NullString
	)
	if err := scanner.Scan(&id, &sessionID, &startMS, &endMS, &speakerStr, &text, &confidence, &rawJSON); err != nil {
		return nil, err
	}
	return &session.TranscriptSegment{
		ID:         id,
		SessionID:  sessionID,
		StartMS:    startMS,
		EndMS:      endMS,
		Speaker:    session.ParseSpeaker(speakerStr),
		Text:       text,
		Confidence: floatPtr(confidence),
		RawJSON:    rawJSON.String,
	}, nil
}
