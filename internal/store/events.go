package store

import (
	"context"
	"database/sql"
	"strings"

	"saleslens/internal/services"
	"saleslens/internal/session"
)

const eventColumns = "id, session_id, timestamp_ms, heart_rate, hrv, breathing_rate, phasic, emotion_score, engagement, blink_rate, is_talking, raw_json"

// AppendEvent inserts one physiology sample. Channels are independently
// nullable; a partial reading from sensor dropout is a valid row.
func (s *Store) AppendEvent(ctx context.Context, ev *session.PhysiologyEvent) error {
	if ev == nil {
		return services.Wrap(services.ErrInvalidInput, "store", "append event", "event is nil", nil)
	}
	if strings.TrimSpace(ev.SessionID) == "" {
		return services.Wrap(services.ErrInvalidInput, "store", "append event", "session reference required", nil)
	}
	if ev.TimestampMS <= 0 {
		return services.Wrap(services.ErrInvalidInput, "store", "append event", "timestamp required", nil)
	}

	exists, err := s.sessionExists(ctx, ev.SessionID)
	if err != nil {
		return err
	}
	if !exists {
		return services.Wrap(services.ErrUnknownSession, "store", "append event", ev.SessionID, nil)
	}

	res, err := s.db.ExecContext(
		ctx,
		`INSERT INTO physiology_events
            (session_id, timestamp_ms, heart_rate, hrv, breathing_rate, phasic,
             emotion_score, engagement, blink_rate, is_talking, raw_json)
         VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		ev.SessionID,
		ev.TimestampMS,
		nullableFloat(ev.HeartRate),
		nullableFloat(ev.HRV),
		nullableFloat(ev.BreathingRate),
		nullableFloat(ev.Phasic),
		nullableFloat(ev.EmotionScore),
		nullableFloat(ev.Engagement),
		nullableFloat(ev.BlinkRate),
		nullableBool(ev.IsTalking),
		nullableString(ev.RawJSON),
	)
	if err != nil {
		return services.Wrap(services.ErrStorageIO, "store", "append event", "", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return services.Wrap(services.ErrStorageIO, "store", "append event", "last insert id", err)
	}
	ev.ID = id
	return nil
}

// EventsForSession returns all physiology events for a session ascending by
// timestamp.
func (s *Store) EventsForSession(ctx context.Context, sessionID string) ([]*session.PhysiologyEvent, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT `+eventColumns+` FROM physiology_events
         WHERE session_id = ? ORDER BY timestamp_ms`,
		sessionID,
	)
	if err != nil {
		return nil, services.Wrap(services.ErrStorageIO, "store", "events for session", "", err)
	}
	defer rows.Close()
	return collectEvents(rows)
}

// EventsInRange returns physiology events whose timestamp falls in the closed
// interval [startMS, endMS], ascending. This is the window-join query the
// timeline builder runs per transcript segment.
func (s *Store) EventsInRange(ctx context.Context, sessionID string, startMS, endMS int64) ([]*session.PhysiologyEvent, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT `+eventColumns+` FROM physiology_events
         WHERE session_id = ? AND timestamp_ms BETWEEN ? AND ?
         ORDER BY timestamp_ms`,
		sessionID,
		startMS,
		endMS,
	)
	if err != nil {
		return nil, services.Wrap(services.ErrStorageIO, "store", "events in range", "", err)
	}
	defer rows.Close()
	return collectEvents(rows)
}

func collectEvents(rows *sql.Rows) ([]*session.PhysiologyEvent, error) {
	var events []*session.PhysiologyEvent
	for rows.Next() {
		ev, err := scanEvent(rows)
		if err != nil {
			return nil, services.Wrap(services.ErrStorageIO, "store", "scan event", "", err)
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, services.Wrap(services.ErrStorageIO, "store", "iterate events", "", err)
	}
	return events, nil
}

func scanEvent(scanner interface{ Scan(dest ...any) error }) (*session.PhysiologyEvent, error) {
	var (
		id            int64
		sessionID     string
		timestampMS   int64
		heartRate     sql.NullFloat64
		hrv           sql.NullFloat64
		breathingRate sql.NullFloat64
		phasic        sql.NullFloat64
		emotionScore  sql.NullFloat64
		engagement    sql.NullFloat64
		blinkRate     sql.NullFloat64
		isTalking     sql.NullInt64
		rawJSON       sql.NullString
	)
	if err := scanner.Scan(
		&id,
		&sessionID,
		&timestampMS,
		&heartRate,
		&hrv,
		&breathingRate,
		&phasic,
		&emotionScore,
		&engagement,
		&blinkRate,
		&isTalking,
		&rawJSON,
	); err != nil {
		return nil, err
	}
	return &session.PhysiologyEvent{
		ID:            id,
		SessionID:     sessionID,
		TimestampMS:   timestampMS,
		HeartRate:     floatPtr(heartRate),
		HRV:           floatPtr(hrv),
		BreathingRate: floatPtr(breathingRate),
		Phasic:        floatPtr(phasic),
		EmotionScore:  floatPtr(emotionScore),
		Engagement:    floatPtr(engagement),
		BlinkRate:     floatPtr(blinkRate),
		IsTalking:     boolPtr(isTalking),
		RawJSON:       rawJSON.String,
	}, nil
}
