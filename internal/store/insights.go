package store

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"saleslens/internal/services"
	"saleslens/internal/session"
)

// AppendInsight inserts one analysis finding. Insights are append-only;
// re-running analysis adds a new batch rather than replacing the old one.
func (s *Store) AppendInsight(ctx context.Context, ins *session.Insight) error {
	if ins == nil {
		return services.Wrap(services.ErrInvalidInput, "store", "append insight", "insight is nil", nil)
	}
	if strings.TrimSpace(ins.SessionID) == "" {
		return services.Wrap(services.ErrInvalidInput, "store", "append insight", "session reference required", nil)
	}

	exists, err := s.sessionExists(ctx, ins.SessionID)
	if err != nil {
		return err
	}
	if !exists {
		return services.Wrap(services.ErrUnknownSession, "store", "append insight", ins.SessionID, nil)
	}

	if ins.Severity == "" {
		ins.Severity = session.SeverityNeutral
	}
	res, err := s.db.ExecContext(
		ctx,
		`INSERT INTO insights
            (session_id, insight_type, title, body, severity, timestamp_ref_ms, created_at)
         VALUES (?, ?, ?, ?, ?, ?, ?)`,
		ins.SessionID,
		ins.Type,
		nullableString(ins.Title),
		ins.Body,
		ins.Severity,
		nullableInt64(ins.TimestampRefMS),
		time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return services.Wrap(services.ErrStorageIO, "store", "append insight", "", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return services.Wrap(services.ErrStorageIO, "store", "append insight", "last insert id", err)
	}
	ins.ID = id
	return nil
}

// InsightsForSession returns a session's insights in write order.
func (s *Store) InsightsForSession(ctx context.Context, sessionID string) ([]*session.Insight, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT id, session_id, insight_type, title, body, severity, timestamp_ref_ms
         FROM insights WHERE session_id = ? ORDER BY id`,
		sessionID,
	)
	if err != nil {
		return nil, services.Wrap(services.ErrStorageIO, "store", "insights for session", "", err)
	}
	defer rows.Close()

	var insights []*session.Insight
	for rows.Next() {
		var (
			id             int64
			sessID         string
			insightType    string
			title          sql.NullString
			body           string
			severity       string
			timestampRefMS sql.NullInt64
		)
		if err := rows.Scan(&id, &sessID, &insightType, &title, &body, &severity, &timestampRefMS); err != nil {
			return nil, services.Wrap(services.ErrStorageIO, "store", "scan insight", "", err)
		}
		insights = append(insights, &session.Insight{
			ID:             id,
			SessionID:      sessID,
			Type:           session.InsightType(insightType),
			Title:          title.String,
			Body:           body,
			Severity:       session.Severity(severity),
			TimestampRefMS: int64Ptr(timestampRefMS),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, services.Wrap(services.ErrStorageIO, "store", "insights for session", "", err)
	}
	return insights, nil
}
