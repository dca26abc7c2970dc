package timeline

import (
	"context"
	"log/slog"

	"saleslens/internal/logging"
	"saleslens/internal/session"
	"saleslens/internal/store"
)

// Snapshot aggregates the physiology channels observed during one segment's
// window. A nil channel means no reading was observed, which is distinct
// from a measured zero.
type Snapshot struct {
	HeartRate     *float64 `json:"heart_rate,omitempty"`
	HRV           *float64 `json:"hrv,omitempty"`
	BreathingRate *float64 `json:"breathing_rate,omitempty"`
	Phasic        *float64 `json:"phasic,omitempty"`
	EmotionScore  *float64 `json:"emotion_score,omitempty"`
	Engagement    *float64 `json:"engagement,omitempty"`
	BlinkRate     *float64 `json:"blink_rate,omitempty"`
}

// IsEmpty reports whether no channel carried a reading.
func (s Snapshot) IsEmpty() bool {
	return s.HeartRate == nil && s.HRV == nil && s.BreathingRate == nil &&
		s.Phasic == nil && s.EmotionScore == nil && s.Engagement == nil &&
		s.BlinkRate == nil
}

// Entry is one transcript segment plus the physiology aggregated over its
// span. Produced fresh on every build; never stored.
type Entry struct {
	StartMS    int64           `json:"start_ms"`
	EndMS      int64           `json:"end_ms"`
	Speaker    session.Speaker `json:"speaker"`
	Text       string          `json:"text"`
	Physiology Snapshot        `json:"physiology"`
}

// Builder computes merged timelines from current store rows.
type Builder struct {
	store  *store.Store
	logger *slog.Logger
}

// NewBuilder constructs a timeline builder.
func NewBuilder(st *store.Store, logger *slog.Logger) *Builder {
	return &Builder{
		store:  st,
		logger: logging.NewComponentLogger(logger, "timeline"),
	}
}

// Build returns one entry per transcript segment, ascending by start
// timestamp. A session with no segments yields an empty timeline, which
// signals "no data" rather than an error. A missing session propagates
// the unknown-session error from the store.
func (b *Builder) Build(ctx context.Context, sessionID string) ([]Entry, error) {
	if _, err := b.store.GetSession(ctx, sessionID); err != nil {
		return nil, err
	}

	segments, err := b.store.SegmentsForSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(segments))
	for _, seg := range segments {
		entry := Entry{
			StartMS: seg.StartMS,
			EndMS:   seg.EndMS,
			Speaker: seg.Speaker,
			Text:    seg.Text,
		}

		// An inverted span is a producer bug; treat the window as empty
		// rather than failing the whole build.
		if seg.StartMS <= seg.EndMS {
			events, err := b.store.EventsInRange(ctx, sessionID, seg.StartMS, seg.EndMS)
			if err != nil {
				return nil, err
			}
			entry.Physiology = aggregate(events)
		} else {
			b.logger.Warn("segment has inverted span, treating window as empty",
				logging.String(logging.FieldSessionID, sessionID),
				logging.Int64("start_ms", seg.StartMS),
				logging.Int64("end_ms", seg.EndMS),
			)
		}

		entries = append(entries, entry)
	}

	b.logger.Debug("timeline built",
		logging.String(logging.FieldSessionID, sessionID),
		logging.Int("entries", len(entries)),
	)
	return entries, nil
}

// aggregate folds the events observed in one window into a snapshot using
// the arithmetic mean of each channel's non-null readings. A channel with
// zero readings stays nil.
func aggregate(events []*session.PhysiologyEvent) Snapshot {
	var snapshot Snapshot
	channels := []struct {
		target **float64
		pick   func(*session.PhysiologyEvent) *float64
	}{
		{&snapshot.HeartRate, func(ev *session.PhysiologyEvent) *float64 { return ev.HeartRate }},
		{&snapshot.HRV, func(ev *session.PhysiologyEvent) *float64 { return ev.HRV }},
		{&snapshot.BreathingRate, func(ev *session.PhysiologyEvent) *float64 { return ev.BreathingRate }},
		{&snapshot.Phasic, func(ev *session.PhysiologyEvent) *float64 { return ev.Phasic }},
		{&snapshot.EmotionScore, func(ev *session.PhysiologyEvent) *float64 { return ev.EmotionScore }},
		{&snapshot.Engagement, func(ev *session.PhysiologyEvent) *float64 { return ev.Engagement }},
		{&snapshot.BlinkRate, func(ev *session.PhysiologyEvent) *float64 { return ev.BlinkRate }},
	}

	for _, channel := range channels {
		var sum float64
		var count int
		for _, ev := range events {
			if value := channel.pick(ev); value != nil {
				sum += *value
				count++
			}
		}
		if count > 0 {
			mean := sum / float64(count)
			*channel.target = &mean
		}
	}
	return snapshot
}
