package session

import "strings"

// Status represents the lifecycle of a recording session.
type Status string

const (
	StatusRecording Status = "recording"
	StatusCompleted Status = "completed"
	StatusAnalyzing Status = "analyzing"
	StatusAnalyzed  Status = "analyzed"
	StatusError     Status = "error"
)

var allStatuses = []Status{
	StatusRecording,
	StatusCompleted,
	StatusAnalyzing,
	StatusAnalyzed,
	StatusError,
}

var statusSet = func() map[Status]struct{} {
	set := make(map[Status]struct{}, len(allStatuses))
	for _, status := range allStatuses {
		set[status] = struct{}{}
	}
	return set
}()

// AllStatuses returns the ordered list of known statuses.
func AllStatuses() []Status {
	cp := make([]Status, len(allStatuses))
	copy(cp, allStatuses)
	return cp
}

// ParseStatus converts a string into a known Status.
func ParseStatus(value string) (Status, bool) {
	normalized := Status(strings.ToLower(strings.TrimSpace(value)))
	if normalized == "" {
		return "", false
	}
	_, ok := statusSet[normalized]
	return normalized, ok
}

// IsTerminal reports whether a status admits no further transitions.
func (s Status) IsTerminal() bool {
	return s == StatusAnalyzed || s == StatusError
}

// Speaker labels who produced a transcript segment.
type Speaker string

const (
	SpeakerSeller   Speaker = "seller"
	SpeakerCustomer Speaker = "customer"
	SpeakerUnknown  Speaker = "unknown"
)

// ParseSpeaker normalizes a speaker label, defaulting to unknown.
func ParseSpeaker(value string) Speaker {
	switch Speaker(strings.ToLower(strings.TrimSpace(value))) {
	case SpeakerSeller:
		return SpeakerSeller
	case SpeakerCustomer:
		return SpeakerCustomer
	default:
		return SpeakerUnknown
	}
}

// InsightType categorizes a persisted analysis finding.
type InsightType string

const (
	InsightSummary   InsightType = "summary"
	InsightCoaching  InsightType = "coaching"
	InsightRisk      InsightType = "risk"
	InsightHighlight InsightType = "highlight"
)

// Severity grades how much attention an insight deserves.
type Severity string

const (
	SeverityPositive Severity = "positive"
	SeverityNeutral  Severity = "neutral"
	SeverityConcern  Severity = "concern"
	SeverityCritical Severity = "critical"
)

// Session is one physical recording session. Created when recording starts;
// EndTimeMS stays nil until the session is stopped. Rows are never deleted.
type Session struct {
	ID           string  `json:"session_id"`
	CustomerName string  `json:"customer_name,omitempty"`
	StartTimeMS  int64   `json:"start_time_ms"`
	EndTimeMS    *int64  `json:"end_time_ms,omitempty"`
	Status       Status  `json:"status"`
	Notes        string  `json:"notes,omitempty"`
}

// TranscriptSegment is one transcribed utterance. Immutable once written;
// ordering key is StartMS.
type TranscriptSegment struct {
	ID         int64    `json:"id,omitempty"`
	SessionID  string   `json:"session_id"`
	StartMS    int64    `json:"timestamp_start_ms"`
	EndMS      int64    `json:"timestamp_end_ms"`
	Speaker    Speaker  `json:"speaker"`
	Text       string   `json:"text"`
	Confidence *float64 `json:"confidence,omitempty"`
	RawJSON    string   `json:"raw_json,omitempty"`
}

// PhysiologyEvent is one physiological sample at a single instant, written
// roughly once per second. Channels are independently nullable; partial
// readings from sensor dropout are valid rows.
type PhysiologyEvent struct {
	ID            int64    `json:"id,omitempty"`
	SessionID     string   `json:"session_id"`
	TimestampMS   int64    `json:"timestamp_ms"`
	HeartRate     *float64 `json:"heart_rate,omitempty"`
	HRV           *float64 `json:"hrv,omitempty"`
	BreathingRate *float64 `json:"breathing_rate,omitempty"`
	Phasic        *float64 `json:"phasic,omitempty"`
	EmotionScore  *float64 `json:"emotion_score,omitempty"`
	Engagement    *float64 `json:"engagement,omitempty"`
	BlinkRate     *float64 `json:"blink_rate,omitempty"`
	IsTalking     *bool    `json:"is_talking,omitempty"`
	RawJSON       string   `json:"raw_json,omitempty"`
}

// Insight is one atomic coaching/analysis finding. Append-only; a session
// accumulates many insights across one or more analysis runs.
type Insight struct {
	ID             int64       `json:"id,omitempty"`
	SessionID      string      `json:"session_id"`
	Type           InsightType `json:"insight_type"`
	Title          string      `json:"title,omitempty"`
	Body           string      `json:"body"`
	Severity       Severity    `json:"severity"`
	TimestampRefMS *int64      `json:"timestamp_ref_ms,omitempty"`
}
