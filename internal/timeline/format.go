package timeline

import (
	"fmt"
	"strings"
)

// Format serializes a timeline into the deterministic, order-preserving text
// the reasoning service consumes. Timestamps are rendered relative to the
// session start so the model reads elapsed call time rather than epoch
// milliseconds; absolute timestamps are included so key moments can be
// referenced back into the timeline.
func Format(entries []Entry, sessionStartMS int64) string {
	var b strings.Builder
	for i, entry := range entries {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "[%s - %s] (t=%dms) %s: %s",
			clock(entry.StartMS-sessionStartMS),
			clock(entry.EndMS-sessionStartMS),
			entry.StartMS,
			strings.ToUpper(string(entry.Speaker)),
			entry.Text,
		)
		if fields := formatSnapshot(entry.Physiology); fields != "" {
			fmt.Fprintf(&b, "\n    physiology: %s", fields)
		} else {
			b.WriteString("\n    physiology: no readings in window")
		}
	}
	return b.String()
}

func formatSnapshot(snapshot Snapshot) string {
	fields := make([]string, 0, 7)
	add := func(name string, value *float64, format string) {
		if value != nil {
			fields = append(fields, fmt.Sprintf("%s="+format, name, *value))
		}
	}
	add("heart_rate", snapshot.HeartRate, "%.1f")
	add("hrv", snapshot.HRV, "%.1f")
	add("breathing_rate", snapshot.BreathingRate, "%.1f")
	add("phasic", snapshot.Phasic, "%.3f")
	add("emotion_score", snapshot.EmotionScore, "%.2f")
	add("engagement", snapshot.Engagement, "%.2f")
	add("blink_rate", snapshot.BlinkRate, "%.1f")
	return strings.Join(fields, ", ")
}

func clock(elapsedMS int64) string {
	if elapsedMS < 0 {
		elapsedMS = 0
	}
	totalSeconds := elapsedMS / 1000
	return fmt.Sprintf("%02d:%02d", totalSeconds/60, totalSeconds%60)
}
