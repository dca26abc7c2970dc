// Package timeline merges a session's transcript segments and physiology
// events into one ordered view.
//
// Transcript segments are the unit of analysis: coaching insights attach to
// what was said, so physiology is folded into each utterance's window rather
// than the reverse. The join is by containment (events whose timestamp lies
// in the segment's window), not nearest-neighbor. Both streams
// already share a UTC-millisecond axis; producers convert their own clocks
// before writing, and the builder performs no clock arithmetic.
//
// Entries are a view, never persisted. Every build recomputes from current
// rows so re-analysis picks up late-arriving data.
package timeline
