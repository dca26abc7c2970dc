// Package insights runs the analysis pipeline for completed sessions.
//
// Analyze drives the full flow for one session: claim the session with an
// atomic completed-to-analyzing transition, build and render the merged
// timeline, send it to the reasoning service, validate the structured
// result, and fan the findings out into persisted insight rows before
// marking the session analyzed.
//
// # Failure Semantics
//
// Any failure after the session enters analyzing parks it in the error
// status so operators can see stuck sessions. A malformed model response
// never produces partial insight rows; the raw payload is retained on the
// returned error for diagnosis.
package insights
