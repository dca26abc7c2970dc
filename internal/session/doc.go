// Package session defines the domain model shared by every SalesLens
// component: recording sessions and their lifecycle, transcript segments,
// physiology events, and persisted insights.
//
// All timestamps are UTC milliseconds. The capture producers normalize their
// own clocks before writing, so everything downstream (the store, the
// timeline builder, the insight pipeline) treats the millisecond axis as
// already aligned.
//
// Treat this package as the single source of truth for lifecycle semantics;
// when you add a status or channel, update the store schema alongside it.
package session
