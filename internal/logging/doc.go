// Package logging constructs the process-wide slog logger and provides
// attribute helpers so components emit consistent structured fields.
//
// Loggers are built once from configuration at process start and passed into
// component constructors. Components attach themselves with
// NewComponentLogger so every record carries a component field.
package logging
