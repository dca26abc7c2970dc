package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/mattn/go-isatty"

	"saleslens/internal/session"
)

const (
	ansiReset  = "\x1b[0m"
	ansiRed    = "\x1b[31m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
)

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func renderSeverity(severity session.Severity, colorize bool) string {
	if !colorize {
		return string(severity)
	}
	switch severity {
	case session.SeverityPositive:
		return ansiGreen + string(severity) + ansiReset
	case session.SeverityConcern, session.SeverityCritical:
		return ansiRed + string(severity) + ansiReset
	case session.SeverityNeutral:
		return ansiYellow + string(severity) + ansiReset
	default:
		return string(severity)
	}
}

func formatEpochMS(ms int64) string {
	return time.UnixMilli(ms).UTC().Format("2006-01-02 15:04:05")
}

func formatOptionalEpochMS(ms *int64) string {
	if ms == nil {
		return "-"
	}
	return formatEpochMS(*ms)
}

func formatDurationMS(start int64, end *int64) string {
	if end == nil {
		return "-"
	}
	d := time.Duration(*end-start) * time.Millisecond
	if d < 0 {
		return "-"
	}
	return fmt.Sprintf("%02d:%02d", int(d.Minutes()), int(d.Seconds())%60)
}
