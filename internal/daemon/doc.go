// Package daemon runs the saleslens background process: it enforces
// single-instance execution with a file lock and hosts the HTTP façade.
package daemon
