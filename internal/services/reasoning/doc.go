// Package reasoning provides the chat-completion client used to turn a
// formatted session timeline into structured coaching analysis.
//
// The client speaks the OpenRouter-compatible chat completions API and
// always requests JSON output. Callers send a system prompt plus the
// rendered timeline and receive the raw JSON payload; decoding and schema
// validation happen in the insights package.
//
// # Retry Behaviour
//
// Requests retry on HTTP 408/429/5xx and network timeouts with exponential
// backoff (base 1s, max 10s, up to 5 attempts by default), honoring
// Retry-After when the provider sends one. Context cancellation aborts
// retries immediately.
package reasoning
