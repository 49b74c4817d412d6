// Package telegram provides the delivery client for the daily agenda.
//
// Delivery is fire-and-report: one SendMessage call per run, no internal
// retry, and no partial sends. Failures are classified for the
// orchestrator's retry policy, with oversized payloads reported as a
// distinct non-retryable fault rather than truncated.
package telegram
