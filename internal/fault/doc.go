// Package fault defines the error classification shared by all pipeline
// stages.
//
// Each stage wraps its failures in a Fault that carries a Kind and a
// Retryable flag. The orchestrator's retry policy branches only on that
// flag: authentication and oversized-payload failures fail the run
// immediately, while quota, rate-limit and network failures are retried
// up to a fixed bound.
package fault
