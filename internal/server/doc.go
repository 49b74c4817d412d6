// Package server provides the Prometheus metrics endpoint for daemon
// mode.
//
// The metrics server runs on its own port so operational metrics are
// never exposed on any user-facing surface.
package server
