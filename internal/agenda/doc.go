// Package agenda turns raw calendar events into the plain-text daily
// digest.
//
// Formatting is pure and total: no I/O, no hidden state, and a single
// malformed record is skipped rather than failing the whole digest.
// Times are rendered in the fixed offset carried by the day value, never
// in the runtime locale.
package agenda
