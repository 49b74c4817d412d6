// Package logging provides slog attribute helpers shared across the
// application, plus the default handler setup.
//
// The helpers keep attribute names consistent between the pipeline,
// the calendar clients and the delivery client, and make sure secrets
// (bot tokens, credential material) never reach the log output.
package logging
