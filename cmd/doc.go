// Package cmd implements the command-line interface for daybrief.
//
// This package provides the following commands:
//   - send: Fetch today's events and deliver the agenda to Telegram
//   - serve: Run as a daemon with an internal daily schedule
//   - auth: Authorize access to Google Calendar
//   - version: Display version information
//
// The send command is the default command when no subcommand is specified.
package cmd
