// Package ics provides the ICS subscription feed source for the
// extraction stage.
//
// Feeds are fetched over plain HTTP(S) and parsed with
// github.com/arran4/golang-ical. Only events that touch the queried day
// window are returned; VEVENTs without a usable DTSTART are skipped so
// one broken entry never fails the whole feed.
package ics
