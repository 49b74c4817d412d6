// Package calendar provides a read-only client for the Google Calendar
// API used by the extraction stage.
//
// A Client is created once per run from a cached OAuth token and adapts
// each configured calendar ID into a pipeline source. Day queries expand
// recurring events into single instances and preserve the all-day vs
// timed distinction exactly as the API reports it (Date vs DateTime
// start markers).
//
// Example usage:
//
//	ctx := context.Background()
//	client, err := calendar.NewClient(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	win := agenda.Today(loc)
//	events, err := client.EventsForWindow(ctx, "primary", win)
package calendar
