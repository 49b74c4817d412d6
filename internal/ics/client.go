package ics

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/teemow/daybrief/internal/agenda"
	"github.com/teemow/daybrief/internal/fault"
)

const (
	fetchTimeout = 15 * time.Second

	// maxFeedBytes bounds a single feed download. Calendar feeds are
	// small; anything past this is a misconfigured URL.
	maxFeedBytes = 10 << 20
)

// Client fetches and parses ICS subscription feeds.
type Client struct {
	httpClient *http.Client
}

// NewClient creates a new ICS client.
func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{Timeout: fetchTimeout},
	}
}

// Source adapts one feed URL to the pipeline's source contract.
func (c *Client) Source(url string) *Source {
	return &Source{client: c, url: url}
}

// Source is a single ICS subscription queried by the extractor.
type Source struct {
	client *Client
	url    string
}

// ID returns the feed URL.
func (s *Source) ID() string {
	return s.url
}

// Events fetches the feed and returns its events inside the window.
func (s *Source) Events(ctx context.Context, win agenda.Window) ([]agenda.Event, error) {
	body, err := s.client.fetch(ctx, s.url)
	if err != nil {
		return nil, err
	}

	cal, err := ical.ParseCalendar(bytes.NewReader(body))
	if err != nil {
		return nil, fault.New(fault.Unknown, "ics.parse",
			fmt.Errorf("feed is not a valid ICS calendar: %w", err))
	}

	var events []agenda.Event
	for _, ve := range cal.Events() {
		e, ok := parseVEvent(ve, win.Start.Location())
		if !ok {
			// A VEVENT without a usable DTSTART cannot be assigned to
			// any day; skip it and keep the rest of the feed.
			continue
		}
		if overlaps(e, win) {
			events = append(events, e)
		}
	}

	return events, nil
}

func (c *Client) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fault.New(fault.Unknown, "ics.fetch", fmt.Errorf("invalid feed URL: %w", err))
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fault.New(fault.Network, "ics.fetch", errors.New("failed to reach ICS feed"))
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, fault.New(fault.Authentication, "ics.fetch",
			fmt.Errorf("ICS feed rejected the request (HTTP %d)", resp.StatusCode))
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, fault.New(fault.Quota, "ics.fetch",
			errors.New("ICS feed rate limit exceeded"))
	case resp.StatusCode >= 500:
		return nil, fault.New(fault.Network, "ics.fetch",
			fmt.Errorf("ICS feed server error (HTTP %d)", resp.StatusCode))
	case resp.StatusCode != http.StatusOK:
		return nil, fault.New(fault.Unknown, "ics.fetch",
			fmt.Errorf("ICS feed returned HTTP %d", resp.StatusCode))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxFeedBytes))
	if err != nil {
		return nil, fault.New(fault.Network, "ics.fetch", errors.New("reading ICS feed body failed"))
	}
	return body, nil
}

// overlaps reports whether the event touches the window. Open-ended
// events count if they start inside it.
func overlaps(e agenda.Event, win agenda.Window) bool {
	if !e.Start.Before(win.End) {
		return false
	}
	if e.End.IsZero() {
		return win.Contains(e.Start)
	}
	return e.End.After(win.Start)
}
