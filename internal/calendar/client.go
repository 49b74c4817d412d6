package calendar

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/oauth2"
	calendar "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"github.com/teemow/daybrief/internal/agenda"
	"github.com/teemow/daybrief/internal/google"
)

// maxDayResults bounds a single day query. Fifty is generous for a
// daily digest and matches the upstream API default page size.
const maxDayResults = 50

// Client wraps the Google Calendar service for read-only day queries.
type Client struct {
	svc     *calendar.Service
	account string
}

// Account returns the account name this client is associated with.
func (c *Client) Account() string {
	return c.account
}

// HasTokenForAccount checks if a valid OAuth token exists for the
// specified account.
func HasTokenForAccount(account string) bool {
	return google.HasTokenForAccount(account)
}

// NewClientForAccountWithProvider creates a new Calendar client with
// OAuth2 authentication for a specific account. The OAuth token is
// retrieved from the provided token provider.
func NewClientForAccountWithProvider(ctx context.Context, account string, tokenProvider google.TokenProvider) (*Client, error) {
	if tokenProvider == nil {
		return nil, fmt.Errorf("token provider cannot be nil")
	}

	token, err := tokenProvider.GetTokenForAccount(ctx, account)
	if err != nil {
		return nil, fmt.Errorf("failed to get Google OAuth token for account %s: %w", account, err)
	}

	conf := google.GetOAuthConfig()
	tokenSource := conf.TokenSource(ctx, token)
	client := oauth2.NewClient(ctx, tokenSource)

	// Force HTTP/1.1 by disabling HTTP/2
	transport := client.Transport.(*oauth2.Transport)
	transport.Base = &http.Transport{
		ForceAttemptHTTP2: false,
	}

	svc, err := calendar.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("failed to create Calendar service: %w", err)
	}

	return &Client{
		svc:     svc,
		account: account,
	}, nil
}

// NewClientForAccount creates a new Calendar client with OAuth2
// authentication for a specific account, using the file-based token
// cache.
func NewClientForAccount(ctx context.Context, account string) (*Client, error) {
	return NewClientForAccountWithProvider(ctx, account, google.NewFileTokenProvider())
}

// NewClient creates a new Calendar client for the default account.
func NewClient(ctx context.Context) (*Client, error) {
	return NewClientForAccount(ctx, "default")
}

// EventsForWindow lists the events of one calendar within the window,
// ordered by start time. Recurring events are expanded into single
// instances. Failures are classified for the retry policy.
func (c *Client) EventsForWindow(ctx context.Context, calendarID string, win agenda.Window) ([]agenda.Event, error) {
	call := c.svc.Events.List(calendarID).
		TimeMin(win.Start.Format(time.RFC3339)).
		TimeMax(win.End.Format(time.RFC3339)).
		MaxResults(maxDayResults).
		SingleEvents(true).
		OrderBy("startTime").
		Context(ctx)

	result, err := call.Do()
	if err != nil {
		return nil, classify("calendar.list", err)
	}

	events := make([]agenda.Event, 0, len(result.Items))
	for _, item := range result.Items {
		events = append(events, toEvent(item, win.Start.Location()))
	}

	return events, nil
}

// Source adapts one calendar ID to the pipeline's source contract.
func (c *Client) Source(calendarID string) *Source {
	return &Source{client: c, calendarID: calendarID}
}

// Source is a single Google calendar queried by the extractor.
type Source struct {
	client     *Client
	calendarID string
}

// ID returns the calendar identifier.
func (s *Source) ID() string {
	return s.calendarID
}

// Events fetches the source's events for the window.
func (s *Source) Events(ctx context.Context, win agenda.Window) ([]agenda.Event, error) {
	return s.client.EventsForWindow(ctx, s.calendarID, win)
}
