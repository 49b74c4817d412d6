package calendar

import (
	"context"
	"errors"
	"fmt"
	"net"

	"golang.org/x/oauth2"
	"google.golang.org/api/googleapi"

	"github.com/teemow/daybrief/internal/fault"
)

// classify maps a Google Calendar API failure onto the shared fault
// taxonomy. Authentication failures carry a fixed description instead
// of the upstream error text, which can include token material and
// signed API URLs.
func classify(op string, err error) error {
	var retrieveErr *oauth2.RetrieveError
	if errors.As(err, &retrieveErr) {
		return fault.New(fault.Authentication, op,
			errors.New("Google OAuth token was rejected; re-run auth"))
	}

	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.Code == 401:
			return fault.New(fault.Authentication, op,
				errors.New("Google Calendar API rejected the credentials"))
		case apiErr.Code == 403 && isQuotaReason(apiErr):
			return fault.New(fault.Quota, op,
				fmt.Errorf("Google Calendar API quota exceeded (HTTP %d)", apiErr.Code))
		case apiErr.Code == 403:
			return fault.New(fault.Authentication, op,
				errors.New("Google Calendar API denied access to the calendar"))
		case apiErr.Code == 429:
			return fault.New(fault.Quota, op,
				errors.New("Google Calendar API rate limit exceeded"))
		case apiErr.Code >= 500:
			return fault.New(fault.Network, op,
				fmt.Errorf("Google Calendar API server error (HTTP %d)", apiErr.Code))
		}
		return fault.New(fault.Unknown, op,
			fmt.Errorf("Google Calendar API error (HTTP %d)", apiErr.Code))
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return fault.New(fault.Network, op, errors.New("Google Calendar API request timed out"))
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return fault.New(fault.Network, op, errors.New("failed to connect to the Google Calendar API"))
	}

	return fault.New(fault.Unknown, op, err)
}

// quotaReasons are the googleapi 403 reasons that indicate throttling
// rather than a permissions problem.
var quotaReasons = map[string]bool{
	"rateLimitExceeded":     true,
	"userRateLimitExceeded": true,
	"quotaExceeded":         true,
	"dailyLimitExceeded":    true,
}

func isQuotaReason(apiErr *googleapi.Error) bool {
	for _, item := range apiErr.Errors {
		if quotaReasons[item.Reason] {
			return true
		}
	}
	return false
}
