package telegram

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/go-telegram/bot"

	"github.com/teemow/daybrief/internal/fault"
)

// MaxMessageLen is the Telegram Bot API limit for a single message.
// An agenda past this limit fails the run; it is never truncated.
const MaxMessageLen = 4096

// Client sends messages through the Telegram Bot API.
type Client struct {
	bot *bot.Bot
}

// NewClient creates a Telegram client for the given bot token. The
// token is validated lazily on the first send; no network call happens
// here.
func NewClient(token string) (*Client, error) {
	if token == "" {
		return nil, errors.New("telegram bot token cannot be empty")
	}

	b, err := bot.New(token, bot.WithSkipGetMe())
	if err != nil {
		return nil, fmt.Errorf("failed to create Telegram bot client: %w", err)
	}

	return &Client{bot: b}, nil
}

// Send delivers text to the chat as a single message. The send is
// atomic per message: either Telegram accepts the whole payload or the
// attempt fails. Retries are the caller's responsibility.
func (c *Client) Send(ctx context.Context, chatID, text string) error {
	if chatID == "" {
		return fault.New(fault.Unknown, "telegram.send", errors.New("chat ID cannot be empty"))
	}
	if text == "" {
		return fault.New(fault.Unknown, "telegram.send", errors.New("message cannot be empty"))
	}
	if n := utf8.RuneCountInString(text); n > MaxMessageLen {
		return fault.New(fault.PayloadTooLarge, "telegram.send",
			fmt.Errorf("agenda is %d characters, Telegram limit is %d", n, MaxMessageLen))
	}

	_, err := c.bot.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   text,
	})
	if err != nil {
		return classify(err)
	}

	return nil
}

// classify maps a Telegram Bot API failure onto the shared fault
// taxonomy. Error text from the API is replaced with fixed descriptions
// so bot tokens embedded in request URLs never reach the logs.
func classify(err error) error {
	switch {
	case errors.Is(err, bot.ErrorUnauthorized):
		return fault.New(fault.Authentication, "telegram.send",
			errors.New("Telegram rejected the bot token"))
	case errors.Is(err, bot.ErrorForbidden):
		return fault.New(fault.Authentication, "telegram.send",
			errors.New("Telegram bot is not allowed to message this chat"))
	case errors.Is(err, bot.ErrorTooManyRequests) || bot.IsTooManyRequestsError(err):
		return fault.New(fault.RateLimit, "telegram.send",
			errors.New("Telegram API rate limit exceeded"))
	case errors.Is(err, bot.ErrorBadRequest):
		return fault.New(fault.Unknown, "telegram.send",
			errors.New("Telegram rejected the message"))
	case errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled):
		return fault.New(fault.Network, "telegram.send",
			errors.New("Telegram API request timed out"))
	}
	return fault.New(fault.Network, "telegram.send",
		errors.New("failed to reach the Telegram API"))
}
