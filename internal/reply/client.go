package reply

import "context"

//go:generate mockgen -destination=mocks/mock_client.go -package=mocks eybot/internal/reply Client

// Client is the outbound side of the chat transport.
type Client interface {
	SendMessage(ctx context.Context, chatID int64, text string) error
	// BotUsername returns the bot's mention handle, e.g. "@eybot".
	BotUsername() string
}
