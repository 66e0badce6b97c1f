package emails

import "errors"

var ErrSenderNotConfigured = errors.New("email sender is not configured")

// Message is rendered from templates/<Template>.html with Data.
type Message struct {
	To       string
	Subject  string
	Template string
	Data     map[string]any
}

type Sender interface {
	Send(message Message) error
}
