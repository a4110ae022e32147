// Package bot contains the message dispatch core: the Message type handed to
// every rule, the Responder used to send replies, and the Bot event handler
// that resolves an incoming Slack event and runs it through the rule chain.
package bot

import (
	"context"
	"strings"

	"github.com/nlopes/slack"
	"go.uber.org/zap"
)

type (
	// Message is one inbound channel message, resolved and lowercased.
	// It only lives for the duration of a single dispatch.
	Message struct {
		// Sender is the resolved Slack user that wrote the message.
		// Never a bot account; those are discarded before dispatch.
		Sender *slack.User
		// Channel is the Slack channel (or DM) ID the message arrived on.
		Channel string
		// Text is the raw message text.
		Text string
		// LowerText is Text lowercased. Rule predicates match against this.
		LowerText string
	}

	// Responder sends replies for one message. Implementations are
	// fire-and-forget: send failures are logged, never returned.
	Responder interface {
		// Respond replies in the channel the message arrived on.
		Respond(ctx context.Context, text string)
		// RespondPrivate replies in the sender's DM channel.
		RespondPrivate(ctx context.Context, text string)
	}

	// Handler reacts (or not) to a single message.
	Handler interface {
		Handle(ctx context.Context, m Message, r Responder)
	}

	// HandlerFunc adapts a function to the Handler interface.
	HandlerFunc func(ctx context.Context, m Message, r Responder)

	// Directory looks up users and DM channels in the locally cached
	// Slack directory.
	Directory interface {
		UserByID(id string) (*slack.User, bool)
		DMByUserName(name string) (string, bool)
	}

	// ResponderFactory builds the Responder used for one message.
	ResponderFactory func(m Message) Responder
)

// Handle calls f.
func (f HandlerFunc) Handle(ctx context.Context, m Message, r Responder) {
	f(ctx, m, r)
}

// Process calls handlers in order. There is no early exit: every handler
// sees every message, so several rules may fire on the same text.
func Process(hs ...Handler) Handler {
	return HandlerFunc(func(ctx context.Context, m Message, r Responder) {
		for _, h := range hs {
			h.Handle(ctx, m, r)
		}
	})
}

// Bot dispatches incoming message events against a handler chain.
type Bot struct {
	directory    Directory
	newResponder ResponderFactory
	handler      Handler
	logger       *zap.Logger
	devMode      bool
}

// New constructs a Bot. All collaborators are injected so tests can
// substitute fakes for the Slack directory and transport.
func New(directory Directory, newResponder ResponderFactory, h Handler, logger *zap.Logger, devMode bool) *Bot {
	return &Bot{
		directory:    directory,
		newResponder: newResponder,
		handler:      h,
		logger:       logger,
		devMode:      devMode,
	}
}

// HandleMessage processes one inbound message event: it drops bot traffic,
// resolves the sender, guards on non-empty text and runs the handler chain.
// It is the only entry point for message events.
func (b *Bot) HandleMessage(event *slack.MessageEvent) {
	if event.BotID != "" || event.User == "" || event.SubType == "bot_message" {
		return
	}

	sender, ok := b.directory.UserByID(event.User)
	if !ok || sender == nil || sender.IsBot {
		return
	}

	if strings.TrimSpace(event.Text) == "" {
		return
	}

	m := Message{
		Sender:    sender,
		Channel:   event.Channel,
		Text:      event.Text,
		LowerText: strings.ToLower(event.Text),
	}

	if b.devMode {
		b.logger.Debug("got message",
			zap.String("user", sender.Name),
			zap.String("channel", m.Channel),
			zap.String("text", m.LowerText))
	}

	b.handler.Handle(context.Background(), m, b.newResponder(m))
}
