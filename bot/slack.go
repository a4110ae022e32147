package bot

import (
	"context"

	"github.com/nlopes/slack"
	"go.uber.org/zap"
)

// RTMDirectory resolves users and DM channels from the RTM connection's
// locally cached team state.
type RTMDirectory struct {
	rtm *slack.RTM
}

// NewRTMDirectory wraps an RTM connection as a Directory.
func NewRTMDirectory(rtm *slack.RTM) *RTMDirectory {
	return &RTMDirectory{rtm: rtm}
}

// UserByID looks up a user in the cached directory.
func (d *RTMDirectory) UserByID(id string) (*slack.User, bool) {
	info := d.rtm.GetInfo()
	if info == nil {
		return nil, false
	}
	for i := range info.Users {
		if info.Users[i].ID == id {
			return &info.Users[i], true
		}
	}
	return nil, false
}

// DMByUserName returns the ID of the already-open DM channel with the named
// user. It does not open new DM channels.
func (d *RTMDirectory) DMByUserName(name string) (string, bool) {
	info := d.rtm.GetInfo()
	if info == nil {
		return "", false
	}
	var userID string
	for i := range info.Users {
		if info.Users[i].Name == name {
			userID = info.Users[i].ID
			break
		}
	}
	if userID == "" {
		return "", false
	}
	for i := range info.IMs {
		if info.IMs[i].User == userID {
			return info.IMs[i].ID, true
		}
	}
	return "", false
}

// rtmResponder sends replies over the RTM websocket. Sends are
// fire-and-forget; delivery failures only ever show up in the logs.
type rtmResponder struct {
	rtm       *slack.RTM
	directory Directory
	m         Message
	logger    *zap.Logger
	devMode   bool
}

// NewRTMResponders returns a ResponderFactory backed by the RTM connection.
// In dev mode replies are logged instead of sent.
func NewRTMResponders(rtm *slack.RTM, directory Directory, logger *zap.Logger, devMode bool) ResponderFactory {
	return func(m Message) Responder {
		return rtmResponder{
			rtm:       rtm,
			directory: directory,
			m:         m,
			logger:    logger,
			devMode:   devMode,
		}
	}
}

func (r rtmResponder) Respond(ctx context.Context, text string) {
	r.send(text, r.m.Channel)
}

func (r rtmResponder) RespondPrivate(ctx context.Context, text string) {
	dm, ok := r.directory.DMByUserName(r.m.Sender.Name)
	if !ok {
		r.logger.Warn("no open DM channel for user", zap.String("user", r.m.Sender.Name))
		return
	}
	r.send(text, dm)
}

func (r rtmResponder) send(text, channel string) {
	if r.devMode {
		r.logger.Info("would reply",
			zap.String("channel", channel),
			zap.String("text", text))
		return
	}
	r.rtm.SendMessage(r.rtm.NewOutgoingMessage(text, channel))
}
