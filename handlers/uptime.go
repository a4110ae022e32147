package handlers

import (
	"context"
	"fmt"
	"time"

	"github.com/CodeTheCity/nobot/bot"
)

// Uptime replies with the process uptime when a message contains "uptime".
// Only admins get an answer, and only as a direct message; everyone else
// gets a refusal in the channel.
func Uptime(start time.Time) bot.Handler {
	isUptime := Contains("uptime")
	return bot.HandlerFunc(func(ctx context.Context, m bot.Message, r bot.Responder) {
		if !isUptime(m) {
			return
		}
		if !m.Sender.IsAdmin {
			r.Respond(ctx, fmt.Sprintf("Sorry %s, that's confidential. Only my girlfriend can ask me that!", m.Sender.Name))
			return
		}
		r.RespondPrivate(ctx, uptimeMessage(time.Since(start)))
	})
}

// uptimeMessage renders a duration as whole hours, minutes and seconds,
// so hours*3600 + minutes*60 + seconds equals the elapsed whole seconds.
func uptimeMessage(elapsed time.Duration) string {
	total := int64(elapsed.Seconds())
	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60

	return fmt.Sprintf("I have been running for: %d hours, %d minutes and %d seconds.", hours, minutes, seconds)
}
