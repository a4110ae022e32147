package handlers

import (
	"context"

	"github.com/CodeTheCity/nobot/bot"
)

// Meeting handles everything meeting related: reactions to the meeting time,
// nagging people who forget to say please, and starting a meeting.
func Meeting() bot.Handler {
	var (
		isMeeting = ContainsAny("meeting", "meet")
		isTime    = Contains("time")
		isStart   = ContainsAny("start", "begin", "book")
		isPolite  = ContainsAny("please", "request")
		withOther = Contains("with")

		startMeeting = Pick(
			Fixed(`Oh, that's handy. I am the meeting bot! Who is in the meeting?`),
			Named(`Do you have an agenda to share with everyone, %s?!`),
			Fixed(`You people are in meetings a lot. Do you do anything else?!`),
		)
	)

	return bot.HandlerFunc(func(ctx context.Context, m bot.Message, r bot.Responder) {
		if !isMeeting(m) {
			return
		}

		switch {
		case isTime(m):
			r.Respond(ctx, `Yaaay! God, already?!`)
		case isStart(m):
			switch {
			case !isPolite(m):
				r.Respond(ctx, `I was wondering...does it hurt you humans if you say "please"?`)
			case withOther(m):
				r.Respond(ctx, `Do you have *any idea* how busy @stevenmilne is?!`)
			default:
				r.Respond(ctx, startMeeting(m))
			}
		}
	})
}
