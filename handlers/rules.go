package handlers

import (
	"regexp"
	"time"

	"github.com/CodeTheCity/nobot/bot"
)

// Rules builds nobot's rule table. The rules run in table order against
// every message and are not mutually exclusive: a single message can fire
// several of them, which is what keeps the bot chatty.
//
// name is the bot's display name, lowercased. Every predicate that refers
// to the bot derives from it, so there is a single place to change it.
func Rules(name string, store Agenda, start time.Time) bot.Handler {
	n := regexp.QuoteMeta(name)

	greetings := Pick(
		Named(`Hello to you too, %s!`),
		Named(`%s! Oh, lucky me, I get to help you again!`),
		Named(`Sorry, I'm in a meeting. Oh, it's %s! You can wait a bit longer.`),
	)

	feelings := Pick(
		// the bot name must not pass through the format verb path
		func(m bot.Message) string {
			return `As happy as a ` + name + ` can be! Until you showed up...` + m.Sender.Name
		},
		Named(`%s, I would answer that question but I don't want to be rude.`),
		Fixed(`I'm fine, you?`),
	)

	return bot.Process(
		Uptime(start),
		When(Matches(`(hello|hi) `+n), greetings),
		When(Matches(`how are you `+n), feelings),
		When(Matches(n+` how are you`), Fixed(`great`)),
		When(Matches(`(death to|kill) `+n), Named(`Wow, %s, have you had too much coffee again!?!?!`)),
		Meeting(),
		// "no" riles the bot up, but its own name must not: it contains
		// the substring and would trigger on every mention otherwise.
		When(All(Contains(`no`), Not(Contains(name))), Fixed(`Death to humans!`)),
		When(Matches(`(start|write|begin) (agenda|list)`), Fixed(`Ok, starting agenda. To add to it, just say my name "add" task.`)),
		AddTask(name, store),
		RemoveTask(name, store),
		ListTasks(name, store),
	)
}
