// Package handlers implements nobot's rule table: the condition predicates
// messages are matched against, the responses that fire and the handlers
// that tie the two together.
package handlers

import (
	"context"
	"fmt"
	"math/rand"
	"regexp"
	"strings"

	"github.com/CodeTheCity/nobot/bot"
)

type (
	// Condition reports whether a message matches. All predicates work on
	// the lowercased message text.
	Condition func(m bot.Message) bool

	// Response produces the reply text for a matched message.
	Response func(m bot.Message) string
)

// Contains matches messages containing s.
func Contains(s string) Condition {
	return func(m bot.Message) bool {
		return strings.Contains(m.LowerText, s)
	}
}

// ContainsAny matches messages containing at least one of strs.
func ContainsAny(strs ...string) Condition {
	return func(m bot.Message) bool {
		for _, s := range strs {
			if strings.Contains(m.LowerText, s) {
				return true
			}
		}
		return false
	}
}

// Matches matches messages against a regular expression.
func Matches(pattern string) Condition {
	re := regexp.MustCompile(pattern)
	return func(m bot.Message) bool {
		return re.MatchString(m.LowerText)
	}
}

// Not inverts a condition.
func Not(c Condition) Condition {
	return func(m bot.Message) bool {
		return !c(m)
	}
}

// All matches when every condition matches.
func All(cs ...Condition) Condition {
	return func(m bot.Message) bool {
		for _, c := range cs {
			if !c(m) {
				return false
			}
		}
		return true
	}
}

// Fixed always responds with the same text.
func Fixed(text string) Response {
	return func(bot.Message) string {
		return text
	}
}

// Named formats text with the sender's display name.
func Named(format string) Response {
	return func(m bot.Message) string {
		return fmt.Sprintf(format, m.Sender.Name)
	}
}

// Pick selects one of the pool uniformly at random. Every call is an
// independent draw; repeats are allowed.
func Pick(pool ...Response) Response {
	return func(m bot.Message) string {
		return pool[rand.Intn(len(pool))](m)
	}
}

// When responds in-channel when the condition matches.
func When(c Condition, response Response) bot.Handler {
	return bot.HandlerFunc(func(ctx context.Context, m bot.Message, r bot.Responder) {
		if !c(m) {
			return
		}
		r.Respond(ctx, response(m))
	})
}
