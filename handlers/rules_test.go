package handlers

import (
	"context"
	"testing"
	"time"
)

func TestRules(t *testing.T) {
	greetings := []string{
		"Hello to you too, alice!",
		"alice! Oh, lucky me, I get to help you again!",
		"Sorry, I'm in a meeting. Oh, it's alice! You can wait a bit longer.",
	}

	run := func(store *fakeAgenda, text string) *recordingResponder {
		t.Helper()
		responder := &recordingResponder{}
		Rules("nobot", store, time.Now()).
			Handle(context.Background(), message(text), responder)
		return responder
	}

	t.Run("hello nobot draws from the greeting pool", func(t *testing.T) {
		responder := run(&fakeAgenda{}, "hello nobot")

		if len(responder.channel) != 1 {
			t.Fatalf("expected exactly one reply, got %v", responder.channel)
		}
		found := false
		for _, want := range greetings {
			if responder.channel[0] == want {
				found = true
			}
		}
		if !found {
			t.Errorf("reply %q not in the greeting pool", responder.channel[0])
		}
	})

	t.Run("no without the bot's name is taken personally", func(t *testing.T) {
		responder := run(&fakeAgenda{}, "no, thanks")

		if len(responder.channel) != 1 || responder.channel[0] != "Death to humans!" {
			t.Errorf("expected the death-to-humans reply, got %v", responder.channel)
		}
	})

	t.Run("the bot's own name does not trigger the no rule", func(t *testing.T) {
		responder := run(&fakeAgenda{}, "nobot sure is quiet today")

		for _, reply := range responder.channel {
			if reply == "Death to humans!" {
				t.Errorf("bot triggered on its own name: %v", responder.channel)
			}
		}
	})

	t.Run("nobot how are you is doing great", func(t *testing.T) {
		responder := run(&fakeAgenda{}, "nobot how are you")

		if len(responder.channel) != 1 || responder.channel[0] != "great" {
			t.Errorf("expected exactly %q, got %v", "great", responder.channel)
		}
	})

	t.Run("how are you nobot draws from the feelings pool", func(t *testing.T) {
		responder := run(&fakeAgenda{}, "how are you nobot")

		feelings := []string{
			"As happy as a nobot can be! Until you showed up...alice",
			"alice, I would answer that question but I don't want to be rude.",
			"I'm fine, you?",
		}
		if len(responder.channel) != 1 {
			t.Fatalf("expected exactly one reply, got %v", responder.channel)
		}
		found := false
		for _, want := range feelings {
			if responder.channel[0] == want {
				found = true
			}
		}
		if !found {
			t.Errorf("reply %q not in the feelings pool", responder.channel[0])
		}
	})

	t.Run("threats get sarcasm", func(t *testing.T) {
		responder := run(&fakeAgenda{}, "death to nobot")

		if len(responder.channel) != 1 || responder.channel[0] != "Wow, alice, have you had too much coffee again!?!?!" {
			t.Errorf("unexpected replies: %v", responder.channel)
		}
	})

	t.Run("meeting time", func(t *testing.T) {
		responder := run(&fakeAgenda{}, "is it meeting time?")

		if len(responder.channel) != 1 || responder.channel[0] != "Yaaay! God, already?!" {
			t.Errorf("unexpected replies: %v", responder.channel)
		}
	})

	t.Run("starting a meeting without please gets a nag", func(t *testing.T) {
		responder := run(&fakeAgenda{}, "book a meeting for tomorrow")

		if len(responder.channel) != 1 || responder.channel[0] != `I was wondering...does it hurt you humans if you say "please"?` {
			t.Errorf("unexpected replies: %v", responder.channel)
		}
	})

	t.Run("politely starting a meeting with a third party gets deflected", func(t *testing.T) {
		responder := run(&fakeAgenda{}, "please book a meeting with bob")

		if len(responder.channel) != 1 || responder.channel[0] != `Do you have *any idea* how busy @stevenmilne is?!` {
			t.Errorf("unexpected replies: %v", responder.channel)
		}
	})

	t.Run("politely starting a meeting draws from the start-meeting pool", func(t *testing.T) {
		responder := run(&fakeAgenda{}, "please book a meeting")

		startMeeting := []string{
			"Oh, that's handy. I am the meeting bot! Who is in the meeting?",
			"Do you have an agenda to share with everyone, alice?!",
			"You people are in meetings a lot. Do you do anything else?!",
		}
		if len(responder.channel) != 1 {
			t.Fatalf("expected exactly one reply, got %v", responder.channel)
		}
		found := false
		for _, want := range startMeeting {
			if responder.channel[0] == want {
				found = true
			}
		}
		if !found {
			t.Errorf("reply %q not in the start-meeting pool", responder.channel[0])
		}
	})

	t.Run("a percent sign in the bot name does not corrupt replies", func(t *testing.T) {
		responder := &recordingResponder{}
		Rules("no%bot", &fakeAgenda{}, time.Now()).
			Handle(context.Background(), message("how are you no%bot"), responder)

		feelings := []string{
			"As happy as a no%bot can be! Until you showed up...alice",
			"alice, I would answer that question but I don't want to be rude.",
			"I'm fine, you?",
		}
		if len(responder.channel) != 1 {
			t.Fatalf("expected exactly one reply, got %v", responder.channel)
		}
		found := false
		for _, want := range feelings {
			if responder.channel[0] == want {
				found = true
			}
		}
		if !found {
			t.Errorf("reply %q not in the feelings pool", responder.channel[0])
		}
	})

	t.Run("agenda instructions", func(t *testing.T) {
		responder := run(&fakeAgenda{}, "begin agenda today")

		want := `Ok, starting agenda. To add to it, just say my name "add" task.`
		if len(responder.channel) != 1 || responder.channel[0] != want {
			t.Errorf("unexpected replies: %v", responder.channel)
		}
	})

	t.Run("add goes to the store once", func(t *testing.T) {
		store := &fakeAgenda{}
		responder := run(store, "nobot add buy milk")

		if len(store.adds) != 1 || store.adds[0] != (addCall{"alice", "buy milk"}) {
			t.Errorf("unexpected store calls: %+v", store.adds)
		}
		if len(responder.channel) != 1 || responder.channel[0] != `Yes, oh, mighty master! Task added to the agenda.` {
			t.Errorf("unexpected replies: %v", responder.channel)
		}
	})

	t.Run("remove confirms the deletion", func(t *testing.T) {
		store := &fakeAgenda{removeTask: "buy milk"}
		responder := run(store, "nobot remove 1")

		if len(store.removes) != 1 || store.removes[0] != 1 {
			t.Errorf("unexpected store calls: %v", store.removes)
		}
		if len(responder.channel) != 1 || responder.channel[0] != `Task deleted. alice, you really didn't think this through!` {
			t.Errorf("unexpected replies: %v", responder.channel)
		}
	})

	t.Run("rules are not mutually exclusive", func(t *testing.T) {
		responder := run(&fakeAgenda{}, "kill nobot and book a meeting")

		want := []string{
			"Wow, alice, have you had too much coffee again!?!?!",
			`I was wondering...does it hurt you humans if you say "please"?`,
		}
		if len(responder.channel) != len(want) {
			t.Fatalf("expected %d replies in table order, got %v", len(want), responder.channel)
		}
		for i := range want {
			if responder.channel[i] != want[i] {
				t.Errorf("reply %d: expected %q, got %q", i, want[i], responder.channel[i])
			}
		}
	})

	t.Run("unmatched messages stay silent", func(t *testing.T) {
		responder := run(&fakeAgenda{}, "what a lovely day")

		if len(responder.channel) != 0 || len(responder.private) != 0 {
			t.Errorf("expected silence, got %v / %v", responder.channel, responder.private)
		}
	})
}
