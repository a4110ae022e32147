package handlers

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/CodeTheCity/nobot/agenda"
	"github.com/CodeTheCity/nobot/bot"
)

// Agenda is the task list backing the add/remove/show rules. The key is the
// user's display name.
type Agenda interface {
	Add(ctx context.Context, user, task string) error
	Remove(ctx context.Context, user string, position int) (string, error)
	List(ctx context.Context, user string) ([]string, error)
}

// AddTask adds a task to the sender's agenda on "<name> add <task>".
func AddTask(name string, store Agenda) bot.Handler {
	return bot.HandlerFunc(func(ctx context.Context, m bot.Message, r bot.Responder) {
		args, ok := command(m, name, "add")
		if !ok {
			return
		}

		task := strings.Join(args, " ")
		if task == "" {
			r.Respond(ctx, fmt.Sprintf(`%s! My name + "add" + task = agenda!`, m.Sender.Name))
			return
		}

		if err := store.Add(ctx, m.Sender.Name, task); err != nil {
			r.Respond(ctx, `Sorry, I'm in a meeting now, maybe later. Task cannot be added.`)
			return
		}
		r.Respond(ctx, `Yes, oh, mighty master! Task added to the agenda.`)
	})
}

// RemoveTask removes a task by its 1-based position in the listing on
// "<name> remove <n>" or "<name> delete <n>".
func RemoveTask(name string, store Agenda) bot.Handler {
	return bot.HandlerFunc(func(ctx context.Context, m bot.Message, r bot.Responder) {
		args, ok := command(m, name, "remove", "delete")
		if !ok {
			return
		}

		badArg := fmt.Sprintf(`%s! My name + "delete/remove" + task = a happier me!`, m.Sender.Name)

		if len(args) == 0 {
			r.Respond(ctx, badArg)
			return
		}
		position, err := strconv.Atoi(args[0])
		if err != nil {
			r.Respond(ctx, badArg)
			return
		}

		_, err = store.Remove(ctx, m.Sender.Name, position)
		switch {
		case errors.Is(err, agenda.ErrOutOfRange):
			r.Respond(ctx, badArg)
		case err != nil:
			r.Respond(ctx, fmt.Sprintf(`%s! Hey, I know I am awesome but remove stuff that does not exist is out of my league!`, m.Sender.Name))
		default:
			r.Respond(ctx, fmt.Sprintf(`Task deleted. %s, you really didn't think this through!`, m.Sender.Name))
		}
	})
}

// ListTasks enumerates the sender's agenda on "<name> show agenda" and the
// show/display/write and agenda/list variations of it.
func ListTasks(name string, store Agenda) bot.Handler {
	return bot.HandlerFunc(func(ctx context.Context, m bot.Message, r bot.Responder) {
		args, ok := command(m, name, "show", "display", "write")
		if !ok || len(args) == 0 || (args[0] != "agenda" && args[0] != "list") {
			return
		}

		tasks, err := store.List(ctx, m.Sender.Name)
		if err != nil || len(tasks) == 0 {
			r.Respond(ctx, `Sorry, was I supposed to do that? I have no agenda!`)
			return
		}

		r.Respond(ctx, fmt.Sprintf("%s's agenda:", m.Sender.Name))
		for i, task := range tasks {
			r.Respond(ctx, fmt.Sprintf("%d.%s", i+1, task))
		}
	})
}

// command scans for the bot's name immediately followed by one of the verbs
// and returns the tokens after the verb.
func command(m bot.Message, name string, verbs ...string) ([]string, bool) {
	fields := strings.Fields(m.LowerText)
	for i := 0; i+1 < len(fields); i++ {
		if !strings.Contains(fields[i], name) {
			continue
		}
		for _, verb := range verbs {
			if fields[i+1] == verb {
				return fields[i+2:], true
			}
		}
	}
	return nil, false
}
