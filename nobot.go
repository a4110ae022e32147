// Command nobot
//
// nobot is a Slack bot that chats back at channels and keeps a per-user
// meeting agenda in Redis.
//
// To run it you need to set the `NOBOT_SLACK_TOKEN` environment variable
// with the Slack bot token, and have a Redis reachable at `NOBOT_REDIS_URL`.
package main

import (
	"context"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/nlopes/slack"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/CodeTheCity/nobot/agenda"
	"github.com/CodeTheCity/nobot/bot"
	"github.com/CodeTheCity/nobot/handlers"
)

type config struct {
	SlackToken string `envconfig:"slack_token" required:"true"`
	Name       string `envconfig:"name" default:"nobot"`
	RedisURL   string `envconfig:"redis_url" default:"redis://localhost:6379"`
	DevMode    bool   `envconfig:"dev_mode"`
}

func main() {
	start := time.Now()

	// .env is only there for development; missing is fine.
	_ = godotenv.Load()

	var cfg config
	cfgErr := envconfig.Process("nobot", &cfg)

	logger := newLogger(cfg.DevMode)
	defer logger.Sync()

	if cfgErr != nil {
		logger.Fatal("loading config", zap.Error(cfgErr))
	}
	cfg.Name = strings.ToLower(strings.TrimPrefix(cfg.Name, "@"))

	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		logger.Fatal("parsing redis url", zap.Error(err))
	}
	rdb := redis.NewClient(opts)
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		logger.Fatal("connecting to redis", zap.Error(err))
	}
	logger.Info("connected to redis", zap.String("addr", opts.Addr))

	store := agenda.New(rdb, logger)

	api := slack.New(cfg.SlackToken)
	rtm := api.NewRTM()
	go rtm.ManageConnection()

	directory := bot.NewRTMDirectory(rtm)
	b := bot.New(
		directory,
		bot.NewRTMResponders(rtm, directory, logger, cfg.DevMode),
		handlers.Rules(cfg.Name, store, start),
		logger,
		cfg.DevMode,
	)

	for msg := range rtm.IncomingEvents {
		switch event := msg.Data.(type) {
		case *slack.ConnectedEvent:
			logConnected(logger, event)
		case *slack.MessageEvent:
			go b.HandleMessage(event)
		case *slack.RTMError:
			logger.Error("rtm error", zap.Error(event))
		case *slack.InvalidAuthEvent:
			logger.Fatal("invalid slack credentials")
		}
	}
}

func newLogger(devMode bool) *zap.Logger {
	var (
		logger *zap.Logger
		err    error
	)
	if devMode {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		panic(err)
	}
	return logger
}

// logConnected reports which team the bot joined and which channels it is a
// member of, with their non-bot members.
func logConnected(logger *zap.Logger, event *slack.ConnectedEvent) {
	info := event.Info
	logger.Info("connected to slack",
		zap.String("team", info.Team.Name),
		zap.String("bot", info.User.Name))

	users := make(map[string]slack.User, len(info.Users))
	for _, user := range info.Users {
		users[user.ID] = user
	}

	for _, channel := range info.Channels {
		if !channel.IsMember {
			continue
		}

		var members []string
		for _, id := range channel.Members {
			if user, ok := users[id]; ok && !user.IsBot {
				members = append(members, user.Name)
			}
		}
		logger.Info("in channel",
			zap.String("channel", channel.Name),
			zap.Strings("members", members))
	}
}
