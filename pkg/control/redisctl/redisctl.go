// Package redisctl receives user commands over Redis pub/sub.
//
// Each message published on the command channel is one command line. The
// outcome is published on "<channel>:reply" as "ok" or "err <CODE> <message>",
// so a status bar or keybinding script can do:
//
//	redis-cli publish bsptile "outer-gap 8"
//	redis-cli subscribe bsptile:reply
package redisctl

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/redis/go-redis/v9"

	bsperrors "github.com/matzehuels/bsptile/pkg/errors"
)

// DefaultChannel is the command channel used when none is configured.
const DefaultChannel = "bsptile"

// Handler applies one command line.
type Handler interface {
	Command(ctx context.Context, line string) error
}

// Subscriber forwards messages from a Redis channel to a Handler.
type Subscriber struct {
	Client  *redis.Client
	Channel string
	Handler Handler
	Logger  *log.Logger
}

// Dial connects to the Redis server at url (redis://host:port/db) and
// checks it responds.
func Dial(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, bsperrors.Wrap(bsperrors.ErrCodeInvalidConfig, err, "parse redis url")
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("connect to redis at %s: %w", opts.Addr, err)
	}
	return client, nil
}

func (s *Subscriber) channel() string {
	if s.Channel == "" {
		return DefaultChannel
	}
	return s.Channel
}

// ReplyChannel is the channel results are published on.
func (s *Subscriber) ReplyChannel() string {
	return s.channel() + ":reply"
}

func (s *Subscriber) logger() *log.Logger {
	if s.Logger == nil {
		return log.Default()
	}
	return s.Logger
}

// Run subscribes and handles messages until ctx is done or the subscription
// is closed. Failing to publish a reply is logged, not returned.
func (s *Subscriber) Run(ctx context.Context) error {
	pubsub := s.Client.Subscribe(ctx, s.channel())
	defer pubsub.Close()

	if _, err := pubsub.Receive(ctx); err != nil {
		return fmt.Errorf("subscribe %s: %w", s.channel(), err)
	}
	s.logger().Info("redis control subscribed", "channel", s.channel(), "reply", s.ReplyChannel())

	msgs := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-msgs:
			if !ok {
				return nil
			}
			reply := s.Handle(ctx, msg.Payload)
			if err := s.Client.Publish(ctx, s.ReplyChannel(), reply).Err(); err != nil {
				s.logger().Warn("publish reply failed", "channel", s.ReplyChannel(), "err", err)
			}
		}
	}
}

// Handle applies one message payload and returns the reply text.
func (s *Subscriber) Handle(ctx context.Context, payload string) string {
	if err := s.Handler.Command(ctx, strings.TrimSpace(payload)); err != nil {
		code := bsperrors.CodeOr(err, bsperrors.ErrCodeInternal)
		return fmt.Sprintf("err %s %s", code, strings.ReplaceAll(bsperrors.UserMessage(err), "\n", " "))
	}
	return "ok"
}
