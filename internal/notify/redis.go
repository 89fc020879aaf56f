package notify

import (
	"context"
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	"github.com/abhisek/bodypath/internal/logger"
)

// DefaultChannel is the pub/sub channel events are published on.
const DefaultChannel = "bodypath:events"

// Redis publishes events on a Redis pub/sub channel so listeners in other
// processes can reload progress.
type Redis struct {
	log     *logger.Logger
	rdb     *goredis.Client
	channel string
}

// NewRedis creates a Redis notifier over an existing client.
func NewRedis(log *logger.Logger, rdb *goredis.Client, channel string) (*Redis, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	if rdb == nil {
		return nil, fmt.Errorf("redis client required")
	}
	if channel == "" {
		channel = DefaultChannel
	}
	return &Redis{
		log:     log.With("component", "RedisNotifier"),
		rdb:     rdb,
		channel: channel,
	}, nil
}

func (r *Redis) Notify(ctx context.Context, event string) error {
	if err := r.rdb.Publish(ctx, r.channel, event).Err(); err != nil {
		return fmt.Errorf("publish %s: %w", event, err)
	}
	return nil
}

// Listen subscribes to the channel and calls onEvent for every message
// until ctx is cancelled.
func (r *Redis) Listen(ctx context.Context, onEvent Listener) error {
	if onEvent == nil {
		return fmt.Errorf("onEvent callback required")
	}

	sub := r.rdb.Subscribe(ctx, r.channel)
	defer sub.Close()

	// ensures subscription actually started
	if _, err := sub.Receive(ctx); err != nil {
		return fmt.Errorf("subscribe %s: %w", r.channel, err)
	}
	r.log.Debug("listening", "channel", r.channel)

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			onEvent(msg.Payload)
		}
	}
}
