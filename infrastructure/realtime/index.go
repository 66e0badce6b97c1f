package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"hrms.io/infrastructure/logger"
)

var ErrHubClosed = errors.New("realtime hub is closed")

type Event struct {
	Type    string    `json:"type"`
	Channel string    `json:"channel,omitempty"`
	Payload any       `json:"payload"`
	SentAt  time.Time `json:"sentAt"`
}

// Hub fans events out over redis pub/sub so every agent instance can reach
// a client connected to any other instance. It is created once at start-up
// and handed to the components that need it.
type Hub struct {
	client *redis.Client
	prefix string

	mu     sync.Mutex
	subs   map[*Subscription]struct{}
	closed bool
}

func NewHub(client *redis.Client, prefix string) *Hub {
	return &Hub{
		client: client,
		prefix: prefix,
		subs:   map[*Subscription]struct{}{},
	}
}

func (h *Hub) Publish(ctx context.Context, channel string, event Event) error {
	h.mu.Lock()
	closed := h.closed
	h.mu.Unlock()
	if closed {
		return ErrHubClosed
	}
	if event.SentAt.IsZero() {
		event.SentAt = time.Now()
	}
	event.Channel = channel
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	if err := h.client.Publish(ctx, h.prefix+channel, data).Err(); err != nil {
		logger.Error("could not publish realtime event", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		}, logger.LoggerOptions{
			Key:  "channel",
			Data: channel,
		}, logger.LoggerOptions{
			Key:  "type",
			Data: event.Type,
		})
		return err
	}
	return nil
}

// Subscribe listens on the given channels until the subscription or the hub is closed.
func (h *Hub) Subscribe(ctx context.Context, channels ...string) (*Subscription, error) {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return nil, ErrHubClosed
	}
	h.mu.Unlock()

	names := make([]string, len(channels))
	for i, channel := range channels {
		names[i] = h.prefix + channel
	}
	pubsub := h.client.Subscribe(ctx, names...)
	// wait for the subscription to be confirmed so no publish is missed
	if _, err := pubsub.Receive(ctx); err != nil {
		pubsub.Close()
		return nil, err
	}

	sub := &Subscription{
		hub:    h,
		pubsub: pubsub,
		events: make(chan Event, 16),
		done:   make(chan struct{}),
	}
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		pubsub.Close()
		return nil, ErrHubClosed
	}
	h.subs[sub] = struct{}{}
	h.mu.Unlock()

	go sub.pump()
	return sub, nil
}

func (h *Hub) forget(sub *Subscription) {
	h.mu.Lock()
	delete(h.subs, sub)
	h.mu.Unlock()
}

func (h *Hub) Subscribers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

// Close tears down every open subscription.
func (h *Hub) Close() error {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return nil
	}
	h.closed = true
	subs := make([]*Subscription, 0, len(h.subs))
	for sub := range h.subs {
		subs = append(subs, sub)
	}
	h.mu.Unlock()

	for _, sub := range subs {
		sub.Close()
	}
	return nil
}

type Subscription struct {
	hub    *Hub
	pubsub *redis.PubSub
	events chan Event
	done   chan struct{}
	once   sync.Once
}

func (s *Subscription) Events() <-chan Event {
	return s.events
}

func (s *Subscription) Done() <-chan struct{} {
	return s.done
}

func (s *Subscription) pump() {
	defer close(s.events)
	messages := s.pubsub.Channel()
	for {
		select {
		case <-s.done:
			return
		case message, ok := <-messages:
			if !ok {
				return
			}
			var event Event
			if err := json.Unmarshal([]byte(message.Payload), &event); err != nil {
				logger.Warning("dropping malformed realtime event", logger.LoggerOptions{
					Key:  "channel",
					Data: message.Channel,
				})
				continue
			}
			event.Channel = strings.TrimPrefix(message.Channel, s.hub.prefix)
			select {
			case s.events <- event:
			case <-s.done:
				return
			}
		}
	}
}

func (s *Subscription) Close() error {
	var err error
	s.once.Do(func() {
		close(s.done)
		err = s.pubsub.Close()
		s.hub.forget(s)
	})
	return err
}
