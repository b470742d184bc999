package eventbus

import (
	"context"

	"github.com/go-redis/redis/v8"
)

type Channel string

const (
	// MeetingEvents is the channel carrying webinar events for one meeting
	MeetingEvents Channel = "meeting_events"
)

func (c Channel) buildChannel(meetingID string) string {
	return string(c) + ":" + meetingID
}

// Feed is a stream of raw event payloads for one meeting
type Feed interface {
	Events() <-chan []byte
	Close() error
}

type Subscriber interface {
	Subscribe(meetingID string) (Feed, error)
}

type Publisher interface {
	Publish(meetingID string, event Event) error
}

type Eventbus struct {
	rdb *redis.Client
}

// RedisPubSub is factory for building Eventbus based on redis pubsub
func RedisPubSub(rdb *redis.Client) *Eventbus {
	return &Eventbus{rdb: rdb}
}

func (e *Eventbus) Publish(meetingID string, event Event) error {
	msg, err := event.ToJSON()
	if err != nil {
		return err
	}
	return e.rdb.Publish(context.Background(), MeetingEvents.buildChannel(meetingID), msg).Err()
}

func (e *Eventbus) Subscribe(meetingID string) (Feed, error) {
	ctx := context.Background()
	pubsub := e.rdb.Subscribe(ctx, MeetingEvents.buildChannel(meetingID))
	// Wait until subscription is created
	if _, err := pubsub.Receive(ctx); err != nil {
		return nil, err
	}

	sub := &Subscription{pubsub: pubsub, events: make(chan []byte)}
	go sub.pump()

	return sub, nil
}

type Subscription struct {
	pubsub *redis.PubSub
	events chan []byte
}

func (s *Subscription) pump() {
	for msg := range s.pubsub.Channel() {
		s.events <- []byte(msg.Payload)
	}
	close(s.events)
}

func (s *Subscription) Events() <-chan []byte {
	return s.events
}

func (s *Subscription) Close() error {
	return s.pubsub.Close()
}
