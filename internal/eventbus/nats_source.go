package eventbus

import (
	"sync"

	"github.com/nats-io/nats.go"
)

const meetingEventsSubjectPrefix = "meeting.events."

// NatsBus is an alternate event feed for deployments running NATS
// instead of redis
type NatsBus struct {
	nc *nats.Conn
}

func NatsSource(nc *nats.Conn) *NatsBus {
	return &NatsBus{nc: nc}
}

func (b *NatsBus) Subscribe(meetingID string) (Feed, error) {
	feed := newNatsFeed()

	sub, err := b.nc.Subscribe(meetingEventsSubjectPrefix+meetingID, func(msg *nats.Msg) {
		feed.forward(msg.Data)
	})
	if err != nil {
		return nil, err
	}
	feed.sub = sub

	return feed, nil
}

type NatsFeed struct {
	sub    *nats.Subscription
	events chan []byte

	quit     chan struct{}
	quitOnce sync.Once
}

func newNatsFeed() *NatsFeed {
	return &NatsFeed{
		events: make(chan []byte, 32),
		quit:   make(chan struct{}),
	}
}

// forward hands a delivery to the consumer. The events channel is never
// closed; a delivery blocked on a slow consumer is released by Close.
func (f *NatsFeed) forward(data []byte) {
	select {
	case f.events <- data:
	case <-f.quit:
	}
}

func (f *NatsFeed) Events() <-chan []byte {
	return f.events
}

func (f *NatsFeed) Close() error {
	f.quitOnce.Do(func() {
		close(f.quit)
	})

	if f.sub == nil {
		return nil
	}
	return f.sub.Unsubscribe()
}
