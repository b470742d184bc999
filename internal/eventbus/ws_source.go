package eventbus

import (
	"net/url"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

// WebsocketBus dials out to an event gateway and receives the meeting
// feed over a websocket, for clients without broker access
type WebsocketBus struct {
	// URL of the event gateway, e.g. wss://events.example.com/feed
	URL string
}

func WebsocketSource(rawURL string) *WebsocketBus {
	return &WebsocketBus{URL: rawURL}
}

func (b *WebsocketBus) Subscribe(meetingID string) (Feed, error) {
	u, err := url.Parse(b.URL)
	if err != nil {
		return nil, err
	}
	query := u.Query()
	query.Set("meetingId", meetingID)
	u.RawQuery = query.Encode()

	conn, _, err := websocket.DefaultDialer.Dial(u.String(), nil)
	if err != nil {
		return nil, err
	}

	feed := &WebsocketFeed{conn: conn, events: make(chan []byte)}
	go feed.readLoop()

	return feed, nil
}

type WebsocketFeed struct {
	conn   *websocket.Conn
	events chan []byte
}

func (f *WebsocketFeed) readLoop() {
	defer close(f.events)

	for {
		_, payload, err := f.conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure) {
				log.Error().Err(err).Str("service", "eventbus").Msg("websocket feed closed")
			}
			return
		}
		f.events <- payload
	}
}

func (f *WebsocketFeed) Events() <-chan []byte {
	return f.events
}

func (f *WebsocketFeed) Close() error {
	return f.conn.Close()
}
