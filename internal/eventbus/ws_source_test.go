package eventbus

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
)

func TestWebsocketFeed(t *testing.T) {
	upgrader := websocket.Upgrader{}

	gotMeetingID := make(chan string, 1)
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMeetingID <- r.URL.Query().Get("meetingId")

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		payload := mockEventPayload(PracticeSessionStatusMethod, `{"enabled":true}`)
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			return
		}

		// hold the connection until the client hangs up
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}))
	defer ts.Close()

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http")

	feed, err := WebsocketSource(wsURL).Subscribe(mockMeetingID)
	assert.Nil(t, err)
	assert.Equal(t, mockMeetingID, <-gotMeetingID)

	select {
	case payload := <-feed.Events():
		event, err := EventFromReader(bytes.NewReader(payload))
		assert.Nil(t, err)
		assert.Equal(t, PracticeSessionStatusMethod, event.GetMethod())

		status, ok := event.(*PracticeSessionStatusEvent)
		assert.Equal(t, true, ok)
		assert.Equal(t, true, status.Params.Enabled)
	case <-time.After(time.Second):
		t.Fatal("no payload from the websocket feed")
	}

	assert.Nil(t, feed.Close())
}

func TestWebsocketSourceBadURL(t *testing.T) {
	_, err := WebsocketSource("://not-a-url").Subscribe(mockMeetingID)

	assert.NotNil(t, err)
}
