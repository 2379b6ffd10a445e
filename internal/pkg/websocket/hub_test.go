package websocket

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHub() *Hub {
	h := NewHub(zerolog.Nop())
	go h.Run()
	return h
}

func receiveWithTimeout(t *testing.T, sub *Subscription) *Message {
	t.Helper()
	select {
	case m := <-sub.C:
		return m
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for push")
		return nil
	}
}

func TestSubscribe_ReceivesPublishedMessage(t *testing.T) {
	hub := newTestHub()

	sub := hub.Subscribe(42, 4)
	defer sub.Close()

	hub.Publish(&Message{ID: 1, RecipientID: 42, Message: "hello", Type: "GENERAL"})

	got := receiveWithTimeout(t, sub)
	assert.Equal(t, int64(1), got.ID)
	assert.Equal(t, "hello", got.Message)
}

func TestSubscribe_OnlyMatchingRecipient(t *testing.T) {
	hub := newTestHub()

	mine := hub.Subscribe(42, 4)
	defer mine.Close()
	other := hub.Subscribe(99, 4)
	defer other.Close()

	hub.Publish(&Message{ID: 1, RecipientID: 42, Message: "for 42"})

	got := receiveWithTimeout(t, mine)
	assert.Equal(t, int64(42), got.RecipientID)

	select {
	case m := <-other.C:
		t.Fatalf("unexpected delivery to other recipient: %+v", m)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestSubscription_CloseStopsDelivery(t *testing.T) {
	hub := newTestHub()

	sub := hub.Subscribe(42, 4)
	sub.Close()

	// Channel is closed, receives must not block
	_, open := <-sub.C
	assert.False(t, open)

	// Publishing after close must not panic or deliver
	hub.Publish(&Message{ID: 2, RecipientID: 42})
	time.Sleep(50 * time.Millisecond)
}

func TestSubscription_CloseIsIdempotent(t *testing.T) {
	hub := newTestHub()

	sub := hub.Subscribe(42, 1)
	require.NotPanics(t, func() {
		sub.Close()
		sub.Close()
	})
}

func TestPublish_FullBufferDropsInsteadOfBlocking(t *testing.T) {
	hub := newTestHub()

	sub := hub.Subscribe(42, 1)
	defer sub.Close()

	hub.Publish(&Message{ID: 1, RecipientID: 42})
	hub.Publish(&Message{ID: 2, RecipientID: 42})

	// A push beyond the buffer is dropped; the hub keeps running
	done := make(chan struct{})
	go func() {
		hub.Publish(&Message{ID: 3, RecipientID: 42})
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("publish blocked on a full subscription")
	}

	got := receiveWithTimeout(t, sub)
	assert.Equal(t, int64(1), got.ID)
}

func TestPublish_NoSubscribersNoReplay(t *testing.T) {
	hub := newTestHub()

	// Sent before anyone listens; must not be replayed
	hub.Publish(&Message{ID: 1, RecipientID: 42, Message: "early"})
	time.Sleep(50 * time.Millisecond)

	sub := hub.Subscribe(42, 4)
	defer sub.Close()

	select {
	case m := <-sub.C:
		t.Fatalf("unexpected replayed message: %+v", m)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestPublish_SlowWebsocketClientIsDropped(t *testing.T) {
	hub := newTestHub()

	registered := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade failed: %v", err)
			return
		}
		// No writePump, so the send channel never drains and the first
		// push already finds it full
		client := &Client{
			hub:         hub,
			conn:        conn,
			send:        make(chan []byte),
			recipientID: 42,
			logger:      zerolog.Nop(),
		}
		hub.register <- client
		close(registered)
	}))
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	defer conn.Close()

	select {
	case <-registered:
	case <-time.After(2 * time.Second):
		t.Fatal("client never registered")
	}

	// The full client buffer must drop the client, not wedge the hub
	done := make(chan struct{})
	go func() {
		hub.Publish(&Message{ID: 1, RecipientID: 42})
		hub.Publish(&Message{ID: 2, RecipientID: 42})
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("publish blocked on a slow client")
	}

	assert.Equal(t, 0, hub.GetClientsCount(42))
}

func TestGetClientsCount_NoClients(t *testing.T) {
	hub := newTestHub()
	assert.Equal(t, 0, hub.GetClientsCount(42))
}
