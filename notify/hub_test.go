package notify

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dialHub(t *testing.T, hub *Hub) *websocket.Conn {
	t.Helper()

	router := httprouter.New()
	router.GET("/ws/notifications", WebSocketHandler(hub))
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/notifications"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	// Registration happens after the upgrade response is written, so the
	// dial can return a beat before the hub sees the client.
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, 2*time.Second, 5*time.Millisecond)
	return conn
}

func TestBroadcastReachesSubscriber(t *testing.T) {
	hub := NewHub()
	conn := dialHub(t, hub)

	hub.Broadcast(Event{Type: "booking.created", Payload: map[string]string{"bookingId": "BK1-1"}, Timestamp: time.Now()})

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var event Event
	require.NoError(t, conn.ReadJSON(&event))
	assert.Equal(t, "booking.created", event.Type)
}

func TestEmitUsesDefaultHub(t *testing.T) {
	hub := NewHub()
	SetHub(hub)
	t.Cleanup(func() { SetHub(nil) })

	conn := dialHub(t, hub)

	Emit("booking.status", map[string]string{"status": "accepted"})

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var event Event
	require.NoError(t, conn.ReadJSON(&event))
	assert.Equal(t, "booking.status", event.Type)
	assert.False(t, event.Timestamp.IsZero())
}

func TestEmitWithoutHubIsNoop(t *testing.T) {
	SetHub(nil)
	assert.NotPanics(t, func() { Emit("booking.created", nil) })
}

func TestClientCountDropsOnClose(t *testing.T) {
	hub := NewHub()
	conn := dialHub(t, hub)

	conn.Close()
	assert.Eventually(t, func() bool { return hub.ClientCount() == 0 }, 2*time.Second, 10*time.Millisecond)
}
