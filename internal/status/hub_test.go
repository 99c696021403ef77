package status

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/makerhqsac/wall-of-fortune/internal/game"
)

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/events"
	c, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c
}

func next(t *testing.T, c *websocket.Conn) Event {
	t.Helper()
	require.NoError(t, c.SetReadDeadline(time.Now().Add(2*time.Second)))
	var ev Event
	require.NoError(t, c.ReadJSON(&ev))
	return ev
}

func TestFeed(t *testing.T) {
	h := NewHub("zoltar")
	srv := httptest.NewServer(h.Handler())
	defer srv.Close()

	c := dial(t, srv)
	ev := next(t, c)
	require.Equal(t, "snapshot", ev.Kind)
	assert.Equal(t, "zoltar", ev.Snapshot.Panel)
	assert.Equal(t, game.Idle, ev.Snapshot.State)

	h.Publish(game.Transition{Panel: "zoltar", Round: 1, From: game.Idle, To: game.Running, Reason: "admin:RESET"})
	ev = next(t, c)
	require.Equal(t, "transition", ev.Kind)
	assert.Equal(t, game.Running, ev.Transition.To)
	assert.Equal(t, "admin:RESET", ev.Transition.Reason)

	h.Diag(Diagnostic{Severity: Warn, Code: "STRIP.CONSOLE", Summary: "no SPI"})
	ev = next(t, c)
	require.Equal(t, "diagnostic", ev.Kind)
	assert.Equal(t, "STRIP.CONSOLE", ev.Diagnostic.Code)
}

func TestHealthCounts(t *testing.T) {
	h := NewHub("hal")
	for _, to := range []game.State{game.Running, game.Won, game.Idle, game.Running, game.Lost, game.Idle, game.Running} {
		h.Publish(game.Transition{Panel: "hal", Round: 3, To: to})
	}

	srv := httptest.NewServer(h.Handler())
	defer srv.Close()
	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var snap Snapshot
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&snap))
	assert.Equal(t, "hal", snap.Panel)
	assert.Equal(t, game.Running, snap.State)
	assert.Equal(t, 3, snap.Round)
	assert.Equal(t, 1, snap.Won)
	assert.Equal(t, 1, snap.Lost)
	require.NotNil(t, snap.Last)
	assert.Equal(t, game.Running, snap.Last.To)
	assert.GreaterOrEqual(t, snap.UptimeS, 0.0)
}

func TestClientLeaves(t *testing.T) {
	h := NewHub("relay")
	srv := httptest.NewServer(h.Handler())
	defer srv.Close()

	c := dial(t, srv)
	next(t, c)
	c.Close()
	assert.Eventually(t, func() bool {
		h.mu.RLock()
		defer h.mu.RUnlock()
		return len(h.clients) == 0
	}, time.Second, 10*time.Millisecond)
	h.Publish(game.Transition{To: game.Running})
}
