package realtime

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/cloudsync/internal/client/api"
	"github.com/dmitrijs2005/cloudsync/internal/logging"
)

// testServer is a minimal websocket endpoint: records the auth token and
// every received frame, and lets the test push frames to the client.
type testServer struct {
	srv      *httptest.Server
	upgrader websocket.Upgrader

	mu     sync.Mutex
	token  string
	frames []Frame
	conn   *websocket.Conn
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	ts := &testServer{}
	ts.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ts.mu.Lock()
		ts.token = r.URL.Query().Get("token")
		ts.mu.Unlock()

		conn, err := ts.upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		ts.mu.Lock()
		ts.conn = conn
		ts.mu.Unlock()

		for {
			var f Frame
			if err := conn.ReadJSON(&f); err != nil {
				return
			}
			ts.mu.Lock()
			ts.frames = append(ts.frames, f)
			ts.mu.Unlock()
		}
	}))
	t.Cleanup(ts.srv.Close)
	return ts
}

func (ts *testServer) wsURL() string {
	return "ws" + strings.TrimPrefix(ts.srv.URL, "http")
}

func (ts *testServer) Token() string {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	return ts.token
}

func (ts *testServer) Frames() []Frame {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	return append([]Frame(nil), ts.frames...)
}

func (ts *testServer) Push(t *testing.T, event string, data any) {
	t.Helper()
	ts.mu.Lock()
	conn := ts.conn
	ts.mu.Unlock()
	require.NotNil(t, conn)
	payload, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, conn.WriteJSON(Frame{Event: event, Data: payload}))
}

func staticToken(token string) api.TokenSource {
	return api.TokenSourceFunc(func() string { return token })
}

func TestChannel_ConnectsWithToken(t *testing.T) {
	ts := newTestServer(t)
	c := New(ts.wsURL(), staticToken("tok-ws"), logging.NewDefault())

	c.Start(context.Background())
	defer c.Stop()

	require.Eventually(t, c.IsConnected, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, "tok-ws", ts.Token())
}

func TestChannel_StartIdempotent(t *testing.T) {
	ts := newTestServer(t)
	c := New(ts.wsURL(), staticToken("tok"), logging.NewDefault())

	c.Start(context.Background())
	c.Start(context.Background())
	defer c.Stop()

	require.Eventually(t, c.IsConnected, 2*time.Second, 10*time.Millisecond)
}

func TestChannel_SendWhileDisconnectedIsNoop(t *testing.T) {
	c := New("ws://127.0.0.1:1", staticToken("tok"), logging.NewDefault())

	// не должно ни паниковать, ни блокироваться
	c.JoinGroup("g1")
	c.SendMessage("g1", "hello")
	c.LeaveGroup("g1")

	assert.False(t, c.IsConnected())
}

func TestChannel_OutgoingFrames(t *testing.T) {
	ts := newTestServer(t)
	c := New(ts.wsURL(), staticToken("tok"), logging.NewDefault())

	c.Start(context.Background())
	defer c.Stop()
	require.Eventually(t, c.IsConnected, 2*time.Second, 10*time.Millisecond)

	c.JoinGroup("g1")
	c.SendMessage("g1", "hello")
	c.LeaveGroup("g1")

	require.Eventually(t, func() bool { return len(ts.Frames()) == 3 }, 2*time.Second, 10*time.Millisecond)

	frames := ts.Frames()
	assert.Equal(t, EventJoin, frames[0].Event)
	assert.JSONEq(t, `{"groupId":"g1"}`, string(frames[0].Data))
	assert.Equal(t, EventChatSend, frames[1].Event)
	assert.JSONEq(t, `{"groupId":"g1","content":"hello"}`, string(frames[1].Data))
	assert.Equal(t, EventLeave, frames[2].Event)
}

func TestChannel_DispatchAndUnsubscribe(t *testing.T) {
	ts := newTestServer(t)
	c := New(ts.wsURL(), staticToken("tok"), logging.NewDefault())

	c.Start(context.Background())
	defer c.Stop()
	require.Eventually(t, c.IsConnected, 2*time.Second, 10*time.Millisecond)

	type received struct {
		event string
		data  string
	}
	var mu sync.Mutex
	var got []received
	unsubscribe := c.OnEvent(func(event string, data json.RawMessage) {
		mu.Lock()
		got = append(got, received{event, string(data)})
		mu.Unlock()
	})

	ts.Push(t, EventChatMessage, map[string]string{"groupId": "g1", "content": "hi"})
	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(got) == 1
	}, 2*time.Second, 10*time.Millisecond)

	mu.Lock()
	assert.Equal(t, EventChatMessage, got[0].event)
	assert.JSONEq(t, `{"groupId":"g1","content":"hi"}`, got[0].data)
	mu.Unlock()

	unsubscribe()
	ts.Push(t, EventNotification, map[string]string{"id": "n1"})

	// даём кадру дойти; отписанный обработчик не должен его увидеть
	time.Sleep(100 * time.Millisecond)
	mu.Lock()
	assert.Len(t, got, 1)
	mu.Unlock()
}

func TestChannel_StopClosesConnection(t *testing.T) {
	ts := newTestServer(t)
	c := New(ts.wsURL(), staticToken("tok"), logging.NewDefault())

	c.Start(context.Background())
	require.Eventually(t, c.IsConnected, 2*time.Second, 10*time.Millisecond)

	c.Stop()
	assert.False(t, c.IsConnected())

	c.Stop() // idempotent
}
