package infrastructure

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mesaYaDash/internal/modules/realtime/domain"
)

type fakeConn struct {
	mu     sync.Mutex
	closed bool
}

func (f *fakeConn) WriteMessage(int, []byte) error            { return nil }
func (f *fakeConn) WriteControl(int, []byte, time.Time) error { return nil }
func (f *fakeConn) ReadJSON(any) error                        { select {} }
func (f *fakeConn) SetReadLimit(int64)                        {}
func (f *fakeConn) SetReadDeadline(time.Time) error           { return nil }
func (f *fakeConn) SetWriteDeadline(time.Time) error          { return nil }
func (f *fakeConn) SetPongHandler(func(string) error)         {}

func (f *fakeConn) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

func (f *fakeConn) isClosed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

func drain(c *Client) []domain.Message {
	var out []domain.Message
	for {
		select {
		case data := <-c.send:
			var msg domain.Message
			if err := json.Unmarshal(data, &msg); err == nil {
				out = append(out, msg)
			}
		default:
			return out
		}
	}
}

func message(group, kind string) *domain.Message {
	return &domain.Message{Topic: domain.CustomTopic(group, kind), Entity: group, Action: kind, Timestamp: time.Now().UTC()}
}

func TestHubRoutesByGroup(t *testing.T) {
	hub := NewHub()
	floor := NewClient(hub, &fakeConn{}, "u1", "s1", 8)
	everything := NewClient(hub, &fakeConn{}, "u2", "s2", 8)
	hub.AttachClient(floor, []string{"tables"})
	hub.AttachClient(everything, nil)

	hub.Broadcast(context.Background(), message("tables", "updated"))
	hub.Broadcast(context.Background(), message("customers", "invalidated"))

	got := drain(floor)
	require.Len(t, got, 1)
	assert.Equal(t, "tables.updated", got[0].Topic)
	assert.Len(t, drain(everything), 2)
	assert.Equal(t, 2, hub.Clients())
}

func TestHubTargetsSession(t *testing.T) {
	hub := NewHub()
	a := NewClient(hub, &fakeConn{}, "u1", "s1", 8)
	b := NewClient(hub, &fakeConn{}, "u1", "s2", 8)
	hub.AttachClient(a, []string{"tables"})
	hub.AttachClient(b, []string{"tables"})

	msg := message("tables", "updated")
	msg.Metadata = map[string]string{"sessionId": "s2"}
	hub.Broadcast(context.Background(), msg)

	assert.Empty(t, drain(a))
	assert.Len(t, drain(b), 1)
}

func TestHubDetachesSlowClient(t *testing.T) {
	hub := NewHub()
	conn := &fakeConn{}
	slow := NewClient(hub, conn, "u1", "s1", 1)
	hub.AttachClient(slow, []string{"tables"})

	hub.Broadcast(context.Background(), message("tables", "updated"))
	hub.Broadcast(context.Background(), message("tables", "invalidated"))

	assert.Eventually(t, func() bool { return hub.Clients() == 0 && conn.isClosed() }, time.Second, 10*time.Millisecond)
	select {
	case <-slow.Done():
	default:
		t.Fatal("slow client not closed")
	}
}

func TestCommandsSubscribeAndUnsubscribe(t *testing.T) {
	hub := NewHub()
	client := NewClient(hub, &fakeConn{}, "u1", "", 8)
	hub.AttachClient(client, nil)
	assert.NotEmpty(t, client.SessionID())

	client.commands.Process(client, Command{Action: "Subscribe", Groups: []string{"Mesa", "reservas"}})
	hub.Broadcast(context.Background(), message("customers", "updated"))
	hub.Broadcast(context.Background(), message("reservations", "updated"))
	got := drain(client)
	require.Len(t, got, 1)
	assert.Equal(t, "reservations", got[0].Entity)

	client.commands.Process(client, Command{Action: "unsubscribe", Groups: []string{"reservations"}})
	hub.Broadcast(context.Background(), message("reservations", "updated"))
	hub.Broadcast(context.Background(), message("tables", "updated"))
	got = drain(client)
	require.Len(t, got, 1)
	assert.Equal(t, "tables", got[0].Entity)

	client.commands.Process(client, Command{Action: "ping"})
	client.commands.Process(client, Command{Action: "dance"})
	got = drain(client)
	require.Len(t, got, 2)
	assert.Equal(t, domain.TopicSystemPong, got[0].Topic)
	assert.Equal(t, domain.TopicSystemError, got[1].Topic)
}

func TestSubscribeAfterDetachLeavesNoSubscription(t *testing.T) {
	hub := NewHub()
	client := NewClient(hub, &fakeConn{}, "u1", "s1", 8)
	hub.AttachClient(client, []string{"tables"})
	hub.detachClient(client)

	client.commands.Process(client, Command{Action: "subscribe", Groups: []string{"reservations"}})

	hub.mu.RLock()
	defer hub.mu.RUnlock()
	assert.Empty(t, hub.topics)
	assert.Empty(t, hub.global)
	assert.Empty(t, client.subscribed)
}
