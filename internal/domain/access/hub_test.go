package access

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestHubBroadcastReachesWatchers(t *testing.T) {
	hub := NewHub(nil)
	go hub.Run()
	defer hub.Shutdown()

	conn := &Connection{Send: make(chan []byte, 4)}
	hub.Register(conn)

	// Registration goes through the hub loop.
	waitFor(t, func() bool { return hub.ConnectionCount() == 1 })

	entry := &EntryLog{
		ID:         uuid.New(),
		BadgeID:    "BADGE-1",
		MemberName: "Test Member",
		Result:     ResultGranted,
		OccurredAt: time.Now(),
	}
	hub.Broadcast(entry)

	select {
	case data := <-conn.Send:
		var got EntryLog
		if err := json.Unmarshal(data, &got); err != nil {
			t.Fatalf("broadcast payload is not an entry: %v", err)
		}
		if got.BadgeID != "BADGE-1" || got.Result != ResultGranted {
			t.Errorf("unexpected payload: %+v", got)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("watcher never received the broadcast")
	}
}

func TestHubDropsSlowWatcher(t *testing.T) {
	hub := NewHub(nil)
	go hub.Run()
	defer hub.Shutdown()

	// Unbuffered channel with no reader: every send would block.
	slow := &Connection{Send: make(chan []byte)}
	hub.Register(slow)
	waitFor(t, func() bool { return hub.ConnectionCount() == 1 })

	hub.Broadcast(&EntryLog{ID: uuid.New(), BadgeID: "BADGE-2", Result: ResultDenied})

	waitFor(t, func() bool { return hub.ConnectionCount() == 0 })
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition never met")
}
