package server

import (
	"os"
	"testing"
	"time"

	"terramythica-server/pkg/api"
	"terramythica-server/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

func TestForwardUpdatesStopsWhenWriterIsGone(t *testing.T) {
	c := &Client{
		Send: make(chan api.ServerMessage, 1),
		done: make(chan struct{}),
	}
	updates := make(chan api.ServerMessage, 4)

	finished := make(chan struct{})
	go func() {
		c.forwardUpdates(updates)
		close(finished)
	}()

	// Очередь записи забита, писатель больше её не разгребает.
	updates <- api.ServerMessage{Type: "SNAPSHOT"}
	updates <- api.ServerMessage{Type: "SNAPSHOT"}

	close(c.done)

	select {
	case <-finished:
	case <-time.After(time.Second):
		t.Fatal("forwarder must exit once the writer is gone")
	}
}

func TestForwardUpdatesClosesSendOnHubShutdown(t *testing.T) {
	c := &Client{
		Send: make(chan api.ServerMessage, 4),
		done: make(chan struct{}),
	}
	updates := make(chan api.ServerMessage)
	close(updates)

	c.forwardUpdates(updates)

	if _, ok := <-c.Send; ok {
		t.Error("Send must be closed after the hub channel closes")
	}
}
