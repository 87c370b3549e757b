package chats

import (
	"encoding/json"
	"testing"
	"time"
)

func TestHubRegisterBroadcastUnregister(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	client := &Client{
		Send: make(chan []byte, 10),
		Room: "chat1",
	}
	hub.register <- client

	msg := outboundPayload{Action: "chat", Room: "chat1", Content: "dock at 9"}
	data, _ := json.Marshal(msg)
	hub.Broadcast("chat1", data)

	select {
	case got := <-client.Send:
		if string(got) != string(data) {
			t.Fatalf("expected %s, got %s", data, got)
		}
	case <-time.After(1 * time.Second):
		t.Fatal("timeout waiting for message")
	}

	hub.unregister <- client
}

func TestHubRoomIsolation(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	a := &Client{Send: make(chan []byte, 1), Room: "chat1"}
	b := &Client{Send: make(chan []byte, 1), Room: "chat2"}
	hub.register <- a
	hub.register <- b

	hub.Broadcast("chat1", []byte("only for chat1"))

	select {
	case <-a.Send:
	case <-time.After(1 * time.Second):
		t.Fatal("timeout waiting for message in chat1")
	}

	select {
	case got := <-b.Send:
		t.Fatalf("chat2 client should not receive %q", got)
	case <-time.After(100 * time.Millisecond):
	}
}
