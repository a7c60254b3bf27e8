package sse

import (
	"testing"
)

func TestHubPublishToTopic(t *testing.T) {
	h := NewHub()
	ch, cleanup := h.Subscribe(UserTopic(3))
	defer cleanup()

	h.Publish(UserTopic(3), Event{Event: "request_resolved", Data: "ok"})

	select {
	case ev := <-ch:
		if ev.Event != "request_resolved" {
			t.Errorf("event = %q, want request_resolved", ev.Event)
		}
		if ev.Topic != "user:3" {
			t.Errorf("topic = %q, want user:3", ev.Topic)
		}
	default:
		t.Fatal("no event delivered to subscriber")
	}
}

func TestHubTopicIsolation(t *testing.T) {
	h := NewHub()
	ch, cleanup := h.Subscribe(TeamTopic(1))
	defer cleanup()

	h.Publish(TeamTopic(2), Event{Event: "auto_exit"})

	select {
	case ev := <-ch:
		t.Fatalf("received %q on team:1 for an event published to team:2", ev.Event)
	default:
	}
}

func TestHubPublishWithoutSubscribersIsNoop(t *testing.T) {
	h := NewHub()
	// Must not block or panic.
	h.Publish(UserTopic(99), Event{Event: "status_changed"})
	if h.TotalSubscribers() != 0 {
		t.Errorf("TotalSubscribers = %d, want 0", h.TotalSubscribers())
	}
}

func TestHubFullChannelDoesNotBlock(t *testing.T) {
	h := NewHub()
	_, cleanup := h.Subscribe(UserTopic(5))
	defer cleanup()

	// Channel buffer is 10; publishing more must drop, not block.
	for i := 0; i < 30; i++ {
		h.Publish(UserTopic(5), Event{Event: "status_changed", Data: i})
	}
}

func TestHubCleanupRemovesSubscriber(t *testing.T) {
	h := NewHub()
	_, cleanup := h.Subscribe(TeamTopic(9))
	if h.SubscriberCount(TeamTopic(9)) != 1 {
		t.Fatalf("SubscriberCount = %d, want 1", h.SubscriberCount(TeamTopic(9)))
	}
	cleanup()
	if h.SubscriberCount(TeamTopic(9)) != 0 {
		t.Errorf("SubscriberCount after cleanup = %d, want 0", h.SubscriberCount(TeamTopic(9)))
	}
}
