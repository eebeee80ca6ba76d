package sse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHubPublishSubscribe(t *testing.T) {
	hub := NewHub()

	ch, cleanup := hub.Subscribe(TopicDashboard)
	defer cleanup()

	hub.Publish(Event{Topic: TopicDashboard, Event: "presence", Data: "payload"})

	select {
	case got := <-ch:
		assert.Equal(t, "presence", got.Event)
		assert.Equal(t, "payload", got.Data)
	default:
		t.Fatal("expected a buffered event")
	}
}

func TestHubTopicIsolation(t *testing.T) {
	hub := NewHub()

	ch, cleanup := hub.Subscribe(TopicDashboard)
	defer cleanup()

	hub.Publish(Event{Topic: "other", Event: "presence"})

	select {
	case <-ch:
		t.Fatal("event leaked across topics")
	default:
	}
}

func TestHubCleanupRemovesSubscriber(t *testing.T) {
	hub := NewHub()

	_, cleanup := hub.Subscribe(TopicDashboard)
	require.Equal(t, 1, hub.SubscriberCount(TopicDashboard))

	cleanup()
	assert.Equal(t, 0, hub.SubscriberCount(TopicDashboard))

	// Publishing with no subscribers must not panic.
	hub.Publish(Event{Topic: TopicDashboard, Event: "presence"})
}

func TestHubSlowSubscriberSkipped(t *testing.T) {
	hub := NewHub()

	ch, cleanup := hub.Subscribe(TopicDashboard)
	defer cleanup()

	// Overfill the buffer; the surplus publish must not block.
	for i := 0; i < 20; i++ {
		hub.Publish(Event{Topic: TopicDashboard, Event: "presence"})
	}

	assert.Equal(t, cap(ch), len(ch))
}
