package bus

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSubscribeReceivesPublishedTopic(t *testing.T) {
	b := New()

	ch, cancel := b.Subscribe(TopicLogs)
	defer cancel()

	b.Publish(TopicLogs)

	select {
	case topic := <-ch:
		assert.Equal(t, TopicLogs, topic)
	default:
		t.Fatal("expected a notification")
	}
}

func TestPublishSkipsUnrelatedTopics(t *testing.T) {
	b := New()

	ch, cancel := b.Subscribe(TopicPlan)
	defer cancel()

	b.Publish(TopicMedications)

	select {
	case topic := <-ch:
		t.Fatalf("unexpected notification: %s", topic)
	default:
	}
}

func TestPublishDoesNotBlockOnSlowSubscriber(t *testing.T) {
	b := New()

	ch, cancel := b.Subscribe(TopicLogs)
	defer cancel()

	// Two publishes without a drain: the second coalesces away.
	b.Publish(TopicLogs)
	b.Publish(TopicLogs)

	assert.Equal(t, TopicLogs, <-ch)
	select {
	case <-ch:
		t.Fatal("expected coalesced notifications")
	default:
	}
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	b := New()

	ch, cancel := b.Subscribe(TopicOverrides)
	cancel()

	b.Publish(TopicOverrides)

	select {
	case <-ch:
		t.Fatal("notification after unsubscribe")
	default:
	}
}
