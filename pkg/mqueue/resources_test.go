package mqueue_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/mqueue/pkg/mqueue"
)

// MockQueueOperations for testing.
type MockQueueOperations struct {
	deletedName  string
	metadataName string
	metadata     map[string]interface{}
	err          error
}

func (m *MockQueueOperations) DeleteQueue(ctx context.Context, queueName string, headers map[string]string) error {
	m.deletedName = queueName

	return m.err
}

func (m *MockQueueOperations) GetQueueMetadata(ctx context.Context, queueName string, headers map[string]string) (map[string]interface{}, error) {
	m.metadataName = queueName

	return m.metadata, m.err
}

func TestQueue_FetchMetadata(t *testing.T) {
	t.Parallel()

	conn := &MockQueueOperations{
		metadata: map[string]interface{}{"messages": map[string]interface{}{"ttl": 120}},
	}

	queue := mqueue.NewQueue(conn, "/queues/events", "events", map[string]interface{}{"stale": true})

	metadata, err := queue.FetchMetadata(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, "events", conn.metadataName)
	assert.Contains(t, metadata, "messages")

	// The handle keeps whatever metadata it was constructed with.
	assert.Equal(t, map[string]interface{}{"stale": true}, queue.Metadata)
}

func TestQueue_Delete(t *testing.T) {
	t.Parallel()

	t.Run("delegates to the session", func(t *testing.T) {
		t.Parallel()

		conn := &MockQueueOperations{}
		queue := mqueue.NewQueue(conn, "/queues/events", "events", nil)

		require.NoError(t, queue.Delete(context.Background(), nil))
		assert.Equal(t, "events", conn.deletedName)
	})

	t.Run("propagates not found", func(t *testing.T) {
		t.Parallel()

		conn := &MockQueueOperations{err: &mqueue.QueueNotFoundError{Name: "events"}}
		queue := mqueue.NewQueue(conn, "/queues/events", "events", nil)

		err := queue.Delete(context.Background(), nil)
		require.Error(t, err)
		assert.True(t, mqueue.IsNotFound(err))
	})
}
