package href_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/mqueue/internal/href"
	"github.com/fivetwenty-io/mqueue/pkg/mqueue"
)

func TestExpand(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		template      string
		substitutions map[string]string
		expected      string
	}{
		{
			name:          "single placeholder",
			template:      "/queues/{queue_name}",
			substitutions: map[string]string{"queue_name": "events"},
			expected:      "/queues/events",
		},
		{
			name:          "nested placeholders",
			template:      "/queues/{queue_name}/messages/{message_id}",
			substitutions: map[string]string{"queue_name": "events", "message_id": "50b68a50d6f5b8c8a7c62b01"},
			expected:      "/queues/events/messages/50b68a50d6f5b8c8a7c62b01",
		},
		{
			name:          "no placeholders",
			template:      "/queues",
			substitutions: nil,
			expected:      "/queues",
		},
		{
			name:          "value is path escaped",
			template:      "/queues/{queue_name}",
			substitutions: map[string]string{"queue_name": "a/b c"},
			expected:      "/queues/a%2Fb%20c",
		},
		{
			name:          "unused substitutions are ignored",
			template:      "/actions/{action_id}",
			substitutions: map[string]string{"action_id": "7", "queue_name": "events"},
			expected:      "/actions/7",
		},
	}

	for _, testCase := range tests {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			result, err := href.Expand(testCase.template, testCase.substitutions)
			require.NoError(t, err)
			assert.Equal(t, testCase.expected, result)
			assert.False(t, strings.ContainsAny(result, "{}"), "no placeholders may remain")
		})
	}
}

func TestExpand_MissingSubstitution(t *testing.T) {
	t.Parallel()

	_, err := href.Expand("/queues/{queue_name}", map[string]string{"message_id": "1"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, mqueue.ErrMissingSubstitution))
	assert.Contains(t, err.Error(), "queue_name")

	// Failure is deterministic on repeat calls.
	_, err2 := href.Expand("/queues/{queue_name}", map[string]string{"message_id": "1"})
	require.Error(t, err2)
	assert.Equal(t, err.Error(), err2.Error())
}

func TestExpand_Repeatable(t *testing.T) {
	t.Parallel()

	template := "/queues/{queue_name}/messages"
	subs := map[string]string{"queue_name": "events"}

	first, err := href.Expand(template, subs)
	require.NoError(t, err)

	second, err := href.Expand(template, subs)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, "/queues/{queue_name}/messages", template)
}
