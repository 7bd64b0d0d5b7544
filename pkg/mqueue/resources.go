package mqueue

import "context"

// Queue is an in-memory handle for a remote queue. It is never mutated after
// construction and carries a non-owning reference to the session that
// produced it for follow-up operations.
type Queue struct {
	Name     string                 `json:"name"     yaml:"name"`
	Href     string                 `json:"href"     yaml:"href"`
	Metadata map[string]interface{} `json:"metadata" yaml:"metadata"`

	conn QueueOperations
}

// NewQueue creates a queue handle bound to the given session.
func NewQueue(conn QueueOperations, href, name string, metadata map[string]interface{}) *Queue {
	return &Queue{
		Name:     name,
		Href:     href,
		Metadata: metadata,
		conn:     conn,
	}
}

// FetchMetadata re-reads the queue's metadata from the service. The Metadata
// field keeps the value captured at construction time.
func (q *Queue) FetchMetadata(ctx context.Context, headers map[string]string) (map[string]interface{}, error) {
	return q.conn.GetQueueMetadata(ctx, q.Name, headers)
}

// Delete removes the queue from the service. The handle itself has no
// server-side lifecycle: dropping it implies nothing.
func (q *Queue) Delete(ctx context.Context, headers map[string]string) error {
	return q.conn.DeleteQueue(ctx, q.Name, headers)
}

// Message is an in-memory handle for a message posted to a queue.
type Message struct {
	Href string                 `json:"href" yaml:"href"`
	TTL  int                    `json:"ttl"  yaml:"ttl"`
	Body map[string]interface{} `json:"body" yaml:"body"`

	conn QueueOperations
}

// NewMessage creates a message handle bound to the given session.
func NewMessage(conn QueueOperations, href string, ttl int, body map[string]interface{}) *Message {
	return &Message{Href: href, TTL: ttl, Body: body, conn: conn}
}

// Claim is an in-memory handle for a claim on a batch of messages.
type Claim struct {
	ID   string    `json:"id"   yaml:"id"`
	Href string    `json:"href" yaml:"href"`
	TTL  int       `json:"ttl"  yaml:"ttl"`
	Msgs []Message `json:"messages,omitempty" yaml:"messages,omitempty"`

	conn QueueOperations
}

// NewClaim creates a claim handle bound to the given session.
func NewClaim(conn QueueOperations, href, id string, ttl int) *Claim {
	return &Claim{ID: id, Href: href, TTL: ttl, conn: conn}
}

// Action is an in-memory handle for a server-side action.
type Action struct {
	ID   string `json:"id"   yaml:"id"`
	Href string `json:"href" yaml:"href"`

	conn QueueOperations
}

// NewAction creates an action handle bound to the given session.
func NewAction(conn QueueOperations, href, id string) *Action {
	return &Action{ID: id, Href: href, conn: conn}
}
