package mqueue

import "errors"

// QueueListing is the wire shape of the queues-collection response.
type QueueListing struct {
	Queues []QueueEntry `json:"queues" yaml:"queues"`
}

// QueueEntry is one element of the queues-collection response.
type QueueEntry struct {
	Name     string                 `json:"name"     yaml:"name"`
	Href     string                 `json:"href"     yaml:"href"`
	Metadata map[string]interface{} `json:"metadata" yaml:"metadata"`
}

// QueueIterator lazily yields queue handles in the order returned by the
// service. The underlying fetch is deferred until the first Next call; the
// iterator is finite and not restartable.
type QueueIterator struct {
	fetch   func() ([]*Queue, error)
	fetched bool
	items   []*Queue
	index   int
}

// NewQueueIterator creates an iterator over the queues produced by fetch.
// fetch is invoked at most once.
func NewQueueIterator(fetch func() ([]*Queue, error)) *QueueIterator {
	return &QueueIterator{fetch: fetch}
}

// HasNext reports whether another queue is available. Before the first fetch
// it returns true; a fetch failure is surfaced by Next.
func (it *QueueIterator) HasNext() bool {
	if !it.fetched {
		return true
	}

	return it.index < len(it.items)
}

// Next returns the next queue handle. It returns ErrNoMoreItems when the
// listing is exhausted.
func (it *QueueIterator) Next() (*Queue, error) {
	if !it.fetched {
		it.fetched = true

		items, err := it.fetch()
		if err != nil {
			return nil, err
		}

		it.items = items
	}

	if it.index >= len(it.items) {
		return nil, ErrNoMoreItems
	}

	queue := it.items[it.index]
	it.index++

	return queue, nil
}

// Collect drains the iterator into a slice, preserving order.
func (it *QueueIterator) Collect() ([]*Queue, error) {
	var queues []*Queue

	for it.HasNext() {
		queue, err := it.Next()
		if err != nil {
			if errors.Is(err, ErrNoMoreItems) {
				break
			}

			return nil, err
		}

		queues = append(queues, queue)
	}

	return queues, nil
}
