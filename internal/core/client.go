package core

// eventBuffer bounds a client's outbound queue. Payloads for a consumer
// this far behind are dropped rather than blocking the registry.
const eventBuffer = 64

// Client is a relay participant as seen by the core layer. The Events
// channel is consumed by exactly one writer task per connection; the
// registry only enqueues, it never reads or closes the channel. Closed
// is a separate signal so an eviction reaches the writer task even when
// the payload queue is saturated.
type Client struct {
	ID     uint64
	Events chan Event
	Closed chan struct{}
}

// NewClient constructs a client with initialized channels.
func NewClient(id uint64) *Client {
	return &Client{
		ID:     id,
		Events: make(chan Event, eventBuffer),
		Closed: make(chan struct{}, 1),
	}
}
