package core

// Event is a payload queued on a client's outbound channel for delivery
// as a text message.
type Event struct {
	Payload string
}
