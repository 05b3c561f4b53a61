package core

import "strings"

// DirectiveSeparator splits the address prefix from the payload.
const DirectiveSeparator = ":"

// TeardownSentinel marks a message as a group teardown directive.
const TeardownSentinel = "-"

// Directive is a routed inbound message: where it goes and what to send.
// This is the only way payloads enter the broadcast path.
type Directive struct {
	Identity Identity
	Config   *Room
	// Payload is the text to broadcast, after any rewrite.
	Payload string
}

// ParseDirective splits raw inbound text into an address and a payload,
// resolves the address and applies the room's authorization and rewrite
// rules. The payload is trimmed of surrounding whitespace.
//
// Callers treat any error as "no action"; ErrNoDirective and
// ErrUnauthorized are the ones expected to also close the connection.
func ParseDirective(rooms map[string]*Room, text string) (*Directive, error) {
	addr, payload, found := strings.Cut(text, DirectiveSeparator)
	if !found {
		return nil, ErrNoDirective
	}
	payload = strings.TrimSpace(payload)

	id, err := Resolve(rooms, addr)
	if err != nil {
		return nil, err
	}

	cfg := rooms[id.Room]
	if !cfg.Authorizes(payload) {
		return nil, ErrUnauthorized
	}

	return &Directive{
		Identity: id,
		Config:   cfg,
		Payload:  cfg.Rewrite(payload),
	}, nil
}
