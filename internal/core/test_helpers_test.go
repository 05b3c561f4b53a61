package core

import (
	"context"
	"sync/atomic"
	"testing"
)

// stubChecker answers existence checks from a swappable function and
// counts how often it was asked.
type stubChecker struct {
	calls  atomic.Int32
	answer atomic.Value // func(baseURL, group string) (bool, error)
}

func newStubChecker(exists bool, err error) *stubChecker {
	s := &stubChecker{}
	s.set(func(string, string) (bool, error) { return exists, err })
	return s
}

func (s *stubChecker) set(fn func(baseURL, group string) (bool, error)) {
	s.answer.Store(fn)
}

func (s *stubChecker) Exists(_ context.Context, baseURL, group string) (bool, error) {
	s.calls.Add(1)
	fn := s.answer.Load().(func(string, string) (bool, error))
	return fn(baseURL, group)
}

// checkInvariants verifies the two indexes agree: every membership
// listed for a client has a room entry containing that client and vice
// versa, and no room entry is empty.
func checkInvariants(t *testing.T, r *Registry) {
	t.Helper()

	r.mu.Lock()
	defer r.mu.Unlock()

	for id, names := range r.clients {
		for name := range names {
			e, ok := r.rooms[name]
			if !ok {
				t.Fatalf("client %d lists %q but no room entry exists", id, name)
			}
			if _, ok := e.members[id]; !ok {
				t.Fatalf("client %d lists %q but is not in its member set", id, name)
			}
		}
	}
	for name, e := range r.rooms {
		if len(e.members) == 0 {
			t.Fatalf("room entry %q has an empty member set", name)
		}
		for id := range e.members {
			names, ok := r.clients[id]
			if !ok {
				t.Fatalf("room %q holds client %d missing from the clients index", name, id)
			}
			if _, ok := names[name]; !ok {
				t.Fatalf("room %q holds client %d that does not list it", name, id)
			}
		}
	}
}

func memberCount(r *Registry, fullName string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.rooms[fullName]
	if !ok {
		return 0
	}
	return len(e.members)
}

func hasClient(r *Registry, id uint64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.clients[id]
	return ok
}

func mustJoin(t *testing.T, r *Registry, rooms map[string]*Room, addr string, c *Client) {
	t.Helper()
	id, err := Resolve(rooms, addr)
	if err != nil {
		t.Fatalf("resolve %q: %v", addr, err)
	}
	if err := r.Join(context.Background(), id, rooms[id.Room], c); err != nil {
		t.Fatalf("join %q: %v", addr, err)
	}
}

// drainPayloads empties a client's outbound channel and returns the
// payload texts received, in order.
func drainPayloads(c *Client) []string {
	var out []string
	for {
		select {
		case ev := <-c.Events:
			out = append(out, ev.Payload)
		default:
			return out
		}
	}
}

func wasClosed(c *Client) bool {
	select {
	case <-c.Closed:
		return true
	default:
		return false
	}
}
