package core

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
)

// Checker decides whether a group currently exists in the external
// authority that owns group lifecycles.
type Checker interface {
	Exists(ctx context.Context, baseURL, group string) (bool, error)
}

// entry is a live room/group: the config snapshot taken at creation and
// the currently joined clients.
type entry struct {
	cfg     *Room
	members map[uint64]*Client
}

// pending marks an in-flight existence check for a full name. Waiters
// block on done and then read the shared outcome; exists and err are
// written before done is closed.
type pending struct {
	done   chan struct{}
	exists bool
	err    error
}

// Registry tracks which clients belong to which room/groups. It keeps
// two indexes, full name -> entry and client id -> full names, which
// are never observed inconsistent: every mutation updates both under
// one mutex. The remote existence check runs outside the lock behind a
// per-name pending marker, so exactly one check is in flight per full
// name and a slow authority only stalls joins to its own group.
type Registry struct {
	mu      sync.Mutex
	rooms   map[string]*entry
	clients map[uint64]map[string]struct{}
	pending map[string]*pending

	checker Checker
	log     *zerolog.Logger
}

// NewRegistry constructs an empty registry.
func NewRegistry(checker Checker, logger *zerolog.Logger) *Registry {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return &Registry{
		rooms:   make(map[string]*entry),
		clients: make(map[uint64]map[string]struct{}),
		pending: make(map[string]*pending),
		checker: checker,
		log:     logger,
	}
}

// Register records a client at connection accept, before any join, so
// removal is well-defined whatever happens to the connection afterwards.
func (r *Registry) Register(c *Client) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.clients[c.ID]; !ok {
		r.clients[c.ID] = make(map[string]struct{})
	}
}

// Join admits a client to the room/group named by id. An existing entry
// is reused without re-validation; a new broadcast room is created
// unconditionally; a new group runs the remote existence check first.
// Concurrent first-joins to one full name share a single check, while
// joins to other names proceed unimpeded. Returns ErrAdmissionDenied
// when the check refuses or fails; the caller keeps the connection open
// either way.
func (r *Registry) Join(ctx context.Context, id Identity, cfg *Room, c *Client) error {
	r.mu.Lock()
	if _, ok := r.clients[c.ID]; !ok {
		r.clients[c.ID] = make(map[string]struct{})
	}

	for {
		if e, ok := r.rooms[id.FullName]; ok {
			r.addMemberLocked(e, id.FullName, c)
			r.mu.Unlock()
			return nil
		}
		if cfg.Broadcastable() {
			r.createLocked(id.FullName, cfg, c)
			r.mu.Unlock()
			return nil
		}
		p, inflight := r.pending[id.FullName]
		if !inflight {
			break
		}

		// Another join already asked the authority; share its outcome.
		r.mu.Unlock()
		select {
		case <-p.done:
		case <-ctx.Done():
			return ctx.Err()
		}
		if p.err != nil || !p.exists {
			return ErrAdmissionDenied
		}
		r.mu.Lock()
		if _, ok := r.clients[c.ID]; !ok {
			// Removed while waiting; do not resurrect the index entry.
			r.mu.Unlock()
			return ErrAdmissionDenied
		}
	}

	// First admission attempt for this name: mark it pending and ask
	// the authority with no lock held.
	p := &pending{done: make(chan struct{})}
	r.pending[id.FullName] = p
	r.mu.Unlock()

	exists, err := r.checker.Exists(ctx, id.FetchURL, id.Group)

	r.mu.Lock()
	defer r.mu.Unlock()
	p.exists, p.err = exists, err
	delete(r.pending, id.FullName)
	close(p.done)

	if err != nil {
		r.log.Warn().Err(err).
			Str("full_name", id.FullName).
			Str("url", id.FetchURL).
			Msg("group existence check failed, join denied")
		return fmt.Errorf("%w: %v", ErrAdmissionDenied, err)
	}
	if !exists {
		r.log.Info().
			Str("full_name", id.FullName).
			Msg("group does not exist, join denied")
		return ErrAdmissionDenied
	}
	if _, ok := r.clients[c.ID]; !ok {
		r.log.Debug().Uint64("client_id", c.ID).Str("full_name", id.FullName).
			Msg("client gone before admission completed")
		return ErrAdmissionDenied
	}
	if e, ok := r.rooms[id.FullName]; ok {
		r.addMemberLocked(e, id.FullName, c)
		return nil
	}
	r.createLocked(id.FullName, cfg, c)
	return nil
}

// Remove deletes a client from both indexes and drops any room entry it
// leaves empty. Idempotent; removing an unknown client is a no-op.
func (r *Registry) Remove(clientID uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.removeLocked(clientID)
}

// TeardownIfInvalid re-validates the group named by addr and, when the
// authority reports it gone or cannot be reached, evicts every member
// and deletes the entry. Broadcast rooms and unresolvable addresses are
// ignored. Eviction is one atomic section: the member snapshot used for
// close notifications is exactly the set removed.
func (r *Registry) TeardownIfInvalid(ctx context.Context, rooms map[string]*Room, addr string) {
	id, err := Resolve(rooms, addr)
	if err != nil {
		r.log.Warn().Err(err).Str("addr", addr).Msg("teardown for unresolvable address ignored")
		return
	}
	if rooms[id.Room].Broadcastable() {
		r.log.Warn().Str("room", id.Room).Msg("teardown for broadcast room ignored")
		return
	}

	exists, err := r.checker.Exists(ctx, id.FetchURL, id.Group)
	if err != nil {
		// An unreachable authority must not keep stale groups alive.
		r.log.Warn().Err(err).Str("full_name", id.FullName).
			Msg("revalidation failed, treating group as gone")
	} else if exists {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.rooms[id.FullName]
	if !ok {
		return
	}
	members := make([]*Client, 0, len(e.members))
	for _, c := range e.members {
		members = append(members, c)
	}
	for _, c := range members {
		// Closed is 1-buffered and separate from the payload queue, so
		// the signal lands even when the member's Events buffer is full.
		select {
		case c.Closed <- struct{}{}:
		default:
		}
		r.removeLocked(c.ID)
	}
	r.log.Info().Str("full_name", id.FullName).Int("evicted", len(members)).
		Msg("group torn down")
}

// Broadcast fans payload out to every current member of fullName. The
// member set is snapshotted so no send happens under the lock. Slow
// consumers get payloads dropped rather than stalling the rest.
func (r *Registry) Broadcast(fullName, payload string) {
	r.mu.Lock()
	e, ok := r.rooms[fullName]
	if !ok {
		r.mu.Unlock()
		return
	}
	members := make([]*Client, 0, len(e.members))
	for _, c := range e.members {
		members = append(members, c)
	}
	r.mu.Unlock()

	for _, c := range members {
		select {
		case c.Events <- Event{Payload: payload}:
		default:
		}
	}
}

// Stats reports current member counts per live room/group.
func (r *Registry) Stats() map[string]int {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string]int, len(r.rooms))
	for name, e := range r.rooms {
		out[name] = len(e.members)
	}
	return out
}

func (r *Registry) addMemberLocked(e *entry, fullName string, c *Client) {
	e.members[c.ID] = c
	r.clients[c.ID][fullName] = struct{}{}
}

func (r *Registry) createLocked(fullName string, cfg *Room, c *Client) {
	e := &entry{cfg: cfg, members: map[uint64]*Client{c.ID: c}}
	r.rooms[fullName] = e
	r.clients[c.ID][fullName] = struct{}{}
	r.log.Debug().Str("full_name", fullName).Uint64("client_id", c.ID).Msg("room entry created")
}

func (r *Registry) removeLocked(clientID uint64) {
	names, ok := r.clients[clientID]
	if !ok {
		return
	}
	delete(r.clients, clientID)
	for name := range names {
		e, ok := r.rooms[name]
		if !ok {
			continue
		}
		delete(e.members, clientID)
		if len(e.members) == 0 {
			delete(r.rooms, name)
		}
	}
}
