package core

import "fmt"

// RoomKind tells how admission to a room is decided.
type RoomKind int

const (
	// KindBroadcast rooms admit everyone and take no group suffix.
	KindBroadcast RoomKind = iota
	// KindGroup rooms are partitioned into groups whose existence is
	// confirmed against a remote endpoint before the first join.
	KindGroup
	// KindIndividual rooms behave like group rooms at runtime; the
	// distinction only matters to whoever authors the configuration.
	KindIndividual
)

func (k RoomKind) String() string {
	switch k {
	case KindBroadcast:
		return "broadcast"
	case KindGroup:
		return "group"
	case KindIndividual:
		return "individual"
	default:
		return fmt.Sprintf("unknown(%d)", int(k))
	}
}

// Room is the static configuration of a single room. Loaded once at
// startup and shared by reference; never mutated afterwards.
type Room struct {
	// Prefix is the room's canonical name and its key in the config map.
	Prefix string
	Kind   RoomKind
	// FetchURL is the base URL for remote group existence checks.
	// Empty for broadcast rooms.
	FetchURL string
	// Authorized lists the exact payloads allowed in this room.
	// Empty means no restriction unless MessageMap is non-empty.
	Authorized []string
	// MessageMap rewrites a received payload into the payload actually
	// broadcast. A key's presence also counts as authorization.
	MessageMap map[string]string
}

// Broadcastable reports whether the room admits clients without a
// remote existence check.
func (r *Room) Broadcastable() bool {
	return r.Kind == KindBroadcast
}

// Authorizes reports whether payload may be relayed through this room.
func (r *Room) Authorizes(payload string) bool {
	if len(r.Authorized) == 0 && len(r.MessageMap) == 0 {
		return true
	}
	for _, allowed := range r.Authorized {
		if allowed == payload {
			return true
		}
	}
	_, mapped := r.MessageMap[payload]
	return mapped
}

// Rewrite returns the payload to broadcast for a received payload.
func (r *Room) Rewrite(payload string) string {
	if out, ok := r.MessageMap[payload]; ok {
		return out
	}
	return payload
}
