package core

import "strings"

// AddressSeparator splits a room name from its group suffix.
const AddressSeparator = "/"

// Identity is a validated room/group address. Produced fresh by Resolve
// on every message, never stored or mutated.
type Identity struct {
	// FullName is the canonical registry key: the bare room name for
	// broadcast rooms, "room/group" otherwise.
	FullName string
	Room     string
	// Group is empty for broadcast rooms.
	Group string
	// FetchURL is carried only for non-broadcast kinds.
	FetchURL string
}

// Resolve parses a raw address against the room configuration.
//
// A bare name must be a configured broadcast room. A "room/group" pair
// must name a configured non-broadcast room. Pure function; used by both
// the message pipeline and teardown so both share the same addressing.
func Resolve(rooms map[string]*Room, addr string) (Identity, error) {
	parts := strings.Split(addr, AddressSeparator)
	if len(parts) > 2 {
		return Identity{}, ErrMalformedAddress
	}
	if len(parts) == 2 && parts[1] == "" {
		// A trailing separator would send the existence check to the
		// bare fetch URL; reject it outright.
		return Identity{}, ErrMalformedAddress
	}

	room, ok := rooms[parts[0]]
	if !ok {
		return Identity{}, ErrUnknownRoom
	}

	if len(parts) == 1 {
		if !room.Broadcastable() {
			return Identity{}, ErrGroupSuffixRequired
		}
		return Identity{FullName: room.Prefix, Room: room.Prefix}, nil
	}

	if room.Broadcastable() {
		return Identity{}, ErrBroadcastRoomNoGroup
	}
	return Identity{
		FullName: room.Prefix + AddressSeparator + parts[1],
		Room:     room.Prefix,
		Group:    parts[1],
		FetchURL: room.FetchURL,
	}, nil
}
