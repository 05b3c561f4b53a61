package core

import "errors"

var (
	// ErrMalformedAddress means the address had more than two segments,
	// or a trailing separator with no group after it.
	ErrMalformedAddress = errors.New("malformed address")
	// ErrUnknownRoom means the room name is not in the configuration.
	ErrUnknownRoom = errors.New("unknown room")
	// ErrGroupSuffixRequired means a non-broadcast room was addressed bare.
	ErrGroupSuffixRequired = errors.New("group suffix required")
	// ErrBroadcastRoomNoGroup means a broadcast room was given a group suffix.
	ErrBroadcastRoomNoGroup = errors.New("broadcast room takes no group")
	// ErrNoDirective means the message has no address/payload separator.
	ErrNoDirective = errors.New("not a directive")
	// ErrUnauthorized means the payload failed the room's authorization rules.
	ErrUnauthorized = errors.New("unauthorized payload")
	// ErrAdmissionDenied means the remote existence check refused or failed;
	// the client is not joined but the connection stays open.
	ErrAdmissionDenied = errors.New("admission denied")
)
