package core

import (
	"errors"
	"testing"
)

func testRooms() map[string]*Room {
	return map[string]*Room{
		"lobby": {Prefix: "lobby", Kind: KindBroadcast},
		"match": {Prefix: "match", Kind: KindGroup, FetchURL: "http://authority/groups/"},
		"duo":   {Prefix: "duo", Kind: KindIndividual, FetchURL: "http://authority/pairs/"},
	}
}

func TestResolveBroadcastRoom(t *testing.T) {
	id, err := Resolve(testRooms(), "lobby")
	if err != nil {
		t.Fatalf("resolve lobby: %v", err)
	}
	if id.FullName != "lobby" || id.Room != "lobby" || id.Group != "" || id.FetchURL != "" {
		t.Fatalf("unexpected identity: %+v", id)
	}
}

func TestResolveGroupRoom(t *testing.T) {
	id, err := Resolve(testRooms(), "match/g42")
	if err != nil {
		t.Fatalf("resolve match/g42: %v", err)
	}
	if id.FullName != "match/g42" || id.Room != "match" || id.Group != "g42" {
		t.Fatalf("unexpected identity: %+v", id)
	}
	if id.FetchURL != "http://authority/groups/" {
		t.Fatalf("fetch URL not carried: %+v", id)
	}
}

func TestResolveIndividualRoomBehavesLikeGroup(t *testing.T) {
	id, err := Resolve(testRooms(), "duo/alice")
	if err != nil {
		t.Fatalf("resolve duo/alice: %v", err)
	}
	if id.FullName != "duo/alice" || id.FetchURL != "http://authority/pairs/" {
		t.Fatalf("unexpected identity: %+v", id)
	}
}

func TestResolveErrors(t *testing.T) {
	tests := []struct {
		name string
		addr string
		want error
	}{
		{"too many segments", "match/g1/extra", ErrMalformedAddress},
		{"empty group segment", "match/", ErrMalformedAddress},
		{"unknown room", "ghost", ErrUnknownRoom},
		{"unknown room with group", "ghost/g1", ErrUnknownRoom},
		{"bare group room", "match", ErrGroupSuffixRequired},
		{"bare individual room", "duo", ErrGroupSuffixRequired},
		{"broadcast with group", "lobby/g1", ErrBroadcastRoomNoGroup},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Resolve(testRooms(), tt.addr); !errors.Is(err, tt.want) {
				t.Fatalf("resolve %q: got %v, want %v", tt.addr, err, tt.want)
			}
		})
	}
}

func TestResolveRoundTrip(t *testing.T) {
	rooms := testRooms()
	for _, addr := range []string{"match/g1", "match/other", "duo/bob"} {
		id, err := Resolve(rooms, addr)
		if err != nil {
			t.Fatalf("resolve %q: %v", addr, err)
		}
		if id.FullName != addr {
			t.Fatalf("round trip %q: got full name %q", addr, id.FullName)
		}
	}
}
