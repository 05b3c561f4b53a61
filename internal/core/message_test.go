package core

import (
	"errors"
	"testing"
)

func TestParseDirectiveSplitsAndTrims(t *testing.T) {
	d, err := ParseDirective(testRooms(), "lobby:  hello there  ")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if d.Payload != "hello there" {
		t.Fatalf("payload not trimmed: %q", d.Payload)
	}
	if d.Identity.FullName != "lobby" {
		t.Fatalf("unexpected identity: %+v", d.Identity)
	}
}

func TestParseDirectiveSplitsAtFirstSeparator(t *testing.T) {
	d, err := ParseDirective(testRooms(), "lobby:a:b:c")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if d.Payload != "a:b:c" {
		t.Fatalf("expected payload past first separator, got %q", d.Payload)
	}
}

func TestParseDirectiveNoSeparator(t *testing.T) {
	if _, err := ParseDirective(testRooms(), "just some text"); !errors.Is(err, ErrNoDirective) {
		t.Fatalf("expected ErrNoDirective, got %v", err)
	}
}

func TestParseDirectiveResolutionFailure(t *testing.T) {
	if _, err := ParseDirective(testRooms(), "ghost:hello"); !errors.Is(err, ErrUnknownRoom) {
		t.Fatalf("expected ErrUnknownRoom, got %v", err)
	}
}

func TestAuthorizationMatrix(t *testing.T) {
	rooms := map[string]*Room{
		"open":   {Prefix: "open", Kind: KindBroadcast},
		"strict": {Prefix: "strict", Kind: KindBroadcast, Authorized: []string{"ping"}},
		"mapped": {Prefix: "mapped", Kind: KindBroadcast, MessageMap: map[string]string{"ping": "PONG"}},
		"both":   {Prefix: "both", Kind: KindBroadcast, Authorized: []string{"ping"}, MessageMap: map[string]string{"raise": "all in"}},
	}

	tests := []struct {
		text    string
		want    string
		allowed bool
	}{
		{"open:anything", "anything", true},
		{"strict:ping", "ping", true},
		{"strict:pong", "", false},
		{"mapped:ping", "PONG", true},
		{"mapped:other", "", false},
		{"both:ping", "ping", true},
		{"both:raise", "all in", true},
		{"both:fold", "", false},
	}

	for _, tt := range tests {
		d, err := ParseDirective(rooms, tt.text)
		if tt.allowed {
			if err != nil {
				t.Fatalf("parse %q: %v", tt.text, err)
			}
			if d.Payload != tt.want {
				t.Fatalf("parse %q: payload %q, want %q", tt.text, d.Payload, tt.want)
			}
			continue
		}
		if !errors.Is(err, ErrUnauthorized) {
			t.Fatalf("parse %q: expected ErrUnauthorized, got %v", tt.text, err)
		}
	}
}
