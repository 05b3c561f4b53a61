package core

import (
	"fmt"
	"testing"
)

func benchmarkBroadcast(b *testing.B, recipients int) {
	rooms := map[string]*Room{
		"bench": {Prefix: "bench", Kind: KindBroadcast},
	}
	reg := NewRegistry(newStubChecker(true, nil), nil)

	id, _ := Resolve(rooms, "bench")
	clients := make([]*Client, recipients)
	for i := range clients {
		clients[i] = NewClient(uint64(i + 1))
		reg.Register(clients[i])
		if err := reg.Join(b.Context(), id, rooms["bench"], clients[i]); err != nil {
			b.Fatalf("join: %v", err)
		}
	}

	// Drain all recipients so channel backpressure never drops payloads.
	for _, c := range clients {
		go func(cl *Client) {
			for range cl.Events {
			}
		}(c)
	}

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		reg.Broadcast("bench", "payload")
	}
}

func BenchmarkBroadcast(b *testing.B) {
	for _, n := range []int{10, 100, 500} {
		b.Run(fmt.Sprintf("recipients_%d", n), func(b *testing.B) {
			benchmarkBroadcast(b, n)
		})
	}
}
