// Command ws_probe sends one directive to a running relay and prints
// whatever comes back, for manual smoke testing.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/coder/websocket"
)

func main() {
	if err := run(); err != nil {
		log.Printf("ws_probe: %v", err)
		os.Exit(1)
	}
}

func run() error {
	addr := flag.String("addr", "ws://localhost:8080/ws", "WebSocket address")
	target := flag.String("target", "lobby", "room or room/group address")
	payload := flag.String("payload", "ping", "payload to relay")
	teardown := flag.Bool("teardown", false, "send a teardown directive for -target instead of a payload")
	timeout := flag.Duration("timeout", 5*time.Second, "total timeout for the run")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	conn, _, err := websocket.Dial(ctx, *addr, nil)
	if err != nil {
		return fmt.Errorf("dial: %w", err)
	}
	defer conn.Close(websocket.StatusNormalClosure, "bye")

	directive := *target + ":" + *payload
	if *teardown {
		directive = "-" + *target
	}
	if err := conn.Write(ctx, websocket.MessageText, []byte(directive)); err != nil {
		return fmt.Errorf("send: %w", err)
	}
	fmt.Printf("sent %q\n", directive)

	for {
		typ, data, err := conn.Read(ctx)
		if err != nil {
			return fmt.Errorf("read: %w", err)
		}
		if typ != websocket.MessageText {
			continue
		}
		fmt.Printf("received %q\n", string(data))
		if !*teardown {
			return nil
		}
	}
}
