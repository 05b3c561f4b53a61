package http

import (
	"context"
	"errors"
	"io"
	stdhttp "net/http"
	"strings"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/vovakirdan/roomcast-server/internal/core"
	"github.com/vovakirdan/roomcast-server/internal/utils"
)

// WSHandler upgrades HTTP connections and bridges them to the registry.
type WSHandler struct {
	registry *core.Registry
	rooms    map[string]*core.Room
	log      *zerolog.Logger
}

// NewWSHandler builds a new WebSocket handler.
func NewWSHandler(registry *core.Registry, rooms map[string]*core.Room, logger *zerolog.Logger) stdhttp.Handler {
	return &WSHandler{registry: registry, rooms: rooms, log: logger}
}

func (h *WSHandler) ServeHTTP(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	ctx := r.Context()

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true,
	})
	if err != nil {
		h.log.Error().Err(err).Msg("ws accept error")
		return
	}
	defer conn.Close(websocket.StatusInternalError, "internal error")

	client := core.NewClient(utils.NextClientID())
	connID := uuid.NewString()
	h.log.Info().Uint64("client_id", client.ID).Str("conn", connID).Msg("connection established")

	h.registry.Register(client)
	defer h.registry.Remove(client.ID)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	errCh := make(chan error, 2)
	go func() {
		errCh <- h.readLoop(ctx, conn, client)
	}()
	go func() {
		errCh <- h.writeLoop(ctx, conn, client)
	}()

	err = <-errCh
	cancel() // stop the other goroutine
	<-errCh

	h.log.Info().Uint64("client_id", client.ID).Str("conn", connID).Msg("connection ended")

	status := websocket.StatusNormalClosure
	reason := "closing"
	if err != nil && !errors.Is(err, context.Canceled) {
		if errors.Is(err, io.EOF) {
			err = nil
		}
		if s := websocket.CloseStatus(err); s != 0 {
			status = s
		}
		if status == websocket.StatusNormalClosure || status == websocket.StatusGoingAway {
			err = nil
		}
		if err != nil {
			if status == websocket.StatusNormalClosure {
				status = websocket.StatusInternalError
			}
			reason = err.Error()
			h.log.Warn().Err(err).Msg("ws connection closed with error")
		}
	}

	conn.Close(status, reason)
}

func (h *WSHandler) readLoop(ctx context.Context, conn *websocket.Conn, client *core.Client) error {
	for {
		typ, data, err := conn.Read(ctx)
		if err != nil {
			return err
		}
		if typ != websocket.MessageText {
			continue
		}
		text := string(data)
		h.log.Trace().Uint64("client_id", client.ID).Str("text", text).Msg("received")

		if strings.HasPrefix(text, core.TeardownSentinel) {
			h.registry.TeardownIfInvalid(ctx, h.rooms, strings.TrimPrefix(text, core.TeardownSentinel))
			h.log.Warn().Uint64("client_id", client.ID).Msg("closing connection: group is closing")
			return nil
		}

		directive, err := core.ParseDirective(h.rooms, text)
		if err != nil {
			h.log.Warn().Err(err).Uint64("client_id", client.ID).Msg("closing connection: unknown or unauthorized message")
			return nil
		}

		if err := h.registry.Join(ctx, directive.Identity, directive.Config, client); err != nil {
			// Denied joins are silent for the client; the broadcast
			// below is a no-op when no room entry exists.
			h.log.Debug().Err(err).
				Uint64("client_id", client.ID).
				Str("full_name", directive.Identity.FullName).
				Msg("join denied")
		}
		h.registry.Broadcast(directive.Identity.FullName, directive.Payload)
	}
}

func (h *WSHandler) writeLoop(ctx context.Context, conn *websocket.Conn, client *core.Client) error {
	for {
		select {
		case <-client.Closed:
			h.log.Info().Uint64("client_id", client.ID).Msg("closing connection: evicted from group")
			return nil
		case ev := <-client.Events:
			if err := conn.Write(ctx, websocket.MessageText, []byte(ev.Payload)); err != nil {
				h.log.Error().Err(err).Uint64("client_id", client.ID).Msg("write ws event")
				return err
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
