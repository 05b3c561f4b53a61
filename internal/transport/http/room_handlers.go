package http

import (
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/vovakirdan/roomcast-server/internal/core"
)

// RoomHandlers exposes the configured room inventory and live
// membership counts. Read-only; rooms are defined in config files and
// groups live in the external authority, so there is nothing to mutate.
type RoomHandlers struct {
	registry *core.Registry
	rooms    map[string]*core.Room
	log      *zerolog.Logger
}

// NewRoomHandlers creates a new room handlers instance.
func NewRoomHandlers(registry *core.Registry, rooms map[string]*core.Room, logger *zerolog.Logger) *RoomHandlers {
	return &RoomHandlers{registry: registry, rooms: rooms, log: logger}
}

// RoomInfo describes one configured room.
type RoomInfo struct {
	Prefix     string `json:"prefix"`
	Kind       string `json:"kind"`
	Authorized int    `json:"authorized"`
	Mapped     int    `json:"mapped"`
}

// RoomsResponse is the /api/rooms response body.
type RoomsResponse struct {
	Rooms  []RoomInfo     `json:"rooms"`
	Active map[string]int `json:"active"`
}

// ListRooms handles GET /api/rooms.
func (h *RoomHandlers) ListRooms(c *gin.Context) {
	infos := make([]RoomInfo, 0, len(h.rooms))
	for _, room := range h.rooms {
		infos = append(infos, RoomInfo{
			Prefix:     room.Prefix,
			Kind:       room.Kind.String(),
			Authorized: len(room.Authorized),
			Mapped:     len(room.MessageMap),
		})
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Prefix < infos[j].Prefix })

	c.JSON(http.StatusOK, RoomsResponse{
		Rooms:  infos,
		Active: h.registry.Stats(),
	})
}
