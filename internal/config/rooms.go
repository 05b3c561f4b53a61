package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/vovakirdan/roomcast-server/internal/core"
)

// roomsIndex is the global rooms file: a name and the per-room config
// documents to load.
type roomsIndex struct {
	Name  string   `json:"name"`
	Rooms []string `json:"rooms"`
}

// roomRecord is a single room config document.
type roomRecord struct {
	Name       string            `json:"name"`
	Prefix     string            `json:"prefix"`
	Type       string            `json:"type"`
	FetchURL   string            `json:"fetchURL"`
	Authorized []string          `json:"authorized"`
	Map        map[string]string `json:"map"`
}

// LoadRooms reads the global rooms file and every room document it
// lists, keyed by prefix. Bad documents are logged and skipped; a
// missing global file yields an empty map, not an error, so the relay
// can start with no rooms configured.
func LoadRooms(logger *zerolog.Logger, path string) (map[string]*core.Room, error) {
	rooms := make(map[string]*core.Room)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Warn().Str("path", path).Msg("rooms config not found, no rooms loaded")
			return rooms, nil
		}
		return nil, fmt.Errorf("read rooms config: %w", err)
	}

	var index roomsIndex
	if err := json.Unmarshal(data, &index); err != nil {
		return nil, fmt.Errorf("parse rooms config %s: %w", path, err)
	}
	if index.Name != "" {
		logger.Info().Str("name", index.Name).Msg("loading global room configuration")
	}

	base := filepath.Dir(path)
	for _, entry := range index.Rooms {
		roomPath := entry
		if !filepath.IsAbs(roomPath) {
			roomPath = filepath.Join(base, roomPath)
		}
		room, err := loadRoomRecord(roomPath)
		if err != nil {
			logger.Error().Err(err).Str("path", roomPath).Msg("skipping room config")
			continue
		}
		logger.Info().
			Str("prefix", room.Prefix).
			Stringer("kind", room.Kind).
			Int("authorized", max(len(room.Authorized), len(room.MessageMap))).
			Msg("room loaded")
		rooms[room.Prefix] = room
	}

	return rooms, nil
}

func loadRoomRecord(path string) (*core.Room, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read room config: %w", err)
	}

	var rec roomRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("parse room config: %w", err)
	}
	if rec.Prefix == "" {
		return nil, fmt.Errorf("room config missing prefix field")
	}

	room := &core.Room{
		Prefix:     rec.Prefix,
		Authorized: rec.Authorized,
		MessageMap: rec.Map,
	}

	switch rec.Type {
	case "broadcast":
		room.Kind = core.KindBroadcast
	case "group", "individual":
		if rec.FetchURL == "" {
			return nil, fmt.Errorf("room type %q requires a fetchURL field", rec.Type)
		}
		room.Kind = core.KindGroup
		if rec.Type == "individual" {
			room.Kind = core.KindIndividual
		}
		room.FetchURL = rec.FetchURL
	case "":
		return nil, fmt.Errorf("room config missing type field")
	default:
		return nil, fmt.Errorf("unknown room type %q", rec.Type)
	}

	return room, nil
}
