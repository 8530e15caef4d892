package socket

import (
	"context"
	"encoding/json"

	"github.com/DedS3t/speculation-backend/app/game"
	"github.com/DedS3t/speculation-backend/app/models"
	"github.com/sirupsen/logrus"
)

const namespace = "/"

// RoomBroadcaster is the part of the socket.io server the game needs.
type RoomBroadcaster interface {
	BroadcastToRoom(namespace, room, event string, args ...interface{}) bool
}

// Broadcaster forwards every game event to the game's room as "game-event".
type Broadcaster struct {
	rooms  RoomBroadcaster
	gameID string
	log    logrus.FieldLogger
}

var _ game.Observer = (*Broadcaster)(nil)

func NewBroadcaster(rooms RoomBroadcaster, gameID string, log logrus.FieldLogger) *Broadcaster {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Broadcaster{rooms: rooms, gameID: gameID, log: log}
}

func (b *Broadcaster) OnEvent(_ context.Context, ev game.Event) {
	if err := emitJSON(b.rooms, b.gameID, "game-event", models.NewEventDto(ev)); err != nil {
		b.log.WithError(err).WithField("event", ev.Kind()).Error("broadcast failed")
	}
}

func emitJSON(rooms RoomBroadcaster, room, event string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	rooms.BroadcastToRoom(namespace, room, event, string(data))
	return nil
}
