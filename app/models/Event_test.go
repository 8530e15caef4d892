package models

import (
	"context"
	"testing"

	"github.com/DedS3t/speculation-backend/app/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type collector struct{ events []game.Event }

func (c *collector) OnEvent(_ context.Context, ev game.Event) { c.events = append(c.events, ev) }

func newBoard(t *testing.T) (*game.Board, *collector, *game.ZoneProperty) {
	t.Helper()
	town := game.NewZoneProperty("town", []game.Level{{Cost: 100, Toll: 30}, {Cost: 50, Toll: 60}})
	bus := game.NewDispatcher(nil)
	c := &collector{}
	bus.Subscribe(c)
	return game.NewBoard([]game.Zone{game.NewBaseZone("start"), town}, bus), c, town
}

func TestNewEventDtoTransfer(t *testing.T) {
	b, c, town := newBoard(t)
	alice, err := b.AddPiece("alice", 100, b.ZoneAt(0))
	require.NoError(t, err)
	bob, err := b.AddPiece("bob", 0, b.ZoneAt(0))
	require.NoError(t, err)

	alice.Transfer(context.Background(), 40, bob, town)
	require.Len(t, c.events, 1)

	dto := NewEventDto(c.events[0])
	assert.Equal(t, game.KindPieceTransfer, dto.Kind)
	assert.Equal(t, "alice", dto.Subject)
	assert.Equal(t, map[string]interface{}{"amount": 40, "receiver": "bob", "zone": "town"}, dto.Payload)
}

func TestNewEventRecordPropertyEvents(t *testing.T) {
	b, c, town := newBoard(t)
	alice, err := b.AddPiece("alice", 0, b.ZoneAt(0))
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, town.Acquire(ctx, alice, alice))
	town.Clear(ctx)
	require.Len(t, c.events, 3)

	rec := NewEventRecord("g1", 7, c.events[0])
	assert.Equal(t, "g1", rec.Game_id)
	assert.Equal(t, 7, rec.Seq)
	assert.Equal(t, "property-update", rec.Kind)
	assert.Empty(t, rec.Subject)
	assert.Nil(t, rec.Payload["old"])
	assert.Equal(t, map[string]interface{}{"owner": "alice", "level": 0}, rec.Payload["new"])

	clr := EventPayload(c.events[1])
	assert.Equal(t, "alice", clr["old_owner"])
	assert.Equal(t, "town", clr["property"])
}

func TestEventPayloadMovement(t *testing.T) {
	b, c, _ := newBoard(t)
	alice, err := b.AddPiece("alice", 0, b.ZoneAt(0))
	require.NoError(t, err)

	require.NoError(t, alice.Advance(context.Background(), 1, game.CauseDice, nil))

	kinds := make([]game.EventKind, 0, len(c.events))
	for _, ev := range c.events {
		kinds = append(kinds, ev.Kind())
	}
	require.Equal(t, []game.EventKind{game.KindPieceLeave, game.KindPieceMove, game.KindPieceArrive}, kinds)

	move := EventPayload(c.events[1])
	assert.Equal(t, "start", move["from"])
	assert.Equal(t, "town", move["to"])
	assert.Equal(t, "dice", move["cause"])
}

func TestEventPayloadGameOverWithoutWinner(t *testing.T) {
	dto := NewEventDto(game.GameOver{})
	assert.Empty(t, dto.Subject)
	assert.Equal(t, "", dto.Payload["winner"])
}

func TestNewPlayerDto(t *testing.T) {
	b, _, town := newBoard(t)
	alice, err := b.AddPiece("alice", 250, b.ZoneAt(1))
	require.NoError(t, err)
	require.NoError(t, town.Acquire(context.Background(), alice, alice))

	dto := NewPlayerDto(alice)
	assert.Equal(t, "town", dto.Zone)
	assert.Equal(t, 250, dto.Balance)
	assert.Equal(t, 100, dto.Assets)
	assert.Equal(t, []PropertyDto{{Name: "town", Level: 0, Toll: 30}}, dto.Properties)
}
