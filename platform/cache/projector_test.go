package cache

import (
	"context"
	"testing"

	"github.com/DedS3t/speculation-backend/app/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type projectorFixture struct {
	conn  *memoryConn
	proj  *Projector
	board *game.Board
	town  *game.ZoneProperty
	alice *game.Piece
	bob   *game.Piece
}

func newProjectorFixture(t *testing.T) *projectorFixture {
	t.Helper()
	f := &projectorFixture{conn: newMemoryConn()}
	f.proj = NewProjector(f.conn.pool(), "g1", nil)

	bus := game.NewDispatcher(nil)
	bus.Subscribe(f.proj)
	f.town = game.NewZoneProperty("town", []game.Level{{Cost: 100, Toll: 30}})
	f.board = game.NewBoard([]game.Zone{game.NewBaseZone("start"), f.town}, bus)

	var err error
	f.alice, err = f.board.AddPiece("alice", 200, f.board.ZoneAt(0))
	require.NoError(t, err)
	f.bob, err = f.board.AddPiece("bob", 50, f.board.ZoneAt(0))
	require.NoError(t, err)
	require.NoError(t, f.proj.Seed(f.board.Pieces()))
	return f
}

func TestProjectorSeed(t *testing.T) {
	f := newProjectorFixture(t)

	assert.Equal(t, []string{"alice", "bob"}, f.conn.lists["g1.order"])
	assert.Equal(t, map[string]string{"bal": "200", "pos": "start", "bankrupt": "0", "jail": "0"}, f.conn.hashes["g1.alice"])
}

func TestProjectorTracksMovesAndPayments(t *testing.T) {
	f := newProjectorFixture(t)
	ctx := context.Background()
	require.NoError(t, f.town.Acquire(ctx, f.alice, f.alice))
	assert.Equal(t, "0", f.conn.hashes["g1.alice.cards"]["town"])

	require.NoError(t, f.bob.Advance(ctx, 1, game.CauseDice, nil))

	bal, err := HGET("g1.bob", "bal", f.conn)
	require.NoError(t, err)
	assert.Equal(t, "20", bal)
	assert.Equal(t, "town", f.conn.hashes["g1.bob"]["pos"])
	assert.Equal(t, "230", f.conn.hashes["g1.alice"]["bal"])
}

func TestProjectorMovesCardsOnBankruptcy(t *testing.T) {
	f := newProjectorFixture(t)
	ctx := context.Background()
	require.NoError(t, f.town.Acquire(ctx, f.bob, f.bob))

	f.bob.Withdraw(ctx, 1000, f.board.ZoneAt(0))

	all, err := HGETALL("g1.bob", f.conn)
	require.NoError(t, err)
	assert.Equal(t, "1", all["bankrupt"])
	assert.Equal(t, "0", all["bal"])
	assert.Empty(t, f.conn.hashes["g1.bob.cards"])
}

func TestProjectorCleanUp(t *testing.T) {
	f := newProjectorFixture(t)
	require.NoError(t, f.town.Acquire(context.Background(), f.alice, f.alice))

	require.NoError(t, f.proj.CleanUp())

	assert.Empty(t, f.conn.hashes)
	assert.Empty(t, f.conn.lists)
}

func TestOperations(t *testing.T) {
	conn := newMemoryConn()

	require.NoError(t, Set("turn", "alice", conn))
	v, err := Get("turn", conn)
	require.NoError(t, err)
	assert.Equal(t, "alice", v)

	require.NoError(t, Del("turn", conn))
	_, err = Get("turn", conn)
	assert.Error(t, err)
}
