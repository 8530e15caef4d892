package game

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTownFixture(t *testing.T) (*fixture, *ZoneProperty) {
	t.Helper()
	town := NewZoneProperty("town", []Level{{Cost: 50, Toll: 20}, {Cost: 100, Toll: 60}, {Cost: 150, Toll: 120}})
	f := &fixture{
		bus:       NewDispatcher(nil),
		rec:       &recorder{},
		decisions: &stubDecisions{},
		zones:     []Zone{NewBaseZone("start"), town},
	}
	f.board = NewBoard(f.zones, f.bus, WithDecisionService(f.decisions))
	f.bus.Subscribe(f.rec)
	return f, town
}

func TestPropertyAcquireAndUpgrade(t *testing.T) {
	f, town := newTownFixture(t)
	alice := f.piece(t, "alice", 0)
	bob := f.piece(t, "bob", 0)
	ctx := context.Background()

	assert.Zero(t, town.Assets())
	assert.Equal(t, 50, town.Price())

	require.NoError(t, town.Acquire(ctx, alice, alice))
	assert.Equal(t, []EventKind{KindPropertyUpdate}, f.rec.kinds())
	assert.Equal(t, 50, town.Assets())

	require.NoError(t, town.Upgrade(ctx, 2, alice))
	assert.Equal(t, 300, town.Assets())
	assert.Equal(t, 120, town.Toll())

	f.rec.reset()
	require.NoError(t, town.Acquire(ctx, bob, bob))
	require.Equal(t, []EventKind{KindPropertyAcquisition, KindPropertyUpdate}, f.rec.kinds())
	acq := f.rec.events[0].(PropertyAcquisition)
	assert.Equal(t, alice, acq.From)
	assert.Equal(t, bob, acq.To)

	upd := f.rec.events[1].(PropertyUpdate)
	require.NotNil(t, upd.Old)
	require.NotNil(t, upd.New)
	assert.Equal(t, alice, upd.Old.Owner)
	assert.Equal(t, bob, upd.New.Owner)
	assert.Equal(t, 2, upd.New.Level)

	assert.Error(t, town.Upgrade(ctx, 1, bob))
	assert.Error(t, town.Upgrade(ctx, 3, bob))
}

func TestPropertyAcquireRejectsBankruptOwner(t *testing.T) {
	f, town := newTownFixture(t)
	alice := f.piece(t, "alice", 0)
	alice.Withdraw(context.Background(), 1, f.zones[0])

	err := town.Acquire(context.Background(), alice, alice)

	assert.ErrorIs(t, err, ErrBankruptOperation)
	assert.Nil(t, town.Owner())
}

func TestPropertyClear(t *testing.T) {
	f, town := newTownFixture(t)
	alice := f.piece(t, "alice", 0)
	ctx := context.Background()
	require.NoError(t, town.Acquire(ctx, alice, alice))
	require.NoError(t, town.Upgrade(ctx, 1, alice))
	town.AddAmplifier(ctx, CardSource("festival"), 2, alice)
	f.rec.reset()

	var seenOwner PieceView
	f.bus.Subscribe(ObserverFunc(func(_ context.Context, ev Event) {
		if _, ok := ev.(PropertyClear); ok {
			seenOwner = town.Owner()
		}
	}))

	town.Clear(ctx)

	assert.Nil(t, town.Owner())
	assert.Zero(t, town.Level())
	assert.Empty(t, town.Amplifiers())
	assert.Nil(t, seenOwner)

	require.Equal(t, []EventKind{KindPropertyClear, KindPropertyUpdate}, f.rec.kinds())
	clr := f.rec.events[0].(PropertyClear)
	assert.Equal(t, alice, clr.OldOwner)
	assert.Equal(t, 1, clr.OldLevel)
	assert.Nil(t, f.rec.events[1].(PropertyUpdate).New)

	f.rec.reset()
	town.Clear(ctx)
	assert.Empty(t, f.rec.events)
}

func TestPropertyAmplifiers(t *testing.T) {
	f, town := newTownFixture(t)
	alice := f.piece(t, "alice", 0)
	ctx := context.Background()
	require.NoError(t, town.Acquire(ctx, alice, alice))
	f.rec.reset()

	town.AddAmplifier(ctx, PieceSource(alice), 2, alice)
	town.AddAmplifier(ctx, ZoneSource(f.zones[0]), 1.5, nil)
	assert.Equal(t, 60, town.Toll())

	assert.True(t, town.RemoveAmplifier(ctx, PieceSource(alice), alice))
	assert.False(t, town.RemoveAmplifier(ctx, CardSource("missing"), alice))
	assert.Equal(t, 30, town.Toll())

	assert.Equal(t, []EventKind{
		KindPropertyAddAmplifier,
		KindPropertyAddAmplifier,
		KindPropertyRemoveAmplifier,
	}, f.rec.kinds())

	rm := f.rec.events[2].(PropertyRemoveAmplifier)
	assert.Equal(t, AmplifierSource{Kind: AmplifierFromPiece, Name: "alice"}, rm.Source)
	assert.Equal(t, 2.0, rm.Factor)
	assert.Nil(t, f.rec.events[1].(PropertyAddAmplifier).Actor)
}

func TestPropertyArrivalChargesToll(t *testing.T) {
	f, town := newTownFixture(t)
	owner := f.piece(t, "alice", 0)
	visitor := f.piece(t, "bob", 100)
	ctx := context.Background()
	require.NoError(t, town.Acquire(ctx, owner, owner))
	f.rec.reset()

	require.NoError(t, visitor.Advance(ctx, 1, CauseDice, nil))

	assert.Equal(t, 80, visitor.Balance())
	assert.Equal(t, 20, owner.Balance())
	kinds := f.rec.kinds()
	assert.Equal(t, KindPieceTransfer, kinds[len(kinds)-1])
	assert.NotContains(t, kinds, KindPieceDeposit)
}

func TestPropertyArrivalFreeForTeammates(t *testing.T) {
	f, town := newTownFixture(t)
	owner := f.piece(t, "alice", 0)
	mate := f.piece(t, "bob", 100)
	owner.SetTeam("red")
	mate.SetTeam("red")
	ctx := context.Background()
	require.NoError(t, town.Acquire(ctx, owner, owner))

	require.NoError(t, mate.Advance(ctx, 1, CauseDice, nil))

	assert.Equal(t, 100, mate.Balance())
	assert.Zero(t, owner.Balance())
}
