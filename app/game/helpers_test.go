package game

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

type recorder struct {
	events []Event
}

func (r *recorder) OnEvent(_ context.Context, ev Event) {
	r.events = append(r.events, ev)
}

func (r *recorder) kinds() []EventKind {
	out := make([]EventKind, 0, len(r.events))
	for _, ev := range r.events {
		out = append(out, ev.Kind())
	}
	return out
}

// pieceKinds keeps only events whose subject is a piece.
func (r *recorder) pieceKinds() []EventKind {
	var out []EventKind
	for _, ev := range r.events {
		if Subject(ev) != nil {
			out = append(out, ev.Kind())
		}
	}
	return out
}

func (r *recorder) reset() { r.events = nil }

type stubDecisions struct {
	calls    int
	requests []*Request
	answer   func(req *Request) (interface{}, error)
}

func (s *stubDecisions) Request(_ context.Context, req *Request) (interface{}, error) {
	s.calls++
	s.requests = append(s.requests, req)
	if s.answer == nil {
		return req.Default(), nil
	}
	return s.answer(req)
}

type fixture struct {
	board     *Board
	bus       *Dispatcher
	rec       *recorder
	decisions *stubDecisions
	zones     []Zone
}

// newFixture builds a ring of a start zone followed by one property per value.
// Each property has a single level costing its value.
func newFixture(t *testing.T, values ...int) *fixture {
	t.Helper()

	zones := []Zone{NewBaseZone("start")}
	for i, v := range values {
		zones = append(zones, NewZoneProperty(propertyName(i), []Level{{Cost: v, Toll: v / 2}}))
	}

	f := &fixture{
		bus:       NewDispatcher(nil),
		rec:       &recorder{},
		decisions: &stubDecisions{},
		zones:     zones,
	}
	f.board = NewBoard(zones, f.bus, WithDecisionService(f.decisions))
	f.bus.Subscribe(f.rec)
	return f
}

func propertyName(i int) string {
	return string(rune('p')) + string(rune('0'+i))
}

func (f *fixture) piece(t *testing.T, name string, balance int) *Piece {
	t.Helper()
	p, err := f.board.AddPiece(name, balance, f.zones[0])
	require.NoError(t, err)
	return p
}

func (f *fixture) property(i int) *ZoneProperty {
	return f.board.ZoneProperties()[i]
}

// give hands properties to p and forgets the resulting events.
func (f *fixture) give(t *testing.T, p *Piece, idx ...int) {
	t.Helper()
	for _, i := range idx {
		require.NoError(t, f.property(i).Acquire(context.Background(), p, p))
	}
	f.rec.reset()
}
