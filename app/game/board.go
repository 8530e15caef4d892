package game

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
)

// Pathfinder resolves the intermediate zones of a movement. It must be
// deterministic for a given board and movement.
type Pathfinder interface {
	Path(b *Board, from, to Zone, movement Movement) ([]Zone, error)
}

// RingPathfinder walks the board as a closed loop.
type RingPathfinder struct{}

func (RingPathfinder) Path(b *Board, from, to Zone, movement Movement) ([]Zone, error) {
	start, end := b.IndexOf(from), b.IndexOf(to)
	if start < 0 {
		return nil, fmt.Errorf("%w: %s", ErrUnknownZone, from.Name())
	}
	if end < 0 {
		return nil, fmt.Errorf("%w: %s", ErrUnknownZone, to.Name())
	}

	step := 1
	switch movement.Kind {
	case MovementTeleport:
		return nil, nil
	case MovementReverse:
		step = -1
	}

	n := len(b.zones)
	var path []Zone
	for i := (start + step + n) % n; i != end; i = (i + step + n) % n {
		path = append(path, b.zones[i])
	}
	return path, nil
}

// Board owns the zones and pieces of one game instance and the collaborators
// every piece operation talks to.
type Board struct {
	zones      []Zone
	properties []*ZoneProperty
	pieces     []*Piece

	bus       EventBus
	decisions DecisionService
	paths     Pathfinder
	log       logrus.FieldLogger
}

type BoardOption func(*Board)

func WithDecisionService(d DecisionService) BoardOption {
	return func(b *Board) { b.decisions = d }
}

func WithPathfinder(p Pathfinder) BoardOption {
	return func(b *Board) { b.paths = p }
}

func WithLogger(log logrus.FieldLogger) BoardOption {
	return func(b *Board) { b.log = log }
}

// NewBoard lays zones out in ring order. A nil bus discards events.
func NewBoard(zones []Zone, bus EventBus, opts ...BoardOption) *Board {
	if bus == nil {
		bus = discardBus{}
	}
	b := &Board{
		zones: append([]Zone(nil), zones...),
		bus:   bus,
		paths: RingPathfinder{},
		log:   logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(b)
	}

	for _, z := range b.zones {
		if a, ok := z.(boardAttacher); ok {
			a.attach(b)
		}
		if zp, ok := z.(*ZoneProperty); ok {
			b.properties = append(b.properties, zp)
		}
	}
	return b
}

func (b *Board) Zones() []Zone { return append([]Zone(nil), b.zones...) }

func (b *Board) ZoneProperties() []*ZoneProperty { return b.properties }

func (b *Board) ZoneAt(index int) Zone {
	n := len(b.zones)
	if n == 0 {
		return nil
	}
	return b.zones[((index%n)+n)%n]
}

// IndexOf returns the ring position of z, or -1.
func (b *Board) IndexOf(z Zone) int {
	for i, candidate := range b.zones {
		if candidate == z {
			return i
		}
	}
	return -1
}

// AddPiece creates a participant standing on zone with the given balance.
func (b *Board) AddPiece(name string, balance int, zone Zone) (*Piece, error) {
	if _, ok := b.Piece(name); ok {
		return nil, fmt.Errorf("%w: %s", ErrDuplicatePiece, name)
	}
	if b.IndexOf(zone) < 0 {
		return nil, fmt.Errorf("%w: %s", ErrUnknownZone, zone.Name())
	}
	if balance < 0 {
		balance = 0
	}

	p := &Piece{
		board:        b,
		name:         name,
		balance:      balance,
		zone:         zone,
		numberOfDice: 2,
	}
	b.pieces = append(b.pieces, p)
	return p, nil
}

func (b *Board) Piece(name string) (*Piece, bool) {
	for _, p := range b.pieces {
		if p.name == name {
			return p, true
		}
	}
	return nil, false
}

func (b *Board) Pieces() []*Piece { return append([]*Piece(nil), b.pieces...) }

// Survivors lists the pieces that are not bankrupt, in join order.
func (b *Board) Survivors() []*Piece {
	var out []*Piece
	for _, p := range b.pieces {
		if !p.bankrupt {
			out = append(out, p)
		}
	}
	return out
}

// Publish forwards ev to the board's bus. Turn-level events such as
// PieceTakeTurn and GameOver are announced through it.
func (b *Board) Publish(ctx context.Context, ev Event) {
	b.bus.Publish(ctx, ev)
}

func (b *Board) Logger() logrus.FieldLogger { return b.log }
