package game

import "fmt"

type MovementKind string

const (
	MovementForward  MovementKind = "forward"
	MovementReverse  MovementKind = "reverse"
	MovementTeleport MovementKind = "teleport"
)

// Movement describes how a piece travels. Steps is informational for
// walking movements; the destination is always explicit.
type Movement struct {
	Kind  MovementKind
	Steps int
}

func Forward(steps int) Movement { return Movement{Kind: MovementForward, Steps: steps} }

func Reverse(steps int) Movement { return Movement{Kind: MovementReverse, Steps: steps} }

func Teleport() Movement { return Movement{Kind: MovementTeleport} }

// MovementCause tags why a piece moved.
type MovementCause string

const (
	CauseDice   MovementCause = "dice"
	CauseCard   MovementCause = "card"
	CauseJail   MovementCause = "jail"
	CausePortal MovementCause = "portal"
)

// Journey is one movement of a piece. It is built once per MoveTo and
// discarded afterwards.
type Journey struct {
	piece       *Piece
	from        Zone
	destination Zone
	movement    Movement
	cause       MovementCause
	source      *Piece

	path   []Zone
	passed []Zone
}

func newJourney(piece *Piece, from, destination Zone, movement Movement, cause MovementCause, source *Piece) (*Journey, error) {
	j := &Journey{
		piece:       piece,
		from:        from,
		destination: destination,
		movement:    movement,
		cause:       cause,
		source:      source,
	}
	if j.source == nil {
		j.source = piece
	}

	path, err := piece.board.paths.Path(piece.board, from, destination, movement)
	if err != nil {
		return nil, fmt.Errorf("pathfinding %s -> %s: %w", from.Name(), destination.Name(), err)
	}
	j.path = path
	return j, nil
}

func (j *Journey) Piece() PieceView { return j.piece }

func (j *Journey) From() Zone { return j.from }

func (j *Journey) Destination() Zone { return j.destination }

func (j *Journey) Movement() Movement { return j.movement }

func (j *Journey) Cause() MovementCause { return j.cause }

// Source is the piece that caused the movement; it may differ from the mover.
func (j *Journey) Source() PieceView { return j.source }

// Path returns the intermediate zones, excluding origin and destination.
func (j *Journey) Path() []Zone {
	return append([]Zone(nil), j.path...)
}

// Passed returns the intermediate zones already walked through.
func (j *Journey) Passed() []Zone {
	return append([]Zone(nil), j.passed...)
}

func (j *Journey) pass(z Zone) {
	j.passed = append(j.passed, z)
}

// Mover is the moving piece itself, for zone hooks that act on it.
// Observers should stick to Piece.
func (j *Journey) Mover() *Piece { return j.piece }
