package game

import (
	"context"
	"fmt"
)

// StepFunc runs after each step of a journey, including the final arrival.
type StepFunc func(ctx context.Context, j *Journey, z Zone) error

// MoveTo walks the piece to destination. For every intermediate zone the
// piece's zone is updated before the PieceMove event, then the zone's pass
// hook and onMove run. The destination's arrive hook runs last, after the
// final PieceMove and PieceArrive events.
func (p *Piece) MoveTo(ctx context.Context, destination Zone, movement Movement, cause MovementCause, source *Piece, onMove StepFunc) error {
	j, err := newJourney(p, p.zone, destination, movement, cause, source)
	if err != nil {
		return err
	}
	bus := p.board.bus

	if err := j.from.OnLeave(ctx, j); err != nil {
		return fmt.Errorf("leave %s: %w", j.from.Name(), err)
	}
	bus.Publish(ctx, PieceLeave{Piece: p, Journey: j, Destination: destination})

	prev := j.from
	for _, z := range j.path {
		p.zone = z
		bus.Publish(ctx, PieceMove{Piece: p, Journey: j, From: prev, To: z})

		if err := z.OnPass(ctx, j); err != nil {
			return fmt.Errorf("pass %s: %w", z.Name(), err)
		}
		if onMove != nil {
			if err := onMove(ctx, j, z); err != nil {
				return err
			}
		}
		j.pass(z)
		prev = z
	}

	p.zone = destination
	bus.Publish(ctx, PieceMove{Piece: p, Journey: j, From: prev, To: destination})
	bus.Publish(ctx, PieceArrive{Piece: p, Journey: j, From: prev})

	if onMove != nil {
		if err := onMove(ctx, j, destination); err != nil {
			return err
		}
	}
	if err := destination.OnArrive(ctx, j); err != nil {
		return fmt.Errorf("arrive %s: %w", destination.Name(), err)
	}
	return nil
}

// Advance moves the piece steps zones around the board.
func (p *Piece) Advance(ctx context.Context, steps int, cause MovementCause, onMove StepFunc) error {
	idx := p.board.IndexOf(p.zone)
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrUnknownZone, p.zone.Name())
	}
	movement := Forward(steps)
	if steps < 0 {
		movement = Reverse(-steps)
	}
	return p.MoveTo(ctx, p.board.ZoneAt(idx+steps), movement, cause, p, onMove)
}
