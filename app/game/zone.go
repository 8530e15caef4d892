package game

import "context"

// Zone is a board position. Hooks fire when a piece leaves, passes
// through or arrives at it.
type Zone interface {
	Name() string
	OnLeave(ctx context.Context, j *Journey) error
	OnPass(ctx context.Context, j *Journey) error
	OnArrive(ctx context.Context, j *Journey) error
}

// BaseZone is a zone without side effects. Embed it to override only the
// hooks you need.
type BaseZone struct {
	ZoneName string
}

func NewBaseZone(name string) *BaseZone {
	return &BaseZone{ZoneName: name}
}

func (z *BaseZone) Name() string { return z.ZoneName }

func (z *BaseZone) OnLeave(context.Context, *Journey) error { return nil }

func (z *BaseZone) OnPass(context.Context, *Journey) error { return nil }

func (z *BaseZone) OnArrive(context.Context, *Journey) error { return nil }

// boardAttacher is implemented by zones that need their board back-reference.
type boardAttacher interface {
	attach(b *Board)
}
