package board

import (
	"context"

	"github.com/DedS3t/speculation-backend/app/game"
)

// StartZone pays Salary to pieces that pass or land on it. The payout is
// made by the turn runner's step callback, not by a hook.
type StartZone struct {
	game.BaseZone
	Salary int
}

// JailZone locks arriving pieces for Turns turns.
type JailZone struct {
	game.BaseZone
	Turns int
}

func (z *JailZone) OnArrive(_ context.Context, j *game.Journey) error {
	if z.Turns > 0 {
		j.Mover().SetJailCount(z.Turns)
	}
	return nil
}

// TaxZone charges Fee to the bank on arrival.
type TaxZone struct {
	game.BaseZone
	Fee int
}

func (z *TaxZone) OnArrive(ctx context.Context, j *game.Journey) error {
	if z.Fee > 0 {
		j.Mover().Withdraw(ctx, z.Fee, z)
	}
	return nil
}
