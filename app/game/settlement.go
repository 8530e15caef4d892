package game

import (
	"context"

	"github.com/sirupsen/logrus"
)

// Deposit credits amount to the piece. Negative amounts and deposits to a
// bankrupt piece are dropped.
func (p *Piece) Deposit(ctx context.Context, amount int, source Zone) {
	if amount < 0 {
		p.board.log.WithField("piece", p.name).Warnf("ignoring negative deposit %d", amount)
		return
	}
	if p.bankrupt {
		return
	}
	p.balance += amount
	p.board.bus.Publish(ctx, PieceDeposit{Piece: p, Amount: amount, Zone: source})
}

// Withdraw takes up to requestAmount from the piece, liquidating property or
// going bankrupt when cash is short. The result may be less than requested,
// including zero; that is not an error.
func (p *Piece) Withdraw(ctx context.Context, requestAmount int, source Zone) int {
	amount := p.withdraw(ctx, requestAmount)
	if amount > 0 {
		p.board.bus.Publish(ctx, PieceWithdraw{Piece: p, Amount: amount, Zone: source})
	}
	return amount
}

// Transfer pays receiver from this piece. The receiver is credited directly
// and only a PieceTransfer is published. A bankrupt receiver keeps a zero
// balance; the payment is still taken.
func (p *Piece) Transfer(ctx context.Context, requestAmount int, receiver *Piece, zone Zone) int {
	amount := p.withdraw(ctx, requestAmount)
	if amount > 0 {
		if !receiver.bankrupt {
			receiver.balance += amount
		}
		p.board.bus.Publish(ctx, PieceTransfer{Piece: p, Amount: amount, Receiver: receiver, Zone: zone})
	}
	return amount
}

func (p *Piece) withdraw(ctx context.Context, requestAmount int) int {
	if p.bankrupt || requestAmount <= 0 {
		return 0
	}

	if p.balance < requestAmount {
		total := p.balance + p.Assets()
		log := p.board.log.WithFields(logrus.Fields{
			"piece":   p.name,
			"request": requestAmount,
			"balance": p.balance,
			"total":   total,
		})

		if total < requestAmount {
			for _, zp := range p.Properties() {
				zp.Clear(ctx)
			}
			p.balance = 0
			p.bankrupt = true
			log.Info("piece went bankrupt")
			p.board.bus.Publish(ctx, PieceBankrupt{Piece: p})
			return total
		}

		required, optional := p.selectProperties(requestAmount - p.balance)
		if len(optional) == 0 {
			log.Debug("liquidating every property")
			for _, zp := range p.Properties() {
				p.liquidate(ctx, zp)
			}
		} else {
			candidates := p.Properties()
			selected := request(ctx, p, &SeizureDialog{
				RequestAmount: requestAmount,
				Required:      required,
				Candidates:    candidates,
			}, MessageSeizure, func() []*ZoneProperty { return required })

			for _, zp := range selected {
				p.liquidate(ctx, zp)
			}

			if p.balance < requestAmount {
				forced, _ := p.selectProperties(requestAmount - p.balance)
				log.WithField("forced", len(forced)).Debug("selection fell short, forcing liquidation")
				for _, zp := range forced {
					p.liquidate(ctx, zp)
				}
			}
		}
	}

	amount := p.balance
	if requestAmount < amount {
		amount = requestAmount
	}
	p.balance -= amount
	return amount
}

// liquidate credits the worth of one owned property and clears it. Answers
// naming property the piece no longer owns are skipped.
func (p *Piece) liquidate(ctx context.Context, zp *ZoneProperty) {
	if zp == nil || zp.owner != p {
		return
	}
	p.balance += zp.Assets()
	zp.Clear(ctx)
}

// selectProperties splits owned property, sorted by worth descending, into
// the ones needed to cover target and the optional rest. A property only
// becomes optional while the remaining value stays strictly above target.
func (p *Piece) selectProperties(target int) (required, optional []*ZoneProperty) {
	sorted := p.Properties()
	sortByAssetsDesc(sorted)

	value := 0
	for _, zp := range sorted {
		value += zp.Assets()
	}

	for _, zp := range sorted {
		assets := zp.Assets()
		if target < value-assets {
			value -= assets
			optional = append(optional, zp)
		} else {
			required = append(required, zp)
		}
	}
	return required, optional
}
