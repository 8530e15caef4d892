package game

import (
	"context"
	"fmt"
	"math"
	"sort"
)

type AmplifierSourceKind string

const (
	AmplifierFromPiece AmplifierSourceKind = "piece"
	AmplifierFromZone  AmplifierSourceKind = "zone"
	AmplifierFromCard  AmplifierSourceKind = "card"
)

// AmplifierSource identifies who applied an amplifier to a property.
type AmplifierSource struct {
	Kind AmplifierSourceKind
	Name string
}

func PieceSource(p PieceView) AmplifierSource {
	return AmplifierSource{Kind: AmplifierFromPiece, Name: p.Name()}
}

func ZoneSource(z Zone) AmplifierSource {
	return AmplifierSource{Kind: AmplifierFromZone, Name: z.Name()}
}

func CardSource(card string) AmplifierSource {
	return AmplifierSource{Kind: AmplifierFromCard, Name: card}
}

// Level is one build stage of a property: what it costs to reach and the
// toll charged at it.
type Level struct {
	Cost int `json:"cost"`
	Toll int `json:"toll"`
}

// ZoneProperty is an ownable zone. Level 0 is the bare land.
type ZoneProperty struct {
	BaseZone

	levels []Level
	board  *Board

	owner      *Piece
	level      int
	amplifiers map[AmplifierSource]float64
}

func NewZoneProperty(name string, levels []Level) *ZoneProperty {
	if len(levels) == 0 {
		levels = []Level{{}}
	}
	return &ZoneProperty{
		BaseZone:   BaseZone{ZoneName: name},
		levels:     append([]Level(nil), levels...),
		amplifiers: make(map[AmplifierSource]float64),
	}
}

func (zp *ZoneProperty) attach(b *Board) { zp.board = b }

// Owner returns nil when the property is unowned.
func (zp *ZoneProperty) Owner() PieceView { return view(zp.owner) }

func (zp *ZoneProperty) Level() int { return zp.level }

func (zp *ZoneProperty) MaxLevel() int { return len(zp.levels) - 1 }

func (zp *ZoneProperty) Levels() []Level { return append([]Level(nil), zp.levels...) }

// Price is the cost of acquiring the bare land.
func (zp *ZoneProperty) Price() int { return zp.levels[0].Cost }

// Assets is what liquidating the property is worth: every level cost paid
// up to the current level. Unowned property is worth nothing.
func (zp *ZoneProperty) Assets() int {
	if zp.owner == nil {
		return 0
	}
	total := 0
	for i := 0; i <= zp.level && i < len(zp.levels); i++ {
		total += zp.levels[i].Cost
	}
	return total
}

// Amplification is the product of every applied amplifier.
func (zp *ZoneProperty) Amplification() float64 {
	factor := 1.0
	for _, f := range zp.amplifiers {
		factor *= f
	}
	return factor
}

func (zp *ZoneProperty) Amplifiers() map[AmplifierSource]float64 {
	out := make(map[AmplifierSource]float64, len(zp.amplifiers))
	for k, v := range zp.amplifiers {
		out[k] = v
	}
	return out
}

// Toll is what a visitor pays the owner on arrival.
func (zp *ZoneProperty) Toll() int {
	if zp.owner == nil {
		return 0
	}
	return int(math.Round(float64(zp.levels[zp.level].Toll) * zp.Amplification()))
}

// Acquire hands the property to a new owner keeping its level.
func (zp *ZoneProperty) Acquire(ctx context.Context, to *Piece, actor *Piece) error {
	if to == nil {
		return fmt.Errorf("acquire %s: nil owner", zp.Name())
	}
	if err := to.EnsureAlive(); err != nil {
		return err
	}

	old := zp.ownerInfo()
	from := zp.owner
	zp.owner = to

	if from != nil {
		zp.publish(ctx, PropertyAcquisition{Property: zp, From: from, To: to})
	}
	zp.publish(ctx, PropertyUpdate{Property: zp, Old: old, New: zp.ownerInfo()})
	return nil
}

// Upgrade raises the build level of an owned property.
func (zp *ZoneProperty) Upgrade(ctx context.Context, level int, actor *Piece) error {
	if zp.owner == nil {
		return fmt.Errorf("upgrade %s: property is unowned", zp.Name())
	}
	if level <= zp.level || level > zp.MaxLevel() {
		return fmt.Errorf("upgrade %s: invalid level %d", zp.Name(), level)
	}

	old := zp.ownerInfo()
	zp.level = level

	zp.publish(ctx, PropertyUpgrade{Property: zp, Level: level, Owner: zp.owner, Actor: view(actor)})
	zp.publish(ctx, PropertyUpdate{Property: zp, Old: old, New: zp.ownerInfo()})
	return nil
}

// Clear returns the property to its unowned default: no owner, level 0 and
// no amplifiers. State is reset before any event goes out.
func (zp *ZoneProperty) Clear(ctx context.Context) {
	if zp.owner == nil {
		return
	}

	old := zp.ownerInfo()
	oldOwner, oldLevel := zp.owner, zp.level

	zp.owner = nil
	zp.level = 0
	zp.amplifiers = make(map[AmplifierSource]float64)

	zp.publish(ctx, PropertyClear{Property: zp, OldOwner: oldOwner, OldLevel: oldLevel})
	zp.publish(ctx, PropertyUpdate{Property: zp, Old: old})
}

func (zp *ZoneProperty) AddAmplifier(ctx context.Context, source AmplifierSource, factor float64, actor *Piece) {
	zp.amplifiers[source] = factor
	zp.publish(ctx, PropertyAddAmplifier{Property: zp, Source: source, Factor: factor, Actor: view(actor)})
}

func (zp *ZoneProperty) RemoveAmplifier(ctx context.Context, source AmplifierSource, actor *Piece) bool {
	factor, ok := zp.amplifiers[source]
	if !ok {
		return false
	}
	delete(zp.amplifiers, source)
	zp.publish(ctx, PropertyRemoveAmplifier{Property: zp, Source: source, Factor: factor, Actor: view(actor)})
	return true
}

// OnArrive charges the toll to a visitor that is not friendly with the owner.
func (zp *ZoneProperty) OnArrive(ctx context.Context, j *Journey) error {
	visitor := j.Mover()
	owner := zp.owner
	if owner == nil || owner.bankrupt || visitor.bankrupt || owner.IsFriendly(visitor) {
		return nil
	}

	toll := zp.Toll()
	if toll <= 0 {
		return nil
	}
	visitor.Transfer(ctx, toll, owner, zp)
	return nil
}

func (zp *ZoneProperty) ownerInfo() *OwnerInfo {
	if zp.owner == nil {
		return nil
	}
	return &OwnerInfo{Owner: zp.owner, Level: zp.level}
}

func (zp *ZoneProperty) publish(ctx context.Context, ev Event) {
	if zp.board == nil {
		return
	}
	zp.board.bus.Publish(ctx, ev)
}

// sortByAssetsDesc orders properties by liquidation worth, highest first,
// keeping board order between equal values.
func sortByAssetsDesc(props []*ZoneProperty) {
	sort.SliceStable(props, func(i, j int) bool {
		return props[i].Assets() > props[j].Assets()
	})
}
