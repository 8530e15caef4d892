package game

// DefaultBalance is the starting balance of a piece unless the board says otherwise.
const DefaultBalance = 400

// PieceView is the read-only face of a piece handed to observers and
// outer layers.
type PieceView interface {
	Name() string
	Team() string
	Balance() int
	Zone() Zone
	IsBankrupt() bool
	Properties() []*ZoneProperty
	Assets() int
	IsFriendly(other PieceView) bool
}

// Piece is a participant's game state. Balance, zone and the bankrupt flag
// only change through MoveTo, Deposit, Withdraw and Transfer.
type Piece struct {
	board *Board
	name  string
	team  string

	balance  int
	zone     Zone
	bankrupt bool

	hasAngel     bool
	level        int
	jailCount    int
	numberOfDice int
}

var _ PieceView = (*Piece)(nil)

func (p *Piece) Name() string { return p.name }

// Team is empty when the piece plays alone.
func (p *Piece) Team() string { return p.team }

func (p *Piece) SetTeam(team string) { p.team = team }

func (p *Piece) Balance() int { return p.balance }

func (p *Piece) Zone() Zone { return p.zone }

func (p *Piece) IsBankrupt() bool { return p.bankrupt }

func (p *Piece) HasAngel() bool { return p.hasAngel }

func (p *Piece) SetHasAngel(v bool) { p.hasAngel = v }

func (p *Piece) Level() int { return p.level }

func (p *Piece) SetLevel(level int) { p.level = level }

func (p *Piece) JailCount() int { return p.jailCount }

func (p *Piece) SetJailCount(n int) {
	if n < 0 {
		n = 0
	}
	p.jailCount = n
}

func (p *Piece) NumberOfDice() int { return p.numberOfDice }

func (p *Piece) SetNumberOfDice(n int) { p.numberOfDice = n }

func (p *Piece) Board() *Board { return p.board }

// Properties lists the board's properties owned by this piece in board order.
func (p *Piece) Properties() []*ZoneProperty {
	var out []*ZoneProperty
	for _, zp := range p.board.ZoneProperties() {
		if zp.owner == p {
			out = append(out, zp)
		}
	}
	return out
}

// Assets is the liquidation worth of everything the piece owns.
func (p *Piece) Assets() int {
	total := 0
	for _, zp := range p.Properties() {
		total += zp.Assets()
	}
	return total
}

// IsFriendly reports whether other is this piece or shares its non-empty team.
func (p *Piece) IsFriendly(other PieceView) bool {
	if other == nil {
		return false
	}
	if o, ok := other.(*Piece); ok && o == p {
		return true
	}
	return p.team != "" && p.team == other.Team()
}

// EnsureAlive fails once the piece has gone bankrupt.
func (p *Piece) EnsureAlive() error {
	if p.bankrupt {
		return &BankruptError{Piece: p.name}
	}
	return nil
}

// view keeps a nil piece a nil interface.
func view(p *Piece) PieceView {
	if p == nil {
		return nil
	}
	return p
}
