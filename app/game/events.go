package game

// EventKind is the stable wire name of an event.
type EventKind string

const (
	KindPieceTakeTurn           EventKind = "piece-take-turn"
	KindPieceTurnOver           EventKind = "piece-turn-over"
	KindPieceDeposit            EventKind = "piece-deposit"
	KindPieceTransfer           EventKind = "piece-transfer"
	KindPieceWithdraw           EventKind = "piece-withdraw"
	KindPieceBankrupt           EventKind = "piece-bankrupt"
	KindPieceMove               EventKind = "piece-move"
	KindPieceLeave              EventKind = "piece-leave"
	KindPieceArrive             EventKind = "piece-arrive"
	KindPieceGambleStart        EventKind = "piece-gamble-start"
	KindPieceGambleEnd          EventKind = "piece-gamble-end"
	KindPieceJailbreak          EventKind = "piece-jailbreak"
	KindPropertyUpdate          EventKind = "property-update"
	KindPropertyUpgrade         EventKind = "property-upgrade"
	KindPropertyAcquisition     EventKind = "property-acquisition"
	KindPropertyClear           EventKind = "property-clear"
	KindPropertyAddAmplifier    EventKind = "property-add-amplifier"
	KindPropertyRemoveAmplifier EventKind = "property-remove-amplifier"
	KindGameOver                EventKind = "game-over"
)

// Event is a snapshot of one observable state change. The set of
// implementations is closed to this package.
type Event interface {
	Kind() EventKind
	event()
}

type PieceTakeTurn struct {
	Piece PieceView
}

type PieceTurnOver struct {
	Piece PieceView
}

type PieceDeposit struct {
	Piece  PieceView
	Amount int
	Zone   Zone
}

// PieceTransfer is the only event emitted for a payment between pieces;
// the receiver gets no PieceDeposit.
type PieceTransfer struct {
	Piece    PieceView
	Amount   int
	Receiver PieceView
	Zone     Zone
}

type PieceWithdraw struct {
	Piece  PieceView
	Amount int
	Zone   Zone
}

type PieceBankrupt struct {
	Piece PieceView
}

type PieceMove struct {
	Piece   PieceView
	Journey *Journey
	From    Zone
	To      Zone
}

type PieceLeave struct {
	Piece       PieceView
	Journey     *Journey
	Destination Zone
}

type PieceArrive struct {
	Piece   PieceView
	Journey *Journey
	From    Zone
}

type PieceGambleStart struct {
	Piece        PieceView
	Betting      int
	Participants []PieceView
}

type PieceGambleEnd struct {
	Winners []PieceView
	Losers  []PieceView
}

type PieceJailbreak struct {
	Piece     PieceView
	Remaining int
	Success   bool
}

// OwnerInfo pairs an owner with the level it held the property at.
type OwnerInfo struct {
	Owner PieceView
	Level int
}

type PropertyUpdate struct {
	Property *ZoneProperty
	Old      *OwnerInfo
	New      *OwnerInfo
}

type PropertyUpgrade struct {
	Property *ZoneProperty
	Level    int
	Owner    PieceView
	Actor    PieceView
}

type PropertyAcquisition struct {
	Property *ZoneProperty
	From     PieceView
	To       PieceView
}

type PropertyClear struct {
	Property *ZoneProperty
	OldOwner PieceView
	OldLevel int
}

type PropertyAddAmplifier struct {
	Property *ZoneProperty
	Source   AmplifierSource
	Factor   float64
	Actor    PieceView
}

type PropertyRemoveAmplifier struct {
	Property *ZoneProperty
	Source   AmplifierSource
	Factor   float64
	Actor    PieceView
}

// GameOver carries a nil Winner when nobody survived.
type GameOver struct {
	Winner PieceView
}

func (PieceTakeTurn) Kind() EventKind           { return KindPieceTakeTurn }
func (PieceTurnOver) Kind() EventKind           { return KindPieceTurnOver }
func (PieceDeposit) Kind() EventKind            { return KindPieceDeposit }
func (PieceTransfer) Kind() EventKind           { return KindPieceTransfer }
func (PieceWithdraw) Kind() EventKind           { return KindPieceWithdraw }
func (PieceBankrupt) Kind() EventKind           { return KindPieceBankrupt }
func (PieceMove) Kind() EventKind               { return KindPieceMove }
func (PieceLeave) Kind() EventKind              { return KindPieceLeave }
func (PieceArrive) Kind() EventKind             { return KindPieceArrive }
func (PieceGambleStart) Kind() EventKind        { return KindPieceGambleStart }
func (PieceGambleEnd) Kind() EventKind          { return KindPieceGambleEnd }
func (PieceJailbreak) Kind() EventKind          { return KindPieceJailbreak }
func (PropertyUpdate) Kind() EventKind          { return KindPropertyUpdate }
func (PropertyUpgrade) Kind() EventKind         { return KindPropertyUpgrade }
func (PropertyAcquisition) Kind() EventKind     { return KindPropertyAcquisition }
func (PropertyClear) Kind() EventKind           { return KindPropertyClear }
func (PropertyAddAmplifier) Kind() EventKind    { return KindPropertyAddAmplifier }
func (PropertyRemoveAmplifier) Kind() EventKind { return KindPropertyRemoveAmplifier }
func (GameOver) Kind() EventKind                { return KindGameOver }

func (PieceTakeTurn) event()           {}
func (PieceTurnOver) event()           {}
func (PieceDeposit) event()            {}
func (PieceTransfer) event()           {}
func (PieceWithdraw) event()           {}
func (PieceBankrupt) event()           {}
func (PieceMove) event()               {}
func (PieceLeave) event()              {}
func (PieceArrive) event()             {}
func (PieceGambleStart) event()        {}
func (PieceGambleEnd) event()          {}
func (PieceJailbreak) event()          {}
func (PropertyUpdate) event()          {}
func (PropertyUpgrade) event()         {}
func (PropertyAcquisition) event()     {}
func (PropertyClear) event()           {}
func (PropertyAddAmplifier) event()    {}
func (PropertyRemoveAmplifier) event() {}
func (GameOver) event()                {}

// NewGambleStart copies participants so the event stays immutable.
func NewGambleStart(piece PieceView, betting int, participants []PieceView) PieceGambleStart {
	return PieceGambleStart{
		Piece:        piece,
		Betting:      betting,
		Participants: append([]PieceView(nil), participants...),
	}
}

func NewGambleEnd(winners, losers []PieceView) PieceGambleEnd {
	return PieceGambleEnd{
		Winners: append([]PieceView(nil), winners...),
		Losers:  append([]PieceView(nil), losers...),
	}
}

// Subject returns the piece an event is about, or nil for board-level events.
func Subject(ev Event) PieceView {
	switch e := ev.(type) {
	case PieceTakeTurn:
		return e.Piece
	case PieceTurnOver:
		return e.Piece
	case PieceDeposit:
		return e.Piece
	case PieceTransfer:
		return e.Piece
	case PieceWithdraw:
		return e.Piece
	case PieceBankrupt:
		return e.Piece
	case PieceMove:
		return e.Piece
	case PieceLeave:
		return e.Piece
	case PieceArrive:
		return e.Piece
	case PieceGambleStart:
		return e.Piece
	case PieceJailbreak:
		return e.Piece
	case GameOver:
		return e.Winner
	}
	return nil
}
