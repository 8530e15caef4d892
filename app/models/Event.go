package models

import (
	"time"

	"github.com/DedS3t/speculation-backend/app/game"
)

// EventRecord is one journaled game event.
type EventRecord struct {
	Id         int64
	Game_id    string `pg:",notnull"`
	Seq        int    `pg:",use_zero"`
	Kind       string
	Subject    string
	Payload    map[string]interface{}
	Created_at time.Time `pg:"default:now()"`
}

// EventDto is the wire shape of an event sent to clients.
type EventDto struct {
	Kind    game.EventKind         `json:"kind"`
	Subject string                 `json:"subject,omitempty"`
	Payload map[string]interface{} `json:"payload"`
}

func NewEventDto(ev game.Event) EventDto {
	dto := EventDto{Kind: ev.Kind(), Payload: EventPayload(ev)}
	if s := game.Subject(ev); s != nil {
		dto.Subject = s.Name()
	}
	return dto
}

func NewEventRecord(gameID string, seq int, ev game.Event) *EventRecord {
	dto := NewEventDto(ev)
	return &EventRecord{
		Game_id: gameID,
		Seq:     seq,
		Kind:    string(dto.Kind),
		Subject: dto.Subject,
		Payload: dto.Payload,
	}
}

// EventPayload flattens an event into names and numbers.
func EventPayload(ev game.Event) map[string]interface{} {
	switch e := ev.(type) {
	case game.PieceTakeTurn, game.PieceTurnOver, game.PieceBankrupt:
		return map[string]interface{}{}
	case game.PieceDeposit:
		return map[string]interface{}{"amount": e.Amount, "zone": zoneName(e.Zone)}
	case game.PieceWithdraw:
		return map[string]interface{}{"amount": e.Amount, "zone": zoneName(e.Zone)}
	case game.PieceTransfer:
		return map[string]interface{}{"amount": e.Amount, "receiver": pieceName(e.Receiver), "zone": zoneName(e.Zone)}
	case game.PieceMove:
		return map[string]interface{}{"from": zoneName(e.From), "to": zoneName(e.To), "cause": journeyCause(e.Journey)}
	case game.PieceLeave:
		return map[string]interface{}{"destination": zoneName(e.Destination), "cause": journeyCause(e.Journey)}
	case game.PieceArrive:
		return map[string]interface{}{"from": zoneName(e.From), "cause": journeyCause(e.Journey)}
	case game.PieceGambleStart:
		return map[string]interface{}{"betting": e.Betting, "participants": pieceNames(e.Participants)}
	case game.PieceGambleEnd:
		return map[string]interface{}{"winners": pieceNames(e.Winners), "losers": pieceNames(e.Losers)}
	case game.PieceJailbreak:
		return map[string]interface{}{"remaining": e.Remaining, "success": e.Success}
	case game.PropertyUpdate:
		return map[string]interface{}{"property": e.Property.Name(), "old": ownerInfo(e.Old), "new": ownerInfo(e.New)}
	case game.PropertyUpgrade:
		return map[string]interface{}{"property": e.Property.Name(), "level": e.Level, "owner": pieceName(e.Owner), "actor": pieceName(e.Actor)}
	case game.PropertyAcquisition:
		return map[string]interface{}{"property": e.Property.Name(), "from": pieceName(e.From), "to": pieceName(e.To)}
	case game.PropertyClear:
		return map[string]interface{}{"property": e.Property.Name(), "old_owner": pieceName(e.OldOwner), "old_level": e.OldLevel}
	case game.PropertyAddAmplifier:
		return amplifierPayload(e.Property, e.Source, e.Factor, e.Actor)
	case game.PropertyRemoveAmplifier:
		return amplifierPayload(e.Property, e.Source, e.Factor, e.Actor)
	case game.GameOver:
		return map[string]interface{}{"winner": pieceName(e.Winner)}
	}
	return map[string]interface{}{}
}

func amplifierPayload(zp *game.ZoneProperty, src game.AmplifierSource, factor float64, actor game.PieceView) map[string]interface{} {
	return map[string]interface{}{
		"property": zp.Name(),
		"source":   string(src.Kind) + ":" + src.Name,
		"factor":   factor,
		"actor":    pieceName(actor),
	}
}

func ownerInfo(info *game.OwnerInfo) interface{} {
	if info == nil {
		return nil
	}
	return map[string]interface{}{"owner": pieceName(info.Owner), "level": info.Level}
}

// pieceName is empty for a nil piece.
func pieceName(p game.PieceView) string {
	if p == nil {
		return ""
	}
	return p.Name()
}

func pieceNames(ps []game.PieceView) []string {
	out := make([]string, 0, len(ps))
	for _, p := range ps {
		out = append(out, pieceName(p))
	}
	return out
}

func zoneName(z game.Zone) string {
	if z == nil {
		return ""
	}
	return z.Name()
}

func journeyCause(j *game.Journey) string {
	if j == nil {
		return ""
	}
	return string(j.Cause())
}
