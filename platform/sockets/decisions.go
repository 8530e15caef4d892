package socket

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/DedS3t/speculation-backend/app/game"
	uuid "github.com/satori/go.uuid"
	"github.com/sirupsen/logrus"
)

var (
	ErrUnknownDecision = errors.New("no pending decision with that id")
	ErrWrongPlayer     = errors.New("decision belongs to another player")
	ErrDecisionTimeout = errors.New("decision timed out")
)

type decisionRequest struct {
	ID      string                 `json:"id"`
	Kind    game.DialogKind        `json:"kind"`
	Piece   string                 `json:"piece"`
	Message game.Message           `json:"message"`
	Payload map[string]interface{} `json:"payload"`
}

type pendingDecision struct {
	piece  string
	dialog game.Dialog
	answer chan []byte
}

// Decisions asks players through the game room. A request is broadcast as
// "decision-request" and completed by Resolve with the player's raw answer.
type Decisions struct {
	rooms   RoomBroadcaster
	gameID  string
	timeout time.Duration
	log     logrus.FieldLogger

	mu      sync.Mutex
	pending map[string]*pendingDecision
}

var _ game.DecisionService = (*Decisions)(nil)

func NewDecisions(rooms RoomBroadcaster, gameID string, timeout time.Duration, log logrus.FieldLogger) *Decisions {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Decisions{
		rooms:   rooms,
		gameID:  gameID,
		timeout: timeout,
		log:     log,
		pending: make(map[string]*pendingDecision),
	}
}

func (d *Decisions) Request(ctx context.Context, req *game.Request) (interface{}, error) {
	id := uuid.NewV4().String()
	p := &pendingDecision{piece: req.Piece.Name(), dialog: req.Dialog, answer: make(chan []byte, 1)}

	d.mu.Lock()
	d.pending[id] = p
	d.mu.Unlock()
	defer func() {
		d.mu.Lock()
		delete(d.pending, id)
		d.mu.Unlock()
	}()

	err := emitJSON(d.rooms, d.gameID, "decision-request", decisionRequest{
		ID:      id,
		Kind:    req.Kind,
		Piece:   p.piece,
		Message: req.Message,
		Payload: dialogPayload(req.Dialog),
	})
	if err != nil {
		return nil, err
	}

	var timeout <-chan time.Time
	if d.timeout > 0 {
		timer := time.NewTimer(d.timeout)
		defer timer.Stop()
		timeout = timer.C
	}

	select {
	case raw := <-p.answer:
		return req.Dialog.DecodeResponse(raw)
	case <-timeout:
		return nil, ErrDecisionTimeout
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Resolve delivers a player's answer. Only the first answer counts.
func (d *Decisions) Resolve(id, piece string, raw []byte) error {
	d.mu.Lock()
	p, ok := d.pending[id]
	d.mu.Unlock()
	if !ok {
		return ErrUnknownDecision
	}
	if p.piece != piece {
		return fmt.Errorf("%w: %s", ErrWrongPlayer, piece)
	}

	select {
	case p.answer <- raw:
	default:
		d.log.WithField("decision", id).Debug("duplicate answer dropped")
	}
	return nil
}

func (d *Decisions) Pending() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.pending)
}

func dialogPayload(dialog game.Dialog) map[string]interface{} {
	switch dl := dialog.(type) {
	case *game.SeizureDialog:
		return map[string]interface{}{
			"request_amount": dl.RequestAmount,
			"required":       propertyNames(dl.Required),
			"candidates":     propertyNames(dl.Candidates),
		}
	case *game.PurchaseDialog:
		return map[string]interface{}{"property": dl.Property.Name(), "price": dl.Price}
	}
	return map[string]interface{}{}
}

func propertyNames(props []*game.ZoneProperty) []string {
	out := make([]string, 0, len(props))
	for _, zp := range props {
		out = append(out, zp.Name())
	}
	return out
}
