package game

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sirupsen/logrus"
)

type DialogKind string

const (
	DialogSeizure  DialogKind = "seizure"
	DialogPurchase DialogKind = "purchase"
)

// Message tags the situation a decision is asked in.
type Message string

const (
	MessageSeizure  Message = "seizure"
	MessagePurchase Message = "purchase"
)

// Dialog is the typed body of a decision request. DecodeResponse turns a
// raw answer from a remote decision-maker into the dialog's response type.
type Dialog interface {
	Kind() DialogKind
	DecodeResponse(data []byte) (interface{}, error)
}

// Request is the bundle handed to a DecisionService. Default must be pure;
// it may or may not be called.
type Request struct {
	Kind    DialogKind
	Piece   PieceView
	Message Message
	Dialog  Dialog
	Default func() interface{}
}

// DecisionService asks an external decision-maker and blocks until an
// answer, a timeout or ctx cancellation. Any error means "use the default".
type DecisionService interface {
	Request(ctx context.Context, req *Request) (interface{}, error)
}

// DefaultDecisions answers every request with its default.
type DefaultDecisions struct{}

func (DefaultDecisions) Request(_ context.Context, req *Request) (interface{}, error) {
	return req.Default(), nil
}

// request asks the board's decision service on behalf of p. Any failure,
// cancellation or mistyped answer falls back to def.
func request[R any](ctx context.Context, p *Piece, dialog Dialog, msg Message, def func() R) R {
	svc := p.board.decisions
	if svc == nil || ctx.Err() != nil {
		return def()
	}

	resp, err := svc.Request(ctx, &Request{
		Kind:    dialog.Kind(),
		Piece:   p,
		Message: msg,
		Dialog:  dialog,
		Default: func() interface{} { return def() },
	})
	if err != nil {
		p.board.log.WithFields(logrus.Fields{
			"piece":  p.name,
			"dialog": dialog.Kind(),
		}).WithError(err).Debug("decision fell back to default")
		return def()
	}

	r, ok := resp.(R)
	if !ok {
		p.board.log.WithFields(logrus.Fields{
			"piece":  p.name,
			"dialog": dialog.Kind(),
		}).Warnf("decision answered with %T", resp)
		return def()
	}
	return r
}

// SeizureDialog asks the owner which properties to liquidate for a debt.
// The response is a []*ZoneProperty drawn from Candidates.
type SeizureDialog struct {
	RequestAmount int
	Required      []*ZoneProperty
	Candidates    []*ZoneProperty
}

func (d *SeizureDialog) Kind() DialogKind { return DialogSeizure }

// DecodeResponse reads a JSON array of zone names. Unknown names are dropped.
func (d *SeizureDialog) DecodeResponse(data []byte) (interface{}, error) {
	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		return nil, fmt.Errorf("decode seizure response: %w", err)
	}

	byName := make(map[string]*ZoneProperty, len(d.Candidates))
	for _, zp := range d.Candidates {
		byName[zp.Name()] = zp
	}

	selected := make([]*ZoneProperty, 0, len(names))
	for _, name := range names {
		if zp, ok := byName[name]; ok {
			selected = append(selected, zp)
		}
	}
	return selected, nil
}

// PurchaseDialog asks whether to buy an unowned property. The response is a bool.
type PurchaseDialog struct {
	Property *ZoneProperty
	Price    int
}

func (d *PurchaseDialog) Kind() DialogKind { return DialogPurchase }

func (d *PurchaseDialog) DecodeResponse(data []byte) (interface{}, error) {
	var accept bool
	if err := json.Unmarshal(data, &accept); err != nil {
		return nil, fmt.Errorf("decode purchase response: %w", err)
	}
	return accept, nil
}

// AskPurchase asks the piece's decision-maker whether to buy zp, declining by default.
func (p *Piece) AskPurchase(ctx context.Context, zp *ZoneProperty) bool {
	return request(ctx, p, &PurchaseDialog{Property: zp, Price: zp.Price()}, MessagePurchase, func() bool { return false })
}
