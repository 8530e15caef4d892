package cache

import (
	"context"
	"fmt"

	"github.com/DedS3t/speculation-backend/app/game"
	"github.com/gomodule/redigo/redis"
	"github.com/sirupsen/logrus"
)

// Projector mirrors live piece state into redis for clients that poll
// instead of listening on the socket. Keys:
//
//	<game>.order              list of piece names in seat order
//	<game>.<piece>            hash of bal, pos, bankrupt, jail
//	<game>.<piece>.cards      hash of property name to level
type Projector struct {
	pool   *redis.Pool
	gameID string
	log    logrus.FieldLogger
}

var _ game.Observer = (*Projector)(nil)

func NewProjector(pool *redis.Pool, gameID string, log logrus.FieldLogger) *Projector {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Projector{pool: pool, gameID: gameID, log: log.WithField("game_id", gameID)}
}

func PieceKey(gameID, piece string) string { return fmt.Sprintf("%s.%s", gameID, piece) }

func CardsKey(gameID, piece string) string { return fmt.Sprintf("%s.%s.cards", gameID, piece) }

func OrderKey(gameID string) string { return fmt.Sprintf("%s.order", gameID) }

// Seed writes the seat order and the initial state of every piece.
func (p *Projector) Seed(pieces []*game.Piece) error {
	conn := p.pool.Get()
	defer conn.Close()

	names := make([]interface{}, 0, len(pieces))
	for _, piece := range pieces {
		names = append(names, piece.Name())
		if err := p.writePiece(conn, piece); err != nil {
			return err
		}
	}
	if err := Del(OrderKey(p.gameID), conn); err != nil {
		return err
	}
	return RPUSH(OrderKey(p.gameID), names, conn)
}

func (p *Projector) OnEvent(_ context.Context, ev game.Event) {
	conn := p.pool.Get()
	defer conn.Close()

	var err error
	switch e := ev.(type) {
	case game.PieceTransfer:
		err = p.writeView(conn, e.Piece)
		if err == nil {
			err = p.writeView(conn, e.Receiver)
		}
	case game.PropertyUpdate:
		err = p.writeOwnership(conn, e)
	case game.PieceGambleEnd:
		views := append(append([]game.PieceView(nil), e.Winners...), e.Losers...)
		for _, v := range views {
			if err = p.writeView(conn, v); err != nil {
				break
			}
		}
	default:
		if s := game.Subject(ev); s != nil {
			err = p.writeView(conn, s)
		}
	}
	if err != nil {
		p.log.WithError(err).WithField("event", ev.Kind()).Warn("projection failed")
	}
}

func (p *Projector) writeView(conn redis.Conn, v game.PieceView) error {
	if piece, ok := v.(*game.Piece); ok {
		return p.writePiece(conn, piece)
	}
	return nil
}

func (p *Projector) writePiece(conn redis.Conn, piece *game.Piece) error {
	zone := ""
	if z := piece.Zone(); z != nil {
		zone = z.Name()
	}
	return HMSET(PieceKey(p.gameID, piece.Name()), map[string]interface{}{
		"bal":      piece.Balance(),
		"pos":      zone,
		"bankrupt": piece.IsBankrupt(),
		"jail":     piece.JailCount(),
	}, conn)
}

func (p *Projector) writeOwnership(conn redis.Conn, e game.PropertyUpdate) error {
	name := e.Property.Name()
	if e.Old != nil && e.Old.Owner != nil {
		if err := HDEL(CardsKey(p.gameID, e.Old.Owner.Name()), name, conn); err != nil {
			return err
		}
	}
	if e.New != nil && e.New.Owner != nil {
		return HSET(CardsKey(p.gameID, e.New.Owner.Name()), name, e.New.Level, conn)
	}
	return nil
}

// CleanUp drops every key the projector wrote for the game.
func (p *Projector) CleanUp() error {
	conn := p.pool.Get()
	defer conn.Close()

	names, err := LGET(OrderKey(p.gameID), conn)
	if err != nil {
		return err
	}
	for _, name := range names {
		if err := Del(PieceKey(p.gameID, name), conn); err != nil {
			return err
		}
		if err := Del(CardsKey(p.gameID, name), conn); err != nil {
			return err
		}
	}
	return Del(OrderKey(p.gameID), conn)
}
