package sessions

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"

	"github.com/DedS3t/speculation-backend/app/game"
	"github.com/DedS3t/speculation-backend/app/models"
	"github.com/DedS3t/speculation-backend/platform/board"
	"github.com/sirupsen/logrus"
)

var (
	ErrGameOver      = errors.New("game is over")
	ErrNotYourTurn   = errors.New("not your turn")
	ErrAlreadyRolled = errors.New("you have already rolled the dice")
	ErrMustRoll      = errors.New("you must roll the dice first")
	ErrUnknownPiece  = errors.New("no such piece in this game")
	ErrNotForSale    = errors.New("nothing to buy here")
	ErrCannotAfford  = errors.New("not enough balance")
	ErrNotOwner      = errors.New("property is not yours")
)

// Dice rolls n dice.
type Dice func(n int) []int

func RandomDice(r *rand.Rand) Dice {
	var mu sync.Mutex
	return func(n int) []int {
		mu.Lock()
		defer mu.Unlock()
		out := make([]int, n)
		for i := range out {
			out[i] = r.Intn(6) + 1
		}
		return out
	}
}

type RollResult struct {
	Dice    []int  `json:"dice"`
	Doubles bool   `json:"doubles"`
	Jailed  bool   `json:"jailed"`
	Zone    string `json:"zone"`
}

// Session runs the turns of one game. Every method holds the session lock
// for its whole duration, decisions included.
type Session struct {
	ID string

	mu     sync.Mutex
	board  *game.Board
	order  []*game.Piece
	turn   int
	rolled bool
	over   bool
	dice   Dice
	log    logrus.FieldLogger
}

// New seats the board's pieces in join order. The first piece starts.
func New(id string, b *game.Board, dice Dice, log logrus.FieldLogger) *Session {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Session{
		ID:    id,
		board: b,
		order: b.Pieces(),
		dice:  dice,
		log:   log.WithField("game_id", id),
	}
}

func (s *Session) Board() *game.Board { return s.board }

// Start announces the first turn.
func (s *Session) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.checkOver(ctx) {
		return
	}
	s.board.Publish(ctx, game.PieceTakeTurn{Piece: s.order[s.turn]})
}

// Current is the piece whose turn it is, or nil once the game is over.
func (s *Session) Current() *game.Piece {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.over {
		return nil
	}
	return s.order[s.turn]
}

func (s *Session) IsOver() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.over
}

func (s *Session) Roll(ctx context.Context, name string) (*RollResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.actor(name)
	if err != nil {
		return nil, err
	}
	if s.rolled {
		return nil, ErrAlreadyRolled
	}

	res := &RollResult{Dice: s.dice(p.NumberOfDice())}
	res.Doubles = doubles(res.Dice)
	s.rolled = !res.Doubles

	if remaining := p.JailCount(); remaining > 0 {
		if !res.Doubles {
			p.SetJailCount(remaining - 1)
		} else {
			p.SetJailCount(0)
		}
		s.board.Publish(ctx, game.PieceJailbreak{Piece: p, Remaining: p.JailCount(), Success: res.Doubles})
		if !res.Doubles {
			s.rolled = true
			res.Jailed = true
			res.Zone = p.Zone().Name()
			return res, nil
		}
		// leaving jail uses up the turn
		s.rolled = true
	}

	if err := p.Advance(ctx, sum(res.Dice), game.CauseDice, s.collectSalary); err != nil {
		return nil, fmt.Errorf("move %s: %w", p.Name(), err)
	}
	res.Zone = p.Zone().Name()
	if p.JailCount() > 0 {
		s.rolled = true
		res.Jailed = true
	}

	if zp, ok := p.Zone().(*game.ZoneProperty); ok && zp.Owner() == nil && !p.IsBankrupt() {
		if p.Balance() >= zp.Price() && p.AskPurchase(ctx, zp) {
			if err := s.purchase(ctx, p, zp); err != nil {
				s.log.WithError(err).WithField("piece", p.Name()).Warn("purchase failed")
			}
		}
	}

	s.afterAction(ctx, p)
	return res, nil
}

// Buy purchases the unowned property the current piece stands on.
func (s *Session) Buy(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.actor(name)
	if err != nil {
		return err
	}
	zp, ok := p.Zone().(*game.ZoneProperty)
	if !ok || zp.Owner() != nil {
		return ErrNotForSale
	}
	if p.Balance() < zp.Price() {
		return ErrCannotAfford
	}
	return s.purchase(ctx, p, zp)
}

// Upgrade raises one of the current piece's properties by a level.
func (s *Session) Upgrade(ctx context.Context, name, property string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.actor(name)
	if err != nil {
		return err
	}
	z, err := board.GetByName(property, s.board.Zones())
	if err != nil {
		return err
	}
	zp, ok := z.(*game.ZoneProperty)
	if !ok || zp.Owner() == nil || zp.Owner().Name() != p.Name() {
		return ErrNotOwner
	}
	next := zp.Level() + 1
	if next > zp.MaxLevel() {
		return fmt.Errorf("%s is fully upgraded", property)
	}
	cost := zp.Levels()[next].Cost
	if p.Balance() < cost {
		return ErrCannotAfford
	}
	p.Withdraw(ctx, cost, zp)
	return zp.Upgrade(ctx, next, p)
}

func (s *Session) EndTurn(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.actor(name)
	if err != nil {
		return err
	}
	if !s.rolled {
		return ErrMustRoll
	}
	s.nextTurn(ctx, p)
	return nil
}

// Leave forfeits the piece. Everything it owns goes back to the bank.
func (s *Session) Leave(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.over {
		return ErrGameOver
	}

	p, ok := s.board.Piece(name)
	if !ok {
		return ErrUnknownPiece
	}
	if !p.IsBankrupt() {
		p.Withdraw(ctx, p.Balance()+p.Assets()+1, p.Zone())
	}
	s.afterAction(ctx, p)
	return nil
}

// Snapshot lists every piece's state in seat order.
func (s *Session) Snapshot() []models.PlayerDto {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.PlayerDto, 0, len(s.order))
	for _, p := range s.order {
		out = append(out, models.NewPlayerDto(p))
	}
	return out
}

func (s *Session) actor(name string) (*game.Piece, error) {
	if s.over {
		return nil, ErrGameOver
	}
	p, ok := s.board.Piece(name)
	if !ok {
		return nil, ErrUnknownPiece
	}
	if s.order[s.turn] != p {
		return nil, ErrNotYourTurn
	}
	return p, nil
}

func (s *Session) purchase(ctx context.Context, p *game.Piece, zp *game.ZoneProperty) error {
	if paid := p.Withdraw(ctx, zp.Price(), zp); paid < zp.Price() {
		return ErrCannotAfford
	}
	return zp.Acquire(ctx, p, p)
}

// collectSalary pays start zone salaries on every forward step through them.
func (s *Session) collectSalary(ctx context.Context, j *game.Journey, z game.Zone) error {
	start, ok := z.(*board.StartZone)
	if !ok || start.Salary <= 0 || j.Movement().Kind != game.MovementForward {
		return nil
	}
	j.Mover().Deposit(ctx, start.Salary, start)
	return nil
}

// afterAction ends the game or skips a piece that just went bankrupt.
func (s *Session) afterAction(ctx context.Context, p *game.Piece) {
	if s.checkOver(ctx) {
		return
	}
	if p.IsBankrupt() && s.order[s.turn] == p {
		s.nextTurn(ctx, p)
	}
}

func (s *Session) nextTurn(ctx context.Context, p *game.Piece) {
	s.board.Publish(ctx, game.PieceTurnOver{Piece: p})
	s.rolled = false
	if s.checkOver(ctx) {
		return
	}
	for i := 1; i <= len(s.order); i++ {
		next := (s.turn + i) % len(s.order)
		if !s.order[next].IsBankrupt() {
			s.turn = next
			break
		}
	}
	s.board.Publish(ctx, game.PieceTakeTurn{Piece: s.order[s.turn]})
}

// checkOver ends the game once the survivors are all on one side.
func (s *Session) checkOver(ctx context.Context) bool {
	if s.over {
		return true
	}
	survivors := s.board.Survivors()
	for _, a := range survivors {
		for _, b := range survivors {
			if !a.IsFriendly(b) {
				return false
			}
		}
	}

	s.over = true
	var winner game.PieceView
	if len(survivors) > 0 {
		winner = survivors[0]
	}
	s.log.WithField("survivors", len(survivors)).Info("game over")
	s.board.Publish(ctx, game.GameOver{Winner: winner})
	return true
}

func doubles(dice []int) bool {
	if len(dice) < 2 {
		return false
	}
	for _, d := range dice[1:] {
		if d != dice[0] {
			return false
		}
	}
	return true
}

func sum(dice []int) int {
	total := 0
	for _, d := range dice {
		total += d
	}
	return total
}
