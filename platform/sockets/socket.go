package socket

import (
	"context"
	"encoding/json"
	"errors"
	"math/rand"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/DedS3t/speculation-backend/app/game"
	"github.com/DedS3t/speculation-backend/app/models"
	"github.com/DedS3t/speculation-backend/platform/board"
	"github.com/DedS3t/speculation-backend/platform/cache"
	"github.com/DedS3t/speculation-backend/platform/config"
	"github.com/DedS3t/speculation-backend/platform/queries"
	"github.com/DedS3t/speculation-backend/platform/sessions"
	"github.com/go-pg/pg/v10"
	"github.com/gomodule/redigo/redis"
	socketio "github.com/googollee/go-socket.io"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
)

// member is the socket context of a joined player.
type member struct {
	GameID   string
	UserID   string
	Username string
}

type gameMessage struct {
	GameID   string          `json:"game_id"`
	UserID   string          `json:"user_id"`
	Property string          `json:"property"`
	ID       string          `json:"id"`
	Answer   json.RawMessage `json:"answer"`
}

// running holds the per-game collaborators that outlive a single event.
type running struct {
	session   *sessions.Session
	decisions *Decisions
	journal   *queries.Journal
	projector *cache.Projector
}

type Server struct {
	io       *socketio.Server
	cfg      *config.Config
	db       *pg.DB
	pool     *redis.Pool
	registry *sessions.Registry
	layout   *models.BoardLayout
	dice     sessions.Dice
	log      logrus.FieldLogger

	mu    sync.Mutex
	games map[string]*running
}

func NewServer(cfg *config.Config, db *pg.DB, pool *redis.Pool, registry *sessions.Registry, layout *models.BoardLayout) (*Server, error) {
	io, err := socketio.NewServer(nil)
	if err != nil {
		return nil, err
	}
	s := &Server{
		io:       io,
		cfg:      cfg,
		db:       db,
		pool:     pool,
		registry: registry,
		layout:   layout,
		dice:     sessions.RandomDice(rand.New(rand.NewSource(time.Now().UnixNano()))),
		log:      logrus.WithField("component", "socket"),
		games:    make(map[string]*running),
	}
	s.routes()
	return s, nil
}

func (s *Server) routes() {
	s.io.OnConnect(namespace, func(c socketio.Conn) error {
		c.SetContext(nil)
		return nil
	})

	s.io.OnEvent(namespace, "join-game", s.joinGame)
	s.io.OnEvent(namespace, "leave-game", s.leaveGame)
	s.io.OnEvent(namespace, "start-game", s.startGame)

	s.io.OnEvent(namespace, "roll-dice", s.withSession(func(ctx context.Context, c socketio.Conn, g *running, m *member, _ gameMessage) error {
		res, err := g.session.Roll(ctx, m.Username)
		if err != nil {
			return err
		}
		return emitJSON(s.io, m.GameID, "dice-rolled", res)
	}))

	s.io.OnEvent(namespace, "request-buy", s.withSession(func(ctx context.Context, c socketio.Conn, g *running, m *member, _ gameMessage) error {
		return g.session.Buy(ctx, m.Username)
	}))

	s.io.OnEvent(namespace, "upgrade", s.withSession(func(ctx context.Context, c socketio.Conn, g *running, m *member, msg gameMessage) error {
		return g.session.Upgrade(ctx, m.Username, msg.Property)
	}))

	s.io.OnEvent(namespace, "end-turn", s.withSession(func(ctx context.Context, c socketio.Conn, g *running, m *member, _ gameMessage) error {
		return g.session.EndTurn(ctx, m.Username)
	}))

	// answers bypass the session lock held by the asking turn
	s.io.OnEvent(namespace, "decision-response", func(c socketio.Conn, jsonStr string) {
		m, msg, ok := s.decode(c, jsonStr)
		if !ok {
			return
		}
		g, ok := s.lookup(m.GameID)
		if !ok {
			c.Emit("error-message", sessions.ErrNoSession.Error())
			return
		}
		if err := g.decisions.Resolve(msg.ID, m.Username, msg.Answer); err != nil {
			c.Emit("error-message", err.Error())
		}
	})

	s.io.OnError(namespace, func(c socketio.Conn, e error) {
		s.log.WithError(e).Warn("socket error")
	})

	s.io.OnDisconnect(namespace, func(c socketio.Conn, reason string) {
		for _, room := range c.Rooms() {
			s.io.BroadcastToRoom(namespace, room, "player-left")
		}
		c.LeaveAll()
	})
}

func (s *Server) joinGame(c socketio.Conn, jsonStr string) {
	var msg gameMessage
	if err := json.Unmarshal([]byte(jsonStr), &msg); err != nil || msg.GameID == "" {
		c.Emit("error-message", "game_id not passed")
		return
	}
	ctx := context.Background()
	if !queries.VerifyGame(ctx, msg.GameID, s.db) {
		c.Emit("error-message", "Invalid game")
		c.Emit("failed")
		return
	}
	if msg.UserID == "" {
		c.Emit("error-message", "User not authenticated")
		c.Emit("failed")
		return
	}

	user, err := queries.GetUserData(ctx, msg.UserID, s.db)
	if err != nil {
		c.Emit("error-message", "User retrieval failed")
		c.Emit("failed")
		return
	}
	player := &models.Player{Game_id: msg.GameID, User_id: user.Id, Username: user.Email}
	if err := queries.CreatePlayer(ctx, player, s.db); err != nil {
		s.log.WithError(err).WithField("game_id", msg.GameID).Warn("creating player failed")
		c.Emit("error-message", "Failed creating player")
		c.Emit("failed")
		return
	}

	c.SetContext(&member{GameID: msg.GameID, UserID: user.Id, Username: user.Email})
	s.io.BroadcastToRoom(namespace, msg.GameID, "player-join", user.Email)
	c.Join(msg.GameID)
	c.Emit("joined-game", strconv.Itoa(s.io.RoomLen(namespace, msg.GameID)))
}

func (s *Server) leaveGame(c socketio.Conn, jsonStr string) {
	m, _, ok := s.decode(c, jsonStr)
	if !ok {
		return
	}
	ctx := context.Background()
	c.Leave(m.GameID)
	c.SetContext(nil)

	if g, ok := s.lookup(m.GameID); ok {
		if err := g.session.Leave(ctx, m.Username); err != nil && !errors.Is(err, sessions.ErrGameOver) {
			s.log.WithError(err).Warn("leave failed")
		}
	}
	if err := queries.DeletePlayer(ctx, m.UserID, m.GameID, s.db); err != nil {
		s.log.WithError(err).Warn("deleting player failed")
	}
	s.io.BroadcastToRoom(namespace, m.GameID, "player-left", m.Username)
}

func (s *Server) startGame(c socketio.Conn, jsonStr string) {
	m, _, ok := s.decode(c, jsonStr)
	if !ok {
		return
	}
	if err := s.start(context.Background(), m.GameID); err != nil {
		s.log.WithError(err).WithField("game_id", m.GameID).Warn("failed to start game")
		c.Emit("error-message", "Unable to start game")
	}
}

// start builds the board for a game and announces the first turn.
func (s *Server) start(ctx context.Context, gameID string) error {
	players, err := queries.StartGame(ctx, gameID, s.db)
	if err != nil {
		return err
	}
	zones, err := board.BuildZones(s.layout)
	if err != nil {
		return err
	}

	log := s.log.WithField("game_id", gameID)
	g := &running{
		decisions: NewDecisions(s.io, gameID, s.cfg.DecisionTimeout, log),
		journal:   queries.NewJournal(gameID, queries.PGEventStore{DB: s.db}, log),
		projector: cache.NewProjector(s.pool, gameID, log),
	}

	bus := game.NewDispatcher(log)
	bus.Subscribe(NewBroadcaster(s.io, gameID, log))
	bus.Subscribe(g.projector)
	bus.Subscribe(g.journal)
	bus.Subscribe(game.ObserverFunc(func(_ context.Context, ev game.Event) {
		if over, ok := ev.(game.GameOver); ok {
			go s.finish(gameID, over.Winner)
		}
	}))

	b := game.NewBoard(zones, bus, game.WithDecisionService(g.decisions), game.WithLogger(log))
	start := board.Start(zones)
	for _, player := range players {
		p, err := b.AddPiece(player.Username, s.cfg.StartingBalance, start)
		if err != nil {
			return err
		}
		p.SetTeam(player.Team)
	}

	g.session = sessions.New(gameID, b, s.dice, log)
	if !s.registry.Add(g.session) {
		g.journal.Close()
		return errors.New("game already running")
	}
	s.mu.Lock()
	s.games[gameID] = g
	s.mu.Unlock()

	if err := g.projector.Seed(b.Pieces()); err != nil {
		log.WithError(err).Warn("seeding cache failed")
	}
	if err := emitJSON(s.io, gameID, "game-start", g.session.Snapshot()); err != nil {
		return err
	}
	g.session.Start(ctx)
	return nil
}

func (s *Server) finish(gameID string, winner game.PieceView) {
	name := ""
	if winner != nil {
		name = winner.Name()
	}
	if err := queries.FinishGame(context.Background(), gameID, name, s.db); err != nil {
		s.log.WithError(err).WithField("game_id", gameID).Error("finishing game failed")
	}

	s.mu.Lock()
	g, ok := s.games[gameID]
	delete(s.games, gameID)
	s.mu.Unlock()
	s.registry.Remove(gameID)
	if !ok {
		return
	}
	g.journal.Close()
	if err := g.projector.CleanUp(); err != nil {
		s.log.WithError(err).WithField("game_id", gameID).Warn("cache cleanup failed")
	}
}

func (s *Server) lookup(gameID string) (*running, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.games[gameID]
	return g, ok
}

func (s *Server) decode(c socketio.Conn, jsonStr string) (*member, gameMessage, bool) {
	var msg gameMessage
	if jsonStr != "" {
		if err := json.Unmarshal([]byte(jsonStr), &msg); err != nil {
			c.Emit("error-message", "malformed message")
			return nil, msg, false
		}
	}
	m, ok := c.Context().(*member)
	if !ok || m == nil {
		c.Emit("error-message", "join a game first")
		return nil, msg, false
	}
	return m, msg, true
}

type sessionHandler func(ctx context.Context, c socketio.Conn, g *running, m *member, msg gameMessage) error

func (s *Server) withSession(h sessionHandler) func(socketio.Conn, string) {
	return func(c socketio.Conn, jsonStr string) {
		m, msg, ok := s.decode(c, jsonStr)
		if !ok {
			return
		}
		g, ok := s.lookup(m.GameID)
		if !ok {
			c.Emit("error-message", sessions.ErrNoSession.Error())
			return
		}
		// run off the connection's read loop so this player can still answer decisions
		go func() {
			if err := h(context.Background(), c, g, m, msg); err != nil {
				c.Emit("error-message", err.Error())
			}
		}()
	}
}

// ListenAndServe blocks serving socket.io on the configured address.
func (s *Server) ListenAndServe() error {
	go func() {
		if err := s.io.Serve(); err != nil {
			s.log.WithError(err).Error("socket.io serve stopped")
		}
	}()
	defer s.io.Close()

	c := cors.New(cors.Options{
		AllowedOrigins:   s.cfg.AllowedOrigins,
		AllowCredentials: true,
	})

	mux := http.NewServeMux()
	mux.Handle("/socket.io/", s.io)
	return http.ListenAndServe(s.cfg.SocketAddr, c.Handler(mux))
}
