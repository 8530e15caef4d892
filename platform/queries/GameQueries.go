package queries

import (
	"context"
	"errors"

	"github.com/DedS3t/speculation-backend/app/models"
	"github.com/go-pg/pg/v10"
	uuid "github.com/satori/go.uuid"
)

var ErrNotEnoughPlayers = errors.New("a game needs at least two players")

func CreateGame(ctx context.Context, name string, db *pg.DB) (*models.Game, error) {
	game := &models.Game{
		Id:     uuid.NewV4().String()[:8],
		Name:   name,
		Status: models.GameOpen,
	}
	_, err := db.ModelContext(ctx, game).Insert()
	return game, err
}

func VerifyGame(ctx context.Context, id string, db *pg.DB) bool {
	game := &models.Game{Id: id}
	err := db.ModelContext(ctx, game).WherePK().Select()
	return err == nil && game.Status == models.GameOpen
}

func AvailableGames(ctx context.Context, db *pg.DB) ([]models.Game, error) {
	var games []models.Game
	err := db.ModelContext(ctx, &games).Where("status = ?", models.GameOpen).Order("created_at").Select()
	return games, err
}

func CreatePlayer(ctx context.Context, player *models.Player, db *pg.DB) error {
	count, err := db.ModelContext(ctx, (*models.Player)(nil)).Where("game_id = ?", player.Game_id).Count()
	if err != nil {
		return err
	}
	player.Seat = count
	_, err = db.ModelContext(ctx, player).Insert()
	return err
}

// GamePlayers lists the players of a game in seat order.
func GamePlayers(ctx context.Context, gameID string, db *pg.DB) ([]models.Player, error) {
	var players []models.Player
	err := db.ModelContext(ctx, &players).Where("game_id = ?", gameID).Order("seat").Select()
	return players, err
}

// DeletePlayer removes a player and drops the game once it is empty.
func DeletePlayer(ctx context.Context, userID, gameID string, db *pg.DB) error {
	_, err := db.ModelContext(ctx, (*models.Player)(nil)).
		Where("user_id = ? AND game_id = ?", userID, gameID).
		Delete()
	if err != nil {
		return err
	}
	return CheckDB(ctx, gameID, db)
}

func CheckDB(ctx context.Context, gameID string, db *pg.DB) error {
	count, err := db.ModelContext(ctx, (*models.Player)(nil)).Where("game_id = ?", gameID).Count()
	if err != nil || count > 0 {
		return err
	}
	_, err = db.ModelContext(ctx, (*models.Game)(nil)).Where("id = ?", gameID).Delete()
	return err
}

// StartGame marks an open game as running and returns its players.
func StartGame(ctx context.Context, gameID string, db *pg.DB) ([]models.Player, error) {
	players, err := GamePlayers(ctx, gameID, db)
	if err != nil {
		return nil, err
	}
	if len(players) < 2 {
		return nil, ErrNotEnoughPlayers
	}
	_, err = db.ModelContext(ctx, &models.Game{Id: gameID}).
		Set("status = ?", models.GameInProgress).
		Where("id = ? AND status = ?", gameID, models.GameOpen).
		Update()
	return players, err
}

func FinishGame(ctx context.Context, gameID, winner string, db *pg.DB) error {
	_, err := db.ModelContext(ctx, &models.Game{Id: gameID}).
		Set("status = ?", models.GameFinished).
		Set("winner = ?", winner).
		WherePK().
		Update()
	return err
}

func GameEvents(ctx context.Context, gameID string, db *pg.DB) ([]models.EventRecord, error) {
	var records []models.EventRecord
	err := db.ModelContext(ctx, &records).Where("game_id = ?", gameID).Order("seq").Select()
	return records, err
}
