package controllers

import (
	"github.com/DedS3t/speculation-backend/app/models"
	"github.com/DedS3t/speculation-backend/platform/queries"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

func (a *API) CreateGame(c *fiber.Ctx) error {
	gameCreateDto := new(models.GameCreateDto)
	if err := c.BodyParser(gameCreateDto); err != nil {
		return c.SendStatus(fiber.StatusBadRequest)
	}

	game, err := queries.CreateGame(c.Context(), gameCreateDto.Name, a.DB)
	if err != nil {
		logrus.WithError(err).Error("creating game failed")
		return c.SendStatus(fiber.StatusInternalServerError)
	}
	return c.JSON(fiber.Map{"id": game.Id})
}

func (a *API) GetAllAvailGames(c *fiber.Ctx) error {
	games, err := queries.AvailableGames(c.Context(), a.DB)
	if err != nil {
		logrus.WithError(err).Error("listing games failed")
		return c.SendStatus(fiber.StatusInternalServerError)
	}
	return c.JSON(games)
}

func (a *API) VerifyGame(c *fiber.Ctx) error {
	verifyGameDto := new(models.VerifyGameDto)
	if err := c.QueryParser(verifyGameDto); err != nil {
		return c.SendStatus(fiber.StatusBadRequest)
	}
	return c.JSON(fiber.Map{"status": queries.VerifyGame(c.Context(), verifyGameDto.Code, a.DB)})
}

// GameState reports the live state of a running game.
func (a *API) GameState(c *fiber.Ctx) error {
	session, err := a.Sessions.Get(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}

	turn := ""
	if p := session.Current(); p != nil {
		turn = p.Name()
	}
	return c.JSON(fiber.Map{
		"id":      session.ID,
		"turn":    turn,
		"over":    session.IsOver(),
		"players": session.Snapshot(),
	})
}

func (a *API) GameEvents(c *fiber.Ctx) error {
	records, err := queries.GameEvents(c.Context(), c.Params("id"), a.DB)
	if err != nil {
		logrus.WithError(err).Error("reading journal failed")
		return c.SendStatus(fiber.StatusInternalServerError)
	}
	return c.JSON(records)
}
