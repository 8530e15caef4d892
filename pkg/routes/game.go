package routes

import (
	"github.com/DedS3t/speculation-backend/app/controllers"
	"github.com/gofiber/fiber/v2"
)

func GameRoutes(a *fiber.App, api *controllers.API) {
	route := a.Group("/game")
	route.Post("/create", api.CreateGame)
	route.Get("/verify", api.VerifyGame)
	route.Get("/all", api.GetAllAvailGames)
}
