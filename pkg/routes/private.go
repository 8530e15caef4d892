package routes

import (
	"github.com/DedS3t/speculation-backend/app/controllers"
	"github.com/gofiber/fiber/v2"
	jwtware "github.com/gofiber/jwt/v2"
)

// PrivateRoutes registers everything that needs a bearer token. It must be
// called after the public routes.
func PrivateRoutes(a *fiber.App, api *controllers.API) {
	a.Use(jwtware.New(jwtware.Config{
		SigningKey: api.Secret,
	}))

	a.Get("/user/cur", controllers.Cur)
	a.Get("/game/:id/state", api.GameState)
	a.Get("/game/:id/events", api.GameEvents)
}
