package routes

import (
	"github.com/DedS3t/speculation-backend/app/controllers"
	"github.com/gofiber/fiber/v2"
)

func AuthRoutes(a *fiber.App, api *controllers.API) {
	route := a.Group("/user")

	route.Post("/register", api.CreateUser)
	route.Post("/login", api.Login)
}
