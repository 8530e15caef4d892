package main

import (
	"context"

	"github.com/DedS3t/speculation-backend/app/controllers"
	"github.com/DedS3t/speculation-backend/pkg/routes"
	"github.com/DedS3t/speculation-backend/platform/board"
	"github.com/DedS3t/speculation-backend/platform/cache"
	"github.com/DedS3t/speculation-backend/platform/config"
	"github.com/DedS3t/speculation-backend/platform/database"
	"github.com/DedS3t/speculation-backend/platform/logging"
	"github.com/DedS3t/speculation-backend/platform/sessions"
	socket "github.com/DedS3t/speculation-backend/platform/sockets"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("loading config")
	}
	logging.Init(cfg.LogLevel)

	layout, err := board.LoadLayout(cfg.BoardPath)
	if err != nil {
		logrus.WithError(err).Fatal("loading board")
	}

	db := database.PostgreSQLConnection(cfg.DB)
	defer db.Close()
	if err := database.CreateSchema(context.Background(), db); err != nil {
		logrus.WithError(err).Fatal("creating schema")
	}

	pool := cache.CreateRedisPool(cfg.RedisURL)
	defer pool.Close()

	registry := sessions.NewRegistry()
	io, err := socket.NewServer(cfg, db, pool, registry, layout)
	if err != nil {
		logrus.WithError(err).Fatal("creating socket server")
	}
	go func() {
		if err := io.ListenAndServe(); err != nil {
			logrus.WithError(err).Fatal("socket server stopped")
		}
	}()

	api := &controllers.API{DB: db, Sessions: registry, Secret: []byte(cfg.JWTSecret)}
	app := fiber.New()
	app.Use(cors.New())
	routes.AuthRoutes(app, api)
	routes.GameRoutes(app, api)
	routes.PrivateRoutes(app, api)

	if err := app.Listen(cfg.HTTPAddr); err != nil {
		logrus.WithError(err).Fatal("http server stopped")
	}
}
