package database

import (
	"context"
	"fmt"

	"github.com/DedS3t/speculation-backend/app/models"
	"github.com/DedS3t/speculation-backend/platform/config"
	"github.com/go-pg/pg/v10"
	"github.com/go-pg/pg/v10/orm"
)

func PostgreSQLConnection(cfg config.Database) *pg.DB {
	return pg.Connect(&pg.Options{
		User:     cfg.User,
		Addr:     cfg.Addr,
		Password: cfg.Password,
		Database: cfg.Name,
	})
}

// CreateSchema creates the tables that do not exist yet.
func CreateSchema(ctx context.Context, db *pg.DB) error {
	tables := []interface{}{
		(*models.User)(nil),
		(*models.Game)(nil),
		(*models.Player)(nil),
		(*models.EventRecord)(nil),
	}
	for _, model := range tables {
		err := db.ModelContext(ctx, model).CreateTable(&orm.CreateTableOptions{IfNotExists: true})
		if err != nil {
			return fmt.Errorf("create table for %T: %w", model, err)
		}
	}
	return nil
}
