package queries

import (
	"context"

	"github.com/DedS3t/speculation-backend/app/models"
	"github.com/go-pg/pg/v10"
	uuid "github.com/satori/go.uuid"
)

func CreateUser(ctx context.Context, email, passwordHash string, db *pg.DB) (*models.User, error) {
	user := &models.User{
		Id:       uuid.NewV4().String(),
		Email:    email,
		Password: passwordHash,
	}
	_, err := db.ModelContext(ctx, user).Insert()
	return user, err
}

func GetUserByEmail(ctx context.Context, email string, db *pg.DB) (*models.User, error) {
	user := new(models.User)
	err := db.ModelContext(ctx, user).Where("email = ?", email).Select()
	return user, err
}

func GetUserData(ctx context.Context, id string, db *pg.DB) (*models.User, error) {
	user := &models.User{Id: id}
	err := db.ModelContext(ctx, user).WherePK().Select()
	return user, err
}
