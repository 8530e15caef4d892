package controllers

import (
	"errors"
	"time"

	"github.com/DedS3t/speculation-backend/app/models"
	"github.com/DedS3t/speculation-backend/platform/queries"
	jwt "github.com/form3tech-oss/jwt-go"
	"github.com/go-pg/pg/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

const tokenTTL = 72 * time.Hour

func (a *API) CreateUser(c *fiber.Ctx) error {
	userDto := new(models.UserDto)
	if err := c.BodyParser(userDto); err != nil || userDto.Email == "" || userDto.Pass == "" {
		return c.SendStatus(fiber.StatusBadRequest)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(userDto.Pass), bcrypt.DefaultCost)
	if err != nil {
		return c.SendStatus(fiber.StatusInternalServerError)
	}
	if _, err := queries.CreateUser(c.Context(), userDto.Email, string(hash), a.DB); err != nil {
		logrus.WithError(err).Warn("creating user failed")
		return c.SendStatus(fiber.StatusConflict)
	}
	return c.SendStatus(fiber.StatusCreated)
}

func (a *API) Login(c *fiber.Ctx) error {
	userDto := new(models.UserDto)
	if err := c.BodyParser(userDto); err != nil {
		return c.SendStatus(fiber.StatusBadRequest)
	}

	user, err := queries.GetUserByEmail(c.Context(), userDto.Email, a.DB)
	if errors.Is(err, pg.ErrNoRows) {
		return c.SendStatus(fiber.StatusUnauthorized)
	}
	if err != nil {
		return c.SendStatus(fiber.StatusInternalServerError)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(userDto.Pass)) != nil {
		return c.SendStatus(fiber.StatusUnauthorized)
	}

	t, err := IssueToken(a.Secret, user.Id, time.Now())
	if err != nil {
		return c.SendStatus(fiber.StatusInternalServerError)
	}
	return c.JSON(fiber.Map{"access_token": t})
}

func IssueToken(secret []byte, userID string, now time.Time) (string, error) {
	token := jwt.New(jwt.SigningMethodHS256)
	claims := token.Claims.(jwt.MapClaims)
	claims["user_id"] = userID
	claims["exp"] = now.Add(tokenTTL).Unix()
	return token.SignedString(secret)
}

func Cur(c *fiber.Ctx) error {
	return c.SendString(CurrentUser(c))
}

// CurrentUser reads the user id from a token validated by the jwt middleware.
func CurrentUser(c *fiber.Ctx) string {
	user, ok := c.Locals("user").(*jwt.Token)
	if !ok {
		return ""
	}
	claims, ok := user.Claims.(jwt.MapClaims)
	if !ok {
		return ""
	}
	id, _ := claims["user_id"].(string)
	return id
}
