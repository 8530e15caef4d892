package logging

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Init configures the standard logger. Unknown levels fall back to info.
func Init(level string) {
	logrus.SetOutput(os.Stdout)
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetLevel(ParseLevel(level))
}

func ParseLevel(level string) logrus.Level {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return logrus.InfoLevel
	}
	return lvl
}

// ForGame returns a logger tagged with the game id.
func ForGame(gameID string) *logrus.Entry {
	return logrus.WithField("game_id", gameID)
}
