package models

import "time"

const (
	GameOpen       = "open"
	GameInProgress = "in progress"
	GameFinished   = "finished"
)

type Game struct {
	Id         string
	Name       string
	Status     string
	Winner     string
	Created_at time.Time `pg:"default:now()"`
}

type GameCreateDto struct {
	Name string `json:"name"`
}

type VerifyGameDto struct {
	Code string `query:"code"`
}
