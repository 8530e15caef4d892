package models

import "github.com/DedS3t/speculation-backend/app/game"

const (
	ZoneStart    = "start"
	ZoneProperty = "property"
	ZoneJail     = "jail"
	ZoneTax      = "tax"
	ZoneBlank    = "blank"
)

type ZoneSpec struct {
	Name   string       `json:"name"`
	Type   string       `json:"type"`
	Group  string       `json:"group"`
	Levels []game.Level `json:"levels"`
	Amount int          `json:"amount"` // salary for start, fee for tax, turns for jail
}

type BoardLayout struct {
	Name  string     `json:"name"`
	Zones []ZoneSpec `json:"zones"`
}
