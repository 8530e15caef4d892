package models

import "github.com/DedS3t/speculation-backend/app/game"

type Player struct {
	User_id  string `pg:",pk"`
	Game_id  string `pg:",pk"`
	Username string
	Team     string
	Seat     int
}

type PlayerDto struct {
	Username   string        `json:"username"`
	Team       string        `json:"team,omitempty"`
	Balance    int           `json:"balance"`
	Zone       string        `json:"zone"`
	Assets     int           `json:"assets"`
	Bankrupt   bool          `json:"bankrupt"`
	Jail       int           `json:"jail"`
	Properties []PropertyDto `json:"properties"`
}

type PropertyDto struct {
	Name  string `json:"name"`
	Level int    `json:"level"`
	Toll  int    `json:"toll"`
}

func NewPlayerDto(p *game.Piece) PlayerDto {
	dto := PlayerDto{
		Username:   p.Name(),
		Team:       p.Team(),
		Balance:    p.Balance(),
		Assets:     p.Assets(),
		Bankrupt:   p.IsBankrupt(),
		Jail:       p.JailCount(),
		Properties: []PropertyDto{},
	}
	if z := p.Zone(); z != nil {
		dto.Zone = z.Name()
	}
	for _, zp := range p.Properties() {
		dto.Properties = append(dto.Properties, PropertyDto{Name: zp.Name(), Level: zp.Level(), Toll: zp.Toll()})
	}
	return dto
}
