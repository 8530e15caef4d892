package board

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/DedS3t/speculation-backend/app/game"
	"github.com/DedS3t/speculation-backend/app/models"
)

var ErrNotFound = errors.New("zone not found")

func LoadLayout(path string) (*models.BoardLayout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read layout %s: %w", path, err)
	}
	return ParseLayout(data)
}

func ParseLayout(data []byte) (*models.BoardLayout, error) {
	layout := new(models.BoardLayout)
	if err := json.Unmarshal(data, layout); err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}
	if len(layout.Zones) == 0 {
		return nil, errors.New("parse layout: no zones")
	}

	seen := make(map[string]bool, len(layout.Zones))
	for _, spec := range layout.Zones {
		if spec.Name == "" {
			return nil, errors.New("parse layout: zone without name")
		}
		if seen[spec.Name] {
			return nil, fmt.Errorf("parse layout: duplicate zone %q", spec.Name)
		}
		seen[spec.Name] = true
	}
	return layout, nil
}

// BuildZones turns the layout into board zones in ring order.
func BuildZones(layout *models.BoardLayout) ([]game.Zone, error) {
	zones := make([]game.Zone, 0, len(layout.Zones))
	for _, spec := range layout.Zones {
		z, err := buildZone(spec)
		if err != nil {
			return nil, err
		}
		zones = append(zones, z)
	}
	return zones, nil
}

func buildZone(spec models.ZoneSpec) (game.Zone, error) {
	switch spec.Type {
	case models.ZoneStart:
		return &StartZone{BaseZone: game.BaseZone{ZoneName: spec.Name}, Salary: spec.Amount}, nil
	case models.ZoneProperty:
		if len(spec.Levels) == 0 {
			return nil, fmt.Errorf("zone %q: property without levels", spec.Name)
		}
		return game.NewZoneProperty(spec.Name, spec.Levels), nil
	case models.ZoneJail:
		return &JailZone{BaseZone: game.BaseZone{ZoneName: spec.Name}, Turns: spec.Amount}, nil
	case models.ZoneTax:
		return &TaxZone{BaseZone: game.BaseZone{ZoneName: spec.Name}, Fee: spec.Amount}, nil
	case models.ZoneBlank, "":
		return game.NewBaseZone(spec.Name), nil
	}
	return nil, fmt.Errorf("zone %q: unknown type %q", spec.Name, spec.Type)
}

func GetByPos(pos int, zones []game.Zone) (game.Zone, error) {
	if pos < 0 || pos >= len(zones) {
		return nil, fmt.Errorf("%w: position %d", ErrNotFound, pos)
	}
	return zones[pos], nil
}

func GetByName(name string, zones []game.Zone) (game.Zone, error) {
	for _, z := range zones {
		if z.Name() == name {
			return z, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
}

// Start returns the first start zone, or the first zone when there is none.
func Start(zones []game.Zone) game.Zone {
	for _, z := range zones {
		if _, ok := z.(*StartZone); ok {
			return z
		}
	}
	if len(zones) == 0 {
		return nil
	}
	return zones[0]
}
