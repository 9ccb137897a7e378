package battle

import "fmt"

// PlayerID identifies a side in a battle. Player 0 is the human player.
type PlayerID int

// Line is the map band a group of objects is placed on.
type Line string

const (
	LineAny    Line = ""
	LineFront  Line = "front"
	LineMiddle Line = "middle"
	LineBack   Line = "back"
)

// ObjectsGroup places Count objects of one type for one owner.
type ObjectsGroup struct {
	Owner    *PlayerID `yaml:"owner,omitempty"` // nil for neutral objects like boulders
	Typename ObjType   `yaml:"typename"`
	Line     Line      `yaml:"line,omitempty"`
	Count    int       `yaml:"count"`
}

// Scenario describes the starting layout of a battle.
type Scenario struct {
	MapRadius    int            `yaml:"map_radius"`
	RandomSeed   *int64         `yaml:"random_seed,omitempty"`
	RockyTiles   int            `yaml:"rocky_tiles_count"`
	Objects      []ObjectsGroup `yaml:"objects"`
	ExactObjects []ExactObject  `yaml:"exact_objects,omitempty"`
	PlayersCount int            `yaml:"players_count"`
}

// ExactObject is an object pinned to a specific hex.
type ExactObject struct {
	Owner    *PlayerID `yaml:"owner,omitempty"`
	Typename ObjType   `yaml:"typename"`
	Q        int       `yaml:"q"`
	R        int       `yaml:"r"`
}

// Validate checks the scenario against the known prototypes.
func (s *Scenario) Validate(ps Prototypes) error {
	if s.MapRadius <= 0 {
		return fmt.Errorf("map_radius must be positive, got %d", s.MapRadius)
	}
	for i, g := range s.Objects {
		if _, ok := ps[g.Typename]; !ok {
			return fmt.Errorf("objects[%d]: %w: %q", i, ErrUnknownObjType, g.Typename)
		}
		if g.Count <= 0 {
			return fmt.Errorf("objects[%d]: count must be positive, got %d", i, g.Count)
		}
		switch g.Line {
		case LineAny, LineFront, LineMiddle, LineBack:
		default:
			return fmt.Errorf("objects[%d]: unknown line %q", i, g.Line)
		}
	}
	for i, o := range s.ExactObjects {
		if _, ok := ps[o.Typename]; !ok {
			return fmt.Errorf("exact_objects[%d]: %w: %q", i, ErrUnknownObjType, o.Typename)
		}
	}
	return nil
}
