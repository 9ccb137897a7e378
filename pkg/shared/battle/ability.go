package battle

import "fmt"

// Ability is an active ability an agent can use during a battle.
type Ability int

const (
	AbilityKnockback Ability = iota + 1
	AbilityClub
	AbilityJump
	AbilityLongJump
	AbilityBomb
	AbilityBombPush
	AbilityBombFire
	AbilityBombPoison
	AbilityBombDemonic
	AbilitySummon
	AbilityDash
	AbilityRage
	AbilityHeal
	AbilityGreatHeal
	AbilityBloodlust
)

var abilityNames = map[Ability]string{
	AbilityKnockback:   "knockback",
	AbilityClub:        "club",
	AbilityJump:        "jump",
	AbilityLongJump:    "long_jump",
	AbilityBomb:        "bomb",
	AbilityBombPush:    "bomb_push",
	AbilityBombFire:    "bomb_fire",
	AbilityBombPoison:  "bomb_poison",
	AbilityBombDemonic: "bomb_demonic",
	AbilitySummon:      "summon",
	AbilityDash:        "dash",
	AbilityRage:        "rage",
	AbilityHeal:        "heal",
	AbilityGreatHeal:   "great_heal",
	AbilityBloodlust:   "bloodlust",
}

// Ordered list for icon loading and UI display
var abilityList = []Ability{
	AbilityKnockback,
	AbilityClub,
	AbilityJump,
	AbilityLongJump,
	AbilityBomb,
	AbilityBombPush,
	AbilityBombFire,
	AbilityBombPoison,
	AbilityBombDemonic,
	AbilitySummon,
	AbilityDash,
	AbilityRage,
	AbilityHeal,
	AbilityGreatHeal,
	AbilityBloodlust,
}

// Abilities returns every ability in display order.
func Abilities() []Ability {
	out := make([]Ability, len(abilityList))
	copy(out, abilityList)
	return out
}

// String returns the snake_case name used in data files and icon paths.
func (a Ability) String() string {
	if name, ok := abilityNames[a]; ok {
		return name
	}
	return fmt.Sprintf("Ability(%d)", int(a))
}

// ParseAbility converts a snake_case name into an Ability.
func ParseAbility(name string) (Ability, error) {
	for a, n := range abilityNames {
		if n == name {
			return a, nil
		}
	}
	return 0, fmt.Errorf("unknown ability %q", name)
}

func (a Ability) MarshalText() ([]byte, error) {
	name, ok := abilityNames[a]
	if !ok {
		return nil, fmt.Errorf("unknown ability %d", int(a))
	}
	return []byte(name), nil
}

func (a *Ability) UnmarshalText(text []byte) error {
	parsed, err := ParseAbility(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
