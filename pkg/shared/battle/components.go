package battle

// Components a prototype can carry. Every field maps to one key of the
// objects file; distances are in hex tiles.

type MetaComponent struct {
	Name ObjType `yaml:"name"`
}

type StrengthComponent struct {
	BaseStrength int `yaml:"base_strength"`
	Strength     int `yaml:"strength"`
}

type ArmorComponent struct {
	Armor int `yaml:"armor"`
}

type AgentComponent struct {
	Attacks         int `yaml:"attacks"`
	Moves           int `yaml:"moves"`
	Jokers          int `yaml:"jokers"`
	ReactiveAttacks int `yaml:"reactive_attacks"`
	AttackDistance  int `yaml:"attack_distance"`
	AttackStrength  int `yaml:"attack_strength"`
	AttackAccuracy  int `yaml:"attack_accuracy"`
	AttackBreak     int `yaml:"attack_break"`
	Dodge           int `yaml:"dodge"`
	MovePoints      int `yaml:"move_points"`
}

type BlockerComponent struct {
	Weight string `yaml:"weight"` // "normal", "heavy" or "immovable"
}

// RechargeableAbility is an ability with its cooldown in turns.
type RechargeableAbility struct {
	Ability         Ability `yaml:"ability"`
	BaseCooldown    int     `yaml:"base_cooldown"`
	InitialCooldown int     `yaml:"initial_cooldown"`
}

type AbilitiesComponent struct {
	Abilities []RechargeableAbility `yaml:"abilities"`
}

type PassiveAbilitiesComponent struct {
	Abilities []string `yaml:"abilities"`
}

type SummonerComponent struct {
	Count int `yaml:"count"`
}

type BelongsToComponent struct {
	Player int `yaml:"player"`
}
