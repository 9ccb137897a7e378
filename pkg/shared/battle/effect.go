package battle

import "fmt"

// Effect is a lasting status effect with its own icon.
type Effect int

const (
	EffectStun Effect = iota + 1
	EffectPoison
	EffectBloodlust
)

var effectNames = map[Effect]string{
	EffectStun:      "stun",
	EffectPoison:    "poison",
	EffectBloodlust: "bloodlust",
}

// Effects returns every effect in a stable order.
func Effects() []Effect {
	return []Effect{EffectStun, EffectPoison, EffectBloodlust}
}

func (e Effect) String() string {
	if name, ok := effectNames[e]; ok {
		return name
	}
	return fmt.Sprintf("Effect(%d)", int(e))
}
