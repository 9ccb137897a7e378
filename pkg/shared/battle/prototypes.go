package battle

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"sort"

	"tactics/pkg/shared/ecs"

	"gopkg.in/yaml.v3"
)

// ObjType names an object prototype, e.g. "swordsman" or "imp".
type ObjType string

var (
	// ErrUnknownObjType is returned when a prototype lookup misses.
	ErrUnknownObjType = errors.New("unknown object type")
	// ErrEmptyDocument is returned for data files with no content besides comments.
	ErrEmptyDocument = errors.New("empty document")
)

// Prototype is the component template an object of one type is built from.
// A nil component is absent.
type Prototype struct {
	From             ObjType                    `yaml:"from,omitempty"`
	Meta             *MetaComponent             `yaml:"meta"`
	Strength         *StrengthComponent         `yaml:"strength"`
	Armor            *ArmorComponent            `yaml:"armor"`
	Agent            *AgentComponent            `yaml:"agent"`
	Blocker          *BlockerComponent          `yaml:"blocker"`
	Abilities        *AbilitiesComponent        `yaml:"abilities"`
	PassiveAbilities *PassiveAbilitiesComponent `yaml:"passive_abilities"`
	Summoner         *SummonerComponent         `yaml:"summoner"`
	BelongsTo        *BelongsToComponent        `yaml:"belongs_to"`
}

// Prototypes maps every object type to its template.
type Prototypes map[ObjType]Prototype

// ParsePrototypes decodes the objects file and resolves "from" inheritance.
func ParsePrototypes(data []byte) (Prototypes, error) {
	var raw map[ObjType]Prototype
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			err = ErrEmptyDocument
		}
		return nil, fmt.Errorf("failed to parse prototypes: %w", err)
	}

	out := make(Prototypes, len(raw))
	for typ := range raw {
		p, err := resolve(raw, typ, map[ObjType]bool{})
		if err != nil {
			return nil, err
		}
		if p.Meta == nil {
			p.Meta = &MetaComponent{}
		}
		if p.Meta.Name == "" {
			meta := *p.Meta
			meta.Name = typ
			p.Meta = &meta
		}
		out[typ] = p
	}
	return out, nil
}

func resolve(raw map[ObjType]Prototype, typ ObjType, visiting map[ObjType]bool) (Prototype, error) {
	p, ok := raw[typ]
	if !ok {
		return Prototype{}, fmt.Errorf("%w: %q", ErrUnknownObjType, typ)
	}
	if p.From == "" {
		return p, nil
	}
	if visiting[typ] {
		return Prototype{}, fmt.Errorf("prototype %q: inheritance cycle", typ)
	}
	visiting[typ] = true

	parent, err := resolve(raw, p.From, visiting)
	if err != nil {
		return Prototype{}, fmt.Errorf("prototype %q: parent: %w", typ, err)
	}
	return p.inherit(parent), nil
}

// inherit fills components missing on p from parent. Meta is never inherited.
func (p Prototype) inherit(parent Prototype) Prototype {
	if p.Strength == nil {
		p.Strength = parent.Strength
	}
	if p.Armor == nil {
		p.Armor = parent.Armor
	}
	if p.Agent == nil {
		p.Agent = parent.Agent
	}
	if p.Blocker == nil {
		p.Blocker = parent.Blocker
	}
	if p.Abilities == nil {
		p.Abilities = parent.Abilities
	}
	if p.PassiveAbilities == nil {
		p.PassiveAbilities = parent.PassiveAbilities
	}
	if p.Summoner == nil {
		p.Summoner = parent.Summoner
	}
	if p.BelongsTo == nil {
		p.BelongsTo = parent.BelongsTo
	}
	return p
}

// Spawn creates an entity in the world carrying copies of the prototype's components.
func (ps Prototypes) Spawn(w *ecs.World, typ ObjType) (ecs.Entity, error) {
	p, ok := ps[typ]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownObjType, typ)
	}

	meta := MetaComponent{Name: typ}
	if p.Meta != nil && p.Meta.Name != "" {
		meta = *p.Meta
	}

	e := w.NewEntity()
	w.AddComponent(e, meta)
	if p.Strength != nil {
		w.AddComponent(e, *p.Strength)
	}
	if p.Armor != nil {
		w.AddComponent(e, *p.Armor)
	}
	if p.Agent != nil {
		w.AddComponent(e, *p.Agent)
	}
	if p.Blocker != nil {
		w.AddComponent(e, *p.Blocker)
	}
	if p.Abilities != nil {
		abilities := AbilitiesComponent{
			Abilities: append([]RechargeableAbility(nil), p.Abilities.Abilities...),
		}
		w.AddComponent(e, abilities)
	}
	if p.PassiveAbilities != nil {
		passive := PassiveAbilitiesComponent{
			Abilities: append([]string(nil), p.PassiveAbilities.Abilities...),
		}
		w.AddComponent(e, passive)
	}
	if p.Summoner != nil {
		w.AddComponent(e, *p.Summoner)
	}
	if p.BelongsTo != nil {
		w.AddComponent(e, *p.BelongsTo)
	}
	return e, nil
}

// Types returns every prototype name, sorted.
func (ps Prototypes) Types() []ObjType {
	types := make([]ObjType, 0, len(ps))
	for typ := range ps {
		types = append(types, typ)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types
}
