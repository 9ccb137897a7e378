package battle

import (
	"errors"
	"testing"

	"tactics/pkg/shared/ecs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const objectsYAML = `
swordsman:
  meta: {name: swordsman}
  strength: {base_strength: 3, strength: 3}
  agent:
    attacks: 1
    moves: 1
    attack_distance: 1
    attack_strength: 2
    attack_accuracy: 4
    move_points: 3
  blocker: {weight: normal}
  abilities:
    abilities:
      - {ability: dash, base_cooldown: 1}
      - {ability: rage, base_cooldown: 3}
heavy_swordsman:
  from: swordsman
  meta: {name: heavy_swordsman}
  armor: {armor: 1}
boulder:
  blocker: {weight: heavy}
`

func TestParsePrototypes(t *testing.T) {
	ps, err := ParsePrototypes([]byte(objectsYAML))
	require.NoError(t, err)
	require.Len(t, ps, 3)

	sw := ps["swordsman"]
	require.NotNil(t, sw.Agent)
	assert.Equal(t, 3, sw.Agent.MovePoints)
	require.NotNil(t, sw.Abilities)
	assert.Equal(t, []RechargeableAbility{
		{Ability: AbilityDash, BaseCooldown: 1},
		{Ability: AbilityRage, BaseCooldown: 3},
	}, sw.Abilities.Abilities)

	heavy := ps["heavy_swordsman"]
	assert.Equal(t, ObjType("heavy_swordsman"), heavy.Meta.Name)
	assert.Equal(t, 1, heavy.Armor.Armor)
	assert.Equal(t, sw.Agent, heavy.Agent, "agent inherited from parent")
	assert.Equal(t, sw.Strength, heavy.Strength)

	boulder := ps["boulder"]
	require.NotNil(t, boulder.Meta)
	assert.Equal(t, ObjType("boulder"), boulder.Meta.Name, "name defaults to key")
	assert.Nil(t, boulder.Agent)
}

func TestParsePrototypesErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"bad yaml", "swordsman: [\n"},
		{"unknown ability", "a:\n  abilities:\n    abilities:\n      - {ability: fly}\n"},
		{"missing parent", "a:\n  from: ghost\n"},
		{"cycle", "a:\n  from: b\nb:\n  from: a\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParsePrototypes([]byte(tt.data))
			assert.Error(t, err)
		})
	}
}

func TestParsePrototypesMissingParentIsUnknownType(t *testing.T) {
	_, err := ParsePrototypes([]byte("a:\n  from: ghost\n"))
	assert.True(t, errors.Is(err, ErrUnknownObjType))
}

func TestSpawn(t *testing.T) {
	ps, err := ParsePrototypes([]byte(objectsYAML))
	require.NoError(t, err)

	w := ecs.NewWorld()
	e, err := ps.Spawn(w, "swordsman")
	require.NoError(t, err)

	meta, ok := ecs.GetComponent[MetaComponent](w, e)
	require.True(t, ok)
	assert.Equal(t, ObjType("swordsman"), meta.Name)

	agent, ok := ecs.GetComponent[AgentComponent](w, e)
	require.True(t, ok)
	assert.Equal(t, 2, agent.AttackStrength)

	_, ok = ecs.GetComponent[ArmorComponent](w, e)
	assert.False(t, ok, "swordsman has no armor")

	// Spawned abilities must not alias the prototype.
	abilities, ok := ecs.GetComponent[AbilitiesComponent](w, e)
	require.True(t, ok)
	abilities.Abilities[0].BaseCooldown = 99
	assert.Equal(t, 1, ps["swordsman"].Abilities.Abilities[0].BaseCooldown)

	b, err := ps.Spawn(w, "boulder")
	require.NoError(t, err)
	assert.Equal(t, []ecs.Entity{e, b}, ecs.Query[MetaComponent](w))

	_, err = ps.Spawn(w, "dragon")
	assert.ErrorIs(t, err, ErrUnknownObjType)
}

func TestSpawnHandBuiltPrototypes(t *testing.T) {
	ps := Prototypes{
		"boulder": {Blocker: &BlockerComponent{Weight: "heavy"}},
		"imp":     {Meta: &MetaComponent{}, Agent: &AgentComponent{Moves: 1}},
	}
	w := ecs.NewWorld()

	e, err := ps.Spawn(w, "boulder")
	require.NoError(t, err)
	meta, ok := ecs.GetComponent[MetaComponent](w, e)
	require.True(t, ok)
	assert.Equal(t, ObjType("boulder"), meta.Name, "missing meta defaults to the key")
	blocker, ok := ecs.GetComponent[BlockerComponent](w, e)
	require.True(t, ok)
	assert.Equal(t, "heavy", blocker.Weight)

	e, err = ps.Spawn(w, "imp")
	require.NoError(t, err)
	meta, ok = ecs.GetComponent[MetaComponent](w, e)
	require.True(t, ok)
	assert.Equal(t, ObjType("imp"), meta.Name, "empty name defaults to the key")
}

func TestParsePrototypesEmptyDocument(t *testing.T) {
	for _, data := range []string{"", "# nothing here yet\n"} {
		_, err := ParsePrototypes([]byte(data))
		assert.ErrorIs(t, err, ErrEmptyDocument, "data %q", data)
	}
}

func TestPrototypeTypesSorted(t *testing.T) {
	ps := testPrototypes(t)
	assert.Equal(t, []ObjType{"boulder", "heavy_swordsman", "swordsman"}, ps.Types())
}
