package assets

import (
	"path"

	"tactics/pkg/shared/battle"
	"tactics/pkg/shared/config"

	"github.com/hajimehoshi/ebiten/v2"
)

// Images holds every fixed texture of the game.
type Images struct {
	Selection           *ebiten.Image
	WhiteHex            *ebiten.Image
	Tile                *ebiten.Image
	TileRocks           *ebiten.Image
	Grass               *ebiten.Image
	Dot                 *ebiten.Image
	Blood               *ebiten.Image
	ExplosionGroundMark *ebiten.Image
	Shadow              *ebiten.Image

	AbilityIcons map[battle.Ability]*ebiten.Image

	AttackSlash  *ebiten.Image
	AttackSmash  *ebiten.Image
	AttackPierce *ebiten.Image
	AttackClaws  *ebiten.Image

	Effects map[battle.Effect]*ebiten.Image

	Icons Icons
}

// Icons are the HUD button icons.
type Icons struct {
	Info     *ebiten.Image
	EndTurn  *ebiten.Image
	MainMenu *ebiten.Image
}

func imagePath(name string) string {
	return path.Join(config.ImageDir, name+".png")
}

// AbilityIconPath is the icon file of an ability, relative to the assets dir.
func AbilityIconPath(a battle.Ability) string {
	return imagePath("icon_ability_" + a.String())
}

// EffectIconPath is the icon file of an effect, relative to the assets dir.
func EffectIconPath(e battle.Effect) string {
	return imagePath("effect_" + e.String())
}

// requests lists the textures of im. Map entries are written to slots that
// fill() copies into the maps once every load has finished.
func (im *Images) requests() (reqs []textureRequest, fill func()) {
	add := func(name string, dst **ebiten.Image) {
		reqs = append(reqs, textureRequest{path: imagePath(name), dst: dst})
	}
	add("selection", &im.Selection)
	add("white_hex", &im.WhiteHex)
	add("tile", &im.Tile)
	add("tile_rocks", &im.TileRocks)
	add("grass", &im.Grass)
	add("dot", &im.Dot)
	add("blood", &im.Blood)
	add("explosion_ground_mark", &im.ExplosionGroundMark)
	add("shadow", &im.Shadow)

	add("slash", &im.AttackSlash)
	add("smash", &im.AttackSmash)
	add("pierce", &im.AttackPierce)
	add("claw", &im.AttackClaws)

	add("icon_info", &im.Icons.Info)
	add("icon_end_turn", &im.Icons.EndTurn)
	add("icon_menu", &im.Icons.MainMenu)

	abilities := battle.Abilities()
	abilitySlots := make([]*ebiten.Image, len(abilities))
	for i, a := range abilities {
		reqs = append(reqs, textureRequest{path: AbilityIconPath(a), dst: &abilitySlots[i]})
	}

	effects := battle.Effects()
	effectSlots := make([]*ebiten.Image, len(effects))
	for i, e := range effects {
		reqs = append(reqs, textureRequest{path: EffectIconPath(e), dst: &effectSlots[i]})
	}

	fill = func() {
		im.AbilityIcons = make(map[battle.Ability]*ebiten.Image, len(abilities))
		for i, a := range abilities {
			im.AbilityIcons[a] = abilitySlots[i]
		}
		im.Effects = make(map[battle.Effect]*ebiten.Image, len(effects))
		for i, e := range effects {
			im.Effects[e] = effectSlots[i]
		}
	}
	return reqs, fill
}
