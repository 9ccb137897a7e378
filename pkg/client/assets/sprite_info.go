package assets

import (
	"fmt"
	"io/fs"
	"sort"

	"tactics/pkg/shared/battle"
)

// DefaultFrame is the frame every sprite must define.
const DefaultFrame = ""

// SpriteInfo describes how an object type is drawn. Paths maps frame names
// to image paths relative to the assets dir.
type SpriteInfo struct {
	Paths                 map[string]string `yaml:"paths"`
	OffsetX               float32           `yaml:"offset_x"`
	OffsetY               float32           `yaml:"offset_y"`
	ShadowSizeCoefficient float32           `yaml:"shadow_size_coefficient"`
	SubTileZ              float32           `yaml:"sub_tile_z"` // optional, 0 when absent
}

// SpritesInfo maps object types to their sprite descriptions.
type SpritesInfo map[battle.ObjType]SpriteInfo

func (s SpriteInfo) validate() error {
	if len(s.Paths) == 0 {
		return fmt.Errorf("no frames")
	}
	if _, ok := s.Paths[DefaultFrame]; !ok {
		return fmt.Errorf("missing default frame")
	}
	for frame, p := range s.Paths {
		if !fs.ValidPath(p) {
			return fmt.Errorf("frame %q: invalid path %q", frame, p)
		}
	}
	return nil
}

// Frames returns the frame names of the sprite, default frame first.
func (s SpriteInfo) Frames() []string {
	frames := make([]string, 0, len(s.Paths))
	for frame := range s.Paths {
		frames = append(frames, frame)
	}
	sort.Strings(frames)
	return frames
}

func (si SpritesInfo) validate() error {
	for _, typ := range sortedTypes(si) {
		if err := si[typ].validate(); err != nil {
			return fmt.Errorf("sprite %q: %w", typ, err)
		}
	}
	return nil
}

func sortedTypes[V any](m map[battle.ObjType]V) []battle.ObjType {
	types := make([]battle.ObjType, 0, len(m))
	for typ := range m {
		types = append(types, typ)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types
}
