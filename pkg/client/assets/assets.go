package assets

import (
	"context"
	"fmt"
	"io/fs"
	"time"

	"tactics/pkg/shared/battle"
	"tactics/pkg/shared/config"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/rs/zerolog/log"
)

// Assets is everything the renderer and the battle layer read from disk.
type Assets struct {
	Images Images
	Font   *text.GoTextFaceSource

	SpritesInfo  SpritesInfo
	SpriteFrames map[battle.ObjType]map[string]*ebiten.Image

	Prototypes        battle.Prototypes
	DemoScenario      battle.Scenario
	CampaignPlan      battle.Plan
	AgentCampaignInfo map[battle.ObjType]battle.AgentInfo

	Stats Stats
}

// Stats describes the load that produced an Assets value.
type Stats struct {
	Textures int // texture slots filled
	Decoded  int // distinct image files decoded
	Took     time.Duration
}

// Loader reads an asset tree. FS is rooted at the assets dir.
type Loader struct {
	FS         fs.FS
	Workers    int
	NewTexture NewTextureFunc
}

// NewLoader returns a loader reading from fsys with GPU textures.
func NewLoader(fsys fs.FS, workers int) *Loader {
	return &Loader{
		FS:         fsys,
		Workers:    workers,
		NewTexture: ebiten.NewImageFromImage,
	}
}

// Load reads the whole asset tree. It fails on the first missing or
// malformed file.
func (l *Loader) Load(ctx context.Context) (*Assets, error) {
	start := time.Now()
	workers := l.Workers
	if workers < 1 {
		workers = 1
	}
	newTexture := l.NewTexture
	if newTexture == nil {
		newTexture = ebiten.NewImageFromImage
	}
	a := &Assets{}

	font, err := loadFont(l.FS, config.FontFile)
	if err != nil {
		return nil, err
	}
	a.Font = font

	a.SpritesInfo, err = decodeFile[SpritesInfo](l.FS, config.SpritesFile)
	if err != nil {
		return nil, err
	}
	if err := a.SpritesInfo.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", config.SpritesFile, err)
	}

	objects, err := fs.ReadFile(l.FS, config.ObjectsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", config.ObjectsFile, err)
	}
	a.Prototypes, err = battle.ParsePrototypes(objects)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ObjectsFile, err)
	}

	a.DemoScenario, err = decodeFile[battle.Scenario](l.FS, config.DemoScenarioFile)
	if err != nil {
		return nil, err
	}
	a.CampaignPlan, err = decodeFile[battle.Plan](l.FS, config.CampaignPlanFile)
	if err != nil {
		return nil, err
	}
	a.AgentCampaignInfo, err = decodeFile[map[battle.ObjType]battle.AgentInfo](l.FS, config.AgentCampaignInfoFile)
	if err != nil {
		return nil, err
	}

	reqs, fillImages := a.Images.requests()
	frameReqs, fillFrames := a.frameRequests()
	reqs = append(reqs, frameReqs...)

	cache := newTextureCache(l.FS, newTexture)
	if err := cache.loadTextures(ctx, workers, reqs); err != nil {
		return nil, err
	}
	fillImages()
	fillFrames()

	a.Stats = Stats{
		Textures: len(reqs),
		Decoded:  int(cache.decoded.Load()),
		Took:     time.Since(start),
	}
	log.Info().
		Int("textures", a.Stats.Textures).
		Int("decoded", a.Stats.Decoded).
		Int("prototypes", len(a.Prototypes)).
		Dur("took", a.Stats.Took).
		Msg("assets loaded")
	return a, nil
}

func (a *Assets) frameRequests() (reqs []textureRequest, fill func()) {
	type slot struct {
		typ   battle.ObjType
		frame string
		tex   *ebiten.Image
	}
	var slots []*slot
	for _, typ := range sortedTypes(a.SpritesInfo) {
		info := a.SpritesInfo[typ]
		for _, frame := range info.Frames() {
			s := &slot{typ: typ, frame: frame}
			slots = append(slots, s)
			reqs = append(reqs, textureRequest{path: info.Paths[frame], dst: &s.tex})
		}
	}

	fill = func() {
		a.SpriteFrames = make(map[battle.ObjType]map[string]*ebiten.Image, len(a.SpritesInfo))
		for _, s := range slots {
			frames, ok := a.SpriteFrames[s.typ]
			if !ok {
				frames = make(map[string]*ebiten.Image)
				a.SpriteFrames[s.typ] = frames
			}
			frames[s.frame] = s.tex
		}
	}
	return reqs, fill
}

// Frame returns a sprite frame, falling back to the default frame.
func (a *Assets) Frame(typ battle.ObjType, frame string) (*ebiten.Image, bool) {
	frames, ok := a.SpriteFrames[typ]
	if !ok {
		return nil, false
	}
	if tex, ok := frames[frame]; ok {
		return tex, true
	}
	tex, ok := frames[DefaultFrame]
	return tex, ok
}
