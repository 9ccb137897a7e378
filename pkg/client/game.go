package client

import (
	"context"
	"image/color"

	"tactics/pkg/client/assets"
	"tactics/pkg/devreload"
	"tactics/pkg/shared/battle"
	"tactics/pkg/shared/config"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/rs/zerolog/log"
)

const (
	ScreenWidth  = config.ScreenWidth
	ScreenHeight = config.ScreenHeight

	iconSize   = 48
	spriteSize = 96
	margin     = 8
)

// Game is the asset preview window. It shows the ability icons and the
// default frame of every sprite, and swaps in reloaded assets between frames.
type Game struct {
	loader  *assets.Loader
	reloads chan devreload.ReloadPacket
	lastErr error
}

func NewGame(loader *assets.Loader) *Game {
	return &Game{
		loader:  loader,
		reloads: make(chan devreload.ReloadPacket, 1),
	}
}

// RequestReload queues a reload for the next Update. A request still queued
// is merged into p: the newest sequence wins and the changed paths are
// combined. Called from the reload listener goroutine.
func (g *Game) RequestReload(p devreload.ReloadPacket) {
	select {
	case queued := <-g.reloads:
		p = mergeReloads(queued, p)
	default:
	}
	select {
	case g.reloads <- p:
	default:
	}
}

func mergeReloads(older, newer devreload.ReloadPacket) devreload.ReloadPacket {
	seen := make(map[string]bool, len(older.Paths)+len(newer.Paths))
	merged := devreload.ReloadPacket{Seq: newer.Seq}
	for _, paths := range [][]string{older.Paths, newer.Paths} {
		for _, path := range paths {
			if !seen[path] {
				seen[path] = true
				merged.Paths = append(merged.Paths, path)
			}
		}
	}
	return merged
}

func (g *Game) Update() error {
	select {
	case p := <-g.reloads:
		g.lastErr = assets.Reload(context.Background(), g.loader)
		if g.lastErr != nil {
			log.Error().Err(g.lastErr).Uint64("seq", p.Seq).Msg("reload failed, keeping previous assets")
		} else {
			log.Info().Uint64("seq", p.Seq).Strs("paths", p.Paths).Msg("assets reloaded")
		}
	default:
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 30, G: 30, B: 40, A: 255})
	a := assets.Get()

	x, y := float64(margin), float64(margin)
	for _, ab := range battle.Abilities() {
		if x+iconSize > ScreenWidth {
			x = margin
			y += iconSize + margin
		}
		drawScaled(screen, a.Images.AbilityIcons[ab], x, y, iconSize)
		x += iconSize + margin
	}

	face := a.Face(config.DefaultFontSize / 2)
	x, y = margin, y+iconSize+2*margin
	for _, typ := range a.Prototypes.Types() {
		tex, ok := a.Frame(typ, assets.DefaultFrame)
		if !ok {
			continue
		}
		if x+spriteSize > ScreenWidth {
			x = margin
			y += spriteSize + 3*margin
		}
		drawScaled(screen, tex, x, y, spriteSize)
		op := &text.DrawOptions{}
		op.GeoM.Translate(x, y+spriteSize)
		text.Draw(screen, string(typ), face, op)
		x += spriteSize + margin
	}

	if g.lastErr != nil {
		op := &text.DrawOptions{}
		op.GeoM.Translate(margin, ScreenHeight-config.DefaultFontSize-margin)
		op.ColorScale.ScaleWithColor(color.RGBA{R: 255, G: 80, B: 80, A: 255})
		text.Draw(screen, "reload failed: "+g.lastErr.Error(), face, op)
	}
}

func drawScaled(dst, img *ebiten.Image, x, y, size float64) {
	if img == nil {
		return
	}
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	scale := size / float64(max(w, h, 1))
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(x, y)
	dst.DrawImage(img, op)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return ScreenWidth, ScreenHeight
}
