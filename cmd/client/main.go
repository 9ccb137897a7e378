package main

import (
	"context"
	"os"
	"time"

	"tactics/pkg/client"
	"tactics/pkg/client/assets"
	"tactics/pkg/devreload"
	"tactics/pkg/shared/config"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	level, _ := cfg.Level()
	zerolog.SetGlobalLevel(level)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	loader := assets.NewLoader(os.DirFS(cfg.AssetsDir), cfg.LoadWorkers)
	if err := assets.Init(ctx, loader); err != nil {
		log.Fatal().Err(err).Str("dir", cfg.AssetsDir).Msg("failed to load assets")
	}

	game := client.NewGame(loader)
	if cfg.ReloadAddr != "" {
		go devreload.ListenRetry(ctx, cfg.ReloadAddr, game.RequestReload)
	}

	ebiten.SetWindowSize(client.ScreenWidth, client.ScreenHeight)
	ebiten.SetWindowTitle("Tactics asset preview")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal().Err(err).Msg("game exited")
	}
}
