package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"

	"tactics/pkg/client/assets"
	"tactics/pkg/devreload"
	"tactics/pkg/shared/config"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// errCheckFailed is returned by check when the report has errors.
var errCheckFailed = errors.New("asset check failed")

func newRootCmd() *cobra.Command {
	var cfg config.Config

	root := &cobra.Command{
		Use:           "assettool",
		Short:         "Validate and serve the game's asset tree",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := config.Load()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("dir") {
				loaded.AssetsDir = cfg.AssetsDir
			}
			cfg = loaded
			level, _ := cfg.Level()
			zerolog.SetGlobalLevel(level)
			return nil
		},
	}
	root.PersistentFlags().StringVar(&cfg.AssetsDir, "dir", "assets", "assets directory (overrides TACTICS_ASSETS_DIR)")

	root.AddCommand(newCheckCmd(&cfg), newWatchCmd(&cfg))
	return root
}

func newCheckCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Load every asset and cross-check the data files",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd.Context(), cmd.OutOrStdout(), assets.NewLoader(os.DirFS(cfg.AssetsDir), cfg.LoadWorkers))
		},
	}
}

func runCheck(ctx context.Context, out io.Writer, loader *assets.Loader) error {
	a, err := loader.Load(ctx)
	if err != nil {
		return err
	}

	report := assets.Check(a)
	for _, w := range report.Warnings {
		fmt.Fprintf(out, "warning: %s\n", w)
	}
	for _, err := range report.Errors {
		fmt.Fprintf(out, "error: %v\n", err)
	}
	fmt.Fprintf(out, "%d textures (%d files), %d prototypes, %d sprites: %d errors, %d warnings\n",
		a.Stats.Textures, a.Stats.Decoded, len(a.Prototypes), len(a.SpritesInfo),
		len(report.Errors), len(report.Warnings))

	if !report.OK() {
		return errCheckFailed
	}
	return nil
}

func newWatchCmd(cfg *config.Config) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Serve reload notifications for changes under the assets directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			w, err := devreload.NewWatcher(cfg.AssetsDir, cfg.WatchDebounce)
			if err != nil {
				return fmt.Errorf("watch %s: %w", cfg.AssetsDir, err)
			}
			srv := devreload.NewServer()
			defer srv.Close()

			go func() {
				if err := w.Run(ctx); err != nil {
					log.Error().Err(err).Msg("watcher stopped")
				}
			}()
			go srv.Run(ctx, w.Changes())

			mux := http.NewServeMux()
			mux.Handle(config.ReloadPath, srv)
			httpSrv := &http.Server{Addr: addr, Handler: mux}
			go func() {
				<-ctx.Done()
				httpSrv.Close()
			}()

			log.Info().Str("addr", addr).Str("dir", cfg.AssetsDir).Msg("serving reload notifications")
			if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":8081", "listen address")
	return cmd
}
