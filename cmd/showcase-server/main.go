package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/Guilhem-Bonnet/Anime-Showcase/internal/adapters/httpapi"
	"github.com/Guilhem-Bonnet/Anime-Showcase/internal/adapters/jikan"
	"github.com/Guilhem-Bonnet/Anime-Showcase/internal/adapters/memorybus"
	"github.com/Guilhem-Bonnet/Anime-Showcase/internal/app"
	"github.com/Guilhem-Bonnet/Anime-Showcase/internal/buildinfo"
	"github.com/Guilhem-Bonnet/Anime-Showcase/internal/config"
	"github.com/Guilhem-Bonnet/Anime-Showcase/internal/logging"
	"github.com/Guilhem-Bonnet/Anime-Showcase/internal/view"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	v := config.New()
	var configFile string

	cmd := &cobra.Command{
		Use:           "showcase-server",
		Short:         "Serve the anime showcase home page (hero slider and carousels)",
		Version:       buildinfo.Current().Version,
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(v, configFile)
			if err != nil {
				return err
			}
			return serve(cmd.Context(), cfg)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&configFile, "config", "c", "", "Fichier de configuration (toml, yaml, json)")
	f.String("addr", "", "Adresse d'écoute (ex: 127.0.0.1:8080)")
	f.String("jikan-url", "", "URL de base de l'API Jikan")
	f.Duration("jikan-timeout", 0, "Timeout HTTP vers Jikan (0: aucun)")
	f.Duration("rotation-interval", 0, "Intervalle de rotation du hero")
	f.Int("hero-limit", 0, "Nombre de slides du hero")
	f.String("affiliate-id", "", "Identifiant d'affiliation Crunchyroll")
	f.String("log-level", "", "Niveau de log (debug, info, warn, error)")
	f.String("log-format", "", "Format de log (console, json)")

	for key, flag := range map[string]string{
		config.KeyAddr:             "addr",
		config.KeyJikanBaseURL:     "jikan-url",
		config.KeyJikanTimeout:     "jikan-timeout",
		config.KeyRotationInterval: "rotation-interval",
		config.KeyHeroLimit:        "hero-limit",
		config.KeyAffiliateID:      "affiliate-id",
		config.KeyLogLevel:         "log-level",
		config.KeyLogFormat:        "log-format",
	} {
		lo.Must0(v.BindPFlag(key, f.Lookup(flag)))
	}
	return cmd
}

func serve(parent context.Context, cfg config.Config) error {
	logger := logging.New(os.Stdout, "showcase-server", cfg.LogLevel, cfg.LogFormat)
	logger.Info().Interface("build", buildinfo.Current()).Str("jikan", cfg.JikanBaseURL).Msg("starting")

	if parent == nil {
		parent = context.Background()
	}
	shutdownCtx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	client := jikan.New(cfg.JikanBaseURL,
		jikan.WithHTTPClient(&http.Client{Timeout: cfg.JikanTimeout}),
		jikan.WithMetrics(jikan.NewMetrics(registry)),
		jikan.WithUserAgent("showcase-server/"+buildinfo.Current().Version),
	)
	bus := memorybus.New()
	defer bus.Close()

	hero := app.NewHeroRenderer(logging.Component(logger, "hero"), client)
	hero.Limit = cfg.HeroLimit
	hero.Synopsis = app.SynopsisOptions{Limit: cfg.SynopsisLimit, EllipsisAlways: cfg.EllipsisAlways}

	rotator := app.NewRotator(logging.Component(logger, "rotator"), bus)
	rotator.TickInterval = cfg.RotationInterval

	layout := app.DefaultHomeLayout()
	layout.CarouselWidth = cfg.CarouselWidth

	home := app.NewHomepage(shutdownCtx, logging.Component(logger, "homepage"), bus,
		hero, app.NewCarouselRenderer(logging.Component(logger, "carousel"), client), rotator, layout)
	defer home.Close()

	catalog := app.NewCatalogService(client)
	catalog.ResultLimit = cfg.ResultLimit
	catalog.AffiliateID = cfg.AffiliateID

	views, err := view.New()
	if err != nil {
		return err
	}

	srv := httpapi.NewServer(logger, home, catalog, views, bus, registry)
	srv.RotationInterval = cfg.RotationInterval
	httpServer := &http.Server{
		Addr:              cfg.Addr,
		Handler:           srv.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	// Premier rendu en tâche de fond: le serveur répond pendant le chargement.
	go func() {
		if err := home.Load(shutdownCtx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error().Err(err).Msg("initial homepage load failed")
		}
	}()

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", cfg.Addr).Msg("listening")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("http server crashed")
			errCh <- err
			stop()
		}
	}()

	<-shutdownCtx.Done()
	logger.Info().Msg("shutting down")
	// ferme les flux SSE, sinon Shutdown attend leur déconnexion
	bus.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = httpServer.Shutdown(ctx)
	logger.Info().Msg("bye")

	select {
	case err := <-errCh:
		return err
	default:
		return nil
	}
}
