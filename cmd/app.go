package cmd

import (
	"fmt"

	"github.com/kasuboski/marquee/config"
	"github.com/kasuboski/marquee/pkg/cache"
	mhttp "github.com/kasuboski/marquee/pkg/http"
	"github.com/kasuboski/marquee/pkg/logger"
	"github.com/kasuboski/marquee/pkg/manager"
	"github.com/kasuboski/marquee/pkg/player"
	"github.com/kasuboski/marquee/pkg/tmdb"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const userAgent = "marquee"

// app is everything a command needs to talk to TMDB.
type app struct {
	config  config.Config
	log     *zap.SugaredLogger
	cache   *cache.Cache[string, []byte]
	manager manager.MediaManager
}

func newApp() (app, error) {
	cfg, err := config.New(viper.GetViper())
	if err != nil {
		return app{}, fmt.Errorf("failed to read configurations: %w", err)
	}

	log := logger.Init(logger.Options{Level: cfg.Log.Level, JSON: cfg.Log.JSON})

	if err := cfg.Validate(); err != nil {
		return app{}, err
	}

	responses := cache.New[string, []byte]()
	tmdbClient, err := tmdb.New(cfg.TMDB.APIURL, cfg.TMDB.AccessToken,
		tmdb.WithHTTPClient(mhttp.NewPacedClient(mhttp.WithRate(cfg.TMDB.RequestsPerSecond, cfg.TMDB.Burst))),
		tmdb.WithTimeout(cfg.TMDB.Timeout),
		tmdb.WithLanguage(cfg.TMDB.Language),
		tmdb.WithCache(responses),
		tmdb.WithRequestEditorFn(tmdb.SetUserAgent(userAgent)),
	)
	if err != nil {
		return app{}, fmt.Errorf("failed to create tmdb client: %w", err)
	}

	linker, err := player.NewLinker(cfg.Embed.BaseURL, embedOptions(cfg.Embed.Options), player.NewGuard(cfg.Embed.AllowedHosts...))
	if err != nil {
		return app{}, fmt.Errorf("failed to create play linker: %w", err)
	}

	return app{
		config:  cfg,
		log:     log,
		cache:   responses,
		manager: manager.New(tmdbClient, cfg.TMDB.ImageBaseURL, linker),
	}, nil
}

func embedOptions(o config.EmbedOptions) player.Options {
	return player.Options{
		PrimaryColor:   o.PrimaryColor,
		SecondaryColor: o.SecondaryColor,
		IconColor:      o.IconColor,
		Icons:          o.Icons,
		Title:          o.Title,
		Poster:         o.Poster,
		Autoplay:       o.Autoplay,
		NextButton:     o.NextButton,
	}
}

// searchLimit prefers a positive --limit over search.defaultLimit.
func (a app) searchLimit(flag int) int {
	if flag > 0 {
		return flag
	}
	return a.config.Search.DefaultLimit
}
