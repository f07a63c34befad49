package cli

import (
	"context"

	"github.com/timmy/reconlens/internal/catalog"
	"github.com/timmy/reconlens/internal/config"
	"github.com/timmy/reconlens/internal/domain"
	"github.com/timmy/reconlens/internal/fetch"
	"github.com/timmy/reconlens/internal/logger"
	"github.com/timmy/reconlens/internal/repository"
	"github.com/timmy/reconlens/internal/service"
	"github.com/timmy/reconlens/internal/source/commons"
	"github.com/timmy/reconlens/internal/source/websearch"
	"github.com/timmy/reconlens/internal/storage"
)

// configLoadError marks failures to load config or catalog.
type configLoadError struct {
	err error
}

func (e *configLoadError) Error() string { return e.err.Error() }
func (e *configLoadError) Unwrap() error { return e.err }

// app holds the collaborators built from config for one invocation.
type app struct {
	cfg     *config.Config
	log     *logger.Logger
	catalog domain.Catalog
}

func loadApp(opts *globalOptions) (*app, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, &configLoadError{err: err}
	}
	if opts.logLevel != "" {
		cfg.Log.Level = opts.logLevel
	}

	log := logger.New(&logger.Config{
		Level:       cfg.Log.Level,
		Format:      cfg.Log.Format,
		ServiceName: "reconlens",
		Stdout:      cfg.Log.Stdout,
		File: logger.FileConfig{
			Path:       cfg.Log.File,
			MaxSizeMB:  cfg.Log.MaxSizeMB,
			MaxBackups: cfg.Log.MaxBackups,
			MaxAgeDays: cfg.Log.MaxAgeDays,
			Compress:   cfg.Log.Compress,
		},
	})
	logger.SetDefaultLogger(log)

	catalogPath := opts.catalogPath
	if catalogPath == "" {
		catalogPath = cfg.Output.Catalog
	}
	cat, err := catalog.Load(catalogPath)
	if err != nil {
		return nil, &configLoadError{err: err}
	}

	return &app{cfg: cfg, log: log, catalog: cat}, nil
}

// newRetriever registers Commons as the primary tier and, when enabled, web
// image search as the secondary tier.
func (a *app) newRetriever(client *fetch.Client) *service.Retriever {
	tiers := []service.Tier{{
		Provider: commons.NewAdapter(client, commons.Config{
			APIURL:     a.cfg.Commons.APIURL,
			ThumbWidth: a.cfg.Commons.ThumbWidth,
		}),
		Ceiling: 2,
		Primary: true,
	}}
	if a.cfg.WebSearch.Enabled {
		tiers = append(tiers, service.Tier{
			Provider: websearch.NewAdapter(client, websearch.Config{BaseURL: a.cfg.WebSearch.BaseURL}),
			Ceiling:  3,
		})
	}
	return service.NewRetriever(nil, tiers...)
}

func (a *app) newFetchClient() *fetch.Client {
	return fetch.New(&fetch.Config{
		Timeout:           a.cfg.HTTP.Timeout,
		Retries:           a.cfg.HTTP.Retries,
		RetryWait:         a.cfg.HTTP.RetryWait,
		UserAgent:         a.cfg.HTTP.UserAgent,
		RequestsPerSecond: a.cfg.HTTP.RequestsPerSecond,
	})
}

// openLedger returns nil when the run ledger is disabled.
func (a *app) openLedger() (*repository.RunRepository, error) {
	if !a.cfg.Database.Enabled {
		return nil, nil
	}
	db, err := repository.InitDB(&a.cfg.Database)
	if err != nil {
		return nil, err
	}
	return repository.NewRunRepository(db), nil
}

type bucketEnsurer interface {
	EnsureBucket(ctx context.Context) error
}

// newPublisher returns nil when publishing is disabled.
func (a *app) newPublisher(ctx context.Context) (*service.Publisher, error) {
	if !a.cfg.Storage.Enabled {
		return nil, nil
	}
	store, err := storage.NewStorage(&a.cfg.Storage)
	if err != nil {
		return nil, err
	}
	if e, ok := store.(bucketEnsurer); ok {
		if err := e.EnsureBucket(ctx); err != nil {
			return nil, err
		}
	}
	return service.NewPublisher(store, a.cfg.Storage.Prefix), nil
}
