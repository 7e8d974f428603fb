package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/xxxsen/common/logger"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/xxxsen/jotty/internal/config"
	"github.com/xxxsen/jotty/internal/kv"
	"github.com/xxxsen/jotty/internal/render"
	"github.com/xxxsen/jotty/internal/service"
	"github.com/xxxsen/jotty/internal/store"
)

const renderCacheSize = 256

type rootOptions struct {
	configPath string
	dataDir    string
}

// app is the wired set of stores and services shared by every command.
type app struct {
	cfg      *config.Config
	backend  kv.Store
	notes    *store.NoteStore
	themes   *store.ThemeStore
	noteSvc  *service.NoteService
	imports  *service.ImportService
	exports  *service.ExportService
	themeSvc *service.ThemeService
	renderer *render.HTMLRenderer
}

func (o *rootOptions) loadConfig() (*config.Config, error) {
	if o.configPath != "" {
		return config.Load(o.configPath)
	}
	dir := o.dataDir
	if dir == "" {
		dir = os.Getenv("JOTTY_DATA")
	}
	if dir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("resolve data dir: %w", err)
		}
		dir = filepath.Join(base, "jotty")
	}
	return config.Default(dir), nil
}

func (o *rootOptions) open(ctx context.Context) (*app, error) {
	cfg, err := o.loadConfig()
	if err != nil {
		return nil, err
	}
	logger.Init(
		cfg.LogConfig.File,
		cfg.LogConfig.Level,
		int(cfg.LogConfig.FileCount),
		int(cfg.LogConfig.FileSize),
		int(cfg.LogConfig.KeepDays),
		cfg.LogConfig.Console,
	)
	backend, err := kv.New(cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("init storage: %w", err)
	}
	if cfg.QuotaBytes > 0 {
		backend = kv.WithQuota(backend, cfg.QuotaBytes)
	}
	logutil.GetLogger(ctx).Debug("storage ready",
		zap.String("type", cfg.Storage.Type),
		zap.Int64("quota_bytes", cfg.QuotaBytes),
	)

	notes := store.NewNoteStore(backend)
	notes.Load(ctx)
	themes := store.NewThemeStore(backend)
	themes.Load(ctx)

	renderer, err := render.NewHTMLRenderer(renderCacheSize)
	if err != nil {
		_ = backend.Close()
		return nil, err
	}
	noteSvc := service.NewNoteService(notes, cfg.Import.MaxImageMB)
	return &app{
		cfg:     cfg,
		backend: backend,
		notes:   notes,
		themes:  themes,
		noteSvc: noteSvc,
		imports: service.NewImportService(noteSvc, service.ImportConfig{
			MaxNotes:     cfg.Import.MaxNotes,
			MaxNoteBytes: cfg.Import.MaxNoteBytes,
			MaxImageMB:   cfg.Import.MaxImageMB,
			PendingTTL:   time.Duration(cfg.Import.PendingTTLSeconds) * time.Second,
		}),
		exports:  service.NewExportService(noteSvc),
		themeSvc: service.NewThemeService(themes),
		renderer: renderer,
	}, nil
}

func (a *app) Close() error {
	return a.backend.Close()
}

// withApp opens the stores for one command invocation.
func withApp(opts *rootOptions, fn func(ctx context.Context, a *app) error) error {
	ctx := context.Background()
	a, err := opts.open(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = a.Close()
	}()
	return fn(ctx, a)
}
