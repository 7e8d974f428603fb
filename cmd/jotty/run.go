package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/xxxsen/common/logutil"
	"github.com/xxxsen/common/webapi"
	"go.uber.org/zap"

	"github.com/xxxsen/jotty/internal/filestore"
	"github.com/xxxsen/jotty/internal/handler"
	"github.com/xxxsen/jotty/internal/job"
	"github.com/xxxsen/jotty/internal/middleware"
	"github.com/xxxsen/jotty/internal/schedule"
	"github.com/xxxsen/jotty/internal/store"
)

const maxImportUploadSize = 32 * 1024 * 1024

func newRunCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "serve the local notes API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(opts, runServer)
		},
	}
}

func runServer(ctx context.Context, a *app) error {
	logger := logutil.GetLogger(ctx)
	logger.Info("starting server",
		zap.String("listen", a.cfg.Listen),
		zap.String("storage", a.cfg.Storage.Type),
		zap.Int("notes", len(a.notes.Notes())),
	)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if a.cfg.Watch {
		watcher, err := store.NewWatcher(a.backend, 0, a.noteSvc, a.themeSvc)
		if err != nil {
			return fmt.Errorf("init watcher: %w", err)
		}
		if watcher != nil {
			defer func() {
				_ = watcher.Close()
			}()
			go watcher.Run(ctx)
		} else {
			logger.Warn("storage keeps no files, watch disabled", zap.String("storage", a.cfg.Storage.Type))
		}
	}

	if a.cfg.Backup.Enabled {
		scheduler, err := newBackupScheduler(a)
		if err != nil {
			return err
		}
		scheduler.Start(ctx)
		defer scheduler.Stop()
	}

	deps := handler.RouterDeps{
		Notes:  handler.NewNoteHandler(a.noteSvc, a.renderer),
		Import: handler.NewImportHandler(a.imports, maxImportUploadSize),
		Export: handler.NewExportHandler(a.exports),
		Themes: handler.NewThemeHandler(a.themeSvc),
	}
	engine, err := webapi.NewEngine(
		"/api/v1",
		a.cfg.Listen,
		webapi.WithRegister(func(group *gin.RouterGroup) {
			handler.RegisterRoutes(group, deps)
		}),
		webapi.WithExtraMiddlewares(
			middleware.RequestID(),
			middleware.CORS(a.cfg.CORSAllowlist),
			gzip.Gzip(gzip.DefaultCompression),
		),
	)
	if err != nil {
		return fmt.Errorf("init web engine: %w", err)
	}
	logger.Info("http server listening", zap.String("addr", a.cfg.Listen))

	go func() {
		if err := engine.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logutil.GetLogger(context.Background()).Error("server error", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("server stopping...")
	return nil
}

func newBackupScheduler(a *app) (*schedule.CronScheduler, error) {
	files, err := filestore.New(a.cfg.Backup.FileStore)
	if err != nil {
		return nil, fmt.Errorf("init backup file store: %w", err)
	}
	scheduler := schedule.NewCronScheduler()
	if err := scheduler.AddJob(job.NewBackupJob(a.noteSvc, files, a.cfg.Backup.Keep), a.cfg.Backup.Cron); err != nil {
		return nil, err
	}
	return scheduler, nil
}
