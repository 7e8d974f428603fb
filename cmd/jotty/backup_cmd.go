package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xxxsen/jotty/internal/filestore"
	"github.com/xxxsen/jotty/internal/job"
	"github.com/xxxsen/jotty/internal/schedule"
)

func newBackupCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "backup",
		Short: "write a backup snapshot now",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(opts, func(ctx context.Context, a *app) error {
				if a.cfg.Backup.FileStore.Type == "" {
					return fmt.Errorf("backup.file_store is not configured")
				}
				files, err := filestore.New(a.cfg.Backup.FileStore)
				if err != nil {
					return fmt.Errorf("init backup file store: %w", err)
				}
				if err := schedule.RunOnce(ctx, job.NewBackupJob(a.noteSvc, files, a.cfg.Backup.Keep)); err != nil {
					return err
				}
				fmt.Println(okColor.Sprint("backup written"))
				return nil
			})
		},
	}
}
