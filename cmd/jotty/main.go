package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"
)

func main() {
	opts := &rootOptions{}
	rootCmd := &cobra.Command{
		Use:           "jotty",
		Short:         "jotty local notes",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to config.json or config.yaml")
	rootCmd.PersistentFlags().StringVar(&opts.dataDir, "data", "", "local storage dir used when no config is given")

	rootCmd.AddCommand(
		newRunCmd(opts),
		newListCmd(opts),
		newNewCmd(opts),
		newShowCmd(opts),
		newEditCmd(opts),
		newRemoveCmd(opts),
		newDuplicateCmd(opts),
		newCheckCmd(opts),
		newExportCmd(opts),
		newImportCmd(opts),
		newThemeCmd(opts),
		newBackupCmd(opts),
	)

	if err := rootCmd.Execute(); err != nil {
		printError(err)
		logutil.GetLogger(context.Background()).Debug("command failed", zap.Error(err))
		os.Exit(1)
	}
}
