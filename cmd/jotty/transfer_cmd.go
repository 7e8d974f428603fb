package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/xxxsen/jotty/internal/model"
	"github.com/xxxsen/jotty/internal/pkg/textutil"
)

func newExportCmd(opts *rootOptions) *cobra.Command {
	var (
		all bool
		out string
	)
	cmd := &cobra.Command{
		Use:   "export [id...]",
		Short: "write notes to an export file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !all && len(args) == 0 {
				return fmt.Errorf("pass note ids or --all")
			}
			return withApp(opts, func(ctx context.Context, a *app) error {
				data, fileName, err := a.exports.Export(ctx, args, all)
				if err != nil {
					return err
				}
				if out == "-" {
					_, err := os.Stdout.Write(data)
					return err
				}
				if out == "" {
					out = fileName
				}
				if err := os.WriteFile(out, data, 0o644); err != nil {
					return fmt.Errorf("write export: %w", err)
				}
				fmt.Fprintf(os.Stderr, "%s %s\n", okColor.Sprint("exported to"), out)
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "export every note")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output path, - for stdout (default jotty-notes-<date>.json)")
	return cmd
}

func newImportCmd(opts *rootOptions) *cobra.Command {
	var (
		resolve       []string
		defaultAction string
		dryRun        bool
	)
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "merge an export file into the store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(args[0])
			if err != nil {
				return err
			}
			return withApp(opts, func(ctx context.Context, a *app) error {
				batch, err := a.imports.Decode(data)
				if err != nil {
					return err
				}
				conflicts := a.imports.Conflicts(batch)
				if len(conflicts) == 0 {
					if dryRun {
						fmt.Printf("%d notes, no conflicts\n", len(batch))
						return nil
					}
					result, err := a.imports.Import(ctx, batch, nil)
					if err != nil {
						return err
					}
					printResult(result)
					return nil
				}
				printConflicts(conflicts)
				if dryRun {
					return nil
				}
				if len(resolve) == 0 && defaultAction == "" {
					return fmt.Errorf("%d conflicts, pass --default or --resolve id=action", len(conflicts))
				}
				resolutions, err := buildResolutions(conflicts, resolve, defaultAction)
				if err != nil {
					return err
				}
				result, err := a.imports.Import(ctx, batch, resolutions)
				if err != nil {
					return err
				}
				printResult(result)
				return nil
			})
		},
	}
	cmd.Flags().StringArrayVar(&resolve, "resolve", nil, "per-note resolution id=overwrite|saveAsNew|skip, repeatable")
	cmd.Flags().StringVar(&defaultAction, "default", "", "resolution for conflicts without --resolve")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "only report conflicts")
	return cmd
}

func printConflicts(conflicts []model.Conflict) {
	now := time.Now()
	fmt.Printf("%s\n", warnColor.Sprintf("%d notes already exist:", len(conflicts)))
	for _, c := range conflicts {
		fmt.Printf("  %s  existing %q (%s)  incoming %q\n",
			idColor.Sprint(c.Incoming.ID),
			c.Existing.Title,
			dimColor.Sprint(textutil.RelativeTime(c.Existing.LastEdited, now)),
			c.Incoming.Title,
		)
	}
}

// buildResolutions turns --resolve/--default flags into one resolution per
// conflict. Conflicts covered by neither are left out and so skipped.
func buildResolutions(conflicts []model.Conflict, resolve []string, defaultAction string) ([]model.Resolution, error) {
	var fallback model.ResolutionAction
	if defaultAction != "" {
		action, ok := model.ParseResolutionAction(defaultAction)
		if !ok {
			return nil, fmt.Errorf("unknown resolution action %q", defaultAction)
		}
		fallback = action
	}
	explicit := make(map[string]model.ResolutionAction, len(resolve))
	for _, item := range resolve {
		id, name, ok := strings.Cut(item, "=")
		if !ok || id == "" {
			return nil, fmt.Errorf("invalid --resolve %q, want id=action", item)
		}
		action, ok := model.ParseResolutionAction(name)
		if !ok {
			return nil, fmt.Errorf("unknown resolution action %q", name)
		}
		explicit[id] = action
	}
	resolutions := make([]model.Resolution, 0, len(conflicts))
	for _, c := range conflicts {
		action, ok := explicit[c.Incoming.ID]
		if !ok {
			action = fallback
		}
		if action == "" {
			continue
		}
		resolutions = append(resolutions, model.Resolution{NoteID: c.Incoming.ID, Action: action})
	}
	return resolutions, nil
}
