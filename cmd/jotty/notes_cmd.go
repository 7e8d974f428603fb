package main

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/xxxsen/jotty/internal/model"
	"github.com/xxxsen/jotty/internal/render"
)

type patchFlags struct {
	title       string
	content     string
	contentFile string
	color       string
	icon        string
	imageFile   string
	clearImage  bool
}

func (f *patchFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.title, "title", "", "note title")
	cmd.Flags().StringVar(&f.content, "content", "", "note content")
	cmd.Flags().StringVar(&f.contentFile, "content-file", "", "read content from a file, - for stdin")
	cmd.Flags().StringVar(&f.color, "color", "", "note color, e.g. #fef3c7")
	cmd.Flags().StringVar(&f.icon, "icon", "", "note icon")
	cmd.Flags().StringVar(&f.imageFile, "image-file", "", "attach an image file")
	cmd.Flags().BoolVar(&f.clearImage, "clear-image", false, "remove the attached image")
}

func (f *patchFlags) patch(cmd *cobra.Command) (model.NotePatch, error) {
	var patch model.NotePatch
	flags := cmd.Flags()
	if flags.Changed("title") {
		patch.Title = &f.title
	}
	if flags.Changed("content") {
		patch.Content = &f.content
	}
	if f.contentFile != "" {
		data, err := readInput(f.contentFile)
		if err != nil {
			return patch, err
		}
		content := string(data)
		patch.Content = &content
	}
	if flags.Changed("color") {
		patch.Color = &f.color
	}
	if flags.Changed("icon") {
		patch.Icon = &f.icon
	}
	if f.clearImage {
		empty := ""
		patch.Image = &empty
	} else if f.imageFile != "" {
		data, err := os.ReadFile(f.imageFile)
		if err != nil {
			return patch, fmt.Errorf("read image: %w", err)
		}
		uri := "data:" + http.DetectContentType(data) + ";base64," + base64.StdEncoding.EncodeToString(data)
		patch.Image = &uri
	}
	return patch, nil
}

func readInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}

func newListCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "list notes, most recently edited first",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(opts, func(ctx context.Context, a *app) error {
				notes := a.noteSvc.List(ctx)
				if len(notes) == 0 {
					fmt.Println(dimColor.Sprint("no notes"))
					return nil
				}
				now := time.Now()
				for _, note := range notes {
					printNoteLine(note, now)
				}
				return nil
			})
		},
	}
}

func newNewCmd(opts *rootOptions) *cobra.Command {
	var template string
	flags := &patchFlags{}
	cmd := &cobra.Command{
		Use:   "new",
		Short: "create a note from a template",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			patch, err := flags.patch(cmd)
			if err != nil {
				return err
			}
			return withApp(opts, func(ctx context.Context, a *app) error {
				note, err := a.noteSvc.Create(ctx, model.Template(template), patch)
				if err != nil {
					return err
				}
				fmt.Printf("%s %s\n", okColor.Sprint("created"), idColor.Sprint(note.ID))
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&template, "template", string(model.TemplatePlain), "plain, code or checklist")
	flags.bind(cmd)
	return cmd
}

func newShowCmd(opts *rootOptions) *cobra.Command {
	var asHTML bool
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "print a note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(opts, func(ctx context.Context, a *app) error {
				note, err := a.noteSvc.Get(ctx, args[0])
				if err != nil {
					return err
				}
				if asHTML {
					out, err := a.renderer.Render(note.Content)
					if err != nil {
						return err
					}
					fmt.Print(out)
					return nil
				}
				printNote(*note)
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&asHTML, "html", false, "render content as HTML")
	return cmd
}

func printNote(note model.Note) {
	fmt.Printf("%s %s\n", note.Icon, titleColor.Sprint(note.Title))
	fmt.Printf("%s\n\n", dimColor.Sprintf("%s  %s  %s", note.ID, note.Template, time.UnixMilli(note.LastEdited).Format(time.DateTime)))
	for _, block := range render.Parse(note.Content) {
		switch block.Kind {
		case render.BlockCode:
			fmt.Println(dimColor.Sprint("```" + block.Language))
			fmt.Println(block.Text)
			fmt.Println(dimColor.Sprint("```"))
		case render.BlockChecklist:
			mark := "[ ]"
			if block.Checked {
				mark = okColor.Sprint("[x]")
			}
			fmt.Printf("%s %s %s\n", dimColor.Sprint(strconv.Itoa(block.Index)), mark, block.Text)
		default:
			fmt.Println(block.Text)
		}
	}
	if note.Image != "" {
		fmt.Println(dimColor.Sprint("(image attached)"))
	}
}

func newEditCmd(opts *rootOptions) *cobra.Command {
	flags := &patchFlags{}
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "update fields of a note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			patch, err := flags.patch(cmd)
			if err != nil {
				return err
			}
			if patch.Empty() {
				return fmt.Errorf("nothing to update")
			}
			return withApp(opts, func(ctx context.Context, a *app) error {
				note, err := a.noteSvc.Update(ctx, args[0], patch)
				if err != nil {
					return err
				}
				fmt.Printf("%s %s\n", okColor.Sprint("updated"), idColor.Sprint(note.ID))
				return nil
			})
		},
	}
	flags.bind(cmd)
	return cmd
}

func newRemoveCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>...",
		Aliases: []string{"delete"},
		Short:   "delete notes",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(opts, func(ctx context.Context, a *app) error {
				for _, id := range args {
					if err := a.noteSvc.Delete(ctx, id); err != nil {
						return fmt.Errorf("delete %s: %w", id, err)
					}
					fmt.Printf("%s %s\n", okColor.Sprint("deleted"), idColor.Sprint(id))
				}
				return nil
			})
		},
	}
}

func newDuplicateCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "dup <id>",
		Aliases: []string{"duplicate"},
		Short:   "copy a note",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(opts, func(ctx context.Context, a *app) error {
				note, err := a.noteSvc.Duplicate(ctx, args[0])
				if err != nil {
					return err
				}
				fmt.Printf("%s %s\n", okColor.Sprint("created"), idColor.Sprint(note.ID))
				return nil
			})
		},
	}
}

func newCheckCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "check <id> <index>",
		Short: "toggle a checklist item",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := strconv.Atoi(args[1])
			if err != nil || index < 0 {
				return fmt.Errorf("invalid checklist index %q", args[1])
			}
			return withApp(opts, func(ctx context.Context, a *app) error {
				note, err := a.noteSvc.ToggleChecklistItem(ctx, args[0], index)
				if err != nil {
					return err
				}
				printNote(*note)
				return nil
			})
		},
	}
}
