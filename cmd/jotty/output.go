package main

import (
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"

	"github.com/xxxsen/jotty/internal/model"
	"github.com/xxxsen/jotty/internal/pkg/textutil"
	"github.com/xxxsen/jotty/internal/render"
)

var (
	idColor    = color.New(color.FgCyan)
	titleColor = color.New(color.Bold)
	dimColor   = color.New(color.Faint)
	okColor    = color.New(color.FgGreen)
	warnColor  = color.New(color.FgYellow)
	errColor   = color.New(color.FgRed)
)

func printError(err error) {
	fmt.Fprintf(os.Stderr, "%s %v\n", errColor.Sprint("error:"), err)
}

func printNoteLine(note model.Note, now time.Time) {
	fmt.Printf("%s %s %s  %s\n",
		idColor.Sprint(note.ID),
		note.Icon,
		titleColor.Sprint(textutil.Truncate(note.Title, 60)),
		dimColor.Sprint(textutil.RelativeTime(note.LastEdited, now)),
	)
	if preview := render.Preview(note.Content, 0); preview != "" {
		fmt.Printf("    %s\n", dimColor.Sprint(preview))
	}
}

func printResult(result model.ImportResult) {
	fmt.Printf("%s imported=%d overwritten=%d skipped=%d\n",
		okColor.Sprint("import done:"),
		result.Imported, result.Overwritten, result.Skipped,
	)
}
