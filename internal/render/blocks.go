// Package render turns note content into display blocks, card previews and
// HTML.
package render

import (
	"regexp"
	"strings"

	"github.com/xxxsen/jotty/internal/pkg/textutil"
)

const (
	DefaultCodeLanguage  = "javascript"
	DefaultPreviewLength = 120
	codeBlockPlaceholder = "[Code Block]"
)

type BlockKind string

const (
	BlockText      BlockKind = "text"
	BlockCode      BlockKind = "code"
	BlockChecklist BlockKind = "checklist"
)

type Block struct {
	Kind     BlockKind `json:"kind"`
	Text     string    `json:"text"`
	Language string    `json:"language,omitempty"`
	Checked  bool      `json:"checked,omitempty"`
	// Index counts checklist items from zero across the whole note.
	Index int `json:"index,omitempty"`
}

var (
	fenceRe     = regexp.MustCompile("```(\\w*)\\s*\\n?([\\s\\S]*?)\\n?\\s*```")
	markerRe    = regexp.MustCompile(`\[CODE_BLOCK:(\w+)\]\n([\s\S]*?)\n\[/CODE_BLOCK\]`)
	markerAnyRe = regexp.MustCompile(`\[CODE_BLOCK:[\w+]*\][\s\S]*?\[/CODE_BLOCK\]`)
	checkRe     = regexp.MustCompile(`^(\s*)- \[( |x|X)\] ?(.*)$`)
)

// NormalizeCodeFences rewrites ```lang fences into [CODE_BLOCK:lang]
// markers. Fences without a language default to javascript.
func NormalizeCodeFences(text string) string {
	return fenceRe.ReplaceAllStringFunc(text, func(match string) string {
		parts := fenceRe.FindStringSubmatch(match)
		lang := parts[1]
		if lang == "" {
			lang = DefaultCodeLanguage
		}
		return "\n[CODE_BLOCK:" + lang + "]\n" + strings.TrimSpace(parts[2]) + "\n[/CODE_BLOCK]\n"
	})
}

// Parse splits content into code blocks, checklist items and text lines.
func Parse(content string) []Block {
	content = NormalizeCodeFences(content)
	var blocks []Block
	checkIndex := 0
	emitText := func(segment string) {
		if segment == "" {
			return
		}
		for _, line := range strings.Split(segment, "\n") {
			if m := checkRe.FindStringSubmatch(line); m != nil {
				blocks = append(blocks, Block{
					Kind:    BlockChecklist,
					Text:    m[3],
					Checked: m[2] != " ",
					Index:   checkIndex,
				})
				checkIndex++
				continue
			}
			blocks = append(blocks, Block{Kind: BlockText, Text: line})
		}
	}
	last := 0
	for _, loc := range markerRe.FindAllStringSubmatchIndex(content, -1) {
		emitText(strings.Trim(content[last:loc[0]], "\n"))
		blocks = append(blocks, Block{
			Kind:     BlockCode,
			Language: content[loc[2]:loc[3]],
			Text:     content[loc[4]:loc[5]],
		})
		last = loc[1]
	}
	emitText(strings.Trim(content[last:], "\n"))
	return blocks
}

// Preview replaces code with a placeholder and truncates for a note card.
func Preview(content string, max int) string {
	if max <= 0 {
		max = DefaultPreviewLength
	}
	text := fenceRe.ReplaceAllString(content, codeBlockPlaceholder)
	text = markerAnyRe.ReplaceAllString(text, codeBlockPlaceholder)
	return textutil.Truncate(text, max)
}

// ToggleChecklistItem flips the index-th checklist item. ok is false when
// the note has fewer items.
func ToggleChecklistItem(content string, index int) (string, bool) {
	if index < 0 {
		return content, false
	}
	lines := strings.Split(content, "\n")
	seen := 0
	inFence := false
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(trimmed, "```"):
			if strings.Count(trimmed, "```") == 1 {
				inFence = !inFence
			}
			continue
		case strings.HasPrefix(trimmed, "[CODE_BLOCK:"):
			inFence = true
			continue
		case trimmed == "[/CODE_BLOCK]":
			inFence = false
			continue
		}
		if inFence {
			continue
		}
		m := checkRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		if seen == index {
			mark := "x"
			if m[2] != " " {
				mark = " "
			}
			lines[i] = m[1] + "- [" + mark + "] " + m[3]
			return strings.Join(lines, "\n"), true
		}
		seen++
	}
	return content, false
}

// markersToFences undoes NormalizeCodeFences for markdown renderers.
func markersToFences(content string) string {
	return markerRe.ReplaceAllString(content, "```$1\n$2\n```")
}
