package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeCodeFences(t *testing.T) {
	got := NormalizeCodeFences("before\n```go\nfmt.Println(1)\n```\nafter")
	require.Equal(t, "before\n\n[CODE_BLOCK:go]\nfmt.Println(1)\n[/CODE_BLOCK]\n\nafter", got)

	got = NormalizeCodeFences("```\nx := 1\n```")
	require.Contains(t, got, "[CODE_BLOCK:javascript]\nx := 1\n[/CODE_BLOCK]")
}

func TestParse(t *testing.T) {
	content := "Groceries\n- [ ] milk\n- [x] eggs\n```python\nprint('hi')\n```\ntail"
	blocks := Parse(content)
	require.Equal(t, []Block{
		{Kind: BlockText, Text: "Groceries"},
		{Kind: BlockChecklist, Text: "milk", Index: 0},
		{Kind: BlockChecklist, Text: "eggs", Checked: true, Index: 1},
		{Kind: BlockCode, Language: "python", Text: "print('hi')"},
		{Kind: BlockText, Text: "tail"},
	}, blocks)
}

func TestParseEmpty(t *testing.T) {
	require.Empty(t, Parse(""))
}

func TestPreview(t *testing.T) {
	content := "Intro ```js\nlet a = 1\n``` and [CODE_BLOCK:go]\nx\n[/CODE_BLOCK] end"
	require.Equal(t, "Intro [Code Block] and [Code Block] end", Preview(content, 0))

	long := strings.Repeat("word ", 60)
	preview := Preview(long, 0)
	require.True(t, strings.HasSuffix(preview, "..."))
	require.LessOrEqual(t, len(preview), DefaultPreviewLength+3)
}

func TestToggleChecklistItem(t *testing.T) {
	content := "- [ ] one\n```\n- [ ] not a task\n```\n- [x] two"

	got, ok := ToggleChecklistItem(content, 1)
	require.True(t, ok)
	require.Equal(t, "- [ ] one\n```\n- [ ] not a task\n```\n- [ ] two", got)

	got, ok = ToggleChecklistItem(content, 0)
	require.True(t, ok)
	require.True(t, strings.HasPrefix(got, "- [x] one"))

	_, ok = ToggleChecklistItem(content, 2)
	require.False(t, ok)
	_, ok = ToggleChecklistItem(content, -1)
	require.False(t, ok)
}

func TestHTMLRenderer(t *testing.T) {
	r, err := NewHTMLRenderer(4)
	require.NoError(t, err)

	out, err := r.Render("# Title\n\n- [x] done\n\n[CODE_BLOCK:go]\nfmt.Println(1)\n[/CODE_BLOCK]")
	require.NoError(t, err)
	require.Contains(t, out, "<h1>Title</h1>")
	require.Contains(t, out, `type="checkbox"`)
	require.Contains(t, out, `class="language-go"`)
	require.Equal(t, 1, r.Cached())

	again, err := r.Render("# Title\n\n- [x] done\n\n[CODE_BLOCK:go]\nfmt.Println(1)\n[/CODE_BLOCK]")
	require.NoError(t, err)
	require.Equal(t, out, again)
	require.Equal(t, 1, r.Cached())
}
