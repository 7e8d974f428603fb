package render

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

const defaultCacheSize = 256

// HTMLRenderer converts note content to HTML and memoizes results by
// content hash.
type HTMLRenderer struct {
	md    goldmark.Markdown
	cache *lru.Cache[string, string]
}

func NewHTMLRenderer(cacheSize int) (*HTMLRenderer, error) {
	if cacheSize <= 0 {
		cacheSize = defaultCacheSize
	}
	cache, err := lru.New[string, string](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("init render cache: %w", err)
	}
	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithRendererOptions(html.WithHardWraps()),
	)
	return &HTMLRenderer{md: md, cache: cache}, nil
}

func (r *HTMLRenderer) Render(content string) (string, error) {
	sum := sha256.Sum256([]byte(content))
	key := hex.EncodeToString(sum[:])
	if cached, ok := r.cache.Get(key); ok {
		return cached, nil
	}
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(markersToFences(content)), &buf); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	out := buf.String()
	r.cache.Add(key, out)
	return out, nil
}

func (r *HTMLRenderer) Cached() int {
	return r.cache.Len()
}
