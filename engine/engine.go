// Package engine wraps the external CommonMark engine (goldmark) behind
// the document node model. It configures the extension set, parses text
// into document trees, and exposes a thin HTML render passthrough. The
// character-level tokenizing itself is entirely goldmark's.
package engine

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	emoji "github.com/yuin/goldmark-emoji"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"

	"github.com/leandrocp/mdstream/document"
)

// Options selects the engine extensions. The zero value is plain
// CommonMark; DefaultOptions enables the full GFM-flavored set.
type Options struct {
	Table          bool
	Strikethrough  bool
	TaskList       bool
	Autolink       bool
	DefinitionList bool
	Footnotes      bool
	Shortcodes     bool
	FrontMatter    bool
	// Unsafe passes raw HTML through when rendering.
	Unsafe bool
}

// DefaultOptions enables every supported extension.
func DefaultOptions() Options {
	return Options{
		Table:          true,
		Strikethrough:  true,
		TaskList:       true,
		Autolink:       true,
		DefinitionList: true,
		Footnotes:      true,
		Shortcodes:     true,
		FrontMatter:    true,
	}
}

// Engine is a configured parser instance. It is stateless across calls
// and safe for repeated use by a single session.
type Engine struct {
	md   goldmark.Markdown
	opts Options
}

// New builds an engine with the given options.
func New(opts Options) *Engine {
	var exts []goldmark.Extender
	if opts.Table {
		exts = append(exts, extension.Table)
	}
	if opts.Strikethrough {
		exts = append(exts, extension.Strikethrough)
	}
	if opts.TaskList {
		exts = append(exts, extension.TaskList)
	}
	if opts.Autolink {
		exts = append(exts, extension.Linkify)
	}
	if opts.DefinitionList {
		exts = append(exts, extension.DefinitionList)
	}
	if opts.Footnotes {
		exts = append(exts, extension.Footnote)
	}
	if opts.Shortcodes {
		exts = append(exts, emoji.Emoji)
	}

	var rendererOpts []goldmark.Option
	if opts.Unsafe {
		rendererOpts = append(rendererOpts, goldmark.WithRendererOptions(html.WithUnsafe()))
	}

	md := goldmark.New(append([]goldmark.Option{
		goldmark.WithExtensions(exts...),
	}, rendererOpts...)...)

	return &Engine{md: md, opts: opts}
}

// Parse parses markdown into a document tree.
func (e *Engine) Parse(src string) (*document.Node, error) {
	body := src
	var fm *document.Node
	if e.opts.FrontMatter {
		fm, body = splitFrontMatter(src)
	}

	source := []byte(body)
	root := e.md.Parser().Parse(text.NewReader(source))
	doc, err := convert(root, source)
	if err != nil {
		return nil, fmt.Errorf("engine: parse: %w", err)
	}
	if fm != nil {
		doc.Children = append([]*document.Node{fm}, doc.Children...)
	}
	return doc, nil
}

// HTML renders markdown to HTML using the configured engine.
func (e *Engine) HTML(src string) (string, error) {
	body := src
	if e.opts.FrontMatter {
		_, body = splitFrontMatter(src)
	}
	var buf bytes.Buffer
	if err := e.md.Convert([]byte(body), &buf); err != nil {
		return "", fmt.Errorf("engine: render: %w", err)
	}
	return buf.String(), nil
}

// splitFrontMatter detaches a leading YAML front matter block. The node
// literal keeps the delimiter lines verbatim.
func splitFrontMatter(src string) (*document.Node, string) {
	if !strings.HasPrefix(src, "---\n") {
		return nil, src
	}
	rest := strings.TrimPrefix(src, "---\n")
	end := -1
	if strings.HasPrefix(rest, "---\n") || rest == "---" {
		end = 0
	} else if i := strings.Index(rest, "\n---\n"); i >= 0 {
		end = i + 1
	} else if strings.HasSuffix(rest, "\n---") {
		end = len(rest) - 3
	}
	if end < 0 {
		return nil, src
	}

	closer := rest[end:]
	body := ""
	if i := strings.IndexByte(closer, '\n'); i >= 0 {
		body = closer[i+1:]
	}
	raw := src[:len(src)-len(body)]
	return &document.Node{Kind: document.KindFrontMatter, Literal: raw}, body
}
