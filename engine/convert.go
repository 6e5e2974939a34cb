package engine

import (
	"strconv"
	"strings"

	east "github.com/yuin/goldmark-emoji/ast"
	"github.com/yuin/goldmark/ast"
	xast "github.com/yuin/goldmark/extension/ast"

	"github.com/leandrocp/mdstream/document"
)

// convert maps a goldmark AST to the document node model.
func convert(root ast.Node, source []byte) (*document.Node, error) {
	doc := document.NewDocument()
	doc.Children = convertChildren(root, source)
	return doc, nil
}

func convertChildren(n ast.Node, source []byte) []*document.Node {
	var out []*document.Node
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		out = append(out, convertNode(c, source)...)
	}
	return out
}

// convertNode maps one goldmark node to zero or more document nodes. A
// goldmark text node may expand to a text plus a line break; render-only
// artifacts collapse to nothing.
func convertNode(n ast.Node, source []byte) []*document.Node {
	switch n := n.(type) {
	case *ast.Heading:
		out := &document.Node{Kind: document.KindHeading}
		out.Heading.Level = n.Level
		out.Children = convertChildren(n, source)
		return one(out)

	case *ast.Paragraph:
		return one(&document.Node{
			Kind:     document.KindParagraph,
			Children: convertChildren(n, source),
		})

	case *ast.TextBlock:
		// Tight list items carry text blocks; the node model represents
		// both as paragraphs.
		return one(&document.Node{
			Kind:     document.KindParagraph,
			Children: convertChildren(n, source),
		})

	case *ast.Blockquote:
		return one(&document.Node{
			Kind:     document.KindBlockQuote,
			Children: convertChildren(n, source),
		})

	case *ast.List:
		return one(convertList(n, source))

	case *ast.FencedCodeBlock:
		out := &document.Node{Kind: document.KindCodeBlock, Literal: blockLines(n, source)}
		out.Code.Fenced = true
		out.Code.FenceChar = '`'
		out.Code.FenceLength = 3
		if n.Info != nil {
			out.Code.Info = string(n.Info.Segment.Value(source))
		}
		return one(out)

	case *ast.CodeBlock:
		return one(&document.Node{Kind: document.KindCodeBlock, Literal: blockLines(n, source)})

	case *ast.HTMLBlock:
		literal := blockLines(n, source)
		if n.HasClosure() {
			literal += string(n.ClosureLine.Value(source))
		}
		return one(&document.Node{Kind: document.KindHTMLBlock, Literal: literal})

	case *ast.ThematicBreak:
		return one(&document.Node{Kind: document.KindThematicBreak})

	case *ast.Text:
		out := one(document.NewText(string(n.Segment.Value(source))))
		if n.HardLineBreak() {
			out = append(out, &document.Node{Kind: document.KindLineBreak})
		} else if n.SoftLineBreak() {
			out = append(out, &document.Node{Kind: document.KindSoftBreak})
		}
		return out

	case *ast.String:
		return one(document.NewText(string(n.Value)))

	case *ast.CodeSpan:
		out := &document.Node{Kind: document.KindCode, Literal: inlineText(n, source)}
		out.NumBackticks = 1
		return one(out)

	case *ast.Emphasis:
		kind := document.KindEmph
		if n.Level >= 2 {
			kind = document.KindStrong
		}
		return one(&document.Node{Kind: kind, Children: convertChildren(n, source)})

	case *xast.Strikethrough:
		return one(&document.Node{
			Kind:     document.KindStrikethrough,
			Children: convertChildren(n, source),
		})

	case *ast.Link:
		out := &document.Node{Kind: document.KindLink, Children: convertChildren(n, source)}
		out.Link.Destination = string(n.Destination)
		out.Link.Title = string(n.Title)
		return one(out)

	case *ast.Image:
		out := &document.Node{Kind: document.KindImage, Children: convertChildren(n, source)}
		out.Link.Destination = string(n.Destination)
		out.Link.Title = string(n.Title)
		return one(out)

	case *ast.AutoLink:
		out := &document.Node{Kind: document.KindLink}
		out.Link.Destination = string(n.URL(source))
		out.Children = one(document.NewText(string(n.Label(source))))
		return one(out)

	case *ast.RawHTML:
		var sb strings.Builder
		for i := 0; i < n.Segments.Len(); i++ {
			seg := n.Segments.At(i)
			sb.Write(seg.Value(source))
		}
		return one(&document.Node{Kind: document.KindHTMLInline, Literal: sb.String()})

	case *xast.Table:
		return one(convertTable(n, source))

	case *xast.TableCell:
		out := &document.Node{Kind: document.KindTableCell}
		out.Children = convertChildren(n, source)
		return one(out)

	case *xast.DefinitionList:
		return one(convertDefinitionList(n, source))

	case *xast.FootnoteList:
		return convertChildren(n, source)

	case *xast.Footnote:
		out := &document.Node{Kind: document.KindFootnoteDefinition}
		out.Footnote.Name = string(n.Ref)
		out.Footnote.Index = n.Index
		out.Children = convertChildren(n, source)
		return one(out)

	case *xast.FootnoteLink:
		out := &document.Node{Kind: document.KindFootnoteReference}
		out.Footnote.Name = strconv.Itoa(n.Index)
		out.Footnote.Index = n.Index
		return one(out)

	case *xast.FootnoteBacklink:
		return nil

	case *xast.TaskCheckBox:
		// Folded into the owning TaskItem by convertList.
		return nil

	case *east.Emoji:
		out := &document.Node{Kind: document.KindShortCode}
		out.Shortcode = string(n.ShortName)
		if n.Value != nil && len(n.Value.Unicode) > 0 {
			out.Literal = string(n.Value.Unicode)
		} else if n.Value != nil {
			out.Literal = n.Value.Name
		}
		return one(out)
	}

	// Unknown or foreign kinds: pass their converted children through.
	return convertChildren(n, source)
}

func convertList(l *ast.List, source []byte) *document.Node {
	data := document.ListData{Tight: l.IsTight}
	if l.IsOrdered() {
		data.ListType = document.ListTypeOrdered
		data.Start = l.Start
		if l.Marker == ')' {
			data.Delimiter = document.ListDelimParen
		}
	} else {
		data.BulletChar = l.Marker
	}

	list := &document.Node{Kind: document.KindList, List: data}
	for li := l.FirstChild(); li != nil; li = li.NextSibling() {
		item := &document.Node{Kind: document.KindListItem, List: data}
		if checked, ok := taskCheckBox(li); ok {
			item.Kind = document.KindTaskItem
			item.Checked = checked
		}
		item.Children = convertChildren(li, source)
		list.Children = append(list.Children, item)
	}
	return list
}

// taskCheckBox reports whether a list item starts with a task checkbox.
func taskCheckBox(li ast.Node) (checked, ok bool) {
	first := li.FirstChild()
	if first == nil {
		return false, false
	}
	if cb, isBox := first.FirstChild().(*xast.TaskCheckBox); isBox {
		return cb.IsChecked, true
	}
	return false, false
}

func convertTable(t *xast.Table, source []byte) *document.Node {
	table := &document.Node{Kind: document.KindTable}
	table.Table.Alignments = make([]document.Alignment, len(t.Alignments))
	for i, a := range t.Alignments {
		table.Table.Alignments[i] = convertAlignment(a)
	}
	table.Table.NumColumns = len(t.Alignments)

	for c := t.FirstChild(); c != nil; c = c.NextSibling() {
		row := &document.Node{Kind: document.KindTableRow}
		if _, isHeader := c.(*xast.TableHeader); isHeader {
			row.Header = true
		}
		row.Children = convertChildren(c, source)
		table.Children = append(table.Children, row)
	}
	table.Table.NumRows = len(table.Children)
	return table
}

func convertAlignment(a xast.Alignment) document.Alignment {
	switch a {
	case xast.AlignLeft:
		return document.AlignLeft
	case xast.AlignCenter:
		return document.AlignCenter
	case xast.AlignRight:
		return document.AlignRight
	}
	return document.AlignNone
}

// convertDefinitionList groups each term with its following descriptions,
// matching the description-item grouping of the node model.
func convertDefinitionList(dl *xast.DefinitionList, source []byte) *document.Node {
	list := &document.Node{Kind: document.KindDescriptionList}
	var item *document.Node
	for c := dl.FirstChild(); c != nil; c = c.NextSibling() {
		switch c.(type) {
		case *xast.DefinitionTerm:
			item = &document.Node{Kind: document.KindDescriptionItem}
			list.Children = append(list.Children, item)
			term := &document.Node{Kind: document.KindDescriptionTerm}
			term.Children = wrapInline(convertChildren(c, source))
			item.Children = append(item.Children, term)
		case *xast.DefinitionDescription:
			if item == nil {
				item = &document.Node{Kind: document.KindDescriptionItem}
				list.Children = append(list.Children, item)
			}
			details := &document.Node{Kind: document.KindDescriptionDetails}
			details.Children = convertChildren(c, source)
			item.Children = append(item.Children, details)
		}
	}
	return list
}

// wrapInline wraps bare inline nodes in a paragraph so description terms
// hold block content like every other block container.
func wrapInline(nodes []*document.Node) []*document.Node {
	if len(nodes) == 0 {
		return nodes
	}
	inline := true
	for _, n := range nodes {
		if !n.Kind.IsInline() {
			inline = false
			break
		}
	}
	if !inline {
		return nodes
	}
	return []*document.Node{{Kind: document.KindParagraph, Children: nodes}}
}

func one(n *document.Node) []*document.Node {
	return []*document.Node{n}
}

func blockLines(n ast.Node, source []byte) string {
	var sb strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		sb.Write(seg.Value(source))
	}
	return sb.String()
}

func inlineText(n ast.Node, source []byte) string {
	var sb strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch c := c.(type) {
		case *ast.Text:
			sb.Write(c.Segment.Value(source))
		case *ast.String:
			sb.Write(c.Value)
		}
	}
	return sb.String()
}
