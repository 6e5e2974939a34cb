// Package document defines the markdown AST produced by the engine and the
// operations for grafting freshly parsed fragments onto an existing tree.
//
// A Node is a tagged variant: Kind selects the node kind, the embedded data
// structs carry kind-specific attributes, and Children holds the ordered
// subtree. A tree exclusively owns its children; nodes spliced into a
// document must not be reused elsewhere.
package document

import "strings"

// Kind identifies a markdown node kind.
type Kind int

const (
	KindDocument Kind = iota
	KindFrontMatter
	KindBlockQuote
	KindMultilineBlockQuote
	KindList
	KindListItem
	KindTaskItem
	KindDescriptionList
	KindDescriptionItem
	KindDescriptionTerm
	KindDescriptionDetails
	KindTable
	KindTableRow
	KindTableCell
	KindParagraph
	KindHeading
	KindCodeBlock
	KindHTMLBlock
	KindThematicBreak
	KindFootnoteDefinition
	KindText
	KindCode
	KindHTMLInline
	KindEmph
	KindStrong
	KindStrikethrough
	KindUnderline
	KindSpoileredText
	KindLink
	KindImage
	KindWikiLink
	KindFootnoteReference
	KindShortCode
	KindMath
	KindEscaped
	KindSoftBreak
	KindLineBreak
)

var kindNames = [...]string{
	KindDocument:            "document",
	KindFrontMatter:         "front_matter",
	KindBlockQuote:          "block_quote",
	KindMultilineBlockQuote: "multiline_block_quote",
	KindList:                "list",
	KindListItem:            "list_item",
	KindTaskItem:            "task_item",
	KindDescriptionList:     "description_list",
	KindDescriptionItem:     "description_item",
	KindDescriptionTerm:     "description_term",
	KindDescriptionDetails:  "description_details",
	KindTable:               "table",
	KindTableRow:            "table_row",
	KindTableCell:           "table_cell",
	KindParagraph:           "paragraph",
	KindHeading:             "heading",
	KindCodeBlock:           "code_block",
	KindHTMLBlock:           "html_block",
	KindThematicBreak:       "thematic_break",
	KindFootnoteDefinition:  "footnote_definition",
	KindText:                "text",
	KindCode:                "code",
	KindHTMLInline:          "html_inline",
	KindEmph:                "emph",
	KindStrong:              "strong",
	KindStrikethrough:       "strikethrough",
	KindUnderline:           "underline",
	KindSpoileredText:       "spoilered_text",
	KindLink:                "link",
	KindImage:               "image",
	KindWikiLink:            "wiki_link",
	KindFootnoteReference:   "footnote_reference",
	KindShortCode:           "short_code",
	KindMath:                "math",
	KindEscaped:             "escaped",
	KindSoftBreak:           "soft_break",
	KindLineBreak:           "line_break",
}

// String returns the snake_case kind name.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// ListType distinguishes bullet and ordered lists.
type ListType int

const (
	ListTypeBullet ListType = iota
	ListTypeOrdered
)

// ListDelim is the marker delimiter of an ordered list.
type ListDelim int

const (
	ListDelimPeriod ListDelim = iota
	ListDelimParen
)

// Alignment is a table column alignment.
type Alignment int

const (
	AlignNone Alignment = iota
	AlignLeft
	AlignCenter
	AlignRight
)

// ListData holds List, ListItem and TaskItem attributes.
type ListData struct {
	ListType   ListType
	BulletChar byte // '-', '+' or '*' for bullet lists
	Delimiter  ListDelim
	Start      int
	Tight      bool
}

// HeadingData holds Heading attributes.
type HeadingData struct {
	Level  int
	Setext bool
}

// CodeBlockData holds CodeBlock attributes. The block body lives in
// Node.Literal.
type CodeBlockData struct {
	Fenced      bool
	FenceChar   byte
	FenceLength int
	Info        string
}

// TableData holds Table attributes. NumRows counts every row including the
// header row.
type TableData struct {
	Alignments []Alignment
	NumColumns int
	NumRows    int
}

// LinkData holds Link, Image and WikiLink attributes.
type LinkData struct {
	Destination string
	Title       string
}

// MathData holds Math attributes. The raw math body lives in Node.Literal.
type MathData struct {
	DollarMath  bool
	DisplayMath bool
}

// FootnoteData holds FootnoteDefinition and FootnoteReference attributes.
type FootnoteData struct {
	Name   string
	Index  int
	RefNum int
}

// Node is a single markdown AST node. Only the fields relevant to Kind are
// populated; everything else stays zero.
type Node struct {
	Kind     Kind
	Children []*Node

	// Literal is the raw content of leaf kinds: Text, Code, CodeBlock,
	// HTMLBlock, HTMLInline, FrontMatter, Math, Escaped, ShortCode.
	Literal string

	Heading  HeadingData
	List     ListData
	Code     CodeBlockData
	Table    TableData
	Link     LinkData
	Math     MathData
	Footnote FootnoteData

	// Checked is set on TaskItem.
	Checked bool
	// NumBackticks is set on Code (inline code span).
	NumBackticks int
	// Header is set on the header TableRow.
	Header bool
	// Shortcode is the emoji name of a ShortCode node, without colons.
	Shortcode string
}

// NewDocument returns an empty document root.
func NewDocument() *Node {
	return &Node{Kind: KindDocument}
}

// NewText returns a text node with the given literal.
func NewText(literal string) *Node {
	return &Node{Kind: KindText, Literal: literal}
}

// LastChild returns the last child of n, or nil.
func (n *Node) LastChild() *Node {
	if len(n.Children) == 0 {
		return nil
	}
	return n.Children[len(n.Children)-1]
}

// AppendChild appends child to n without any content-model checking.
// Callers that want structural validation use AppendNode instead.
func (n *Node) AppendChild(child *Node) {
	n.Children = append(n.Children, child)
}

// WalkStatus controls Walk traversal.
type WalkStatus int

const (
	// WalkContinue descends into the node's children.
	WalkContinue WalkStatus = iota
	// WalkSkipChildren continues with the next sibling.
	WalkSkipChildren
	// WalkStop aborts the traversal.
	WalkStop
)

// Walk traverses the tree rooted at n in depth-first order.
func Walk(n *Node, fn func(*Node) WalkStatus) {
	walk(n, fn)
}

func walk(n *Node, fn func(*Node) WalkStatus) WalkStatus {
	switch fn(n) {
	case WalkStop:
		return WalkStop
	case WalkSkipChildren:
		return WalkContinue
	}
	for _, c := range n.Children {
		if walk(c, fn) == WalkStop {
			return WalkStop
		}
	}
	return WalkContinue
}

// Text returns the concatenated literals of all text-bearing descendants,
// with soft breaks rendered as newlines.
func (n *Node) Text() string {
	var sb strings.Builder
	Walk(n, func(c *Node) WalkStatus {
		switch c.Kind {
		case KindText, KindCode, KindEscaped:
			sb.WriteString(c.Literal)
		case KindShortCode:
			sb.WriteString(c.Literal)
		case KindSoftBreak, KindLineBreak:
			sb.WriteByte('\n')
		}
		return WalkContinue
	})
	return sb.String()
}
