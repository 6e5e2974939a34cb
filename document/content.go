package document

// ContentModel classifies what a node kind may contain. The classification
// is a pure function of the kind, so the merge logic can be written once
// instead of per kind.
type ContentModel int

const (
	// ContainsNone marks leaf kinds (Text, CodeBlock, ThematicBreak, ...).
	ContainsNone ContentModel = iota
	// ContainsBlock marks block containers (Document, BlockQuote, list
	// items, description terms/details).
	ContainsBlock
	// ContainsInline marks inline containers (Paragraph, Heading,
	// TableCell and the emphasis-like spans).
	ContainsInline
	// ContainsListItem marks List (accepts ListItem and TaskItem).
	ContainsListItem
	// ContainsTableRow marks Table.
	ContainsTableRow
	// ContainsTableCell marks TableRow.
	ContainsTableCell
	// ContainsDescriptionItem marks DescriptionList.
	ContainsDescriptionItem
	// ContainsDescriptionPart marks DescriptionItem (accepts
	// DescriptionTerm and DescriptionDetails).
	ContainsDescriptionPart
)

var contentModels = [...]ContentModel{
	KindDocument:            ContainsBlock,
	KindFrontMatter:         ContainsNone,
	KindBlockQuote:          ContainsBlock,
	KindMultilineBlockQuote: ContainsBlock,
	KindList:                ContainsListItem,
	KindListItem:            ContainsBlock,
	KindTaskItem:            ContainsBlock,
	KindDescriptionList:     ContainsDescriptionItem,
	KindDescriptionItem:     ContainsDescriptionPart,
	KindDescriptionTerm:     ContainsBlock,
	KindDescriptionDetails:  ContainsBlock,
	KindTable:               ContainsTableRow,
	KindTableRow:            ContainsTableCell,
	KindTableCell:           ContainsInline,
	KindParagraph:           ContainsInline,
	KindHeading:             ContainsInline,
	KindCodeBlock:           ContainsNone,
	KindHTMLBlock:           ContainsNone,
	KindThematicBreak:       ContainsNone,
	KindFootnoteDefinition:  ContainsBlock,
	KindText:                ContainsNone,
	KindCode:                ContainsNone,
	KindHTMLInline:          ContainsNone,
	KindEmph:                ContainsInline,
	KindStrong:              ContainsInline,
	KindStrikethrough:       ContainsInline,
	KindUnderline:           ContainsInline,
	KindSpoileredText:       ContainsInline,
	KindLink:                ContainsInline,
	KindImage:               ContainsInline,
	KindWikiLink:            ContainsInline,
	KindFootnoteReference:   ContainsNone,
	KindShortCode:           ContainsNone,
	KindMath:                ContainsNone,
	KindEscaped:             ContainsNone,
	KindSoftBreak:           ContainsNone,
	KindLineBreak:           ContainsNone,
}

// Model returns the content model of k. Unknown kinds contain nothing.
func (k Kind) Model() ContentModel {
	if k < 0 || int(k) >= len(contentModels) {
		return ContainsNone
	}
	return contentModels[k]
}

// IsInline reports whether k is an inline kind.
func (k Kind) IsInline() bool {
	switch k {
	case KindText, KindCode, KindHTMLInline, KindEmph, KindStrong,
		KindStrikethrough, KindUnderline, KindSpoileredText,
		KindLink, KindImage, KindWikiLink, KindFootnoteReference,
		KindShortCode, KindMath, KindEscaped, KindSoftBreak, KindLineBreak:
		return true
	}
	return false
}

// IsBlock reports whether k is a block kind acceptable to a block container.
// The structural kinds that require a dedicated parent (list items, table
// rows, description parts) are neither inline nor block.
func (k Kind) IsBlock() bool {
	switch k {
	case KindParagraph, KindHeading, KindBlockQuote, KindMultilineBlockQuote,
		KindList, KindDescriptionList, KindTable, KindCodeBlock,
		KindHTMLBlock, KindThematicBreak, KindFrontMatter,
		KindFootnoteDefinition:
		return true
	}
	return false
}

// CanContain reports whether a node of kind parent accepts a child of kind
// child under the content model. The Document root is handled permissively
// by AppendNode, not here.
func CanContain(parent, child Kind) bool {
	switch parent.Model() {
	case ContainsBlock:
		return child.IsBlock()
	case ContainsInline:
		return child.IsInline()
	case ContainsListItem:
		return child == KindListItem || child == KindTaskItem
	case ContainsTableRow:
		return child == KindTableRow
	case ContainsTableCell:
		return child == KindTableCell
	case ContainsDescriptionItem:
		return child == KindDescriptionItem
	case ContainsDescriptionPart:
		return child == KindDescriptionTerm || child == KindDescriptionDetails
	}
	return false
}
