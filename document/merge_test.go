package document

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func para(children ...*Node) *Node {
	return &Node{Kind: KindParagraph, Children: children}
}

func heading(level int, children ...*Node) *Node {
	return &Node{Kind: KindHeading, Heading: HeadingData{Level: level}, Children: children}
}

func bulletList(items ...*Node) *Node {
	return &Node{Kind: KindList, List: ListData{ListType: ListTypeBullet, BulletChar: '-'}, Children: items}
}

func item(children ...*Node) *Node {
	return &Node{Kind: KindListItem, List: ListData{ListType: ListTypeBullet, BulletChar: '-'}, Children: children}
}

func tableRow(cells ...string) *Node {
	row := &Node{Kind: KindTableRow}
	for _, c := range cells {
		row.Children = append(row.Children, &Node{Kind: KindTableCell, Children: []*Node{NewText(c)}})
	}
	return row
}

func diffTree(t *testing.T, want, got *Node) {
	t.Helper()
	if d := cmp.Diff(want, got); d != "" {
		t.Errorf("tree mismatch (-want +got):\n%s", d)
	}
}

func TestAppendNodeNilSafety(t *testing.T) {
	doc := AppendNode(nil, nil)
	if doc == nil || doc.Kind != KindDocument {
		t.Fatalf("AppendNode(nil, nil) = %+v, want empty document", doc)
	}
	if len(doc.Children) != 0 {
		t.Fatalf("expected no children, got %d", len(doc.Children))
	}

	doc = AppendNode(nil, para(NewText("hi")))
	if len(doc.Children) != 1 || doc.Children[0].Kind != KindParagraph {
		t.Fatalf("paragraph not placed under fresh root: %+v", doc)
	}
}

func TestAppendNodeDescendsIntoOpenContainers(t *testing.T) {
	// Inline content lands inside the trailing inline container, not at
	// the root.
	doc := NewDocument()
	doc.AppendChild(heading(1, NewText("Title ")))

	strong := &Node{Kind: KindStrong, Children: []*Node{NewText("Bold")}}
	doc = AppendNode(doc, strong)

	want := NewDocument()
	want.AppendChild(heading(1, NewText("Title "), &Node{Kind: KindStrong, Children: []*Node{NewText("Bold")}}))
	diffTree(t, want, doc)
}

func TestAppendNodeBlockIntoTrailingBlockQuote(t *testing.T) {
	doc := NewDocument()
	doc.AppendChild(&Node{Kind: KindBlockQuote, Children: []*Node{para(NewText("a"))}})

	doc = AppendNode(doc, para(NewText("b")))

	bq := doc.Children[0]
	if len(doc.Children) != 1 || bq.Kind != KindBlockQuote {
		t.Fatalf("expected single blockquote at root, got %+v", doc.Children)
	}
	if len(bq.Children) != 2 || bq.Children[1].Kind != KindParagraph {
		t.Fatalf("paragraph did not join the open blockquote: %+v", bq.Children)
	}
}

func TestAppendNodeListItemJoinsOpenList(t *testing.T) {
	doc := NewDocument()
	doc.AppendChild(bulletList(item(para(NewText("one")))))
	list := doc.Children[0]

	doc = AppendNode(doc, item(para(NewText("two"))))

	if len(doc.Children) != 1 {
		t.Fatalf("item spawned a sibling container: %+v", doc.Children)
	}
	if doc.Children[0] != list {
		t.Fatal("list identity changed")
	}
	if len(list.Children) != 2 {
		t.Fatalf("expected 2 items, got %d", len(list.Children))
	}
}

func TestAppendNodeWrapsOrphans(t *testing.T) {
	t.Run("list item", func(t *testing.T) {
		doc := AppendNode(NewDocument(), item(para(NewText("one"))))
		list := doc.Children[0]
		if list.Kind != KindList || list.List.ListType != ListTypeBullet {
			t.Fatalf("expected synthesized bullet list, got %+v", list)
		}
		if len(list.Children) != 1 || list.Children[0].Kind != KindListItem {
			t.Fatalf("item not inside the synthesized list: %+v", list.Children)
		}
	})

	t.Run("table row", func(t *testing.T) {
		doc := AppendNode(NewDocument(), tableRow("a", "b"))
		table := doc.Children[0]
		if table.Kind != KindTable {
			t.Fatalf("expected synthesized table, got %v", table.Kind)
		}
		if table.Table.NumColumns != 2 || table.Table.NumRows != 1 {
			t.Fatalf("table counters = %+v", table.Table)
		}
	})

	t.Run("description term", func(t *testing.T) {
		term := &Node{Kind: KindDescriptionTerm, Children: []*Node{NewText("word")}}
		doc := AppendNode(NewDocument(), term)
		list := doc.Children[0]
		if list.Kind != KindDescriptionList {
			t.Fatalf("expected description list, got %v", list.Kind)
		}
		di := list.Children[0]
		if di.Kind != KindDescriptionItem || di.Children[0] != term {
			t.Fatalf("wrapper chain wrong: %+v", list)
		}
	})
}

func TestAppendNodeSplicesCompatibleContainers(t *testing.T) {
	doc := NewDocument()
	doc.AppendChild(bulletList(item(para(NewText("one")))))
	list := doc.Children[0]

	incoming := bulletList(item(para(NewText("two"))), item(para(NewText("three"))))
	doc = AppendNode(doc, incoming)

	if len(doc.Children) != 1 || doc.Children[0] != list {
		t.Fatalf("compatible list was not spliced: %+v", doc.Children)
	}
	if len(list.Children) != 3 {
		t.Fatalf("expected 3 items after splice, got %d", len(list.Children))
	}
	if len(incoming.Children) != 0 {
		t.Fatal("spliced container kept its children")
	}
}

func TestAppendNodeIncompatibleListNests(t *testing.T) {
	// A list of a different type cannot splice, so it descends and
	// becomes a sublist of the last open item.
	doc := NewDocument()
	doc.AppendChild(bulletList(item(para(NewText("one")))))
	lastItem := doc.Children[0].Children[0]

	ordered := &Node{Kind: KindList, List: ListData{ListType: ListTypeOrdered, Start: 1}}
	ordered.Children = []*Node{{Kind: KindListItem, List: ListData{ListType: ListTypeOrdered}, Children: []*Node{para(NewText("two"))}}}
	doc = AppendNode(doc, ordered)

	if len(doc.Children) != 1 {
		t.Fatalf("expected single root list, got %+v", doc.Children)
	}
	if got := lastItem.LastChild(); got != ordered {
		t.Fatalf("ordered list did not nest under the open item: %+v", got)
	}
}

func TestAppendNodeTableRowExtendsOpenTable(t *testing.T) {
	doc := NewDocument()
	table := &Node{Kind: KindTable, Table: TableData{
		Alignments: []Alignment{AlignNone, AlignNone},
		NumColumns: 2,
		NumRows:    1,
	}}
	hdr := tableRow("a", "b")
	hdr.Header = true
	table.Children = []*Node{hdr}
	doc.AppendChild(table)

	doc = AppendNode(doc, tableRow("1", "2"))

	if len(doc.Children) != 1 {
		t.Fatalf("row spawned a sibling table: %+v", doc.Children)
	}
	if table.Table.NumRows != 2 {
		t.Fatalf("NumRows = %d, want 2", table.Table.NumRows)
	}

	// A wider row grows the column count and pads alignments.
	doc = AppendNode(doc, tableRow("1", "2", "3"))
	if table.Table.NumColumns != 3 || len(table.Table.Alignments) != 3 {
		t.Fatalf("table counters after wide row = %+v", table.Table)
	}
}

func TestAppendNodePermissiveRootFallback(t *testing.T) {
	// An inline with no open inline container, and a foreign node, both
	// land as direct children of the root rather than failing.
	doc := NewDocument()
	doc.AppendChild(&Node{Kind: KindCodeBlock, Literal: "x\n"})

	text := NewText("dangling")
	doc = AppendNode(doc, text)
	if doc.Children[1] != text {
		t.Fatalf("inline fallback missing: %+v", doc.Children)
	}

	nested := NewDocument()
	doc = AppendNode(doc, nested)
	if doc.Children[2] != nested {
		t.Fatalf("foreign node not passed through: %+v", doc.Children)
	}
}

func TestAppendNodes(t *testing.T) {
	doc := AppendNodes(nil, []*Node{
		heading(1, NewText("Title")),
		para(NewText("body")),
	})
	if len(doc.Children) != 2 {
		t.Fatalf("expected 2 children, got %d", len(doc.Children))
	}
}

func TestMerge(t *testing.T) {
	a := NewDocument()
	a.AppendChild(bulletList(item(para(NewText("one")))))

	b := NewDocument()
	b.AppendChild(bulletList(item(para(NewText("two")))))
	b.AppendChild(para(NewText("after")))

	a = Merge(a, b)

	if len(a.Children) != 1 {
		t.Fatalf("expected a single merged list, got %+v", a.Children)
	}
	list := a.Children[0]
	if got := len(list.Children); got != 2 {
		t.Fatalf("lists not merged, %d items", got)
	}
	// The trailing paragraph continues the last open item.
	second := list.Children[1]
	if got := len(second.Children); got != 2 || second.LastChild().Kind != KindParagraph {
		t.Fatalf("paragraph did not join the open item: %+v", second.Children)
	}
	if b.Children != nil {
		t.Fatal("merge must consume the source document")
	}

	if got := Merge(nil, nil); got == nil || got.Kind != KindDocument {
		t.Fatalf("Merge(nil, nil) = %+v", got)
	}
}
