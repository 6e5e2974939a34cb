package document

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestKindString(t *testing.T) {
	cases := []struct {
		kind Kind
		want string
	}{
		{KindDocument, "document"},
		{KindBlockQuote, "block_quote"},
		{KindCodeBlock, "code_block"},
		{KindDescriptionDetails, "description_details"},
		{KindThematicBreak, "thematic_break"},
		{KindFootnoteReference, "footnote_reference"},
		{Kind(-1), "unknown"},
		{Kind(10000), "unknown"},
	}
	for _, tc := range cases {
		if got := tc.kind.String(); got != tc.want {
			t.Errorf("Kind(%d).String() = %q, want %q", tc.kind, got, tc.want)
		}
	}
}

func TestWalk(t *testing.T) {
	doc := NewDocument()
	doc.AppendChild(heading(1, NewText("Title")))
	doc.AppendChild(para(NewText("a"), &Node{Kind: KindStrong, Children: []*Node{NewText("b")}}))

	var kinds []Kind
	Walk(doc, func(n *Node) WalkStatus {
		kinds = append(kinds, n.Kind)
		return WalkContinue
	})
	want := []Kind{KindDocument, KindHeading, KindText, KindParagraph, KindText, KindStrong, KindText}
	if len(kinds) != len(want) {
		t.Fatalf("visited %d nodes, want %d: %v", len(kinds), len(want), kinds)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Fatalf("visit order %v, want %v", kinds, want)
		}
	}

	// SkipChildren prunes the subtree, Stop halts the walk.
	var pruned []Kind
	Walk(doc, func(n *Node) WalkStatus {
		pruned = append(pruned, n.Kind)
		if n.Kind == KindHeading {
			return WalkSkipChildren
		}
		return WalkContinue
	})
	wantPruned := []Kind{KindDocument, KindHeading, KindParagraph, KindText, KindStrong, KindText}
	if len(pruned) != len(wantPruned) {
		t.Fatalf("pruned walk visited %v, want %v", pruned, wantPruned)
	}

	count := 0
	Walk(doc, func(n *Node) WalkStatus {
		count++
		return WalkStop
	})
	if count != 1 {
		t.Errorf("Stop visited %d nodes, want 1", count)
	}
}

func TestNodeText(t *testing.T) {
	p := para(
		NewText("plain "),
		&Node{Kind: KindStrong, Children: []*Node{NewText("bold")}},
		&Node{Kind: KindCode, Literal: " code"},
	)
	if got := p.Text(); got != "plain bold code" {
		t.Errorf("Text() = %q", got)
	}
}

func TestFrontMatterDecode(t *testing.T) {
	doc := NewDocument()
	doc.AppendChild(&Node{Kind: KindFrontMatter, Literal: "---\ntitle: Hello\ndraft: true\n---\n"})
	doc.AppendChild(para(NewText("body")))

	if doc.FrontMatter() == nil {
		t.Fatal("FrontMatter() = nil")
	}

	var meta struct {
		Title string `yaml:"title"`
		Draft bool   `yaml:"draft"`
	}
	if err := doc.DecodeFrontMatter(&meta); err != nil {
		t.Fatalf("DecodeFrontMatter: %v", err)
	}
	if meta.Title != "Hello" || !meta.Draft {
		t.Errorf("decoded %+v", meta)
	}

	plain := NewDocument()
	plain.AppendChild(para(NewText("no meta")))
	if err := plain.DecodeFrontMatter(&meta); !errors.Is(err, ErrNoFrontMatter) {
		t.Errorf("DecodeFrontMatter without front matter: %v", err)
	}
}

func TestMarshalJSON(t *testing.T) {
	doc := NewDocument()
	doc.AppendChild(heading(2, NewText("Hi")))
	list := bulletList(item(para(NewText("x"))))
	doc.AppendChild(list)

	raw, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	s := string(raw)
	for _, frag := range []string{
		`"kind":"document"`,
		`"kind":"heading"`,
		`"level":2`,
		`"kind":"list"`,
		`"list_type":"bullet"`,
		`"bullet_char":"-"`,
		`"literal":"Hi"`,
	} {
		if !strings.Contains(s, frag) {
			t.Errorf("marshalled JSON missing %s:\n%s", frag, s)
		}
	}
}
