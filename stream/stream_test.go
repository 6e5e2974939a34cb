package stream

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/leandrocp/mdstream/document"
	"github.com/leandrocp/mdstream/engine"
)

func put(t *testing.T, s *Stream, chunks ...string) {
	t.Helper()
	for _, c := range chunks {
		if err := s.Put(c); err != nil {
			t.Fatalf("Put(%q): %v", c, err)
		}
	}
}

func TestStreamHeadingAcrossChunks(t *testing.T) {
	s := New()
	put(t, s, "#", " Title", " **Bold")

	doc := s.Document()
	if len(doc.Children) != 1 {
		t.Fatalf("expected a single heading, got %+v", doc.Children)
	}
	h := doc.Children[0]
	if h.Kind != document.KindHeading || h.Heading.Level != 1 {
		t.Fatalf("heading = %+v", h)
	}
	if len(h.Children) != 2 {
		t.Fatalf("heading children = %+v", h.Children)
	}
	if txt := h.Children[0]; txt.Kind != document.KindText || txt.Literal != "Title " {
		t.Errorf("first child = %+v", txt)
	}
	strong := h.Children[1]
	if strong.Kind != document.KindStrong || strong.Text() != "Bold" {
		t.Errorf("second child = %+v", strong)
	}
}

func TestStreamMidTokenSplit(t *testing.T) {
	s := New()
	put(t, s, "**bo")

	// The half-received span already parses as an emphasized span.
	doc := s.Document()
	if got := doc.Children[0].Text(); got != "bo" {
		t.Fatalf("intermediate text = %q", got)
	}
	if st := doc.Children[0].Children[0]; st.Kind != document.KindStrong {
		t.Fatalf("intermediate span = %+v", st)
	}

	put(t, s, "ld** done")
	doc = s.Document()
	if got := doc.Children[0].Text(); got != "bold done" {
		t.Errorf("final text = %q", got)
	}
}

func TestStreamStablePrefixKeepsIdentity(t *testing.T) {
	s := New()
	put(t, s, "first paragraph\n\n")
	p1 := s.Document().Children[0]

	put(t, s, "second ", "paragraph ", "still growing")

	doc := s.Document()
	if len(doc.Children) != 2 {
		t.Fatalf("expected 2 paragraphs, got %+v", doc.Children)
	}
	if doc.Children[0] != p1 {
		t.Error("settled paragraph was reallocated")
	}
}

func TestStreamMatchesOneShotParse(t *testing.T) {
	const input = "# Hi\n\nsome **bold** text\n\n- a\n- b\n\n```go\nx := 1\n```\n"

	s := New()
	for i := 0; i < len(input); i++ {
		put(t, s, input[i:i+1])
	}

	want, err := engine.New(engine.DefaultOptions()).Parse(input)
	if err != nil {
		t.Fatalf("one-shot parse: %v", err)
	}
	if d := cmp.Diff(want, s.Document()); d != "" {
		t.Errorf("streamed tree differs from one-shot parse (-want +got):\n%s", d)
	}
}

func TestStreamWrite(t *testing.T) {
	s := New()
	n, err := s.Write([]byte("# Hi"))
	if err != nil || n != 4 {
		t.Fatalf("Write = (%d, %v)", n, err)
	}
	if h := s.Document().Children[0]; h.Kind != document.KindHeading {
		t.Errorf("document = %+v", s.Document().Children)
	}
}

func TestStreamPutNodes(t *testing.T) {
	s := New()
	put(t, s, "- one\n")

	item := &document.Node{Kind: document.KindListItem, List: document.ListData{ListType: document.ListTypeBullet, BulletChar: '-'}}
	item.Children = []*document.Node{{Kind: document.KindParagraph, Children: []*document.Node{document.NewText("two")}}}
	if err := s.PutNodes(item); err != nil {
		t.Fatalf("PutNodes: %v", err)
	}

	doc := s.Document()
	if len(doc.Children) != 1 {
		t.Fatalf("expected the item to join the open list, got %+v", doc.Children)
	}
	list := doc.Children[0]
	if list.Kind != document.KindList || len(list.Children) != 2 {
		t.Fatalf("list = %+v", list)
	}

	// Grafting seals the text epoch: later text starts a fresh block
	// instead of reparsing into the grafted region.
	put(t, s, "after\n")
	doc = s.Document()
	if len(doc.Children) != 2 || doc.Children[1].Kind != document.KindParagraph {
		t.Fatalf("post-graft document = %+v", doc.Children)
	}
	if doc.Children[0] != list {
		t.Error("grafted list lost its identity")
	}
}

func TestStreamPutNodesNil(t *testing.T) {
	s := New()
	put(t, s, "hello")
	before := s.Document()

	if err := s.PutNodes(nil); err != ErrNilNode {
		t.Fatalf("PutNodes(nil) = %v, want ErrNilNode", err)
	}
	if d := cmp.Diff(before, s.Document()); d != "" {
		t.Errorf("failed graft changed committed state:\n%s", d)
	}
}

func TestStreamEngineOptions(t *testing.T) {
	s := New(WithEngineOptions(engine.Options{}))
	put(t, s, "~~x~~\n")

	var found bool
	document.Walk(s.Document(), func(n *document.Node) document.WalkStatus {
		if n.Kind == document.KindStrikethrough {
			found = true
			return document.WalkStop
		}
		return document.WalkContinue
	})
	if found {
		t.Error("strikethrough parsed despite empty options")
	}
	if got := s.Document().Children[0].Text(); !strings.Contains(got, "~~x~~") {
		t.Errorf("literal tildes lost: %q", got)
	}
}

func TestStreamEmptyChunks(t *testing.T) {
	s := New()
	put(t, s, "", "   ", "")
	if got := len(s.Document().Children); got != 0 {
		t.Errorf("whitespace-only stream produced %d nodes", got)
	}
}
