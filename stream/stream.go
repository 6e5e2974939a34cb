// Package stream turns a sequence of arbitrary, possibly mid-token
// markdown chunks into a continuously updated document tree. Each text
// chunk is appended to the raw buffer, the buffer is completed by the
// fragment package so the parser never sees a dangling construct, and the
// fresh parse is reconciled against the committed nodes so that stable
// prefix content keeps its identity and only the trailing, still-growing
// nodes are replaced.
package stream

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/leandrocp/mdstream/document"
	"github.com/leandrocp/mdstream/engine"
	"github.com/leandrocp/mdstream/fragment"
)

// ErrNilNode is returned when a nil node is handed to PutNodes.
var ErrNilNode = errors.New("stream: nil node")

// Stream is one ingestion session. It is owned by a single logical
// caller; concurrent ingestion must be serialized by the caller.
type Stream struct {
	eng *engine.Engine

	// committed nodes from before the current text epoch. Grafting a
	// structured node closes the epoch: the grafted tree can no longer
	// be re-derived from raw text alone.
	prefix []*document.Node

	// raw accumulated text of the current epoch, kept verbatim,
	// including exact inter-chunk whitespace.
	text strings.Builder

	// parsed is the reconciled node list derived from text.
	parsed []*document.Node
}

// Option configures a Stream.
type Option func(*Stream)

// WithEngine supplies a shared engine instance.
func WithEngine(e *engine.Engine) Option {
	return func(s *Stream) { s.eng = e }
}

// WithEngineOptions builds a dedicated engine with the given options.
func WithEngineOptions(opts engine.Options) Option {
	return func(s *Stream) { s.eng = engine.New(opts) }
}

// New creates an empty session. Without options it parses with the full
// default extension set.
func New(opts ...Option) *Stream {
	s := &Stream{}
	for _, opt := range opts {
		opt(s)
	}
	if s.eng == nil {
		s.eng = engine.New(engine.DefaultOptions())
	}
	return s
}

// Put ingests one raw text chunk. The chunk may end (or begin) in the
// middle of any markdown construct. A parser failure leaves the committed
// state untouched; the caller may retry.
func (s *Stream) Put(chunk string) error {
	s.text.WriteString(chunk)

	completed := fragment.Complete(s.text.String())
	doc, err := s.eng.Parse(completed)
	if err != nil {
		return fmt.Errorf("stream: %w", err)
	}
	s.parsed = reconcile(s.parsed, doc.Children)
	return nil
}

// Write implements io.Writer over Put, so a token source can be piped in
// directly.
func (s *Stream) Write(p []byte) (int, error) {
	if err := s.Put(string(p)); err != nil {
		return 0, err
	}
	return len(p), nil
}

// PutNodes grafts already-structured nodes directly, bypassing completion
// and parsing. The session takes ownership of the nodes.
func (s *Stream) PutNodes(nodes ...*document.Node) error {
	for _, n := range nodes {
		if n == nil {
			return ErrNilNode
		}
	}

	doc := document.NewDocument()
	doc.Children = append(append([]*document.Node{}, s.prefix...), s.parsed...)
	doc = document.AppendNodes(doc, nodes)

	// The grafted content may have merged into trailing text-derived
	// nodes, so the text epoch is sealed here.
	s.prefix = doc.Children
	s.parsed = nil
	s.text.Reset()
	return nil
}

// Document materializes the current committed state. The returned tree
// shares nodes with the session; it reflects this point in time and must
// not be mutated while the session is still ingesting.
func (s *Stream) Document() *document.Node {
	doc := document.NewDocument()
	doc.Children = make([]*document.Node, 0, len(s.prefix)+len(s.parsed))
	doc.Children = append(doc.Children, s.prefix...)
	doc.Children = append(doc.Children, s.parsed...)
	return doc
}

// reconcile keeps the longest prefix of committed nodes that are
// structurally identical to the fresh parse and replaces the changed tail
// wholesale. Untouched nodes keep their identity, so earlier siblings
// never churn while the trailing node grows.
func reconcile(old, fresh []*document.Node) []*document.Node {
	n := 0
	for n < len(old) && n < len(fresh) && reflect.DeepEqual(old[n], fresh[n]) {
		n++
	}
	return append(old[:n:n], fresh[n:]...)
}
