package document

import (
	"errors"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrNoFrontMatter is returned when front matter is requested from a node
// that does not carry any.
var ErrNoFrontMatter = errors.New("document: no front matter")

// FrontMatter returns the document's leading FrontMatter node, or nil.
func (n *Node) FrontMatter() *Node {
	if n.Kind != KindDocument || len(n.Children) == 0 {
		return nil
	}
	if first := n.Children[0]; first.Kind == KindFrontMatter {
		return first
	}
	return nil
}

// DecodeFrontMatter unmarshals the document's YAML front matter into out.
// The node literal keeps the delimiter lines verbatim; they are stripped
// before decoding.
func (n *Node) DecodeFrontMatter(out any) error {
	fm := n
	if n.Kind == KindDocument {
		fm = n.FrontMatter()
	}
	if fm == nil || fm.Kind != KindFrontMatter {
		return ErrNoFrontMatter
	}
	return yaml.Unmarshal([]byte(frontMatterBody(fm.Literal)), out)
}

// frontMatterBody strips the leading and trailing --- delimiter lines.
func frontMatterBody(raw string) string {
	lines := strings.Split(strings.TrimRight(raw, "\n"), "\n")
	if len(lines) > 0 && strings.TrimSpace(lines[0]) == "---" {
		lines = lines[1:]
	}
	if len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "---" {
		lines = lines[:len(lines)-1]
	}
	return strings.Join(lines, "\n")
}
