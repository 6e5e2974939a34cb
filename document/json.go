package document

import "encoding/json"

// MarshalJSON encodes the node as {"kind": ..., "attrs": {...},
// "children": [...]}, with attribute names matching the wire names of the
// underlying engine (level, list_type, info, num_columns, ...).
func (n *Node) MarshalJSON() ([]byte, error) {
	out := struct {
		Kind     string         `json:"kind"`
		Attrs    map[string]any `json:"attrs,omitempty"`
		Children []*Node        `json:"children,omitempty"`
	}{
		Kind:     n.Kind.String(),
		Attrs:    n.attrs(),
		Children: n.Children,
	}
	return json.Marshal(out)
}

func (n *Node) attrs() map[string]any {
	a := map[string]any{}
	if n.Literal != "" {
		a["literal"] = n.Literal
	}
	switch n.Kind {
	case KindHeading:
		a["level"] = n.Heading.Level
		a["setext"] = n.Heading.Setext
	case KindList:
		a["list_type"] = listTypeName(n.List.ListType)
		a["tight"] = n.List.Tight
		if n.List.ListType == ListTypeBullet {
			a["bullet_char"] = string(n.List.BulletChar)
		} else {
			a["start"] = n.List.Start
			a["delimiter"] = delimName(n.List.Delimiter)
		}
	case KindListItem:
		a["list_type"] = listTypeName(n.List.ListType)
	case KindTaskItem:
		a["checked"] = n.Checked
	case KindCodeBlock:
		a["fenced"] = n.Code.Fenced
		if n.Code.Fenced {
			a["fence_char"] = string(n.Code.FenceChar)
			a["fence_length"] = n.Code.FenceLength
			a["info"] = n.Code.Info
		}
	case KindTable:
		a["num_columns"] = n.Table.NumColumns
		a["num_rows"] = n.Table.NumRows
		aligns := make([]string, len(n.Table.Alignments))
		for i, al := range n.Table.Alignments {
			aligns[i] = alignName(al)
		}
		a["alignments"] = aligns
	case KindTableRow:
		a["header"] = n.Header
	case KindLink, KindImage, KindWikiLink:
		a["url"] = n.Link.Destination
		if n.Link.Title != "" {
			a["title"] = n.Link.Title
		}
	case KindCode:
		a["num_backticks"] = n.NumBackticks
	case KindMath:
		a["dollar_math"] = n.Math.DollarMath
		a["display_math"] = n.Math.DisplayMath
	case KindShortCode:
		a["code"] = n.Shortcode
	case KindFootnoteDefinition, KindFootnoteReference:
		a["name"] = n.Footnote.Name
	}
	if len(a) == 0 {
		return nil
	}
	return a
}

func listTypeName(t ListType) string {
	if t == ListTypeOrdered {
		return "ordered"
	}
	return "bullet"
}

func delimName(d ListDelim) string {
	if d == ListDelimParen {
		return "paren"
	}
	return "period"
}

func alignName(a Alignment) string {
	switch a {
	case AlignLeft:
		return "left"
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	}
	return "none"
}
