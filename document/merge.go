package document

// This file implements grafting of freshly parsed nodes onto an existing
// document: walk the rightmost path, place each node at the structurally
// deepest position that accepts it, extend compatible trailing containers
// instead of duplicating them, and synthesize required wrapper containers
// for orphaned structural nodes. Nothing here ever fails: anything that
// cannot be placed lands as a direct child of the permissive document root.

// AppendNode grafts n onto doc at the deepest legal position and returns
// doc. A nil doc is replaced by a fresh document root; a nil n is a no-op.
// doc takes ownership of n.
func AppendNode(doc, n *Node) *Node {
	if doc == nil {
		doc = NewDocument()
	}
	if n == nil {
		return doc
	}
	if !graft(doc, n, true) {
		// Permissive root fallback. Covers inlines with no open inline
		// container, orphaned cells, and foreign nodes such as a nested
		// document: they pass through unchanged.
		doc.Children = append(doc.Children, n)
	}
	return doc
}

// AppendNodes grafts each node in order and returns doc.
func AppendNodes(doc *Node, nodes []*Node) *Node {
	for _, n := range nodes {
		doc = AppendNode(doc, n)
	}
	return doc
}

// Merge appends b's children onto a and returns a. b is consumed.
func Merge(a, b *Node) *Node {
	if b == nil {
		return AppendNode(a, nil)
	}
	children := b.Children
	b.Children = nil
	return AppendNodes(a, children)
}

// graft tries to place n in the subtree rooted at cur and reports whether
// it was placed. The walk follows the rightmost path and stops at the first
// node whose content model accepts n; the document root holds back its own
// block acceptance until the descent has failed, so that an open trailing
// container always wins over a new top-level sibling.
func graft(cur, n *Node, root bool) bool {
	last := cur.LastChild()
	if last != nil && spliceCompatible(last, n) {
		splice(last, n)
		return true
	}
	if !root && CanContain(cur.Kind, n.Kind) {
		place(cur, n)
		return true
	}
	if last != nil && canDescend(last, n) && graft(last, n, false) {
		return true
	}
	if root && CanContain(cur.Kind, n.Kind) {
		place(cur, n)
		return true
	}
	// Wrap-then-insert: synthesize the minimal container chain for
	// structural nodes that require a parent they do not have.
	for w := wrap(n); w != nil; w = wrap(w) {
		if CanContain(cur.Kind, w.Kind) {
			place(cur, w)
			return true
		}
	}
	return false
}

// canDescend reports whether the rightmost-path walk may continue into
// last while looking for a home for n. Leaves stop the walk, and an
// inline-only container never admits a non-inline node.
func canDescend(last, n *Node) bool {
	switch last.Kind.Model() {
	case ContainsNone:
		return false
	case ContainsInline:
		return n.Kind.IsInline()
	}
	return true
}

// spliceCompatible reports whether n is a container of the same shape as
// last, so its children can extend last instead of nesting a duplicate
// sibling container.
func spliceCompatible(last, n *Node) bool {
	if last.Kind != n.Kind {
		return false
	}
	switch n.Kind {
	case KindList:
		return last.List.ListType == n.List.ListType
	case KindTable:
		return last.Table.NumColumns == n.Table.NumColumns
	case KindDescriptionList:
		return true
	}
	return false
}

// splice moves n's children into last and drops the emptied n.
func splice(last, n *Node) {
	children := n.Children
	n.Children = nil
	for _, c := range children {
		place(last, c)
	}
}

// place appends child to parent, keeping table counters consistent.
func place(parent, child *Node) {
	parent.Children = append(parent.Children, child)
	if parent.Kind == KindTable && child.Kind == KindTableRow {
		parent.Table.NumRows = len(parent.Children)
		if cols := len(child.Children); cols > parent.Table.NumColumns {
			parent.Table.NumColumns = cols
			for len(parent.Table.Alignments) < cols {
				parent.Table.Alignments = append(parent.Table.Alignments, AlignNone)
			}
		}
	}
}

// wrap returns the minimal parent container for a structural node that
// cannot stand alone, or nil if n needs no wrapper.
func wrap(n *Node) *Node {
	switch n.Kind {
	case KindListItem, KindTaskItem:
		list := &Node{Kind: KindList, List: n.List}
		list.Children = []*Node{n}
		return list
	case KindTableRow:
		cols := len(n.Children)
		table := &Node{Kind: KindTable, Table: TableData{
			Alignments: make([]Alignment, cols),
			NumColumns: cols,
			NumRows:    1,
		}}
		table.Children = []*Node{n}
		return table
	case KindDescriptionTerm, KindDescriptionDetails:
		item := &Node{Kind: KindDescriptionItem}
		item.Children = []*Node{n}
		return item
	case KindDescriptionItem:
		list := &Node{Kind: KindDescriptionList}
		list.Children = []*Node{n}
		return list
	}
	return nil
}
