package radix

// DefaultFanout is the edge-container switch threshold. A node whose
// sparse edge list grows to this size converts it to a dense map keyed by
// first byte; a dense map that shrinks to DefaultFanout-2 converts back.
// The two-step gap keeps a node that oscillates around the threshold from
// converting on every mutation.
const DefaultFanout = 8

// edge is a labeled connection to a child node. The label is never empty
// and is immutable once attached; coalescing replaces the whole edge with
// a freshly concatenated label.
type edge struct {
	label string
	child *radixNode
}

// radixNode is a node of the compressed trie. Its outgoing edges live in
// one of three shapes:
//
//   - empty:  sparse and dense both nil (leaf)
//   - sparse: a short slice scanned linearly
//   - dense:  a map keyed by the first byte of each label
//
// At most one of sparse/dense is non-nil. At any node no two outgoing
// edges share a first byte, so the first byte of the remaining query
// selects at most one candidate edge.
type radixNode struct {
	sparse   []edge
	dense    map[byte]edge
	terminal bool
}

// get returns the edge whose label starts with ch.
// O(1) in dense shape, O(degree) in sparse shape.
func (n *radixNode) get(ch byte) (edge, bool) {
	if n.dense != nil {
		e, ok := n.dense[ch]
		return e, ok
	}
	for _, e := range n.sparse {
		if e.label[0] == ch {
			return e, true
		}
	}
	return edge{}, false
}

// set inserts an edge, replacing any existing edge with the same first
// byte. A sparse list that reaches fanout is promoted to dense.
// The label must be non-empty.
func (n *radixNode) set(label string, child *radixNode, fanout int) {
	ch := label[0]
	if n.dense != nil {
		n.dense[ch] = edge{label, child}
		return
	}
	for i, e := range n.sparse {
		if e.label[0] == ch {
			n.sparse[i] = edge{label, child}
			return
		}
	}
	n.sparse = append(n.sparse, edge{label, child})
	if len(n.sparse) >= fanout {
		dense := make(map[byte]edge, len(n.sparse))
		for _, e := range n.sparse {
			dense[e.label[0]] = e
		}
		n.dense = dense
		n.sparse = nil
	}
}

// del removes the edge whose label starts with ch and reports whether an
// edge was removed. A dense map left with fanout-2 or fewer edges is
// demoted to sparse.
func (n *radixNode) del(ch byte, fanout int) bool {
	if n.dense != nil {
		if _, ok := n.dense[ch]; !ok {
			return false
		}
		delete(n.dense, ch)
		if len(n.dense) <= fanout-2 {
			sparse := make([]edge, 0, len(n.dense))
			for _, e := range n.dense {
				sparse = append(sparse, e)
			}
			n.sparse = sparse
			n.dense = nil
		}
		return true
	}
	for i, e := range n.sparse {
		if e.label[0] == ch {
			n.sparse = append(n.sparse[:i], n.sparse[i+1:]...)
			if len(n.sparse) == 0 {
				n.sparse = nil
			}
			return true
		}
	}
	return false
}

// iterEdges calls fn for every outgoing edge until fn returns false.
// Order is the container's internal order; callers must not assume it is
// lexicographic.
func (n *radixNode) iterEdges(fn func(edge) bool) {
	if n.dense != nil {
		for _, e := range n.dense {
			if !fn(e) {
				return
			}
		}
		return
	}
	for _, e := range n.sparse {
		if !fn(e) {
			return
		}
	}
}

// outEdges returns the outgoing edges as a slice. In sparse shape the
// internal slice is returned directly; callers only read it.
func (n *radixNode) outEdges() []edge {
	if n.dense != nil {
		out := make([]edge, 0, len(n.dense))
		for _, e := range n.dense {
			out = append(out, e)
		}
		return out
	}
	return n.sparse
}

// degree returns the number of outgoing edges.
func (n *radixNode) degree() int {
	if n.dense != nil {
		return len(n.dense)
	}
	return len(n.sparse)
}

// only returns the sole outgoing edge if the node has exactly one.
func (n *radixNode) only() (edge, bool) {
	if n.dense != nil {
		if len(n.dense) == 1 {
			for _, e := range n.dense {
				return e, true
			}
		}
		return edge{}, false
	}
	if len(n.sparse) == 1 {
		return n.sparse[0], true
	}
	return edge{}, false
}
