/*
Package radix provides a compressed trie (radix / Patricia trie) for
string keys.

Unlike the character-per-edge trie in the sibling trie package, edges here
carry whole label strings, so chains of single-child nodes collapse into
one edge. This keeps the tree shallow for key sets that share long
prefixes (URL paths, lexical sets, autocompletion corpora) and makes
prefix queries proportional to the prefix length rather than the key
population.

Features:
  - Insert / Search / Remove in O(L) for a key of L bytes, with edge
    splitting on insert and multi-level coalescing on remove.
  - Batch Insert/Remove: inputs are normalized, sorted and deduplicated
    once per batch.
  - Prefix Location: Locate resolves a prefix to an opaque cursor, even
    when the prefix ends in the middle of an edge label.
  - Streaming Enumeration: EnumeratePrefix lazily yields every stored key
    under a prefix without materializing the result set.
  - Adaptive Fanout: each node stores its edges in a small list and
    switches to a first-byte map once its fanout crosses a threshold.
  - Normalization: all keys pass through the trie's Normalizer
    (default: Unicode case folding).
  - Thread Safety: operations are guarded by sync.RWMutex.

Example usage:

	t := radix.New()
	t.BatchInsert([]string{"app", "apple", "apply"}, true, false)
	fmt.Println(t.Search("APPLE")) // true
	for w := range t.EnumeratePrefix("app") {
		fmt.Println(w)
	}

Keys are treated as their UTF-8 byte sequences; edge labels are byte
substrings of inserted keys and candidate edges are selected by first
byte.

Enumeration order follows each node's internal edge order, which is not
lexicographic.
*/
package radix

import (
	"iter"
	"sync"

	"github.com/Zubayear/jukai/prep"
	"github.com/Zubayear/jukai/stack"
)

// RadixTrie is a compressed prefix tree over string keys.
//
// Fields:
//   - root: never replaced for the life of the trie; the empty key, when
//     stored, is represented solely by the root's terminal flag
//   - size: number of stored keys
//   - fanout: edge-container promotion threshold
//   - normalize: applied once to every incoming key or prefix
//   - mutex: read-write lock guarding all operations
type RadixTrie struct {
	root      *radixNode
	size      int
	fanout    int
	normalize prep.Normalizer
	mutex     sync.RWMutex
}

// Option configures a RadixTrie at construction time.
type Option func(*RadixTrie)

// WithNormalizer sets the key normalizer. The function must be pure and
// idempotent. Pass prep.Identity to store keys verbatim.
func WithNormalizer(fn prep.Normalizer) Option {
	return func(t *RadixTrie) {
		t.normalize = fn
	}
}

// WithFanout sets the edge-container promotion threshold. Values below 3
// are ignored; demotion happens two below the promotion point and needs
// room to breathe.
func WithFanout(n int) Option {
	return func(t *RadixTrie) {
		if n >= 3 {
			t.fanout = n
		}
	}
}

// New creates an empty RadixTrie. With no options, keys are Unicode
// case-folded and the fanout threshold is DefaultFanout.
//
// Example:
//
//	t := radix.New(radix.WithNormalizer(prep.Identity))
//	t.Insert("Göteborg")
func New(opts ...Option) *RadixTrie {
	t := &RadixTrie{
		root:      &radixNode{},
		fanout:    DefaultFanout,
		normalize: prep.Fold,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Size returns the number of stored keys.
//
// Time Complexity: O(1)
func (t *RadixTrie) Size() int {
	t.mutex.RLock()
	defer t.mutex.RUnlock()
	return t.size
}

// IsEmpty returns true if the trie stores no keys.
//
// Time Complexity: O(1)
func (t *RadixTrie) IsEmpty() bool {
	t.mutex.RLock()
	defer t.mutex.RUnlock()
	return t.size == 0
}

// lcp returns the length of the longest common prefix of a and b.
func lcp(a, b string) int {
	n := min(len(a), len(b))
	i := 0
	for i < n && a[i] == b[i] {
		i++
	}
	return i
}

// Insert adds a word to the trie. Inserting a word that is already
// present is a no-op.
//
// Algorithm Steps:
//   - Normalize the word once.
//   - Select the candidate edge by the first remaining byte. If none
//     exists, attach the whole remainder as a new terminal leaf.
//   - If the edge label is fully matched, descend and continue with the
//     suffix.
//   - On a partial match, split the edge: an intermediate node takes the
//     shared prefix, the old child is reattached under the unmatched tail
//     of the label, and the unmatched tail of the word (if any) becomes a
//     new terminal leaf. The intermediate node is terminal when the word
//     ends at the split.
//   - If the word is consumed on a node boundary, mark that node terminal.
//
// Time Complexity: O(L), where L = len(word)
func (t *RadixTrie) Insert(word string) {
	word = t.normalize(word)
	t.mutex.Lock()
	defer t.mutex.Unlock()
	t.insert(word)
}

// insert adds an already-normalized word. Callers hold the write lock.
func (t *RadixTrie) insert(word string) {
	node := t.root
	for word != "" {
		e, ok := node.get(word[0])
		if !ok {
			node.set(word, &radixNode{terminal: true}, t.fanout)
			t.size++
			return
		}
		i := lcp(word, e.label)
		if i == len(e.label) {
			word = word[i:]
			node = e.child
			continue
		}
		// Split: the word diverges inside the edge label. i > 0 always,
		// since the edge was selected by word[0].
		mid := &radixNode{}
		node.set(e.label[:i], mid, t.fanout)
		mid.set(e.label[i:], e.child, t.fanout)
		if i == len(word) {
			mid.terminal = true
		} else {
			mid.set(word[i:], &radixNode{terminal: true}, t.fanout)
		}
		t.size++
		return
	}
	if !node.terminal {
		node.terminal = true
		t.size++
	}
}

// BatchInsert adds many words after a single preparation pass
// (normalize, and optionally sort and deduplicate; see prep.Prepare).
// Set presorted only if the input is sorted under this trie's
// normalizer.
//
// Time Complexity: O(n log n) preparation + O(total bytes inserted)
func (t *RadixTrie) BatchInsert(words []string, dedup, presorted bool) {
	batch := prep.Prepare(words, t.normalize, dedup, presorted)
	t.mutex.Lock()
	defer t.mutex.Unlock()
	for _, w := range batch {
		t.insert(w)
	}
}

// pathFrame records one traversed edge during a deletion walk:
// the parent node and the label of the edge that was descended.
type pathFrame struct {
	parent *radixNode
	label  string
}

// Remove deletes a word from the trie. It returns false, without
// mutating anything, when the word is not present; absence is an
// outcome, not an error.
//
// Algorithm Steps:
//   - Walk down matching whole edge labels, recording each traversed
//     edge. A divergence mid-edge means the word is absent.
//   - Unmark the terminal node, then prune upward: edges to childless
//     non-terminal nodes are removed, and a non-terminal node left with
//     exactly one edge is coalesced with its parent edge by
//     concatenating the two labels and re-parenting the grandchild.
//     Coalescing continues upward while the merge leaves another unary
//     non-terminal node behind.
//   - Removing the empty key clears the root's terminal flag; the root
//     itself is never pruned or coalesced.
//
// Time Complexity: O(L + P), where P = nodes pruned or merged
func (t *RadixTrie) Remove(word string) bool {
	word = t.normalize(word)
	t.mutex.Lock()
	defer t.mutex.Unlock()
	return t.remove(word)
}

// remove deletes an already-normalized word. Callers hold the write lock.
func (t *RadixTrie) remove(word string) bool {
	if word == "" {
		if t.root.terminal {
			t.root.terminal = false
			t.size--
			return true
		}
		return false
	}

	node := t.root
	rem := word
	frames := stack.NewStack[pathFrame]()
	for rem != "" {
		e, ok := node.get(rem[0])
		if !ok {
			return false
		}
		i := lcp(rem, e.label)
		if i < len(e.label) {
			return false
		}
		frames.Push(pathFrame{node, e.label})
		node = e.child
		rem = rem[i:]
	}
	if !node.terminal {
		return false
	}
	node.terminal = false
	t.size--

	cur := node
	for !frames.IsEmpty() {
		f, _ := frames.Pop()
		if cur.terminal {
			break
		}
		switch cur.degree() {
		case 1:
			e, _ := cur.only()
			f.parent.set(f.label+e.label, e.child, t.fanout)
			cur = f.parent
			for !frames.IsEmpty() && !cur.terminal && cur.degree() == 1 {
				g, _ := frames.Pop()
				e2, _ := cur.only()
				g.parent.set(g.label+e2.label, e2.child, t.fanout)
				cur = g.parent
			}
			return true
		case 0:
			f.parent.del(f.label[0], t.fanout)
			cur = f.parent
		default:
			return true
		}
	}
	return true
}

// BatchRemove deletes many words after a single preparation pass and
// returns how many were deleted and how many were absent (including
// structural misses inside an edge label).
//
// Every key re-walks from the root: coalescing re-parents nodes and
// rewrites labels, so a traversal stack cannot be shared between
// adjacent keys the way the standard trie shares one.
//
// Time Complexity: O(n log n) preparation + O(total bytes walked)
func (t *RadixTrie) BatchRemove(words []string, dedup, presorted bool) (deleted, missing int) {
	batch := prep.Prepare(words, t.normalize, dedup, presorted)
	t.mutex.Lock()
	defer t.mutex.Unlock()
	for _, w := range batch {
		if t.remove(w) {
			deleted++
		} else {
			missing++
		}
	}
	return deleted, missing
}

// Location is an opaque cursor produced by Locate. It identifies a
// position in the tree, possibly in the interior of an edge label.
type Location struct {
	node    *radixNode
	pending string
}

// Pending returns the unconsumed remainder of the edge label when the
// located prefix ended mid-edge, and "" when it ended on a node
// boundary.
func (l Location) Pending() string {
	return l.pending
}

// Terminal reports whether the location is exactly a stored key: a node
// boundary whose node is terminal.
func (l Location) Terminal() bool {
	return l.pending == "" && l.node != nil && l.node.terminal
}

// Locate resolves a prefix to a Location. The second return value is
// false when no stored key starts with the prefix.
//
// Algorithm Steps:
//   - Normalize the prefix; an empty prefix resolves to the root.
//   - Select each candidate edge by first byte and take the longest
//     common prefix with its label.
//   - Consuming the whole label descends; consuming the whole prefix
//     partway through a label stops mid-edge, with the label remainder
//     reported by Pending; anything else is a miss.
//
// Time Complexity: O(L), where L = len(prefix)
func (t *RadixTrie) Locate(prefix string) (Location, bool) {
	prefix = t.normalize(prefix)
	t.mutex.RLock()
	defer t.mutex.RUnlock()
	node, pending, ok := t.locate(prefix)
	if !ok {
		return Location{}, false
	}
	return Location{node, pending}, true
}

// locate walks an already-normalized prefix. Callers hold the lock.
func (t *RadixTrie) locate(prefix string) (*radixNode, string, bool) {
	node := t.root
	for prefix != "" {
		e, ok := node.get(prefix[0])
		if !ok {
			return nil, "", false
		}
		i := lcp(prefix, e.label)
		if i == len(e.label) {
			prefix = prefix[i:]
			node = e.child
			continue
		}
		if i == len(prefix) {
			return e.child, e.label[i:], true
		}
		return nil, "", false
	}
	return node, "", true
}

// Search checks if a complete word is stored in the trie.
//
// Time Complexity: O(L)
func (t *RadixTrie) Search(word string) bool {
	word = t.normalize(word)
	t.mutex.RLock()
	defer t.mutex.RUnlock()
	node, pending, ok := t.locate(word)
	return ok && pending == "" && node.terminal
}

// StartsWith checks if any stored word starts with the given prefix.
//
// Time Complexity: O(K), where K = len(prefix)
func (t *RadixTrie) StartsWith(prefix string) bool {
	prefix = t.normalize(prefix)
	t.mutex.RLock()
	defer t.mutex.RUnlock()
	_, _, ok := t.locate(prefix)
	return ok
}

// dfsFrame is one level of the iterative enumeration: a snapshot of a
// node's edges, a cursor into it, and the shared-buffer length to
// restore on backtrack.
type dfsFrame struct {
	edges []edge
	next  int
	depth int
}

// EnumeratePrefix returns a lazy sequence of every stored word that
// starts with the prefix. Order follows each node's internal edge order.
//
// The sequence holds the trie's read lock until the consumer stops, so
// the trie must not be mutated from inside the consuming loop.
//
// Time Complexity: O(K + Y·Ā) overall, where K = len(prefix), Y = words
// yielded and Ā = average suffix length under the prefix
func (t *RadixTrie) EnumeratePrefix(prefix string) iter.Seq[string] {
	return t.enumerate(prefix, -1)
}

// EnumeratePrefixN is EnumeratePrefix capped at k results. A
// non-positive k yields nothing.
func (t *RadixTrie) EnumeratePrefixN(prefix string, k int) iter.Seq[string] {
	if k <= 0 {
		return func(yield func(string) bool) {}
	}
	return t.enumerate(prefix, k)
}

// enumerate implements the streaming DFS. k < 0 means unlimited.
//
// Algorithm Steps:
//   - Locate the normalized prefix; a miss yields nothing.
//   - Seed a shared byte buffer with the prefix, plus the pending edge
//     remainder when the prefix ended mid-edge, so the first yielded
//     word is the caller-visible prefix extended to the edge's far node.
//   - Yield the buffer when the seeded position is a stored word.
//   - Walk down with an explicit frame stack: each step truncates the
//     buffer to the frame's depth, appends the next edge label, yields
//     terminal children, and pushes a frame for the child.
func (t *RadixTrie) enumerate(prefix string, k int) iter.Seq[string] {
	return func(yield func(string) bool) {
		p := t.normalize(prefix)
		t.mutex.RLock()
		defer t.mutex.RUnlock()

		node, pending, ok := t.locate(p)
		if !ok {
			return
		}

		buf := append([]byte(nil), p...)
		yielded := 0
		if pending != "" || node.terminal {
			buf = append(buf, pending...)
			if node.terminal {
				if !yield(string(buf)) {
					return
				}
				yielded++
				if k > 0 && yielded >= k {
					return
				}
			}
		}

		frames := stack.NewStack[*dfsFrame]()
		frames.Push(&dfsFrame{node.outEdges(), 0, len(buf)})
		for !frames.IsEmpty() {
			f, _ := frames.Peek()
			buf = buf[:f.depth]
			if f.next >= len(f.edges) {
				frames.Pop()
				continue
			}
			e := f.edges[f.next]
			f.next++
			buf = append(buf, e.label...)
			if e.child.terminal {
				if !yield(string(buf)) {
					return
				}
				yielded++
				if k > 0 && yielded >= k {
					return
				}
			}
			frames.Push(&dfsFrame{e.child.outEdges(), 0, len(buf)})
		}
	}
}

// GetWordsWithPrefix retrieves all words that start with the given
// prefix as a slice. It is EnumeratePrefix, materialized.
//
// Time Complexity: O(K + M·Ā), M = number of matches
func (t *RadixTrie) GetWordsWithPrefix(prefix string) []string {
	var result []string
	for w := range t.EnumeratePrefix(prefix) {
		result = append(result, w)
	}
	return result
}

// CountNodes returns the number of nodes reachable from the root,
// root included.
//
// Time Complexity: O(#nodes), O(depth) auxiliary space
func (t *RadixTrie) CountNodes() int {
	t.mutex.RLock()
	defer t.mutex.RUnlock()
	total, _, _ := t.scan()
	return total
}

// AvgBranchFactor returns the average out-degree over internal
// (non-leaf) nodes, or 0 for an empty trie.
//
// Time Complexity: O(#nodes), O(depth) auxiliary space
func (t *RadixTrie) AvgBranchFactor() float64 {
	t.mutex.RLock()
	defer t.mutex.RUnlock()
	_, internal, totalDeg := t.scan()
	if internal == 0 {
		return 0
	}
	return float64(totalDeg) / float64(internal)
}

// scan walks every node iteratively. Callers hold the lock.
func (t *RadixTrie) scan() (total, internal, totalDeg int) {
	nodes := stack.NewStack[*radixNode]()
	nodes.Push(t.root)
	for !nodes.IsEmpty() {
		n, _ := nodes.Pop()
		total++
		if deg := n.degree(); deg > 0 {
			internal++
			totalDeg += deg
			n.iterEdges(func(e edge) bool {
				nodes.Push(e.child)
				return true
			})
		}
	}
	return total, internal, totalDeg
}
