package huffman

import (
	"errors"
	"fmt"
	"sort"

	"github.com/chronos-tachyon/assert"
)

// Tree is a binary Huffman tree whose leaves are byte values.
//
// A leaf has no children; its Value is the value it was built from.  An
// internal node has both children (except for the decode tree of a
// single-symbol code, see TreeFromLengths), and its Value is the combination
// of its children's values.  Each node exclusively owns its children.
type Tree[V any] struct {
	Value  V
	Symbol byte
	Left   *Tree[V]
	Right  *Tree[V]
}

// IsLeaf returns true iff this node has no children.
func (t *Tree[V]) IsLeaf() bool {
	return t.Left == nil && t.Right == nil
}

// Codes returns the path from the root to every leaf, as a Code in which
// going left is a 0 bit and going right is a 1 bit.  Byte values that are
// not leaves of the tree have the empty Code.
func (t *Tree[V]) Codes() [NumSymbols]Code {
	var out [NumSymbols]Code
	walkLeaves(t, func(leaf *Tree[V], path Code) {
		out[leaf.Symbol] = path
	})
	return out
}

// TreeFromHistogram builds a Huffman tree whose leaves are the byte values
// with non-zero counts in h.  Builds from the same histogram always produce
// the same shape.
func TreeFromHistogram(h Histogram) (*Tree[uint64], error) {
	leaves := make([]*Tree[uint64], 0, NumSymbols)
	for symbol, count := range h {
		if count != 0 {
			leaves = append(leaves, &Tree[uint64]{Value: count, Symbol: byte(symbol)})
		}
	}
	if len(leaves) == 0 {
		return nil, ErrEmptyInput
	}
	return buildTree(leaves, countOrdering)
}

// TreeFromLengths builds the canonical decoding tree for a table of code
// lengths, one per byte value, where 0 means the byte is absent.  Every
// node's Value is its depth.
//
// The lone leaf of a single-symbol code (which must have length 1) is
// returned as the left child of an otherwise empty root, so that it decodes
// from the single bit "0".
func TreeFromLengths(lengths [NumSymbols]byte) (*Tree[uint8], error) {
	leaves := make([]*Tree[uint8], 0, NumSymbols)
	for symbol, size := range lengths {
		if size != 0 {
			leaves = append(leaves, &Tree[uint8]{Value: size, Symbol: byte(symbol)})
		}
	}

	switch len(leaves) {
	case 0:
		return nil, fmt.Errorf("%w: no symbols", ErrMalformedHeader)
	case 1:
		if leaves[0].Value != 1 {
			return nil, fmt.Errorf("%w: lone symbol must have bit length 1, got %d", ErrMalformedHeader, leaves[0].Value)
		}
		return &Tree[uint8]{Value: 0, Left: leaves[0]}, nil
	}

	root, err := buildTree(leaves, depthOrdering)
	if err != nil {
		return nil, err
	}
	if root.Value != 0 {
		return nil, fmt.Errorf("%w: incomplete Huffman code, root at depth %d", ErrMalformedHeader, root.Value)
	}
	return root, nil
}

// ordering tells buildTree how to compare two tree values and how to compute
// the value of a new node from the values of its two children.
type ordering[V any] struct {
	less    func(a, b V) bool
	combine func(a, b V) (V, error)
}

// countOrdering merges the least frequent trees first.
var countOrdering = ordering[uint64]{
	less: func(a, b uint64) bool {
		return a < b
	},
	combine: func(a, b uint64) (uint64, error) {
		sum := a + b
		if sum < a {
			return 0, fmt.Errorf("huffman: count overflow merging %d and %d", a, b)
		}
		return sum, nil
	},
}

// depthOrdering merges the deepest trees first.  Two trees may only be
// siblings if they sit at the same depth, and their parent sits one level
// higher.
var depthOrdering = ordering[uint8]{
	less: func(a, b uint8) bool {
		return a > b
	},
	combine: func(a, b uint8) (uint8, error) {
		if a != b || a == 0 {
			return 0, fmt.Errorf("%w: cannot pair codes of bit lengths %d and %d", ErrMalformedHeader, a, b)
		}
		return a - 1, nil
	},
}

var errNoLeaves = errors.New("huffman: cannot build a tree without leaves")

// buildTree runs the two-queue Huffman merge.
//
// The leaves are sorted by decreasing (value, symbol), so the smallest leaf
// is always at the end of the slice.  Merged nodes go into a FIFO queue:
// each new node is at least as large as every node already queued, so the
// smallest node is always at the front.  On each step the two smallest trees
// are taken (a leaf wins a tie against a node) and combined, the first one
// taken becoming the left child.
func buildTree[V any](leaves []*Tree[V], ord ordering[V]) (*Tree[V], error) {
	switch len(leaves) {
	case 0:
		return nil, errNoLeaves
	case 1:
		return leaves[0], nil
	}

	sort.Slice(leaves, func(i, j int) bool {
		a, b := leaves[i], leaves[j]
		if ord.less(b.Value, a.Value) {
			return true
		}
		if ord.less(a.Value, b.Value) {
			return false
		}
		return a.Symbol > b.Symbol
	})

	q := nodeQueue[V]{list: make([]*Tree[V], 0, len(leaves)-1)}
	for q.Len() != 1 || len(leaves) != 0 {
		left := popSmallest(&leaves, &q, ord.less)
		right := popSmallest(&leaves, &q, ord.less)
		value, err := ord.combine(left.Value, right.Value)
		if err != nil {
			return nil, err
		}
		q.Push(&Tree[V]{Value: value, Left: left, Right: right})
	}
	return q.Pop(), nil
}

func popSmallest[V any](leaves *[]*Tree[V], q *nodeQueue[V], less func(a, b V) bool) *Tree[V] {
	n := len(*leaves)
	if n == 0 {
		return q.Pop()
	}
	leaf := (*leaves)[n-1]
	if q.Len() != 0 && less(q.Peek().Value, leaf.Value) {
		return q.Pop()
	}
	*leaves = (*leaves)[:n-1]
	return leaf
}

// type nodeQueue {{{

type nodeQueue[V any] struct {
	list []*Tree[V]
	head int
}

func (q *nodeQueue[V]) Len() int {
	return len(q.list) - q.head
}

func (q *nodeQueue[V]) Push(t *Tree[V]) {
	q.list = append(q.list, t)
}

func (q *nodeQueue[V]) Peek() *Tree[V] {
	assert.Assertf(q.Len() > 0, "Peek on empty node queue")
	return q.list[q.head]
}

func (q *nodeQueue[V]) Pop() *Tree[V] {
	t := q.Peek()
	q.list[q.head] = nil
	q.head++
	return t
}

// }}}

// walkItem is a pending node in the explicit stack used by walkLeaves.
type walkItem[V any] struct {
	node *Tree[V]
	path Code
}

// walkLeaves calls fn for every leaf of t, from left to right, together with
// the path leading to it.  The path's Size is the leaf's depth.
//
// The walk uses an explicit stack rather than recursion.  Paths longer than
// 64 bits keep their Size but lose the bits past the 64th.
func walkLeaves[V any](t *Tree[V], fn func(leaf *Tree[V], path Code)) {
	stack := make([]walkItem[V], 0, 2*maxBitsPerCode)
	stack = append(stack, walkItem[V]{node: t})
	for len(stack) != 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		node := top.node
		if node.IsLeaf() {
			fn(node, top.path)
			continue
		}

		depth := top.path.Size
		assert.Assertf(depth < 255, "Huffman tree deeper than %d levels", depth)
		if node.Right != nil {
			bits := top.path.Bits
			if depth < 64 {
				bits |= uint64(1) << depth
			}
			stack = append(stack, walkItem[V]{node: node.Right, path: MakeCode(depth+1, bits)})
		}
		if node.Left != nil {
			stack = append(stack, walkItem[V]{node: node.Left, path: MakeCode(depth+1, top.path.Bits)})
		}
	}
}
