package finnaxml

import (
	finnaerrors "github.com/NatLibFi/finna-xml/errors"
)

// Outcome is returned by a Modify callback to keep or drop the visited node.
type Outcome int

const (
	// Keep retains the node and continues into its children.
	Keep Outcome = iota
	// Drop removes the node with its whole subtree and skips it.
	Drop
)

// FilterFunc decides whether a node is kept. The path is the bracketed path
// from the root to and including the node; parents is the ancestor chain
// from the root down to, but excluding, the node.
type FilterFunc func(n *Node, path string, parents []*Node) bool

// ModifyFunc visits a node it may mutate in place. The index is the node's
// sibling position before any mutation at its level took effect.
type ModifyFunc func(n *Node, path string, index int, parents []*Node) Outcome

// Filter removes every node, and its subtree, for which fn returns false.
// The walk is depth-first pre-order over the whole tree starting from the
// root's children; a removed node's subtree is not visited. Filter mutates
// the tree in place and must not be re-entered from fn.
func (d *Document) Filter(fn FilterFunc) error {
	return d.walk(func(n *Node, path string, _ int, parents []*Node) Outcome {
		if fn(n, path, parents) {
			return Keep
		}
		return Drop
	}, false)
}

// Modify visits every node in depth-first pre-order, root included, and
// applies fn's mutations in place. A Drop outcome removes the node and its
// subtree exactly like a false Filter predicate; Drop on the root itself is
// ignored, a document always keeps its root. Modify must not be re-entered
// from fn.
func (d *Document) Modify(fn ModifyFunc) error {
	return d.walk(fn, true)
}

func (d *Document) walk(fn ModifyFunc, visitRoot bool) error {
	if d.root == nil {
		return finnaerrors.NoDocument()
	}
	if d.walking {
		return finnaerrors.MutationInProgress()
	}
	d.walking = true
	defer func() { d.walking = false }()

	if visitRoot {
		fn(d.root, d.root.name, 0, nil)
	}
	walkChildren(d.root, d.root.name, []*Node{d.root}, fn)
	return nil
}

// walkChildren visits the children of parent over a snapshot taken after
// the parent's own callback ran, so reported indexes are the positions
// before any removal at this level, while children inserted by the parent's
// callback are still visited.
func walkChildren(parent *Node, parentPath string, parents []*Node, fn ModifyFunc) {
	snapshot := append([]*Node(nil), parent.children...)
	kept := parent.children[:0]
	for i, child := range snapshot {
		path := parentPath + "/" + child.name
		if fn(child, path, i, parents) == Drop {
			continue
		}
		kept = append(kept, child)
		walkChildren(child, path, append(parents, child), fn)
	}
	parent.children = kept
}
