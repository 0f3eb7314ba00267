package finnaxml

import (
	"strings"

	finnaerrors "github.com/NatLibFi/finna-xml/errors"
	"github.com/NatLibFi/finna-xml/internal/notation"
)

func ensureName(name, defaultNamespace string) (string, error) {
	return notation.EnsureValid(name, defaultNamespace)
}

// All resolves path against the children of start (or of the root when
// start is nil) and returns every matching node in document order. The
// empty path addresses the direct children themselves.
//
// Each segment is normalized with the default namespace and matched in two
// passes per level: first against the normalized name exactly, then - only
// when the first pass matched nothing anywhere at that level - against the
// empty-namespace form of the same local name. The passes are never merged.
func (d *Document) All(start *Node, path Path) ([]*Node, error) {
	if d.root == nil {
		return nil, finnaerrors.NoDocument()
	}
	if start == nil {
		start = d.root
	}
	if path.IsEmpty() {
		return append([]*Node(nil), start.children...), nil
	}

	frontier := []*Node{start}
	for _, segment := range path.segments {
		normalized, err := ensureName(segment, d.defaultNS)
		if err != nil {
			return nil, err
		}
		matches := matchLevel(frontier, normalized)
		if len(matches) == 0 {
			if _, local, ok := notation.TryParse(normalized); ok {
				matches = matchLevel(frontier, notation.Format("", local))
			}
		}
		if len(matches) == 0 {
			return nil, nil
		}
		frontier = matches
	}
	return frontier, nil
}

func matchLevel(frontier []*Node, name string) []*Node {
	var matches []*Node
	for _, parent := range frontier {
		for _, child := range parent.children {
			if child.name == name {
				matches = append(matches, child)
			}
		}
	}
	return matches
}

// First returns the first result of All, or nil when nothing matches.
func (d *Document) First(start *Node, path Path) (*Node, error) {
	nodes, err := d.All(start, path)
	if err != nil {
		return nil, err
	}
	if len(nodes) == 0 {
		return nil, nil
	}
	return nodes[0], nil
}

type valueOptions struct {
	trim      bool
	keepEmpty bool
}

// ValueOption configures value projection.
type ValueOption func(*valueOptions)

// WithTrimValues trims leading and trailing whitespace from each value.
func WithTrimValues() ValueOption {
	return func(o *valueOptions) { o.trim = true }
}

// WithEmptyValues keeps values that are empty (after optional trimming) in
// AllValues results instead of dropping them.
func WithEmptyValues() ValueOption {
	return func(o *valueOptions) { o.keepEmpty = true }
}

func resolveValueOptions(opts []ValueOption) valueOptions {
	var o valueOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Value returns n's text content, trimmed when WithTrimValues is given.
func (d *Document) Value(n *Node, opts ...ValueOption) string {
	o := resolveValueOptions(opts)
	v := n.value
	if o.trim {
		v = strings.TrimSpace(v)
	}
	return v
}

// AllValues projects All onto node values. Empty values are dropped unless
// WithEmptyValues is given.
func (d *Document) AllValues(start *Node, path Path, opts ...ValueOption) ([]string, error) {
	o := resolveValueOptions(opts)
	nodes, err := d.All(start, path)
	if err != nil {
		return nil, err
	}
	var values []string
	for _, n := range nodes {
		v := n.value
		if o.trim {
			v = strings.TrimSpace(v)
		}
		if v == "" && !o.keepEmpty {
			continue
		}
		values = append(values, v)
	}
	return values, nil
}

// FirstValue returns the value of the first match, or the empty string when
// nothing matches.
func (d *Document) FirstValue(start *Node, path Path, opts ...ValueOption) (string, error) {
	o := resolveValueOptions(opts)
	n, err := d.First(start, path)
	if err != nil || n == nil {
		return "", err
	}
	v := n.value
	if o.trim {
		v = strings.TrimSpace(v)
	}
	return v, nil
}

// Attribute looks name up on n, first qualified with the default namespace
// when one is configured, then as the bare literal as stored. The second
// return is false when the attribute is absent under both keys.
func (d *Document) Attribute(n *Node, name string) (string, bool) {
	if d.defaultNS != "" {
		if v, ok := n.Attr(notation.Format(d.defaultNS, name)); ok {
			return v, true
		}
	}
	return n.Attr(name)
}

// Name returns n's bracketed qualified name. With omitDefault, a node whose
// namespace equals the configured default namespace yields the bare local
// name instead.
func (d *Document) Name(n *Node, omitDefault bool) string {
	if omitDefault && d.defaultNS != "" {
		if namespace, local, ok := notation.TryParse(n.name); ok && namespace == d.defaultNS {
			return local
		}
	}
	return n.name
}
