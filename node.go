package finnaxml

// Attr is one attribute of a Node. Qualified attribute names use the
// bracketed "{namespace}local" form; unqualified ones are the bare local
// name. Order is insertion order and is kept for stable output.
type Attr struct {
	Name  string
	Value string
}

// Node is one element of the parsed tree. The name is always stored in the
// normalized bracketed form "{namespace}local" (the namespace may be empty).
// The value is the concatenation of all direct text and CDATA under the
// element in document order; interleaved child elements are not reflected in
// it, which loses mixed-content ordering by design.
type Node struct {
	name     string
	value    string
	attrs    []Attr
	children []*Node
}

// NewNode returns a childless node. The name must already be in the
// normalized bracketed form; use Document.AddChild to build names from
// either notation or the default namespace.
func NewNode(name string) *Node {
	return &Node{name: name}
}

// Name returns the normalized bracketed name.
func (n *Node) Name() string { return n.name }

// Value returns the accumulated direct text content, untrimmed.
func (n *Node) Value() string { return n.value }

// SetValue replaces the text content.
func (n *Node) SetValue(value string) { n.value = value }

// setName is the raw rename; callers go through Document.Rename so the
// replacement passes notation normalization.
func (n *Node) setName(name string) { n.name = name }

// Attr returns the value of the named attribute as stored.
func (n *Node) Attr(name string) (string, bool) {
	for _, a := range n.attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// SetAttr adds the attribute or overwrites an existing one in place.
func (n *Node) SetAttr(name, value string) {
	for i := range n.attrs {
		if n.attrs[i].Name == name {
			n.attrs[i].Value = value
			return
		}
	}
	n.attrs = append(n.attrs, Attr{Name: name, Value: value})
}

// RemoveAttr deletes the named attribute if present.
func (n *Node) RemoveAttr(name string) {
	for i := range n.attrs {
		if n.attrs[i].Name == name {
			n.attrs = append(n.attrs[:i], n.attrs[i+1:]...)
			return
		}
	}
}

// Attrs returns a copy of the attributes in insertion order.
func (n *Node) Attrs() []Attr {
	out := make([]Attr, len(n.attrs))
	copy(out, n.attrs)
	return out
}

// Children returns the child slice. The slice is shared with the node;
// mutating structure should go through the child primitives below.
func (n *Node) Children() []*Node { return n.children }

// AppendChild adds c as the last child.
func (n *Node) AppendChild(c *Node) { n.children = append(n.children, c) }

// InsertChild inserts c at index. Indexes outside [0,len] append.
func (n *Node) InsertChild(index int, c *Node) {
	if index < 0 || index >= len(n.children) {
		n.children = append(n.children, c)
		return
	}
	n.children = append(n.children, nil)
	copy(n.children[index+1:], n.children[index:])
	n.children[index] = c
}

// RemoveChildren drops every child.
func (n *Node) RemoveChildren() { n.children = nil }

// clone deep-copies the subtree rooted at n.
func (n *Node) clone() *Node {
	if n == nil {
		return nil
	}
	out := &Node{name: n.name, value: n.value}
	if len(n.attrs) > 0 {
		out.attrs = make([]Attr, len(n.attrs))
		copy(out.attrs, n.attrs)
	}
	if len(n.children) > 0 {
		out.children = make([]*Node, len(n.children))
		for i, c := range n.children {
			out.children[i] = c.clone()
		}
	}
	return out
}
