package finnaxml

import (
	"bytes"
	"io"
	"os"

	finnaerrors "github.com/NatLibFi/finna-xml/errors"
	"github.com/NatLibFi/finna-xml/internal/xmlnames"
)

// ParsedDocumentVersion is the format tag carried by exported documents.
const ParsedDocumentVersion = 1

// ParsedDocument is the opaque interchange value produced by Export and
// accepted by Import. It owns its tree; it never aliases a Document.
type ParsedDocument struct {
	Version    int
	Root       *Node
	Namespaces map[string]string
}

// Document holds a parsed tree, the document-wide prefix table, and the
// per-document default namespace configuration. A Document is empty until
// populated by Parse or Import and must be confined to one goroutine at a
// time; no internal locking is provided.
type Document struct {
	root          *Node
	namespaces    map[string]string // prefix -> namespace URI
	defaultNS     string
	defaultPrefix string
	walking       bool
}

// Option configures a Document at construction time.
type Option func(*Document)

// WithDefaultNamespace sets the namespace URI substituted for unqualified
// path segments and attribute names, and used as the effective namespace of
// nodes that carry none when rendering.
func WithDefaultNamespace(uri string) Option {
	return func(d *Document) { d.defaultNS = uri }
}

// WithDefaultPrefix sets the prefix emitted for the default namespace when
// rendering.
func WithDefaultPrefix(prefix string) Option {
	return func(d *Document) { d.defaultPrefix = prefix }
}

// New returns an empty Document.
func New(opts ...Option) *Document {
	d := &Document{namespaces: newNamespaceTable()}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func newNamespaceTable() map[string]string {
	return map[string]string{xmlnames.XSIPrefix: xmlnames.XSINamespace}
}

// Root returns the root node, or nil while the document is unpopulated.
func (d *Document) Root() *Node { return d.root }

// DefaultNamespace returns the configured default namespace URI, if any.
func (d *Document) DefaultNamespace() string { return d.defaultNS }

// Namespaces returns a copy of the document-wide prefix table. The table
// always contains the xsi binding.
func (d *Document) Namespaces() map[string]string {
	out := make(map[string]string, len(d.namespaces))
	for prefix, uri := range d.namespaces {
		out[prefix] = uri
	}
	return out
}

// ParseBytes parses a complete XML document held in memory.
func (d *Document) ParseBytes(b []byte) error {
	return d.Parse(bytes.NewReader(b))
}

// ParseFile parses the XML document at path.
func (d *Document) ParseFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return d.Parse(f)
}

// Parse reads a complete XML document from r, replacing any tree the
// document already held. See parse.go for the token-stream consumer.
func (d *Document) Parse(r io.Reader) error {
	root, namespaces, err := parseTokens(r)
	if err != nil {
		return err
	}
	d.root = root
	d.namespaces = namespaces
	return nil
}

// Export returns a deep copy of the document as the versioned interchange
// value. The document itself is not touched.
func (d *Document) Export() (*ParsedDocument, error) {
	if d.root == nil {
		return nil, finnaerrors.NoDocument()
	}
	return &ParsedDocument{
		Version:    ParsedDocumentVersion,
		Root:       d.root.clone(),
		Namespaces: d.Namespaces(),
	}, nil
}

// Import replaces the document's tree with a deep copy of pd after a
// minimal shape check: the value must carry version 1 and a root node.
func (d *Document) Import(pd *ParsedDocument) error {
	if pd == nil || pd.Root == nil || pd.Version != ParsedDocumentVersion {
		return finnaerrors.InvalidFormat("invalid parsed document format")
	}
	namespaces := newNamespaceTable()
	for prefix, uri := range pd.Namespaces {
		namespaces[prefix] = uri
	}
	d.root = pd.Root.clone()
	d.namespaces = namespaces
	return nil
}

// Rename gives n a new name, accepting either notation or an unqualified
// local name completed by the default namespace.
func (d *Document) Rename(n *Node, name string) error {
	normalized, err := ensureName(name, d.defaultNS)
	if err != nil {
		return err
	}
	n.setName(normalized)
	return nil
}

// AddChild creates a node under parent at the given sibling index (any
// index outside the current range appends). The name is normalized the same
// way as path segments; attrs are stored in the given order.
func (d *Document) AddChild(parent *Node, name, value string, attrs []Attr, index int) (*Node, error) {
	if d.root == nil {
		return nil, finnaerrors.NoDocument()
	}
	normalized, err := ensureName(name, d.defaultNS)
	if err != nil {
		return nil, err
	}
	child := NewNode(normalized)
	child.SetValue(value)
	for _, a := range attrs {
		child.SetAttr(a.Name, a.Value)
	}
	parent.InsertChild(index, child)
	return child, nil
}

// ReplaceChildren swaps parent's children for deep copies of the root
// children of src. The source's prefix bindings are merged into this
// document's table; a prefix already bound to a different namespace gets a
// fresh synthetic one, so prefixes never collide. The two documents share
// no nodes afterwards.
func (d *Document) ReplaceChildren(parent *Node, src *Document) error {
	if d.root == nil || src.root == nil {
		return finnaerrors.NoDocument()
	}
	have := make(map[string]bool, len(d.namespaces))
	for _, uri := range d.namespaces {
		have[uri] = true
	}
	for prefix, uri := range src.namespaces {
		if have[uri] {
			continue
		}
		if bound, taken := d.namespaces[prefix]; taken && bound != uri {
			prefix = xmlnames.AllocatePrefix(d.namespaces)
		}
		d.namespaces[prefix] = uri
		have[uri] = true
	}
	parent.RemoveChildren()
	for _, c := range src.root.children {
		parent.AppendChild(c.clone())
	}
	return nil
}
