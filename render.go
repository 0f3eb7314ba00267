package finnaxml

import (
	"bytes"
	"io"
	"sort"
	"strings"

	xw "github.com/shabbyrobe/xmlwriter"

	finnaerrors "github.com/NatLibFi/finna-xml/errors"
	"github.com/NatLibFi/finna-xml/internal/notation"
	"github.com/NatLibFi/finna-xml/internal/xmlnames"
)

type renderOptions struct {
	indent     int
	trim       bool
	omitPrefix bool
	start      *Node
}

// RenderOption configures serialization.
type RenderOption func(*renderOptions)

// WithIndent indents nested elements by n spaces per level; 0 is compact.
func WithIndent(n int) RenderOption {
	return func(o *renderOptions) { o.indent = n }
}

// WithTrimText trims leading and trailing whitespace from text content.
func WithTrimText() RenderOption {
	return func(o *renderOptions) { o.trim = true }
}

// WithOmitSinglePrefix renders all names unprefixed with a single default
// xmlns declaration. The mode is only defined while at most one namespace
// beside xsi is in use; rendering fails otherwise.
func WithOmitSinglePrefix() RenderOption {
	return func(o *renderOptions) { o.omitPrefix = true }
}

// WithStartNode renders the subtree rooted at n instead of the whole
// document.
func WithStartNode(n *Node) RenderOption {
	return func(o *renderOptions) { o.start = n }
}

// renderer carries the state of one serialization: the augmented prefix
// table built by the discovery pass and the set of namespaces actually
// referenced by the subtree being written.
type renderer struct {
	doc         *Document
	opts        renderOptions
	table       map[string]string // prefix -> URI, a copy, never the document's
	uriToPrefix map[string]string
	used        map[string]bool
}

// Render serializes the document (or the subtree chosen with WithStartNode)
// to w. Serialization never mutates the document: the discovery pass that
// allocates prefixes for unbound namespaces works on a copy of the table.
func (d *Document) Render(w io.Writer, opts ...RenderOption) error {
	if d.root == nil {
		return finnaerrors.NoDocument()
	}
	o := renderOptions{}
	for _, opt := range opts {
		opt(&o)
	}
	start := o.start
	if start == nil {
		start = d.root
	}

	r := &renderer{
		doc:         d,
		opts:        o,
		table:       d.Namespaces(),
		uriToPrefix: make(map[string]string),
		used:        make(map[string]bool),
	}
	if d.defaultNS != "" && d.defaultPrefix != "" {
		r.table[d.defaultPrefix] = d.defaultNS
	}
	r.uriToPrefix[xmlnames.XMLNamespace] = xmlnames.XMLPrefix
	for _, prefix := range sortedPrefixes(r.table) {
		uri := r.table[prefix]
		if _, bound := r.uriToPrefix[uri]; !bound {
			r.uriToPrefix[uri] = prefix
		}
	}

	r.discover(start)

	if o.omitPrefix {
		if err := r.checkSingleNamespace(); err != nil {
			return err
		}
	}

	var xwOpts []xw.Option
	if o.indent > 0 {
		xwOpts = append(xwOpts, xw.WithIndentString(strings.Repeat(" ", o.indent)))
	}
	writer := xw.Open(w, xwOpts...)
	if err := writer.StartDoc(xw.Doc{}); err != nil {
		return err
	}
	if err := r.emit(writer, start, true); err != nil {
		return err
	}
	return writer.EndAllFlush()
}

// RenderString serializes to a string.
func (d *Document) RenderString(opts ...RenderOption) (string, error) {
	var buf bytes.Buffer
	if err := d.Render(&buf, opts...); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// discover walks the subtree and makes sure every referenced namespace has
// a prefix, allocating synthetic ones into the copied table as needed.
func (r *renderer) discover(n *Node) {
	r.ensurePrefix(r.elementNamespace(n.name))
	for _, a := range n.attrs {
		if namespace, _, ok := notation.TryParse(a.Name); ok && namespace != "" {
			r.ensurePrefix(namespace)
		}
	}
	for _, c := range n.children {
		r.discover(c)
	}
}

// elementNamespace resolves a node's effective namespace: its own, or the
// configured default when the node carries none.
func (r *renderer) elementNamespace(name string) string {
	namespace, _, ok := notation.TryParse(name)
	if !ok {
		return r.doc.defaultNS
	}
	if namespace == "" {
		return r.doc.defaultNS
	}
	return namespace
}

func (r *renderer) ensurePrefix(uri string) {
	if uri == "" {
		return
	}
	r.used[uri] = true
	if uri == xmlnames.XMLNamespace {
		return
	}
	if _, bound := r.uriToPrefix[uri]; bound {
		return
	}
	prefix := xmlnames.AllocatePrefix(r.table)
	r.table[prefix] = uri
	r.uriToPrefix[uri] = prefix
}

// checkSingleNamespace enforces the omit-prefix precondition: at most one
// namespace beside xsi may be in use.
func (r *renderer) checkSingleNamespace() error {
	count := 0
	for uri := range r.used {
		if uri == xmlnames.XSINamespace || uri == xmlnames.XMLNamespace {
			continue
		}
		count++
	}
	if count > 1 {
		return &finnaerrors.Error{
			Code:    finnaerrors.ErrPrefixNotResolved,
			Message: "cannot omit prefixes with more than one namespace in use",
		}
	}
	return nil
}

// singleNamespace returns the one non-xsi namespace in use, if any.
func (r *renderer) singleNamespace() string {
	for uri := range r.used {
		if uri == xmlnames.XSINamespace || uri == xmlnames.XMLNamespace {
			continue
		}
		return uri
	}
	return ""
}

func (r *renderer) emit(writer *xw.Writer, n *Node, isRoot bool) error {
	name, err := r.elementName(n.name)
	if err != nil {
		return err
	}
	if err := writer.StartElem(xw.Elem{Name: name}); err != nil {
		return err
	}
	if isRoot {
		if err := r.writeDeclarations(writer); err != nil {
			return err
		}
	}
	for _, a := range n.attrs {
		attrName, err := r.attrName(a.Name)
		if err != nil {
			return err
		}
		if err := writer.WriteAttr(xw.Attr{Name: attrName, Value: a.Value}); err != nil {
			return err
		}
	}
	text := n.value
	if r.opts.trim {
		text = strings.TrimSpace(text)
	}
	if text != "" {
		if err := writer.WriteText(text); err != nil {
			return err
		}
	}
	for _, c := range n.children {
		if err := r.emit(writer, c, false); err != nil {
			return err
		}
	}
	return writer.EndElem()
}

// writeDeclarations emits the root element's xmlns attributes. In omit mode
// a single default declaration covers the one namespace in use; otherwise
// every entry of the augmented table is declared except the reserved xml
// binding and an unused xsi binding.
func (r *renderer) writeDeclarations(writer *xw.Writer) error {
	if r.opts.omitPrefix {
		if uri := r.singleNamespace(); uri != "" {
			if err := writer.WriteAttr(xw.Attr{Name: xmlnames.XMLNSPrefix, Value: uri}); err != nil {
				return err
			}
		}
		if r.used[xmlnames.XSINamespace] {
			return writer.WriteAttr(xw.Attr{
				Name:  xmlnames.XMLNSPrefix + ":" + r.uriToPrefix[xmlnames.XSINamespace],
				Value: xmlnames.XSINamespace,
			})
		}
		return nil
	}
	for _, prefix := range sortedPrefixes(r.table) {
		uri := r.table[prefix]
		if prefix == xmlnames.XMLPrefix || uri == xmlnames.XMLNamespace {
			continue
		}
		if uri == xmlnames.XSINamespace && !r.used[uri] {
			continue
		}
		if err := writer.WriteAttr(xw.Attr{Name: xmlnames.XMLNSPrefix + ":" + prefix, Value: uri}); err != nil {
			return err
		}
	}
	return nil
}

// elementName renders a node name with its resolved prefix, or bare in omit
// mode or when the effective namespace is empty.
func (r *renderer) elementName(name string) (string, error) {
	namespace, local, ok := notation.TryParse(name)
	if !ok {
		local = name
	}
	if namespace == "" {
		namespace = r.doc.defaultNS
	}
	return r.qualified(namespace, local)
}

// attrName renders an attribute name. Unqualified attributes stay bare;
// they never pick up the default namespace.
func (r *renderer) attrName(name string) (string, error) {
	namespace, local, ok := notation.TryParse(name)
	if !ok || namespace == "" {
		return name, nil
	}
	if r.opts.omitPrefix && namespace != xmlnames.XSINamespace && namespace != xmlnames.XMLNamespace {
		return local, nil
	}
	return r.qualified(namespace, local)
}

func (r *renderer) qualified(namespace, local string) (string, error) {
	if namespace == "" {
		return local, nil
	}
	if r.opts.omitPrefix && namespace != xmlnames.XSINamespace && namespace != xmlnames.XMLNamespace {
		return local, nil
	}
	prefix, bound := r.uriToPrefix[namespace]
	if !bound {
		return "", finnaerrors.PrefixNotResolved(namespace)
	}
	if prefix == "" {
		return local, nil
	}
	return prefix + ":" + local, nil
}

func sortedPrefixes(table map[string]string) []string {
	prefixes := make([]string, 0, len(table))
	for prefix := range table {
		prefixes = append(prefixes, prefix)
	}
	sort.Strings(prefixes)
	return prefixes
}
