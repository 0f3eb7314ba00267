package finnaxml

import (
	"encoding/xml"
	"errors"
	"io"

	finnaerrors "github.com/NatLibFi/finna-xml/errors"
	"github.com/NatLibFi/finna-xml/internal/notation"
	"github.com/NatLibFi/finna-xml/internal/xmlnames"
)

// parseTokens consumes the decoder's forward-only token stream and builds
// the node tree plus the document-wide prefix table. The decoder resolves
// prefixes to namespace URIs for element and attribute names, so nodes
// store "{namespace}local" directly; the xmlns meta-attributes are dropped
// from the attribute map and only their bindings are recorded.
func parseTokens(r io.Reader) (*Node, map[string]string, error) {
	decoder := xml.NewDecoder(r)

	namespaces := newNamespaceTable()
	var stack []*Node
	var root *Node

	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, parseError(err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if root != nil && len(stack) == 0 {
				return nil, nil, finnaerrors.Parse("unexpected element after document end", 0, 0)
			}
			elem := NewNode(notation.Format(t.Name.Space, t.Name.Local))
			collectAttrs(elem, t.Attr, namespaces)
			if len(stack) > 0 {
				parent := stack[len(stack)-1]
				parent.AppendChild(elem)
			} else {
				root = elem
			}
			stack = append(stack, elem)

		case xml.EndElement:
			// encoding/xml emits a matching end token for self-closing
			// elements, so an empty element never consumes its siblings.
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}

		case xml.CharData:
			if len(stack) > 0 {
				top := stack[len(stack)-1]
				top.SetValue(top.Value() + string(t))
			}
		}
	}

	if root == nil {
		return nil, nil, finnaerrors.Parse("document has no root element", 0, 0)
	}
	return root, namespaces, nil
}

func collectAttrs(elem *Node, attrs []xml.Attr, namespaces map[string]string) {
	for _, a := range attrs {
		switch {
		case a.Name.Space == xmlnames.XMLNSPrefix:
			// xmlns:prefix="uri"; the first binding of a prefix wins the
			// document-wide table, later scoped rebindings only matter for
			// name resolution, which the decoder already did.
			if xmlnames.IsReservedPrefix(a.Name.Local) {
				continue
			}
			if _, bound := namespaces[a.Name.Local]; !bound {
				namespaces[a.Name.Local] = a.Value
			}
		case a.Name.Space == "" && a.Name.Local == xmlnames.XMLNSPrefix:
			// Default namespace declaration; carries no prefix to record.
		case a.Name.Space == "":
			elem.SetAttr(a.Name.Local, a.Value)
		default:
			elem.SetAttr(notation.Format(a.Name.Space, a.Name.Local), a.Value)
		}
	}
}

func parseError(err error) error {
	var syntax *xml.SyntaxError
	if errors.As(err, &syntax) {
		// encoding/xml tracks lines but not columns.
		return finnaerrors.Parse(syntax.Msg, syntax.Line, 0)
	}
	return finnaerrors.Parse(err.Error(), 0, 0)
}
