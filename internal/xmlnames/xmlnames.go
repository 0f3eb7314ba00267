// Package xmlnames holds the reserved XML names and the synthetic prefix
// allocator used when rendering.
package xmlnames

import "strconv"

const (
	// XMLPrefix is the reserved prefix for the XML namespace.
	XMLPrefix = "xml"
	// XMLNSPrefix is the reserved prefix for namespace declarations.
	XMLNSPrefix = "xmlns"
	// XSIPrefix is the conventional prefix for the schema-instance namespace.
	XSIPrefix = "xsi"
	// XMLNamespace is the XML namespace URI.
	XMLNamespace = "http://www.w3.org/XML/1998/namespace"
	// XMLNSNamespace is the XMLNS namespace URI.
	XMLNSNamespace = "http://www.w3.org/2000/xmlns/"
	// XSINamespace is the XML Schema instance namespace URI.
	XSINamespace = "http://www.w3.org/2001/XMLSchema-instance"
)

// IsReservedPrefix reports whether prefix must never be redeclared.
func IsReservedPrefix(prefix string) bool {
	return prefix == XMLPrefix || prefix == XMLNSPrefix
}

// AllocatePrefix returns the first synthetic prefix (ns1, ns2, ...) that is
// not already a key of taken.
func AllocatePrefix(taken map[string]string) string {
	for i := 1; ; i++ {
		candidate := "ns" + strconv.Itoa(i)
		if _, used := taken[candidate]; !used {
			return candidate
		}
	}
}
