// Package notation resolves the two textual spellings of a qualified name
// used throughout the document model: the bracketed form "{namespace}local"
// and the spaced form "namespace local". Names are normalized to the
// bracketed form for storage and matching.
package notation

import (
	"strings"

	finnaerrors "github.com/NatLibFi/finna-xml/errors"
)

// TryParse splits name into its (namespace, local) pair. It accepts the
// spaced form (exactly one ASCII space) and the bracketed form. Any other
// shape reports ok=false; it is not an error by itself.
func TryParse(name string) (namespace, local string, ok bool) {
	if i := strings.IndexByte(name, ' '); i >= 0 {
		if strings.IndexByte(name[i+1:], ' ') >= 0 {
			return "", "", false
		}
		return name[:i], name[i+1:], true
	}
	if strings.HasPrefix(name, "{") {
		end := strings.IndexByte(name, '}')
		if end < 0 {
			return "", "", false
		}
		return name[1:end], name[end+1:], true
	}
	return "", "", false
}

// Parse is TryParse with a hard failure for names in neither spelling.
func Parse(name string) (namespace, local string, err error) {
	namespace, local, ok := TryParse(name)
	if !ok {
		return "", "", finnaerrors.InvalidNotation(name)
	}
	return namespace, local, nil
}

// EnsureValid normalizes name to the bracketed form. A name in neither
// spelling is completed with defaultNamespace when one is configured;
// otherwise the call fails.
func EnsureValid(name, defaultNamespace string) (string, error) {
	if namespace, local, ok := TryParse(name); ok {
		return Format(namespace, local), nil
	}
	if defaultNamespace != "" {
		return Format(defaultNamespace, name), nil
	}
	return "", finnaerrors.NamespaceRequired(name)
}

// Format returns the bracketed normalization of a (namespace, local) pair.
// The namespace may be empty, meaning "no namespace".
func Format(namespace, local string) string {
	return "{" + namespace + "}" + local
}
