package finnaxml

import (
	"strings"

	finnaerrors "github.com/NatLibFi/finna-xml/errors"
)

// Path is a normalized sequence of query segments. Build one from explicit
// segments with NewPath, or from a slash-delimited string with ParsePath.
// The zero Path is the empty path, which addresses a node's direct children.
type Path struct {
	segments []string
}

// NewPath builds a path from an ordered list of segments. Each segment may
// use either qualified-name notation, including the spaced form that cannot
// appear inside a delimited string.
func NewPath(segments ...string) Path {
	return Path{segments: segments}
}

// ParsePath splits a slash-delimited path into segments. The split is
// brace-aware: a '/' inside an open "{...}" span is part of the namespace,
// not a separator. An empty string is the empty path.
func ParsePath(s string) (Path, error) {
	if s == "" {
		return Path{}, nil
	}
	var segments []string
	var seg strings.Builder
	inBrace := false
	for _, r := range s {
		switch r {
		case '{':
			if inBrace {
				return Path{}, finnaerrors.PathSyntax("unexpected repeated { in path", s)
			}
			inBrace = true
			seg.WriteRune(r)
		case '}':
			if !inBrace {
				return Path{}, finnaerrors.PathSyntax("unexpected } in path", s)
			}
			inBrace = false
			seg.WriteRune(r)
		case '/':
			if inBrace {
				seg.WriteRune(r)
				continue
			}
			segments = append(segments, seg.String())
			seg.Reset()
		default:
			seg.WriteRune(r)
		}
	}
	segments = append(segments, seg.String())
	return Path{segments: segments}, nil
}

// Segments returns a copy of the segment list.
func (p Path) Segments() []string {
	out := make([]string, len(p.segments))
	copy(out, p.segments)
	return out
}

// IsEmpty reports whether the path has no segments.
func (p Path) IsEmpty() bool { return len(p.segments) == 0 }

// String joins the segments back with '/'.
func (p Path) String() string { return strings.Join(p.segments, "/") }
