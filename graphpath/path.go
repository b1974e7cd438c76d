// Package graphpath parses field addresses such as "items[1].value" and
// walks object graphs along them.
package graphpath

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidPath is returned for malformed path strings.
var ErrInvalidPath = errors.New("invalid path")

// serializedArray is the element marker of serialized host paths,
// "list.Array.data[2]" means "list[2]".
const serializedArray = ".Array.data["

// Segment is one step of a path.
type Segment struct {
	Name    string
	Index   int
	Indexed bool
}

// String renders the segment as "name" or "name[i]".
func (s Segment) String() string {
	if !s.Indexed {
		return s.Name
	}

	return s.Name + "[" + strconv.Itoa(s.Index) + "]"
}

// Path is an ordered list of segments; the last one names the field itself.
type Path struct {
	Segments []Segment
}

// Parse parses a field path string into a Path.
// Supports: "field", "nested.field", "items[2]", "items[2].value" and the
// serialized form "items.Array.data[2].value".
func Parse(path string) (Path, error) {
	if path == "" {
		return Path{}, fmt.Errorf("%w: empty path", ErrInvalidPath)
	}

	path = strings.ReplaceAll(path, serializedArray, "[")

	var segments []Segment

	for part := range strings.SplitSeq(path, ".") {
		if part == "" {
			return Path{}, fmt.Errorf("%w %q: empty segment", ErrInvalidPath, path)
		}

		seg := Segment{Name: part}

		// Check for index notation
		if open := strings.IndexByte(part, '['); open >= 0 {
			if !strings.HasSuffix(part, "]") {
				return Path{}, fmt.Errorf("%w %q: unterminated index in %q", ErrInvalidPath, path, part)
			}

			idx, err := strconv.Atoi(part[open+1 : len(part)-1])
			if err != nil || idx < 0 {
				return Path{}, fmt.Errorf("%w %q: bad index in %q", ErrInvalidPath, path, part)
			}

			seg = Segment{Name: part[:open], Index: idx, Indexed: true}
		}

		if !isValidIdent(seg.Name) {
			return Path{}, fmt.Errorf("%w %q: invalid identifier %q", ErrInvalidPath, path, seg.Name)
		}

		segments = append(segments, seg)
	}

	return Path{Segments: segments}, nil
}

// MustParse is Parse for paths known to be valid; it panics otherwise.
func MustParse(path string) Path {
	p, err := Parse(path)
	if err != nil {
		panic(err)
	}

	return p
}

// String renders the canonical dotted form.
func (p Path) String() string {
	parts := make([]string, len(p.Segments))
	for i, s := range p.Segments {
		parts[i] = s.String()
	}

	return strings.Join(parts, ".")
}

// Owner returns the path to the instance owning the last segment.
func (p Path) Owner() Path {
	if len(p.Segments) == 0 {
		return Path{}
	}

	return Path{Segments: p.Segments[:len(p.Segments)-1]}
}

// Leaf returns the last segment.
func (p Path) Leaf() (Segment, bool) {
	if len(p.Segments) == 0 {
		return Segment{}, false
	}

	return p.Segments[len(p.Segments)-1], true
}

// Append returns a new path with segs added.
func (p Path) Append(segs ...Segment) Path {
	out := make([]Segment, 0, len(p.Segments)+len(segs))
	out = append(out, p.Segments...)

	return Path{Segments: append(out, segs...)}
}

// isValidIdent checks if a string is a valid Go identifier.
func isValidIdent(s string) bool {
	if s == "" {
		return false
	}

	for i, r := range s {
		if i == 0 {
			// First character must be letter or underscore
			if !isLetter(r) && r != '_' {
				return false
			}
		} else {
			// Subsequent characters can be letter, digit, or underscore
			if !isLetter(r) && !isDigit(r) && r != '_' {
				return false
			}
		}
	}

	return true
}

func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}
