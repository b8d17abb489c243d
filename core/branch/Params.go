package branch

import (
	"net/url"
	"strings"
)

// Params holds the slug values captured during one resolution, keyed
// by slug name.
//
// Example:
//
//	Pattern: /users/:id/posts/:id
//	Path:    /users/7/posts/42
//	Result:  Params{"id": {"7", "42"}}
//
// Values appear in path order when a name is bound at more than one
// depth. A nil Params is the no-slugs case; the Router's cache admits
// exactly the resolutions that produce it.
type Params map[string][]string

// Get returns the first captured value for name, or "".
func (p Params) Get(name string) string {
	if values := p[name]; len(values) > 0 {
		return values[0]
	}
	return ""
}

// Values returns every captured value for name in path order.
func (p Params) Values(name string) []string {
	return p[name]
}

// Has reports whether name captured at least one value.
func (p Params) Has(name string) bool {
	return len(p[name]) > 0
}

// slugs re-reads the concrete segments at this node's recorded slug
// depths, streaming each decoded value through addSlug. Depths
// outside the segment list are skipped rather than trusted: a match
// cannot produce one, but extraction must not panic if that ever
// breaks.
func (node *branch[T]) slugs(segments []string, addSlug func(name string, value string)) {
	for name, depths := range node.slugIndexes {
		for _, depth := range depths {
			if depth < 0 || depth >= len(segments) {
				continue
			}
			addSlug(name, decodeSegment(segments[depth]))
		}
	}
}

// decodeSegment percent-decodes one captured segment, keeping the raw
// text when the encoding is invalid.
func decodeSegment(seg string) string {
	decoded, err := url.PathUnescape(seg)
	if err != nil {
		return seg
	}
	return decoded
}

// SplitSegments breaks a slash-delimited path into its non-empty
// segments. Leading, trailing and doubled slashes contribute nothing,
// so /users//7/ splits the same as /users/7.
func SplitSegments(path string) []string {
	if path == "" || path == "/" {
		return nil
	}

	parts := strings.Split(path, "/")
	segments := make([]string, 0, len(parts))

	for _, part := range parts {
		if part != "" {
			segments = append(segments, part)
		}
	}

	return segments
}
