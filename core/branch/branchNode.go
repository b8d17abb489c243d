package branch

import (
	"sort"

	"github.com/rohanthewiz/hostmux/consts"
)

// branch is one position in the registered segment space.
//
// A node carries data only when it terminates a fully registered
// path; nodes created just to reach a deeper registration stay empty.
// Children are exclusive to their parent, so the structure is a tree,
// never a graph, and traversal is always root-to-leaf.
type branch[T any] struct {
	name    string
	data    T
	hasData bool

	// children maps segment names (literals, ":slug" markers and "*")
	// to their nodes. childNames preserves registration order for
	// enumeration; slugKids keeps the ":" children sorted so fetch
	// tries them deterministically.
	children   map[string]*branch[T]
	childNames []string
	slugKids   []string

	// slugIndexes maps a slug name to the depths at which it was bound
	// along the path to this node. Depth is the index into the original
	// segment list, which lets extraction re-read the concrete path
	// directly instead of re-running the match.
	slugIndexes map[string][]int
}

// child returns the node registered under the given segment name.
func (node *branch[T]) child(name string) *branch[T] {
	if node.children == nil {
		return nil
	}
	return node.children[name]
}

// addChild links a new child under the given segment name.
func (node *branch[T]) addChild(name string, kid *branch[T]) {
	if node.children == nil {
		node.children = make(map[string]*branch[T], 4)
	}

	node.children[name] = kid
	node.childNames = append(node.childNames, name)

	if isSlug(name) {
		node.slugKids = append(node.slugKids, name)
		sort.Strings(node.slugKids)
	}
}

// fetch resolves the remaining segments beneath this node.
//
// Options at each level, in priority order:
//
//  1. the exact child named by the concrete segment
//  2. slug children, lexicographically by name
//  3. the wildcard child
//
// Backtracking is exhaustive: a subtree that fails to terminate at
// the right depth advances the option loop here before this level
// itself fails upward. Only a node holding data at exactly the last
// segment stops the search.
func (node *branch[T]) fetch(segments []string, depth int) (*branch[T], flow) {
	if depth == len(segments) {
		if node.hasData {
			return node, flowStop
		}
		return nil, flowDead
	}

	seg := segments[depth]

	if kid := node.child(seg); kid != nil {
		if match, ctl := kid.descend(segments, depth+1); ctl == flowStop {
			return match, flowStop
		}
	}

	for _, name := range node.slugKids {
		if name == seg {
			continue // already tried as the exact child
		}
		if match, ctl := node.children[name].descend(segments, depth+1); ctl == flowStop {
			return match, flowStop
		}
	}

	if wild := node.child(consts.Wildcard); wild != nil && seg != consts.Wildcard {
		if match, ctl := wild.descend(segments, depth+1); ctl == flowStop {
			return match, flowStop
		}
	}

	return nil, flowDead
}

// descend runs fetch on this subtree and converts its exhaustion into
// advice for the caller's option loop.
func (node *branch[T]) descend(segments []string, depth int) (*branch[T], flow) {
	match, ctl := node.fetch(segments, depth)
	if ctl == flowDead {
		return nil, flowNext
	}
	return match, ctl
}

// each visits this node and every descendant in registration order.
func (node *branch[T]) each(fn func(*branch[T])) {
	fn(node)

	for _, name := range node.childNames {
		node.children[name].each(fn)
	}
}

// walk hands every terminal node's full segment trail to fn.
// The trail slice is reused between calls; callers retaining it must
// copy.
func (node *branch[T]) walk(trail []string, fn func(segments []string, data T)) {
	if node.hasData {
		fn(trail, node.data)
	}

	for _, name := range node.childNames {
		node.children[name].walk(append(trail, name), fn)
	}
}

// isSlug reports whether a segment is a named parameter marker.
// A bare colon is treated as a literal.
func isSlug(segment string) bool {
	return len(segment) > 1 && segment[0] == consts.RuneColon
}
