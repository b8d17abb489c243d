package branch

// Tree is a prefix tree over whole path segments.
// Each level consumes exactly one segment, so unlike a radix tree
// there is no prefix splitting; a node either names a literal
// segment, a ":slug" capture, or the "*" wildcard.
//
// Structure example for /users, /users/:id and /users/:id/posts:
//
//	root
//	 └── "users"  (data: handler for /users)
//	      └── ":id"  (data: handler for /users/:id, slugIndexes {id:[1]})
//	           └── "posts"  (data: handler for /users/:id/posts, slugIndexes {id:[1]})
//
// Host and method ride in front of the path as synthetic segments,
// so a full registration key reads [host, method, seg0, seg1, ...]
// and the wildcard node covers "any host" and "any method" the same
// way it covers a path position.
//
// Zero value is ready to use - the root node is embedded, not a pointer.
type Tree[T any] struct {
	root branch[T]
}

// Extend adds a registration to the tree.
//
// The walk consumes one segment per level, descending into the
// existing child of that name or creating one. Slug segments record
// their (name, depth) binding into the table carried down the walk,
// so the node for the marker and everything registered beneath it
// inherit every binding above them; the terminal node ends up knowing
// each slug anywhere along its path.
//
// Extending the same segment sequence again replaces the data on the
// terminal node. Last write wins, no error.
func (tree *Tree[T]) Extend(segments []string, data T) {
	node := &tree.root
	slugs := node.slugIndexes

	for depth, seg := range segments {
		if isSlug(seg) {
			slugs = cloneSlugs(slugs)
			slugs[seg[1:]] = append(slugs[seg[1:]], depth)
		}

		kid := node.child(seg)
		if kid == nil {
			kid = &branch[T]{name: seg, slugIndexes: slugs}
			node.addChild(seg, kid)
		}

		node = kid
		slugs = node.slugIndexes
	}

	node.data = data
	node.hasData = true
}

// Lookup finds the data for the given concrete segments.
// This is a convenience wrapper around LookupNoAlloc that materializes
// the slug map. The map only allocates when the matched registration
// actually binds slugs.
func (tree *Tree[T]) Lookup(segments []string) (T, Params, bool) {
	var params Params

	data, found := tree.LookupNoAlloc(segments, func(name string, value string) {
		if params == nil {
			params = make(Params, 2)
		}
		params[name] = append(params[name], value)
	})

	return data, params, found
}

// LookupNoAlloc finds the data for the given concrete segments without
// building the slug map; captured values stream through addSlug
// instead, in ascending depth order per name.
//
// The fetch itself is pure backtracking over the node options (see
// branch.fetch); slug values are then read straight out of the
// concrete segments at the depths the matched node recorded, so a
// lookup never re-walks the tree to recover captures.
func (tree *Tree[T]) LookupNoAlloc(segments []string, addSlug func(name string, value string)) (T, bool) {
	node, ctl := tree.root.fetch(segments, 0)
	if ctl != flowStop {
		var empty T
		return empty, false
	}

	node.slugs(segments, addSlug)
	return node.data, true
}

// Routes walks every fully registered segment sequence in child
// registration order, handing each terminal's trail and data to fn.
// The segments slice is reused between callbacks; copy it if you keep
// it. Introspection only - never on the request path.
func (tree *Tree[T]) Routes(fn func(segments []string, data T)) {
	tree.root.walk(nil, fn)
}

// Map binds all handlers to a new one provided by the callback.
// This traverses the entire tree and applies the transformation to
// every node holding data, in place. Registration phase only; the
// serving side treats the tree as read-only.
func (tree *Tree[T]) Map(transform func(T) T) {
	tree.root.each(func(node *branch[T]) {
		if node.hasData {
			node.data = transform(node.data)
		}
	})
}

// cloneSlugs copies a slug table deeply enough that appending to the
// copy can never touch a table already attached to another node.
func cloneSlugs(src map[string][]int) map[string][]int {
	out := make(map[string][]int, len(src)+1)

	for name, depths := range src {
		out[name] = append([]int(nil), depths...)
	}

	return out
}
