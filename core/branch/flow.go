package branch

// flow tells the fetch descent what to do next.
// This type is used internally by the tree traversal to make the
// backtracking rule explicit: every level tries its options in
// priority order, and the outcome of each attempt is one of these
// three states rather than implicit fallthrough.
//
// Keeping the control value visible makes the backtracking auditable
// and lets the descent be tested level by level.
type flow int

// Control flow values used during tree traversal.
const (
	// flowStop indicates a terminal node satisfied every remaining
	// segment; the match unwinds to the caller untouched.
	flowStop flow = iota

	// flowNext indicates the option just tried failed somewhere below;
	// the current level moves on to its next-priority child.
	flowNext

	// flowDead indicates every option at the current level failed.
	// The level above converts this into flowNext for its own loop.
	flowDead
)
