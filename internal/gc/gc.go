// Package gc implements the mark-bit/root-enumeration contract that the
// rest of the repository publishes to an external collector (spec §6,
// §9). The full bytecode VM and its value representation are out of
// scope for this repository; what lives here is the collaborator
// contract — a mark bit per node, and root-marking functions that walk
// the parser's node pool, the scheduler's frame queues, and the module
// caches — exercised end to end against the one subsystem that is in
// scope: the AST node pool.
package gc

// Markable is anything the collector can mark and sweep: AST nodes,
// call frames, and cached type descriptors all satisfy it.
type Markable interface {
	// Mark reports whether this value is still marked live.
	Mark() bool
	// SetMark sets the mark bit.
	SetMark(bool)
}

// RootFunc enumerates one category of GC roots (the node pool's
// top-level statements, the scheduler's ready queue and waiter set, or
// a module cache), marking everything reachable from them.
type RootFunc func(mark func(Markable))

// Collector coordinates a mark-sweep pass across every root-marking
// function registered with it.
type Collector struct {
	roots []RootFunc
}

// New returns an empty Collector.
func New() *Collector {
	return &Collector{}
}

// AddRoot registers a root-marking function. Order does not matter:
// each is invoked once per Collect.
func (c *Collector) AddRoot(fn RootFunc) {
	c.roots = append(c.roots, fn)
}

// Collect runs the mark phase by invoking every registered root
// function with a mark callback that sets the mark bit. It has no sweep
// phase: callers are responsible for walking their own structures and
// actually freeing unmarked values; Collect only drives the mark bits.
func (c *Collector) Collect() {
	for _, root := range c.roots {
		root(func(m Markable) {
			m.SetMark(true)
		})
	}
}

// ClearMarks resets every previously-seen Markable's bit to false ahead
// of the next mark phase. Callers pass the same set of values they will
// later sweep.
func ClearMarks(values []Markable) {
	for _, v := range values {
		v.SetMark(false)
	}
}
