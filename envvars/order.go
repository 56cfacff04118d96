package envvars

import (
	"log/slog"
	"maps"
	"slices"
	"strings"
)

// orderCalculator computes the order in which a set of override
// assignments must be applied so that each variable, when expanded,
// sees the already-resolved values of every variable it references.
//
// Variables are sorted topologically by their reference graph. Append
// keys (BASE+SUFFIX) never participate in the graph and are always
// scheduled last. Reference cycles are resolved by cutting exactly one
// edge per cycle and retrying; each cut is reported through the target
// store's logger.
type orderCalculator struct {
	target    *EnvVars
	overrides map[string]string

	// nodes maps the folded identity of each plain override key to the
	// key as written.
	nodes map[string]string

	// referees maps the folded identity of each plain override key to
	// the set of names its raw value references, keyed by folded
	// identity with the spelling found in the value.
	referees map[string]map[string]string

	appending []string
	ordered   []string
}

func newOrderCalculator(
	target *EnvVars,
	overrides map[string]string,
) *orderCalculator {
	c := &orderCalculator{
		target:    target,
		overrides: overrides,
		nodes:     make(map[string]string),
		referees:  make(map[string]map[string]string),
	}
	c.scan()

	return c
}

// orderedNames returns the computed application order: plain keys in
// dependency order followed by append keys.
func (c *orderCalculator) orderedNames() []string {
	return c.ordered
}

// scan traces the reference graph from the raw override values and
// runs the sort, cutting one cycle edge per retry until it completes.
// Each cut strictly reduces the edge count, so retries are bounded.
func (c *orderCalculator) scan() {
	for _, key := range sortedNames(c.overrides) {
		if strings.Index(key, "+") > 0 {
			// BASE+SUFFIX entries are always processed last.
			c.appending = append(c.appending, key)

			continue
		}

		tracer := newTraceResolver()
		Expand(c.overrides[key], tracer)

		id := foldName(key)

		// A variable may reference its own prior value without forming
		// a graph edge.
		delete(tracer.referred, id)

		c.nodes[id] = key
		c.referees[id] = tracer.referred
	}

	var sorted []string

	for {
		var cycle []string

		sorted, cycle = c.sort()
		if cycle == nil {
			break
		}

		c.cutCycle(cycle)
	}

	// When A refers to B, the last appearance of B must come after the
	// last appearance of A.
	slices.Reverse(sorted)

	seen := make(map[string]bool, len(sorted))

	for _, id := range sorted {
		if key, ok := c.nodes[id]; ok && !seen[id] {
			c.ordered = append(c.ordered, key)
			seen[id] = true
		}
	}

	slices.Reverse(c.ordered)

	c.ordered = append(c.ordered, c.appending...)
}

// sort runs a depth-first topological sort over the reference graph,
// rooting at every plain override key in case-insensitive lexical
// order. It returns either the post-order visit sequence or the first
// cycle found, as folded identities with the entry node repeated last,
// in referrer-to-referee order.
func (c *orderCalculator) sort() (sorted, cycle []string) {
	visited := make(map[string]bool, len(c.nodes))
	visiting := make(map[string]bool, len(c.nodes))

	var path []string

	var visit func(id string) []string
	visit = func(id string) []string {
		if visited[id] {
			return nil
		}

		visited[id] = true
		visiting[id] = true
		path = append(path, id)

		// Referenced names without an override entry still get visited
		// with an empty edge set, then filtered from the final order.
		for _, ref := range slices.Sorted(maps.Keys(c.referees[id])) {
			if visiting[ref] {
				at := slices.Index(path, ref)

				return append(slices.Clone(path[at:]), ref)
			}

			if found := visit(ref); found != nil {
				return found
			}
		}

		visiting[id] = false
		path = path[:len(path)-1]
		sorted = append(sorted, id)

		return nil
	}

	for _, id := range slices.Sorted(maps.Keys(c.nodes)) {
		if found := visit(id); found != nil {
			return nil, found
		}
	}

	return sorted, nil
}

// cutCycle removes one edge from the detected cycle.
//
// If any variable in the cycle already exists in the target store, its
// value pre-exists this override pass and the reference to it can be
// treated as already resolved:
//
//	existing:
//	  PATH=/usr/bin
//	overriding:
//	  PATH1=/usr/local/bin:${PATH}
//	  PATH=/opt/something/bin:${PATH1}
//
// Here the reference PATH1 -> PATH can be ignored. Otherwise the edge
// out of the cycle's first listed node is removed instead.
func (c *orderCalculator) cutCycle(cycle []string) {
	for _, referee := range cycle {
		if c.target.Has(referee) {
			c.cutCycleAt(referee, cycle)

			return
		}
	}

	c.cutCycleAt(cycle[0], cycle)
}

// cutCycleAt removes the edge into referee from its predecessor in the
// cycle and reports the cut.
func (c *orderCalculator) cutCycleAt(referee string, cycle []string) {
	// cycle holds identities in referrer-to-referee order with the
	// first and last entries equal, so every member has a predecessor.
	referrer := cycle[lastIndex(cycle, referee)-1]

	delete(c.referees[referrer], referee)

	c.target.log.Warn(
		"cyclic variable reference detected",
		slog.String("cycle", strings.Join(c.displayNames(cycle), " -> ")),
	)
	c.target.log.Warn(
		"cut variable reference",
		slog.String("referrer", c.displayName(referrer)),
		slog.String("referee", c.displayName(referee)),
	)
}

// displayName returns the override key spelling for a folded identity.
func (c *orderCalculator) displayName(id string) string {
	if key, ok := c.nodes[id]; ok {
		return key
	}

	return id
}

func (c *orderCalculator) displayNames(ids []string) []string {
	names := make([]string, len(ids))
	for i, id := range ids {
		names[i] = c.displayName(id)
	}

	return names
}

// lastIndex returns the index of the last occurrence of id in ids,
// or -1 when absent.
func lastIndex(ids []string, id string) int {
	for i := len(ids) - 1; i >= 0; i-- {
		if ids[i] == id {
			return i
		}
	}

	return -1
}
