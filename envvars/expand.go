package envvars

// Expand substitutes variable references in s using the current store
// contents. See [Expand] for the substitution rules.
func (e *EnvVars) Expand(s string) string {
	return Expand(s, e)
}

// OverrideExpandingAll merges overrides into the store, expanding each
// value against the store state current at its turn. Values are
// applied in the order computed from their reference graph, so a
// variable referencing another override observes that override's final
// value; see [EnvVars.Override] for the merge rules of each entry.
//
// Reference cycles never fail the pass: one edge per cycle is cut
// deterministically and reported through the store's logger.
func (e *EnvVars) OverrideExpandingAll(
	overrides map[string]string,
) *EnvVars {
	for _, key := range newOrderCalculator(e, overrides).orderedNames() {
		e.Override(key, e.Expand(overrides[key]))
	}

	return e
}

// Resolve expands every value of env in place against env itself, in a
// single pass over the keys in case-insensitive lexical order. It is
// intended for simple flat property maps without reference cycles and
// without override semantics; values referencing keys later in the
// pass observe their unexpanded text.
func Resolve(env map[string]string) {
	resolver := mapResolver(env)

	for _, name := range sortedNames(env) {
		env[name] = Expand(env[name], resolver)
	}
}
