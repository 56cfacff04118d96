package envvars

import "regexp"

// Resolver supplies values for variable references during macro
// expansion. Implementations report an absent name with ok == false;
// an empty string with ok == true is a legitimate value.
type Resolver interface {
	Resolve(name string) (value string, ok bool)
}

// ResolverFunc adapts a function to the [Resolver] interface.
type ResolverFunc func(name string) (string, bool)

// Resolve calls f.
func (f ResolverFunc) Resolve(name string) (string, bool) {
	return f(name)
}

// mapResolver returns a Resolver backed by plain, case-sensitive map
// lookup.
func mapResolver(m map[string]string) Resolver {
	return ResolverFunc(func(name string) (string, bool) {
		value, ok := m[name]

		return value, ok
	})
}

// macroPattern captures variable references: either $xyz, ${xyz}, or
// ${a.b} but not $a.b, while ignoring "$$".
var macroPattern = regexp.MustCompile(
	`\$([A-Za-z0-9_]+|\{[A-Za-z0-9_.]+\}|\$)`,
)

// Expand replaces each occurrence of $name or ${name} in s with the
// value supplied by resolver, and each "$$" with a literal "$".
//
// Unlike shell, undefined variables are left as-is (the same behavior
// as Ant). Substituted text is never rescanned, so expansion is not
// recursive and always terminates: the cursor strictly advances past
// either the inserted value or the untouched token.
func Expand(s string, resolver Resolver) string {
	idx := 0

	for {
		loc := macroPattern.FindStringIndex(s[idx:])
		if loc == nil {
			return s
		}

		start, end := idx+loc[0], idx+loc[1]

		// Strip the leading dollar sign to obtain either the escape or
		// the referenced name.
		token := s[start+1 : end]

		value, ok := "$", true
		if token != "$" {
			name := token
			if name[0] == '{' {
				name = name[1 : len(name)-1]
			}

			value, ok = resolver.Resolve(name)
		}

		if !ok {
			// Leave the unresolved reference in place and skip past it.
			idx = end

			continue
		}

		s = s[:start] + value + s[end:]
		idx = start + len(value)
	}
}

// traceResolver records the names it is asked to resolve instead of
// resolving them. Feeding it to [Expand] turns the same scanner into
// the reference tracer used for dependency graph construction; no
// second parser exists.
type traceResolver struct {
	referred map[string]string // folded name -> name as written
}

func newTraceResolver() *traceResolver {
	return &traceResolver{referred: make(map[string]string)}
}

// Resolve records name and substitutes an empty placeholder, which
// keeps the scan advancing without growing the input.
func (t *traceResolver) Resolve(name string) (string, bool) {
	t.referred[foldName(name)] = name

	return "", true
}
