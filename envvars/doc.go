// Package envvars implements an ordered table of environment variables
// with macro expansion and cycle-safe override ordering.
//
// # Case folding
//
// All of the platforms worth supporting keep a case-sensitive process
// environment, but Windows tooling treats variable names in a case
// preserving yet case insensitive way (%Path% and %PATH% read the same
// entry). For consistent cross-platform behavior the table is case
// insensitive but case preserving: lookups fold the name, iteration and
// display use the casing most recently written.
//
// # Append keys
//
// Override sets are often built up on one machine and applied on
// another, which is a problem for variables like PATH. The special
// convention BASE+SUFFIX handles it: all override entries whose key
// starts with BASE+ are merged and prepended, separator-joined, to the
// inherited BASE value. The suffix only distinguishes multiple
// appenders; it carries no meaning of its own.
//
// # Macro expansion
//
// Values may reference other variables as $NAME or ${NAME}, and $$
// escapes a literal dollar sign. [Expand] substitutes references using
// a pluggable [Resolver]; unlike shell, undefined variables are left
// as-is. No shell syntax beyond simple substitution is interpreted.
//
// # Override ordering
//
// [EnvVars.OverrideExpandingAll] applies a set of override assignments
// so that every variable, when expanded, sees the already-resolved
// values of the variables it references. The order is computed by a
// topological sort over the reference graph of the raw override
// values. Reference cycles are not errors: exactly one edge per cycle
// is cut by a deterministic policy and reported through the store's
// logger, preferring to cut the reference to a variable whose value
// already exists outside the override pass.
package envvars
