package envvars

import (
	"iter"
	"log/slog"
	"maps"
	"os"
	"slices"
	"strings"

	"github.com/ardnew/envmerge/log"
)

// EnvVars is an ordered table of environment variables, keyed
// case-insensitively while preserving the casing most recently written.
// Iteration visits names in case-insensitive lexical order.
//
// The zero value is usable; it behaves like a store created by [New]
// with a silent logger.
//
// An EnvVars is not safe for concurrent writers. Callers needing
// concurrent use must serialize access externally.
type EnvVars struct {
	vars map[string]entry // keyed by foldName
	sep  string           // path list separator for append keys
	log  log.Logger
}

// entry retains the display casing of a name alongside its value.
type entry struct {
	name  string
	value string
}

// Option applies a configuration option to a store under construction.
type Option func(*EnvVars)

// WithPathListSeparator overrides the separator used when merging
// append keys (BASE+SUFFIX). The default is the platform's
// [os.PathListSeparator]. Override sets are often built on one machine
// and applied on another that may use a different separator.
func WithPathListSeparator(sep string) Option {
	return func(e *EnvVars) { e.sep = sep }
}

// WithLogger routes the store's warnings, such as cycle cuts made by
// [EnvVars.OverrideExpandingAll], to l. The zero [log.Logger] silences
// them.
func WithLogger(l log.Logger) Option {
	return func(e *EnvVars) { e.log = l }
}

// New returns an empty store configured by opts.
func New(opts ...Option) *EnvVars {
	e := &EnvVars{
		vars: make(map[string]entry),
		sep:  string(os.PathListSeparator),
		log:  log.Default(),
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// NewFromMap returns a store holding every entry of m.
func NewFromMap(m map[string]string, opts ...Option) *EnvVars {
	e := New(opts...)
	e.PutAll(m)

	return e
}

// NewFromEnviron returns a store parsed from NAME=VALUE entries in the
// form produced by [os.Environ]. Entries without a separator are
// ignored.
func NewFromEnviron(environ []string, opts ...Option) *EnvVars {
	e := New(opts...)
	for _, line := range environ {
		e.AddLine(line)
	}

	return e
}

// NewFromPairs builds a store from an alternating sequence of names
// and values: "name", "value", "name", "value", ...
// An odd number of elements fails with [ErrMalformedPairs].
func NewFromPairs(pairs ...string) (*EnvVars, error) {
	if len(pairs)%2 != 0 {
		return nil, ErrMalformedPairs.
			With(slog.Int("count", len(pairs)))
	}

	e := New()
	for i := 0; i < len(pairs); i += 2 {
		e.Put(pairs[i], pairs[i+1])
	}

	return e, nil
}

// init backfills the variable map so the zero value is usable.
func (e *EnvVars) init() {
	if e.vars == nil {
		e.vars = make(map[string]entry)
	}
}

// pathSep returns the configured path list separator, defaulting to
// the platform separator for zero-value stores.
func (e *EnvVars) pathSep() string {
	if e.sep == "" {
		return string(os.PathListSeparator)
	}

	return e.sep
}

// Get returns the value stored under name, looked up case-insensitively.
func (e *EnvVars) Get(name string) (string, bool) {
	ent, ok := e.vars[foldName(name)]

	return ent.value, ok
}

// GetDefault returns the value stored under name, or value when the
// name is absent.
func (e *EnvVars) GetDefault(name, value string) string {
	if v, ok := e.Get(name); ok {
		return v
	}

	return value
}

// Put stores value under name. The display casing of name replaces any
// casing stored previously.
func (e *EnvVars) Put(name, value string) {
	e.init()
	e.vars[foldName(name)] = entry{name: name, value: value}
}

// PutIfNotNull stores *value under name, or does nothing when value is
// nil. This is the only Put variant that can observe an absent value;
// the plain string API cannot express one.
func (e *EnvVars) PutIfNotNull(name string, value *string) {
	if value != nil {
		e.Put(name, *value)
	}
}

// PutAll copies every entry of m into the store. Entries are applied
// in case-insensitive lexical order so that fold-equal names collapse
// deterministically.
func (e *EnvVars) PutAll(m map[string]string) {
	for _, name := range sortedNames(m) {
		e.Put(name, m[name])
	}
}

// Remove deletes the entry stored under name, if any.
func (e *EnvVars) Remove(name string) {
	delete(e.vars, foldName(name))
}

// Has reports whether an entry is stored under name.
func (e *EnvVars) Has(name string) bool {
	_, ok := e.vars[foldName(name)]

	return ok
}

// Len returns the number of stored entries.
func (e *EnvVars) Len() int { return len(e.vars) }

// Names returns the stored display names in iteration order.
func (e *EnvVars) Names() []string {
	names := make([]string, 0, len(e.vars))
	for _, id := range slices.Sorted(maps.Keys(e.vars)) {
		names = append(names, e.vars[id].name)
	}

	return names
}

// All returns an iterator over name/value pairs in iteration order.
func (e *EnvVars) All() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		for _, id := range slices.Sorted(maps.Keys(e.vars)) {
			ent := e.vars[id]
			if !yield(ent.name, ent.value) {
				return
			}
		}
	}
}

// Environ renders the store as a NAME=VALUE sequence in iteration
// order, suitable for handing to a process launcher.
func (e *EnvVars) Environ() []string {
	environ := make([]string, 0, len(e.vars))
	for name, value := range e.All() {
		environ = append(environ, name+"="+value)
	}

	return environ
}

// Clone returns an independent copy of the store sharing its
// configuration.
func (e *EnvVars) Clone() *EnvVars {
	c := *e
	c.vars = maps.Clone(e.vars)
	c.init()

	return &c
}

// Override merges one assignment into the store:
//
//   - An empty value removes the entry stored under the key's base
//     form.
//   - An append key BASE+SUFFIX prepends value, joined by the path
//     list separator, to any existing BASE value, storing the result
//     under BASE.
//   - Any other key is a plain [EnvVars.Put].
func (e *EnvVars) Override(key, value string) {
	if value == "" {
		e.Remove(baseKey(key))

		return
	}

	if idx := strings.Index(key, "+"); idx > 0 {
		base := key[:idx]

		if existing, ok := e.Get(base); ok {
			value = value + e.pathSep() + existing
		}

		e.Put(base, value)

		return
	}

	e.Put(key, value)
}

// OverrideAll applies [EnvVars.Override] for every entry of overrides,
// in case-insensitive lexical key order, without macro expansion. Use
// [EnvVars.OverrideExpandingAll] when values reference other variables.
func (e *EnvVars) OverrideAll(overrides map[string]string) *EnvVars {
	for _, key := range sortedNames(overrides) {
		e.Override(key, overrides[key])
	}

	return e
}

// AddLine parses a string of the form "NAME=VALUE" and adds it to the
// store. Lines without "=", or with "=" as the first byte, are ignored.
func (e *EnvVars) AddLine(line string) {
	if sep := strings.Index(line, "="); sep > 0 {
		e.Put(line[:sep], line[sep+1:])
	}
}

// Resolve implements [Resolver] backed by the store.
func (e *EnvVars) Resolve(name string) (string, bool) {
	return e.Get(name)
}

// baseKey strips the +SUFFIX qualifier from an append key.
func baseKey(key string) string {
	if idx := strings.Index(key, "+"); idx > 0 {
		return key[:idx]
	}

	return key
}
