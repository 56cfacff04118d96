package envvars

import (
	"log/slog"

	"github.com/goccy/go-yaml"
)

// MarshalYAML renders the store as a YAML mapping whose keys follow
// the store's iteration order.
func (e *EnvVars) MarshalYAML() (any, error) {
	doc := make(yaml.MapSlice, 0, e.Len())
	for name, value := range e.All() {
		doc = append(doc, yaml.MapItem{Key: name, Value: value})
	}

	return doc, nil
}

// UnmarshalYAML loads a YAML mapping into the store, applying entries
// in case-insensitive lexical key order.
//
// An explicit null value fails with [ErrInvalidValue] naming the
// variable: removal is modeled as an override with an empty value,
// never as a null.
func (e *EnvVars) UnmarshalYAML(data []byte) error {
	var doc map[string]*string

	if err := yaml.Unmarshal(data, &doc); err != nil {
		return ErrYAMLDecode.Wrap(err)
	}

	for _, name := range sortedNames(doc) {
		value := doc[name]
		if value == nil {
			return ErrInvalidValue.
				With(slog.String("name", name))
		}

		e.Put(name, *value)
	}

	return nil
}
