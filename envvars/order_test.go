package envvars

import (
	"bytes"
	"slices"
	"strings"
	"testing"

	"github.com/ardnew/envmerge/log"
)

func orderOf(t *testing.T, env *EnvVars, overrides map[string]string) []string {
	t.Helper()

	return newOrderCalculator(env, overrides).orderedNames()
}

func TestOverrideOrder_Simple(t *testing.T) {
	order := orderOf(t, New(), map[string]string{
		"A":   "NoReference",
		"A+B": "NoReference",
		"B":   "Refer1${A}",
		"C":   "Refer2${B}",
		"D":   "Refer3${B}${Nosuch}",
	})

	want := []string{"A", "B", "C", "D", "A+B"}
	if !slices.Equal(order, want) {
		t.Errorf("expected %v, got %v", want, order)
	}
}

func TestOverrideOrder_Chain(t *testing.T) {
	order := orderOf(t, New(), map[string]string{
		"A": "NoReference",
		"B": "${A}",
		"C": "${B}",
		"D": "${E}",
		"E": "${C}",
	})

	want := []string{"A", "B", "C", "E", "D"}
	if !slices.Equal(order, want) {
		t.Errorf("expected %v, got %v", want, order)
	}
}

func TestOverrideOrder_Diamond(t *testing.T) {
	order := orderOf(t, New(), map[string]string{
		"A": "Noreference",
		"B": "${A}",
		"C": "${A}${B}",
	})

	want := []string{"A", "B", "C"}
	if !slices.Equal(order, want) {
		t.Errorf("expected %v, got %v", want, order)
	}
}

func TestOverrideOrder_SelfReference(t *testing.T) {
	var warnings bytes.Buffer

	env := New(WithLogger(log.Make(&warnings)))

	order := orderOf(t, env, map[string]string{
		"PATH": "some;${PATH}",
	})

	if !slices.Equal(order, []string{"PATH"}) {
		t.Errorf("expected [PATH], got %v", order)
	}

	if warnings.Len() > 0 {
		t.Errorf("self reference must not report a cycle: %s", warnings.String())
	}
}

func TestOverrideOrder_CyclicWithExisting(t *testing.T) {
	env := New(WithLogger(log.Logger{}))
	env.Put("C", "Existing")

	order := orderOf(t, env, map[string]string{
		"A": "${B}",
		"B": "${C}", // reference cut: C pre-exists outside the pass
		"C": "${A}",

		"D": "${C}${E}",
		"E": "${C}${D}",
	})

	if len(order) != 5 {
		t.Fatalf("expected 5 keys, got %v", order)
	}

	want := []string{"B", "A", "C"}
	if !slices.Equal(order[:3], want) {
		t.Errorf("expected prefix %v, got %v", want, order[:3])
	}

	rest := []string{order[3], order[4]}
	slices.Sort(rest)

	if !slices.Equal(rest, []string{"D", "E"}) {
		t.Errorf("expected D and E to close the order, got %v", order[3:])
	}
}

func TestOverrideOrder_CycleWarning(t *testing.T) {
	var warnings bytes.Buffer

	env := New(WithLogger(log.Make(&warnings)))
	env.Put("C", "Existing")

	orderOf(t, env, map[string]string{
		"A": "${B}",
		"B": "${C}",
		"C": "${A}",
	})

	logged := warnings.String()

	if !strings.Contains(logged, "A -> B -> C -> A") {
		t.Errorf("expected the full cycle path to be reported, got %q", logged)
	}

	if !strings.Contains(logged, "referrer=B") ||
		!strings.Contains(logged, "referee=C") {
		t.Errorf("expected the cut edge B -> C to be reported, got %q", logged)
	}
}

func TestOverrideOrder_AppendOnly(t *testing.T) {
	order := orderOf(t, New(), map[string]string{
		"PATH+A": "x",
		"PATH+B": "y",
	})

	want := []string{"PATH+A", "PATH+B"}
	if !slices.Equal(order, want) {
		t.Errorf("expected %v, got %v", want, order)
	}
}

func TestOverrideOrder_Empty(t *testing.T) {
	if order := orderOf(t, New(), nil); len(order) != 0 {
		t.Errorf("expected no keys, got %v", order)
	}
}

func TestOverrideOrder_CaseInsensitiveReferences(t *testing.T) {
	order := orderOf(t, New(), map[string]string{
		"A": "${path}",
		"B": "${A}",

		"PATH": "base",
	})

	want := []string{"PATH", "A", "B"}
	if !slices.Equal(order, want) {
		t.Errorf("expected %v, got %v", want, order)
	}
}
