package envvars

import (
	"slices"
	"testing"
)

func TestOverrideExpandingAll_EndToEnd(t *testing.T) {
	env := New(WithPathListSeparator(":"))
	env.Put("PATH", "orig")
	env.Put("A", "Value1")

	env.OverrideExpandingAll(map[string]string{
		"PATH":      "append:${PATH}",
		"B":         "${A}Value2",
		"C":         "${B}${D}",
		"D":         "${E}",
		"E":         "Value3",
		"PATH+TEST": "another",
	})

	if v, _ := env.Get("C"); v != "Value1Value2Value3" {
		t.Errorf("expected 'Value1Value2Value3', got %q", v)
	}

	if v, _ := env.Get("PATH"); v != "another:append:orig" {
		t.Errorf("expected 'another:append:orig', got %q", v)
	}
}

func TestOverrideExpandingAll_UnresolvedReference(t *testing.T) {
	env := New()

	env.OverrideExpandingAll(map[string]string{
		"A": "${NOSUCH}",
	})

	if v, _ := env.Get("A"); v != "${NOSUCH}" {
		t.Errorf("expected unresolved reference preserved, got %q", v)
	}
}

func TestOverrideExpandingAll_SelfReference(t *testing.T) {
	env := New(WithPathListSeparator(":"))
	env.Put("PATH", "orig")

	env.OverrideExpandingAll(map[string]string{
		"PATH": "prefix:${PATH}",
	})

	if v, _ := env.Get("PATH"); v != "prefix:orig" {
		t.Errorf("expected self reference to see the prior value, got %q", v)
	}
}

func TestOverrideExpandingAll_Removal(t *testing.T) {
	env := New()
	env.Put("A", "1")

	env.OverrideExpandingAll(map[string]string{"A": ""})

	if env.Has("A") {
		t.Error("expected empty override to remove the entry")
	}
}

func TestOverrideAll_NoExpansion(t *testing.T) {
	env := New()
	env.Put("A", "resolved")

	env.OverrideAll(map[string]string{"B": "${A}"})

	if v, _ := env.Get("B"); v != "${A}" {
		t.Errorf("expected raw value without expansion, got %q", v)
	}
}

func TestResolve_Flat(t *testing.T) {
	props := map[string]string{
		"A": "val1",
		"B": "$A is good",
		"C": "${B} and best",
	}

	Resolve(props)

	want := map[string]string{
		"A": "val1",
		"B": "val1 is good",
		"C": "val1 is good and best",
	}

	for _, name := range sortedNames(want) {
		if props[name] != want[name] {
			t.Errorf("%s: expected %q, got %q", name, want[name], props[name])
		}
	}
}

func TestEnvVars_Expand(t *testing.T) {
	env := NewFromMap(map[string]string{"A": "val1"})

	if got := env.Expand("${A} is good"); got != "val1 is good" {
		t.Errorf("expected 'val1 is good', got %q", got)
	}
}

func TestOverrideExpandingAll_OrderObservable(t *testing.T) {
	env := New(WithPathListSeparator(":"))

	env.OverrideExpandingAll(map[string]string{
		"ROOT":  "/opt/tool",
		"BIN":   "${ROOT}/bin",
		"PATH":  "${BIN}:${PATH}",
		"CACHE": "${ROOT}/cache",
	})

	want := []string{
		"BIN=/opt/tool/bin",
		"CACHE=/opt/tool/cache",
		"PATH=/opt/tool/bin:${PATH}",
		"ROOT=/opt/tool",
	}

	if got := env.Environ(); !slices.Equal(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}
