package xpatchconfig

import "testing"

func TestDefault(t *testing.T) {
	d := Default()

	if d.GDelta.WindowLength != 16 {
		t.Errorf("WindowLength = %d, want 16", d.GDelta.WindowLength)
	}

	if d.GDelta.MinMatchLength != 8 {
		t.Errorf("MinMatchLength = %d, want 8", d.GDelta.MinMatchLength)
	}
}

func TestParseOverridesOnlyGivenFields(t *testing.T) {
	tunables, err := Parse([]byte(`
[gdelta]
window-length = 32
`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if tunables.GDelta.WindowLength != 32 {
		t.Errorf("WindowLength = %d, want 32", tunables.GDelta.WindowLength)
	}

	if tunables.GDelta.MinMatchLength != 8 {
		t.Errorf("MinMatchLength = %d, want 8 (default)", tunables.GDelta.MinMatchLength)
	}
}

func TestParseRejectsNonPositiveWindow(t *testing.T) {
	_, err := Parse([]byte(`
[gdelta]
window-length = 0
`))
	if err == nil {
		t.Fatal("expected error for non-positive window-length")
	}
}

func TestParseRejectsNonPositiveMinMatch(t *testing.T) {
	_, err := Parse([]byte(`
[gdelta]
min-match-length = -1
`))
	if err == nil {
		t.Fatal("expected error for non-positive min-match-length")
	}
}
