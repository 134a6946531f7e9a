package pointer

import "testing"

func TestRoundTrip(t *testing.T) {
	tests := []struct {
		name     string
		segments []string
		want     string
	}{
		{
			name:     "root",
			segments: nil,
			want:     "",
		},
		{
			name:     "simple path",
			segments: []string{"phenotypicFeatures", "0", "modifiers", "2"},
			want:     "/phenotypicFeatures/0/modifiers/2",
		},
		{
			name:     "escapes tilde and slash",
			segments: []string{"a/b", "c~d"},
			want:     "/a~1b/c~0d",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New(tt.segments...)
			if got := p.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}

			reparsed := Parse(p.String())
			if reparsed.String() != p.String() {
				t.Errorf("round trip mismatch: %q != %q", reparsed.String(), p.String())
			}
		})
	}
}

func TestDownUp(t *testing.T) {
	p := Root().Down("diseases").DownIndex(0).Down("term")
	if got, want := p.String(), "/diseases/0/term"; got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}

	up := p.Up()
	if got, want := up.String(), "/diseases/0"; got != want {
		t.Fatalf("Up().String() = %q, want %q", got, want)
	}

	if got := Root().Up(); !got.IsRoot() {
		t.Fatalf("Up() at root should be a no-op, got %q", got.String())
	}
}

func TestTipAndSegments(t *testing.T) {
	p := New("phenotypicFeatures", "0", "modifiers", "2")

	if got, want := p.Tip(), "2"; got != want {
		t.Errorf("Tip() = %q, want %q", got, want)
	}

	segs := p.Segments()
	want := []string{"phenotypicFeatures", "0", "modifiers", "2"}
	if len(segs) != len(want) {
		t.Fatalf("Segments() = %v, want %v", segs, want)
	}
	for i := range want {
		if segs[i] != want[i] {
			t.Errorf("Segments()[%d] = %q, want %q", i, segs[i], want[i])
		}
	}

	if Root().Tip() != "" {
		t.Errorf("Tip() at root should be empty")
	}
}

func TestContains(t *testing.T) {
	p := New("members", "0", "phenotypicFeatures", "0")
	if !p.Contains("members") {
		t.Errorf("Contains(%q) = false, want true", "members")
	}
	if p.Contains("relatives") {
		t.Errorf("Contains(%q) = true, want false", "relatives")
	}
}

func TestEqual(t *testing.T) {
	a := New("diseases", "0")
	b := Parse("/diseases/0")
	if !a.Equal(b) {
		t.Errorf("%q and %q should be equal", a.String(), b.String())
	}
}
