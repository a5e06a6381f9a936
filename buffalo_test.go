package buffalo

import (
	"testing"
)

func TestLocationSnippet(t *testing.T) {
	loc := Location{
		Buffer: "18 + $2 * 4",
		Begin:  5,
		End:    7,
	}

	if got, want := loc.Snippet(3), " + $2 * "; got != want {
		t.Fatalf("want %q, got %q", want, got)
	}
	if got, want := loc.Snippet(100), "18 + $2 * 4"; got != want {
		t.Fatalf("padding must clamp to the buffer, want %q, got %q", want, got)
	}
	if got := loc.Len(); got != 2 {
		t.Fatalf("want length 2, got %v", got)
	}
}

func TestLocationAnnotate(t *testing.T) {
	loc := Location{
		Buffer: "18 + $2 * 4",
		Begin:  5,
		End:    7,
	}

	want := "\t + $2 * \n\t   ^~~"
	if got := loc.Annotate(3); got != want {
		t.Fatalf("want %q, got %q", want, got)
	}
}

func TestZeroWidthLocation(t *testing.T) {
	loc := Location{
		Buffer: "32 +",
		Begin:  4,
		End:    4,
	}

	if got := loc.Len(); got != 0 {
		t.Fatalf("want a zero-width location, got length %v", got)
	}
	want := "\t32 +\n\t    ^"
	if got := loc.Annotate(10); got != want {
		t.Fatalf("want %q, got %q", want, got)
	}
}
