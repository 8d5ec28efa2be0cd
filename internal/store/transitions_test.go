package store

import "testing"

func TestCanonical(t *testing.T) {
	cases := []struct {
		action string
		from   string
		want   bool
	}{
		{"call", "waiting", true},
		{"call", "called", false},
		{"call", "completed", false},
		{"recall", "called", true},
		{"recall", "waiting", false},
		{"complete", "called", true},
		{"complete", "waiting", false},
		{"revert", "called", true},
		{"revert", "completed", true},
		{"revert", "waiting", false},
		{"cancel", "waiting", true},
		{"cancel", "called", true},
		{"cancel", "completed", false},
		{"unknown", "waiting", false},
	}

	for _, tt := range cases {
		if got := Canonical(tt.action, tt.from); got != tt.want {
			t.Fatalf("Canonical(%q, %q)=%v, want %v", tt.action, tt.from, got, tt.want)
		}
	}
}
