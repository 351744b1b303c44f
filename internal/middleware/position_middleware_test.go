package middleware

import "testing"

func TestPositionAllowedExactMatch(t *testing.T) {
	allowed := []string{"President", "General Secretary", "Treasurer"}

	cases := []struct {
		position string
		want     bool
	}{
		{"President", true},
		{"Treasurer", true},
		{"General Secretary", true},
		// Substring of an allowed name must not pass.
		{"Vice President", false},
		{"Deputy Secretary", false},
		{"president", false},
		{"Leader", false},
		{"", false},
	}
	for _, tc := range cases {
		if got := positionAllowed(tc.position, allowed); got != tc.want {
			t.Errorf("positionAllowed(%q) = %v, want %v", tc.position, got, tc.want)
		}
	}
}
