package play

import "testing"

func TestCanonicalTeam(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want string
	}{
		{"ARZ", "ARI"},
		{"BLT", "BAL"},
		{"CLV", "CLE"},
		{"HST", "HOU"},
		{"JAC", "JAX"},
		{"LA", "LAR"},
		{"OAK", "LV"},
		{"SD", "LAC"},
		{"SL", "LAR"},
		{"STL", "LAR"},
		{"WSH", "WAS"},
		{"KC", "KC"},
		{"kc", "KC"},
		{" ne ", "NE"},
	}
	for _, tc := range cases {
		if got := CanonicalTeam(tc.in); got != tc.want {
			t.Fatalf("CanonicalTeam(%q)=%q, want=%q", tc.in, got, tc.want)
		}
	}
}

func TestSameTeam(t *testing.T) {
	t.Parallel()

	if !SameTeam("STL", "LAR") {
		t.Fatal("expected STL and LAR to compare equal")
	}
	if !SameTeam("la", "LAR") {
		t.Fatal("expected LA and LAR to compare equal")
	}
	if SameTeam("KC", "NYJ") {
		t.Fatal("expected KC and NYJ to differ")
	}
}
