package play

import "testing"

func TestNormalizeGameClock(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want string
	}{
		{"02:00", "2:00"},
		{"2:00", "2:00"},
		{"2:0", "2:00"},
		{"15:00", "15:00"},
		{"0:07", "0:07"},
		{"00:07", "0:07"},
		{" 12:34 ", "12:34"},
		{"", ""},
		{"halftime", "halftime"},
		{"1:23:45", "1:23:45"},
	}
	for _, tc := range cases {
		if got := NormalizeGameClock(tc.in); got != tc.want {
			t.Fatalf("NormalizeGameClock(%q)=%q, want=%q", tc.in, got, tc.want)
		}
	}
}

func TestNormalizeGameClock_VariantsCompareEqual(t *testing.T) {
	t.Parallel()

	if NormalizeGameClock("02:00") != NormalizeGameClock("2:00") {
		t.Fatal("expected zero-padded and bare minutes to normalize to the same value")
	}
}

func TestHasContextKey(t *testing.T) {
	t.Parallel()

	full := Play{Qtr: intPtr(1), Dwn: intPtr(3), YardsToGo: intPtr(2), Ydl100: intPtr(63)}
	if !full.HasContextKey() {
		t.Fatal("expected play with all four context fields to have a context key")
	}

	partial := full
	partial.Ydl100 = nil
	if partial.HasContextKey() {
		t.Fatal("expected play missing ydl_100 to have no context key")
	}
}

func TestKey(t *testing.T) {
	t.Parallel()

	p := Play{Esbid: 401547417, PlayID: 105}
	key := p.Key()
	if key.Esbid != 401547417 || key.PlayID != 105 {
		t.Fatalf("unexpected key %+v", key)
	}
}

func intPtr(v int) *int { return &v }
