package source

import "testing"

func TestLocationString(t *testing.T) {
	cases := []struct {
		name string
		loc  Location
		want string
	}{
		{
			name: "full range",
			loc:  NewLocation("t.q", 1, 2, 3, 4),
			want: "t.q:1:2..3:4",
		},
		{
			name: "collapses to point",
			loc:  NewLocation("t.q", 5, 7, 5, 7),
			want: "t.q:5:7",
		},
		{
			name: "line only",
			loc:  NewLocation("t.q", 3, 0, 3, 0),
			want: "t.q:3",
		},
		{
			name: "line span without columns",
			loc:  NewLocation("t.q", 3, 0, 6, 0),
			want: "t.q:3..6",
		},
		{
			name: "missing last bound",
			loc:  NewLocation("t.q", 2, 9, 0, 0),
			want: "t.q:2:9",
		},
		{
			name: "filename only",
			loc:  NewLocation("t.q", 0, 0, 0, 0),
			want: "t.q",
		},
		{
			name: "fully unset",
			loc:  Location{},
			want: "<unknown>",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.loc.String(); got != tc.want {
				t.Errorf("String() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestExpandToIncludeInitializesUnsetBounds(t *testing.T) {
	loc := NewLocation("t.q", 0, 0, 0, 0)
	loc.ExpandToInclude(4, 2)

	want := NewLocation("t.q", 4, 2, 4, 2)
	if loc != want {
		t.Fatalf("expand on unset location = %+v, want %+v", loc, want)
	}
}

func TestExpandToIncludeIsIdempotent(t *testing.T) {
	loc := NewLocation("t.q", 2, 3, 2, 3)
	loc.ExpandToInclude(5, 1)
	once := loc
	loc.ExpandToInclude(5, 1)

	if loc != once {
		t.Fatalf("second expand changed range: %+v vs %+v", loc, once)
	}
}

func TestExpandToIncludeIsMonotonic(t *testing.T) {
	loc := NewLocation("t.q", 3, 5, 3, 9)

	points := []struct{ line, col uint32 }{
		{3, 7},  // уже внутри
		{1, 10}, // раньше первой границы
		{6, 2},  // позже последней
		{1, 4},  // ещё раньше по колонке
	}
	for _, p := range points {
		before := loc
		loc.ExpandToInclude(p.line, p.col)

		if loc.FirstLine > before.FirstLine ||
			(loc.FirstLine == before.FirstLine && loc.FirstColumn > before.FirstColumn) {
			t.Fatalf("first bound moved forward after (%d,%d): %+v -> %+v", p.line, p.col, before, loc)
		}
		if loc.LastLine < before.LastLine ||
			(loc.LastLine == before.LastLine && loc.LastColumn < before.LastColumn) {
			t.Fatalf("last bound moved backward after (%d,%d): %+v -> %+v", p.line, p.col, before, loc)
		}
	}

	want := NewLocation("t.q", 1, 4, 6, 2)
	if loc != want {
		t.Fatalf("final range = %+v, want %+v", loc, want)
	}
}

func TestCoverMergesRanges(t *testing.T) {
	a := NewLocation("t.q", 2, 1, 2, 8)
	b := NewLocation("t.q", 4, 3, 5, 1)

	got := a.Cover(b)
	want := NewLocation("t.q", 2, 1, 5, 1)
	if got != want {
		t.Fatalf("Cover = %+v, want %+v", got, want)
	}

	// разные файлы не объединяются
	other := NewLocation("u.q", 1, 1, 9, 9)
	if got := a.Cover(other); got != a {
		t.Fatalf("Cover across files = %+v, want %+v", got, a)
	}
}
