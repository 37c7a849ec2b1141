package facet

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestUnmarshal(t *testing.T) {
	tests := []struct {
		name string
		blob any
		view string
		into any
		want any
	}{
		{
			name: "point",
			blob: List{{"field_x", 1}, {"field_y", 2}},
			view: "assoc",
			into: &Point{},
			want: &Point{X: 1, Y: 2},
		},
		{
			name: "partial blob leaves field unset",
			blob: List{{"field_x", 1}},
			view: "assoc",
			into: &Point{},
			want: &Point{X: 1},
		},
		{
			name: "absent tag preserves existing value",
			blob: List{{"field_x", 1}},
			view: "assoc",
			into: &Point{X: 9, Y: 8},
			want: &Point{X: 1, Y: 8},
		},
		{
			name: "unknown view leaves instance unmodified",
			blob: List{{"field_x", 1}},
			view: "nonesuch",
			into: &Point{X: 9},
			want: &Point{X: 9},
		},
		{
			name: "nested blob populates nested struct",
			blob: List{{"field_p", List{{"field_x", 1}, {"field_y", 2}}}},
			view: "assoc",
			into: &Box{},
			want: &Box{P: Point{X: 1, Y: 2}},
		},
		{
			name: "convertible leaf value",
			blob: List{{"field_x", int32(7)}},
			view: "assoc",
			into: &Point{},
			want: &Point{X: 7},
		},
		{
			name: "identity passthrough into leaf target",
			blob: 42,
			view: "assoc",
			into: new(int),
			want: ptrTo(42),
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if err := Unmarshal(tc.blob, tc.view, tc.into); err != nil {
				t.Fatalf("Unmarshal(%v, %q): %v", tc.blob, tc.view, err)
			}
			if diff := cmp.Diff(tc.want, tc.into); diff != "" {
				t.Errorf("Unmarshal(%v, %q) wrong result (-want+got):\n%s", tc.blob, tc.view, diff)
			}
		})
	}
}

func ptrTo[T any](v T) *T { return &v }

func TestUnmarshalAs(t *testing.T) {
	got, err := UnmarshalAs[Point](List{{"field_x", 1}, {"field_y", 2}}, "assoc")
	if err != nil {
		t.Fatal(err)
	}
	if want := (Point{X: 1, Y: 2}); got != want {
		t.Errorf("UnmarshalAs got %+v, want %+v", got, want)
	}
}

func TestRoundTrip(t *testing.T) {
	orig := Box{P: Point{X: 3, Y: 4}}
	blob, err := Marshal(orig, "assoc")
	if err != nil {
		t.Fatal(err)
	}
	got, err := UnmarshalAs[Box](blob, "assoc")
	if err != nil {
		t.Fatal(err)
	}
	if got != orig {
		t.Errorf("round trip got %+v, want %+v", got, orig)
	}
}

func TestUnmarshalBadTarget(t *testing.T) {
	if err := Unmarshal(List{}, "assoc", nil); err == nil {
		t.Error("Unmarshal into nil did not error")
	}
	if err := Unmarshal(List{}, "assoc", Point{}); err == nil {
		t.Error("Unmarshal into non-pointer did not error")
	}
	if err := Unmarshal(List{}, "assoc", (*Point)(nil)); err == nil {
		t.Error("Unmarshal into nil pointer did not error")
	}
}

func TestUnmarshalTypeMismatch(t *testing.T) {
	var p Point
	err := Unmarshal(List{{"field_x", "not an int"}}, "assoc", &p)
	if err == nil {
		t.Fatal("Unmarshal of string into int field did not error")
	}
	var te TypeError
	if !errors.As(err, &te) {
		t.Errorf("got %T, want TypeError", err)
	}
}

type titled struct {
	Title string `facet:"assoc=title"`
}

func (ti *titled) UnmarshalFacet(blob any, view string) error {
	ti.Title = "via unmarshaler"
	return nil
}

type titledVal struct{}

func (titledVal) UnmarshalFacet(blob any, view string) error { return nil }

func TestUnmarshalerOverride(t *testing.T) {
	var ti titled
	if err := Unmarshal(List{{"title", "ignored"}}, "assoc", &ti); err != nil {
		t.Fatal(err)
	}
	if want := "via unmarshaler"; ti.Title != want {
		t.Errorf("UnmarshalFacet not used: got %q, want %q", ti.Title, want)
	}

	var tv titledVal
	if err := Unmarshal(List{}, "assoc", &tv); err == nil {
		t.Error("value-receiver Unmarshaler was not refused")
	}
}
