package facet

import (
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func init() {
	// Views used by tests beyond the pre-seeded assoc view. All of
	// them use the reference driver unless a test namespace says
	// otherwise.
	RegisterDriver("full", func() Driver { return new(AssocDriver) })
	RegisterDriver("short", func() Driver { return new(AssocDriver) })
}

// Point and Box are the canonical example schema: two leaf fields,
// and a struct nesting one.
type Point struct {
	X int `facet:"assoc=field_x"`
	Y int `facet:"assoc=field_y"`
}

type Box struct {
	P Point `facet:"assoc=field_p"`
}

// Account declares two views with different tags for the same field.
type Account struct {
	Name   string `facet:"full=name,short=n"`
	Secret string `facet:"full=secret"`
}

// asSet compares assoc lists as unordered pair sets, since pair order
// within a blob is not part of the contract.
var asSet = cmpopts.SortSlices(func(a, b Pair) bool {
	return a.Tag < b.Tag
})

// diffBlob diffs two blobs, treating all assoc lists (including
// nested ones) as unordered.
func diffBlob(want, got any) string {
	return cmp.Diff(want, got, asSet)
}
