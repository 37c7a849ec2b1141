package facet

// A Pair is one (tag, value) association in an association-list
// blob. Values of nested structs are themselves [List] values.
type Pair struct {
	Tag   string
	Value any
}

// A List is the blob produced by [AssocDriver]: an ordered collection
// of (tag, value) pairs.
type List []Pair

// Get returns the value paired with tag, using the first match.
func (l List) Get(tag string) (any, bool) {
	for _, p := range l {
		if p.Tag == tag {
			return p.Value, true
		}
	}
	return nil, false
}

// AssocDriver is the reference driver. It accumulates writes by
// prepending to an association list, and reads by associative
// lookup. It is registered in the default namespace under the view
// name "assoc".
//
// The assoc blob is a structural contract, not a wire format: values
// are held as-is, with whatever representation the host program gave
// them.
type AssocDriver struct {
	result List
}

func (d *AssocDriver) Write(tag string, value any) any {
	d.result = append(List{{tag, value}}, d.result...)
	return d.result
}

func (d *AssocDriver) Read(tag string, blob any) (any, bool) {
	l, ok := blob.(List)
	if !ok {
		return nil, false
	}
	return l.Get(tag)
}
