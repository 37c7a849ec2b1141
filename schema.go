package facet

import (
	"errors"
	"iter"
	"reflect"
	"slices"
	"strings"

	"github.com/creachadair/mds/mapset"
)

// fieldInfo is the information about a struct field that needs to be
// marshaled/unmarshaled.
type fieldInfo struct {
	Name  string
	Index [][]int
	Type  reflect.Type

	// Tags maps a view name to the tag this field is exposed under
	// within that view. A field with no entry for a view is invisible
	// to that view.
	Tags map[string]string

	// KeepZero is whether to marshal the field's zero value. By
	// default a zero value is presumed to be an unset optional value
	// and skipped.
	KeepZero bool
}

// GetWithZero loads the struct field from structVal. If loading
// requires traversing a nil pointer into an embedded struct,
// GetWithZero returns a non-settable zero value of the field.
func (f *fieldInfo) GetWithZero(structVal reflect.Value) reflect.Value {
	v := structVal
	for i, hop := range f.Index {
		if i > 0 {
			if v.IsNil() {
				return reflect.Zero(f.Type)
			}
			v = v.Elem()
		}
		v = v.FieldByIndex(hop)
	}
	return v
}

// GetWithAlloc loads the struct field from structVal. If loading
// requires traversing a nil pointer into an embedded struct,
// GetWithAlloc allocates zero values appropriately. The returned
// [reflect.Value] is settable.
func (f *fieldInfo) GetWithAlloc(structVal reflect.Value) reflect.Value {
	v := structVal
	for i, hop := range f.Index {
		if i > 0 {
			if v.IsNil() {
				v.Set(reflect.New(v.Type().Elem()))
			}
			v = v.Elem()
		}
		v = v.FieldByIndex(hop)
	}
	return v
}

// typeInfo is the information about a struct type relevant to
// marshaling/unmarshaling. It is built once per type and immutable
// afterwards.
type typeInfo struct {
	// Name is the type's name, for use in diagnostics.
	Name string
	// Type is the struct type itself.
	Type reflect.Type

	// Fields is the information about each declared field that
	// participates in at least one view, in declaration order.
	// Embedded struct fields are flattened in place.
	Fields []*fieldInfo

	// Views maps a view name to that view's field-name → tag lookup
	// table, the transposition of the per-field Tags declarations.
	// Iteration always runs over Fields; Views is a lookup table
	// only.
	Views map[string]map[string]string
}

// badKinds is the set of field kinds that no driver can be handed a
// value of.
var badKinds = mapset.New(
	reflect.Chan,
	reflect.Func,
	reflect.UnsafePointer,
)

var typeInfos cache[*typeInfo]

// typeInfoFor returns the facet schema for t, building and caching it
// on first use. t must be a struct type.
func typeInfoFor(t reflect.Type) (ret *typeInfo, err error) {
	if ret, err := typeInfos.Get(t); err == nil {
		return ret, nil
	} else if !errors.Is(err, errNotFound) {
		return nil, err
	}
	// Note, defer captures the type value in case it gets messed with
	// below.
	defer func(t reflect.Type) {
		if err != nil {
			typeInfos.SetErr(t, err)
		} else {
			typeInfos.Set(t, ret)
		}
	}(t)

	if t.Kind() != reflect.Struct {
		return nil, typeErr(t, "not a struct")
	}

	ret = &typeInfo{
		Name: t.String(),
		Type: t,
	}

	for field := range structFields(t, nil) {
		if !field.IsExported() {
			continue
		}

		tags, keepZero, err := parseFieldTag(t, field)
		if err != nil {
			return nil, err
		}
		if len(tags) == 0 {
			continue
		}
		if badKinds.Has(field.Type.Kind()) {
			return nil, typeErr(t, "field %s has no facet mapping for kind %s", field.Name, field.Type.Kind())
		}

		if err := checkNested(field.Type); err != nil {
			return nil, typeErr(t, "field %s: %w", field.Name, err)
		}

		ret.Fields = append(ret.Fields, &fieldInfo{
			Name:     field.Name,
			Type:     field.Type,
			Index:    allocSteps(t, field.Index),
			Tags:     tags,
			KeepZero: keepZero,
		})
	}

	ret.Views = buildViewMap(ret.Fields)
	return ret, nil
}

// buildViewMap transposes per-field (view, tag) declarations into
// per-view field-name → tag lookup tables. Views are created on
// demand; there are no error cases.
func buildViewMap(fields []*fieldInfo) map[string]map[string]string {
	ret := map[string]map[string]string{}
	for _, f := range fields {
		for view, tag := range f.Tags {
			bucket := ret[view]
			if bucket == nil {
				bucket = map[string]string{}
				ret[view] = bucket
			}
			bucket[f.Name] = tag
		}
	}
	return ret
}

// checkNested validates the schema of a struct-typed field eagerly,
// so that a malformed or recursive nested type is reported when its
// container is first used, not partway through a marshal.
func checkNested(t reflect.Type) error {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil
	}
	_, err := typeInfoFor(t)
	return err
}

// parseFieldTag returns the view → tag declarations contained in
// field's "facet" struct tag, and whether the field requested zero
// value encoding.
//
// The tag syntax is a comma-separated list of view=tag pairs, plus
// the optional flag "keepzero". A bare "-" (or an absent tag) opts
// the field out of all views.
func parseFieldTag(t reflect.Type, field reflect.StructField) (tags map[string]string, keepZero bool, err error) {
	raw := field.Tag.Get("facet")
	if raw == "" || raw == "-" {
		return nil, false, nil
	}
	tags = map[string]string{}
	for _, part := range strings.Split(raw, ",") {
		if part == "keepzero" {
			keepZero = true
			continue
		}
		view, tag, ok := strings.Cut(part, "=")
		if !ok || view == "" || tag == "" {
			return nil, false, typeErr(t, "field %s has malformed facet tag entry %q", field.Name, part)
		}
		tags[view] = tag
	}
	return tags, keepZero, nil
}

// Views returns the names of the views declared by v's type, sorted.
// Non-struct values declare no views.
func Views(v any) ([]string, error) {
	t := derefType(reflect.TypeOf(v))
	if t == nil || t.Kind() != reflect.Struct {
		return nil, nil
	}
	info, err := typeInfoFor(t)
	if err != nil {
		return nil, err
	}
	ret := make([]string, 0, len(info.Views))
	for view := range info.Views {
		ret = append(ret, view)
	}
	slices.Sort(ret)
	return ret, nil
}

// ViewTags returns a copy of the field-name → tag table for the given
// view of v's type, or nil if v's type doesn't declare the view.
func ViewTags(v any, view string) (map[string]string, error) {
	t := derefType(reflect.TypeOf(v))
	if t == nil || t.Kind() != reflect.Struct {
		return nil, nil
	}
	info, err := typeInfoFor(t)
	if err != nil {
		return nil, err
	}
	bucket := info.Views[view]
	if bucket == nil {
		return nil, nil
	}
	ret := make(map[string]string, len(bucket))
	for field, tag := range bucket {
		ret[field] = tag
	}
	return ret, nil
}

func derefType(t reflect.Type) reflect.Type {
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}

// allocSteps partitions a multi-hop traversal of struct fields into
// segments that end at either the final value, or at a struct pointer
// that might be nil.
//
// This partition is used by [fieldInfo.GetWithZero] and
// [fieldInfo.GetWithAlloc] to load embedded struct fields that
// require traversing a nil pointer.
func allocSteps(t reflect.Type, idx []int) [][]int {
	var ret [][]int
	prev := 0
	t = t.Field(idx[0]).Type
	for i := 1; i < len(idx); i++ {
		if t.Kind() == reflect.Pointer && t.Elem().Kind() == reflect.Struct {
			// Hop through a struct pointer that might be nil, cut.
			ret = append(ret, idx[prev:i])
			prev = i
			t = t.Elem()
		}
		t = t.Field(idx[i]).Type
	}
	ret = append(ret, idx[prev:])
	return ret
}

// structFields iterates over t's fields in declaration order,
// flattening anonymous embedded structs in place.
func structFields(t reflect.Type, idx []int) iter.Seq[reflect.StructField] {
	return func(yield func(reflect.StructField) bool) {
		for i := range t.NumField() {
			f := t.Field(i)
			idx = append(idx, i)
			if f.Anonymous {
				at := f.Type
				if at.Kind() == reflect.Pointer {
					at = at.Elem()
				}
				if at.Kind() == reflect.Struct {
					for af := range structFields(at, idx) {
						if !yield(af) {
							return
						}
					}
					idx = idx[:len(idx)-1]
					continue
				}
			}
			f.Index = append([]int(nil), idx...)
			if !yield(f) {
				return
			}
			idx = idx[:len(idx)-1]
		}
	}
}
