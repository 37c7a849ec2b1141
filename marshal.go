package facet

import "reflect"

// Marshal produces the blob representation of v under the named
// view.
//
// Marshal traverses v recursively. If an encountered value implements
// [Marshaler], Marshal calls MarshalFacet on it to produce its blob.
//
// Otherwise, struct values that declare at least one view marshal
// through the tag-directed walk: a fresh driver is resolved from the
// struct's namespace, and each declared field is visited in
// declaration order. A field is written iff it has a tag under the
// requested view and currently holds a non-zero value (or declares
// the keepzero option). The result is the driver's accumulator state
// after the last write; a struct whose type doesn't declare the
// requested view yields nil without any traversal.
//
// All other values — ints, strings, slices, maps, structs with no
// facet tags — pass through Marshal unchanged and become driver
// leaves. Pointers marshal as the value pointed to, with nil
// marshaling to nil.
//
// Marshal returns an error only for malformed schemas (bad tag
// syntax, unusable field kinds, recursive types). Missing views and
// missing drivers degrade silently per the package rules.
func Marshal(v any, view string) (any, error) {
	return marshalValue(reflect.ValueOf(v), view)
}

// Marshaler is the interface implemented by types that produce their
// own blob representation, bypassing the tag-directed walk.
type Marshaler interface {
	MarshalFacet(view string) (any, error)
}

var marshalerType = reflect.TypeFor[Marshaler]()

func marshalValue(v reflect.Value, view string) (any, error) {
	if !v.IsValid() {
		return nil, nil
	}
	if v.Kind() == reflect.Interface {
		if v.IsNil() {
			return nil, nil
		}
		v = v.Elem()
	}
	if m, ok := marshalerOf(v); ok {
		return m.MarshalFacet(view)
	}
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return nil, nil
		}
		v = v.Elem()
		if m, ok := marshalerOf(v); ok {
			return m.MarshalFacet(view)
		}
	}
	if v.Kind() != reflect.Struct {
		return v.Interface(), nil
	}

	info, err := typeInfoFor(v.Type())
	if err != nil {
		return nil, err
	}
	if len(info.Views) == 0 {
		// Not facet-capable, pass through as a leaf.
		return v.Interface(), nil
	}
	fieldMap := info.Views[view]
	if fieldMap == nil {
		return nil, nil
	}

	d := namespaceOf(v).driverFor(view)
	var blob any
	for _, f := range info.Fields {
		tag, ok := fieldMap[f.Name]
		if !ok {
			continue
		}
		fv := f.GetWithZero(v)
		if fv.IsZero() && !f.KeepZero {
			continue
		}
		rec, err := marshalValue(fv, view)
		if err != nil {
			return nil, err
		}
		blob = d.Write(tag, rec)
	}
	return blob, nil
}

// marshalerOf returns v's Marshaler implementation, if it has one. A
// pointer-receiver implementation is used when v is addressable.
func marshalerOf(v reflect.Value) (Marshaler, bool) {
	if v.Type().Implements(marshalerType) {
		if v.Kind() == reflect.Pointer && v.IsNil() {
			return nil, false
		}
		return v.Interface().(Marshaler), true
	}
	if v.CanAddr() && reflect.PointerTo(v.Type()).Implements(marshalerType) {
		return v.Addr().Interface().(Marshaler), true
	}
	return nil, false
}
