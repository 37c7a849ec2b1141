package facet

import "reflect"

// Unmarshal populates the value pointed to by v from blob, under the
// named view. If v is nil or not a pointer, Unmarshal returns a
// [TypeError].
//
// Generally, Unmarshal applies the inverse of the rules used by
// [Marshal]. Struct fields with a tag under the requested view are
// read from the blob through the driver; a tag the blob doesn't
// contain leaves the corresponding field untouched, and fields with
// no tag under the view are never touched at all — Unmarshal only
// ever adds data to the target, it never clears or defaults fields.
// A struct whose type doesn't declare the requested view is returned
// unmodified.
//
// If an encountered value implements [Unmarshaler], Unmarshal calls
// UnmarshalFacet to unmarshal it. Types implementing [Unmarshaler]
// must do so with a pointer receiver; a value-receiver implementation
// results in a [TypeError].
//
// Unmarshal traverses nested facet-capable struct fields recursively,
// treating the raw value read from the driver as a nested blob. All
// other raw values are assigned to their field directly, converting
// between convertible types (so e.g. a driver may deliver float64 for
// an int field). An incompatible raw value is a [TypeError], and
// leaves the target partially populated.
func Unmarshal(blob any, view string, v any) error {
	if v == nil {
		return typeErr(nil, "can't unmarshal into nil interface")
	}
	val := reflect.ValueOf(v)
	if val.Kind() != reflect.Pointer {
		return typeErr(val.Type(), "can't unmarshal into a non-pointer")
	}
	if val.IsNil() {
		return typeErr(val.Type(), "can't unmarshal into a nil pointer")
	}
	return unmarshalValue(blob, view, val.Elem())
}

// UnmarshalAs unmarshals blob into a fresh zero value of T under the
// named view.
func UnmarshalAs[T any](blob any, view string) (T, error) {
	var ret T
	err := Unmarshal(blob, view, &ret)
	return ret, err
}

// Unmarshaler is the interface implemented by types that populate
// themselves from a blob, bypassing the tag-directed walk.
//
// UnmarshalFacet must have a pointer receiver. If Unmarshal
// encounters an UnmarshalFacet method with a value receiver, it
// returns a [TypeError].
type Unmarshaler interface {
	UnmarshalFacet(blob any, view string) error
}

var unmarshalerType = reflect.TypeFor[Unmarshaler]()

func unmarshalValue(blob any, view string, v reflect.Value) error {
	for {
		t := v.Type()
		if t.Implements(unmarshalerType) {
			// A non-pointer implementation would silently discard
			// the results of the UnmarshalFacet call.
			if t.Kind() != reflect.Pointer {
				return typeErr(t, "refusing to use facet.Unmarshaler implementation with value receiver, Unmarshalers must use pointer receivers")
			}
			if v.IsNil() {
				v.Set(reflect.New(t.Elem()))
			}
			return v.Interface().(Unmarshaler).UnmarshalFacet(blob, view)
		}
		if t.Kind() != reflect.Pointer {
			if reflect.PointerTo(t).Implements(unmarshalerType) {
				return v.Addr().Interface().(Unmarshaler).UnmarshalFacet(blob, view)
			}
			break
		}
		if v.IsNil() {
			v.Set(reflect.New(t.Elem()))
		}
		v = v.Elem()
	}

	if v.Kind() != reflect.Struct {
		return setLeaf(v, blob)
	}

	info, err := typeInfoFor(v.Type())
	if err != nil {
		return err
	}
	if len(info.Views) == 0 {
		// Not facet-capable, the blob is the value itself.
		return setLeaf(v, blob)
	}
	fieldMap := info.Views[view]
	if fieldMap == nil {
		return nil
	}

	d := namespaceOf(v).driverFor(view)
	for _, f := range info.Fields {
		tag, ok := fieldMap[f.Name]
		if !ok {
			continue
		}
		raw, ok := d.Read(tag, blob)
		if !ok {
			continue
		}
		if err := unmarshalValue(raw, view, f.GetWithAlloc(v)); err != nil {
			return err
		}
	}
	return nil
}

// setLeaf assigns a raw driver value to a settable target, converting
// between convertible types. A nil raw value leaves the target alone.
func setLeaf(v reflect.Value, raw any) error {
	if raw == nil {
		return nil
	}
	rv := reflect.ValueOf(raw)
	if rv.Type().AssignableTo(v.Type()) {
		v.Set(rv)
		return nil
	}
	if rv.Type().ConvertibleTo(v.Type()) {
		v.Set(rv.Convert(v.Type()))
		return nil
	}
	return typeErr(v.Type(), "can't use %s value as %s", rv.Type(), v.Type())
}
