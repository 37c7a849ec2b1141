package facet

import "reflect"

// A Driver translates between (tag, value) pairs and a concrete blob
// encoding.
//
// A driver is stateful: Write records pairs into the driver's private
// accumulator. The engine creates a fresh driver instance for every
// marshal and unmarshal invocation, including each recursive descent
// into a nested struct, so accumulator state is never shared between
// calls.
//
// Drivers must confine their side effects to their own accumulator;
// in particular they must not mutate the values being marshaled.
type Driver interface {
	// Write records one (tag, value) association and returns the
	// accumulator's current state. The value is already in its final
	// representation: nested structs arrive as nested blobs, never as
	// raw composites.
	Write(tag string, value any) any

	// Read extracts the raw value associated with tag from blob. The
	// second return value reports whether the tag was present.
	Read(tag string, blob any) (any, bool)
}

// NopDriver is the fallback driver for views with no registered
// driver. It discards all writes and reads every tag as absent, so
// misconfigured views degrade to missing data rather than errors.
type NopDriver struct{}

func (NopDriver) Write(tag string, value any) any { return nil }

func (NopDriver) Read(tag string, blob any) (any, bool) { return nil, false }

// A Namespace maps view names to driver constructors. Independent
// type hierarchies can use private namespaces so that the same view
// name selects different encodings without colliding in the global
// table.
//
// Namespaces are not synchronized: complete all registration during
// program initialization, before any concurrent marshal or unmarshal
// calls.
type Namespace struct {
	drivers map[string]func() Driver
}

// NewNamespace returns an empty namespace.
func NewNamespace() *Namespace {
	return &Namespace{drivers: map[string]func() Driver{}}
}

// RegisterDriver registers newDriver as the driver constructor for
// the given view, replacing any previous registration.
func (ns *Namespace) RegisterDriver(view string, newDriver func() Driver) {
	ns.drivers[view] = newDriver
}

// Driver returns the registered driver constructor for view. It is
// the probe for callers that want to detect a missing driver instead
// of relying on the silent no-op fallback.
func (ns *Namespace) Driver(view string) (newDriver func() Driver, ok bool) {
	newDriver, ok = ns.drivers[view]
	return newDriver, ok
}

// driverFor instantiates a fresh driver for view, falling back to
// [NopDriver] if the view has no registration.
func (ns *Namespace) driverFor(view string) Driver {
	if newDriver, ok := ns.drivers[view]; ok {
		return newDriver()
	}
	return NopDriver{}
}

// global is the default namespace, shared by every type that doesn't
// provide its own via [Namespacer].
var global = func() *Namespace {
	ns := NewNamespace()
	ns.RegisterDriver("assoc", func() Driver { return new(AssocDriver) })
	return ns
}()

// RegisterDriver registers a driver constructor for view in the
// default namespace.
func RegisterDriver(view string, newDriver func() Driver) {
	global.RegisterDriver(view, newDriver)
}

// Namespacer is implemented by types that resolve drivers in a
// private namespace instead of the default one. It is typically
// provided by embedding a marker type, which extends the namespace to
// every struct that embeds it.
type Namespacer interface {
	FacetNamespace() *Namespace
}

// namespaceOf returns the namespace v's type belongs to.
func namespaceOf(v reflect.Value) *Namespace {
	if v.IsValid() && v.CanInterface() {
		if n, ok := v.Interface().(Namespacer); ok {
			return n.FacetNamespace()
		}
	}
	return global
}
