// Package facet marshals and unmarshals structs through named views,
// without per-type conversion code.
//
// A view is a serialization profile. Struct fields declare, per view,
// the external tag they are exposed under:
//
//	type Point struct {
//	    X int `facet:"assoc=field_x"`
//	    Y int `facet:"assoc=field_y"`
//	}
//
// [Marshal] walks the declared fields of a struct in declaration
// order, and for each field that has a tag under the requested view
// and currently holds a non-zero value, hands the (tag, value) pair
// to a driver. The driver owns the external representation (the
// "blob"): the engine never assembles output itself, it returns
// whatever the driver's accumulator holds after the last write.
// [Unmarshal] runs the same walk in reverse, asking the driver for
// each tag and leaving fields whose tag is absent untouched.
//
// Fields whose type is itself a facet-capable struct are recursed
// into: their value becomes a nested blob, produced by a fresh driver
// instance. All other values pass through the engine unchanged and
// are the driver's problem to represent.
//
// Drivers are registered per view name in a [Namespace]. The default
// namespace is package-global and comes pre-seeded with the reference
// association-list driver under the view name "assoc". Independent
// type hierarchies can opt into a private namespace by implementing
// [Namespacer], so that the same view name can mean different
// encodings in different parts of a program.
//
// Misconfiguration degrades silently rather than failing: an unknown
// view marshals to an empty blob, a view with no registered driver
// falls back to a no-op driver, and a blob missing a tag simply
// leaves the corresponding field alone. Callers that want to detect
// a missing driver ahead of time can probe with [Namespace.Driver].
//
// All driver and namespace registration must be completed before
// concurrent use begins, typically from init functions or early in
// main. After that, marshal and unmarshal calls are safe to run
// concurrently: per-type metadata is immutable once built, and every
// call gets its own driver instance.
package facet
