package facet

import (
	"errors"
	"fmt"
	"reflect"
	"sync"
)

var errNotFound = errors.New("not found in cache")

// cache is a concurrency-safe map from reflect.Type to V, used to
// memoize per-type schema information.
//
// The first Get for a type reserves a placeholder entry. A Get that
// finds the placeholder means the same type is being processed higher
// up the stack, i.e. the type is recursive, which the engine does not
// support.
type cache[V any] struct {
	m sync.Map
}

func (c *cache[V]) Get(t reflect.Type) (V, error) {
	var zero V
	ent, loaded := c.m.LoadOrStore(t, nil)
	if !loaded {
		return zero, errNotFound
	}
	if ent == nil {
		return zero, typeErr(t, "recursive type")
	}
	switch v := ent.(type) {
	case V:
		return v, nil
	case error:
		return zero, v
	}
	panic(fmt.Sprintf("mystery value %v (%T) in cache", ent, ent))
}

func (c *cache[V]) Set(t reflect.Type, val V) {
	c.m.CompareAndSwap(t, nil, val)
}

func (c *cache[V]) SetErr(t reflect.Type, err error) {
	c.m.CompareAndSwap(t, nil, err)
}
