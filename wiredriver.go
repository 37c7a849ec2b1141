package facet

import (
	"fmt"
	"math"
	"slices"

	"github.com/facetlabs/facet/wire"
)

// WireDriver encodes (tag, value) pairs into a single self-contained
// byte slice, using [wire] framing.
//
// The blob starts with a byte order flag, followed by one
// length-prefixed record per write. Each record holds the tag, a kind
// byte and the value payload. Nested structs appear as records whose
// payload is a complete nested blob.
//
// Supported leaf values are booleans, integers, floats, strings and
// byte slices. Anything else is recorded as its string representation
// — the driver contract has no error path, so unrepresentable values
// degrade instead of failing.
type WireDriver struct {
	enc wire.Encoder
}

// Kind bytes identifying a record's payload.
const (
	wireNil    = '0' // no payload
	wireBool   = 'b' // uint8, 0 or 1
	wireInt    = 'x' // uint64, two's complement
	wireUint   = 't' // uint64
	wireFloat  = 'd' // uint64, IEEE 754 bits
	wireString = 's' // length-prefixed string
	wireBytes  = 'y' // length-prefixed bytes, including nested blobs
)

func (d *WireDriver) Write(tag string, value any) any {
	if len(d.enc.Out) == 0 {
		d.enc.Order = wire.NativeEndian
		d.enc.OrderFlag()
	}
	d.enc.Block(func() error {
		d.enc.String(tag)
		d.writeValue(value)
		return nil
	})
	return d.enc.Out
}

func (d *WireDriver) writeValue(value any) {
	e := &d.enc
	switch val := value.(type) {
	case nil:
		e.Uint8(wireNil)
	case bool:
		e.Uint8(wireBool)
		u := uint8(0)
		if val {
			u = 1
		}
		e.Uint8(u)
	case int:
		d.writeInt(int64(val))
	case int8:
		d.writeInt(int64(val))
	case int16:
		d.writeInt(int64(val))
	case int32:
		d.writeInt(int64(val))
	case int64:
		d.writeInt(val)
	case uint:
		d.writeUint(uint64(val))
	case uint8:
		d.writeUint(uint64(val))
	case uint16:
		d.writeUint(uint64(val))
	case uint32:
		d.writeUint(uint64(val))
	case uint64:
		d.writeUint(val)
	case float32:
		d.writeFloat(float64(val))
	case float64:
		d.writeFloat(val)
	case string:
		e.Uint8(wireString)
		e.String(val)
	case []byte:
		e.Uint8(wireBytes)
		e.Bytes(val)
	default:
		e.Uint8(wireString)
		e.String(fmt.Sprint(val))
	}
}

func (d *WireDriver) writeInt(i int64) {
	d.enc.Uint8(wireInt)
	d.enc.Uint64(uint64(i))
}

func (d *WireDriver) writeUint(u uint64) {
	d.enc.Uint8(wireUint)
	d.enc.Uint64(u)
}

func (d *WireDriver) writeFloat(f float64) {
	d.enc.Uint8(wireFloat)
	d.enc.Uint64(math.Float64bits(f))
}

// Read scans the blob for the first record with the given tag. A
// malformed blob reads as all tags absent, consistent with the
// package's silent degrade rules.
func (d *WireDriver) Read(tag string, blob any) (any, bool) {
	bs, ok := blob.([]byte)
	if !ok || len(bs) == 0 {
		return nil, false
	}
	dec := wire.Decoder{In: bs}
	if err := dec.OrderFlag(); err != nil {
		return nil, false
	}
	for dec.More() {
		rec, err := dec.Bytes()
		if err != nil {
			return nil, false
		}
		rd := wire.Decoder{Order: dec.Order, In: rec}
		rtag, err := rd.String()
		if err != nil {
			return nil, false
		}
		if rtag != tag {
			continue
		}
		return readValue(&rd)
	}
	return nil, false
}

func readValue(rd *wire.Decoder) (any, bool) {
	kind, err := rd.Uint8()
	if err != nil {
		return nil, false
	}
	switch kind {
	case wireNil:
		return nil, true
	case wireBool:
		u, err := rd.Uint8()
		if err != nil {
			return nil, false
		}
		return u != 0, true
	case wireInt:
		u, err := rd.Uint64()
		if err != nil {
			return nil, false
		}
		return int64(u), true
	case wireUint:
		u, err := rd.Uint64()
		if err != nil {
			return nil, false
		}
		return u, true
	case wireFloat:
		u, err := rd.Uint64()
		if err != nil {
			return nil, false
		}
		return math.Float64frombits(u), true
	case wireString:
		s, err := rd.String()
		if err != nil {
			return nil, false
		}
		return s, true
	case wireBytes:
		bs, err := rd.Bytes()
		if err != nil {
			return nil, false
		}
		return slices.Clone(bs), true
	}
	return nil, false
}
