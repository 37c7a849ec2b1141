package wire

import (
	"errors"
	"fmt"
)

// ErrShortBlob is returned when a read runs past the end of the
// input.
var ErrShortBlob = errors.New("truncated wire blob")

// A Decoder provides utilities to read a facet wire blob from a byte
// slice.
type Decoder struct {
	// Order is the byte order to use when reading multi-byte values.
	// [Decoder.OrderFlag] sets it from the blob's flag byte.
	Order ByteOrder
	// In is the input to read.
	In []byte

	pos int
}

// OrderFlag reads the blob's byte order flag byte and sets
// [Decoder.Order] accordingly.
func (d *Decoder) OrderFlag() error {
	bs, err := d.Read(1)
	if err != nil {
		return err
	}
	ord, err := OrderForFlag(bs[0])
	if err != nil {
		return err
	}
	d.Order = ord
	return nil
}

// More reports whether any input remains.
func (d *Decoder) More() bool {
	return d.pos < len(d.In)
}

// Read reads n bytes, with no framing. The returned slice aliases
// the input.
func (d *Decoder) Read(n int) ([]byte, error) {
	if n < 0 || n > len(d.In)-d.pos {
		return nil, fmt.Errorf("%w: need %d bytes, have %d", ErrShortBlob, n, len(d.In)-d.pos)
	}
	bs := d.In[d.pos : d.pos+n]
	d.pos += n
	return bs, nil
}

// Bytes reads a length-prefixed byte string.
func (d *Decoder) Bytes() ([]byte, error) {
	ln, err := d.Uint32()
	if err != nil {
		return nil, err
	}
	return d.Read(int(ln))
}

// String reads a length-prefixed string.
func (d *Decoder) String() (string, error) {
	bs, err := d.Bytes()
	if err != nil {
		return "", err
	}
	return string(bs), nil
}

// Uint8 reads a uint8.
func (d *Decoder) Uint8() (uint8, error) {
	bs, err := d.Read(1)
	if err != nil {
		return 0, err
	}
	return bs[0], nil
}

// Uint16 reads a uint16.
func (d *Decoder) Uint16() (uint16, error) {
	bs, err := d.Read(2)
	if err != nil {
		return 0, err
	}
	return d.Order.Uint16(bs), nil
}

// Uint32 reads a uint32.
func (d *Decoder) Uint32() (uint32, error) {
	bs, err := d.Read(4)
	if err != nil {
		return 0, err
	}
	return d.Order.Uint32(bs), nil
}

// Uint64 reads a uint64.
func (d *Decoder) Uint64() (uint64, error) {
	bs, err := d.Read(8)
	if err != nil {
		return 0, err
	}
	return d.Order.Uint64(bs), nil
}
