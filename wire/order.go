package wire

import (
	"encoding/binary"
	"fmt"

	"golang.org/x/sys/cpu"
)

// ByteOrder is the byte order used for multi-byte values in a wire
// blob. Each blob carries its order as a flag byte, so blobs remain
// readable across machines regardless of the order they were written
// with.
type ByteOrder interface {
	byteOrder
	flag() byte
}

type byteOrder interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

type wrapStd struct {
	byteOrder
}

func (w wrapStd) flag() byte {
	switch w.byteOrder {
	case binary.BigEndian:
		return 'B'
	case binary.LittleEndian:
		return 'l'
	case binary.NativeEndian:
		if cpu.IsBigEndian {
			return 'B'
		}
		return 'l'
	default:
		panic("unknown ByteOrder, how did you manage to make one of those?")
	}
}

var (
	BigEndian    = wrapStd{binary.BigEndian}
	LittleEndian = wrapStd{binary.LittleEndian}
	NativeEndian = wrapStd{binary.NativeEndian}
)

// OrderForFlag returns the ByteOrder named by a blob's order flag
// byte.
func OrderForFlag(b byte) (ByteOrder, error) {
	switch b {
	case 'B':
		return BigEndian, nil
	case 'l':
		return LittleEndian, nil
	}
	return nil, fmt.Errorf("unknown byte order flag 0x%02x", b)
}
