package wire

import (
	"bytes"
	"testing"
)

func TestEncoderBasics(t *testing.T) {
	tests := []struct {
		name  string
		order ByteOrder
		write func(*Encoder)
		want  []byte
	}{
		{
			name:  "uint8",
			order: BigEndian,
			write: func(e *Encoder) { e.Uint8(0x42) },
			want:  []byte{0x42},
		},
		{
			name:  "uint16 big endian",
			order: BigEndian,
			write: func(e *Encoder) { e.Uint16(0x1234) },
			want:  []byte{0x12, 0x34},
		},
		{
			name:  "uint16 little endian",
			order: LittleEndian,
			write: func(e *Encoder) { e.Uint16(0x1234) },
			want:  []byte{0x34, 0x12},
		},
		{
			name:  "uint32",
			order: BigEndian,
			write: func(e *Encoder) { e.Uint32(0x12345678) },
			want:  []byte{0x12, 0x34, 0x56, 0x78},
		},
		{
			name:  "uint64",
			order: BigEndian,
			write: func(e *Encoder) { e.Uint64(0x1abbccdd12345678) },
			want: []byte{
				0x1a, 0xbb, 0xcc, 0xdd,
				0x12, 0x34, 0x56, 0x78,
			},
		},
		{
			name:  "string",
			order: BigEndian,
			write: func(e *Encoder) { e.String("foobar") },
			want: []byte{
				0, 0, 0, 6,
				'f', 'o', 'o', 'b', 'a', 'r',
			},
		},
		{
			name:  "bytes",
			order: BigEndian,
			write: func(e *Encoder) { e.Bytes([]byte{0xde, 0xad}) },
			want: []byte{
				0, 0, 0, 2,
				0xde, 0xad,
			},
		},
		{
			name:  "order flag big endian",
			order: BigEndian,
			write: func(e *Encoder) { e.OrderFlag() },
			want:  []byte{'B'},
		},
		{
			name:  "order flag little endian",
			order: LittleEndian,
			write: func(e *Encoder) { e.OrderFlag() },
			want:  []byte{'l'},
		},
		{
			name:  "block patches length",
			order: BigEndian,
			write: func(e *Encoder) {
				e.Block(func() error {
					e.Uint16(0x1234)
					e.Uint8(9)
					return nil
				})
			},
			want: []byte{
				0, 0, 0, 3,
				0x12, 0x34,
				9,
			},
		},
		{
			name:  "empty block",
			order: BigEndian,
			write: func(e *Encoder) {
				e.Block(func() error { return nil })
			},
			want: []byte{0, 0, 0, 0},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e := Encoder{Order: tc.order}
			tc.write(&e)
			if !bytes.Equal(e.Out, tc.want) {
				t.Errorf("got % x, want % x", e.Out, tc.want)
			}
		})
	}
}
