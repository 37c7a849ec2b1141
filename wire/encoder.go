package wire

// An Encoder provides utilities to write a facet wire blob to a byte
// slice.
type Encoder struct {
	// Order is the byte order to use when encoding multi-byte values.
	Order ByteOrder
	// Out is the encoded output.
	Out []byte
}

// OrderFlag writes the byte order flag byte ('l' or 'B') that matches
// [Encoder.Order].
func (e *Encoder) OrderFlag() {
	e.Out = append(e.Out, e.Order.flag())
}

// Write writes bs as-is to the output. It is the caller's
// responsibility to ensure correct framing.
func (e *Encoder) Write(bs []byte) {
	e.Out = append(e.Out, bs...)
}

// Bytes writes bs to the output, length-prefixed.
func (e *Encoder) Bytes(bs []byte) {
	e.Uint32(uint32(len(bs)))
	e.Out = append(e.Out, bs...)
}

// String writes s to the output, length-prefixed.
func (e *Encoder) String(s string) {
	e.Uint32(uint32(len(s)))
	e.Out = append(e.Out, s...)
}

// Uint8 writes a uint8.
func (e *Encoder) Uint8(u8 uint8) {
	e.Out = append(e.Out, u8)
}

// Uint16 writes a uint16.
func (e *Encoder) Uint16(u16 uint16) {
	e.Out = e.Order.AppendUint16(e.Out, u16)
}

// Uint32 writes a uint32.
func (e *Encoder) Uint32(u32 uint32) {
	e.Out = e.Order.AppendUint32(e.Out, u32)
}

// Uint64 writes a uint64.
func (e *Encoder) Uint64(u64 uint64) {
	e.Out = e.Order.AppendUint64(e.Out, u64)
}

// Block writes a length-prefixed region to the output. The region's
// contents must be written within the provided body function; the
// length prefix is patched in afterwards.
func (e *Encoder) Block(body func() error) error {
	offset := len(e.Out)
	e.Uint32(0)
	start := len(e.Out)
	err := body()
	e.Order.PutUint32(e.Out[offset:], uint32(len(e.Out)-start))
	return err
}
