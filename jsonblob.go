package facet

import (
	jsoniter "github.com/json-iterator/go"
)

var jsonAPI = jsoniter.ConfigCompatibleWithStandardLibrary

// JSONDriver accumulates (tag, value) pairs into a JSON object.
//
// The blob is a map[string]any, with nested structs appearing as
// nested objects. The blob itself is not yet bytes; use [EncodeJSON]
// and [DecodeJSON] to move finished blobs across a byte boundary.
// Blobs decoded from bytes hold float64 for all JSON numbers, which
// the unmarshal engine converts back to the field's numeric type.
type JSONDriver struct {
	result map[string]any
}

func (d *JSONDriver) Write(tag string, value any) any {
	if d.result == nil {
		d.result = map[string]any{}
	}
	d.result[tag] = value
	return d.result
}

func (d *JSONDriver) Read(tag string, blob any) (any, bool) {
	obj, ok := blob.(map[string]any)
	if !ok {
		return nil, false
	}
	v, ok := obj[tag]
	return v, ok
}

// EncodeJSON serializes a blob produced by [JSONDriver] (or any
// JSON-compatible blob) to bytes.
func EncodeJSON(blob any) ([]byte, error) {
	return jsonAPI.Marshal(blob)
}

// DecodeJSON parses bytes produced by [EncodeJSON] back into a blob
// suitable for [Unmarshal].
func DecodeJSON(data []byte) (any, error) {
	var blob any
	if err := jsonAPI.Unmarshal(data, &blob); err != nil {
		return nil, err
	}
	return blob, nil
}
