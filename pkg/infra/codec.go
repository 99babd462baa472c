package infra

import (
	"bytes"
	"encoding/gob"
	"encoding/json"
)

// Codec encodes/decodes Go values to/from slices of bytes.
type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
}

var (
	// JSON encodes/decodes Go values to/from JSON.
	JSON = JSONCodec{}
	// Gob encodes/decodes Go values to/from gob.
	Gob = GobCodec{}
)

type JSONCodec struct{}

func (c JSONCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (c JSONCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

type GobCodec struct{}

func (c GobCodec) Marshal(v any) ([]byte, error) {
	buffer := new(bytes.Buffer)
	if err := gob.NewEncoder(buffer).Encode(v); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}

func (c GobCodec) Unmarshal(data []byte, v any) error {
	return gob.NewDecoder(bytes.NewReader(data)).Decode(v)
}
