package query

import (
	"encoding/json"
	"fmt"
)

// Options carries per-call directives injected by the connection.
type Options struct {
	// DB is the database selected on the connection, empty when none.
	DB string
}

// Encoder turns a logical query value into protocol payload bytes.
type Encoder interface {
	Encode(q any, opts Options) ([]byte, error)
}

// Decoder turns a protocol response payload into a result value.
type Decoder interface {
	Decode(p []byte) (any, error)
}

// Codec is an Encoder and Decoder pair used by a connection.
type Codec interface {
	Encoder
	Decoder
}

// JSONCodec is the default wire codec. The request payload is a two-element
// JSON array: the query expression followed by the directive object.
//
//	[<query>, {"db": "mydb"}]
//
// The directive object is empty when no database is selected.
type JSONCodec struct{}

// Encode implements Encoder.
func (JSONCodec) Encode(q any, opts Options) ([]byte, error) {
	directives := map[string]any{}
	if opts.DB != "" {
		directives["db"] = opts.DB
	}
	p, err := json.Marshal([]any{q, directives})
	if err != nil {
		return nil, fmt.Errorf("encode query: %w", err)
	}
	return p, nil
}

// Decode implements Decoder.
func (JSONCodec) Decode(p []byte) (any, error) {
	var v any
	if err := json.Unmarshal(p, &v); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return v, nil
}
