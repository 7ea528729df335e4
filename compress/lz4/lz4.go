// Package lz4 adapts pierrec/lz4/v4 to the compress.Codec interface.
package lz4

import (
	"bytes"
	"io"

	"github.com/pierrec/lz4/v4"

	"github.com/codefever/dremel-go/compress"
)

// Codec is a compress.Codec backed by pierrec/lz4/v4.
type Codec struct{}

var _ compress.Codec = Codec{}

// Name implements compress.Codec.
func (Codec) Name() string { return "lz4" }

// Encode implements compress.Codec.
func (Codec) Encode(dst, src []byte) ([]byte, error) {
	var buf bytes.Buffer
	w := lz4.NewWriter(&buf)
	if _, err := w.Write(src); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return append(dst, buf.Bytes()...), nil
}

// Decode implements compress.Codec.
func (Codec) Decode(dst, src []byte) ([]byte, error) {
	r := lz4.NewReader(bytes.NewReader(src))
	out, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return append(dst, out...), nil
}
