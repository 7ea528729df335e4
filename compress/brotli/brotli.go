// Package brotli adapts andybalholm/brotli to the compress.Codec
// interface.
package brotli

import (
	"bytes"
	"io"

	"github.com/andybalholm/brotli"

	"github.com/codefever/dremel-go/compress"
)

// Codec is a compress.Codec backed by andybalholm/brotli.
type Codec struct{}

var _ compress.Codec = Codec{}

// Name implements compress.Codec.
func (Codec) Name() string { return "brotli" }

// Encode implements compress.Codec.
func (Codec) Encode(dst, src []byte) ([]byte, error) {
	var buf bytes.Buffer
	w := brotli.NewWriter(&buf)
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
	r := brotli.NewReader(bytes.NewReader(src))
	out, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return append(dst, out...), nil
}
