// Package zstd adapts klauspost/compress/zstd to the compress.Codec
// interface.
package zstd

import (
	"bytes"
	"io"

	"github.com/klauspost/compress/zstd"

	"github.com/codefever/dremel-go/compress"
)

// Codec is a compress.Codec backed by klauspost/compress/zstd.
type Codec struct{}

var _ compress.Codec = Codec{}

// Name implements compress.Codec.
func (Codec) Name() string { return "zstd" }

// Encode implements compress.Codec.
func (Codec) Encode(dst, src []byte) ([]byte, error) {
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, err
	}
	defer enc.Close()
	return enc.EncodeAll(src, dst), nil
}

// Decode implements compress.Codec.
func (Codec) Decode(dst, src []byte) ([]byte, error) {
	dec, err := zstd.NewReader(bytes.NewReader(src))
	if err != nil {
		return nil, err
	}
	defer dec.Close()
	out, err := io.ReadAll(dec)
	if err != nil {
		return nil, err
	}
	return append(dst, out...), nil
}
