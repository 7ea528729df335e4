// Package compress defines the pluggable compression codec interface
// used by the block-oriented storage backend, and is implemented by
// the zstd, lz4 and brotli subpackages.
package compress

// Codec compresses and decompresses whole byte blocks. dst may be nil;
// when non-nil and long enough, implementations reuse it rather than
// allocating, mirroring the append-style APIs the wrapped libraries
// themselves expose.
type Codec interface {
	// Name identifies the codec. BlockStorage does not record it with
	// its blocks; a block is decoded with the codec its storage holds.
	Name() string
	// Encode appends the compressed form of src to dst and returns the
	// result.
	Encode(dst, src []byte) ([]byte, error)
	// Decode appends the decompressed form of src to dst and returns
	// the result.
	Decode(dst, src []byte) ([]byte, error)
}
