package dremel

import (
	"bytes"
	"encoding/gob"
)

func init() {
	// Concrete scalar types that may ride inside Value.v, so
	// BlockStorage can round-trip them through gob without the caller
	// having to register them by hand. Callers storing a leaf value of
	// some other concrete type must register it themselves.
	gob.Register(int64(0))
	gob.Register(int(0))
	gob.Register(float64(0))
	gob.Register("")
	gob.Register(false)
}

// Value is the payload carried by one triple: a present scalar built by
// ValueOf, or the NULL marker built by Null that the subtree at this
// depth is absent, as opposed to a present-but-zero scalar. The zero
// Value is not NULL; it is a present value whose scalar is nil.
type Value struct {
	null bool
	v    interface{}
}

// Null returns the null sentinel value.
func Null() Value { return Value{null: true} }

// ValueOf wraps a present scalar value.
func ValueOf(v interface{}) Value { return Value{v: v} }

// IsNull reports whether v is the null sentinel.
func (v Value) IsNull() bool { return v.null }

// Any returns the underlying scalar, or nil if v is null.
func (v Value) Any() interface{} { return v.v }

func (v Value) String() string {
	if v.null {
		return "<null>"
	}
	return toString(v.v)
}

// Triple is one (repetition_level, definition_level, value) record in a
// leaf column, per spec.md §3.
type Triple struct {
	R int
	D int
	V Value
}

// valueWire is Value's gob wire representation: gob's default struct
// encoder only walks exported fields, so Value (whose fields are
// deliberately unexported to keep Null() the only way to construct a
// null) instead implements GobEncoder/GobDecoder over this stand-in.
type valueWire struct {
	Null bool
	V    interface{}
}

// GobEncode implements gob.GobEncoder.
func (v Value) GobEncode() ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(valueWire{Null: v.null, V: v.v}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// GobDecode implements gob.GobDecoder.
func (v *Value) GobDecode(data []byte) error {
	var w valueWire
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&w); err != nil {
		return err
	}
	v.null = w.Null
	v.v = w.V
	return nil
}
