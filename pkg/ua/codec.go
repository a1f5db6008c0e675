package ua

import (
	"encoding/binary"
	"math"
)

// Decoder is a cursor over an OPC UA Part 6 binary encoded buffer.
//
// Every primitive read advances the cursor and returns a typed decode
// error the moment the buffer runs short; callers never read past the
// slice a Decoder was constructed with. All multi-byte integers and
// floats are little-endian, per spec.
type Decoder struct {
	buf []byte
	pos int
}

// NewDecoder creates a Decoder reading from buf.
func NewDecoder(buf []byte) *Decoder {
	return &Decoder{buf: buf}
}

// Pos returns the current byte offset, for error reporting.
func (d *Decoder) Pos() int { return d.pos }

// Remaining returns the number of unread bytes.
func (d *Decoder) Remaining() int { return len(d.buf) - d.pos }

// Rest returns (and consumes) every remaining byte.
func (d *Decoder) Rest() []byte {
	b := d.buf[d.pos:]
	d.pos = len(d.buf)
	return b
}

func (d *Decoder) take(field string, n int) ([]byte, error) {
	if n < 0 || d.pos+n > len(d.buf) {
		return nil, decodeErr(field, d.pos, ErrTruncated)
	}
	b := d.buf[d.pos : d.pos+n]
	d.pos += n
	return b, nil
}

func (d *Decoder) Bool(field string) (bool, error) {
	b, err := d.take(field, 1)
	if err != nil {
		return false, err
	}
	return b[0] != 0, nil
}

func (d *Decoder) SByte(field string) (int8, error) {
	b, err := d.take(field, 1)
	if err != nil {
		return 0, err
	}
	return int8(b[0]), nil
}

func (d *Decoder) Byte(field string) (uint8, error) {
	b, err := d.take(field, 1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (d *Decoder) Int16(field string) (int16, error) {
	b, err := d.take(field, 2)
	if err != nil {
		return 0, err
	}
	return int16(binary.LittleEndian.Uint16(b)), nil
}

func (d *Decoder) Uint16(field string) (uint16, error) {
	b, err := d.take(field, 2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

func (d *Decoder) Int32(field string) (int32, error) {
	b, err := d.take(field, 4)
	if err != nil {
		return 0, err
	}
	return int32(binary.LittleEndian.Uint32(b)), nil
}

func (d *Decoder) Uint32(field string) (uint32, error) {
	b, err := d.take(field, 4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (d *Decoder) Int64(field string) (int64, error) {
	b, err := d.take(field, 8)
	if err != nil {
		return 0, err
	}
	return int64(binary.LittleEndian.Uint64(b)), nil
}

func (d *Decoder) Uint64(field string) (uint64, error) {
	b, err := d.take(field, 8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

func (d *Decoder) Float32(field string) (float32, error) {
	b, err := d.take(field, 4)
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(binary.LittleEndian.Uint32(b)), nil
}

func (d *Decoder) Float64(field string) (float64, error) {
	b, err := d.take(field, 8)
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(binary.LittleEndian.Uint64(b)), nil
}

// arrayLen decodes a signed i32 array-length sentinel: -1 means "no
// elements" (null array); any other negative value is malformed.
// See spec.md §3 "Invariants on ALL arrays in the wire protocol".
func (d *Decoder) arrayLen(field string) (int, bool, error) {
	n, err := d.Int32(field + ".Length")
	if err != nil {
		return 0, false, err
	}
	if n == -1 {
		return 0, false, nil
	}
	if n < -1 {
		return 0, false, decodeErr(field+".Length", d.pos-4, ErrLengthMismatch)
	}
	if int64(n) > int64(d.Remaining()) {
		// Cheap sanity bound: a well-formed array can never claim more
		// elements than there are bytes left, since even a zero-size
		// element still needs its own encoding.
		return 0, false, decodeErr(field+".Length", d.pos-4, ErrLengthMismatch)
	}
	return int(n), true, nil
}

// ByteString reads an i32-length-prefixed byte sequence. A -1 length
// decodes to a nil slice (null); a 0 length decodes to an empty,
// non-nil slice.
func (d *Decoder) ByteString(field string) ([]byte, error) {
	n, present, err := d.arrayLen(field)
	if err != nil {
		return nil, err
	}
	if !present {
		return nil, nil
	}
	b, err := d.take(field, n)
	if err != nil {
		return nil, err
	}
	out := make([]byte, n)
	copy(out, b)
	return out, nil
}

// String reads an i32-length-prefixed UTF-8 string. Both the null and
// empty encodings decode to "" — OPC UA strings carry no separate
// null/empty distinction in this API, matching how DataValue/Variant
// already track "value present" independently via their own masks.
func (d *Decoder) String(field string) (string, error) {
	b, err := d.ByteString(field)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// DecodeArray reads an i32-length-prefixed homogeneous array using
// elem to decode each entry. A -1 length decodes to a nil slice.
func DecodeArray[T any](d *Decoder, field string, elem func(string) (T, error)) ([]T, error) {
	n, present, err := d.arrayLen(field)
	if err != nil {
		return nil, err
	}
	if !present {
		return nil, nil
	}
	out := make([]T, n)
	for i := range out {
		v, err := elem(field)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// EncodeArray writes a slice with an i32 length prefix (-1 for nil)
// using elem to encode each entry.
func EncodeArray[T any](e *Encoder, v []T, elem func(T)) {
	if v == nil {
		e.Int32(-1)
		return
	}
	e.Int32(int32(len(v)))
	for _, x := range v {
		elem(x)
	}
}

// Encoder builds an OPC UA Part 6 binary encoded buffer.
type Encoder struct {
	buf []byte
}

// NewEncoder creates an empty Encoder.
func NewEncoder() *Encoder {
	return &Encoder{}
}

// Bytes returns the encoded buffer built so far.
func (e *Encoder) Bytes() []byte { return e.buf }

// Len returns the number of bytes written so far.
func (e *Encoder) Len() int { return len(e.buf) }

// Raw appends b verbatim (used for nested pre-encoded bodies).
func (e *Encoder) Raw(b []byte) { e.buf = append(e.buf, b...) }

func (e *Encoder) Bool(v bool) {
	if v {
		e.buf = append(e.buf, 1)
	} else {
		e.buf = append(e.buf, 0)
	}
}

func (e *Encoder) SByte(v int8)  { e.buf = append(e.buf, byte(v)) }
func (e *Encoder) Byte(v uint8)  { e.buf = append(e.buf, v) }

func (e *Encoder) Int16(v int16) { e.Uint16(uint16(v)) }
func (e *Encoder) Uint16(v uint16) {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	e.buf = append(e.buf, b[:]...)
}

func (e *Encoder) Int32(v int32) { e.Uint32(uint32(v)) }
func (e *Encoder) Uint32(v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	e.buf = append(e.buf, b[:]...)
}

func (e *Encoder) Int64(v int64) { e.Uint64(uint64(v)) }
func (e *Encoder) Uint64(v uint64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	e.buf = append(e.buf, b[:]...)
}

func (e *Encoder) Float32(v float32) { e.Uint32(math.Float32bits(v)) }
func (e *Encoder) Float64(v float64) { e.Uint64(math.Float64bits(v)) }

// ByteString writes an i32-length-prefixed byte sequence. A nil slice
// is written as the null sentinel (-1); a non-nil slice (including
// empty) is written with its real length.
func (e *Encoder) ByteString(b []byte) {
	if b == nil {
		e.Int32(-1)
		return
	}
	e.Int32(int32(len(b)))
	e.buf = append(e.buf, b...)
}

// String writes s as a UTF-8 byte string. The empty string is written
// with length 0, never as the null sentinel, since this API has no
// way to represent a null string distinct from "".
func (e *Encoder) String(s string) {
	if s == "" {
		e.Int32(0)
		return
	}
	e.ByteString([]byte(s))
}
