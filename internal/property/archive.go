package property

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"golang.org/x/text/encoding/unicode"
)

var ErrShortData = errors.New("unexpected end of data")

var utf16le = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)

// reader walks a little endian archive.
type reader struct {
	buf []byte
	off int
}

func newReader(b []byte) *reader {
	return &reader{buf: b}
}

func (r *reader) remaining() int {
	return len(r.buf) - r.off
}

func (r *reader) take(n int) ([]byte, error) {
	if n < 0 || n > r.remaining() {
		return nil, fmt.Errorf("%w: need %d bytes at offset %d, have %d", ErrShortData, n, r.off, r.remaining())
	}
	b := r.buf[r.off : r.off+n]
	r.off += n
	return b, nil
}

func (r *reader) u8() (byte, error) {
	b, err := r.take(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (r *reader) i32() (int32, error) {
	b, err := r.take(4)
	if err != nil {
		return 0, err
	}
	return int32(binary.LittleEndian.Uint32(b)), nil
}

func (r *reader) i64() (int64, error) {
	b, err := r.take(8)
	if err != nil {
		return 0, err
	}
	return int64(binary.LittleEndian.Uint64(b)), nil
}

func (r *reader) f32() (float32, error) {
	b, err := r.take(4)
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(binary.LittleEndian.Uint32(b)), nil
}

func (r *reader) guid() ([16]byte, error) {
	var g [16]byte
	b, err := r.take(16)
	if err != nil {
		return g, err
	}
	copy(g[:], b)
	return g, nil
}

// fstring reads a length prefixed string. Positive lengths are single byte
// characters, negative lengths are UTF-16 code units. Both include the
// terminator.
func (r *reader) fstring() (string, error) {
	n, err := r.i32()
	if err != nil {
		return "", err
	}

	switch {
	case n == 0:
		return "", nil
	case n > 0:
		b, err := r.take(int(n))
		if err != nil {
			return "", fmt.Errorf("reading string: %w", err)
		}
		if b[len(b)-1] != 0 {
			return "", fmt.Errorf("string at offset %d is not terminated", r.off-len(b))
		}
		return string(b[:len(b)-1]), nil
	default:
		b, err := r.take(int(-int64(n)) * 2)
		if err != nil {
			return "", fmt.Errorf("reading wide string: %w", err)
		}
		s, err := utf16le.NewDecoder().Bytes(b[:len(b)-2])
		if err != nil {
			return "", fmt.Errorf("decoding wide string: %w", err)
		}
		return string(s), nil
	}
}

func (r *reader) vector() (Vector, error) {
	var v Vector
	var err error
	if v.X, err = r.f32(); err != nil {
		return v, err
	}
	if v.Y, err = r.f32(); err != nil {
		return v, err
	}
	if v.Z, err = r.f32(); err != nil {
		return v, err
	}
	return v, nil
}

// writer builds a little endian archive. The first error is kept and
// reported by bytes.
type writer struct {
	buf []byte
	err error
}

func (w *writer) bytes() ([]byte, error) {
	return w.buf, w.err
}

func (w *writer) raw(b []byte) {
	w.buf = append(w.buf, b...)
}

func (w *writer) u8(v byte) {
	w.buf = append(w.buf, v)
}

func (w *writer) i32(v int32) {
	w.buf = binary.LittleEndian.AppendUint32(w.buf, uint32(v))
}

func (w *writer) i64(v int64) {
	w.buf = binary.LittleEndian.AppendUint64(w.buf, uint64(v))
}

func (w *writer) f32(v float32) {
	w.buf = binary.LittleEndian.AppendUint32(w.buf, math.Float32bits(v))
}

func (w *writer) vector(v Vector) {
	w.f32(v.X)
	w.f32(v.Y)
	w.f32(v.Z)
}

func (w *writer) fstring(s string) {
	if s == "" {
		w.i32(0)
		return
	}

	if isASCII(s) {
		w.i32(int32(len(s) + 1))
		w.raw([]byte(s))
		w.u8(0)
		return
	}

	enc, err := utf16le.NewEncoder().Bytes([]byte(s))
	if err != nil {
		if w.err == nil {
			w.err = fmt.Errorf("encoding wide string %q: %w", s, err)
		}
		return
	}
	w.i32(-int32(len(enc)/2 + 1))
	w.raw(enc)
	w.raw([]byte{0, 0})
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			return false
		}
	}
	return true
}
