package scx

import (
	"encoding/binary"
	"fmt"
	"math"
)

// reader is a forward-only little-endian cursor over a byte slice.
//
// The first failure is sticky: once err is set every further read returns a
// zero value, so codecs can read a run of fields and check err once.
type reader struct {
	buf     []byte
	off     int
	version Version
	stage   string
	trigger int
	err     error
}

func newReader(buf []byte, stage string) *reader {
	return &reader{buf: buf, stage: stage, trigger: -1}
}

func (r *reader) remaining() int {
	return len(r.buf) - r.off
}

func (r *reader) fail(field string, off int, err error) {
	if r.err != nil {
		return
	}
	r.err = &FormatError{
		Stage:   r.stage,
		Field:   field,
		Trigger: r.trigger,
		Offset:  int64(off),
		Err:     err,
	}
}

func (r *reader) next(n int) []byte {
	if r.err != nil {
		return nil
	}
	if n < 0 {
		r.fail("", r.off, fmt.Errorf("%w: negative length %d", ErrTruncated, n))
		return nil
	}
	if n > r.remaining() {
		r.fail("", r.off, fmt.Errorf("%w: need %d bytes, have %d", ErrTruncated, n, r.remaining()))
		return nil
	}
	b := r.buf[r.off : r.off+n]
	r.off += n
	return b
}

func (r *reader) u8() uint8 {
	if b := r.next(1); b != nil {
		return b[0]
	}
	return 0
}

func (r *reader) i16() int16 {
	if b := r.next(2); b != nil {
		return int16(binary.LittleEndian.Uint16(b))
	}
	return 0
}

func (r *reader) i32() int32 {
	if b := r.next(4); b != nil {
		return int32(binary.LittleEndian.Uint32(b))
	}
	return 0
}

func (r *reader) i64() int64 {
	if b := r.next(8); b != nil {
		return int64(binary.LittleEndian.Uint64(b))
	}
	return 0
}

func (r *reader) f32() float32 {
	if b := r.next(4); b != nil {
		return math.Float32frombits(binary.LittleEndian.Uint32(b))
	}
	return 0
}

func (r *reader) f64() float64 {
	if b := r.next(8); b != nil {
		return math.Float64frombits(binary.LittleEndian.Uint64(b))
	}
	return 0
}

// bytes returns a copy of the next n bytes so the model never aliases the
// decompressed buffer.
func (r *reader) bytes(n int) []byte {
	b := r.next(n)
	if b == nil {
		return nil
	}
	out := make([]byte, n)
	copy(out, b)
	return out
}

func (r *reader) skip(n int) {
	r.next(n)
}

func (r *reader) blob16() []byte {
	return r.bytes(int(r.i16()))
}

func (r *reader) blob32() []byte {
	return r.bytes(int(r.i32()))
}

// count reads a 32-bit element count and rejects values that could not fit
// in the rest of the stream at elemSize bytes per element.
func (r *reader) count(field string, elemSize int) int {
	off := r.off
	n := int(r.i32())
	if r.err != nil {
		return 0
	}
	if n < 0 || n*elemSize > r.remaining() {
		r.fail(field, off, fmt.Errorf("%w: %d elements of %d bytes, have %d", ErrTruncated, n, elemSize, r.remaining()))
		return 0
	}
	return n
}

func (r *reader) int32s(n int) []int32 {
	out := make([]int32, 0, n)
	for i := 0; i < n && r.err == nil; i++ {
		out = append(out, r.i32())
	}
	return out
}

// expect reads a 32-bit checkpoint and fails with ErrSentinel when it does
// not equal want.
func (r *reader) expect(field string, want int32) {
	off := r.off
	got := r.i32()
	if r.err == nil && got != want {
		r.fail(field, off, sentinelError(int64(want), int64(got)))
	}
}

// writer appends little-endian values to a growing buffer.
type writer struct {
	buf            []byte
	version        Version
	legacyStartAge bool
	stage          string
	trigger        int
	err            error
}

func newWriter(stage string) *writer {
	return &writer{stage: stage, trigger: -1}
}

func (w *writer) fail(field string, err error) {
	if w.err != nil {
		return
	}
	w.err = &FormatError{
		Stage:   w.stage,
		Field:   field,
		Trigger: w.trigger,
		Offset:  int64(len(w.buf)),
		Err:     err,
	}
}

func (w *writer) u8(v uint8) {
	w.buf = append(w.buf, v)
}

func (w *writer) i16(v int16) {
	w.buf = binary.LittleEndian.AppendUint16(w.buf, uint16(v))
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

func (w *writer) f64(v float64) {
	w.buf = binary.LittleEndian.AppendUint64(w.buf, math.Float64bits(v))
}

func (w *writer) bytes(b []byte) {
	w.buf = append(w.buf, b...)
}

func (w *writer) zeros(n int) {
	w.buf = append(w.buf, make([]byte, n)...)
}

// fixed writes b padded with zeros or truncated to exactly n bytes.
func (w *writer) fixed(b []byte, n int) {
	if len(b) >= n {
		w.bytes(b[:n])
		return
	}
	w.bytes(b)
	w.zeros(n - len(b))
}

func (w *writer) blob16(field string, b []byte) {
	if len(b) > math.MaxInt16 {
		w.fail(field, fmt.Errorf("%w: %d bytes exceeds 16-bit length", ErrTooLarge, len(b)))
		return
	}
	w.i16(int16(len(b)))
	w.bytes(b)
}

func (w *writer) blob32(field string, b []byte) {
	if len(b) > math.MaxInt32 {
		w.fail(field, fmt.Errorf("%w: %d bytes exceeds 32-bit length", ErrTooLarge, len(b)))
		return
	}
	w.i32(int32(len(b)))
	w.bytes(b)
}

func (w *writer) int32s(vs []int32) {
	for _, v := range vs {
		w.i32(v)
	}
}

// slots writes vs as exactly n values, zero padded or truncated.
func (w *writer) slots(vs []int32, n int) {
	for i := 0; i < n; i++ {
		if i < len(vs) {
			w.i32(vs[i])
		} else {
			w.i32(0)
		}
	}
}
