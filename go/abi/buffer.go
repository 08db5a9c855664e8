// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package abi

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/lumen-chain/lumen/go/lumen"
)

const (
	ErrFieldOutOfRange  = lumen.ConstError("argument field out of range")
	ErrSizeOutOfBounds  = lumen.ConstError("argument size exceeds written bytes")
	ErrArgumentMismatch = lumen.ConstError("argument mismatch")
	ErrArgumentCount    = lumen.ConstError("argument count mismatch")
)

// Buffer is the argument buffer of a call frame. It holds an ordered list
// of fields, each consisting of the written bytes and a recorded logical
// size. Readers never see bytes beyond the recorded size, so a caller
// shrinking a field with SetSize truncates what the callee observes.
//
// A Buffer is not safe for concurrent use. Buffers crossing a call boundary
// are cloned, so a callee never aliases its caller's buffer. A nil Buffer
// reads as an empty one.
type Buffer struct {
	fields []field
}

type field struct {
	data []byte
	size int
}

// NewBuffer creates a buffer holding copies of the given fields.
func NewBuffer(fields ...[]byte) *Buffer {
	res := &Buffer{fields: make([]field, 0, len(fields))}
	for _, data := range fields {
		res.Write(data)
	}
	return res
}

// Write appends a copy of data as a new field and returns its index. The
// recorded size of the field is the length of data.
func (b *Buffer) Write(data []byte) int {
	b.fields = append(b.fields, field{
		data: append([]byte(nil), data...),
		size: len(data),
	})
	return len(b.fields) - 1
}

// Len returns the number of fields.
func (b *Buffer) Len() int {
	if b == nil {
		return 0
	}
	return len(b.fields)
}

// Size returns the recorded size of a field.
func (b *Buffer) Size(index int) (int, error) {
	if err := b.checkIndex(index); err != nil {
		return 0, err
	}
	return b.fields[index].size, nil
}

// SetSize records a new logical size for a field. The size may shrink the
// field or grow it back up to the number of bytes written, never beyond.
func (b *Buffer) SetSize(index, size int) error {
	if err := b.checkIndex(index); err != nil {
		return err
	}
	if size < 0 || size > len(b.fields[index].data) {
		return fmt.Errorf("%w: field %d has %d bytes, requested %d", ErrSizeOutOfBounds, index, len(b.fields[index].data), size)
	}
	b.fields[index].size = size
	return nil
}

// Field returns a copy of the bytes of a field up to its recorded size.
func (b *Buffer) Field(index int) ([]byte, error) {
	if err := b.checkIndex(index); err != nil {
		return nil, err
	}
	f := b.fields[index]
	return append([]byte{}, f.data[:f.size]...), nil
}

// Fields returns copies of all fields up to their recorded sizes.
func (b *Buffer) Fields() [][]byte {
	if b == nil {
		return [][]byte{}
	}
	res := make([][]byte, len(b.fields))
	for i, f := range b.fields {
		res[i] = append([]byte{}, f.data[:f.size]...)
	}
	return res
}

// TotalSize sums up the recorded sizes of all fields.
func (b *Buffer) TotalSize() int {
	if b == nil {
		return 0
	}
	total := 0
	for _, f := range b.fields {
		total += f.size
	}
	return total
}

// Clone creates an independent buffer holding the recorded bytes of every
// field.
func (b *Buffer) Clone() *Buffer {
	return NewBuffer(b.Fields()...)
}

// Reset drops all fields.
func (b *Buffer) Reset() {
	b.fields = b.fields[:0]
}

func (b *Buffer) checkIndex(index int) error {
	if index < 0 || index >= b.Len() {
		return fmt.Errorf("%w: index %d, buffer has %d fields", ErrFieldOutOfRange, index, b.Len())
	}
	return nil
}

// --- typed writers ---

func (b *Buffer) WriteUint8(v uint8) int {
	return b.Write([]byte{v})
}

func (b *Buffer) WriteUint32(v uint32) int {
	return b.Write(binary.LittleEndian.AppendUint32(nil, v))
}

func (b *Buffer) WriteUint64(v uint64) int {
	return b.Write(binary.LittleEndian.AppendUint64(nil, v))
}

func (b *Buffer) WriteInt32(v int32) int {
	return b.WriteUint32(uint32(v))
}

func (b *Buffer) WriteInt64(v int64) int {
	return b.WriteUint64(uint64(v))
}

func (b *Buffer) WriteFloat64(v float64) int {
	return b.WriteUint64(math.Float64bits(v))
}

func (b *Buffer) WriteAddress(v lumen.Address) int {
	return b.Write(v[:])
}

func (b *Buffer) WriteInt32Array(values []int32) int {
	data := make([]byte, 0, 4*len(values))
	for _, v := range values {
		data = binary.LittleEndian.AppendUint32(data, uint32(v))
	}
	return b.Write(data)
}

// --- typed readers ---

func (b *Buffer) Uint8(index int) (uint8, error) {
	data, err := b.scalar(index, Uint8)
	if err != nil {
		return 0, err
	}
	return data[0], nil
}

func (b *Buffer) Uint32(index int) (uint32, error) {
	data, err := b.scalar(index, Uint32)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(data), nil
}

func (b *Buffer) Uint64(index int) (uint64, error) {
	data, err := b.scalar(index, Uint64)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(data), nil
}

func (b *Buffer) Int32(index int) (int32, error) {
	data, err := b.scalar(index, Int32)
	if err != nil {
		return 0, err
	}
	return int32(binary.LittleEndian.Uint32(data)), nil
}

func (b *Buffer) Int64(index int) (int64, error) {
	data, err := b.scalar(index, Int64)
	if err != nil {
		return 0, err
	}
	return int64(binary.LittleEndian.Uint64(data)), nil
}

func (b *Buffer) Float64(index int) (float64, error) {
	data, err := b.scalar(index, Float64)
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(binary.LittleEndian.Uint64(data)), nil
}

// Address reads an address field. The address is not validated.
func (b *Buffer) Address(index int) (lumen.Address, error) {
	data, err := b.scalar(index, Address)
	if err != nil {
		return lumen.Address{}, err
	}
	return lumen.Address(data), nil
}

// Int32Array reads an int32 array. Its length is the recorded size of the
// field divided by four.
func (b *Buffer) Int32Array(index int) ([]int32, error) {
	data, err := b.array(index, Int32)
	if err != nil {
		return nil, err
	}
	res := make([]int32, len(data)/4)
	for i := range res {
		res[i] = int32(binary.LittleEndian.Uint32(data[4*i:]))
	}
	return res, nil
}

// Uint8Array reads a byte array field.
func (b *Buffer) Uint8Array(index int) ([]byte, error) {
	return b.Field(index)
}

func (b *Buffer) scalar(index int, t Type) ([]byte, error) {
	if !t.IsValid() {
		return nil, fmt.Errorf("unsupported type: %v", t)
	}
	data, err := b.Field(index)
	if err != nil {
		return nil, err
	}
	if len(data) != t.Size() {
		return nil, fmt.Errorf("%w: field %d has %d bytes, %v needs %d", ErrArgumentMismatch, index, len(data), t, t.Size())
	}
	return data, nil
}

func (b *Buffer) array(index int, t Type) ([]byte, error) {
	if !t.IsValid() {
		return nil, fmt.Errorf("unsupported type: %v", t)
	}
	data, err := b.Field(index)
	if err != nil {
		return nil, err
	}
	if len(data)%t.Size() != 0 {
		return nil, fmt.Errorf("%w: field %d has %d bytes, not a multiple of the %v size %d", ErrArgumentMismatch, index, len(data), t, t.Size())
	}
	return data, nil
}
