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
	"bytes"
	"errors"
	"slices"
	"testing"

	"github.com/lumen-chain/lumen/go/lumen"
	"pgregory.net/rand"
)

func TestBuffer_WriteRecordsSize(t *testing.T) {
	buffer := NewBuffer()
	index := buffer.Write([]byte{1, 2, 3})
	if index != 0 {
		t.Errorf("unexpected index %d", index)
	}
	size, err := buffer.Size(index)
	if err != nil {
		t.Fatalf("failed to get size: %v", err)
	}
	if size != 3 {
		t.Errorf("unexpected size, wanted 3, got %d", size)
	}
	if buffer.Len() != 1 || buffer.TotalSize() != 3 {
		t.Errorf("unexpected buffer shape: %d fields, %d bytes", buffer.Len(), buffer.TotalSize())
	}
}

func TestBuffer_WriteCopiesInput(t *testing.T) {
	data := []byte{1, 2, 3}
	buffer := NewBuffer(data)
	data[0] = 9
	got, _ := buffer.Field(0)
	if !bytes.Equal(got, []byte{1, 2, 3}) {
		t.Errorf("buffer aliases its input: %v", got)
	}
	got[1] = 9
	again, _ := buffer.Field(0)
	if !bytes.Equal(again, []byte{1, 2, 3}) {
		t.Errorf("buffer aliases its output: %v", again)
	}
}

func TestBuffer_SetSizeTruncatesReads(t *testing.T) {
	buffer := NewBuffer()
	index := buffer.WriteInt32Array([]int32{1, 2, 3, 4})
	if err := buffer.SetSize(index, 8); err != nil {
		t.Fatalf("failed to set size: %v", err)
	}
	got, err := buffer.Int32Array(index)
	if err != nil {
		t.Fatalf("failed to read array: %v", err)
	}
	if !slices.Equal(got, []int32{1, 2}) {
		t.Errorf("unexpected array, got %v", got)
	}
	// growing back up to the written bytes is allowed
	if err := buffer.SetSize(index, 16); err != nil {
		t.Fatalf("failed to set size: %v", err)
	}
	got, _ = buffer.Int32Array(index)
	if !slices.Equal(got, []int32{1, 2, 3, 4}) {
		t.Errorf("unexpected array, got %v", got)
	}
}

func TestBuffer_SetSizeBeyondWrittenBytesFails(t *testing.T) {
	buffer := NewBuffer([]byte{1, 2})
	for _, size := range []int{3, -1} {
		if err := buffer.SetSize(0, size); !errors.Is(err, ErrSizeOutOfBounds) {
			t.Errorf("expected out of bounds error for size %d, got %v", size, err)
		}
	}
	if size, _ := buffer.Size(0); size != 2 {
		t.Errorf("failed resize modified size to %d", size)
	}
}

func TestBuffer_InvalidIndexIsReported(t *testing.T) {
	buffer := NewBuffer([]byte{1})
	if _, err := buffer.Size(1); !errors.Is(err, ErrFieldOutOfRange) {
		t.Errorf("expected out of range error, got %v", err)
	}
	if err := buffer.SetSize(-1, 0); !errors.Is(err, ErrFieldOutOfRange) {
		t.Errorf("expected out of range error, got %v", err)
	}
	if _, err := buffer.Uint64(3); !errors.Is(err, ErrFieldOutOfRange) {
		t.Errorf("expected out of range error, got %v", err)
	}
}

func TestBuffer_TypedAccessors(t *testing.T) {
	buffer := NewBuffer()
	address := lumen.Address{88, 1, 2}
	buffer.WriteUint8(7)
	buffer.WriteUint32(1 << 20)
	buffer.WriteUint64(1 << 40)
	buffer.WriteInt32(-5)
	buffer.WriteInt64(-1 << 40)
	buffer.WriteFloat64(2.5)
	buffer.WriteAddress(address)

	if v, err := buffer.Uint8(0); err != nil || v != 7 {
		t.Errorf("unexpected uint8 %v, %v", v, err)
	}
	if v, err := buffer.Uint32(1); err != nil || v != 1<<20 {
		t.Errorf("unexpected uint32 %v, %v", v, err)
	}
	if v, err := buffer.Uint64(2); err != nil || v != 1<<40 {
		t.Errorf("unexpected uint64 %v, %v", v, err)
	}
	if v, err := buffer.Int32(3); err != nil || v != -5 {
		t.Errorf("unexpected int32 %v, %v", v, err)
	}
	if v, err := buffer.Int64(4); err != nil || v != -1<<40 {
		t.Errorf("unexpected int64 %v, %v", v, err)
	}
	if v, err := buffer.Float64(5); err != nil || v != 2.5 {
		t.Errorf("unexpected float64 %v, %v", v, err)
	}
	if v, err := buffer.Address(6); err != nil || v != address {
		t.Errorf("unexpected address %v, %v", v, err)
	}
}

func TestBuffer_ScalarReadersRequireExactSize(t *testing.T) {
	buffer := NewBuffer([]byte{1, 2, 3})
	if _, err := buffer.Uint32(0); !errors.Is(err, ErrArgumentMismatch) {
		t.Errorf("expected argument mismatch, got %v", err)
	}
	if _, err := buffer.Int32Array(0); !errors.Is(err, ErrArgumentMismatch) {
		t.Errorf("expected argument mismatch, got %v", err)
	}
}

func TestBuffer_CloneIsIndependent(t *testing.T) {
	buffer := NewBuffer()
	buffer.WriteInt32Array([]int32{1, 2, 3})
	if err := buffer.SetSize(0, 4); err != nil {
		t.Fatalf("failed to set size: %v", err)
	}

	clone := buffer.Clone()
	if want, got := 4, clone.TotalSize(); want != got {
		t.Errorf("clone should only carry recorded bytes, wanted %d, got %d", want, got)
	}
	buffer.Write([]byte{1})
	if clone.Len() != 1 {
		t.Errorf("clone observed a write to the original")
	}
	clone.Reset()
	if buffer.Len() != 2 {
		t.Errorf("original observed a reset of the clone")
	}
}

func TestBuffer_NilReadsAsEmpty(t *testing.T) {
	var buffer *Buffer
	if buffer.Len() != 0 || buffer.TotalSize() != 0 || len(buffer.Fields()) != 0 {
		t.Errorf("nil buffer should be empty")
	}
	if clone := buffer.Clone(); clone == nil || clone.Len() != 0 {
		t.Errorf("clone of a nil buffer should be an empty buffer, got %v", clone)
	}
	if _, err := buffer.Uint8(0); !errors.Is(err, ErrFieldOutOfRange) {
		t.Errorf("unexpected error reading a nil buffer: %v", err)
	}
	if err := Check(nil, buffer); err != nil {
		t.Errorf("nil buffer should match an empty parameter list: %v", err)
	}
}

func TestBuffer_Int32ArrayRoundTripsRandomValues(t *testing.T) {
	r := rand.New(1)
	for i := 0; i < 100; i++ {
		values := make([]int32, r.Intn(20))
		for j := range values {
			values[j] = int32(r.Uint32())
		}
		buffer := NewBuffer()
		buffer.WriteInt32Array(values)
		got, err := buffer.Int32Array(0)
		if err != nil {
			t.Fatalf("failed to read array: %v", err)
		}
		if !slices.Equal(values, got) {
			t.Fatalf("unexpected array, wanted %v, got %v", values, got)
		}
	}
}
