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

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/lumen-chain/lumen/go/crypto"
	"github.com/lumen-chain/lumen/go/lumen"
)

// The wire form of a call input is the rlp list of its argument fields,
// each holding the little-endian encoding of a value or the concatenation
// of the encoded elements of an array.

// Check verifies that the fields of a buffer match a parameter list: the
// number of fields, the size of scalar fields, array fields being a whole
// number of elements, and every address being well formed.
func Check(params []Parameter, buffer *Buffer) error {
	if want, got := len(params), buffer.Len(); want != got {
		return fmt.Errorf("%w, expecting: %d, got: %d", ErrArgumentCount, want, got)
	}
	for i, p := range params {
		var data []byte
		var err error
		if p.IsArray {
			data, err = buffer.array(i, p.Type)
		} else {
			data, err = buffer.scalar(i, p.Type)
		}
		if err != nil {
			return err
		}
		if p.Type == Address {
			for offset := 0; offset < len(data); offset += lumen.AddressLength {
				if err := crypto.ValidateAddress(lumen.Address(data[offset : offset+lumen.AddressLength])); err != nil {
					return fmt.Errorf("parameter %d: %w", i, err)
				}
			}
		}
	}
	return nil
}

// EncodeBuffer produces the wire form of a buffer after checking it
// against the given parameters.
func EncodeBuffer(params []Parameter, buffer *Buffer) ([]byte, error) {
	if err := Check(params, buffer); err != nil {
		return nil, err
	}
	return rlp.EncodeToBytes(buffer.Fields())
}

// DecodeBuffer parses the wire form of a call input and checks it against
// the given parameters.
func DecodeBuffer(params []Parameter, data []byte) (*Buffer, error) {
	var fields [][]byte
	if len(data) > 0 {
		if err := rlp.DecodeBytes(data, &fields); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrArgumentMismatch, err)
		}
	}
	buffer := NewBuffer(fields...)
	if err := Check(params, buffer); err != nil {
		return nil, err
	}
	return buffer, nil
}

// Pack builds a buffer from Go values. Scalars are given as the matching Go
// type (uint8 ... int64, float32, float64, lumen.Address) and arrays as
// slices of it.
func Pack(params []Parameter, values ...any) (*Buffer, error) {
	if want, got := len(params), len(values); want != got {
		return nil, fmt.Errorf("%w, expecting: %d, got: %d", ErrArgumentCount, want, got)
	}
	buffer := NewBuffer()
	for i, p := range params {
		data, err := encodeValue(p, values[i])
		if err != nil {
			return nil, fmt.Errorf("parameter %d: %w", i, err)
		}
		buffer.Write(data)
	}
	if err := Check(params, buffer); err != nil {
		return nil, err
	}
	return buffer, nil
}

// Unpack converts the fields of a buffer into Go values; it is the inverse
// of Pack.
func Unpack(params []Parameter, buffer *Buffer) ([]any, error) {
	if err := Check(params, buffer); err != nil {
		return nil, err
	}
	res := make([]any, len(params))
	for i, p := range params {
		data, _ := buffer.Field(i)
		value, err := decodeValue(p, data)
		if err != nil {
			return nil, fmt.Errorf("parameter %d: %w", i, err)
		}
		res[i] = value
	}
	return res, nil
}

// Encode packs Go values and returns their wire form.
func Encode(params []Parameter, values ...any) ([]byte, error) {
	buffer, err := Pack(params, values...)
	if err != nil {
		return nil, err
	}
	return EncodeBuffer(params, buffer)
}

// Decode parses a wire form into Go values.
func Decode(params []Parameter, data []byte) ([]any, error) {
	buffer, err := DecodeBuffer(params, data)
	if err != nil {
		return nil, err
	}
	return Unpack(params, buffer)
}

func encodeValue(p Parameter, value any) ([]byte, error) {
	if !p.IsArray {
		return encodeScalar(p.Type, value)
	}
	switch p.Type {
	case Uint8:
		return encodeArray[uint8](p.Type, value)
	case Uint16:
		return encodeArray[uint16](p.Type, value)
	case Uint32:
		return encodeArray[uint32](p.Type, value)
	case Uint64:
		return encodeArray[uint64](p.Type, value)
	case Int8:
		return encodeArray[int8](p.Type, value)
	case Int16:
		return encodeArray[int16](p.Type, value)
	case Int32:
		return encodeArray[int32](p.Type, value)
	case Int64:
		return encodeArray[int64](p.Type, value)
	case Float32:
		return encodeArray[float32](p.Type, value)
	case Float64:
		return encodeArray[float64](p.Type, value)
	case Address:
		return encodeArray[lumen.Address](p.Type, value)
	}
	return nil, fmt.Errorf("unsupported type: %v", p.Type)
}

func encodeArray[T any](t Type, value any) ([]byte, error) {
	values, ok := value.([]T)
	if !ok {
		return nil, fmt.Errorf("%w: cannot use %T as %v[]", ErrArgumentMismatch, value, t)
	}
	res := make([]byte, 0, len(values)*t.Size())
	for _, v := range values {
		data, err := encodeScalar(t, v)
		if err != nil {
			return nil, err
		}
		res = append(res, data...)
	}
	return res, nil
}

func encodeScalar(t Type, value any) ([]byte, error) {
	buf := make([]byte, t.Size())
	ok := false
	switch t {
	case Uint8:
		var v uint8
		v, ok = value.(uint8)
		buf[0] = v
	case Uint16:
		var v uint16
		v, ok = value.(uint16)
		binary.LittleEndian.PutUint16(buf, v)
	case Uint32:
		var v uint32
		v, ok = value.(uint32)
		binary.LittleEndian.PutUint32(buf, v)
	case Uint64:
		var v uint64
		v, ok = value.(uint64)
		binary.LittleEndian.PutUint64(buf, v)
	case Int8:
		var v int8
		v, ok = value.(int8)
		buf[0] = byte(v)
	case Int16:
		var v int16
		v, ok = value.(int16)
		binary.LittleEndian.PutUint16(buf, uint16(v))
	case Int32:
		var v int32
		v, ok = value.(int32)
		binary.LittleEndian.PutUint32(buf, uint32(v))
	case Int64:
		var v int64
		v, ok = value.(int64)
		binary.LittleEndian.PutUint64(buf, uint64(v))
	case Float32:
		var v float32
		v, ok = value.(float32)
		binary.LittleEndian.PutUint32(buf, math.Float32bits(v))
	case Float64:
		var v float64
		v, ok = value.(float64)
		binary.LittleEndian.PutUint64(buf, math.Float64bits(v))
	case Address:
		var v lumen.Address
		v, ok = value.(lumen.Address)
		copy(buf, v[:])
	default:
		return nil, fmt.Errorf("unsupported type: %v", t)
	}
	if !ok {
		return nil, fmt.Errorf("%w: cannot use %T as %v", ErrArgumentMismatch, value, t)
	}
	return buf, nil
}

func decodeValue(p Parameter, data []byte) (any, error) {
	if !p.IsArray {
		return decodeScalar(p.Type, data)
	}
	switch p.Type {
	case Uint8:
		return decodeArray[uint8](p.Type, data)
	case Uint16:
		return decodeArray[uint16](p.Type, data)
	case Uint32:
		return decodeArray[uint32](p.Type, data)
	case Uint64:
		return decodeArray[uint64](p.Type, data)
	case Int8:
		return decodeArray[int8](p.Type, data)
	case Int16:
		return decodeArray[int16](p.Type, data)
	case Int32:
		return decodeArray[int32](p.Type, data)
	case Int64:
		return decodeArray[int64](p.Type, data)
	case Float32:
		return decodeArray[float32](p.Type, data)
	case Float64:
		return decodeArray[float64](p.Type, data)
	case Address:
		return decodeArray[lumen.Address](p.Type, data)
	}
	return nil, fmt.Errorf("unsupported type: %v", p.Type)
}

func decodeArray[T any](t Type, data []byte) ([]T, error) {
	size := t.Size()
	res := make([]T, 0, len(data)/size)
	for offset := 0; offset+size <= len(data); offset += size {
		value, err := decodeScalar(t, data[offset:offset+size])
		if err != nil {
			return nil, err
		}
		res = append(res, value.(T))
	}
	return res, nil
}

func decodeScalar(t Type, data []byte) (any, error) {
	if len(data) != t.Size() {
		return nil, fmt.Errorf("%w: %d bytes for %v", ErrArgumentMismatch, len(data), t)
	}
	switch t {
	case Uint8:
		return data[0], nil
	case Uint16:
		return binary.LittleEndian.Uint16(data), nil
	case Uint32:
		return binary.LittleEndian.Uint32(data), nil
	case Uint64:
		return binary.LittleEndian.Uint64(data), nil
	case Int8:
		return int8(data[0]), nil
	case Int16:
		return int16(binary.LittleEndian.Uint16(data)), nil
	case Int32:
		return int32(binary.LittleEndian.Uint32(data)), nil
	case Int64:
		return int64(binary.LittleEndian.Uint64(data)), nil
	case Float32:
		return math.Float32frombits(binary.LittleEndian.Uint32(data)), nil
	case Float64:
		return math.Float64frombits(binary.LittleEndian.Uint64(data)), nil
	case Address:
		return lumen.Address(data), nil
	}
	return nil, fmt.Errorf("unsupported type: %v", t)
}
