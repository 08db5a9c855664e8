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
	"fmt"
	"strconv"
	"strings"

	"github.com/lumen-chain/lumen/go/crypto"
	"github.com/lumen-chain/lumen/go/lumen"
)

// EncodeFromStrings parses textual arguments, as given on a command line,
// and returns their wire form. Arrays are written as "[1,2,3]", addresses
// in their base32 text form.
func EncodeFromStrings(params []Parameter, args []string) ([]byte, error) {
	if want, got := len(params), len(args); want != got {
		return nil, fmt.Errorf("%w, expecting: %d, got: %d", ErrArgumentCount, want, got)
	}
	values := make([]any, len(params))
	for i, p := range params {
		value, err := ParseValue(p, args[i])
		if err != nil {
			return nil, fmt.Errorf("parameter %d: %w", i, err)
		}
		values[i] = value
	}
	return Encode(params, values...)
}

// ParseValue converts the text form of an argument into the Go value
// expected by Pack for the given parameter.
func ParseValue(p Parameter, text string) (any, error) {
	text = strings.TrimSpace(text)
	if !p.IsArray {
		return parseScalar(p.Type, text)
	}
	if len(text) < 2 || text[0] != '[' || text[len(text)-1] != ']' {
		return nil, fmt.Errorf("wrong array value format, expected [value], got: %s", text)
	}
	var elements []string
	if inner := strings.TrimSpace(text[1 : len(text)-1]); inner != "" {
		elements = strings.Split(inner, ",")
	}
	switch p.Type {
	case Uint8:
		return parseArray[uint8](p.Type, elements)
	case Uint16:
		return parseArray[uint16](p.Type, elements)
	case Uint32:
		return parseArray[uint32](p.Type, elements)
	case Uint64:
		return parseArray[uint64](p.Type, elements)
	case Int8:
		return parseArray[int8](p.Type, elements)
	case Int16:
		return parseArray[int16](p.Type, elements)
	case Int32:
		return parseArray[int32](p.Type, elements)
	case Int64:
		return parseArray[int64](p.Type, elements)
	case Float32:
		return parseArray[float32](p.Type, elements)
	case Float64:
		return parseArray[float64](p.Type, elements)
	case Address:
		return parseArray[lumen.Address](p.Type, elements)
	}
	return nil, fmt.Errorf("unsupported type: %v", p.Type)
}

func parseArray[T any](t Type, elements []string) ([]T, error) {
	res := make([]T, 0, len(elements))
	for _, element := range elements {
		value, err := parseScalar(t, strings.TrimSpace(element))
		if err != nil {
			return nil, err
		}
		res = append(res, value.(T))
	}
	return res, nil
}

func parseScalar(t Type, text string) (any, error) {
	switch t {
	case Uint8, Uint16, Uint32, Uint64:
		v, err := strconv.ParseUint(text, 0, 8*t.Size())
		if err != nil {
			return nil, err
		}
		switch t {
		case Uint8:
			return uint8(v), nil
		case Uint16:
			return uint16(v), nil
		case Uint32:
			return uint32(v), nil
		}
		return v, nil
	case Int8, Int16, Int32, Int64:
		v, err := strconv.ParseInt(text, 0, 8*t.Size())
		if err != nil {
			return nil, err
		}
		switch t {
		case Int8:
			return int8(v), nil
		case Int16:
			return int16(v), nil
		case Int32:
			return int32(v), nil
		}
		return v, nil
	case Float32:
		v, err := strconv.ParseFloat(text, 32)
		if err != nil {
			return nil, err
		}
		return float32(v), nil
	case Float64:
		return strconv.ParseFloat(text, 64)
	case Address:
		return crypto.AddressFromString(text)
	}
	return nil, fmt.Errorf("unsupported type: %v", t)
}
