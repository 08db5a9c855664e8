// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

// Package abi describes the typed interface of contracts and the argument
// buffers passed across call boundaries.
package abi

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/lumen-chain/lumen/go/lumen"
)

// Type enumerates the primitive argument types.
type Type uint8

const (
	Uint8 Type = iota
	Uint16
	Uint32
	Uint64
	Int8
	Int16
	Int32
	Int64
	Float32
	Float64
	Address
)

func (t Type) String() string {
	switch t {
	case Uint8:
		return "uint8"
	case Uint16:
		return "uint16"
	case Uint32:
		return "uint32"
	case Uint64:
		return "uint64"
	case Int8:
		return "int8"
	case Int16:
		return "int16"
	case Int32:
		return "int32"
	case Int64:
		return "int64"
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	case Address:
		return "address"
	}
	return fmt.Sprintf("Type(%d)", t)
}

// Size returns the number of bytes of a single value of the type.
func (t Type) Size() int {
	switch t {
	case Uint8, Int8:
		return 1
	case Uint16, Int16:
		return 2
	case Uint32, Int32, Float32:
		return 4
	case Uint64, Int64, Float64:
		return 8
	case Address:
		return lumen.AddressLength
	}
	return 0
}

func (t Type) IsValid() bool {
	return t <= Address
}

// GetAllTypes lists every primitive type.
func GetAllTypes() []Type {
	return []Type{
		Uint8, Uint16, Uint32, Uint64,
		Int8, Int16, Int32, Int64,
		Float32, Float64, Address,
	}
}

// ParseType resolves the name of a primitive type.
func ParseType(name string) (Type, error) {
	for _, t := range GetAllTypes() {
		if t.String() == name {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unsupported type: %q", name)
}

// Parameter describes a single typed argument of a function or event.
type Parameter struct {
	Name    string
	Type    Type
	IsArray bool
}

// TypeName returns the type of the parameter in text form, e.g. "int32[]".
func (p Parameter) TypeName() string {
	if p.IsArray {
		return p.Type.String() + "[]"
	}
	return p.Type.String()
}

func (p Parameter) String() string {
	if p.Name == "" {
		return p.TypeName()
	}
	return p.Name + " " + p.TypeName()
}

type parameterJSON struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

func (p Parameter) MarshalJSON() ([]byte, error) {
	return json.Marshal(parameterJSON{Name: p.Name, Type: p.TypeName()})
}

func (p *Parameter) UnmarshalJSON(data []byte) error {
	var raw parameterJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	name, isArray := strings.CutSuffix(raw.Type, "[]")
	t, err := ParseType(name)
	if err != nil {
		return err
	}
	*p = Parameter{Name: raw.Name, Type: t, IsArray: isArray}
	return nil
}

// Param is a shorthand constructor for scalar parameters.
func Param(name string, t Type) Parameter {
	return Parameter{Name: name, Type: t}
}

// ArrayParam is a shorthand constructor for array parameters.
func ArrayParam(name string, t Type) Parameter {
	return Parameter{Name: name, Type: t, IsArray: true}
}
