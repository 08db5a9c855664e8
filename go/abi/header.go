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
	"fmt"
	"slices"
	"strings"

	"github.com/lumen-chain/lumen/go/crypto"
	"github.com/lumen-chain/lumen/go/lumen"
)

const (
	ErrDuplicatedFunction = lumen.ConstError("duplicated function method id")
	ErrDuplicatedEvent    = lumen.ConstError("duplicated event method id")
	ErrFunctionNotFound   = lumen.ConstError("function not found")
	ErrEventNotFound      = lumen.ConstError("event not found")
)

// Function declares an exported contract method.
type Function struct {
	Name       string      `json:"name"`
	Parameters []Parameter `json:"parameters"`
}

func (f *Function) ID() lumen.MethodID {
	return crypto.GetMethodID(f.Name)
}

func (f *Function) String() string {
	return signature(f.Name, f.Parameters)
}

// Event declares an event a contract may emit.
type Event struct {
	Name       string      `json:"name"`
	Parameters []Parameter `json:"parameters"`
}

func (e *Event) ID() lumen.MethodID {
	return crypto.GetMethodID(e.Name)
}

func (e *Event) String() string {
	return signature(e.Name, e.Parameters)
}

func signature(name string, params []Parameter) string {
	var buffer bytes.Buffer
	buffer.WriteString(name)
	buffer.WriteByte('(')
	for i, p := range params {
		if i > 0 {
			buffer.WriteString(", ")
		}
		buffer.WriteString(p.String())
	}
	buffer.WriteByte(')')
	return buffer.String()
}

// Header is the declared interface of a contract: its functions and events
// indexed by method id.
type Header struct {
	functions map[lumen.MethodID]*Function
	events    map[lumen.MethodID]*Event
}

// NewHeader indexes the given declarations. Two declarations of the same
// kind that map to the same method id are rejected.
func NewHeader(functions []Function, events []Event) (*Header, error) {
	res := &Header{
		functions: make(map[lumen.MethodID]*Function, len(functions)),
		events:    make(map[lumen.MethodID]*Event, len(events)),
	}
	for i := range functions {
		function := &functions[i]
		if err := checkParameters(function.Parameters); err != nil {
			return nil, fmt.Errorf("function %s: %w", function.Name, err)
		}
		id := function.ID()
		if _, found := res.functions[id]; found {
			return nil, fmt.Errorf("%w: %s", ErrDuplicatedFunction, function.Name)
		}
		res.functions[id] = function
	}
	for i := range events {
		event := &events[i]
		if err := checkParameters(event.Parameters); err != nil {
			return nil, fmt.Errorf("event %s: %w", event.Name, err)
		}
		id := event.ID()
		if _, found := res.events[id]; found {
			return nil, fmt.Errorf("%w: %s", ErrDuplicatedEvent, event.Name)
		}
		res.events[id] = event
	}
	return res, nil
}

// MustNewHeader is like NewHeader but panics on invalid declarations. It
// is intended for package-level contract definitions.
func MustNewHeader(functions []Function, events []Event) *Header {
	res, err := NewHeader(functions, events)
	if err != nil {
		panic(err)
	}
	return res
}

func checkParameters(params []Parameter) error {
	for _, p := range params {
		if !p.Type.IsValid() {
			return fmt.Errorf("parameter %s has invalid type %v", p.Name, p.Type)
		}
	}
	return nil
}

// GetFunction returns the function declared under the given name.
func (h *Header) GetFunction(name string) (*Function, error) {
	if f, found := h.functions[crypto.GetMethodID(name)]; found && f.Name == name {
		return f, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrFunctionNotFound, name)
}

// GetFunctionByID returns the function declared under the given method id.
func (h *Header) GetFunctionByID(id lumen.MethodID) (*Function, error) {
	if f, found := h.functions[id]; found {
		return f, nil
	}
	return nil, fmt.Errorf("%w: %v", ErrFunctionNotFound, id)
}

// GetEvent returns the event declared under the given name.
func (h *Header) GetEvent(name string) (*Event, error) {
	if e, found := h.events[crypto.GetMethodID(name)]; found && e.Name == name {
		return e, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrEventNotFound, name)
}

// Functions lists the declared functions ordered by name.
func (h *Header) Functions() []*Function {
	res := make([]*Function, 0, len(h.functions))
	for _, f := range h.functions {
		res = append(res, f)
	}
	slices.SortFunc(res, func(a, b *Function) int {
		return strings.Compare(a.Name, b.Name)
	})
	return res
}

// Events lists the declared events ordered by name.
func (h *Header) Events() []*Event {
	res := make([]*Event, 0, len(h.events))
	for _, e := range h.events {
		res = append(res, e)
	}
	slices.SortFunc(res, func(a, b *Event) int {
		return strings.Compare(a.Name, b.Name)
	})
	return res
}
