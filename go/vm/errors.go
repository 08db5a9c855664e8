// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package vm

import (
	"fmt"

	"github.com/lumen-chain/lumen/go/lumen"
)

const (
	ErrCallDepthExceeded  = lumen.ConstError("call depth limit reached")
	ErrArgumentsTooLarge  = lumen.ConstError("arguments byte size exceeds limit")
	ErrUnresolvedImport   = lumen.ConstError("unresolved import")
	ErrContractNotFound   = lumen.ConstError("contract not found")
	ErrMethodNotFound     = lumen.ConstError("method not found")
	ErrUnknownEvent       = lumen.ConstError("unknown event")
	ErrAddressCollision   = lumen.ConstError("contract address already in use")
	ErrContractRegistered = lumen.ConstError("contract code already registered")
	ErrContractPanic      = lumen.ConstError("contract panicked")
)

// UnresolvedImportError is reported when a frame calls or binds a method
// that can not be resolved.
type UnresolvedImportError struct {
	Name string
}

func (e *UnresolvedImportError) Error() string {
	return fmt.Sprintf("unknown import %s", e.Name)
}

func (e *UnresolvedImportError) Is(target error) bool {
	return target == ErrUnresolvedImport
}
