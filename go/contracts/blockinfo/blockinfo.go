// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

// Package blockinfo exposes the parameters of the current block.
package blockinfo

import (
	"github.com/lumen-chain/lumen/go/abi"
	"github.com/lumen-chain/lumen/go/lumen"
	"github.com/lumen-chain/lumen/go/vm"
)

const Code lumen.Code = "blockinfo"

func init() {
	vm.MustRegisterContract(Code, vm.MustNewContract([]vm.Method{
		{
			Function: abi.Function{Name: "block_height"},
			Run:      func(host vm.Host, _ *abi.Buffer) (uint64, error) { return host.BlockHeight(), nil },
		},
		{
			Function: abi.Function{Name: "block_time"},
			Run:      func(host vm.Host, _ *abi.Buffer) (uint64, error) { return host.BlockTime(), nil },
		},
	}, nil))
}
