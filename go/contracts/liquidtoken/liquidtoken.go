// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

// Package liquidtoken implements an administrated token: minting is
// restricted to an owner and transfers can be paused.
package liquidtoken

import (
	"errors"

	"github.com/lumen-chain/lumen/go/abi"
	"github.com/lumen-chain/lumen/go/ledger"
	"github.com/lumen-chain/lumen/go/lumen"
	"github.com/lumen-chain/lumen/go/vm"
)

const (
	Code lumen.Code = "liquid-token"

	MintEvent     = "Mint"
	TransferEvent = "Transfer"
)

var pauseKey = []byte("IS_PAUSE")

var (
	amountParam = abi.Param("amount", abi.Uint64)
	toParam     = abi.Param("to", abi.Address)
)

func init() {
	vm.MustRegisterContract(Code, vm.MustNewContract([]vm.Method{
		{Function: abi.Function{Name: "init", Parameters: []abi.Parameter{amountParam}}, Run: initialize},
		{Function: abi.Function{Name: "mint", Parameters: []abi.Parameter{amountParam}}, Run: mint},
		{Function: abi.Function{Name: "get_balance", Parameters: []abi.Parameter{abi.Param("address", abi.Address)}}, Run: getBalance},
		{Function: abi.Function{Name: "transfer", Parameters: []abi.Parameter{toParam, amountParam}}, Run: transfer},
		{Function: abi.Function{Name: "transfer_with_memo", Parameters: []abi.Parameter{toParam, amountParam, abi.Param("memo", abi.Uint64)}}, Run: transferWithMemo},
		{Function: abi.Function{Name: "set_owner", Parameters: []abi.Parameter{abi.Param("owner", abi.Address)}}, Run: setOwner},
		{Function: abi.Function{Name: "pause"}, Run: setPause(1)},
		{Function: abi.Function{Name: "unpause"}, Run: setPause(0)},
		{Function: abi.Function{Name: "is_pausing"}, Run: isPausing},
	}, []abi.Event{
		{Name: MintEvent, Parameters: []abi.Parameter{toParam, amountParam}},
		{Name: TransferEvent, Parameters: []abi.Parameter{
			abi.Param("from", abi.Address),
			toParam,
			amountParam,
			abi.Param("memo", abi.Uint64),
		}},
	}))
}

func rejected(err error) bool {
	return errors.Is(err, ledger.ErrInsufficientFunds) ||
		errors.Is(err, ledger.ErrBalanceOverflow) ||
		errors.Is(err, ledger.ErrNotOwner)
}

func credit(host vm.Host, amount uint64) (uint64, error) {
	caller := host.Caller()
	if err := ledger.Mint(host, caller, amount); err != nil {
		if rejected(err) {
			return lumen.Failure, nil
		}
		return 0, err
	}
	return 0, host.Emit(MintEvent, caller, amount)
}

// initialize makes the creator the owner and credits the initial supply to
// the deploying account. It can only run once.
func initialize(host vm.Host, args *abi.Buffer) (uint64, error) {
	amount, err := args.Uint64(0)
	if err != nil {
		return 0, err
	}
	if _, found, err := ledger.Owner(host); err != nil || found {
		if err != nil {
			return 0, err
		}
		return lumen.Failure, nil
	}
	if err := ledger.SetOwner(host, host.Creator()); err != nil {
		return 0, err
	}
	return credit(host, amount)
}

func mint(host vm.Host, args *abi.Buffer) (uint64, error) {
	amount, err := args.Uint64(0)
	if err != nil {
		return 0, err
	}
	if _, err := ledger.EnsureGenesisOwner(host, host.Creator()); err != nil {
		return 0, err
	}
	if err := ledger.CheckOwner(host, host.Caller()); err != nil {
		if rejected(err) {
			return lumen.Failure, nil
		}
		return 0, err
	}
	return credit(host, amount)
}

func getBalance(host vm.Host, args *abi.Buffer) (uint64, error) {
	address, err := args.Address(0)
	if err != nil {
		return 0, err
	}
	return ledger.Balance(host, address)
}

func transfer(host vm.Host, args *abi.Buffer) (uint64, error) {
	return doTransfer(host, args, 0)
}

func transferWithMemo(host vm.Host, args *abi.Buffer) (uint64, error) {
	memo, err := args.Uint64(2)
	if err != nil {
		return 0, err
	}
	return doTransfer(host, args, memo)
}

func doTransfer(host vm.Host, args *abi.Buffer, memo uint64) (uint64, error) {
	to, err := args.Address(0)
	if err != nil {
		return 0, err
	}
	amount, err := args.Uint64(1)
	if err != nil {
		return 0, err
	}
	if paused(host) {
		return lumen.Failure, nil
	}
	from := host.Caller()
	if err := ledger.Transfer(host, from, to, amount); err != nil {
		if rejected(err) {
			return lumen.Failure, nil
		}
		return 0, err
	}
	return 0, host.Emit(TransferEvent, from, to, amount, memo)
}

func setOwner(host vm.Host, args *abi.Buffer) (uint64, error) {
	owner, err := args.Address(0)
	if err != nil {
		return 0, err
	}
	if err := ledger.CheckOwner(host, host.Caller()); err != nil {
		if rejected(err) {
			return lumen.Failure, nil
		}
		return 0, err
	}
	return 0, ledger.SetOwner(host, owner)
}

func setPause(value byte) func(vm.Host, *abi.Buffer) (uint64, error) {
	return func(host vm.Host, _ *abi.Buffer) (uint64, error) {
		if err := ledger.CheckOwner(host, host.Caller()); err != nil {
			if rejected(err) {
				return lumen.Failure, nil
			}
			return 0, err
		}
		return 0, host.SetStorage(pauseKey, []byte{value})
	}
}

func paused(host vm.Host) bool {
	data, err := host.GetStorage(pauseKey)
	return err == nil && len(data) == 1 && data[0] != 0
}

func isPausing(host vm.Host, _ *abi.Buffer) (uint64, error) {
	if paused(host) {
		return 1, nil
	}
	return 0, nil
}
