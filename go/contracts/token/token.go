// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

// Package token implements a fungible token with an unrestricted faucet
// and transfers authorized by a signature of the paying account.
package token

import (
	"crypto/ed25519"
	"encoding/binary"
	"errors"

	"github.com/lumen-chain/lumen/go/abi"
	"github.com/lumen-chain/lumen/go/crypto"
	"github.com/lumen-chain/lumen/go/ledger"
	"github.com/lumen-chain/lumen/go/lumen"
	"github.com/lumen-chain/lumen/go/nonce"
	"github.com/lumen-chain/lumen/go/vm"
)

const Code lumen.Code = "token"

var (
	MintFunction = abi.Function{Name: "mint", Parameters: []abi.Parameter{
		abi.Param("amount", abi.Uint64),
	}}
	GetBalanceFunction = abi.Function{Name: "get_balance", Parameters: []abi.Parameter{
		abi.Param("address", abi.Address),
	}}
	TransferFunction = abi.Function{Name: "transfer", Parameters: []abi.Parameter{
		abi.Param("to", abi.Address),
		abi.Param("amount", abi.Uint64),
	}}
	DelegatedTransferFunction = abi.Function{Name: "delegated_transfer", Parameters: []abi.Parameter{
		abi.Param("to", abi.Address),
		abi.Param("amount", abi.Uint64),
		abi.Param("caller", abi.Address),
		abi.Param("nonce", abi.Uint32),
		abi.ArrayParam("signature", abi.Uint8),
	}}
)

func init() {
	vm.MustRegisterContract(Code, vm.MustNewContract([]vm.Method{
		{Function: MintFunction, Run: mint},
		{Function: GetBalanceFunction, Run: getBalance},
		{Function: TransferFunction, Run: transfer},
		{Function: DelegatedTransferFunction, Run: delegatedTransfer},
	}, nil))
}

// result maps rejected balance changes to the failure word and passes
// other errors on.
func result(err error) (uint64, error) {
	if errors.Is(err, ledger.ErrInsufficientFunds) || errors.Is(err, ledger.ErrBalanceOverflow) {
		return lumen.Failure, nil
	}
	if err != nil {
		return 0, err
	}
	return 0, nil
}

func mint(host vm.Host, args *abi.Buffer) (uint64, error) {
	amount, err := args.Uint64(0)
	if err != nil {
		return 0, err
	}
	return result(ledger.Mint(host, host.Caller(), amount))
}

func getBalance(host vm.Host, args *abi.Buffer) (uint64, error) {
	address, err := args.Address(0)
	if err != nil {
		return 0, err
	}
	return ledger.Balance(host, address)
}

func transfer(host vm.Host, args *abi.Buffer) (uint64, error) {
	to, err := args.Address(0)
	if err != nil {
		return 0, err
	}
	amount, err := args.Uint64(1)
	if err != nil {
		return 0, err
	}
	return result(ledger.Transfer(host, host.Caller(), to, amount))
}

// DelegationMessage builds the argument list signed by the paying account
// of a delegated transfer: the receiver, the token contract, the amount
// and the nonce.
func DelegationMessage(to, contract lumen.Address, amount uint64, nonce uint32) *abi.Buffer {
	message := abi.NewBuffer()
	message.WriteAddress(to)
	message.WriteAddress(contract)
	message.Write(binary.LittleEndian.AppendUint64(nil, amount))
	message.Write(binary.LittleEndian.AppendUint32(nil, nonce))
	return message
}

// SignDelegation produces the signature authorizing a delegated transfer.
func SignDelegation(key ed25519.PrivateKey, to, contract lumen.Address, amount uint64, nonce uint32) ([]byte, error) {
	digest, err := crypto.HashArgs(DelegationMessage(to, contract, amount, nonce).Fields())
	if err != nil {
		return nil, err
	}
	return crypto.Sign(key, digest[:]), nil
}

func delegatedTransfer(host vm.Host, args *abi.Buffer) (uint64, error) {
	to, err := args.Address(0)
	if err != nil {
		return 0, err
	}
	amount, err := args.Uint64(1)
	if err != nil {
		return 0, err
	}
	payer, err := args.Address(2)
	if err != nil {
		return 0, err
	}
	n, err := args.Uint32(3)
	if err != nil {
		return 0, err
	}
	signature, err := args.Uint8Array(4)
	if err != nil {
		return 0, err
	}

	consumed, err := nonce.Consumed(host, payer, n)
	if err != nil {
		return 0, err
	}
	if consumed {
		return lumen.Failure, nil
	}

	digest, err := host.ArgsHash(DelegationMessage(to, host.ContractAddress(), amount, n))
	if err != nil {
		return 0, err
	}
	valid, err := host.VerifyEd25519(payer, digest[:], signature)
	if err != nil {
		return 0, err
	}
	if !valid {
		return lumen.Failure, nil
	}

	if err := ledger.Transfer(host, payer, to, amount); err != nil {
		return result(err)
	}
	return 0, nonce.Consume(host, payer, n)
}
