// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package floria

import (
	"fmt"

	"github.com/lumen-chain/lumen/go/abi"
	"github.com/lumen-chain/lumen/go/crypto"
	"github.com/lumen-chain/lumen/go/gas"
	"github.com/lumen-chain/lumen/go/lumen"
	"github.com/lumen-chain/lumen/go/vm"
)

// runContext holds the state shared by all frames of a transaction.
type runContext struct {
	lumen.TransactionContext
	blockParameters lumen.BlockParameters
	config          Config
	meter           *gas.Meter
	deepest         int

	// err is the first fatal error raised by the host. It aborts the
	// transaction even if a contract drops it.
	err error
}

// abort records err as fatal unless an earlier fatal error exists, and
// returns it.
func (r *runContext) abort(err error) error {
	if r.err == nil {
		r.err = err
	}
	return err
}

func (r *runContext) charge(amount lumen.Gas) error {
	if err := r.meter.Charge(amount); err != nil {
		return r.abort(err)
	}
	return nil
}

func (r *runContext) deploy(transaction lumen.Transaction) (uint64, *lumen.Address, error) {
	contract, found := vm.GetContract(transaction.Code)
	if !found {
		return 0, nil, fmt.Errorf("%w: no implementation for code %q", vm.ErrContractNotFound, transaction.Code)
	}
	address := crypto.NewDeploymentAddress(transaction.Sender, transaction.Nonce)
	if r.AccountExists(address) {
		return 0, nil, fmt.Errorf("%w: %v", vm.ErrAddressCollision, address)
	}
	size := len(transaction.Code) + len(transaction.Input)
	if err := r.charge(r.config.GasPolicy.GetCostForContract(size)); err != nil {
		return 0, nil, err
	}
	r.CreateAccount(address, transaction.Sender, transaction.Code)

	init, err := contract.Header().GetFunction(InitMethod)
	if err != nil {
		if len(transaction.Input) > 0 {
			return 0, nil, fmt.Errorf("%w: contract %q has no %s method", vm.ErrMethodNotFound, transaction.Code, InitMethod)
		}
		return 0, &address, nil
	}
	result, err := r.runTopFrame(address, transaction.Sender, contract, init, transaction.Input)
	return result, &address, err
}

func (r *runContext) call(transaction lumen.Transaction) (uint64, error) {
	recipient := *transaction.Recipient
	code := r.GetCode(recipient)
	contract, found := vm.GetContract(code)
	if code == "" || !found {
		return 0, fmt.Errorf("%w: %v", vm.ErrContractNotFound, recipient)
	}
	function, err := contract.Header().GetFunction(transaction.Method)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", vm.ErrMethodNotFound, transaction.Method)
	}
	return r.runTopFrame(recipient, transaction.Sender, contract, function, transaction.Input)
}

func (r *runContext) runTopFrame(
	address lumen.Address,
	sender lumen.Address,
	contract vm.Contract,
	function *abi.Function,
	input lumen.Data,
) (uint64, error) {
	args, err := abi.DecodeBuffer(function.Parameters, input)
	if err != nil {
		return 0, fmt.Errorf("invalid arguments for %s: %w", function.Name, err)
	}
	if err := r.checkArgumentSize(args); err != nil {
		return 0, err
	}
	if err := r.charge(r.config.GasPolicy.GetCostForCall()); err != nil {
		return 0, err
	}
	return r.newFrame(address, sender, contract, 1).execute(function, args)
}

func (r *runContext) checkArgumentSize(args *abi.Buffer) error {
	if size := args.TotalSize(); size > r.config.MaxArgumentBytes {
		return fmt.Errorf("%w: %d > %d", vm.ErrArgumentsTooLarge, size, r.config.MaxArgumentBytes)
	}
	return nil
}

func (r *runContext) newFrame(address, caller lumen.Address, contract vm.Contract, depth int) *frame {
	if depth > r.deepest {
		r.deepest = depth
	}
	return &frame{
		run:      r,
		address:  address,
		caller:   caller,
		contract: contract,
		bindings: map[string]binding{},
		depth:    depth,
	}
}

// frame is the host of a single method execution. Bindings are local to
// the frame; a nested frame starts without any.
type frame struct {
	run      *runContext
	address  lumen.Address
	caller   lumen.Address
	contract vm.Contract
	bindings map[string]binding
	depth    int
}

// binding is a remote method resolved by MethodBind.
type binding struct {
	address  lumen.Address
	contract vm.Contract
	function *abi.Function
}

// execute runs a method of the frame's contract. A panicking contract is
// reported as a fatal error.
func (f *frame) execute(function *abi.Function, args *abi.Buffer) (result uint64, err error) {
	defer func() {
		if r := recover(); r != nil {
			result, err = 0, f.run.abort(fmt.Errorf("%w: %s in %v: %v", vm.ErrContractPanic, function.Name, f.address, r))
		}
	}()
	return f.contract.Call(f, function, args)
}

func (f *frame) ContractAddress() lumen.Address {
	return f.address
}

func (f *frame) Caller() lumen.Address {
	return f.caller
}

func (f *frame) Creator() lumen.Address {
	return f.run.GetCreator(f.address)
}

func (f *frame) BlockHeight() uint64 {
	return f.run.blockParameters.Height
}

func (f *frame) BlockTime() uint64 {
	return f.run.blockParameters.Time
}

func (f *frame) SetStorage(key, value []byte) error {
	if err := f.run.charge(f.run.config.GasPolicy.GetCostForStorage(len(value))); err != nil {
		return err
	}
	f.run.SetStorage(f.address, key, value)
	return nil
}

func (f *frame) StorageSize(key []byte) int {
	value, _ := f.run.GetStorage(f.address, key)
	return len(value)
}

func (f *frame) GetStorage(key []byte) ([]byte, error) {
	value, found := f.run.GetStorage(f.address, key)
	if !found {
		return nil, lumen.ErrNotFound
	}
	return value, nil
}

func (f *frame) ArgsHash(args *abi.Buffer) (lumen.Hash, error) {
	if args == nil {
		args = abi.NewBuffer()
	}
	if err := f.run.charge(f.run.config.GasPolicy.GetCostForHash(args.TotalSize())); err != nil {
		return lumen.Hash{}, err
	}
	return crypto.HashArgs(args.Fields())
}

func (f *frame) VerifyEd25519(address lumen.Address, digest, signature []byte) (bool, error) {
	if err := f.run.charge(f.run.config.GasPolicy.GetCostForVerify()); err != nil {
		return false, err
	}
	return crypto.VerifySignature(address, digest, signature)
}

func (f *frame) Emit(name string, values ...any) error {
	event, err := f.contract.Header().GetEvent(name)
	if err != nil {
		return f.run.abort(fmt.Errorf("%w: %s", vm.ErrUnknownEvent, name))
	}
	data, err := abi.Encode(event.Parameters, values...)
	if err != nil {
		return f.run.abort(fmt.Errorf("event %s: %w", name, err))
	}
	if err := f.run.charge(f.run.config.GasPolicy.GetCostForEvent(len(data))); err != nil {
		return err
	}
	f.run.EmitEvent(lumen.Event{
		Contract: f.address,
		Name:     name,
		ID:       event.ID(),
		Args:     data,
	})
	return nil
}
