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
	"errors"
	"fmt"

	"github.com/lumen-chain/lumen/go/abi"
	"github.com/lumen-chain/lumen/go/lumen"
	"github.com/lumen-chain/lumen/go/vm"
)

func (f *frame) MethodBind(remote lumen.Address, remoteName, localName string) error {
	code := f.run.GetCode(remote)
	contract, found := vm.GetContract(code)
	if code == "" || !found {
		return f.run.abort(fmt.Errorf("%w: no contract at %v", &vm.UnresolvedImportError{Name: remoteName}, remote))
	}
	function, err := contract.Header().GetFunction(remoteName)
	if err != nil {
		return f.run.abort(fmt.Errorf("%w: %v", &vm.UnresolvedImportError{Name: remoteName}, err))
	}
	f.bindings[localName] = binding{
		address:  remote,
		contract: contract,
		function: function,
	}
	return nil
}

// Invoke runs a bound method in a nested frame. Any error it reports is
// fatal for the transaction; a failure result is not.
func (f *frame) Invoke(localName string, args *abi.Buffer) (uint64, error) {
	result, err := f.invoke(localName, args)
	if err != nil {
		return 0, f.run.abort(err)
	}
	return result, nil
}

func (f *frame) invoke(localName string, args *abi.Buffer) (uint64, error) {
	target, found := f.bindings[localName]
	if !found {
		return 0, &vm.UnresolvedImportError{Name: localName}
	}
	if f.depth >= f.run.config.MaxCallDepth {
		return 0, vm.ErrCallDepthExceeded
	}
	if err := f.run.charge(f.run.config.GasPolicy.GetCostForCall()); err != nil {
		return 0, err
	}

	input := abi.NewBuffer()
	if args != nil {
		input = args.Clone()
	}
	if err := f.run.checkArgumentSize(input); err != nil {
		return 0, err
	}
	if err := abi.Check(target.function.Parameters, input); err != nil {
		return 0, fmt.Errorf("invalid arguments for %s: %w", localName, err)
	}

	child := f.run.newFrame(target.address, f.address, target.contract, f.depth+1)
	snapshot := f.run.CreateSnapshot()
	result, err := child.execute(target.function, input)
	if errors.Is(err, lumen.ErrFailure) {
		result, err = lumen.Failure, nil
	}
	if err != nil || result == lumen.Failure {
		f.run.RestoreSnapshot(snapshot)
	}
	if err != nil {
		return 0, err
	}
	return result, nil
}
