// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package main

import (
	"fmt"

	"github.com/lumen-chain/lumen/go/abi"
	"github.com/lumen-chain/lumen/go/crypto"
	"github.com/lumen-chain/lumen/go/lumen"
	"github.com/lumen-chain/lumen/go/processor/floria"
	"github.com/urfave/cli/v2"
)

var DeployCmd = cli.Command{
	Action:    doDeploy,
	Name:      "deploy",
	Usage:     "Deploys a contract, running its init method with the given arguments",
	ArgsUsage: "<contract> [init arguments...]",
	Flags:     append([]cli.Flag{SeedFlag}, BlockFlags.Flags()...),
}

var dryRunFlag = &cli.BoolFlag{
	Name:  "dry-run",
	Usage: "execute the call without committing its effects",
}

var CallCmd = cli.Command{
	Action:    doCall,
	Name:      "call",
	Usage:     "Calls a method of a deployed contract",
	ArgsUsage: "<address> <method> [arguments...]",
	Flags:     append([]cli.Flag{SeedFlag, dryRunFlag}, BlockFlags.Flags()...),
}

func doDeploy(context *cli.Context) error {
	if context.Args().Len() < 1 {
		return fmt.Errorf("missing contract, see --help")
	}
	_, sender, err := SeedFlag.Fetch(context, false)
	if err != nil {
		return err
	}
	code := lumen.Code(context.Args().First())
	contract, err := lookupContract(code)
	if err != nil {
		return err
	}

	transaction := lumen.Transaction{Sender: sender, Code: code}
	if constructor, err := contract.Header().GetFunction(floria.InitMethod); err == nil {
		input, err := abi.EncodeFromStrings(constructor.Parameters, context.Args().Tail())
		if err != nil {
			return fmt.Errorf("invalid arguments for %v: %w", constructor, err)
		}
		transaction.Method = constructor.Name
		transaction.Input = input
	} else if context.Args().Len() > 1 {
		return fmt.Errorf("contract %s has no %s method taking arguments", code, floria.InitMethod)
	}
	return submit(context, transaction, false)
}

func doCall(context *cli.Context) error {
	if context.Args().Len() < 2 {
		return fmt.Errorf("missing address or method, see --help")
	}
	dryRun := context.Bool(dryRunFlag.Name)
	_, sender, err := SeedFlag.Fetch(context, dryRun)
	if err != nil {
		return err
	}
	address, err := crypto.AddressFromString(context.Args().Get(0))
	if err != nil {
		return err
	}
	return submit(context, lumen.Transaction{
		Sender:    sender,
		Recipient: &address,
		Method:    context.Args().Get(1),
	}, dryRun)
}

// submit completes a transaction with the sender nonce and the encoded
// call arguments and runs it.
func submit(context *cli.Context, transaction lumen.Transaction, dryRun bool) (err error) {
	node, err := openNode(context)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := node.Close(); err == nil {
			err = closeErr
		}
	}()

	if transaction.Recipient != nil {
		code, err := node.runner.Code(*transaction.Recipient)
		if err != nil {
			return err
		}
		contract, err := lookupContract(code)
		if err != nil {
			return err
		}
		function, err := contract.Header().GetFunction(transaction.Method)
		if err != nil {
			return fmt.Errorf("contract %s at %v: %w", code, transaction.Recipient, err)
		}
		if transaction.Input, err = abi.EncodeFromStrings(function.Parameters, context.Args().Slice()[2:]); err != nil {
			return fmt.Errorf("invalid arguments for %v: %w", function, err)
		}
	}

	block := BlockFlags.Fetch(context)
	out := context.App.Writer
	if dryRun {
		receipt, err := node.runner.Call(block, transaction)
		if err != nil {
			return err
		}
		for _, event := range receipt.Events {
			fmt.Fprintf(out, "event:    %s\n", node.describe(event))
		}
		printReceipt(out, receipt)
		return nil
	}

	if transaction.Nonce, err = node.runner.Nonce(transaction.Sender); err != nil {
		return err
	}
	receipt, err := node.runner.Apply(block, transaction)
	if err != nil {
		return err
	}
	printReceipt(out, receipt)
	return nil
}
