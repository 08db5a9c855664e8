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
	"strconv"
	"strings"

	"github.com/lumen-chain/lumen/go/contracts/token"
	"github.com/lumen-chain/lumen/go/crypto"
	"github.com/urfave/cli/v2"
)

var SignDelegationCmd = cli.Command{
	Action:    doSignDelegation,
	Name:      "sign-delegation",
	Usage:     "Signs a delegated token transfer paid by the --seed account",
	ArgsUsage: "<token> <to> <amount> <nonce>",
	Flags: []cli.Flag{
		SeedFlag,
	},
}

func doSignDelegation(context *cli.Context) error {
	if context.Args().Len() != 4 {
		return fmt.Errorf("expected 4 arguments, got %d, see --help", context.Args().Len())
	}
	key, payer, err := SeedFlag.Fetch(context, false)
	if err != nil {
		return err
	}
	contract, err := crypto.AddressFromString(context.Args().Get(0))
	if err != nil {
		return fmt.Errorf("invalid token: %w", err)
	}
	to, err := crypto.AddressFromString(context.Args().Get(1))
	if err != nil {
		return fmt.Errorf("invalid receiver: %w", err)
	}
	amount, err := strconv.ParseUint(context.Args().Get(2), 0, 64)
	if err != nil {
		return fmt.Errorf("invalid amount: %w", err)
	}
	nonce, err := strconv.ParseUint(context.Args().Get(3), 0, 32)
	if err != nil {
		return fmt.Errorf("invalid nonce: %w", err)
	}

	signature, err := token.SignDelegation(key, to, contract, amount, uint32(nonce))
	if err != nil {
		return err
	}
	out := context.App.Writer
	fmt.Fprintf(out, "payer:     %v\n", payer)
	fmt.Fprintf(out, "signature: %s\n", formatBytes(signature))
	fmt.Fprintf(out, "call:      %s %v %d %v %d %s\n",
		token.DelegatedTransferFunction.Name, to, amount, payer, nonce, formatBytes(signature))
	return nil
}

// formatBytes renders bytes as a uint8 array argument.
func formatBytes(data []byte) string {
	parts := make([]string, len(data))
	for i, b := range data {
		parts[i] = strconv.Itoa(int(b))
	}
	return "[" + strings.Join(parts, ",") + "]"
}
