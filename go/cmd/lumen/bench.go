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
	"crypto/rand"
	"fmt"
	"time"

	"github.com/dsnet/golib/unitconv"
	"github.com/lumen-chain/lumen/go/abi"
	"github.com/lumen-chain/lumen/go/config"
	"github.com/lumen-chain/lumen/go/contracts/calc"
	"github.com/lumen-chain/lumen/go/contracts/stats"
	"github.com/lumen-chain/lumen/go/crypto"
	"github.com/lumen-chain/lumen/go/lumen"
	"github.com/urfave/cli/v2"
)

var benchCountFlag = &cli.IntFlag{
	Name:  "count",
	Usage: "number of transactions to run",
	Value: 10_000,
}

var BenchCmd = cli.Command{
	Action: doBench,
	Name:   "bench",
	Usage:  "Measures the throughput of nested contract calls on an in-memory state",
	Flags: []cli.Flag{
		benchCountFlag,
	},
}

func doBench(context *cli.Context) (err error) {
	cfg, err := ConfigFlag.Fetch(context)
	if err != nil {
		return err
	}
	cfg.Storage = config.Storage{Backend: config.BackendMemory}
	node, err := newNode(cfg, context.App.Writer)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := node.Close(); err == nil {
			err = closeErr
		}
	}()

	_, sender, err := crypto.GenerateKey(rand.Reader)
	if err != nil {
		return err
	}
	block := lumen.BlockParameters{Height: 1, Time: uint64(time.Now().Unix())}

	deploy := func(nonce uint64, code lumen.Code, method string, input lumen.Data) (lumen.Address, error) {
		receipt, err := node.runner.Apply(block, lumen.Transaction{
			Sender: sender,
			Nonce:  nonce,
			Code:   code,
			Method: method,
			Input:  input,
		})
		if err != nil {
			return lumen.Address{}, err
		}
		if !receipt.Success {
			return lumen.Address{}, fmt.Errorf("failed to deploy %s: %s", code, receipt.Error)
		}
		return *receipt.ContractAddress, nil
	}
	math, err := deploy(0, calc.Code, "", nil)
	if err != nil {
		return err
	}
	input, err := abi.Encode([]abi.Parameter{abi.Param("math", abi.Address)}, math)
	if err != nil {
		return err
	}
	target, err := deploy(1, stats.Code, "init", input)
	if err != nil {
		return err
	}
	input, err = abi.Encode([]abi.Parameter{abi.Param("a", abi.Int32), abi.Param("b", abi.Int32)}, int32(3), int32(4))
	if err != nil {
		return err
	}

	count := context.Int(benchCountFlag.Name)
	out := context.App.Writer
	fmt.Fprintf(out, "Running %d hypotenuse transactions ...\n", count)
	start := time.Now()
	var gasUsed lumen.Gas
	for i := 0; i < count; i++ {
		receipt, err := node.runner.Apply(block, lumen.Transaction{
			Sender:    sender,
			Recipient: &target,
			Nonce:     uint64(i + 2),
			Method:    "hypotenuse",
			Input:     input,
		})
		if err != nil {
			return err
		}
		if !receipt.Success || receipt.Result != 5 {
			return fmt.Errorf("transaction %d failed: %v %s", i, receipt.Code, receipt.Error)
		}
		gasUsed += receipt.GasUsed
	}
	elapsed := time.Since(start)

	rate := float64(count) / elapsed.Seconds()
	fmt.Fprintf(out, "Processed %d transactions in %v, ~%s transactions per second, %d gas\n",
		count, elapsed.Round(time.Millisecond), unitconv.FormatPrefix(rate, unitconv.SI, 1), gasUsed)
	return nil
}
