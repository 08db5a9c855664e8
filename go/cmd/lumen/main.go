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
	"os"

	"github.com/urfave/cli/v2"

	_ "github.com/lumen-chain/lumen/go/contracts/blockinfo"
	_ "github.com/lumen-chain/lumen/go/contracts/calc"
	_ "github.com/lumen-chain/lumen/go/contracts/liquidtoken"
	_ "github.com/lumen-chain/lumen/go/contracts/stats"
	_ "github.com/lumen-chain/lumen/go/contracts/token"
)

func newApp() *cli.App {
	return &cli.App{
		Name:      "lumen",
		Usage:     "Deterministic contract execution host",
		Copyright: "(c) 2024 Fantom Foundation",
		Flags: []cli.Flag{
			ConfigFlag,
			DataDirFlag,
			LogLevelFlag,
			LogFormatFlag,
			GasPolicyFlag,
			GasLimitFlag,
			MaxCallDepthFlag,
			MetricsAddrFlag,
		},
		Commands: []*cli.Command{
			&KeygenCmd,
			&ContractsCmd,
			&DeployCmd,
			&CallCmd,
			&SignDelegationCmd,
			&BenchCmd,
		},
	}
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
