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
	"encoding/hex"
	"fmt"

	"github.com/lumen-chain/lumen/go/crypto"
	"github.com/urfave/cli/v2"
)

var KeygenCmd = cli.Command{
	Action: doKeygen,
	Name:   "keygen",
	Usage:  "Generates a new account key, or shows the account of --seed",
	Flags: []cli.Flag{
		SeedFlag,
	},
}

func doKeygen(context *cli.Context) error {
	key, address, err := SeedFlag.Fetch(context, true)
	if err != nil {
		return err
	}
	if key == nil {
		if key, address, err = crypto.GenerateKey(rand.Reader); err != nil {
			return fmt.Errorf("failed to generate key: %w", err)
		}
	}
	out := context.App.Writer
	fmt.Fprintf(out, "address: %v\n", address)
	fmt.Fprintf(out, "seed:    %s\n", hex.EncodeToString(key.Seed()))
	return nil
}
