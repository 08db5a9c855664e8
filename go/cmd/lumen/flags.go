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
	"crypto/ed25519"
	"fmt"
	"time"

	"github.com/lumen-chain/lumen/go/config"
	"github.com/lumen-chain/lumen/go/crypto"
	"github.com/lumen-chain/lumen/go/lumen"
	"github.com/urfave/cli/v2"
)

type configFlagType struct {
	cli.StringFlag
}

var ConfigFlag = &configFlagType{
	cli.StringFlag{
		Name:      "config",
		Aliases:   []string{"c"},
		Usage:     "load settings from the given YAML file",
		TakesFile: true,
	},
}

// Fetch loads the configuration file, if any, and applies the settings
// given on the command line on top of it.
func (f *configFlagType) Fetch(context *cli.Context) (config.Config, error) {
	res := config.Default()
	if path := context.String(f.Name); path != "" {
		var err error
		if res, err = config.Load(path); err != nil {
			return config.Config{}, err
		}
	}
	if context.IsSet(DataDirFlag.Name) {
		res.Storage.Backend = config.BackendLevelDB
		res.Storage.Path = context.String(DataDirFlag.Name)
	}
	if context.IsSet(LogLevelFlag.Name) {
		res.Log.Level = context.String(LogLevelFlag.Name)
	}
	if context.IsSet(LogFormatFlag.Name) {
		res.Log.Format = context.String(LogFormatFlag.Name)
	}
	if context.IsSet(GasPolicyFlag.Name) {
		res.Runtime.GasPolicy = context.String(GasPolicyFlag.Name)
	}
	if context.IsSet(GasLimitFlag.Name) {
		res.Runtime.GasLimit = context.Int64(GasLimitFlag.Name)
	}
	if context.IsSet(MaxCallDepthFlag.Name) {
		res.Runtime.MaxCallDepth = context.Int(MaxCallDepthFlag.Name)
	}
	if context.IsSet(MetricsAddrFlag.Name) {
		res.Metrics.Listen = context.String(MetricsAddrFlag.Name)
	}
	if err := res.Validate(); err != nil {
		return config.Config{}, err
	}
	return res, nil
}

var DataDirFlag = &cli.StringFlag{
	Name:      "datadir",
	Usage:     "keep the state in a LevelDB database in the given directory",
	TakesFile: true,
}

var LogLevelFlag = &cli.StringFlag{
	Name:  "log-level",
	Usage: "one of debug, info, warn, error",
}

var LogFormatFlag = &cli.StringFlag{
	Name:  "log-format",
	Usage: "console or json",
}

var GasPolicyFlag = &cli.StringFlag{
	Name:  "gas-policy",
	Usage: "free or alpha",
}

var GasLimitFlag = &cli.Int64Flag{
	Name:  "gas-limit",
	Usage: "gas limit of transactions, 0 for unlimited",
}

var MaxCallDepthFlag = &cli.IntFlag{
	Name:  "max-call-depth",
	Usage: "maximum number of nested call frames",
}

var MetricsAddrFlag = &cli.StringFlag{
	Name:  "metrics-addr",
	Usage: "serve prometheus metrics on the given address while running",
}

type seedFlagType struct {
	cli.StringFlag
}

var SeedFlag = &seedFlagType{
	cli.StringFlag{
		Name:    "seed",
		Aliases: []string{"s"},
		Usage:   "hex-encoded 32-byte ed25519 seed of the signing account",
		EnvVars: []string{"LUMEN_SEED"},
	},
}

// Fetch derives the key of the account given by the seed flag. The flag is
// mandatory unless optional is set, in which case a missing flag yields
// the zero address.
func (f *seedFlagType) Fetch(context *cli.Context, optional bool) (ed25519.PrivateKey, lumen.Address, error) {
	seed := context.String(f.Name)
	if seed == "" {
		if optional {
			return nil, lumen.Address{}, nil
		}
		return nil, lumen.Address{}, fmt.Errorf("missing --%s", f.Name)
	}
	return crypto.KeyFromSeed(seed)
}

type blockFlagsType struct {
	height *cli.Uint64Flag
	time   *cli.Uint64Flag
}

var BlockFlags = blockFlagsType{
	height: &cli.Uint64Flag{
		Name:  "height",
		Usage: "height of the block the transaction is included in",
		Value: 1,
	},
	time: &cli.Uint64Flag{
		Name:  "time",
		Usage: "unix time of the block, defaults to the current time",
	},
}

func (f blockFlagsType) Flags() []cli.Flag {
	return []cli.Flag{f.height, f.time}
}

func (f blockFlagsType) Fetch(context *cli.Context) lumen.BlockParameters {
	res := lumen.BlockParameters{
		Height: context.Uint64(f.height.Name),
		Time:   context.Uint64(f.time.Name),
	}
	if res.Time == 0 {
		res.Time = uint64(time.Now().Unix())
	}
	return res
}
