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
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"

	"github.com/lumen-chain/lumen/go/abi"
	"github.com/lumen-chain/lumen/go/config"
	"github.com/lumen-chain/lumen/go/events"
	"github.com/lumen-chain/lumen/go/lumen"
	"github.com/lumen-chain/lumen/go/metrics"
	"github.com/lumen-chain/lumen/go/processor/floria"
	"github.com/lumen-chain/lumen/go/runner"
	"github.com/lumen-chain/lumen/go/state"
	"github.com/lumen-chain/lumen/go/vm"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

// node bundles the components a command works with.
type node struct {
	config  config.Config
	logger  *zap.Logger
	db      *state.Database
	bus     *events.Bus
	runner  *runner.Runner
	metrics *http.Server
}

func openNode(context *cli.Context) (*node, error) {
	cfg, err := ConfigFlag.Fetch(context)
	if err != nil {
		return nil, err
	}
	return newNode(cfg, context.App.Writer)
}

// newNode sets up the configured state database and processor. Events of
// committed transactions are printed to out.
func newNode(cfg config.Config, out io.Writer) (*node, error) {
	logger, err := cfg.NewLogger()
	if err != nil {
		return nil, err
	}
	processorConfig, err := cfg.ProcessorConfig(logger)
	if err != nil {
		return nil, err
	}
	processor, err := floria.NewProcessor(processorConfig)
	if err != nil {
		return nil, err
	}
	db, err := cfg.OpenDatabase()
	if err != nil {
		return nil, err
	}

	res := &node{
		config: cfg,
		logger: logger,
		db:     db,
		bus:    events.NewBus(),
	}
	res.runner = runner.New(db, processor, runner.Options{
		Bus:      res.bus,
		GasLimit: lumen.Gas(cfg.Runtime.GasLimit),
		Logger:   logger,
	})
	if err := res.bus.Subscribe(events.All, func(e lumen.Event) {
		fmt.Fprintf(out, "event:    %s\n", res.describe(e))
	}); err != nil {
		return nil, errors.Join(err, db.Close())
	}
	if err := res.serveMetrics(); err != nil {
		return nil, errors.Join(err, db.Close())
	}
	return res, nil
}

func (n *node) serveMetrics() error {
	if n.config.Metrics.Listen == "" {
		return nil
	}
	listener, err := net.Listen("tcp", n.config.Metrics.Listen)
	if err != nil {
		return fmt.Errorf("failed to serve metrics: %w", err)
	}
	n.metrics = &http.Server{Handler: metrics.Handler()}
	go func() {
		if err := n.metrics.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			n.logger.Error("metrics server failed", zap.Error(err))
		}
	}()
	n.logger.Info("serving metrics", zap.Stringer("address", listener.Addr()))
	return nil
}

func (n *node) Close() error {
	var errs []error
	if n.metrics != nil {
		errs = append(errs, n.metrics.Close())
	}
	errs = append(errs, n.db.Close())
	_ = n.logger.Sync()
	return errors.Join(errs...)
}

// describe renders an event with its decoded fields.
func (n *node) describe(e lumen.Event) string {
	fields := fmt.Sprintf("%x", []byte(e.Args))
	if values, err := n.decodeEvent(e); err == nil {
		fields = strings.Join(values, ", ")
	}
	return fmt.Sprintf("%s(%s) from %v", e.Name, fields, e.Contract)
}

func (n *node) decodeEvent(e lumen.Event) ([]string, error) {
	code, err := n.runner.Code(e.Contract)
	if err != nil {
		return nil, err
	}
	contract, found := vm.GetContract(code)
	if !found {
		return nil, fmt.Errorf("%w: %q", vm.ErrContractNotFound, code)
	}
	event, err := contract.Header().GetEvent(e.Name)
	if err != nil {
		return nil, err
	}
	values, err := abi.Decode(event.Parameters, e.Args)
	if err != nil {
		return nil, err
	}
	res := make([]string, len(values))
	for i, value := range values {
		res[i] = fmt.Sprintf("%s=%v", event.Parameters[i].Name, value)
	}
	return res, nil
}

func printReceipt(out io.Writer, receipt lumen.Receipt) {
	fmt.Fprintf(out, "status:   %v\n", receipt.Code)
	fmt.Fprintf(out, "result:   %d\n", receipt.Result)
	fmt.Fprintf(out, "gas used: %d\n", receipt.GasUsed)
	if receipt.ContractAddress != nil {
		fmt.Fprintf(out, "contract: %v\n", receipt.ContractAddress)
	}
	if receipt.Error != "" {
		fmt.Fprintf(out, "error:    %s\n", receipt.Error)
	}
}
