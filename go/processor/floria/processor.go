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

	"github.com/lumen-chain/lumen/go/gas"
	"github.com/lumen-chain/lumen/go/logging"
	"github.com/lumen-chain/lumen/go/lumen"
	"github.com/lumen-chain/lumen/go/metrics"
	"github.com/lumen-chain/lumen/go/vm"
	"go.uber.org/zap"
)

const (
	DefaultMaxCallDepth     = 64
	DefaultMaxArgumentBytes = 1024

	// InitMethod is run on deployment if the contract exports it.
	InitMethod = "init"
)

// Config tunes the processor. Zero values select the defaults.
type Config struct {
	MaxCallDepth     int
	MaxArgumentBytes int
	GasPolicy        gas.Policy
	Logger           *zap.Logger
}

func init() {
	if err := lumen.RegisterProcessorFactory("floria", newProcessor); err != nil {
		panic(err)
	}
}

func newProcessor(config any) (lumen.Processor, error) {
	var cfg Config
	switch c := config.(type) {
	case nil:
	case Config:
		cfg = c
	case *Config:
		if c != nil {
			cfg = *c
		}
	default:
		return nil, fmt.Errorf("unsupported configuration type %T", config)
	}
	return NewProcessor(cfg)
}

// NewProcessor creates a processor running the registered native contracts.
func NewProcessor(config Config) (*Processor, error) {
	if config.MaxCallDepth < 0 || config.MaxArgumentBytes < 0 {
		return nil, fmt.Errorf("invalid limits, call depth %d, argument bytes %d", config.MaxCallDepth, config.MaxArgumentBytes)
	}
	if config.MaxCallDepth == 0 {
		config.MaxCallDepth = DefaultMaxCallDepth
	}
	if config.MaxArgumentBytes == 0 {
		config.MaxArgumentBytes = DefaultMaxArgumentBytes
	}
	if config.GasPolicy == nil {
		config.GasPolicy = gas.FreePolicy{}
	}
	config.Logger = logging.OrNop(config.Logger)
	return &Processor{config: config}, nil
}

type Processor struct {
	config Config
}

func (p *Processor) Run(
	blockParams lumen.BlockParameters,
	transaction lumen.Transaction,
	context lumen.TransactionContext,
) (lumen.Receipt, error) {
	logger := p.config.Logger.With(
		zap.Stringer("sender", transaction.Sender),
		zap.Uint64("nonce", transaction.Nonce),
		zap.String("method", transaction.Method),
	)

	if err := handleNonce(transaction, context); err != nil {
		receipt := lumen.Receipt{Code: lumen.ReceiptNonceMismatch, Error: err.Error()}
		logger.Info("transaction rejected", zap.Error(err))
		metrics.RecordTransaction(receipt.Code.String(), 0, 0, 0)
		return receipt, nil
	}

	snapshot := context.CreateSnapshot()
	firstEvent := len(context.GetEvents())
	run := &runContext{
		TransactionContext: context,
		blockParameters:    blockParams,
		config:             p.config,
		meter:              gas.NewMeter(transaction.GasLimit),
	}

	var result uint64
	var created *lumen.Address
	var err error
	if transaction.IsDeployment() {
		result, created, err = run.deploy(transaction)
	} else {
		result, err = run.call(transaction)
	}
	if run.err != nil && !errors.Is(err, run.err) {
		result, err = 0, run.err
	}

	code := receiptCode(result, err)
	receipt := lumen.Receipt{
		Success: code == lumen.ReceiptOK,
		Code:    code,
		Result:  result,
		GasUsed: run.meter.Used(),
	}
	if receipt.Success {
		receipt.ContractAddress = created
		receipt.Events = context.GetEvents()[firstEvent:]
	} else {
		context.RestoreSnapshot(snapshot)
		if err != nil {
			receipt.Result = 0
			receipt.Error = err.Error()
		}
	}

	if receipt.Success {
		logger.Debug("transaction processed",
			zap.Uint64("result", receipt.Result),
			zap.Int64("gas", int64(receipt.GasUsed)),
			zap.Int("events", len(receipt.Events)),
		)
	} else {
		logger.Info("transaction failed",
			zap.Stringer("code", receipt.Code),
			zap.Int64("gas", int64(receipt.GasUsed)),
			zap.Error(err),
		)
	}
	metrics.RecordTransaction(receipt.Code.String(), int64(receipt.GasUsed), run.deepest, len(receipt.Events))
	return receipt, nil
}

func receiptCode(result uint64, err error) lumen.ReceiptCode {
	switch {
	case err == nil && result == lumen.Failure:
		return lumen.ReceiptFailed
	case err == nil:
		return lumen.ReceiptOK
	case errors.Is(err, gas.ErrOutOfGas):
		return lumen.ReceiptOutOfGas
	case errors.Is(err, lumen.ErrFailure):
		return lumen.ReceiptFailed
	case errors.Is(err, vm.ErrContractNotFound):
		return lumen.ReceiptContractNotFound
	case errors.Is(err, vm.ErrMethodNotFound):
		return lumen.ReceiptMethodNotFound
	}
	return lumen.ReceiptExecutionError
}

func handleNonce(transaction lumen.Transaction, context lumen.TransactionContext) error {
	stateNonce := context.GetNonce(transaction.Sender)
	messageNonce := transaction.Nonce
	if messageNonce != stateNonce {
		return fmt.Errorf("nonce mismatch: %v != %v", messageNonce, stateNonce)
	}
	context.SetNonce(transaction.Sender, stateNonce+1)
	return nil
}
