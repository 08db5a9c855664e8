// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

// Package runner applies transactions to a state database: it runs them
// through a processor, commits their effects and publishes their events.
package runner

import (
	"fmt"
	"sync"

	"github.com/lumen-chain/lumen/go/events"
	"github.com/lumen-chain/lumen/go/logging"
	"github.com/lumen-chain/lumen/go/lumen"
	"github.com/lumen-chain/lumen/go/state"
	"go.uber.org/zap"
)

// Options are the optional collaborators of a Runner.
type Options struct {
	// Bus receives the events of committed transactions.
	Bus *events.Bus
	// GasLimit is applied to transactions without a gas limit.
	GasLimit lumen.Gas
	Logger   *zap.Logger
}

// Runner serializes the application of transactions to a database.
type Runner struct {
	mutex     sync.Mutex
	db        *state.Database
	processor lumen.Processor
	options   Options
}

func New(db *state.Database, processor lumen.Processor, options Options) *Runner {
	options.Logger = logging.OrNop(options.Logger)
	return &Runner{
		db:        db,
		processor: processor,
		options:   options,
	}
}

func (r *Runner) prepare(transaction lumen.Transaction) lumen.Transaction {
	if transaction.GasLimit == 0 {
		transaction.GasLimit = r.options.GasLimit
	}
	return transaction
}

// Apply executes a transaction and commits its effects. Rejected and failed
// transactions are committed as well, since they still consume the sender
// nonce. Events are published after the commit succeeded.
func (r *Runner) Apply(block lumen.BlockParameters, transaction lumen.Transaction) (lumen.Receipt, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	context := state.New(r.db)
	receipt, err := r.processor.Run(block, r.prepare(transaction), context)
	if err != nil {
		context.Discard()
		return lumen.Receipt{}, fmt.Errorf("failed to process transaction: %w", err)
	}
	if err := context.Commit(); err != nil {
		context.Discard()
		return lumen.Receipt{}, fmt.Errorf("failed to commit transaction: %w", err)
	}
	r.options.Logger.Debug("transaction applied",
		zap.Uint64("height", block.Height),
		zap.Stringer("code", receipt.Code),
		zap.Int("events", len(receipt.Events)),
	)
	if r.options.Bus != nil {
		r.options.Bus.Publish(receipt)
	}
	return receipt, nil
}

// ApplyBlock applies the transactions of a block in order. It stops at the
// first transaction that could not be processed.
func (r *Runner) ApplyBlock(block lumen.BlockParameters, transactions []lumen.Transaction) ([]lumen.Receipt, error) {
	res := make([]lumen.Receipt, 0, len(transactions))
	for i, transaction := range transactions {
		receipt, err := r.Apply(block, transaction)
		if err != nil {
			return res, fmt.Errorf("transaction %d: %w", i, err)
		}
		res = append(res, receipt)
	}
	return res, nil
}

// Call executes a transaction without committing its effects. The nonce of
// the transaction is taken from the state, so callers only need to provide
// the sender, the target and the input.
func (r *Runner) Call(block lumen.BlockParameters, transaction lumen.Transaction) (lumen.Receipt, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	context := state.New(r.db)
	defer context.Discard()
	transaction.Nonce = context.GetNonce(transaction.Sender)
	receipt, err := r.processor.Run(block, r.prepare(transaction), context)
	if err != nil {
		return lumen.Receipt{}, fmt.Errorf("failed to process transaction: %w", err)
	}
	return receipt, context.Error()
}

// Nonce returns the committed nonce of an account.
func (r *Runner) Nonce(address lumen.Address) (uint64, error) {
	context := state.New(r.db)
	return context.GetNonce(address), context.Error()
}

// Code returns the code name of a committed contract.
func (r *Runner) Code(address lumen.Address) (lumen.Code, error) {
	context := state.New(r.db)
	code := context.GetCode(address)
	if err := context.Error(); err != nil {
		return "", err
	}
	if code == "" {
		return "", fmt.Errorf("%w: no contract at %v", lumen.ErrNotFound, address)
	}
	return code, nil
}
