// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package lumen

import "fmt"

//go:generate mockgen -source processor.go -destination processor_mock.go -package lumen

// Processor is an interface for a component capable of executing transactions.
// Implementations check nonces, deploy contracts, dispatch the requested
// method to the target contract, run nested calls between contracts and
// make sure that the effects of a failed transaction are rolled back.
type Processor interface {
	// Run executes the transaction provided by the parameters in the specified
	// context. The resulting error is nil whenever the transaction was
	// processed, even if its execution failed; failures are reported through
	// the receipt. A non-nil error signals a problem of the processor itself
	// or of the underlying state, in which case the receipt is undefined.
	Run(BlockParameters, Transaction, TransactionContext) (Receipt, error)
}

// Transaction summarizes the parameters of a transaction to be executed.
type Transaction struct {
	Sender    Address  // the account issuing the transaction
	Recipient *Address // the contract to call, nil if a new contract is to be deployed
	Nonce     uint64   // the nonce of the sender account, used to prevent replay attacks
	Code      Code     // the contract implementation to deploy, only used for deployments
	Method    string   // the method to call; for deployments an optional "init"
	Input     Data     // the rlp-encoded argument fields of the call
	GasLimit  Gas      // the maximum amount of gas that can be used, 0 for unlimited
}

// IsDeployment reports whether the transaction creates a new contract.
func (t Transaction) IsDeployment() bool {
	return t.Recipient == nil
}

// BlockParameters contains information about the current block.
type BlockParameters struct {
	Height uint64
	Time   uint64
}

// Receipt summarizes the result of the execution of a transaction.
type Receipt struct {
	Success         bool        // true if the top-level call completed without failure
	Code            ReceiptCode // classification of the outcome
	Result          uint64      // the word returned by the top-level method
	GasUsed         Gas         // gas consumed by the transaction
	Events          []Event     // events emitted by the transaction, empty on failure
	ContractAddress *Address    // filled if a contract was created by this transaction
	Error           string      // description of the failure, if any
}

// ReceiptCode classifies the outcome of a transaction.
type ReceiptCode uint8

const (
	ReceiptOK ReceiptCode = iota
	ReceiptFailed
	ReceiptOutOfGas
	ReceiptExecutionError
	ReceiptContractNotFound
	ReceiptMethodNotFound
	ReceiptNonceMismatch
)

func (c ReceiptCode) String() string {
	switch c {
	case ReceiptOK:
		return "ok"
	case ReceiptFailed:
		return "failed"
	case ReceiptOutOfGas:
		return "out_of_gas"
	case ReceiptExecutionError:
		return "execution_error"
	case ReceiptContractNotFound:
		return "contract_not_found"
	case ReceiptMethodNotFound:
		return "method_not_found"
	case ReceiptNonceMismatch:
		return "nonce_mismatch"
	}
	return fmt.Sprintf("ReceiptCode(%d)", c)
}

func (c ReceiptCode) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// GetAllReceiptCodes lists every defined receipt code.
func GetAllReceiptCodes() []ReceiptCode {
	return []ReceiptCode{
		ReceiptOK,
		ReceiptFailed,
		ReceiptOutOfGas,
		ReceiptExecutionError,
		ReceiptContractNotFound,
		ReceiptMethodNotFound,
		ReceiptNonceMismatch,
	}
}

// Event is an immutable record emitted by a contract during a transaction.
type Event struct {
	Contract Address  // the emitting contract
	Name     string   // the declared event name
	ID       MethodID // the identifier derived from the name
	Args     Data     // the rlp-encoded list of typed fields
}
