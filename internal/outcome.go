package internal

import (
	"errors"
	"fmt"

	"github.com/terra-deployer/deployer/internal/clients"
)

// ErrMissingEvent is returned when a successful transaction lacks the event
// carrying the created resource
var ErrMissingEvent = errors.New("expected event not found in transaction result")

// ChainRejectionError is returned when the chain answered with a non-zero result code
type ChainRejectionError struct {
	Kind      Kind
	TxHash    string
	Code      uint32
	Codespace string
	RawLog    string
	Outcome   *clients.TxResult
}

func (e *ChainRejectionError) Error() string {
	return fmt.Sprintf("%s failed. code: %d, codespace: %s, raw_log: %s", e.Kind, e.Code, e.Codespace, e.RawLog)
}

// Result is the interpreted outcome of a confirmed transaction
type Result struct {
	Kind    Kind
	Outcome *clients.TxResult

	CodeID          string // set for store code
	ContractAddress string // set for instantiate
}

// Identifier returns the label and value of the resource the transaction
// created, or ok == false for operations that create none
func (r *Result) Identifier() (label, value string, ok bool) {
	switch r.Kind {
	case KindStoreCode:
		return "code_id", r.CodeID, true
	case KindInstantiate:
		return "contract_address", r.ContractAddress, true
	default:
		return "", "", false
	}
}

// InterpretOutcome turns a chain result into a Result, failing with a
// ChainRejectionError iff the result code is non-zero. A code 0 store code or
// instantiate result without the expected event still fails, with ErrMissingEvent.
func InterpretOutcome(outcome *clients.TxResult, kind Kind, dialect clients.Dialect) (*Result, error) {
	if outcome == nil {
		return nil, fmt.Errorf("no transaction result")
	}
	if !outcome.Success() {
		return nil, &ChainRejectionError{
			Kind:      kind,
			TxHash:    outcome.TxHash,
			Code:      outcome.Code,
			Codespace: outcome.Codespace,
			RawLog:    outcome.RawLog,
			Outcome:   outcome,
		}
	}

	result := &Result{Kind: kind, Outcome: outcome}
	switch kind {
	case KindStoreCode:
		codeID, err := extract(outcome, dialect.StoreCodeEvent())
		if err != nil {
			return nil, err
		}
		result.CodeID = codeID
	case KindInstantiate:
		address, err := extract(outcome, dialect.InstantiateEvent())
		if err != nil {
			return nil, err
		}
		result.ContractAddress = address
	case KindExecute, KindMigrate:
	default:
		return nil, fmt.Errorf("unsupported operation kind %q", kind)
	}
	return result, nil
}

func extract(outcome *clients.TxResult, key clients.EventKey) (string, error) {
	value, ok := outcome.FindEventAttribute(key)
	if !ok {
		return "", fmt.Errorf("%w: %s.%s (tx %s)", ErrMissingEvent, key.Type, key.Attribute, outcome.TxHash)
	}
	return value, nil
}
