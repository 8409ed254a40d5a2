package internal

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/terra-deployer/deployer/internal/clients"
	"github.com/terra-deployer/deployer/internal/submitter"
)

// Workflow runs one payload through build, sign, broadcast and interpretation
type Workflow struct {
	submitter submitter.TxSubmitter
	dialect   clients.Dialect
	logger    *zap.Logger
}

// NewWorkflow creates a workflow that submits through s and reads events per dialect
func NewWorkflow(logger *zap.Logger, s submitter.TxSubmitter, dialect clients.Dialect) *Workflow {
	if dialect == "" {
		dialect = clients.DialectTerra
	}
	return &Workflow{
		submitter: s,
		dialect:   dialect,
		logger:    logger.With(zap.String("component", "Workflow")),
	}
}

// Run submits payload and returns the interpreted result. A chain rejection
// is returned as *ChainRejectionError carrying the raw outcome.
func (w *Workflow) Run(ctx context.Context, payload Payload) (*Result, error) {
	kind := payload.Kind()
	signer := w.submitter.SignerAddress()

	msg, err := BuildMessage(payload, signer)
	if err != nil {
		return nil, fmt.Errorf("failed to build %s message: %w", kind, err)
	}
	w.logger.Debug("Message built",
		zap.String("kind", string(kind)),
		zap.String("signer", signer))

	// Check for context cancellation before any network access
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s cancelled: %w", kind, ctx.Err())
	default:
	}

	outcome, err := w.submitter.SubmitMsg(ctx, msg)
	if err != nil {
		if ctx.Err() != nil {
			w.logger.Warn("Transaction sending cancelled or timed out", zap.Error(ctx.Err()))
		}
		return nil, err
	}

	result, err := InterpretOutcome(outcome, kind, w.dialect)
	if err != nil {
		var rejection *ChainRejectionError
		if errors.As(err, &rejection) {
			w.logger.Error("Transaction rejected by chain",
				zap.String("kind", string(kind)),
				zap.String("txHash", rejection.TxHash),
				zap.Uint32("code", rejection.Code),
				zap.String("codespace", rejection.Codespace))
		}
		return nil, err
	}

	fields := []zap.Field{
		zap.String("kind", string(kind)),
		zap.String("txHash", outcome.TxHash),
		zap.Int64("height", outcome.Height),
	}
	if label, value, ok := result.Identifier(); ok {
		fields = append(fields, zap.String(label, value))
	}
	w.logger.Info("Operation confirmed", fields...)

	return result, nil
}
