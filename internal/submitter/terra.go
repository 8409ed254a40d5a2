package submitter

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/terra-deployer/deployer/internal/clients"
)

// TerraSubmitter submits single-message transactions through a ChainClient
type TerraSubmitter struct {
	client ChainClient
	logger *zap.Logger
}

// NewTerraSubmitter creates a new Terra submitter instance
func NewTerraSubmitter(logger *zap.Logger, client ChainClient) *TerraSubmitter {
	return &TerraSubmitter{
		client: client,
		logger: logger.With(zap.String("component", "TerraSubmitter")),
	}
}

// SignerAddress returns the address of the client's signing key
func (s *TerraSubmitter) SignerAddress() string {
	return s.client.Address()
}

// SubmitMsg signs msg into a transaction, broadcasts it and returns the result once included
func (s *TerraSubmitter) SubmitMsg(ctx context.Context, msg clients.Msg) (*clients.TxResult, error) {
	s.logger.Info("Signing transaction",
		zap.String("msgType", fmt.Sprintf("%T", msg)),
		zap.String("signer", msg.Signer()))

	tx, err := s.client.CreateAndSignTx(ctx, []clients.Msg{msg})
	if err != nil {
		return nil, fmt.Errorf("failed to create and sign transaction: %w", err)
	}

	s.logger.Info("Broadcasting transaction",
		zap.String("txHash", tx.Hash),
		zap.Uint64("sequence", tx.Sequence),
		zap.Uint64("gasLimit", tx.Fee.GasLimit))

	res, err := s.client.Broadcast(ctx, tx)
	if err != nil {
		return nil, fmt.Errorf("failed to submit transaction: %w", err)
	}

	if res.Success() {
		s.logger.Info("Transaction confirmed",
			zap.String("txHash", res.TxHash),
			zap.Int64("height", res.Height),
			zap.Int64("gasUsed", res.GasUsed))
	} else {
		s.logger.Warn("Transaction rejected",
			zap.String("txHash", res.TxHash),
			zap.Uint32("code", res.Code),
			zap.String("codespace", res.Codespace))
	}

	return res, nil
}
