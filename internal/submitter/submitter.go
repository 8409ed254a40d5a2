package submitter

import (
	"context"

	"github.com/terra-deployer/deployer/internal/clients"
)

// ChainClient signs and broadcasts transactions for a single key
type ChainClient interface {
	// Address returns the account address of the signing key
	Address() string
	// CreateAndSignTx wraps the messages into a signed transaction
	CreateAndSignTx(ctx context.Context, msgs []clients.Msg) (*clients.SignedTx, error)
	// Broadcast submits the transaction and waits for its inclusion
	Broadcast(ctx context.Context, tx *clients.SignedTx) (*clients.TxResult, error)
}

type TxSubmitter interface {
	// SignerAddress returns the address messages must be sent from
	SignerAddress() string
	// SubmitMsg signs and broadcasts msg and returns the chain's result, or an
	// error if no result code could be obtained
	SubmitMsg(ctx context.Context, msg clients.Msg) (*clients.TxResult, error)
}
