package internal

import (
	"errors"
	"fmt"
	"os"

	"github.com/terra-deployer/deployer/internal/clients"
)

// DefaultLabel is used for instantiations without an explicit label
const DefaultLabel = "instantiate"

var ErrMissingField = errors.New("missing required field")

// BuildMessage maps payload onto the chain message sent by signerAddress.
// Only presence is checked; anything else is left for the chain to reject.
func BuildMessage(payload Payload, signerAddress string) (clients.Msg, error) {
	switch p := payload.(type) {
	case StoreCode:
		if p.BytecodePath == "" {
			return nil, fmt.Errorf("%w: bytecode path", ErrMissingField)
		}
		code, err := os.ReadFile(p.BytecodePath)
		if err != nil {
			return nil, fmt.Errorf("failed to read bytecode: %w", err)
		}
		return &clients.MsgStoreCode{
			Sender:       signerAddress,
			WASMByteCode: code,
		}, nil

	case Instantiate:
		if p.CodeID == 0 {
			return nil, fmt.Errorf("%w: code ID", ErrMissingField)
		}
		admin := p.Admin
		if admin == "" {
			admin = signerAddress
		}
		label := p.Label
		if label == "" {
			label = DefaultLabel
		}
		return &clients.MsgInstantiateContract{
			Sender:    signerAddress,
			Admin:     admin,
			CodeID:    p.CodeID,
			Label:     label,
			InitMsg:   contractMsg(p.InitMessage),
			InitCoins: p.Funds,
		}, nil

	case Execute:
		if p.ContractAddress == "" {
			return nil, fmt.Errorf("%w: contract address", ErrMissingField)
		}
		return &clients.MsgExecuteContract{
			Sender:     signerAddress,
			Contract:   p.ContractAddress,
			ExecuteMsg: contractMsg(p.Message),
			Coins:      p.Funds,
		}, nil

	case Migrate:
		if p.ContractAddress == "" {
			return nil, fmt.Errorf("%w: contract address", ErrMissingField)
		}
		if p.NewCodeID == 0 {
			return nil, fmt.Errorf("%w: code ID", ErrMissingField)
		}
		return &clients.MsgMigrateContract{
			Admin:      signerAddress,
			Contract:   p.ContractAddress,
			NewCodeID:  p.NewCodeID,
			MigrateMsg: contractMsg(p.MigrateMessage),
		}, nil

	default:
		return nil, fmt.Errorf("unsupported payload %T", payload)
	}
}
