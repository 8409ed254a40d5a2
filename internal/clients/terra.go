package clients

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	// DefaultGasAdjustment matches the terra.js LCD client default
	DefaultGasAdjustment = "1.75"
	// DefaultGasPrices is used when the network config does not set gas prices
	DefaultGasPrices = "0.15uluna"
	// DefaultBroadcastTimeout bounds how long Broadcast waits for inclusion
	DefaultBroadcastTimeout = 30 * time.Second
	// DefaultPollInterval is the delay between inclusion lookups
	DefaultPollInterval = 500 * time.Millisecond
)

// TerraClientConfig holds the transaction-level settings of a TerraClient
type TerraClientConfig struct {
	ChainID          string
	Dialect          Dialect
	GasPrices        []DecCoin       // used with simulated gas when Fees is empty
	GasAdjustment    decimal.Decimal // applied to simulated gas
	GasLimit         uint64          // fixed gas limit, skips simulation when set
	Fees             []Coin          // fixed fee, used as-is when set
	Memo             string
	BroadcastTimeout time.Duration
	PollInterval     time.Duration
}

// TerraClient builds, signs and broadcasts transactions for one mnemonic key
type TerraClient struct {
	lcd    *LCDClient
	key    *MnemonicKey
	config TerraClientConfig
	logger *zap.Logger
}

// NewTerraClient creates a client that signs with key and submits through lcd
func NewTerraClient(logger *zap.Logger, lcd *LCDClient, key *MnemonicKey, config TerraClientConfig) *TerraClient {
	if config.GasAdjustment.IsZero() {
		config.GasAdjustment = decimal.RequireFromString(DefaultGasAdjustment)
	}
	if config.BroadcastTimeout <= 0 {
		config.BroadcastTimeout = DefaultBroadcastTimeout
	}
	if config.PollInterval <= 0 {
		config.PollInterval = DefaultPollInterval
	}
	if config.Dialect == "" {
		config.Dialect = DialectTerra
	}

	return &TerraClient{
		lcd:    lcd,
		key:    key,
		config: config,
		logger: logger.With(zap.String("component", "TerraClient")),
	}
}

// Address returns the account address of the signing key
func (c *TerraClient) Address() string {
	return c.key.Address()
}

// Dialect returns the wasm message dialect the client encodes with
func (c *TerraClient) Dialect() Dialect {
	return c.config.Dialect
}

// CreateAndSignTx wraps msgs into a transaction signed for the key's current account sequence
func (c *TerraClient) CreateAndSignTx(ctx context.Context, msgs []Msg) (*SignedTx, error) {
	for _, msg := range msgs {
		if msg.Signer() != c.key.Address() {
			return nil, fmt.Errorf("message signer %s does not match key address %s", msg.Signer(), c.key.Address())
		}
	}

	accountNumber, sequence, err := c.lcd.Account(ctx, c.key.Address())
	if err != nil {
		return nil, fmt.Errorf("failed to load account: %w", err)
	}
	c.logger.Debug("Loaded account",
		zap.String("address", c.key.Address()),
		zap.Uint64("accountNumber", accountNumber),
		zap.Uint64("sequence", sequence))

	bodyBytes := EncodeTxBody(msgs, c.config.Dialect, c.config.Memo)

	fee, err := c.estimateFee(ctx, bodyBytes, sequence)
	if err != nil {
		return nil, err
	}
	c.logger.Debug("Fee computed",
		zap.Uint64("gasLimit", fee.GasLimit),
		zap.Any("amount", fee.Amount))

	authInfoBytes := EncodeAuthInfo(c.key.PublicKey(), sequence, fee)
	signDoc := EncodeSignDoc(bodyBytes, authInfoBytes, SignerData{
		ChainID:       c.config.ChainID,
		AccountNumber: accountNumber,
		Sequence:      sequence,
	})

	signature, err := c.key.Sign(signDoc)
	if err != nil {
		return nil, fmt.Errorf("failed to sign transaction: %w", err)
	}

	txBytes := EncodeTxRaw(bodyBytes, authInfoBytes, signature)
	return &SignedTx{
		TxBytes:       txBytes,
		Hash:          TxHash(txBytes),
		AccountNumber: accountNumber,
		Sequence:      sequence,
		Fee:           fee,
		Memo:          c.config.Memo,
	}, nil
}

// estimateFee covers gas only. Stability tax on coins sent through a legacy
// terra chain is not queried; such transfers need a fixed Fees.
func (c *TerraClient) estimateFee(ctx context.Context, bodyBytes []byte, sequence uint64) (Fee, error) {
	gasLimit := c.config.GasLimit
	if gasLimit == 0 {
		// Simulation skips signature verification but still needs one signature slot
		simAuthInfo := EncodeAuthInfo(c.key.PublicKey(), sequence, Fee{})
		gasUsed, err := c.lcd.Simulate(ctx, EncodeTxRaw(bodyBytes, simAuthInfo, []byte{}))
		if err != nil {
			return Fee{}, fmt.Errorf("failed to estimate gas: %w", err)
		}
		gasLimit = AdjustGas(gasUsed, c.config.GasAdjustment)
		c.logger.Debug("Simulated gas",
			zap.Uint64("gasUsed", gasUsed),
			zap.String("gasAdjustment", c.config.GasAdjustment.String()),
			zap.Uint64("gasLimit", gasLimit))
	}

	if len(c.config.Fees) > 0 {
		return Fee{Amount: c.config.Fees, GasLimit: gasLimit}, nil
	}
	return Fee{Amount: FeeForGas(c.config.GasPrices, gasLimit), GasLimit: gasLimit}, nil
}

// Broadcast submits the transaction and blocks until it is included in a
// block, rejected by the node, the broadcast timeout passes or ctx is done.
func (c *TerraClient) Broadcast(ctx context.Context, tx *SignedTx) (*TxResult, error) {
	res, err := c.lcd.BroadcastTx(ctx, tx.TxBytes, BroadcastModeSync)
	if err != nil {
		return nil, fmt.Errorf("failed to broadcast transaction: %w", err)
	}
	if !res.Success() {
		// Rejected by CheckTx, nothing will be included
		return res, nil
	}

	hash := res.TxHash
	if hash == "" {
		hash = tx.Hash
	}
	c.logger.Info("Transaction accepted into mempool, waiting for inclusion",
		zap.String("txHash", hash),
		zap.Duration("timeout", c.config.BroadcastTimeout))

	return c.waitForInclusion(ctx, hash)
}

func (c *TerraClient) waitForInclusion(ctx context.Context, hash string) (*TxResult, error) {
	ctx, cancel := context.WithTimeout(ctx, c.config.BroadcastTimeout)
	defer cancel()

	ticker := time.NewTicker(c.config.PollInterval)
	defer ticker.Stop()

	for attempt := 1; ; attempt++ {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("transaction %s not included: %w", hash, ctx.Err())
		case <-ticker.C:
		}

		res, err := c.lcd.GetTx(ctx, hash)
		if err == nil {
			c.logger.Debug("Transaction found",
				zap.String("txHash", hash),
				zap.Int64("height", res.Height),
				zap.Int("attempt", attempt))
			return res, nil
		}
		if !errors.Is(err, ErrTxNotFound) {
			// Lookup failures are not fatal, the transaction may still land
			c.logger.Warn("Failed to look up transaction", zap.String("txHash", hash), zap.Error(err))
		}
	}
}
