package clients

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// BroadcastMode is the LCD broadcast mode
type BroadcastMode string

const (
	BroadcastModeSync  BroadcastMode = "BROADCAST_MODE_SYNC"
	BroadcastModeAsync BroadcastMode = "BROADCAST_MODE_ASYNC"
)

var (
	// ErrTxNotFound is returned while a broadcast transaction is not yet indexed
	ErrTxNotFound = errors.New("transaction not found")

	// ErrAccountNotFound is returned for addresses that have never received funds
	ErrAccountNotFound = errors.New("account not found")
)

// LCDError is the error body returned by the cosmos REST gateway
type LCDError struct {
	StatusCode int    `json:"-"`
	Code       int    `json:"code"`
	Message    string `json:"message"`
}

func (e *LCDError) Error() string {
	return fmt.Sprintf("lcd request failed: status %d, code %d: %s", e.StatusCode, e.Code, e.Message)
}

func (e *LCDError) notFound() bool {
	// grpc NotFound is code 5; some gateways answer 400/500 with a "not found" message
	return e.StatusCode == http.StatusNotFound || e.Code == 5 || strings.Contains(strings.ToLower(e.Message), "not found")
}

// LCDClient talks to the cosmos REST (LCD) API of a node
type LCDClient struct {
	http   *resty.Client
	logger *zap.Logger
}

// NewLCDClient creates a new REST client for the given LCD URL
func NewLCDClient(logger *zap.Logger, baseURL string, timeout time.Duration) *LCDClient {
	client := &LCDClient{
		logger: logger.With(zap.String("component", "LCDClient")),
	}

	client.logger.Debug("Using LCD endpoint", zap.String("url", baseURL))
	client.http = resty.New().
		SetBaseURL(strings.TrimSuffix(baseURL, "/")).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")

	return client
}

// Account returns the account number and sequence of the given address
func (c *LCDClient) Account(ctx context.Context, address string) (accountNumber, sequence uint64, err error) {
	var result accountResponse
	if err := c.get(ctx, "/cosmos/auth/v1beta1/accounts/"+address, &result); err != nil {
		var lcdErr *LCDError
		if errors.As(err, &lcdErr) && lcdErr.notFound() {
			return 0, 0, fmt.Errorf("%w: %s", ErrAccountNotFound, address)
		}
		return 0, 0, err
	}

	base := result.base()
	if accountNumber, err = parseUint(base.AccountNumber); err != nil {
		return 0, 0, fmt.Errorf("invalid account number %q: %w", base.AccountNumber, err)
	}
	if sequence, err = parseUint(base.Sequence); err != nil {
		return 0, 0, fmt.Errorf("invalid sequence %q: %w", base.Sequence, err)
	}
	return accountNumber, sequence, nil
}

// Simulate runs the transaction without committing it and returns the gas used
func (c *LCDClient) Simulate(ctx context.Context, txBytes []byte) (uint64, error) {
	var result struct {
		GasInfo struct {
			GasWanted string `json:"gas_wanted"`
			GasUsed   string `json:"gas_used"`
		} `json:"gas_info"`
	}
	body := map[string]string{"tx_bytes": base64.StdEncoding.EncodeToString(txBytes)}
	if err := c.post(ctx, "/cosmos/tx/v1beta1/simulate", body, &result); err != nil {
		return 0, fmt.Errorf("simulation failed: %w", err)
	}

	gasUsed, err := parseUint(result.GasInfo.GasUsed)
	if err != nil {
		return 0, fmt.Errorf("invalid simulated gas %q: %w", result.GasInfo.GasUsed, err)
	}
	return gasUsed, nil
}

// BroadcastTx submits the raw transaction and returns the node's check result
func (c *LCDClient) BroadcastTx(ctx context.Context, txBytes []byte, mode BroadcastMode) (*TxResult, error) {
	var result txResponseEnvelope
	body := map[string]string{
		"tx_bytes": base64.StdEncoding.EncodeToString(txBytes),
		"mode":     string(mode),
	}
	if err := c.post(ctx, "/cosmos/tx/v1beta1/txs", body, &result); err != nil {
		return nil, err
	}
	if result.TxResponse == nil {
		return nil, fmt.Errorf("broadcast response has no tx_response")
	}
	return result.TxResponse, nil
}

// GetTx looks up an included transaction by hash
func (c *LCDClient) GetTx(ctx context.Context, hash string) (*TxResult, error) {
	var result txResponseEnvelope
	if err := c.get(ctx, "/cosmos/tx/v1beta1/txs/"+hash, &result); err != nil {
		var lcdErr *LCDError
		if errors.As(err, &lcdErr) && lcdErr.notFound() {
			return nil, fmt.Errorf("%w: %s", ErrTxNotFound, hash)
		}
		return nil, err
	}
	if result.TxResponse == nil {
		return nil, fmt.Errorf("%w: %s", ErrTxNotFound, hash)
	}
	return result.TxResponse, nil
}

func (c *LCDClient) get(ctx context.Context, path string, result interface{}) error {
	return c.do(ctx, http.MethodGet, path, nil, result)
}

func (c *LCDClient) post(ctx context.Context, path string, body, result interface{}) error {
	return c.do(ctx, http.MethodPost, path, body, result)
}

func (c *LCDClient) do(ctx context.Context, method, path string, body, result interface{}) error {
	lcdErr := &LCDError{}
	req := c.http.R().
		SetContext(ctx).
		SetResult(result).
		SetError(lcdErr)
	if body != nil {
		req.SetHeader("Content-Type", "application/json").SetBody(body)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		return fmt.Errorf("failed to call %s %s: %w", method, path, err)
	}

	c.logger.Debug("LCD response",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("statusCode", resp.StatusCode()))

	if resp.IsError() {
		lcdErr.StatusCode = resp.StatusCode()
		if lcdErr.Message == "" {
			lcdErr.Message = strings.TrimSpace(resp.String())
		}
		return lcdErr
	}
	return nil
}

type txResponseEnvelope struct {
	TxResponse *TxResult `json:"tx_response"`
}

type baseAccount struct {
	AccountNumber string `json:"account_number"`
	Sequence      string `json:"sequence"`
}

type accountResponse struct {
	Account struct {
		Type string `json:"@type"`
		baseAccount
		// module accounts
		BaseAccount *baseAccount `json:"base_account"`
		// vesting accounts
		BaseVestingAccount *struct {
			BaseAccount *baseAccount `json:"base_account"`
		} `json:"base_vesting_account"`
	} `json:"account"`
}

func (a *accountResponse) base() *baseAccount {
	acc := &a.Account
	switch {
	case acc.BaseVestingAccount != nil && acc.BaseVestingAccount.BaseAccount != nil:
		return acc.BaseVestingAccount.BaseAccount
	case acc.BaseAccount != nil:
		return acc.BaseAccount
	default:
		return &acc.baseAccount
	}
}

func parseUint(s string) (uint64, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.ParseUint(s, 10, 64)
}
