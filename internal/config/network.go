package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"

	"github.com/terra-deployer/deployer/internal/clients"
)

// EnvPrefix prefixes environment overrides, e.g. TERRA_DEPLOYER_MNEMONIC
const EnvPrefix = "TERRA_DEPLOYER"

// DefaultRequestTimeout bounds each individual LCD request
const DefaultRequestTimeout = 30 * time.Second

// NetworkConfig is the signer and endpoint configuration shared by all operations
type NetworkConfig struct {
	Mnemonic string `mapstructure:"mnemonic"`
	URL      string `mapstructure:"url"`     // LCD REST endpoint
	ChainID  string `mapstructure:"chainID"` // expected chain ID

	// Optional Tendermint RPC endpoint; when set the node's chain ID is checked before signing
	RPCURL string `mapstructure:"rpcURL"`

	GasPrices     string `mapstructure:"gasPrices"`     // e.g. "0.15uluna"
	GasAdjustment string `mapstructure:"gasAdjustment"` // multiplier on simulated gas
	GasLimit      uint64 `mapstructure:"gasLimit"`      // fixed gas, disables simulation
	Fees          string `mapstructure:"fees"`          // fixed fee, e.g. "50000uluna"
	Memo          string `mapstructure:"memo"`

	CoinType      uint32 `mapstructure:"coinType"`
	AccountIndex  uint32 `mapstructure:"accountIndex"`
	AddressIndex  uint32 `mapstructure:"addressIndex"`
	AddressPrefix string `mapstructure:"addressPrefix"`

	Dialect string `mapstructure:"dialect"` // terra or cosmwasm

	BroadcastTimeout time.Duration `mapstructure:"broadcastTimeout"`
	PollInterval     time.Duration `mapstructure:"pollInterval"`
	RequestTimeout   time.Duration `mapstructure:"requestTimeout"`
}

// LoadNetworkConfig reads the network config file at path (JSON, YAML or TOML
// by extension) and applies TERRA_DEPLOYER_* environment overrides. An empty
// path reads the environment only.
func LoadNetworkConfig(path string) (*NetworkConfig, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	v.SetDefault("mnemonic", "")
	v.SetDefault("url", "")
	v.SetDefault("chainID", "")
	v.SetDefault("rpcURL", "")
	v.SetDefault("gasPrices", clients.DefaultGasPrices)
	v.SetDefault("gasAdjustment", clients.DefaultGasAdjustment)
	v.SetDefault("gasLimit", 0)
	v.SetDefault("fees", "")
	v.SetDefault("memo", "")
	v.SetDefault("coinType", clients.DefaultCoinType)
	v.SetDefault("accountIndex", 0)
	v.SetDefault("addressIndex", 0)
	v.SetDefault("addressPrefix", clients.DefaultAddressPrefix)
	v.SetDefault("dialect", string(clients.DialectTerra))
	v.SetDefault("broadcastTimeout", clients.DefaultBroadcastTimeout)
	v.SetDefault("pollInterval", clients.DefaultPollInterval)
	v.SetDefault("requestTimeout", DefaultRequestTimeout)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read network config %s: %w", path, err)
		}
	}

	var config NetworkConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to decode network config: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid network config: %w", err)
	}
	return &config, nil
}

// Validate checks required fields and the shape of optional ones
func (c *NetworkConfig) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Mnemonic) == "" {
		errs = append(errs, fmt.Errorf("mnemonic is required (or set %s_MNEMONIC)", EnvPrefix))
	}
	if c.URL == "" {
		errs = append(errs, errors.New("url is required"))
	} else if err := validateHTTPURL(c.URL); err != nil {
		errs = append(errs, fmt.Errorf("url: %w", err))
	}
	if c.ChainID == "" {
		errs = append(errs, errors.New("chainID is required"))
	}
	if c.RPCURL != "" {
		if err := validateHTTPURL(c.RPCURL); err != nil {
			errs = append(errs, fmt.Errorf("rpcURL: %w", err))
		}
	}
	if _, err := c.clientConfig(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// KeyOptions returns the HD path and address settings for key derivation
func (c *NetworkConfig) KeyOptions() clients.KeyOptions {
	return clients.KeyOptions{
		CoinType:      c.CoinType,
		Account:       c.AccountIndex,
		Index:         c.AddressIndex,
		AddressPrefix: c.AddressPrefix,
	}
}

// ClientConfig returns the transaction settings for a TerraClient
func (c *NetworkConfig) ClientConfig() clients.TerraClientConfig {
	// Validate has already checked every field clientConfig parses
	config, _ := c.clientConfig()
	return config
}

func (c *NetworkConfig) clientConfig() (clients.TerraClientConfig, error) {
	dialect, err := clients.ParseDialect(c.Dialect)
	if err != nil {
		return clients.TerraClientConfig{}, err
	}

	gasPrices, err := clients.ParseDecCoins(c.GasPrices)
	if err != nil {
		return clients.TerraClientConfig{}, fmt.Errorf("gasPrices: %w", err)
	}

	fees, err := clients.ParseCoins(c.Fees)
	if err != nil {
		return clients.TerraClientConfig{}, fmt.Errorf("fees: %w", err)
	}
	if len(gasPrices) == 0 && len(fees) == 0 {
		return clients.TerraClientConfig{}, errors.New("one of gasPrices or fees is required")
	}

	adjustment, err := decimal.NewFromString(c.GasAdjustment)
	if err != nil {
		return clients.TerraClientConfig{}, fmt.Errorf("gasAdjustment: %w", err)
	}
	if !adjustment.IsPositive() {
		return clients.TerraClientConfig{}, fmt.Errorf("gasAdjustment must be positive, got %s", c.GasAdjustment)
	}

	return clients.TerraClientConfig{
		ChainID:          c.ChainID,
		Dialect:          dialect,
		GasPrices:        gasPrices,
		GasAdjustment:    adjustment,
		GasLimit:         c.GasLimit,
		Fees:             fees,
		Memo:             c.Memo,
		BroadcastTimeout: c.BroadcastTimeout,
		PollInterval:     c.PollInterval,
	}, nil
}

func validateHTTPURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("unsupported scheme %q in %s", u.Scheme, raw)
	}
	if u.Host == "" {
		return fmt.Errorf("missing host in %s", raw)
	}
	return nil
}
