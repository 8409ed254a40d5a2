package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"sigs.k8s.io/yaml"

	"github.com/terra-deployer/deployer/internal"
	"github.com/terra-deployer/deployer/internal/clients"
)

// Operation is an operation config file that converts to a workflow payload
type Operation interface {
	Validate() error
	Payload() internal.Payload
}

// StoreCodeConfig is the store-code operation file: { codePath }
type StoreCodeConfig struct {
	CodePath string `json:"codePath"`
}

// InstantiateConfig is the instantiate operation file: { codeID, msg, admin?, label?, coins? }
type InstantiateConfig struct {
	CodeID uint64          `json:"codeID"`
	Msg    json.RawMessage `json:"msg"`
	Admin  string          `json:"admin,omitempty"`
	Label  string          `json:"label,omitempty"`
	Coins  Coins           `json:"coins,omitempty"`
}

// ExecuteConfig is the execute operation file: { contractAddress, msg, coins? }
type ExecuteConfig struct {
	ContractAddress string          `json:"contractAddress"`
	Msg             json.RawMessage `json:"msg"`
	Coins           Coins           `json:"coins,omitempty"`
}

// MigrateConfig is the migrate operation file: { contractAddress, codeID, msg }
type MigrateConfig struct {
	ContractAddress string          `json:"contractAddress"`
	CodeID          uint64          `json:"codeID"`
	Msg             json.RawMessage `json:"msg"`
}

// LoadOperation decodes the JSON or YAML operation file at path into T and validates it.
// Keys inside msg keep their case, which is why this does not go through viper.
func LoadOperation[T any, PT interface {
	*T
	Operation
}](path string) (PT, error) {
	if path == "" {
		return nil, errors.New("operation config path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read operation config: %w", err)
	}

	op := PT(new(T))
	if err := yaml.Unmarshal(data, op); err != nil {
		return nil, fmt.Errorf("failed to decode operation config %s: %w", path, err)
	}
	if err := op.Validate(); err != nil {
		return nil, fmt.Errorf("invalid operation config %s: %w", path, err)
	}
	return op, nil
}

func (c *StoreCodeConfig) Validate() error {
	if c.CodePath == "" {
		return errors.New("codePath is required")
	}
	info, err := os.Stat(c.CodePath)
	if err != nil {
		return fmt.Errorf("codePath: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("codePath %s is a directory", c.CodePath)
	}
	return nil
}

func (c *InstantiateConfig) Validate() error {
	var errs []error
	if c.CodeID == 0 {
		errs = append(errs, errors.New("codeID is required"))
	}
	if err := validateMsg(c.Msg, false); err != nil {
		errs = append(errs, err)
	}
	if err := clients.ValidateCoins(c.Coins); err != nil {
		errs = append(errs, fmt.Errorf("coins: %w", err))
	}
	return errors.Join(errs...)
}

func (c *ExecuteConfig) Validate() error {
	var errs []error
	if c.ContractAddress == "" {
		errs = append(errs, errors.New("contractAddress is required"))
	}
	if err := validateMsg(c.Msg, true); err != nil {
		errs = append(errs, err)
	}
	if err := clients.ValidateCoins(c.Coins); err != nil {
		errs = append(errs, fmt.Errorf("coins: %w", err))
	}
	return errors.Join(errs...)
}

func (c *MigrateConfig) Validate() error {
	var errs []error
	if c.ContractAddress == "" {
		errs = append(errs, errors.New("contractAddress is required"))
	}
	if c.CodeID == 0 {
		errs = append(errs, errors.New("codeID is required"))
	}
	if err := validateMsg(c.Msg, false); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func (c *StoreCodeConfig) Payload() internal.Payload {
	return internal.StoreCode{BytecodePath: c.CodePath}
}

func (c *InstantiateConfig) Payload() internal.Payload {
	return internal.Instantiate{
		CodeID:      c.CodeID,
		InitMessage: c.Msg,
		Admin:       c.Admin,
		Label:       c.Label,
		Funds:       c.Coins,
	}
}

func (c *ExecuteConfig) Payload() internal.Payload {
	return internal.Execute{
		ContractAddress: c.ContractAddress,
		Message:         c.Msg,
		Funds:           c.Coins,
	}
}

func (c *MigrateConfig) Payload() internal.Payload {
	return internal.Migrate{
		ContractAddress: c.ContractAddress,
		NewCodeID:       c.CodeID,
		MigrateMessage:  c.Msg,
	}
}

// validateMsg requires msg, when present, to be a JSON object
func validateMsg(msg json.RawMessage, required bool) error {
	trimmed := bytes.TrimSpace(msg)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		if required {
			return errors.New("msg is required")
		}
		return nil
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &obj); err != nil {
		return fmt.Errorf("msg must be a JSON object: %w", err)
	}
	return nil
}
