package internal

import (
	"encoding/json"

	"github.com/terra-deployer/deployer/internal/clients"
)

// Kind identifies the chain operation a payload performs
type Kind string

const (
	KindStoreCode   Kind = "store_code"
	KindInstantiate Kind = "instantiate"
	KindExecute     Kind = "execute"
	KindMigrate     Kind = "migrate"
)

// Payload is one chain operation. The set of implementations is closed:
// StoreCode, Instantiate, Execute and Migrate.
type Payload interface {
	Kind() Kind
	sealed()
}

// StoreCode uploads the bytecode found at BytecodePath
type StoreCode struct {
	BytecodePath string
}

// Instantiate creates a contract from CodeID. Admin defaults to the signer.
type Instantiate struct {
	CodeID      uint64
	InitMessage json.RawMessage
	Admin       string
	Label       string
	Funds       []clients.Coin
}

// Execute invokes ContractAddress with Message, attaching Funds
type Execute struct {
	ContractAddress string
	Message         json.RawMessage
	Funds           []clients.Coin
}

// Migrate moves ContractAddress to NewCodeID
type Migrate struct {
	ContractAddress string
	NewCodeID       uint64
	MigrateMessage  json.RawMessage
}

func (StoreCode) Kind() Kind   { return KindStoreCode }
func (Instantiate) Kind() Kind { return KindInstantiate }
func (Execute) Kind() Kind     { return KindExecute }
func (Migrate) Kind() Kind     { return KindMigrate }

func (StoreCode) sealed()   {}
func (Instantiate) sealed() {}
func (Execute) sealed()     {}
func (Migrate) sealed()     {}
