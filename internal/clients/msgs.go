package clients

import (
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"
)

// Dialect selects the wasm module message set a chain understands
type Dialect string

const (
	// DialectTerra is the legacy terra.wasm.v1beta1 module (columbus / bombay / tequila)
	DialectTerra Dialect = "terra"
	// DialectCosmWasm is the upstream cosmwasm.wasm.v1 module (phoenix and other wasmd chains)
	DialectCosmWasm Dialect = "cosmwasm"
)

// ParseDialect maps a config value onto a Dialect, defaulting to DialectTerra
func ParseDialect(s string) (Dialect, error) {
	switch Dialect(s) {
	case "", DialectTerra:
		return DialectTerra, nil
	case DialectCosmWasm:
		return DialectCosmWasm, nil
	default:
		return "", fmt.Errorf("unsupported dialect: %s (valid: terra, cosmwasm)", s)
	}
}

// EventKey names an event attribute emitted by the wasm module
type EventKey struct {
	Type      string
	Attribute string
}

// StoreCodeEvent is the event attribute carrying the new code ID
func (d Dialect) StoreCodeEvent() EventKey {
	return EventKey{Type: "store_code", Attribute: "code_id"}
}

// InstantiateEvent is the event attribute carrying the new contract address
func (d Dialect) InstantiateEvent() EventKey {
	if d == DialectCosmWasm {
		return EventKey{Type: "instantiate", Attribute: "_contract_address"}
	}
	return EventKey{Type: "instantiate_contract", Attribute: "contract_address"}
}

func (d Dialect) typeURL(name string) string {
	if d == DialectCosmWasm {
		return "/cosmwasm.wasm.v1." + name
	}
	return "/terra.wasm.v1beta1." + name
}

// Msg is a chain message that can be packed into a transaction body
type Msg interface {
	// Signer returns the address that must sign for the message
	Signer() string

	encode(d Dialect) (typeURL string, value []byte)
}

// MsgStoreCode uploads contract bytecode
type MsgStoreCode struct {
	Sender       string
	WASMByteCode []byte
}

// MsgInstantiateContract creates a contract instance from a code ID
type MsgInstantiateContract struct {
	Sender    string
	Admin     string
	CodeID    uint64
	Label     string // required by cosmwasm, ignored by the legacy terra module
	InitMsg   []byte
	InitCoins []Coin
}

// MsgExecuteContract invokes an existing contract
type MsgExecuteContract struct {
	Sender     string
	Contract   string
	ExecuteMsg []byte
	Coins      []Coin
}

// MsgMigrateContract moves a contract onto a new code ID
type MsgMigrateContract struct {
	Admin      string
	Contract   string
	NewCodeID  uint64
	MigrateMsg []byte
}

func (m *MsgStoreCode) Signer() string           { return m.Sender }
func (m *MsgInstantiateContract) Signer() string { return m.Sender }
func (m *MsgExecuteContract) Signer() string     { return m.Sender }
func (m *MsgMigrateContract) Signer() string     { return m.Admin }

func (m *MsgStoreCode) encode(d Dialect) (string, []byte) {
	var b []byte
	b = appendString(b, 1, m.Sender)
	b = appendBytes(b, 2, m.WASMByteCode)
	return d.typeURL("MsgStoreCode"), b
}

func (m *MsgInstantiateContract) encode(d Dialect) (string, []byte) {
	var b []byte
	b = appendString(b, 1, m.Sender)
	b = appendString(b, 2, m.Admin)
	b = appendVarint(b, 3, m.CodeID)
	if d == DialectCosmWasm {
		b = appendString(b, 4, m.Label)
		b = appendBytes(b, 5, m.InitMsg)
		b = appendCoins(b, 6, m.InitCoins)
	} else {
		b = appendBytes(b, 4, m.InitMsg)
		b = appendCoins(b, 5, m.InitCoins)
	}
	return d.typeURL("MsgInstantiateContract"), b
}

func (m *MsgExecuteContract) encode(d Dialect) (string, []byte) {
	var b []byte
	b = appendString(b, 1, m.Sender)
	b = appendString(b, 2, m.Contract)
	b = appendBytes(b, 3, m.ExecuteMsg)
	b = appendCoins(b, 5, m.Coins)
	return d.typeURL("MsgExecuteContract"), b
}

func (m *MsgMigrateContract) encode(d Dialect) (string, []byte) {
	var b []byte
	b = appendString(b, 1, m.Admin)
	b = appendString(b, 2, m.Contract)
	b = appendVarint(b, 3, m.NewCodeID)
	b = appendBytes(b, 4, m.MigrateMsg)
	return d.typeURL("MsgMigrateContract"), b
}

// proto3 field helpers; zero values are omitted as the reference encoder does

func appendString(b []byte, num protowire.Number, v string) []byte {
	if v == "" {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendString(b, v)
}

func appendBytes(b []byte, num protowire.Number, v []byte) []byte {
	if len(v) == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, v)
}

func appendVarint(b []byte, num protowire.Number, v uint64) []byte {
	if v == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, v)
}

// appendMessage always emits the field so empty sub-messages stay present
func appendMessage(b []byte, num protowire.Number, v []byte) []byte {
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, v)
}

func appendCoins(b []byte, num protowire.Number, coins []Coin) []byte {
	for _, c := range coins {
		var coin []byte
		coin = appendString(coin, 1, c.Denom)
		coin = appendString(coin, 2, c.Amount)
		b = appendMessage(b, num, coin)
	}
	return b
}

func encodeAny(typeURL string, value []byte) []byte {
	var b []byte
	b = appendString(b, 1, typeURL)
	return appendBytes(b, 2, value)
}
