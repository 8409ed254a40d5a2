package clients

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const storeCodeResponse = `{
  "height": "1234",
  "txhash": "AB12",
  "codespace": "",
  "code": 0,
  "raw_log": "[]",
  "logs": [{
    "msg_index": 0,
    "log": "",
    "events": [
      {"type": "message", "attributes": [{"key": "action", "value": "/terra.wasm.v1beta1.MsgStoreCode"}]},
      {"type": "store_code", "attributes": [{"key": "sender", "value": "terra1abc"}, {"key": "code_id", "value": "42"}]}
    ]
  }],
  "gas_wanted": "200000",
  "gas_used": "150000"
}`

func TestTxResultDecode(t *testing.T) {
	var res TxResult
	require.NoError(t, json.Unmarshal([]byte(storeCodeResponse), &res))

	assert.True(t, res.Success())
	assert.Equal(t, int64(1234), res.Height)
	assert.Equal(t, int64(150000), res.GasUsed)

	codeID, ok := res.FindEventAttribute(DialectTerra.StoreCodeEvent())
	assert.True(t, ok)
	assert.Equal(t, "42", codeID)

	_, ok = res.FindEventAttribute(DialectTerra.InstantiateEvent())
	assert.False(t, ok)
}

func TestTxResultFindEventAttribute_TopLevelEvents(t *testing.T) {
	res := &TxResult{
		Events: []Event{
			{Type: "instantiate", Attributes: []Attribute{
				{Key: "_contract_address", Value: "terra1contract"},
				{Key: "code_id", Value: "9"},
			}},
		},
	}

	address, ok := res.FindEventAttribute(DialectCosmWasm.InstantiateEvent())
	assert.True(t, ok)
	assert.Equal(t, "terra1contract", address)
}

func TestTxResultFindEventAttribute_FirstValue(t *testing.T) {
	res := &TxResult{
		Logs: []MessageLog{{Events: []Event{
			{Type: "instantiate_contract", Attributes: []Attribute{{Key: "contract_address", Value: "terra1first"}}},
			{Type: "instantiate_contract", Attributes: []Attribute{{Key: "contract_address", Value: "terra1second"}}},
		}}},
	}

	address, ok := res.FindEventAttribute(DialectTerra.InstantiateEvent())
	assert.True(t, ok)
	assert.Equal(t, "terra1first", address)
}

func TestParseDialect(t *testing.T) {
	d, err := ParseDialect("")
	require.NoError(t, err)
	assert.Equal(t, DialectTerra, d)

	d, err = ParseDialect("cosmwasm")
	require.NoError(t, err)
	assert.Equal(t, DialectCosmWasm, d)

	_, err = ParseDialect("evm")
	assert.Error(t, err)
}
