package clients

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/encoding/protowire"
)

// decodeFields splits a protobuf message into its fields, keeping bytes
// fields as raw values and varints as their decoded value
func decodeFields(t *testing.T, b []byte) map[protowire.Number][]interface{} {
	t.Helper()
	fields := make(map[protowire.Number][]interface{})
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		require.GreaterOrEqual(t, n, 0, "invalid tag")
		b = b[n:]
		switch typ {
		case protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			require.GreaterOrEqual(t, n, 0, "invalid varint")
			fields[num] = append(fields[num], v)
			b = b[n:]
		case protowire.BytesType:
			v, n := protowire.ConsumeBytes(b)
			require.GreaterOrEqual(t, n, 0, "invalid bytes")
			fields[num] = append(fields[num], v)
			b = b[n:]
		default:
			t.Fatalf("unexpected wire type %d", typ)
		}
	}
	return fields
}

func bytesField(t *testing.T, fields map[protowire.Number][]interface{}, num protowire.Number) []byte {
	t.Helper()
	require.NotEmpty(t, fields[num], "field %d missing", num)
	return fields[num][0].([]byte)
}

func TestEncodeTxBody(t *testing.T) {
	msg := &MsgExecuteContract{
		Sender:     "terra1sender",
		Contract:   "terra1contract",
		ExecuteMsg: []byte(`{"increment":{}}`),
		Coins:      []Coin{{Denom: "uluna", Amount: "10"}},
	}

	body := decodeFields(t, EncodeTxBody([]Msg{msg}, DialectTerra, "hello"))
	assert.Equal(t, "hello", string(bytesField(t, body, 2)))

	msgAny := decodeFields(t, bytesField(t, body, 1))
	assert.Equal(t, "/terra.wasm.v1beta1.MsgExecuteContract", string(bytesField(t, msgAny, 1)))

	value := decodeFields(t, bytesField(t, msgAny, 2))
	assert.Equal(t, "terra1sender", string(bytesField(t, value, 1)))
	assert.Equal(t, "terra1contract", string(bytesField(t, value, 2)))
	assert.Equal(t, `{"increment":{}}`, string(bytesField(t, value, 3)))

	coin := decodeFields(t, bytesField(t, value, 5))
	assert.Equal(t, "uluna", string(bytesField(t, coin, 1)))
	assert.Equal(t, "10", string(bytesField(t, coin, 2)))
}

func TestEncodeTxBody_NoMemo(t *testing.T) {
	body := decodeFields(t, EncodeTxBody([]Msg{&MsgStoreCode{Sender: "terra1sender"}}, DialectTerra, ""))
	assert.NotContains(t, body, protowire.Number(2))
}

func TestMsgInstantiateContract_Dialects(t *testing.T) {
	msg := &MsgInstantiateContract{
		Sender:  "terra1sender",
		Admin:   "terra1admin",
		CodeID:  42,
		Label:   "counter",
		InitMsg: []byte(`{"count":0}`),
	}

	typeURL, value := msg.encode(DialectTerra)
	assert.Equal(t, "/terra.wasm.v1beta1.MsgInstantiateContract", typeURL)
	fields := decodeFields(t, value)
	assert.Equal(t, "terra1admin", string(bytesField(t, fields, 2)))
	assert.Equal(t, uint64(42), fields[3][0])
	assert.Equal(t, `{"count":0}`, string(bytesField(t, fields, 4)))

	typeURL, value = msg.encode(DialectCosmWasm)
	assert.Equal(t, "/cosmwasm.wasm.v1.MsgInstantiateContract", typeURL)
	fields = decodeFields(t, value)
	assert.Equal(t, "counter", string(bytesField(t, fields, 4)))
	assert.Equal(t, `{"count":0}`, string(bytesField(t, fields, 5)))
}

func TestMsgMigrateContract_Encode(t *testing.T) {
	msg := &MsgMigrateContract{Admin: "terra1admin", Contract: "terra1contract", NewCodeID: 7, MigrateMsg: []byte(`{}`)}
	assert.Equal(t, "terra1admin", msg.Signer())

	typeURL, value := msg.encode(DialectTerra)
	assert.Equal(t, "/terra.wasm.v1beta1.MsgMigrateContract", typeURL)
	fields := decodeFields(t, value)
	assert.Equal(t, "terra1admin", string(bytesField(t, fields, 1)))
	assert.Equal(t, "terra1contract", string(bytesField(t, fields, 2)))
	assert.Equal(t, uint64(7), fields[3][0])
	assert.Equal(t, `{}`, string(bytesField(t, fields, 4)))
}

func TestEncodeAuthInfo(t *testing.T) {
	pub := make([]byte, 33)
	pub[0] = 0x02
	fee := Fee{Amount: []Coin{{Denom: "uluna", Amount: "3000"}}, GasLimit: 20000}

	auth := decodeFields(t, EncodeAuthInfo(pub, 9, fee))

	signerInfo := decodeFields(t, bytesField(t, auth, 1))
	assert.Equal(t, uint64(9), signerInfo[3][0])

	pubAny := decodeFields(t, bytesField(t, signerInfo, 1))
	assert.Equal(t, "/cosmos.crypto.secp256k1.PubKey", string(bytesField(t, pubAny, 1)))
	pubKey := decodeFields(t, bytesField(t, pubAny, 2))
	assert.Equal(t, pub, bytesField(t, pubKey, 1))

	modeInfo := decodeFields(t, bytesField(t, signerInfo, 2))
	single := decodeFields(t, bytesField(t, modeInfo, 1))
	assert.Equal(t, uint64(1), single[1][0])

	feeFields := decodeFields(t, bytesField(t, auth, 2))
	assert.Equal(t, uint64(20000), feeFields[2][0])
	coin := decodeFields(t, bytesField(t, feeFields, 1))
	assert.Equal(t, "3000", string(bytesField(t, coin, 2)))
}

func TestEncodeTxRaw(t *testing.T) {
	raw := decodeFields(t, EncodeTxRaw([]byte("body"), []byte("auth"), []byte{}))
	assert.Equal(t, "body", string(bytesField(t, raw, 1)))
	assert.Equal(t, "auth", string(bytesField(t, raw, 2)))
	// the empty signature slot is kept
	require.Len(t, raw[3], 1)
	assert.Empty(t, raw[3][0])
}

func TestEncodeSignDoc(t *testing.T) {
	doc := decodeFields(t, EncodeSignDoc([]byte("body"), []byte("auth"), SignerData{ChainID: "pisco-1", AccountNumber: 12}))
	assert.Equal(t, "pisco-1", string(bytesField(t, doc, 3)))
	assert.Equal(t, uint64(12), doc[4][0])
}

func TestTxHash(t *testing.T) {
	// sha256("")
	assert.Equal(t, "E3B0C44298FC1C149AFBF4C8996FB92427AE41E4649B934CA495991B7852B855", TxHash(nil))
}
