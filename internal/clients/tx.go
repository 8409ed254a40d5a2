package clients

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

const (
	secp256k1PubKeyTypeURL = "/cosmos.crypto.secp256k1.PubKey"
	signModeDirect         = 1
)

// Fee is the fee and gas limit declared in a transaction's auth info
type Fee struct {
	Amount   []Coin `json:"amount"`
	GasLimit uint64 `json:"gas_limit"`
}

// SignerData is the account state a signature commits to
type SignerData struct {
	ChainID       string
	AccountNumber uint64
	Sequence      uint64
}

// SignedTx is a transaction ready to broadcast
type SignedTx struct {
	TxBytes       []byte `json:"-"`
	Hash          string `json:"txhash"`
	AccountNumber uint64 `json:"account_number"`
	Sequence      uint64 `json:"sequence"`
	Fee           Fee    `json:"fee"`
	Memo          string `json:"memo,omitempty"`
}

// TxHash returns the upper-case hex sha256 of the raw transaction, as nodes index it
func TxHash(txBytes []byte) string {
	sum := sha256.Sum256(txBytes)
	return strings.ToUpper(hex.EncodeToString(sum[:]))
}

// EncodeTxBody encodes cosmos.tx.v1beta1.TxBody
func EncodeTxBody(msgs []Msg, d Dialect, memo string) []byte {
	var b []byte
	for _, msg := range msgs {
		typeURL, value := msg.encode(d)
		b = appendMessage(b, 1, encodeAny(typeURL, value))
	}
	return appendString(b, 2, memo)
}

// EncodeAuthInfo encodes cosmos.tx.v1beta1.AuthInfo for a single SIGN_MODE_DIRECT signer
func EncodeAuthInfo(publicKey []byte, sequence uint64, fee Fee) []byte {
	var pubKey []byte
	pubKey = appendBytes(pubKey, 1, publicKey)

	var single []byte
	single = appendVarint(single, 1, signModeDirect)
	var modeInfo []byte
	modeInfo = appendMessage(modeInfo, 1, single)

	var signerInfo []byte
	signerInfo = appendMessage(signerInfo, 1, encodeAny(secp256k1PubKeyTypeURL, pubKey))
	signerInfo = appendMessage(signerInfo, 2, modeInfo)
	signerInfo = appendVarint(signerInfo, 3, sequence)

	var feeBytes []byte
	feeBytes = appendCoins(feeBytes, 1, fee.Amount)
	feeBytes = appendVarint(feeBytes, 2, fee.GasLimit)

	var b []byte
	b = appendMessage(b, 1, signerInfo)
	return appendMessage(b, 2, feeBytes)
}

// EncodeSignDoc encodes cosmos.tx.v1beta1.SignDoc
func EncodeSignDoc(bodyBytes, authInfoBytes []byte, signer SignerData) []byte {
	var b []byte
	b = appendBytes(b, 1, bodyBytes)
	b = appendBytes(b, 2, authInfoBytes)
	b = appendString(b, 3, signer.ChainID)
	return appendVarint(b, 4, signer.AccountNumber)
}

// EncodeTxRaw encodes cosmos.tx.v1beta1.TxRaw. Empty signatures are kept so
// that simulation sees one signature per signer.
func EncodeTxRaw(bodyBytes, authInfoBytes []byte, signatures ...[]byte) []byte {
	var b []byte
	b = appendBytes(b, 1, bodyBytes)
	b = appendBytes(b, 2, authInfoBytes)
	for _, sig := range signatures {
		b = appendMessage(b, 3, sig)
	}
	return b
}
