package clients

import (
	"crypto/ecdsa"
	"crypto/sha256"
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/btcutil/bech32"
	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/tyler-smith/go-bip39"
	"golang.org/x/crypto/ripemd160" //nolint:staticcheck // cosmos addresses are defined over ripemd160
)

const (
	// DefaultCoinType is the BIP-44 coin type registered for Terra
	DefaultCoinType uint32 = 330

	// DefaultAddressPrefix is the bech32 human readable part of Terra account addresses
	DefaultAddressPrefix = "terra"
)

// KeyOptions selects the HD path and address format used to derive a key
type KeyOptions struct {
	CoinType      uint32 // BIP-44 coin type
	Account       uint32 // BIP-44 account (hardened)
	Index         uint32 // BIP-44 address index
	AddressPrefix string // bech32 prefix for the derived address
}

// MnemonicKey is a secp256k1 signing key derived from a BIP-39 mnemonic
type MnemonicKey struct {
	privateKey *ecdsa.PrivateKey
	publicKey  []byte // 33 byte compressed form
	address    string
	hdPath     string
}

// NewMnemonicKey derives the key at m/44'/coin'/account'/0/index from the given mnemonic
func NewMnemonicKey(mnemonic string, opts KeyOptions) (*MnemonicKey, error) {
	if opts.CoinType == 0 {
		opts.CoinType = DefaultCoinType
	}
	if opts.AddressPrefix == "" {
		opts.AddressPrefix = DefaultAddressPrefix
	}

	// Normalize whitespace the same way wallets do before checksum validation
	mnemonic = strings.Join(strings.Fields(mnemonic), " ")
	seed, err := bip39.NewSeedWithErrorChecking(mnemonic, "")
	if err != nil {
		return nil, fmt.Errorf("invalid mnemonic: %w", err)
	}

	master, err := hdkeychain.NewMaster(seed, &chaincfg.MainNetParams)
	if err != nil {
		return nil, fmt.Errorf("failed to create master key: %w", err)
	}

	path := []uint32{
		hdkeychain.HardenedKeyStart + 44,
		hdkeychain.HardenedKeyStart + opts.CoinType,
		hdkeychain.HardenedKeyStart + opts.Account,
		0,
		opts.Index,
	}
	child := master
	for _, segment := range path {
		child, err = child.Derive(segment)
		if err != nil {
			return nil, fmt.Errorf("failed to derive key: %w", err)
		}
	}

	ecPrivKey, err := child.ECPrivKey()
	if err != nil {
		return nil, fmt.Errorf("failed to extract private key: %w", err)
	}

	// Re-import through go-ethereum so signing uses its secp256k1 curve
	privateKey, err := crypto.ToECDSA(ecPrivKey.Serialize())
	if err != nil {
		return nil, fmt.Errorf("invalid private key: %w", err)
	}

	publicKey := crypto.CompressPubkey(&privateKey.PublicKey)
	address, err := AccAddress(opts.AddressPrefix, publicKey)
	if err != nil {
		return nil, err
	}

	return &MnemonicKey{
		privateKey: privateKey,
		publicKey:  publicKey,
		address:    address,
		hdPath:     fmt.Sprintf("m/44'/%d'/%d'/0/%d", opts.CoinType, opts.Account, opts.Index),
	}, nil
}

// Address returns the bech32 account address of the key
func (k *MnemonicKey) Address() string {
	return k.address
}

// PublicKey returns the compressed secp256k1 public key
func (k *MnemonicKey) PublicKey() []byte {
	return k.publicKey
}

// HDPath returns the derivation path the key was derived at
func (k *MnemonicKey) HDPath() string {
	return k.hdPath
}

// Sign signs sha256(msg) and returns the 64 byte r||s signature expected by cosmos chains
func (k *MnemonicKey) Sign(msg []byte) ([]byte, error) {
	hash := sha256.Sum256(msg)
	sig, err := crypto.Sign(hash[:], k.privateKey)
	if err != nil {
		return nil, fmt.Errorf("failed to sign: %w", err)
	}
	// Drop the recovery byte
	return sig[:64], nil
}

// AccAddress encodes ripemd160(sha256(pubkey)) as a bech32 address with the given prefix
func AccAddress(prefix string, publicKey []byte) (string, error) {
	shaSum := sha256.Sum256(publicKey)
	hasher := ripemd160.New()
	hasher.Write(shaSum[:])

	converted, err := bech32.ConvertBits(hasher.Sum(nil), 8, 5, true)
	if err != nil {
		return "", fmt.Errorf("failed to convert address bits: %w", err)
	}
	address, err := bech32.Encode(prefix, converted)
	if err != nil {
		return "", fmt.Errorf("failed to encode address: %w", err)
	}
	return address, nil
}
