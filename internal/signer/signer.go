// Package signer provides the signing capability used to authorize everpay transactions.
//
// The everpay core only ever sees the Signer interface: a hardware wallet, a remote
// signer or a local key are interchangeable.
package signer

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"strings"

	"everpay-go/internal/model"
	"everpay-go/internal/xerr"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
)

// Signer signs a canonical everpay message and returns the signature as a string.
type Signer interface {
	Sign(ctx context.Context, message string) (string, error)
}

// Func adapts a function to the Signer interface.
type Func func(ctx context.Context, message string) (string, error)

func (f Func) Sign(ctx context.Context, message string) (string, error) {
	return f(ctx, message)
}

// KeySigner signs with an in-memory secp256k1 key using EIP-191 personal_sign.
type KeySigner struct {
	privateKey *ecdsa.PrivateKey
	address    common.Address
}

// NewKeySigner parses a hex private key, with or without 0x.
func NewKeySigner(privateKeyHex string) (*KeySigner, error) {
	privateKey, err := crypto.HexToECDSA(strings.TrimPrefix(privateKeyHex, "0x"))
	if err != nil {
		return nil, fmt.Errorf("invalid private key: %w", err)
	}
	return NewKeySignerFromKey(privateKey), nil
}

func NewKeySignerFromKey(key *ecdsa.PrivateKey) *KeySigner {
	return &KeySigner{
		privateKey: key,
		address:    crypto.PubkeyToAddress(key.PublicKey),
	}
}

// Address is the everpay account of the key.
func (s *KeySigner) Address() string {
	return s.address.Hex()
}

// PrivateKey exposes the key for on-chain deposit signing.
func (s *KeySigner) PrivateKey() *ecdsa.PrivateKey {
	return s.privateKey
}

// Sign returns a 65 byte [R || S || V] signature with V in {27, 28}, hex encoded.
func (s *KeySigner) Sign(_ context.Context, message string) (string, error) {
	sig, err := crypto.Sign(accounts.TextHash([]byte(message)), s.privateKey)
	if err != nil {
		return "", err
	}
	sig[crypto.RecoveryIDOffset] += 27
	return hexutil.Encode(sig), nil
}

// WalletSigner loads the account's key from the wallets table each time it signs,
// so keys never live in the process longer than one signature.
type WalletSigner struct {
	dao     model.WalletsDao
	address string
}

func NewWalletSigner(dao model.WalletsDao, address string) *WalletSigner {
	return &WalletSigner{dao: dao, address: address}
}

func (s *WalletSigner) Sign(ctx context.Context, message string) (string, error) {
	key, err := LoadKey(ctx, s.dao, s.address)
	if err != nil {
		return "", err
	}
	return NewKeySignerFromKey(key).Sign(ctx, message)
}

// LoadKey reads and parses the stored key of address.
func LoadKey(ctx context.Context, dao model.WalletsDao, address string) (*ecdsa.PrivateKey, error) {
	if dao == nil {
		return nil, xerr.New(xerr.ErrWalletNotFound, "no wallet store configured for %s", address)
	}
	wallet, err := dao.FindOneByAddress(ctx, address)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, xerr.New(xerr.ErrWalletNotFound, "wallet %s not found", address)
		}
		return nil, fmt.Errorf("query wallet %s: %w", address, err)
	}
	key, err := crypto.HexToECDSA(strings.TrimPrefix(wallet.EncryptedPrivateKey, "0x"))
	if err != nil {
		return nil, fmt.Errorf("invalid private key for %s: %w", address, err)
	}
	return key, nil
}

// RecoverAddress returns the address that produced sig over message.
func RecoverAddress(message, sig string) (string, error) {
	raw, err := hexutil.Decode(sig)
	if err != nil {
		return "", err
	}
	if len(raw) != crypto.SignatureLength {
		return "", fmt.Errorf("invalid signature length %d", len(raw))
	}
	if raw[crypto.RecoveryIDOffset] >= 27 {
		raw[crypto.RecoveryIDOffset] -= 27
	}
	pub, err := crypto.SigToPub(accounts.TextHash([]byte(message)), raw)
	if err != nil {
		return "", err
	}
	return crypto.PubkeyToAddress(*pub).Hex(), nil
}
