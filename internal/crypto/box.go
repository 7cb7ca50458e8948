package crypto

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/curve25519"
	"golang.org/x/crypto/nacl/box"
)

const boxNonceLen = 24

// KeyPair is a curve25519 key pair used for bridge message encryption
type KeyPair struct {
	Public  [32]byte
	Private [32]byte
}

// NewKeyPair generates a fresh session key pair
func NewKeyPair() (*KeyPair, error) {
	pub, priv, err := box.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("failed to generate key pair: %w", err)
	}
	return &KeyPair{Public: *pub, Private: *priv}, nil
}

// KeyPairFromHex restores a key pair from its hex private key
func KeyPairFromHex(privateHex string) (*KeyPair, error) {
	priv, err := ParseKey(privateHex)
	if err != nil {
		return nil, err
	}
	kp := &KeyPair{Private: priv}
	pub, err := publicFromPrivate(priv)
	if err != nil {
		return nil, err
	}
	kp.Public = pub
	return kp, nil
}

// ID is the hex public key, used as bridge client id
func (k *KeyPair) ID() string {
	return hex.EncodeToString(k.Public[:])
}

// PrivateHex returns the hex private key for persistence
func (k *KeyPair) PrivateHex() string {
	return hex.EncodeToString(k.Private[:])
}

// Encrypt seals msg for the peer; output is nonce || box
func (k *KeyPair) Encrypt(msg []byte, peer [32]byte) ([]byte, error) {
	var nonce [boxNonceLen]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}
	return box.Seal(nonce[:], msg, &nonce, &peer, &k.Private), nil
}

// Decrypt opens nonce || box sent by the peer
func (k *KeyPair) Decrypt(data []byte, peer [32]byte) ([]byte, error) {
	if len(data) < boxNonceLen+box.Overhead {
		return nil, errors.New("message too short")
	}
	var nonce [boxNonceLen]byte
	copy(nonce[:], data[:boxNonceLen])
	out, ok := box.Open(nil, data[boxNonceLen:], &nonce, &peer, &k.Private)
	if !ok {
		return nil, errors.New("failed to decrypt message")
	}
	return out, nil
}

// ParseKey decodes a 32-byte hex key
func ParseKey(s string) ([32]byte, error) {
	var key [32]byte
	raw, err := hex.DecodeString(s)
	if err != nil {
		return key, fmt.Errorf("invalid hex key: %w", err)
	}
	if len(raw) != len(key) {
		return key, fmt.Errorf("invalid key length: expected 32 bytes, got %d", len(raw))
	}
	copy(key[:], raw)
	return key, nil
}

func publicFromPrivate(priv [32]byte) ([32]byte, error) {
	var pub [32]byte
	raw, err := curve25519.X25519(priv[:], curve25519.Basepoint)
	if err != nil {
		return pub, fmt.Errorf("failed to derive public key: %w", err)
	}
	copy(pub[:], raw)
	return pub, nil
}
