package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"

	"golang.org/x/crypto/scrypt"
)

const (
	// scrypt parameters for the local store
	// N=2^18 (~256MB RAM, 0.5-2s), same cost as a local wallet file
	DefaultScryptN = 1 << 18
	scryptR        = 8
	scryptP        = 1
	scryptKeyLen   = 32
	saltLen        = 32
	nonceLen       = 12
)

// utf8BOM is written in front of sealed files for proper display in Windows
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Envelope is the on-disk structure of a sealed file
type Envelope struct {
	Kind       string `json:"kind"`
	ScryptN    int    `json:"scryptN"`
	Salt       string `json:"salt"`
	Nonce      string `json:"nonce"`
	CipherText string `json:"cipherText"`
}

// Sealer seals repeatedly under one salt, so the key is derived once.
// Every Seal still uses a fresh nonce.
type Sealer struct {
	kind    string
	scryptN int
	salt    []byte
	aead    cipher.AEAD
}

// NewSealer derives a key for a fresh random salt
func NewSealer(kind string, passphrase []byte, scryptN int) (*Sealer, error) {
	if scryptN <= 1 {
		scryptN = DefaultScryptN
	}

	salt := make([]byte, saltLen)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}

	aesGCM, err := newGCM(passphrase, salt, scryptN)
	if err != nil {
		return nil, err
	}
	return &Sealer{kind: kind, scryptN: scryptN, salt: salt, aead: aesGCM}, nil
}

// Seal encrypts plaintext into a serialized envelope
func (s *Sealer) Seal(plaintext []byte) ([]byte, error) {
	nonce := make([]byte, nonceLen)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}

	ciphertext := s.aead.Seal(nil, nonce, plaintext, nil)

	env := Envelope{
		Kind:       s.kind,
		ScryptN:    s.scryptN,
		Salt:       base64.StdEncoding.EncodeToString(s.salt),
		Nonce:      base64.StdEncoding.EncodeToString(nonce),
		CipherText: base64.StdEncoding.EncodeToString(ciphertext),
	}

	data, err := json.MarshalIndent(env, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal envelope: %w", err)
	}

	return append(append([]byte{}, utf8BOM...), data...), nil
}

// newGCM derives the AES key from passphrase and salt
func newGCM(passphrase, salt []byte, scryptN int) (cipher.AEAD, error) {
	key, err := scrypt.Key(passphrase, salt, scryptN, scryptR, scryptP, scryptKeyLen)
	if err != nil {
		return nil, fmt.Errorf("failed to derive key: %w", err)
	}
	defer clear(key)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	aesGCM, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}
	return aesGCM, nil
}
