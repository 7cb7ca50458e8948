package crypto

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrInvalidPassphrase is returned when the envelope cannot be opened
var ErrInvalidPassphrase = errors.New("invalid passphrase")

// OpenSealer decrypts the envelope and returns a Sealer bound to its salt
// and cost, so later writes skip key derivation.
func OpenSealer(data, passphrase []byte) (*Sealer, []byte, error) {
	env, sealer, plaintext, err := open(data, passphrase)
	if err != nil {
		return nil, nil, err
	}
	sealer.kind = env.Kind
	return sealer, plaintext, nil
}

// open decrypts an envelope and returns it with a Sealer bound to its key
func open(data, passphrase []byte) (*Envelope, *Sealer, []byte, error) {
	if len(data) == 0 {
		return nil, nil, nil, errors.New("envelope is empty")
	}

	// Skip UTF-8 BOM if present
	data = bytes.TrimPrefix(data, utf8BOM)

	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, nil, nil, fmt.Errorf("failed to unmarshal envelope: %w", err)
	}

	salt, err := base64.StdEncoding.DecodeString(env.Salt)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to decode salt: %w", err)
	}

	nonce, err := base64.StdEncoding.DecodeString(env.Nonce)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to decode nonce: %w", err)
	}

	ciphertext, err := base64.StdEncoding.DecodeString(env.CipherText)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to decode ciphertext: %w", err)
	}

	scryptN := env.ScryptN
	if scryptN <= 1 {
		scryptN = DefaultScryptN
	}

	aesGCM, err := newGCM(passphrase, salt, scryptN)
	if err != nil {
		return nil, nil, nil, err
	}

	plaintext, err := aesGCM.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, nil, nil, ErrInvalidPassphrase
	}

	return &env, &Sealer{scryptN: scryptN, salt: salt, aead: aesGCM}, plaintext, nil
}
