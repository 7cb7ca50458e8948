package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/AlexZinkM/ton-gamefi/internal/crypto"
)

const envelopeKind = "gamefi-store"

var errStoreClosed = errors.New("store is closed")

// FileStore keeps all keys in one passphrase-sealed file.
// The key is derived once on open and reused for every write.
type FileStore struct {
	mu      sync.Mutex
	path    string
	scryptN int
	sealer  *crypto.Sealer
	data    map[string][]byte
}

// OpenFileStore opens (or prepares) the sealed file at path.
// passphrase is not kept; caller may zero its slice after the call.
// scryptN applies to new files and Rekey, existing files keep their own cost.
func OpenFileStore(path string, passphrase []byte, scryptN int) (*FileStore, error) {
	if len(passphrase) == 0 {
		return nil, errors.New("passphrase cannot be empty")
	}

	s := &FileStore{
		path:    path,
		scryptN: scryptN,
		data:    make(map[string][]byte),
	}

	fileData, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	if len(fileData) == 0 {
		if s.sealer, err = crypto.NewSealer(envelopeKind, passphrase, scryptN); err != nil {
			return nil, fmt.Errorf("failed to prepare store: %w", err)
		}
		return s, nil
	}

	sealer, plaintext, err := crypto.OpenSealer(fileData, passphrase)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}
	defer clear(plaintext) // wipe decrypted bytes from memory
	s.sealer = sealer

	if err := json.Unmarshal(plaintext, &s.data); err != nil {
		return nil, fmt.Errorf("failed to unmarshal store: %w", err)
	}
	return s, nil
}

func (s *FileStore) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

func (s *FileStore) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, had := s.data[key]
	s.data[key] = append([]byte(nil), value...)
	if err := s.flush(); err != nil {
		if had {
			s.data[key] = prev
		} else {
			delete(s.data, key)
		}
		return err
	}
	return nil
}

func (s *FileStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, had := s.data[key]
	if !had {
		return nil
	}
	delete(s.data, key)
	if err := s.flush(); err != nil {
		s.data[key] = prev
		return err
	}
	return nil
}

// Rekey re-seals the store under a new passphrase
func (s *FileStore) Rekey(passphrase []byte) error {
	if len(passphrase) == 0 {
		return errors.New("passphrase cannot be empty")
	}

	sealer, err := crypto.NewSealer(envelopeKind, passphrase, s.scryptN)
	if err != nil {
		return fmt.Errorf("failed to prepare store: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.sealer == nil {
		return errStoreClosed
	}
	old := s.sealer
	s.sealer = sealer
	if err := s.flush(); err != nil {
		s.sealer = old
		return err
	}
	return nil
}

// Close drops the derived key; later writes fail
func (s *FileStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sealer = nil
	return nil
}

// flush seals the whole map and atomically replaces the file. Caller holds mu.
func (s *FileStore) flush() error {
	if s.sealer == nil {
		return errStoreClosed
	}

	plaintext, err := json.Marshal(s.data)
	if err != nil {
		return fmt.Errorf("failed to marshal store: %w", err)
	}
	defer clear(plaintext)

	sealed, err := s.sealer.Seal(plaintext)
	if err != nil {
		return fmt.Errorf("failed to seal store: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(sealed); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write file: %w", err)
	}
	if err := tmp.Chmod(0600); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to chmod file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("failed to replace file: %w", err)
	}
	return nil
}
