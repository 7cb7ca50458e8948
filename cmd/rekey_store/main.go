// One-off: re-seal the local store file under a new passphrase. Contents stay the same.
// Usage: go run ./cmd/rekey_store [path]   (defaults to STORE_FILE_PATH or gamefi.cwt)
package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/AlexZinkM/ton-gamefi/internal/config"
	"github.com/AlexZinkM/ton-gamefi/internal/crypto"
	"github.com/AlexZinkM/ton-gamefi/internal/storage"
)

func main() {
	path := os.Getenv("STORE_FILE_PATH")
	if len(os.Args) > 1 {
		path = os.Args[1]
	}
	if path == "" {
		path = "gamefi.cwt"
	}

	if _, err := os.Stat(path); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	current, err := config.ReadPassphrase("Current passphrase: ")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer clear(current)

	store, err := storage.OpenFileStore(path, current, crypto.DefaultScryptN)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer store.Close()

	next, err := config.ReadPassphrase("New passphrase: ")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer clear(next)

	confirm, err := config.ReadPassphrase("Repeat new passphrase: ")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer clear(confirm)

	if !bytes.Equal(next, confirm) {
		fmt.Fprintln(os.Stderr, "passphrases do not match")
		os.Exit(1)
	}

	if err := store.Rekey(next); err != nil {
		fmt.Fprintln(os.Stderr, "rekey failed:", err)
		os.Exit(1)
	}
	fmt.Println("store re-sealed:", path)
}
