// Package cryptox holds the wallet's symmetric crypto: the passphrase KDF,
// a key verifier and AES-GCM sealing of note secrets at rest.
package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/json"
	"errors"

	"golang.org/x/crypto/argon2"
)

// KeySize is the length of keys returned by DeriveWalletKey.
const KeySize = 32

// ErrDecrypt is returned when a sealed value cannot be opened with the key.
var ErrDecrypt = errors.New("decryption failed")

// MakeVerifier returns a value that lets the wallet check a derived key
// without storing the key itself.
func MakeVerifier(walletKey []byte) []byte {
	hash := sha256.Sum256(walletKey)
	return hash[:]
}

// DeriveWalletKey stretches a passphrase into a 32-byte key with Argon2id.
func DeriveWalletKey(passphrase []byte, salt []byte) []byte {
	return argon2.IDKey(passphrase, salt, 1, 64*1024, 4, KeySize)
}

// Seal serializes v to JSON and encrypts it with AES-GCM under key. A fresh
// 12-byte nonce is generated for every call.
//
//	ciphertext, nonce, err := cryptox.Seal(secret, key)
func Seal(v any, key []byte) (ciphertext, nonce []byte, err error) {
	plaintext, err := json.Marshal(v)
	if err != nil {
		return nil, nil, err
	}

	nonce = make([]byte, 12)
	if _, err := rand.Read(nonce); err != nil {
		return nil, nil, err
	}

	aesgcm, err := newGCM(key)
	if err != nil {
		return nil, nil, err
	}

	return aesgcm.Seal(nil, nonce, plaintext, nil), nonce, nil
}

// Open decrypts a value produced by Seal and unmarshals it into v.
// A wrong key or tampered ciphertext yields ErrDecrypt.
func Open(ciphertext, nonce, key []byte, v any) error {
	aesgcm, err := newGCM(key)
	if err != nil {
		return err
	}
	if len(nonce) != aesgcm.NonceSize() {
		return ErrDecrypt
	}

	plaintext, err := aesgcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return ErrDecrypt
	}

	return json.Unmarshal(plaintext, v)
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}
