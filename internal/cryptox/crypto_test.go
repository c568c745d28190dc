package cryptox

import (
	"bytes"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveWalletKey_Deterministic(t *testing.T) {
	password := []byte("secret-password")
	salt := []byte("fixed-salt")

	key1 := DeriveWalletKey(password, salt)
	key2 := DeriveWalletKey(password, salt)

	assert.True(t, bytes.Equal(key1, key2))
	assert.Len(t, key1, KeySize)

	// argon2id(t=1, m=64MiB, p=4) snapshot
	assert.Equal(t, "34f7a1c64df63ab1ad5b5ee06e64db5713b35f81839823304db63e8e5e6a6a39", hex.EncodeToString(key1))
}

func TestDeriveWalletKey_DifferentSalts(t *testing.T) {
	password := []byte("secret-password")

	key1 := DeriveWalletKey(password, []byte("salt-1"))
	key2 := DeriveWalletKey(password, []byte("salt-2"))

	assert.False(t, bytes.Equal(key1, key2))
}

func TestMakeVerifier(t *testing.T) {
	v := MakeVerifier([]byte("k"))
	assert.Len(t, v, 32)
	assert.Equal(t, v, MakeVerifier([]byte("k")))
	assert.NotEqual(t, v, MakeVerifier([]byte("j")))
}

type secret struct {
	Value  []byte  `json:"value"`
	Amount float64 `json:"amount"`
}

func TestSealOpen(t *testing.T) {
	key := DeriveWalletKey([]byte("pw"), []byte("salt"))
	in := secret{Value: []byte{1, 2, 3}, Amount: 0.5}

	ct, nonce, err := Seal(in, key)
	require.NoError(t, err)
	assert.Len(t, nonce, 12)

	var out secret
	require.NoError(t, Open(ct, nonce, key, &out))
	assert.Equal(t, in, out)

	// fresh nonce every time
	_, nonce2, err := Seal(in, key)
	require.NoError(t, err)
	assert.NotEqual(t, nonce, nonce2)
}

func TestOpen_WrongKeyOrTampered(t *testing.T) {
	key := DeriveWalletKey([]byte("pw"), []byte("salt"))
	other := DeriveWalletKey([]byte("pw2"), []byte("salt"))

	ct, nonce, err := Seal(secret{Amount: 1}, key)
	require.NoError(t, err)

	var out secret
	assert.ErrorIs(t, Open(ct, nonce, other, &out), ErrDecrypt)

	ct[0] ^= 0xff
	assert.ErrorIs(t, Open(ct, nonce, key, &out), ErrDecrypt)

	assert.ErrorIs(t, Open(ct, []byte{1}, key, &out), ErrDecrypt)
}

func TestSeal_BadKeyLength(t *testing.T) {
	_, _, err := Seal(secret{}, []byte("short"))
	assert.Error(t, err)
}
