package cryptox

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyPassword(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("p@ss1234")
	require.NoError(t, err)
	require.NotEqual(t, "p@ss1234", hash)

	require.NoError(t, VerifyPassword("p@ss1234", hash))
	require.ErrorIs(t, VerifyPassword("wrong", hash), ErrPasswordMismatch)
}

func TestVerifyPasswordBadHash(t *testing.T) {
	t.Parallel()

	err := VerifyPassword("anything", "not-a-bcrypt-hash")
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrPasswordMismatch)
}

func TestHashPasswordSalted(t *testing.T) {
	t.Parallel()

	a, err := HashPassword("p@ss1234")
	require.NoError(t, err)
	b, err := HashPassword("p@ss1234")
	require.NoError(t, err)
	require.NotEqual(t, a, b)
}

func testFieldCipher(t *testing.T) *FieldCipher {
	t.Helper()
	key := base64.StdEncoding.EncodeToString([]byte("0123456789abcdef0123456789abcdef"))
	c, err := NewFieldCipher(key)
	require.NoError(t, err)
	return c
}

func TestFieldCipherRoundtrip(t *testing.T) {
	t.Parallel()

	c := testFieldCipher(t)

	for _, plain := range []string{"13800138000", "a", "exactly 16 bytes", "much longer value spanning several aes blocks"} {
		enc, err := c.Encrypt(plain)
		require.NoError(t, err)
		require.NotEqual(t, plain, enc)

		dec, err := c.Decrypt(enc)
		require.NoError(t, err)
		require.Equal(t, plain, dec)
	}
}

func TestFieldCipherRandomIV(t *testing.T) {
	t.Parallel()

	c := testFieldCipher(t)

	a, err := c.Encrypt("13800138000")
	require.NoError(t, err)
	b, err := c.Encrypt("13800138000")
	require.NoError(t, err)
	require.NotEqual(t, a, b)
}

func TestFieldCipherEmptyAndNil(t *testing.T) {
	t.Parallel()

	c := testFieldCipher(t)

	enc, err := c.Encrypt("")
	require.NoError(t, err)
	require.Equal(t, "", enc)

	var nilCipher *FieldCipher
	enc, err = nilCipher.Encrypt("plain")
	require.NoError(t, err)
	require.Equal(t, "plain", enc)

	dec, err := nilCipher.Decrypt("plain")
	require.NoError(t, err)
	require.Equal(t, "plain", dec)
}

func TestFieldCipherRejectsBadInput(t *testing.T) {
	t.Parallel()

	c := testFieldCipher(t)

	_, err := c.Decrypt("not base64!!")
	require.Error(t, err)

	// Valid base64 but too short to hold an IV.
	_, err = c.Decrypt(base64.StdEncoding.EncodeToString([]byte("short")))
	require.Error(t, err)
}

func TestNewFieldCipherBadKey(t *testing.T) {
	t.Parallel()

	_, err := NewFieldCipher("!!!not-base64!!!")
	require.Error(t, err)

	// Decodes fine but wrong length for AES.
	_, err = NewFieldCipher(base64.StdEncoding.EncodeToString([]byte("short")))
	require.Error(t, err)
}
