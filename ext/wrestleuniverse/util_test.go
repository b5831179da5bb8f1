package wrestleuniverse

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha1"
	"crypto/x509"
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyDecryptorRoundTrip(t *testing.T) {
	decryptor, err := newKeyDecryptor()
	require.NoError(t, err)

	token, err := decryptor.PublicToken()
	require.NoError(t, err)

	der, err := base64.StdEncoding.DecodeString(token)
	require.NoError(t, err)
	parsed, err := x509.ParsePKIXPublicKey(der)
	require.NoError(t, err)
	publicKey, ok := parsed.(*rsa.PublicKey)
	require.True(t, ok)

	plaintext := []byte("0123456789abcdef0123456789abcdef")
	ciphertext, err := rsa.EncryptOAEP(
		sha1.New(), rand.Reader,
		publicKey, plaintext, nil,
	)
	require.NoError(t, err)

	decrypted, err := decryptor.Decrypt(
		base64.StdEncoding.EncodeToString(ciphertext))
	require.NoError(t, err)
	assert.Equal(t, plaintext, decrypted)
}

func TestKeyDecryptorEmptyInput(t *testing.T) {
	decryptor, err := newKeyDecryptor()
	require.NoError(t, err)

	decrypted, err := decryptor.Decrypt("")
	require.NoError(t, err)
	assert.Nil(t, decrypted)
}

func TestKeyDecryptorInvalidBase64(t *testing.T) {
	decryptor, err := newKeyDecryptor()
	require.NoError(t, err)

	_, err = decryptor.Decrypt("not-base64!!")
	assert.Error(t, err)
}
