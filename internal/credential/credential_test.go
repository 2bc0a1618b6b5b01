package credential

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newKey(t *testing.T) *rsa.PrivateKey {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	return key
}

func pkcs1PEM(key *rsa.PrivateKey) string {
	return string(pem.EncodeToMemory(&pem.Block{Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(key)}))
}

func encrypt(t *testing.T, key *rsa.PrivateKey, plaintext string) string {
	t.Helper()
	ct, err := rsa.EncryptPKCS1v15(rand.Reader, &key.PublicKey, []byte(plaintext))
	require.NoError(t, err)
	return base64.StdEncoding.EncodeToString(ct)
}

func TestDecrypt_RoundTrip(t *testing.T) {
	key := newKey(t)
	blob := encrypt(t, key, "Pa$$w0rd-ünïcode")

	got, err := Decrypt(pkcs1PEM(key), "\n"+blob+"\n")
	require.NoError(t, err)
	assert.Equal(t, "Pa$$w0rd-ünïcode", got)
}

func TestDecrypt_PKCS8Key(t *testing.T) {
	key := newKey(t)
	der, err := x509.MarshalPKCS8PrivateKey(key)
	require.NoError(t, err)
	keyPEM := string(pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: der}))

	got, err := Decrypt(keyPEM, encrypt(t, key, "hunter2"))
	require.NoError(t, err)
	assert.Equal(t, "hunter2", got)
}

func TestDecrypt_Failures(t *testing.T) {
	key := newKey(t)
	other := newKey(t)

	tests := []struct {
		name    string
		key     string
		blob    string
		wantErr error
	}{
		{"empty key", "", encrypt(t, key, "x"), ErrMalformedKey},
		{"garbage key", "not a key", encrypt(t, key, "x"), ErrMalformedKey},
		{"wrong pem type", string(pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: []byte{1}})), encrypt(t, key, "x"), ErrMalformedKey},
		{"bad base64", pkcs1PEM(key), "%%%not-base64", ErrMalformedCiphertext},
		{"wrong key", pkcs1PEM(other), encrypt(t, key, "x"), ErrMalformedCiphertext},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decrypt(tt.key, tt.blob)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCache(t *testing.T) {
	c := NewCache()
	_, ok := c.Get()
	assert.False(t, ok)

	c.Set("first")
	c.Set("second")
	v, ok := c.Get()
	assert.True(t, ok)
	assert.Equal(t, "second", v)
}

func TestCache_ConcurrentWriters(t *testing.T) {
	c := NewCache()
	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Set("same")
			c.Get()
		}()
	}
	wg.Wait()

	v, ok := c.Get()
	assert.True(t, ok)
	assert.Equal(t, "same", v)
}
