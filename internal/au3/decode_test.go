package au3

import (
	"encoding/base64"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDecoder() *Decoder {
	logger, _ := test.NewNullLogger()
	return NewDecoder(logger)
}

func encrypt(plaintext []byte, key byte) string {
	return base64.StdEncoding.EncodeToString(xorBytes(plaintext, key))
}

func TestDeriveKey_ReferenceVector(t *testing.T) {
	assert.Equal(t, byte(0x9f), deriveKey("a12345678"))
}

func TestDecodeEmbedded_RecoversPayload(t *testing.T) {
	plaintext := []byte("MZP payload bytes with some entropy 0123456789")
	content := []byte("header|X12345678|" + encrypt(plaintext, 0x9f) + "|trailer")

	payload, key, err := newTestDecoder().DecodeEmbedded(content)
	require.NoError(t, err)
	assert.Equal(t, plaintext, payload)
	assert.Equal(t, byte(0x9f), key.Value)
	assert.Equal(t, EmbeddedDerived, key.Provenance)
}

func TestDecodeEmbedded_ShortSecretSegment(t *testing.T) {
	// secret becomes "aB": 2 ^ 'a' ^ 'B' = 0x21, complemented 0xde
	plaintext := []byte("short secret still decrypts")
	content := []byte("header|AB|" + encrypt(plaintext, 0xde) + "|")

	payload, key, err := newTestDecoder().DecodeEmbedded(content)
	require.NoError(t, err)
	assert.Equal(t, plaintext, payload)
	assert.Equal(t, byte(0xde), key.Value)
}

func TestDecodeEmbedded_TooFewSegments(t *testing.T) {
	_, _, err := newTestDecoder().DecodeEmbedded([]byte("no delimiters at all"))
	assert.Error(t, err)

	_, _, err = newTestDecoder().DecodeEmbedded([]byte("one|two"))
	assert.Error(t, err)
}

func TestDecodeEmbedded_NonASCIISecret(t *testing.T) {
	content := []byte{'h', '|', 'k', 0xc3, 0xa9, 'x', '|', 'Q', 'Q', '=', '='}
	_, _, err := newTestDecoder().DecodeEmbedded(content)
	assert.Error(t, err)
}

func TestDecodeEmbedded_MalformedBase64(t *testing.T) {
	_, _, err := newTestDecoder().DecodeEmbedded([]byte("header|X12345678|not_base64!|"))
	assert.Error(t, err)
}
