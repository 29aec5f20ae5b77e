package au3

import (
	"bytes"
	"encoding/base64"
	"fmt"

	"github.com/sirupsen/logrus"
)

// Provenance records how a XOR key was obtained.
type Provenance int

const (
	EmbeddedDerived Provenance = iota
	BruteForced
)

func (p Provenance) String() string {
	if p == EmbeddedDerived {
		return "embedded"
	}
	return "bruteforce"
}

// Key is a recovered single-byte XOR key.
type Key struct {
	Value      byte
	Provenance Provenance
}

// Decoder recovers the XOR-encrypted PE payload embedded in a compiled
// AutoIt script.
type Decoder struct {
	log *logrus.Logger
}

func NewDecoder(log *logrus.Logger) *Decoder {
	return &Decoder{log: log}
}

// DecodeEmbedded derives the XOR key from the script secret and decrypts the
// payload segment. The script layout is pipe-delimited: the second segment
// carries the key material, the third the base64 payload.
func (d *Decoder) DecodeEmbedded(content []byte) ([]byte, Key, error) {
	parts := bytes.Split(content, []byte("|"))
	if len(parts) < 3 {
		return nil, Key{}, fmt.Errorf("expected at least 3 pipe-delimited segments, got %d", len(parts))
	}

	secret, err := keySecret(parts[1])
	if err != nil {
		return nil, Key{}, err
	}
	key := deriveKey(secret)
	d.log.WithFields(logrus.Fields{
		"secret":  secret,
		"xor_key": fmt.Sprintf("0x%02x", key),
	}).Info("Derived XOR key from embedded script secret")

	payload, err := decryptPayload(parts[2], key)
	if err != nil {
		return nil, Key{}, fmt.Errorf("unable to decode embedded payload segment. %v", err)
	}
	return payload, Key{Value: key, Provenance: EmbeddedDerived}, nil
}

// keySecret builds the key material: a fixed 'a' prefix plus up to 8 bytes of
// the segment, skipping its first byte.
func keySecret(segment []byte) (string, error) {
	end := 9
	if len(segment) < end {
		end = len(segment)
	}
	var raw []byte
	if len(segment) > 1 {
		raw = segment[1:end]
	}
	if !isASCII(raw) {
		return "", fmt.Errorf("script secret contains non-ASCII bytes")
	}
	return "a" + string(raw), nil
}

func deriveKey(secret string) byte {
	key := byte(len(secret))
	for i := 0; i < len(secret); i++ {
		key ^= secret[i]
	}
	return ^key
}

func decryptPayload(encoded []byte, key byte) ([]byte, error) {
	decoded := make([]byte, base64.StdEncoding.DecodedLen(len(encoded)))
	n, err := base64.StdEncoding.Decode(decoded, encoded)
	if err != nil {
		return nil, err
	}
	return xorBytes(decoded[:n], key), nil
}

func xorBytes(data []byte, key byte) []byte {
	out := make([]byte, len(data))
	for i, b := range data {
		out[i] = b ^ key
	}
	return out
}

func isASCII(data []byte) bool {
	for _, b := range data {
		if b > 0x7f {
			return false
		}
	}
	return true
}
