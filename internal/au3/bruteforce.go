package au3

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"dgextractor/internal/detect"
)

// ErrKeyNotFound means no single-byte XOR key produced a decodable payload.
var ErrKeyNotFound = errors.New("no single-byte xor key recovered")

// BruteForce tries all 256 single-byte XOR keys. For each key it searches
// content for the base64 encoding of the XORed PE header prefix; a hit marks
// the start of the embedded payload, which runs up to the next pipe.
func (d *Decoder) BruteForce(content []byte) ([]byte, Key, error) {
	for key := 0; key < 256; key++ {
		needle := []byte(base64.StdEncoding.EncodeToString(xorBytes(detect.PEStartBytes, byte(key))))
		offset := bytes.Index(content, needle)
		if offset <= 0 {
			continue
		}
		end := bytes.IndexByte(content[offset:], '|')
		if end <= 0 {
			continue
		}
		d.log.WithFields(logrus.Fields{
			"xor_key": fmt.Sprintf("0x%02x", key),
			"offset":  offset,
			"length":  end,
		}).Info("Found embedded payload file candidate")
		payload, err := decryptPayload(content[offset:offset+end], byte(key))
		if err != nil {
			continue
		}
		return payload, Key{Value: byte(key), Provenance: BruteForced}, nil
	}
	return nil, Key{}, ErrKeyNotFound
}
