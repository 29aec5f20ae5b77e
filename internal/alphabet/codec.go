package alphabet

import (
	"bytes"
	"fmt"
)

// decodeBlock decodes a window of up to 4 symbols through a 24-bit
// accumulator. Full windows yield 3 bytes; short windows are zero-padded and
// yield only the 2 high bytes.
func decodeBlock(block, table []byte) ([]byte, error) {
	if len(block) < 2 {
		return nil, fmt.Errorf("base64 block too short (%d symbols)", len(block))
	}
	var n uint32
	for i := 0; i < 4; i++ {
		n <<= 6
		if i < len(block) {
			v := bytes.IndexByte(table, block[i])
			if v < 0 {
				return nil, fmt.Errorf("base64 invalid char (%02X)", block[i])
			}
			n |= uint32(v)
		}
	}
	out := []byte{byte(n >> 16), byte(n >> 8)}
	if len(block) >= 4 {
		out = append(out, byte(n))
	}
	return out, nil
}

// Decode decodes data against a 64-character table. The trailing window may
// be short but never shorter than 2 symbols.
func Decode(data, table []byte) ([]byte, error) {
	out := make([]byte, 0, len(data)/4*3+3)
	for i := 0; i < len(data); i += 4 {
		end := i + 4
		if end > len(data) {
			end = len(data)
		}
		block, err := decodeBlock(data[i:end], table)
		if err != nil {
			return nil, err
		}
		out = append(out, block...)
	}
	return out, nil
}

// Encode is the inverse of Decode: 3-byte groups map to 4 symbols, shorter
// tails to len+1 symbols. No padding characters are emitted.
func Encode(data, table []byte) []byte {
	out := make([]byte, 0, (len(data)+2)/3*4)
	for i := 0; i < len(data); i += 3 {
		end := i + 3
		if end > len(data) {
			end = len(data)
		}
		chunk := data[i:end]
		var n uint32
		for j := 0; j < 3; j++ {
			n <<= 8
			if j < len(chunk) {
				n |= uint32(chunk[j])
			}
		}
		for j := 0; j <= len(chunk); j++ {
			shift := uint(18 - 6*j)
			out = append(out, table[(n>>shift)&0x3f])
		}
	}
	return out
}
