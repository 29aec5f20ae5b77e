// Package alphabet locates custom base64 alphabets inside decrypted payloads
// and decodes the strings encoded with them.
package alphabet

import (
	"regexp"

	"golang.org/x/exp/slices"
)

const standardAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/"

var (
	candidateRe = regexp.MustCompile(`[A-Za-z0-9+/=]{64}`)
	stringRe    = regexp.MustCompile(`[A-Za-z0-9+/=]{5,}`)

	sortedAlphabet = func() []byte {
		s := []byte(standardAlphabet)
		slices.Sort(s)
		return s
	}()
)

// Candidates returns every 64-character run that is a permutation of the
// standard base64 alphabet. Shuffled tables survive, repeated-character runs
// do not.
func Candidates(content []byte) [][]byte {
	var tables [][]byte
	for _, match := range candidateRe.FindAll(content, -1) {
		sorted := slices.Clone(match)
		slices.Sort(sorted)
		if slices.Equal(sorted, sortedAlphabet) {
			tables = append(tables, match)
		}
	}
	return tables
}

// DecodeStrings decodes every base64-looking run against every candidate
// table and keeps the results that are pure ASCII. Results are grouped by
// run, preserving payload order.
func DecodeStrings(content []byte, candidates [][]byte) []string {
	var out []string
	for _, match := range stringRe.FindAll(content, -1) {
		for _, table := range candidates {
			decoded, err := Decode(match, table)
			if err != nil {
				continue
			}
			if !isASCII(decoded) {
				continue
			}
			out = append(out, string(decoded))
		}
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
