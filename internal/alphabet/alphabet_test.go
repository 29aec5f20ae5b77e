package alphabet

import (
	"encoding/base64"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rotatedTable(n int) []byte {
	table := []byte(standardAlphabet)
	return append(table[n:], table[:n]...)
}

func TestCandidates_AcceptsStandardAlphabet(t *testing.T) {
	content := append([]byte("prefix\x00"), []byte(standardAlphabet)...)

	tables := Candidates(content)

	require.Len(t, tables, 1)
	assert.Equal(t, []byte(standardAlphabet), tables[0])
}

func TestCandidates_AcceptsShuffledAlphabet(t *testing.T) {
	table := rotatedTable(7)

	tables := Candidates(table)

	require.Len(t, tables, 1)
	assert.Equal(t, table, tables[0])
}

func TestCandidates_RejectsRepeatedCharacters(t *testing.T) {
	run := make([]byte, 64)
	for i := range run {
		run[i] = 'A'
	}

	assert.Empty(t, Candidates(run))
}

func TestCandidates_RejectsEqualsSignVariant(t *testing.T) {
	variant := []byte("ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+=")
	require.Len(t, variant, 64)

	assert.Empty(t, Candidates(variant))
}

func TestCandidates_FindsMultipleTables(t *testing.T) {
	content := append([]byte{}, rotatedTable(3)...)
	content = append(content, 0x00)
	content = append(content, rotatedTable(11)...)

	tables := Candidates(content)

	require.Len(t, tables, 2)
	assert.Equal(t, rotatedTable(3), tables[0])
	assert.Equal(t, rotatedTable(11), tables[1])
}

func TestDecode_MatchesStandardBase64(t *testing.T) {
	plain := []byte("HelloGo!!")
	encoded := base64.StdEncoding.EncodeToString(plain)

	decoded, err := Decode([]byte(encoded), []byte(standardAlphabet))

	require.NoError(t, err)
	assert.Equal(t, plain, decoded)
}

func TestEncode_MatchesStandardBase64(t *testing.T) {
	plain := []byte("HelloGo!!")

	encoded := Encode(plain, []byte(standardAlphabet))

	assert.Equal(t, base64.StdEncoding.EncodeToString(plain), string(encoded))
}

func TestDecode_ShortBlock(t *testing.T) {
	_, err := Decode([]byte("ABCDE"), []byte(standardAlphabet))

	assert.ErrorContains(t, err, "too short")
}

func TestDecode_InvalidCharacter(t *testing.T) {
	_, err := Decode([]byte("AB=A"), []byte(standardAlphabet))

	assert.ErrorContains(t, err, "invalid char")
}

func TestEncodeDecode_Roundtrip(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	table := []byte(standardAlphabet)
	r.Shuffle(len(table), func(i, j int) {
		table[i], table[j] = table[j], table[i]
	})

	for _, size := range []int{3, 20, 27, 300} {
		data := make([]byte, size)
		r.Read(data)

		decoded, err := Decode(Encode(data, table), table)

		require.NoError(t, err)
		assert.Equal(t, data, decoded)
	}
}

func TestDecode_ShortTailEmitsTwoBytes(t *testing.T) {
	encoded := Encode([]byte{0xab}, []byte(standardAlphabet))
	require.Len(t, encoded, 2)

	decoded, err := Decode(encoded, []byte(standardAlphabet))

	require.NoError(t, err)
	assert.Equal(t, []byte{0xab, 0x00}, decoded)
}

func TestDecodeStrings_KeepsPayloadOrder(t *testing.T) {
	table := rotatedTable(7)
	first := []byte("0=8080|1=Yes")
	second := []byte("http://c2.example/")

	content := append([]byte{}, table...)
	content = append(content, 0x00)
	content = append(content, Encode(first, table)...)
	content = append(content, 0x00)
	content = append(content, Encode(second, table)...)

	decoded := DecodeStrings(content, Candidates(content))

	require.Len(t, decoded, 2)
	assert.Equal(t, string(first), decoded[0])
	assert.Equal(t, string(second), decoded[1])
}

func TestDecodeStrings_DropsNonASCIIResults(t *testing.T) {
	table := rotatedTable(7)

	decoded := DecodeStrings(table, [][]byte{table})

	assert.Empty(t, decoded)
}
