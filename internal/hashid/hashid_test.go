package hashid

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ1234567890"

func newTestCodec(t *testing.T) *Codec {
	t.Helper()
	c, err := New(Config{Salt: "test-salt", MinLength: 10, Alphabet: testAlphabet})
	require.NoError(t, err)
	return c
}

var sampleValues = []int64{
	0, 1, 2, 3, 9, 10, 42, 99, 100, 101, 1000, 12345, 999999,
	1 << 31, 1<<32 + 7, 1 << 53, math.MaxInt64 - 1, math.MaxInt64,
}

func TestRoundTrip(t *testing.T) {
	c := newTestCodec(t)
	for _, v := range sampleValues {
		hash, err := c.EncodeOne(v)
		require.NoError(t, err)
		assert.Equal(t, []int64{v}, c.Decode(hash), "value %d via %s", v, hash)
	}
	for v := int64(0); v < 2000; v++ {
		hash, err := c.EncodeOne(v)
		require.NoError(t, err)
		got, ok := c.DecodeOne(hash)
		require.True(t, ok, "value %d via %s", v, hash)
		require.Equal(t, v, got)
	}
}

func TestRoundTripMultiple(t *testing.T) {
	c := newTestCodec(t)
	inputs := [][]int64{
		{1, 2, 3},
		{0, 0, 0},
		{45, 434, 1313, 99},
		{math.MaxInt64, 0, math.MaxInt64},
	}
	for _, values := range inputs {
		hash, err := c.Encode(values...)
		require.NoError(t, err)
		assert.Equal(t, values, c.Decode(hash))
	}
}

func TestMinLength(t *testing.T) {
	c := newTestCodec(t)
	for _, v := range sampleValues {
		hash, err := c.EncodeOne(v)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, len(hash), 10, hash)
	}

	hash, err := c.EncodeOne(1)
	require.NoError(t, err)
	assert.Len(t, hash, 10)

	for _, minLength := range []int{0, 1, 5, 25, 64, 100} {
		c, err := New(Config{Salt: "test-salt", MinLength: minLength})
		require.NoError(t, err)
		hash, err := c.EncodeOne(7)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, len(hash), minLength)
		assert.Equal(t, []int64{7}, c.Decode(hash))
	}
}

func TestAlphabetClosure(t *testing.T) {
	c := newTestCodec(t)
	for _, v := range sampleValues {
		hash, err := c.EncodeOne(v)
		require.NoError(t, err)
		for _, r := range hash {
			assert.True(t, strings.ContainsRune(testAlphabet, r), "%q not in alphabet", r)
		}
	}

	custom := "0123456789abcdef"
	hc, err := New(Config{Salt: "hex", MinLength: 12, Alphabet: custom})
	require.NoError(t, err)
	hash, err := hc.EncodeOne(123456789)
	require.NoError(t, err)
	for _, r := range hash {
		assert.True(t, strings.ContainsRune(custom, r), "%q not in alphabet", r)
	}
	assert.Equal(t, []int64{123456789}, hc.Decode(hash))
}

func TestEncodeInvalidInput(t *testing.T) {
	c := newTestCodec(t)

	_, err := c.EncodeOne(-1)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = c.Encode(1, -5, 3)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = c.Encode()
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestParseID(t *testing.T) {
	for _, raw := range []string{"0", "1", "42", "007", "9223372036854775807"} {
		_, err := ParseID(raw)
		assert.NoError(t, err, raw)
	}
	id, err := ParseID("007")
	require.NoError(t, err)
	assert.Equal(t, int64(7), id)

	for _, raw := range []string{"", "abc", "3.5", "-1", "+1", "1e3", " 1", "0x10", "9223372036854775808", "１２"} {
		_, err := ParseID(raw)
		assert.ErrorIs(t, err, ErrInvalidInput, raw)
	}
}

func TestDecodeInvalidHash(t *testing.T) {
	c := newTestCodec(t)
	hash, err := c.EncodeOne(1)
	require.NoError(t, err)

	invalid := []string{
		"",
		"not-a-real-hash",
		"!!!!!!!!!!",
		hash + "!",
		hash + "a",
		hash[1:],
		hash[:len(hash)-1],
		"a",
		strings.Repeat("z", 40),
	}
	for _, h := range invalid {
		decoded := c.Decode(h)
		assert.NotNil(t, decoded)
		assert.Empty(t, decoded, h)
		_, ok := c.DecodeOne(h)
		assert.False(t, ok, h)
	}
}

func TestDecodeOverflow(t *testing.T) {
	c, err := New(Config{Salt: "test-salt"})
	require.NoError(t, err)
	hash, err := c.EncodeOne(math.MaxInt64)
	require.NoError(t, err)

	// One more digit than the largest value can carry
	assert.Empty(t, c.Decode(hash+hash[1:2]))
}

func TestDeterminism(t *testing.T) {
	a := newTestCodec(t)
	b := newTestCodec(t)
	other, err := New(Config{Salt: "another-salt", MinLength: 10, Alphabet: testAlphabet})
	require.NoError(t, err)

	for _, v := range sampleValues {
		h1, err := a.EncodeOne(v)
		require.NoError(t, err)
		h2, err := a.EncodeOne(v)
		require.NoError(t, err)
		h3, err := b.EncodeOne(v)
		require.NoError(t, err)
		h4, err := other.EncodeOne(v)
		require.NoError(t, err)

		assert.Equal(t, h1, h2)
		assert.Equal(t, h1, h3)
		assert.NotEqual(t, h1, h4)
		// Another salt may still parse the hash, but never back to v
		assert.NotEqual(t, []int64{v}, other.Decode(h1), "value %d via %s", v, h1)
	}
}

func TestDistinctness(t *testing.T) {
	c := newTestCodec(t)
	seen := make(map[string]int64)
	for v := int64(0); v < 5000; v++ {
		hash, err := c.EncodeOne(v)
		require.NoError(t, err)
		prev, dup := seen[hash]
		require.False(t, dup, "%d and %d both encode to %s", prev, v, hash)
		seen[hash] = v
	}
}

func TestExampleScenario(t *testing.T) {
	c := newTestCodec(t)
	s, err := c.EncodeOne(1)
	require.NoError(t, err)
	assert.Len(t, s, 10)
	assert.Equal(t, []int64{1}, c.Decode(s))
	assert.Equal(t, []int64{}, c.Decode(s+"!"))
}

func TestNewInvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		err  error
	}{
		{"empty salt", Config{Alphabet: testAlphabet}, ErrEmptySalt},
		{"negative length", Config{Salt: "s", MinLength: -1}, ErrNegativeMinLength},
		{"short alphabet", Config{Salt: "s", Alphabet: "abcdefghij"}, ErrInvalidAlphabet},
		{"space", Config{Salt: "s", Alphabet: "abcdefghijklmnop qrstuvwxyz"}, ErrInvalidAlphabet},
		{"duplicate", Config{Salt: "s", Alphabet: "abcdefghijklmnopqrstuvwxyza"}, ErrInvalidAlphabet},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.cfg)
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestDefaultAlphabet(t *testing.T) {
	c, err := New(Config{Salt: "test-salt", MinLength: 10})
	require.NoError(t, err)
	explicit := newTestCodec(t)

	for _, v := range []int64{0, 1, 77, 1 << 40} {
		h1, err := c.EncodeOne(v)
		require.NoError(t, err)
		h2, err := explicit.EncodeOne(v)
		require.NoError(t, err)
		assert.Equal(t, h1, h2)
	}
	assert.Equal(t, 10, c.MinLength())
}

// Hashes already handed out must keep decoding after upgrades
func TestStableOutput(t *testing.T) {
	c := newTestCodec(t)
	golden := map[int64]string{
		0:             "8VYxZAJ0Xz",
		1:             "adY3kK3MWz",
		1 << 53:       "e5eEEaE7K6z",
		math.MaxInt64: "G5adPgwZQVrw5",
	}
	for v, want := range golden {
		got, err := c.EncodeOne(v)
		require.NoError(t, err)
		assert.Equal(t, want, got, "value %d", v)
		assert.Equal(t, []int64{v}, c.Decode(want))
	}
}
