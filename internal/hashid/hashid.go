// Package hashid converts non-negative integers to short, salted,
// reversible strings and back using hashids. This is obfuscation, not
// encryption.
package hashid

import (
	"errors"
	"fmt"

	"github.com/speps/go-hashids"
)

// DefaultAlphabet is the 62 character alphanumeric alphabet
const DefaultAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ1234567890"

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrEmptySalt         = errors.New("salt must not be empty")
	ErrNegativeMinLength = errors.New("minimum length must not be negative")
	ErrInvalidAlphabet   = errors.New("invalid alphabet")
)

// Config holds the parameters of a Codec.
type Config struct {
	Salt      string
	MinLength int
	// Defaults to DefaultAlphabet when empty
	Alphabet string
}

// Codec encodes and decodes hashes for a single Config. It is immutable
// after New and may be shared between goroutines.
type Codec struct {
	hid       *hashids.HashID
	minLength int
}

// New validates cfg and builds the underlying hashids instance.
func New(cfg Config) (*Codec, error) {
	if cfg.Salt == "" {
		return nil, ErrEmptySalt
	}
	if cfg.MinLength < 0 {
		return nil, ErrNegativeMinLength
	}

	hd := hashids.NewData()
	hd.Salt = cfg.Salt
	hd.MinLength = cfg.MinLength
	if cfg.Alphabet != "" {
		hd.Alphabet = cfg.Alphabet
	}

	hid, err := hashids.NewWithData(hd)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAlphabet, err)
	}
	return &Codec{hid: hid, minLength: cfg.MinLength}, nil
}

// MinLength returns the minimum length of every hash this codec produces.
func (c *Codec) MinLength() int {
	return c.minLength
}

// Encode encodes one or more non-negative values into a single hash.
func (c *Codec) Encode(values ...int64) (string, error) {
	hash, err := c.hid.EncodeInt64(values)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return hash, nil
}

// EncodeOne encodes a single value.
func (c *Codec) EncodeOne(value int64) (string, error) {
	return c.Encode(value)
}

// Decode returns the values encoded in hash. A hash this codec could not
// have produced (foreign characters, wrong length, failed guard check)
// decodes to an empty slice. A hash made under another salt is not
// guaranteed to be rejected, it may decode to unrelated values.
func (c *Codec) Decode(hash string) []int64 {
	values, err := c.hid.DecodeInt64WithError(hash)
	if err != nil || len(values) == 0 {
		return []int64{}
	}
	return values
}

// DecodeOne returns the first value encoded in hash, and false if hash
// is invalid.
func (c *Codec) DecodeOne(hash string) (int64, bool) {
	values := c.Decode(hash)
	if len(values) == 0 {
		return 0, false
	}
	return values[0], true
}
