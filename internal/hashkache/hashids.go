package hashkache

import (
	"fmt"
	"strings"

	"github.com/NCATS-Gamma/hashkache/internal/hashid"
)

// Connections holds the codecs built at startup, keyed by connection name
type Connections struct {
	defaultName string
	codecs      map[string]*hashid.Codec
}

// NewConnections fails if defaultName has no codec. Names are matched
// case-insensitively.
func NewConnections(defaultName string, codecs map[string]*hashid.Codec) (*Connections, error) {
	byName := make(map[string]*hashid.Codec, len(codecs))
	for name, codec := range codecs {
		byName[strings.ToLower(name)] = codec
	}
	defaultName = strings.ToLower(defaultName)
	if _, ok := byName[defaultName]; !ok {
		return nil, fmt.Errorf("no codec for default connection %q", defaultName)
	}
	return &Connections{defaultName: defaultName, codecs: byName}, nil
}

// Get returns the codec for name, or the default codec when name is empty
func (conns *Connections) Get(name string) (*hashid.Codec, error) {
	if name == "" {
		name = conns.defaultName
	}
	codec, ok := conns.codecs[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("Not Found: Unknown connection %s", name)
	}
	return codec, nil
}

// Convert a raw path segment to its ID and hash
func idToHash(codec *hashid.Codec, raw string) (int64, string, error) {
	id, err := hashid.ParseID(raw)
	if err != nil {
		return -1, "", fmt.Errorf("Bad Request: ID must be numeric")
	}
	hash, err := codec.EncodeOne(id)
	if err != nil {
		return -1, "", err
	}
	return id, hash, nil
}

// Convert a hash back to the first ID it carries
func hashToID(codec *hashid.Codec, hash string) (int64, error) {
	id, ok := codec.DecodeOne(hash)
	if !ok {
		return -1, fmt.Errorf("Bad Request: Invalid or corrupted hash")
	}
	return id, nil
}

// EncodeResponse is returned by GET /encode/:id
type EncodeResponse struct {
	OriginalID  int64  `json:"original_id"`
	EncodedHash string `json:"encoded_hash"`
}

// DecodeResponse is returned by GET /decode/:hash
type DecodeResponse struct {
	Hash      string `json:"hash"`
	DecodedID int64  `json:"decoded_id"`
}
