// Package hash computes the fingerprints that address blobs and commits.
package hash

import (
	"encoding/hex"
	"fmt"
	"strings"

	gocid "github.com/ipfs/go-cid"
	"github.com/multiformats/go-multibase"
	"github.com/multiformats/go-multihash"
	"github.com/zeebo/xxh3"
)

// Supported algorithm names, as stored in config.toml.
const (
	XXH3   = "xxh3"
	SHA256 = "sha256"
	CID    = "cid"
)

// Hasher maps bytes to a fixed-length printable fingerprint.
// Identical input always yields identical output.
type Hasher interface {
	Name() string
	Sum(data []byte) string
}

// New returns the hasher registered under name.
func New(name string) (Hasher, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case XXH3, "xxh3-128", "":
		return xxh3Hasher{}, nil
	case SHA256:
		return sha256Hasher{}, nil
	case CID:
		return cidHasher{}, nil
	default:
		return nil, fmt.Errorf("unsupported hash algorithm %q", name)
	}
}

// Names lists the supported algorithms.
func Names() []string {
	return []string{XXH3, SHA256, CID}
}

type xxh3Hasher struct{}

func (xxh3Hasher) Name() string { return XXH3 }

func (xxh3Hasher) Sum(data []byte) string {
	b := xxh3.Hash128(data).Bytes()
	return hex.EncodeToString(b[:])
}

type sha256Hasher struct{}

func (sha256Hasher) Name() string { return SHA256 }

// Sum returns the hex SHA2-256 digest carried inside a multihash.
func (sha256Hasher) Sum(data []byte) string {
	mh, err := multihash.Sum(data, multihash.SHA2_256, -1)
	if err != nil {
		// SHA2_256 is always registered
		panic(fmt.Sprintf("multihash: %v", err))
	}
	dec, err := multihash.Decode(mh)
	if err != nil {
		panic(fmt.Sprintf("multihash decode: %v", err))
	}
	return hex.EncodeToString(dec.Digest)
}

type cidHasher struct{}

func (cidHasher) Name() string { return CID }

// Sum returns a CIDv1 (raw codec, SHA2-256) in base32 multibase form.
func (cidHasher) Sum(data []byte) string {
	mh, err := multihash.Sum(data, multihash.SHA2_256, -1)
	if err != nil {
		panic(fmt.Sprintf("multihash: %v", err))
	}
	c := gocid.NewCidV1(gocid.Raw, mh)
	encoded, err := multibase.Encode(multibase.Base32, c.Bytes())
	if err != nil {
		panic(fmt.Sprintf("multibase: %v", err))
	}
	return encoded
}
