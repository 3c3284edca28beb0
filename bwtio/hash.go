package bwtio

import (
	"crypto"
	_ "crypto/sha256" // registers crypto.SHA256 for RegisteredDigest
	"encoding/hex"
	"errors"
	"io"
	"strings"

	_ "golang.org/x/crypto/blake2b" // registers crypto.BLAKE2b_256
	"lukechampine.com/blake3"
)

// ContentDigest returns the hex-encoded BLAKE3-256 digest of text, uppercased
// first so that digests are stable across callers who differ only in
// sequence letter case.
func ContentDigest(text []byte) string {
	sum := blake3.Sum256([]byte(strings.ToUpper(string(text))))
	return hex.EncodeToString(sum[:])
}

// RegisteredDigest hashes text with any hash.Hash registered through the
// standard crypto.Hash registry (e.g. crypto.SHA256, crypto.BLAKE2b_256),
// returning an error if the requested hash was never registered by a blank
// import.
func RegisteredDigest(text []byte, h crypto.Hash) (string, error) {
	if !h.Available() {
		return "", errors.New("bwtio: requested hash is not registered")
	}
	digest := h.New()
	if _, err := io.WriteString(digest, strings.ToUpper(string(text))); err != nil {
		return "", err
	}
	return hex.EncodeToString(digest.Sum(nil)), nil
}
