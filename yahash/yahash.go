// Package yahash names the message digests a signature can be computed over.
//
// Algorithm is a closed set so it can be parsed from configuration:
//
//	var digest yahash.Algorithm
//	_ = digest.UnmarshalText([]byte("sha3-256"))
//
//	sum := digest.Sum([]byte("hello"))
package yahash

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"hash"
	"net/http"
	"strings"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/sha3"

	"github.com/YaCodeDev/GoYaRSA/yaerrors"
)

var ErrUnknownAlgorithm = errors.New("unknown hash algorithm")

type Algorithm uint8

const (
	SHA256 Algorithm = iota
	SHA3_256
	BLAKE2b_256
)

var names = map[Algorithm]string{
	SHA256:      "sha256",
	SHA3_256:    "sha3-256",
	BLAKE2b_256: "blake2b-256",
}

func (a Algorithm) String() string {
	if name, ok := names[a]; ok {
		return name
	}

	return fmt.Sprintf("Algorithm(%d)", uint8(a))
}

// Valid reports whether a names a known digest.
func (a Algorithm) Valid() bool {
	_, ok := names[a]

	return ok
}

// New returns a fresh hash.Hash for a. Unknown values fall back to SHA-256;
// callers that must not sign under the wrong digest check Valid first.
func (a Algorithm) New() hash.Hash {
	switch a {
	case SHA3_256:
		return sha3.New256()
	case BLAKE2b_256:
		// SAFETY: a nil key is always accepted
		h, _ := blake2b.New256(nil)

		return h
	default:
		return sha256.New()
	}
}

// Size is the digest length in bytes.
func (a Algorithm) Size() int {
	return a.New().Size()
}

// Sum returns the digest of data.
func (a Algorithm) Sum(data []byte) []byte {
	h := a.New()
	h.Write(data)

	return h.Sum(nil)
}

// ParseAlgorithm accepts the names printed by String, case-insensitively,
// with or without the dash ("sha3-256", "SHA3_256", "blake2b").
func ParseAlgorithm(name string) (Algorithm, yaerrors.Error) {
	normalized := strings.NewReplacer("-", "", "_", "").Replace(strings.ToLower(strings.TrimSpace(name)))

	switch normalized {
	case "sha256", "":
		return SHA256, nil
	case "sha3256", "sha3":
		return SHA3_256, nil
	case "blake2b256", "blake2b":
		return BLAKE2b_256, nil
	}

	return 0, yaerrors.FromError(
		http.StatusBadRequest,
		ErrUnknownAlgorithm,
		fmt.Sprintf("[HASH] no digest named `%s`", name),
	)
}

func (a *Algorithm) UnmarshalText(text []byte) error {
	parsed, err := ParseAlgorithm(string(text))
	if err != nil {
		return err
	}

	*a = parsed

	return nil
}

func (a Algorithm) MarshalText() ([]byte, error) {
	if !a.Valid() {
		return nil, yaerrors.FromError(
			http.StatusBadRequest,
			ErrUnknownAlgorithm,
			fmt.Sprintf("[HASH] cannot marshal %s", a),
		)
	}

	return []byte(a.String()), nil
}
