package yarandom

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"hash"
)

const counterSize = 8

// DeterministicReader is a reproducible byte stream: block i is
// HMAC-SHA256(seed, bigEndian(i)). The same seed always yields the same bytes,
// which makes prime and key generation repeatable in tests.
//
// It is not a vetted DRBG and not safe for concurrent use. Wrap it with
// NewLockedReader when several goroutines share it.
//
// Example:
//
//	r := yarandom.NewDeterministicReader([]byte("fixture"))
//	key, err := yarsa.GenerateKeyPair(ctx, yarsa.KeyOpts{Bits: 512, Random: r})
type DeterministicReader struct {
	mac     hash.Hash
	counter uint64
	block   []byte
	offset  int
}

// NewDeterministicReader creates a reader for seed. The seed is copied.
func NewDeterministicReader(seed []byte) *DeterministicReader {
	key := append([]byte(nil), seed...)

	return &DeterministicReader{mac: hmac.New(sha256.New, key)}
}

// Read always fills p completely and never fails.
func (r *DeterministicReader) Read(p []byte) (int, error) {
	for written := 0; written < len(p); {
		if r.offset == len(r.block) {
			r.next()
		}

		n := copy(p[written:], r.block[r.offset:])
		r.offset += n
		written += n
	}

	return len(p), nil
}

func (r *DeterministicReader) next() {
	var ctr [counterSize]byte

	binary.BigEndian.PutUint64(ctr[:], r.counter)
	r.counter++

	r.mac.Reset()
	r.mac.Write(ctr[:])

	r.block = r.mac.Sum(r.block[:0])
	r.offset = 0
}
