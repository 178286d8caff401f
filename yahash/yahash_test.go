package yahash_test

import (
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YaCodeDev/GoYaRSA/yahash"
)

func TestSum_KnownVectors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		alg  yahash.Algorithm
		want string
	}{
		{
			name: "[SHA256] abc",
			alg:  yahash.SHA256,
			want: "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad",
		},
		{
			name: "[SHA3] abc",
			alg:  yahash.SHA3_256,
			want: "3a985da74fe225b2045c172d6bd390bd855f086e3e9d525b46bfe24511431532",
		},
		{
			name: "[BLAKE2b] abc",
			alg:  yahash.BLAKE2b_256,
			want: "bddd813c634239723171ef3fee98579b94964e3bb1cb3e427262c8c068d52319",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, hex.EncodeToString(tt.alg.Sum([]byte("abc"))))
			assert.Equal(t, 32, tt.alg.Size())
		})
	}
}

func TestSum_UnknownFallsBackToSHA256(t *testing.T) {
	t.Parallel()

	want := sha256.Sum256([]byte("data"))

	assert.Equal(t, want[:], yahash.Algorithm(99).Sum([]byte("data")))
	assert.False(t, yahash.Algorithm(99).Valid())
}

func TestAlgorithm_Valid(t *testing.T) {
	t.Parallel()

	for _, a := range []yahash.Algorithm{yahash.SHA256, yahash.SHA3_256, yahash.BLAKE2b_256} {
		assert.True(t, a.Valid(), a.String())
	}

	assert.False(t, yahash.Algorithm(3).Valid())
}

func TestParseAlgorithm_Flow(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  yahash.Algorithm
	}{
		{"[SHA256] Lower", "sha256", yahash.SHA256},
		{"[SHA256] Dashed", "SHA-256", yahash.SHA256},
		{"[SHA256] Empty", "", yahash.SHA256},
		{"[SHA3] Dashed", "sha3-256", yahash.SHA3_256},
		{"[SHA3] Underscore", "SHA3_256", yahash.SHA3_256},
		{"[BLAKE2b] Short", "blake2b", yahash.BLAKE2b_256},
		{"[BLAKE2b] Full", "BLAKE2b-256", yahash.BLAKE2b_256},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := yahash.ParseAlgorithm(tt.input)
			require.Nil(t, err)

			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseAlgorithm_Unknown(t *testing.T) {
	t.Parallel()

	_, err := yahash.ParseAlgorithm("md5")
	require.NotNil(t, err)

	assert.ErrorIs(t, err, yahash.ErrUnknownAlgorithm)
}

func TestText_RoundTrip(t *testing.T) {
	t.Parallel()

	for _, alg := range []yahash.Algorithm{yahash.SHA256, yahash.SHA3_256, yahash.BLAKE2b_256} {
		text, err := alg.MarshalText()
		require.NoError(t, err)

		var parsed yahash.Algorithm
		require.NoError(t, parsed.UnmarshalText(text))

		assert.Equal(t, alg, parsed)
	}

	_, err := yahash.Algorithm(42).MarshalText()
	assert.ErrorIs(t, err, yahash.ErrUnknownAlgorithm)
	assert.Equal(t, "Algorithm(42)", yahash.Algorithm(42).String())
}
