package yarsa

import (
	"errors"
	"math/big"
	"net/http"

	"github.com/YaCodeDev/GoYaRSA/yaencoding"
	"github.com/YaCodeDev/GoYaRSA/yaerrors"
	"github.com/YaCodeDev/GoYaRSA/yahash"
	"github.com/YaCodeDev/GoYaRSA/yamath"
	"github.com/YaCodeDev/GoYaRSA/yatext"
)

// Signer signs the digest of a text, reduced mod n, without padding. The zero
// value uses UTF-8 and SHA-256. A Digest outside the yahash set is rejected.
type Signer struct {
	Text   yatext.Codec
	Digest yahash.Algorithm
}

var defaultSigner = &Signer{}

// Sign signs text with private using UTF-8 and SHA-256.
func Sign(private *PrivateKey, text string) (string, yaerrors.Error) {
	return defaultSigner.Sign(private, text)
}

// Verify checks a signature made by Sign.
func Verify(public *PublicKey, text, signature string) (bool, yaerrors.Error) {
	return defaultSigner.Verify(public, text, signature)
}

func (s *Signer) codec() yatext.Codec {
	if s.Text == nil {
		return yatext.UTF8
	}

	return s.Text
}

// hashToInt returns the digest of text as a big-endian integer mod n.
func (s *Signer) hashToInt(text string, n *big.Int) (*big.Int, yaerrors.Error) {
	if !s.Digest.Valid() {
		return nil, yaerrors.FromError(
			http.StatusBadRequest,
			errors.Join(ErrInvalidArgument, yahash.ErrUnknownAlgorithm),
			"[RSA] digest "+s.Digest.String()+" is not supported",
		)
	}

	msg, err := s.codec().Encode(text)
	if err != nil {
		return nil, yaerrors.FromError(
			http.StatusBadRequest,
			errors.Join(ErrInvalidArgument, err),
			"[RSA] message cannot be encoded",
		)
	}

	h := yamath.FromBytes(s.Digest.Sum(msg))

	return h.Mod(h, n), nil
}

// Sign returns Base64 of h^d mod n written in byteLength(n) bytes.
func (s *Signer) Sign(private *PrivateKey, text string) (string, yaerrors.Error) {
	if private == nil {
		return "", yaerrors.FromError(http.StatusBadRequest, ErrInvalidArgument, "[RSA] private key is nil")
	}

	h, err := s.hashToInt(text, private.n)
	if err != nil {
		return "", err.Wrap("[RSA] failed to hash message")
	}

	signature, err := yamath.ModPow(h, private.d, private.n)
	if err != nil {
		return "", err.Wrap("[RSA] failed to sign digest")
	}

	raw, err := yamath.ToFixedBytes(signature, yamath.ByteLength(private.n))
	if err != nil {
		return "", err.Wrap("[RSA] failed to serialize signature")
	}

	return yaencoding.ToString(raw), nil
}

// Verify reports whether signature^e mod n equals the digest of text mod n.
// A signature value not below n is simply invalid. The comparison is not
// constant time.
func (s *Signer) Verify(public *PublicKey, text, signature string) (bool, yaerrors.Error) {
	if public == nil {
		return false, yaerrors.FromError(http.StatusBadRequest, ErrInvalidArgument, "[RSA] public key is nil")
	}

	raw, err := yaencoding.ToBytes(signature)
	if err != nil {
		return false, yaerrors.FromError(
			http.StatusBadRequest,
			errors.Join(ErrInvalidArgument, err),
			"[RSA] signature is not valid base64",
		)
	}

	h, err := s.hashToInt(text, public.n)
	if err != nil {
		return false, err.Wrap("[RSA] failed to hash message")
	}

	sig := yamath.FromBytes(raw)
	if sig.Cmp(public.n) >= 0 {
		return false, nil
	}

	recovered, err := yamath.ModPow(sig, public.e, public.n)
	if err != nil {
		return false, err.Wrap("[RSA] failed to open signature")
	}

	return recovered.Cmp(h) == 0, nil
}
