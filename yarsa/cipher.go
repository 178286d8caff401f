package yarsa

import (
	"errors"
	"fmt"
	"math/big"
	"net/http"

	"github.com/YaCodeDev/GoYaRSA/yablock"
	"github.com/YaCodeDev/GoYaRSA/yaencoding"
	"github.com/YaCodeDev/GoYaRSA/yaerrors"
	"github.com/YaCodeDev/GoYaRSA/yalogger"
	"github.com/YaCodeDev/GoYaRSA/yamath"
	"github.com/YaCodeDev/GoYaRSA/yatext"
)

// Cipher encrypts text block by block with textbook RSA. The zero value uses
// UTF-8 and does not log. A Cipher is safe for concurrent use.
type Cipher struct {
	Text yatext.Codec
	Log  yalogger.Logger
}

const minCipherBlockSize = 2

var (
	defaultCipher = &Cipher{}
	discardLog    = yalogger.NewDiscardLogger()
)

// Encrypt encrypts text for public with a UTF-8 Cipher.
func Encrypt(public *PublicKey, text string) (string, yaerrors.Error) {
	return defaultCipher.Encrypt(public, text)
}

// Decrypt reverses Encrypt with a UTF-8 Cipher.
func Decrypt(private *PrivateKey, blob string) (string, yaerrors.Error) {
	return defaultCipher.Decrypt(private, blob)
}

func (c *Cipher) codec() yatext.Codec {
	if c.Text == nil {
		return yatext.UTF8
	}

	return c.Text
}

func (c *Cipher) log() yalogger.Logger {
	if c.Log == nil {
		return discardLog
	}

	return c.Log
}

// Encrypt encodes text with the Cipher's codec, encrypts it with EncryptBytes
// and returns the ciphertext as standard Base64.
func (c *Cipher) Encrypt(public *PublicKey, text string) (string, yaerrors.Error) {
	msg, err := c.codec().Encode(text)
	if err != nil {
		return "", yaerrors.FromError(
			http.StatusBadRequest,
			errors.Join(ErrInvalidArgument, err),
			"[RSA] message cannot be encoded",
		)
	}

	ciphertext, err := c.EncryptBytes(public, msg)
	if err != nil {
		return "", err.Wrap("[RSA] failed to encrypt message")
	}

	return yaencoding.ToString(ciphertext), nil
}

// Decrypt decodes the Base64 blob, decrypts it with DecryptBytes and decodes
// the result with the Cipher's codec.
func (c *Cipher) Decrypt(private *PrivateKey, blob string) (string, yaerrors.Error) {
	ciphertext, err := yaencoding.ToBytes(blob)
	if err != nil {
		return "", yaerrors.FromError(
			http.StatusBadRequest,
			errors.Join(ErrInvalidArgument, err),
			"[RSA] ciphertext is not valid base64",
		)
	}

	msg, err := c.DecryptBytes(private, ciphertext)
	if err != nil {
		return "", err.Wrap("[RSA] failed to decrypt message")
	}

	text, err := c.codec().Decode(msg)
	if err != nil {
		return "", yaerrors.FromError(
			http.StatusUnprocessableEntity,
			errors.Join(ErrDecoding, err),
			"[RSA] decrypted bytes are not valid "+c.codec().Name(),
		)
	}

	return text, nil
}

// EncryptBytes frames msg with its length, splits it into blocks one byte
// narrower than n and maps every block m to m^e mod n, written as a full
// byteLength(n) block.
func (c *Cipher) EncryptBytes(public *PublicKey, msg []byte) ([]byte, yaerrors.Error) {
	if public == nil {
		return nil, yaerrors.FromError(http.StatusBadRequest, ErrInvalidArgument, "[RSA] public key is nil")
	}

	plainSize, cipherSize, err := blockSizes(public.n)
	if err != nil {
		return nil, err
	}

	payload, err := yablock.EncodePayload(msg)
	if err != nil {
		return nil, yaerrors.FromError(
			http.StatusBadRequest,
			errors.Join(ErrInvalidArgument, err),
			"[RSA] message too large",
		)
	}

	blocks, err := yablock.SplitPad(payload, plainSize)
	if err != nil {
		return nil, err.Wrap("[RSA] failed to split payload")
	}

	out := make([][]byte, len(blocks))

	for i, block := range blocks {
		encrypted, err := yamath.ModPow(yamath.FromBytes(block), public.e, public.n)
		if err != nil {
			return nil, err.Wrap(fmt.Sprintf("[RSA] block %d", i))
		}

		out[i], err = yamath.ToFixedBytes(encrypted, cipherSize)
		if err != nil {
			return nil, err.Wrap(fmt.Sprintf("[RSA] block %d", i))
		}
	}

	c.log().Debugf("Encrypted %d bytes into %d blocks of %d bytes", len(msg), len(out), cipherSize)

	return yablock.Join(out), nil
}

// DecryptBytes reverses EncryptBytes. The ciphertext must be a non-empty
// whole number of byteLength(n) blocks, each below n.
func (c *Cipher) DecryptBytes(private *PrivateKey, ciphertext []byte) ([]byte, yaerrors.Error) {
	if private == nil {
		return nil, yaerrors.FromError(http.StatusBadRequest, ErrInvalidArgument, "[RSA] private key is nil")
	}

	plainSize, cipherSize, err := blockSizes(private.n)
	if err != nil {
		return nil, err
	}

	if len(ciphertext) == 0 || len(ciphertext)%cipherSize != 0 {
		return nil, yaerrors.FromError(
			http.StatusBadRequest,
			ErrInvalidCiphertextLength,
			fmt.Sprintf("[RSA] %d bytes is not a positive multiple of %d", len(ciphertext), cipherSize),
		)
	}

	blocks := make([][]byte, 0, len(ciphertext)/cipherSize)

	for start := 0; start < len(ciphertext); start += cipherSize {
		encrypted := yamath.FromBytes(ciphertext[start : start+cipherSize])

		if encrypted.Cmp(private.n) >= 0 {
			return nil, yaerrors.FromError(
				http.StatusBadRequest,
				ErrInvalidArgument,
				fmt.Sprintf("[RSA] block %d is not below the modulus", start/cipherSize),
			)
		}

		decrypted, err := yamath.ModPow(encrypted, private.d, private.n)
		if err != nil {
			return nil, err.Wrap(fmt.Sprintf("[RSA] block %d", start/cipherSize))
		}

		block, err := yamath.ToFixedBytes(decrypted, plainSize)
		if err != nil {
			return nil, yaerrors.FromError(
				http.StatusUnprocessableEntity,
				errors.Join(ErrDecoding, err),
				fmt.Sprintf("[RSA] block %d does not decrypt to a plaintext block", start/cipherSize),
			)
		}

		blocks = append(blocks, block)
	}

	msg, err := yablock.DecodePayload(yablock.Join(blocks))
	if err != nil {
		return nil, yaerrors.FromError(
			http.StatusUnprocessableEntity,
			errors.Join(ErrDecoding, err),
			"[RSA] decrypted payload is malformed",
		)
	}

	c.log().Debugf("Decrypted %d blocks into %d bytes", len(blocks), len(msg))

	return msg, nil
}

// blockSizes returns the plaintext and ciphertext block widths for n. A
// plaintext block is one byte narrower, so every block value is below n.
func blockSizes(n *big.Int) (int, int, yaerrors.Error) {
	cipherSize := yamath.ByteLength(n)

	if cipherSize < minCipherBlockSize {
		return 0, 0, yaerrors.FromError(
			http.StatusBadRequest,
			ErrInvalidArgument,
			fmt.Sprintf("[RSA] a %d-bit modulus is too small to hold a block", n.BitLen()),
		)
	}

	return cipherSize - 1, cipherSize, nil
}
