// Package yaencoding is the text transport for binary blobs: standard Base64
// with padding.
//
// Example:
//
//	blob := yaencoding.ToString([]byte{0xCA, 0xFE}) // "yv4="
//	raw, err := yaencoding.ToBytes(blob)
package yaencoding

import (
	"encoding/base64"
	"errors"
	"net/http"

	"github.com/YaCodeDev/GoYaRSA/yaerrors"
)

var ErrInvalidBase64 = errors.New("invalid base64")

// ToString converts a byte slice into a base64 string.
func ToString(data []byte) string {
	return base64.StdEncoding.EncodeToString(data)
}

// ToBytes decodes a base64 string into bytes. CR and LF are skipped, so blobs
// wrapped by mail clients or terminals still decode.
func ToBytes(data string) ([]byte, yaerrors.Error) {
	bytes, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return nil, yaerrors.FromError(
			http.StatusBadRequest,
			errors.Join(ErrInvalidBase64, err),
			"[ENCODING] failed to decode string to bytes",
		)
	}

	return bytes, nil
}
