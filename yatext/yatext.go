// Package yatext converts message text to bytes and back under a named
// character encoding.
//
// Codecs are strict in both directions: text the encoding cannot represent
// and bytes that are not valid in it are errors, never silently replaced.
//
// Example:
//
//	codec, err := yatext.Lookup("utf-8")
//	if err != nil {
//	    return err
//	}
//
//	raw, _ := codec.Encode("héllo")
//	text, _ := codec.Decode(raw) // "héllo"
package yatext

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"

	"github.com/YaCodeDev/GoYaRSA/yaerrors"
)

var (
	ErrUnknownEncoding = errors.New("unknown text encoding")
	ErrInvalidText     = errors.New("text not valid in encoding")
)

const (
	NameUTF8  = "utf-8"
	NameASCII = "ascii"
)

// Codec is a strict text encoding.
type Codec interface {
	Name() string
	Encode(text string) ([]byte, yaerrors.Error)
	Decode(raw []byte) (string, yaerrors.Error)
}

var (
	UTF8  Codec = utf8Codec{}
	ASCII Codec = asciiCodec{}
)

// Lookup resolves an encoding by its WHATWG label, case-insensitively.
// "ascii" and "us-ascii" resolve to the strict 7-bit ASCII codec rather
// than the windows-1252 superset the WHATWG index maps them to.
func Lookup(name string) (Codec, yaerrors.Error) {
	label := strings.ToLower(strings.TrimSpace(name))

	switch label {
	case "", NameUTF8, "utf8", "unicode-1-1-utf-8":
		return UTF8, nil
	case NameASCII, "us-ascii":
		return ASCII, nil
	}

	enc, err := htmlindex.Get(label)
	if err != nil {
		return nil, yaerrors.FromError(
			http.StatusBadRequest,
			errors.Join(ErrUnknownEncoding, err),
			fmt.Sprintf("[TEXT] no encoding named `%s`", name),
		)
	}

	canonical, err := htmlindex.Name(enc)
	if err != nil {
		canonical = label
	}

	if canonical == NameUTF8 {
		return UTF8, nil
	}

	return xCodec{name: canonical, enc: enc}, nil
}

type utf8Codec struct{}

func (utf8Codec) Name() string {
	return NameUTF8
}

func (utf8Codec) Encode(text string) ([]byte, yaerrors.Error) {
	if _, _, err := transform.String(encoding.UTF8Validator, text); err != nil {
		return nil, invalidText(http.StatusBadRequest, err, "[TEXT] message is not valid utf-8")
	}

	return []byte(text), nil
}

func (utf8Codec) Decode(raw []byte) (string, yaerrors.Error) {
	if _, _, err := transform.Bytes(encoding.UTF8Validator, raw); err != nil {
		return "", invalidText(http.StatusUnprocessableEntity, err, "[TEXT] bytes are not valid utf-8")
	}

	return string(raw), nil
}

type asciiCodec struct{}

func (asciiCodec) Name() string {
	return NameASCII
}

func (asciiCodec) Encode(text string) ([]byte, yaerrors.Error) {
	for i, r := range text {
		if r >= utf8.RuneSelf {
			return nil, invalidText(
				http.StatusBadRequest,
				nil,
				fmt.Sprintf("[TEXT] rune %q at offset %d is not ascii", r, i),
			)
		}
	}

	return []byte(text), nil
}

func (asciiCodec) Decode(raw []byte) (string, yaerrors.Error) {
	for i, b := range raw {
		if b >= utf8.RuneSelf {
			return "", invalidText(
				http.StatusUnprocessableEntity,
				nil,
				fmt.Sprintf("[TEXT] byte 0x%02x at offset %d is not ascii", b, i),
			)
		}
	}

	return string(raw), nil
}

// xCodec adapts any other x/text encoding.
type xCodec struct {
	name string
	enc  encoding.Encoding
}

func (c xCodec) Name() string {
	return c.name
}

func (c xCodec) Encode(text string) ([]byte, yaerrors.Error) {
	if !utf8.ValidString(text) {
		return nil, invalidText(http.StatusBadRequest, nil, "[TEXT] message is not valid utf-8")
	}

	raw, _, err := transform.Bytes(c.enc.NewEncoder(), []byte(text))
	if err != nil {
		return nil, invalidText(
			http.StatusBadRequest,
			err,
			fmt.Sprintf("[TEXT] message is not representable in %s", c.name),
		)
	}

	return raw, nil
}

func (c xCodec) Decode(raw []byte) (string, yaerrors.Error) {
	text, _, err := transform.Bytes(c.enc.NewDecoder(), raw)
	if err != nil {
		return "", invalidText(
			http.StatusUnprocessableEntity,
			err,
			fmt.Sprintf("[TEXT] bytes are not valid %s", c.name),
		)
	}

	return string(text), nil
}

func invalidText(code int, cause error, msg string) yaerrors.Error {
	return yaerrors.FromError(code, errors.Join(ErrInvalidText, cause), msg)
}
