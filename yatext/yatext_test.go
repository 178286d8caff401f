package yatext_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YaCodeDev/GoYaRSA/yatext"
)

func TestLookup_Names(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		label string
		want  string
	}{
		{"[UTF8] Canonical", "utf-8", yatext.NameUTF8},
		{"[UTF8] Upper case", "UTF-8", yatext.NameUTF8},
		{"[UTF8] No dash", "utf8", yatext.NameUTF8},
		{"[UTF8] Empty defaults", "", yatext.NameUTF8},
		{"[ASCII] Plain", "ascii", yatext.NameASCII},
		{"[ASCII] US", " US-ASCII ", yatext.NameASCII},
		{"[WHATWG] Latin1 alias", "latin1", "windows-1252"},
		{"[WHATWG] Shift JIS", "shift_jis", "shift_jis"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			codec, err := yatext.Lookup(tt.label)
			require.Nil(t, err)

			assert.Equal(t, tt.want, codec.Name())
		})
	}
}

func TestLookup_Unknown(t *testing.T) {
	t.Parallel()

	_, err := yatext.Lookup("klingon-8")
	require.NotNil(t, err)

	assert.ErrorIs(t, err, yatext.ErrUnknownEncoding)
}

func TestCodec_RoundTrip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		label string
		text  string
	}{
		{"[UTF8] Accents", "utf-8", "héllo wörld"},
		{"[UTF8] Emoji", "utf-8", "ключ 🔑"},
		{"[UTF8] Embedded NUL", "utf-8", "a\x00b"},
		{"[ASCII] Plain", "ascii", "Hello, RSA!"},
		{"[Latin1] Cafe", "latin1", "café"},
		{"[Any] Empty", "utf-8", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			codec, err := yatext.Lookup(tt.label)
			require.Nil(t, err)

			raw, err := codec.Encode(tt.text)
			require.Nil(t, err)

			text, err := codec.Decode(raw)
			require.Nil(t, err)

			assert.Equal(t, tt.text, text)
		})
	}
}

func TestLatin1_SingleByte(t *testing.T) {
	t.Parallel()

	codec, err := yatext.Lookup("latin1")
	require.Nil(t, err)

	raw, err := codec.Encode("é")
	require.Nil(t, err)

	assert.Equal(t, []byte{0xE9}, raw)
}

func TestCodec_Strict(t *testing.T) {
	t.Parallel()

	t.Run("[UTF8] Invalid bytes", func(t *testing.T) {
		t.Parallel()

		_, err := yatext.UTF8.Decode([]byte{'o', 'k', 0xFF})
		require.NotNil(t, err)

		assert.ErrorIs(t, err, yatext.ErrInvalidText)
	})

	t.Run("[UTF8] Invalid string", func(t *testing.T) {
		t.Parallel()

		_, err := yatext.UTF8.Encode(string([]byte{0xC3}))
		require.NotNil(t, err)

		assert.ErrorIs(t, err, yatext.ErrInvalidText)
	})

	t.Run("[ASCII] Non-ascii rune", func(t *testing.T) {
		t.Parallel()

		_, err := yatext.ASCII.Encode("é")
		require.NotNil(t, err)

		assert.ErrorIs(t, err, yatext.ErrInvalidText)
	})

	t.Run("[ASCII] High byte", func(t *testing.T) {
		t.Parallel()

		_, err := yatext.ASCII.Decode([]byte{0x80})
		require.NotNil(t, err)

		assert.ErrorIs(t, err, yatext.ErrInvalidText)
	})

	t.Run("[Latin1] Unrepresentable rune", func(t *testing.T) {
		t.Parallel()

		codec, err := yatext.Lookup("latin1")
		require.Nil(t, err)

		_, err = codec.Encode("日本")
		require.NotNil(t, err)

		assert.ErrorIs(t, err, yatext.ErrInvalidText)
	})
}
