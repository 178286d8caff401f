// Package yablock frames a message into fixed-width blocks and back.
//
// A payload is the message prefixed with its length as a 4-byte big-endian
// header. The header is what lets DecodePayload return the exact original
// bytes, trailing zeros included, after the last block was padded.
//
// Example:
//
//	payload, _ := yablock.EncodePayload([]byte("hi"))  // 00 00 00 02 'h' 'i'
//	blocks, _ := yablock.SplitPad(payload, 4)          // [00 00 00 02] ['h' 'i' 00 00]
//	msg, _ := yablock.DecodePayload(yablock.Join(blocks)) // "hi"
package yablock

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"net/http"

	"github.com/YaCodeDev/GoYaRSA/yaerrors"
)

// HeaderSize is the width of the length prefix in bytes.
const HeaderSize = 4

var (
	ErrMalformedPayload = errors.New("malformed payload")
	ErrInvalidBlockSize = errors.New("invalid block size")
	ErrPayloadTooLarge  = errors.New("payload too large for length header")
)

// EncodePayload returns a new slice holding len(msg) as a 4-byte big-endian
// header followed by msg.
func EncodePayload(msg []byte) ([]byte, yaerrors.Error) {
	if uint64(len(msg)) > math.MaxUint32 {
		return nil, yaerrors.FromError(
			http.StatusBadRequest,
			ErrPayloadTooLarge,
			fmt.Sprintf("[BLOCK] message of %d bytes does not fit the header", len(msg)),
		)
	}

	payload := make([]byte, HeaderSize, HeaderSize+len(msg))
	binary.BigEndian.PutUint32(payload, uint32(len(msg)))

	return append(payload, msg...), nil
}

// SplitPad cuts payload into consecutive blockSize chunks. The last chunk is
// right-padded with zeros. An empty payload yields no blocks.
func SplitPad(payload []byte, blockSize int) ([][]byte, yaerrors.Error) {
	if blockSize < 1 {
		return nil, yaerrors.FromError(
			http.StatusBadRequest,
			ErrInvalidBlockSize,
			fmt.Sprintf("[BLOCK] block size must be positive, got %d", blockSize),
		)
	}

	blocks := make([][]byte, 0, (len(payload)+blockSize-1)/blockSize)

	for start := 0; start < len(payload); start += blockSize {
		block := make([]byte, blockSize)
		copy(block, payload[start:min(start+blockSize, len(payload))])

		blocks = append(blocks, block)
	}

	return blocks, nil
}

// Join concatenates blocks in order.
func Join(blocks [][]byte) []byte {
	size := 0
	for _, block := range blocks {
		size += len(block)
	}

	joined := make([]byte, 0, size)
	for _, block := range blocks {
		joined = append(joined, block...)
	}

	return joined
}

// DecodePayload reads the length header L and returns exactly the L bytes
// that follow it. Padding after them is ignored, never trimmed from inside.
func DecodePayload(data []byte) ([]byte, yaerrors.Error) {
	if len(data) < HeaderSize {
		return nil, yaerrors.FromError(
			http.StatusUnprocessableEntity,
			ErrMalformedPayload,
			fmt.Sprintf("[BLOCK] %d bytes cannot hold a length header", len(data)),
		)
	}

	length := uint64(binary.BigEndian.Uint32(data))

	if HeaderSize+length > uint64(len(data)) {
		return nil, yaerrors.FromError(
			http.StatusUnprocessableEntity,
			ErrMalformedPayload,
			fmt.Sprintf("[BLOCK] header declares %d bytes, only %d present", length, len(data)-HeaderSize),
		)
	}

	msg := make([]byte, length)
	copy(msg, data[HeaderSize:])

	return msg, nil
}
