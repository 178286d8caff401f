package yarsa

import (
	"errors"

	"github.com/YaCodeDev/GoYaRSA/yamath"
)

var (
	ErrInvalidArgument  = yamath.ErrInvalidArgument
	ErrNoModularInverse = yamath.ErrNoModularInverse

	ErrKeyGenerationExhausted  = errors.New("no valid public exponent found")
	ErrInvalidCiphertextLength = errors.New("ciphertext length is not a multiple of the block size")
	ErrDecoding                = errors.New("decrypted data could not be decoded")
	ErrInvalidKey              = errors.New("key pair failed validation")
)
