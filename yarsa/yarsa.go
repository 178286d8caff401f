// Package yarsa implements textbook RSA from first principles: key generation
// over Miller–Rabin primes, block-wise encryption and hash-then-sign
// signatures. All modular arithmetic comes from yamath.
//
// There is no OAEP or PSS padding and no side-channel hardening. The package
// is meant for teaching and testing, not for protecting real secrets.
//
// Wire format:
//   - A message is framed as a 4-byte big-endian length followed by its bytes
//     (see yablock), split into blocks of byteLength(n)-1 bytes with the last
//     block zero-padded on the right.
//   - Each block m becomes m^e mod n written big-endian in byteLength(n) bytes.
//   - Ciphertexts and signatures travel as standard Base64 with padding.
//
// Example:
//
//	kp, err := yarsa.GenerateKeyPair(ctx, yarsa.KeyOpts{Bits: 1024})
//	if err != nil {
//	    return err
//	}
//
//	blob, _ := yarsa.Encrypt(kp.Public(), "Hello")
//	text, _ := yarsa.Decrypt(kp.Private(), blob) // "Hello"
//
//	sig, _ := yarsa.Sign(kp.Private(), "Hello")
//	ok, _ := yarsa.Verify(kp.Public(), "Hello", sig) // true
package yarsa
