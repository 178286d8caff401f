// Command yarsa demonstrates the yarsa package: it generates a key pair,
// encrypts and decrypts a message, and signs and verifies it.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
