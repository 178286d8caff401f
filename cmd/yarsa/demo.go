package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/YaCodeDev/GoYaRSA/yarsa"
	"github.com/YaCodeDev/GoYaRSA/yatext"
)

const defaultDemoMessage = "Hello, RSA!"

func newDemoCmd(a *app) *cobra.Command {
	var message string

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Generate a key, then encrypt, decrypt, sign and verify a message",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.demo(cmd, message)
		},
	}

	cmd.Flags().StringVarP(&message, "message", "m", defaultDemoMessage, "Message to encrypt and sign.")

	return cmd
}

func (a *app) demo(cmd *cobra.Command, message string) error {
	codec, err := yatext.Lookup(a.cfg.TextEncoding)
	if err != nil {
		return err
	}

	kp, err := a.generate(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "Public key:  (e=%s, n=%s)\n", kp.E(), kp.N())
	fmt.Fprintf(out, "Modulus:     %d bits\n", kp.Bits())
	fmt.Fprintf(out, "Message:     %q\n", message)

	cipher := &yarsa.Cipher{Text: codec, Log: a.log}

	blob, err := cipher.Encrypt(kp.Public(), message)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Ciphertext:  %s\n", blob)

	decrypted, err := cipher.Decrypt(kp.Private(), blob)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Decrypted:   %q\n", decrypted)

	signer := &yarsa.Signer{Text: codec, Digest: a.cfg.Digest}

	signature, err := signer.Sign(kp.Private(), message)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Signature:   %s (%s)\n", signature, a.cfg.Digest)

	valid, err := signer.Verify(kp.Public(), message, signature)
	if err != nil {
		return err
	}

	tampered, err := signer.Verify(kp.Public(), message+"!", signature)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Valid:       %t\n", valid)
	fmt.Fprintf(out, "Tampered:    %t\n", tampered)

	return nil
}
