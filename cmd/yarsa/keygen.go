package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newKeygenCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "keygen",
		Short: "Generate a key pair and print n, e and d",
		Long: `Generate a key pair and print n, e and d in decimal.

The private exponent d is written to stdout. Redirect it somewhere safe.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			kp, err := a.generate(cmd.Context())
			if err != nil {
				return err
			}

			if err := kp.Validate(); err != nil {
				return err
			}

			out := cmd.OutOrStdout()

			fmt.Fprintf(out, "n=%s\n", kp.N())
			fmt.Fprintf(out, "e=%s\n", kp.E())
			fmt.Fprintf(out, "d=%s\n", kp.D())

			return nil
		},
	}
}
