package main

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/YaCodeDev/GoYaRSA/config"
	"github.com/YaCodeDev/GoYaRSA/yaerrors"
	"github.com/YaCodeDev/GoYaRSA/yalogger"
	"github.com/YaCodeDev/GoYaRSA/yarsa"
)

type app struct {
	cfg Config
	log yalogger.Logger

	bits     int
	parallel bool
	encoding string
	digest   string
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "yarsa",
		Short: "Textbook RSA from first principles",
		Long: `yarsa generates RSA key pairs with its own Miller-Rabin prime search,
encrypts text block by block and signs SHA-256 digests.

Defaults come from YARSA_* environment variables or a .env file.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.load(cmd.Flags())
		},
	}

	flags := root.PersistentFlags()
	flags.IntVar(&a.bits, "bits", 0, "Modulus size in bits (default from YARSA_BITS or 1024).")
	flags.BoolVar(&a.parallel, "parallel", false, "Search for p and q concurrently.")
	flags.StringVar(&a.encoding, "encoding", "", "Message text encoding, e.g. utf-8, ascii, latin1.")
	flags.StringVar(&a.digest, "digest", "", "Signature digest: sha256, sha3-256 or blake2b-256.")

	root.AddCommand(newDemoCmd(a), newKeygenCmd(a))

	return root
}

// load reads Config from the environment and lets explicit flags override it.
func (a *app) load(flags *pflag.FlagSet) error {
	bootstrap := yalogger.NewBaseLogger(nil).NewLogger()

	if err := config.LoadConfigStructFromEnvHandlingError(&a.cfg, envPrefix, bootstrap); err != nil {
		return err
	}

	if flags.Changed("bits") {
		a.cfg.Bits = a.bits
	}

	if flags.Changed("parallel") {
		a.cfg.Parallel = a.parallel
	}

	if flags.Changed("encoding") {
		a.cfg.TextEncoding = a.encoding
	}

	if flags.Changed("digest") {
		if err := a.cfg.Digest.UnmarshalText([]byte(a.digest)); err != nil {
			return err
		}
	}

	a.log = yalogger.NewBaseLogger(&yalogger.Config{
		BaseLoggerType:   yalogger.Logrus,
		Level:            a.cfg.LogLevel,
		DisableTimestamp: true,
	}).NewLogger()

	return nil
}

func (a *app) generate(ctx context.Context) (*yarsa.KeyPair, yaerrors.Error) {
	ctx, cancel := context.WithTimeout(ctx, a.cfg.Timeout)
	defer cancel()

	a.log.Infof("Generating a %d-bit key pair", a.cfg.Bits)

	return yarsa.GenerateKeyPair(ctx, yarsa.KeyOpts{
		Bits:             a.cfg.Bits,
		Rounds:           a.cfg.Rounds,
		ExponentAttempts: a.cfg.ExponentAttempts,
		PrimeAttempts:    a.cfg.PrimeAttempts,
		Observer:         yarsa.NewLogObserver(a.log),
		Parallel:         a.cfg.Parallel,
	})
}
