package yarsa

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/big"
	"net/http"

	"github.com/hashicorp/go-multierror"
	"golang.org/x/sync/errgroup"

	"github.com/YaCodeDev/GoYaRSA/yaerrors"
	"github.com/YaCodeDev/GoYaRSA/yamath"
	"github.com/YaCodeDev/GoYaRSA/yaprime"
	"github.com/YaCodeDev/GoYaRSA/yarandom"
)

const (
	// DefaultExponent is the Fermat prime F4, used whenever it is coprime to phi.
	DefaultExponent = 65537

	MinBits                 = 16
	DefaultExponentAttempts = 10_000

	fallbackExponentFloorBits = 16
	componentName             = "yarsa"
)

var (
	bigOne   = big.NewInt(1)
	bigTwo   = big.NewInt(2)
	bigThree = big.NewInt(3)
)

// PublicKey is the pair (n, e). It is immutable; accessors return copies.
type PublicKey struct {
	n *big.Int
	e *big.Int
}

// NewPublicKey builds a public key. Errors with ErrInvalidArgument unless
// n > 1 and e > 0.
func NewPublicKey(n, e *big.Int) (*PublicKey, yaerrors.Error) {
	if err := checkKeyParts(n, e, "public exponent"); err != nil {
		return nil, err
	}

	return &PublicKey{n: new(big.Int).Set(n), e: new(big.Int).Set(e)}, nil
}

func (k *PublicKey) N() *big.Int {
	return new(big.Int).Set(k.n)
}

func (k *PublicKey) E() *big.Int {
	return new(big.Int).Set(k.e)
}

// PrivateKey is the pair (n, d). It is immutable; accessors return copies.
type PrivateKey struct {
	n *big.Int
	d *big.Int
}

// NewPrivateKey builds a private key. Errors with ErrInvalidArgument unless
// n > 1 and d > 0.
func NewPrivateKey(n, d *big.Int) (*PrivateKey, yaerrors.Error) {
	if err := checkKeyParts(n, d, "private exponent"); err != nil {
		return nil, err
	}

	return &PrivateKey{n: new(big.Int).Set(n), d: new(big.Int).Set(d)}, nil
}

func (k *PrivateKey) N() *big.Int {
	return new(big.Int).Set(k.n)
}

func (k *PrivateKey) D() *big.Int {
	return new(big.Int).Set(k.d)
}

func checkKeyParts(n, exponent *big.Int, name string) yaerrors.Error {
	if n == nil || exponent == nil {
		return yaerrors.FromError(
			http.StatusBadRequest,
			ErrInvalidArgument,
			"[RSA] key parts must not be nil",
		)
	}

	if n.Cmp(bigOne) <= 0 {
		return yaerrors.FromError(
			http.StatusBadRequest,
			ErrInvalidArgument,
			fmt.Sprintf("[RSA] modulus must be greater than 1, got %s", n),
		)
	}

	if exponent.Sign() <= 0 {
		return yaerrors.FromError(
			http.StatusBadRequest,
			ErrInvalidArgument,
			"[RSA] "+name+" must be positive",
		)
	}

	return nil
}

// KeyPair holds n, e and d. phi and the primes are discarded once d is known.
type KeyPair struct {
	public  *PublicKey
	private *PrivateKey
}

func (kp *KeyPair) Public() *PublicKey {
	return kp.public
}

func (kp *KeyPair) Private() *PrivateKey {
	return kp.private
}

func (kp *KeyPair) N() *big.Int {
	return kp.public.N()
}

func (kp *KeyPair) E() *big.Int {
	return kp.public.E()
}

func (kp *KeyPair) D() *big.Int {
	return kp.private.D()
}

// Bits is the bit length of the modulus, which can be one less than the
// requested size because only the top bit of each prime is forced.
func (kp *KeyPair) Bits() int {
	return kp.public.n.BitLen()
}

// Validate re-checks the structural invariants of the pair and reports every
// violation at once:
//   - 1 < e < n
//   - 0 < d < n
//   - m^(e*d) = m (mod n) for the sample m = 2
func (kp *KeyPair) Validate() yaerrors.Error {
	var result *multierror.Error

	n, e, d := kp.public.n, kp.public.e, kp.private.d

	if kp.private.n.Cmp(n) != 0 {
		result = multierror.Append(result, errors.New("public and private moduli differ"))
	}

	if e.Cmp(bigOne) <= 0 || e.Cmp(n) >= 0 {
		result = multierror.Append(result, fmt.Errorf("public exponent %s outside (1, n)", e))
	}

	if d.Sign() <= 0 || d.Cmp(n) >= 0 {
		result = multierror.Append(result, errors.New("private exponent outside (0, n)"))
	}

	if n.Cmp(bigTwo) > 0 {
		c, err := yamath.ModPow(bigTwo, e, n)
		if err == nil {
			c, err = yamath.ModPow(c, d, n)
		}

		switch {
		case err != nil:
			result = multierror.Append(result, err)
		case c.Cmp(bigTwo) != 0:
			result = multierror.Append(result, errors.New("sample message does not survive a round trip"))
		}
	}

	if err := result.ErrorOrNil(); err != nil {
		return yaerrors.FromError(
			http.StatusUnprocessableEntity,
			errors.Join(ErrInvalidKey, err),
			"[RSA] key pair is invalid",
		)
	}

	return nil
}

// KeyOpts configures key generation. Zero values pick the defaults.
//   - Bits: modulus size, even and at least MinBits.
//   - Rounds: Miller–Rabin rounds, yaprime.DefaultRounds if 0.
//   - ExponentAttempts: fallback exponent draws, DefaultExponentAttempts if 0.
//   - PrimeAttempts: candidates per prime, 0 for no limit.
//   - Random: entropy source, crypto/rand if nil.
//   - Observer: progress sink, NopObserver if nil.
//   - Parallel: search p and q concurrently over a locked Random.
type KeyOpts struct {
	Bits             int
	Rounds           int
	ExponentAttempts int
	PrimeAttempts    int
	Random           io.Reader
	Observer         Observer
	Parallel         bool
}

func (o KeyOpts) withDefaults() KeyOpts {
	o.Random = yarandom.OrDefault(o.Random)

	if o.Parallel {
		o.Random = yarandom.NewLockedReader(o.Random)
	}

	if o.Rounds == 0 {
		o.Rounds = yaprime.DefaultRounds
	}

	if o.ExponentAttempts == 0 {
		o.ExponentAttempts = DefaultExponentAttempts
	}

	if o.Observer == nil {
		o.Observer = NopObserver{}
	}

	return o
}

func (o KeyOpts) generator() *yaprime.Generator {
	return yaprime.NewGenerator(yaprime.Opts{
		Random:      o.Random,
		Rounds:      o.Rounds,
		MaxAttempts: o.PrimeAttempts,
		Observer:    o.Observer,
	})
}

// GenerateKeyPair draws two independent Bits/2-bit primes p and q, then
// derives n = p*q, phi = (p-1)(q-1), e and d = e^-1 mod phi.
//
// e is DefaultExponent when it is below and coprime to phi. Otherwise it is a
// random odd prime coprime to phi drawn from [2^16, phi-1], or from
// [3, phi-1] when that range is empty.
//
// Nothing is returned on failure: no partial key pair escapes.
//
// Example:
//
//	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
//	defer cancel()
//
//	kp, err := yarsa.GenerateKeyPair(ctx, yarsa.KeyOpts{Bits: 2048, Parallel: true})
//	if err != nil {
//	    return err
//	}
//
//	blob, _ := yarsa.Encrypt(kp.Public(), "Hello")
func GenerateKeyPair(ctx context.Context, opts KeyOpts) (*KeyPair, yaerrors.Error) {
	if opts.Bits < MinBits || opts.Bits%2 != 0 {
		return nil, yaerrors.FromError(
			http.StatusBadRequest,
			ErrInvalidArgument,
			fmt.Sprintf("[RSA] bits must be even and at least %d, got %d", MinBits, opts.Bits),
		)
	}

	opts = opts.withDefaults()
	gen := opts.generator()

	p, q, err := generatePrimes(ctx, gen, opts.Bits/2, opts.Parallel)
	if err != nil {
		return nil, err.Wrap("[RSA] failed to generate primes")
	}

	kp, err := deriveKeyPair(ctx, p, q, gen, opts)
	if err != nil {
		return nil, err.Wrap("[RSA] failed to derive key pair")
	}

	opts.Observer.KeyPairGenerated(opts.Bits, kp.Bits())

	return kp, nil
}

func generatePrimes(
	ctx context.Context,
	gen *yaprime.Generator,
	bits int,
	parallel bool,
) (*big.Int, *big.Int, yaerrors.Error) {
	if !parallel {
		p, err := gen.GeneratePrime(ctx, bits)
		if err != nil {
			return nil, nil, err.Wrap("[RSA] p")
		}

		q, err := gen.GeneratePrime(ctx, bits)
		if err != nil {
			return nil, nil, err.Wrap("[RSA] q")
		}

		return p, q, nil
	}

	var p, q *big.Int

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		prime, err := gen.GeneratePrime(groupCtx, bits)
		if err != nil {
			return err.Wrap("[RSA] p")
		}

		p = prime

		return nil
	})

	group.Go(func() error {
		prime, err := gen.GeneratePrime(groupCtx, bits)
		if err != nil {
			return err.Wrap("[RSA] q")
		}

		q = prime

		return nil
	})

	if err := group.Wait(); err != nil {
		var yaErr yaerrors.Error
		if errors.As(err, &yaErr) {
			return nil, nil, yaErr
		}

		return nil, nil, yaerrors.FromError(http.StatusInternalServerError, err, "[RSA] prime search failed")
	}

	return p, q, nil
}

// NewKeyPairFromPrimes derives a key pair from caller-chosen primes, as
// GenerateKeyPair does after its prime search. Both inputs must pass the
// primality test. p = q is accepted although the resulting phi is wrong for
// n = p^2.
func NewKeyPairFromPrimes(ctx context.Context, p, q *big.Int, opts KeyOpts) (*KeyPair, yaerrors.Error) {
	if p == nil || q == nil {
		return nil, yaerrors.FromError(
			http.StatusBadRequest,
			ErrInvalidArgument,
			"[RSA] primes must not be nil",
		)
	}

	opts = opts.withDefaults()
	gen := opts.generator()

	for _, candidate := range []*big.Int{p, q} {
		prime, err := gen.IsProbablePrime(candidate)
		if err != nil {
			return nil, err.Wrap("[RSA] failed to test input prime")
		}

		if !prime {
			return nil, yaerrors.FromError(
				http.StatusBadRequest,
				ErrInvalidArgument,
				fmt.Sprintf("[RSA] %s is not prime", candidate),
			)
		}
	}

	kp, err := deriveKeyPair(ctx, p, q, gen, opts)
	if err != nil {
		return nil, err.Wrap("[RSA] failed to derive key pair")
	}

	opts.Observer.KeyPairGenerated(kp.Bits(), kp.Bits())

	return kp, nil
}

func deriveKeyPair(
	ctx context.Context,
	p, q *big.Int,
	gen *yaprime.Generator,
	opts KeyOpts,
) (*KeyPair, yaerrors.Error) {
	n := new(big.Int).Mul(p, q)

	phi := new(big.Int).Mul(
		new(big.Int).Sub(p, bigOne),
		new(big.Int).Sub(q, bigOne),
	)

	e, err := selectExponent(ctx, phi, gen, opts)
	if err != nil {
		return nil, err.Wrap("[RSA] failed to select public exponent")
	}

	d, err := yamath.ModInverse(e, phi)
	if err != nil {
		return nil, err.Wrap("[RSA] failed to compute private exponent")
	}

	return &KeyPair{
		public:  &PublicKey{n: n, e: e},
		private: &PrivateKey{n: new(big.Int).Set(n), d: d},
	}, nil
}

// selectExponent returns DefaultExponent when possible, otherwise a random odd
// prime e in [lo, phi-1] with gcd(e, phi) = 1.
func selectExponent(
	ctx context.Context,
	phi *big.Int,
	gen *yaprime.Generator,
	opts KeyOpts,
) (*big.Int, yaerrors.Error) {
	standard := big.NewInt(DefaultExponent)

	if standard.Cmp(phi) < 0 && yamath.Gcd(standard, phi).Cmp(bigOne) == 0 {
		opts.Observer.ExponentSelected(standard, 0, false)

		return standard, nil
	}

	hi := new(big.Int).Sub(phi, bigOne)

	lo := new(big.Int).Lsh(bigOne, fallbackExponentFloorBits)
	if lo.Cmp(hi) >= 0 {
		lo.Set(bigThree)
	}

	if lo.Bit(0) == 0 {
		lo.Add(lo, bigOne)
	}

	if lo.Cmp(hi) > 0 {
		return nil, yaerrors.FromError(
			http.StatusInternalServerError,
			ErrKeyGenerationExhausted,
			fmt.Sprintf("[RSA] no odd exponent candidate below phi=%s", phi),
		)
	}

	// e = lo + 2k for k uniform in [0, (hi-lo)/2]
	steps := new(big.Int).Sub(hi, lo)
	steps.Rsh(steps, 1)

	for attempt := 1; attempt <= opts.ExponentAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, yaerrors.FromError(
				http.StatusRequestTimeout,
				err,
				fmt.Sprintf("[RSA] exponent search stopped after %d attempts", attempt-1),
			)
		}

		k, err := yarandom.IntRange(opts.Random, new(big.Int), steps)
		if err != nil {
			return nil, err.Wrap("[RSA] failed to draw exponent")
		}

		e := k.Lsh(k, 1)
		e.Add(e, lo)

		if yamath.Gcd(e, phi).Cmp(bigOne) != 0 {
			continue
		}

		prime, err := gen.IsProbablePrime(e)
		if err != nil {
			return nil, err.Wrap("[RSA] failed to test exponent")
		}

		if prime {
			opts.Observer.ExponentSelected(e, attempt, true)

			return e, nil
		}
	}

	return nil, yaerrors.FromError(
		http.StatusInternalServerError,
		ErrKeyGenerationExhausted,
		fmt.Sprintf("[RSA] no valid exponent within %d attempts", opts.ExponentAttempts),
	)
}
