package yarandom_test

import (
	"bytes"
	"errors"
	"io"
	"math/big"
	"sync"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YaCodeDev/GoYaRSA/yarandom"
)

func TestDeterministicReader_SameSeedSameStream(t *testing.T) {
	t.Parallel()

	seed := []byte("correct-horse-battery-staple")

	out1 := make([]byte, 4096)
	out2 := make([]byte, 4096)

	n1, err1 := yarandom.NewDeterministicReader(seed).Read(out1)
	n2, err2 := yarandom.NewDeterministicReader(seed).Read(out2)

	require.NoError(t, err1)
	require.NoError(t, err2)
	require.Equal(t, len(out1), n1)
	require.Equal(t, len(out2), n2)

	assert.Equal(t, out1, out2, "streams differ for same seed")
}

func TestDeterministicReader_DifferentSeedsDiffer(t *testing.T) {
	t.Parallel()

	out1 := make([]byte, 256)
	out2 := make([]byte, 256)

	_, _ = yarandom.NewDeterministicReader([]byte("seed-A")).Read(out1)
	_, _ = yarandom.NewDeterministicReader([]byte("seed-B")).Read(out2)

	assert.False(t, bytes.Equal(out1, out2), "different seeds produced identical output")
}

func TestDeterministicReader_SplitReadsMatchSingleRead(t *testing.T) {
	t.Parallel()

	seed := []byte("split-read")

	full := make([]byte, 5000)
	_, err := yarandom.NewDeterministicReader(seed).Read(full)
	require.NoError(t, err)

	parts := yarandom.NewDeterministicReader(seed)
	joined := make([]byte, 0, len(full))

	for _, n := range []int{0, 1, 3, 31, 32, 33, 1000, 3900} {
		buf := make([]byte, n)
		_, err := parts.Read(buf)
		require.NoError(t, err)

		joined = append(joined, buf...)
	}

	assert.Equal(t, full, joined)
}

func TestDeterministicReader_SeedIsCopied(t *testing.T) {
	t.Parallel()

	seed := []byte("mutable")
	reader := yarandom.NewDeterministicReader(seed)

	seed[0] ^= 0xFF

	got := make([]byte, 64)
	_, _ = reader.Read(got)

	want := make([]byte, 64)
	_, _ = yarandom.NewDeterministicReader([]byte("mutable")).Read(want)

	assert.Equal(t, want, got)
}

func TestDeterministicReader_PassesReaderContract(t *testing.T) {
	t.Parallel()

	want := make([]byte, 777)
	_, _ = yarandom.NewDeterministicReader([]byte("iotest")).Read(want)

	err := iotest.TestReader(
		&limited{r: yarandom.NewDeterministicReader([]byte("iotest")), left: len(want)},
		want,
	)
	assert.NoError(t, err)
}

// limited turns the endless stream into a finite one for iotest.
type limited struct {
	r    *yarandom.DeterministicReader
	left int
}

func (l *limited) Read(p []byte) (int, error) {
	if l.left == 0 {
		return 0, io.EOF
	}

	if len(p) > l.left {
		p = p[:l.left]
	}

	n, err := l.r.Read(p)
	l.left -= n

	return n, err
}

func TestLockedReader_ConcurrentReads(t *testing.T) {
	t.Parallel()

	reader := yarandom.NewLockedReader(yarandom.NewDeterministicReader([]byte("locked")))

	var wg sync.WaitGroup

	total := make([]int, 8)

	for i := range total {
		wg.Add(1)

		go func() {
			defer wg.Done()

			buf := make([]byte, 100)
			for range 50 {
				n, err := reader.Read(buf)
				if err == nil {
					total[i] += n
				}
			}
		}()
	}

	wg.Wait()

	for _, n := range total {
		assert.Equal(t, 5000, n)
	}
}

func TestIntRange_Flow(t *testing.T) {
	t.Parallel()

	t.Run("[Bounds] stays inside closed range", func(t *testing.T) {
		t.Parallel()

		reader := yarandom.NewDeterministicReader([]byte("range"))
		lo, hi := big.NewInt(2), big.NewInt(5)

		seen := map[int64]bool{}

		for range 400 {
			n, err := yarandom.IntRange(reader, lo, hi)
			require.Nil(t, err)

			assert.True(t, n.Cmp(lo) >= 0 && n.Cmp(hi) <= 0, "out of range: %s", n)

			seen[n.Int64()] = true
		}

		assert.Len(t, seen, 4, "every value of the range should show up")
	})

	t.Run("[Edge] single value range", func(t *testing.T) {
		t.Parallel()

		n, err := yarandom.IntRange(yarandom.Default(), big.NewInt(7), big.NewInt(7))
		require.Nil(t, err)

		assert.Equal(t, int64(7), n.Int64())
	})

	t.Run("[Error] empty range", func(t *testing.T) {
		t.Parallel()

		_, err := yarandom.IntRange(yarandom.Default(), big.NewInt(8), big.NewInt(7))
		assert.ErrorIs(t, err, yarandom.ErrEmptyRange)

		_, err = yarandom.Int(yarandom.Default(), big.NewInt(0))
		assert.ErrorIs(t, err, yarandom.ErrEmptyRange)
	})

	t.Run("[Error] failing source", func(t *testing.T) {
		t.Parallel()

		_, err := yarandom.Int(iotest.ErrReader(errors.New("boom")), big.NewInt(1000))
		assert.ErrorIs(t, err, yarandom.ErrReadFailed)

		_, err = yarandom.Bytes(iotest.ErrReader(errors.New("boom")), 4)
		assert.ErrorIs(t, err, yarandom.ErrReadFailed)
	})

	t.Run("[Default] nil falls back to system source", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, yarandom.Default(), yarandom.OrDefault(nil))
	})
}
