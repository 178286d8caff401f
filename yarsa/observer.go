package yarsa

import (
	"math/big"

	"github.com/YaCodeDev/GoYaRSA/yalogger"
	"github.com/YaCodeDev/GoYaRSA/yaprime"
)

// Observer receives key generation progress. With KeyOpts.Parallel the prime
// events arrive from two goroutines at once.
type Observer interface {
	yaprime.Observer
	ExponentSelected(e *big.Int, attempts int, fallback bool)
	KeyPairGenerated(bits, modulusBits int)
}

type NopObserver struct {
	yaprime.NopObserver
}

func (NopObserver) ExponentSelected(*big.Int, int, bool) {}

func (NopObserver) KeyPairGenerated(int, int) {}

// LogObserver reports progress to a Logger. Prime values and the private
// exponent are never logged.
type LogObserver struct {
	log yalogger.Logger
}

// NewLogObserver tags every line with the yarsa component and a fresh request
// id, so concurrent generations can be told apart.
func NewLogObserver(log yalogger.Logger) *LogObserver {
	if log == nil {
		log = yalogger.NewDiscardLogger()
	}

	return &LogObserver{
		log: log.WithField(yalogger.KeyComponent, componentName).WithRandomRequestID(),
	}
}

func (o *LogObserver) PrimeRejected(bits, attempt int) {
	o.log.Tracef("Rejected %d-bit prime candidate #%d", bits, attempt)
}

func (o *LogObserver) PrimeFound(bits, attempts int, _ *big.Int) {
	o.log.Debugf("Found %d-bit prime after %d attempts", bits, attempts)
}

func (o *LogObserver) ExponentSelected(e *big.Int, attempts int, fallback bool) {
	if fallback {
		o.log.Infof("Selected random public exponent e=%s after %d attempts", e, attempts)

		return
	}

	o.log.Infof("Selected standard public exponent e=%s", e)
}

func (o *LogObserver) KeyPairGenerated(bits, modulusBits int) {
	o.log.WithFields(map[string]any{
		"bits":         bits,
		"modulus_bits": modulusBits,
	}).Info("Key pair generated")
}
