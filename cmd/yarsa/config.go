package main

import (
	"time"

	"github.com/YaCodeDev/GoYaRSA/yahash"
	"github.com/YaCodeDev/GoYaRSA/yalogger"
)

const envPrefix = "YARSA"

// Config is read from YARSA_* environment variables (and .env); flags given
// on the command line take precedence.
type Config struct {
	Bits             int              `default:"1024"`
	Rounds           int              `default:"20"`
	ExponentAttempts int              `default:"10000"`
	PrimeAttempts    int              `default:"0"`
	Timeout          time.Duration    `default:"2m"`
	Parallel         bool             `default:"false"`
	TextEncoding     string           `default:"utf-8"`
	Digest           yahash.Algorithm `default:"sha256"`
	LogLevel         yalogger.Level   `default:"info"`
}
