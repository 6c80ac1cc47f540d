package textprep

import (
	"os"

	"github.com/rs/zerolog"
)

var (
	DefaultAppName        = "textprep"
	DefaultLanguage       = "english"
	DefaultVectorizerMode = "onehot"
	DefaultDeviceName     = "cpu"

	// Default batching settings
	DefaultBatchSize = 32
	DefaultWorkers   = 4

	// Sequence-length guard: datasets whose longest text exceeds the guard
	// are bounded to the capped value instead of the observed maximum.
	DefaultSeqLenGuard  = 1000
	DefaultCappedSeqLen = 359
)

// GetLogger returns a properly configured zerolog logger instance
func GetLogger() zerolog.Logger {
	return zerolog.New(os.Stderr).With().Timestamp().Logger()
}
