package logger

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
)

var (
	// ErrMissingAppName is returned when [Log] AppName is not configured.
	ErrMissingAppName = errors.New("logger: [Log] AppName must be set")

	// ErrMissingServiceName is returned when [Log] ServiceName is not configured.
	ErrMissingServiceName = errors.New("logger: [Log] ServiceName must be set")
)

// reportWriteError is installed as zerolog.ErrorHandler. The global logger may be the
// one failing, so the event goes straight to stderr.
func reportWriteError(err error) {
	if logMetrics != nil {
		logMetrics.writeFailures.Inc()
	}

	_, _ = fmt.Fprintf(os.Stderr, "logger: dropped event: %v\n", err)
}
