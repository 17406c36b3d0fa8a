package logger

import (
	"github.com/maxaizer/namaste-jobs/internal/metrics"
	log "github.com/sirupsen/logrus"
	"sync"
)

// ErrorTypeBackendRejected counts backend calls that failed because the
// backend refused the input. Those are logged as warnings, not errors.
const ErrorTypeBackendRejected = "backend_rejected"

const untypedError = "untyped"

// errorsHook feeds namaste_errors_total. Errors count under their
// error_type field, warnings only when they describe a rejected backend call.
type errorsHook struct{}

func (h *errorsHook) Fire(entry *log.Entry) error {
	errorType, typed := entry.Data[ErrorTypeField].(string)

	if entry.Level == log.WarnLevel {
		if errorType == ErrorTypeBackendApi {
			metrics.ErrorsCounter.WithLabelValues(ErrorTypeBackendRejected).Inc()
		}
		return nil
	}

	if !typed || errorType == "" {
		errorType = untypedError
	}
	metrics.ErrorsCounter.WithLabelValues(errorType).Inc()
	return nil
}

func (h *errorsHook) Levels() []log.Level {
	return []log.Level{
		log.PanicLevel,
		log.FatalLevel,
		log.ErrorLevel,
		log.WarnLevel,
	}
}

var errorsHookOnce sync.Once

func addErrorsHook() {
	errorsHookOnce.Do(func() {
		log.AddHook(&errorsHook{})
	})
	log.Debug("error counting enabled")
}
