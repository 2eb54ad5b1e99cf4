package log

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
)

// fieldMap converts alternating key-value fields into a map. An error at a key
// position is recorded under ErrorKey together with its stack trace; a dangling
// key is kept with a nil value so it still shows up in the output.
func fieldMap(fields []any) map[string]interface{} {
	m := make(map[string]interface{}, len(fields)/2+1)
	for i := 0; i < len(fields); i++ {
		if err, ok := fields[i].(error); ok {
			addError(m, err)
			continue
		}
		key := fmt.Sprint(fields[i])
		if i+1 >= len(fields) {
			m[key] = nil
			break
		}
		value := fields[i+1]
		i++
		if err, ok := value.(error); ok {
			m[key] = err.Error()
			continue
		}
		m[key] = value
	}
	return m
}

func addError(m map[string]interface{}, err error) {
	m[ErrorKey] = err.Error()
	m[ErrorTypeKey] = fmt.Sprintf("%T", errors.UnwrapAll(err))
	if st := extractStacktrace(err); st != "" {
		m[StacktraceKey] = st
	}
}

// extractStacktrace returns the first safe detail of a cockroachdb error,
// which holds the stack captured by errors.WithStack.
func extractStacktrace(err error) string {
	safeDetails := errors.GetSafeDetails(err).SafeDetails
	if len(safeDetails) > 0 {
		return safeDetails[0]
	}
	return ""
}

// logWarning writes a warning through zerolog directly, embedding the
// warning's own structured fields when it implements LogObjectMarshaler.
func logWarning(zl zerolog.Logger, w error) {
	e := zl.Warn()
	if e == nil {
		return
	}
	var obj zerolog.LogObjectMarshaler
	if errors.As(w, &obj) {
		e = e.Object("warning", obj)
	}
	e.Str(ErrorKey, w.Error()).Msg("linfit warning")
}
