package errors

import (
	goerrors "errors"
	"reflect"
	"strings"

	apperrors "github.com/copperline/bizportal/internal/errors"
)

// Classify returns a normalized error name suitable for tagging metrics and
// logs. Portal errors classify by their application code (not_connected,
// external_fetch_failed, ...), which is far more useful on a dashboard than
// a Go type name. Everything else unwraps to the innermost concrete type.
func Classify(err error) string {
	if err == nil {
		return ""
	}

	var appErr *apperrors.AppError
	if goerrors.As(err, &appErr) {
		return string(appErr.Code)
	}

	// Unwrap to the innermost error for better signal.
	for {
		unwrapped := goerrors.Unwrap(err)
		if unwrapped == nil {
			break
		}
		err = unwrapped
	}

	t := reflect.TypeOf(err)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil {
		return "unknown"
	}

	name := strings.ToLower(strings.ReplaceAll(t.String(), "*", ""))
	name = strings.ReplaceAll(name, ".", "_")
	if name == "" {
		return "unknown"
	}
	return name
}
