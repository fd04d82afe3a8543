package errors

import "fmt"

// ErrorCode classifies a jira-ai failure.
type ErrorCode string

const (
	ErrFetch      ErrorCode = "FETCH"      // ticket source unreachable or non-2xx
	ErrFormat     ErrorCode = "FORMAT"     // malformed ticket document, recovered locally
	ErrCompletion ErrorCode = "COMPLETION" // completion service failed, recovered by fallback
	ErrConfig     ErrorCode = "CONFIG"     // missing or invalid configuration
)

// AnalyzerError is a classified error with an optional HTTP status and cause.
type AnalyzerError struct {
	Code    ErrorCode
	Status  int
	Message string
	Err     error
}

// Error implements the error interface.
func (e *AnalyzerError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause, if any.
func (e *AnalyzerError) Unwrap() error {
	return e.Err
}

// NewFetchStatus creates a fetch error for a non-2xx ticket response.
func NewFetchStatus(status int, body string) *AnalyzerError {
	msg := fmt.Sprintf("ticket request failed with status %d", status)
	if body != "" {
		msg += ": " + body
	}
	return &AnalyzerError{
		Code:    ErrFetch,
		Status:  status,
		Message: msg,
	}
}

// NewFetch creates a fetch error for a transport failure or invalid input.
func NewFetch(msg string, err error) *AnalyzerError {
	return &AnalyzerError{
		Code:    ErrFetch,
		Message: msg,
		Err:     err,
	}
}

// NewFormat creates a format error. Format errors never abort a run.
func NewFormat(reason string) *AnalyzerError {
	return &AnalyzerError{
		Code:    ErrFormat,
		Message: reason,
	}
}

// NewCompletionStatus creates a completion error for a non-200 response.
func NewCompletionStatus(status int, detail string) *AnalyzerError {
	return &AnalyzerError{
		Code:    ErrCompletion,
		Status:  status,
		Message: detail,
	}
}

// NewCompletion creates a completion error for a transport or decode failure.
func NewCompletion(msg string, err error) *AnalyzerError {
	return &AnalyzerError{
		Code:    ErrCompletion,
		Message: msg,
		Err:     err,
	}
}

// NewConfig creates a configuration error.
func NewConfig(msg string, err error) *AnalyzerError {
	return &AnalyzerError{
		Code:    ErrConfig,
		Message: msg,
		Err:     err,
	}
}

// Is checks if err is an AnalyzerError with the given code. Wrapped errors
// are followed.
func Is(err error, code ErrorCode) bool {
	aErr, ok := As(err)
	return ok && aErr.Code == code
}

// As finds the first AnalyzerError in err's chain.
func As(err error) (*AnalyzerError, bool) {
	for err != nil {
		if aErr, ok := err.(*AnalyzerError); ok {
			return aErr, true
		}
		unwrapper, ok := err.(interface{ Unwrap() error })
		if !ok {
			return nil, false
		}
		err = unwrapper.Unwrap()
	}
	return nil, false
}

// StatusOf returns the HTTP status carried by err, or 0.
func StatusOf(err error) int {
	if aErr, ok := As(err); ok {
		return aErr.Status
	}
	return 0
}

// IsQuotaExceeded reports whether err is a completion error caused by a
// rate limit or exhausted quota (HTTP 429).
func IsQuotaExceeded(err error) bool {
	aErr, ok := As(err)
	return ok && aErr.Code == ErrCompletion && aErr.Status == 429
}
