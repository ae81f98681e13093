package errors

// ErrorCode represents a unique identifier for each error type
type ErrorCode string

// Error represents a domain-specific error with context. An error built
// without a cause is a root cause; the cause, when present, is set at
// construction and immutable afterwards.
type Error interface {
	error
	Code() ErrorCode
	Message() string
	WithMessage(msg string) Error
	WithData(data any) Error
	GetData() any
	Unwrap() error
}

// Factory defines methods for creating domain errors
type Factory interface {
	New(code ErrorCode) Error
	Wrap(code ErrorCode, err error) Error
	WithMessage(code ErrorCode, msg string) Error
	WrapWithMessage(code ErrorCode, msg string, err error) Error
	WithData(code ErrorCode, data any) Error
}
